package middleware

import (
	"strings"
	"testing"
)

func TestValidateEntryID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid uuid", "6f1b0a9e-3c7d-4a21-9f0e-8b2d5c4e1a33", "6f1b0a9e-3c7d-4a21-9f0e-8b2d5c4e1a33", false},
		{"uppercase normalized", "6F1B0A9E-3C7D-4A21-9F0E-8B2D5C4E1A33", "6f1b0a9e-3c7d-4a21-9f0e-8b2d5c4e1a33", false},
		{"trims whitespace", "  6f1b0a9e-3c7d-4a21-9f0e-8b2d5c4e1a33  ", "6f1b0a9e-3c7d-4a21-9f0e-8b2d5c4e1a33", false},
		{"empty", "", "", true},
		{"not a uuid", "entry-123", "", true},
		{"missing dashes", "6f1b0a9e3c7d4a219f0e8b2d5c4e1a33", "", true},
		{"sql injection", "'; DROP TABLE entries--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateEntryID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateDeviceHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "1k2j3h4g5f6d7s8a9", "1k2j3h4g5f6d7s8a9", false},
		{"minimum length", "abcdefghij", "abcdefghij", false},
		{"too short", "abcdefghi", "", true},
		{"empty", "", "", true},
		{"uppercase normalized", "ABCDEFGHIJ", "abcdefghij", false},
		{"too long", strings.Repeat("a", 129), "", true},
		{"invalid chars", "abc def ghi jk", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateDeviceHash(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func validSubmission() SubmissionInput {
	return SubmissionInput{
		Title:        "Neon Dreamscape",
		Category:     "digital-art",
		Prompt:       "a neon city floating above clouds, wide angle",
		ToolUsed:     "Midjourney",
		ShareLink:    "https://example.com/share/abc",
		Description:  "An exploration of color and light in an imagined city.",
		CreatorName:  "Alice",
		CreatorEmail: "alice@example.com",
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	if fields := ValidateSubmission(validSubmission()); len(fields) != 0 {
		t.Errorf("expected no field errors, got %v", fields)
	}
}

func TestValidateSubmission_TitleTooShort(t *testing.T) {
	in := validSubmission()
	in.Title = "Hi"
	fields := ValidateSubmission(in)
	if msg, ok := fields["title"]; !ok || !strings.Contains(msg, "at least 3") {
		t.Errorf("want minimum-length title error, got %v", fields)
	}
}

func TestValidateSubmission_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SubmissionInput)
		wantField string
	}{
		{"title too long", func(in *SubmissionInput) { in.Title = strings.Repeat("x", 101) }, "title"},
		{"missing category", func(in *SubmissionInput) { in.Category = " " }, "category"},
		{"prompt too short", func(in *SubmissionInput) { in.Prompt = "short" }, "prompt"},
		{"prompt too long", func(in *SubmissionInput) { in.Prompt = strings.Repeat("p", 2001) }, "prompt"},
		{"missing tool", func(in *SubmissionInput) { in.ToolUsed = "" }, "tool_used"},
		{"bad share link", func(in *SubmissionInput) { in.ShareLink = "not a url" }, "share_link"},
		{"ftp share link", func(in *SubmissionInput) { in.ShareLink = "ftp://example.com/x" }, "share_link"},
		{"description too short", func(in *SubmissionInput) { in.Description = "too short" }, "description"},
		{"description too long", func(in *SubmissionInput) { in.Description = strings.Repeat("d", 1001) }, "description"},
		{"name too short", func(in *SubmissionInput) { in.CreatorName = "A" }, "creator_name"},
		{"name too long", func(in *SubmissionInput) { in.CreatorName = strings.Repeat("n", 51) }, "creator_name"},
		{"bad email", func(in *SubmissionInput) { in.CreatorEmail = "not-an-email" }, "creator_email"},
		{"bad social url", func(in *SubmissionInput) { in.CreatorSocial = "://bad" }, "creator_social"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSubmission()
			tt.mutate(&in)
			fields := ValidateSubmission(in)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, fields)
			}
		})
	}
}

func TestValidateSubmission_OptionalURLsMayBeEmpty(t *testing.T) {
	in := validSubmission()
	in.ShareLink = ""
	in.CreatorSocial = ""
	if fields := ValidateSubmission(in); len(fields) != 0 {
		t.Errorf("empty optional URLs should pass, got %v", fields)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		fallback  int
		maxVal    int
		want      int
	}{
		{"within bounds", 30, 20, 50, 30},
		{"zero uses fallback", 0, 20, 50, 20},
		{"negative uses fallback", -5, 20, 50, 20},
		{"above max clamped", 500, 20, 50, 50},
		{"exactly max", 50, 20, 50, 50},
		{"leaderboard cap", 500, 50, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampLimit(tt.requested, tt.fallback, tt.maxVal); got != tt.want {
				t.Errorf("ClampLimit(%d, %d, %d) = %d, want %d",
					tt.requested, tt.fallback, tt.maxVal, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	if got := ClampPage(0); got != 1 {
		t.Errorf("page 0 should clamp to 1, got %d", got)
	}
	if got := ClampPage(-3); got != 1 {
		t.Errorf("negative page should clamp to 1, got %d", got)
	}
	if got := ClampPage(7); got != 7 {
		t.Errorf("valid page should pass through, got %d", got)
	}
}
