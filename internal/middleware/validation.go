package middleware

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MinTitleLen       = 3
	MaxTitleLen       = 100
	MinPromptLen      = 10
	MaxPromptLen      = 2000
	MinDescriptionLen = 20
	MaxDescriptionLen = 1000
	MinCreatorNameLen = 2
	MaxCreatorNameLen = 50
	MinDeviceHashLen  = 10
	MaxDeviceHashLen  = 128
)

// uuidRe matches canonical lowercase UUIDs (entry and vote IDs).
var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// deviceHashRe matches client-derived fingerprints: base36 hash plus a
// time component, no separators.
var deviceHashRe = regexp.MustCompile(`^[a-z0-9]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidationErrorResponse returns a 400 with per-field detail.
func ValidationErrorResponse(c fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid submission data",
			"fields":  fields,
		},
	})
}

// ValidateEntryID checks that an entry ID is a well-formed UUID.
func ValidateEntryID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "entryId is required"
	}
	if !uuidRe.MatchString(id) {
		return "", "entryId must be a valid UUID"
	}
	return id, ""
}

// ValidateDeviceHash checks that a device fingerprint is non-trivial.
// This is a sanity check only; the hash is a pseudonymous best-effort
// identity, not something we can verify cryptographically.
func ValidateDeviceHash(h string) (string, string) {
	h = strings.TrimSpace(strings.ToLower(h))
	if h == "" {
		return "", "deviceHash is required"
	}
	if len(h) < MinDeviceHashLen {
		return "", "deviceHash is too short"
	}
	if len(h) > MaxDeviceHashLen {
		return "", "deviceHash is too long"
	}
	if !deviceHashRe.MatchString(h) {
		return "", "deviceHash contains invalid characters"
	}
	return h, ""
}

// SubmissionInput carries the text fields of a multipart entry submission.
type SubmissionInput struct {
	Title         string
	Category      string
	Prompt        string
	ToolUsed      string
	ShareLink     string
	Description   string
	CreatorName   string
	CreatorEmail  string
	CreatorSocial string
}

// ValidateSubmission checks all text fields of a submission and returns a
// field→message map. An empty map means the input is valid.
func ValidateSubmission(in SubmissionInput) map[string]string {
	fields := make(map[string]string)

	title := strings.TrimSpace(in.Title)
	if len(title) < MinTitleLen {
		fields["title"] = "Title must be at least 3 characters"
	} else if len(title) > MaxTitleLen {
		fields["title"] = "Title must be less than 100 characters"
	}

	if strings.TrimSpace(in.Category) == "" {
		fields["category"] = "Please select a category"
	}

	prompt := strings.TrimSpace(in.Prompt)
	if len(prompt) < MinPromptLen {
		fields["prompt"] = "Prompt must be at least 10 characters"
	} else if len(prompt) > MaxPromptLen {
		fields["prompt"] = "Prompt must be less than 2000 characters"
	}

	if strings.TrimSpace(in.ToolUsed) == "" {
		fields["tool_used"] = "Please select an AI tool"
	}

	if in.ShareLink != "" && !validURL(in.ShareLink) {
		fields["share_link"] = "Please enter a valid URL"
	}

	desc := strings.TrimSpace(in.Description)
	if len(desc) < MinDescriptionLen {
		fields["description"] = "Description must be at least 20 characters"
	} else if len(desc) > MaxDescriptionLen {
		fields["description"] = "Description must be less than 1000 characters"
	}

	name := strings.TrimSpace(in.CreatorName)
	if len(name) < MinCreatorNameLen {
		fields["creator_name"] = "Name must be at least 2 characters"
	} else if len(name) > MaxCreatorNameLen {
		fields["creator_name"] = "Name must be less than 50 characters"
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(in.CreatorEmail)); err != nil {
		fields["creator_email"] = "Please enter a valid email"
	}

	if in.CreatorSocial != "" && !validURL(in.CreatorSocial) {
		fields["creator_social"] = "Please enter a valid URL"
	}

	return fields
}

func validURL(s string) bool {
	u, err := url.ParseRequestURI(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ClampLimit normalizes a client-requested page size: non-positive values
// fall back to the default, and anything above the server-side maximum is
// clamped down regardless of what the client asked for.
func ClampLimit(requested, fallback, maxAllowed int) int {
	if requested <= 0 {
		return fallback
	}
	if requested > maxAllowed {
		return maxAllowed
	}
	return requested
}

// ClampPage normalizes a 1-based page number.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClientIP resolves the requester's address, preferring proxy headers.
// Best-effort: X-Forwarded-For's first hop, then X-Real-IP, then the
// socket address.
func ClientIP(c fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			fwd = fwd[:idx]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	if real := strings.TrimSpace(c.Get("X-Real-IP")); real != "" {
		return real
	}
	return c.IP()
}
