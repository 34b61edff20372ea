package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaKindFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", "image"},
		{"image/svg+xml", "image"},
		{"video/mp4", "video"},
		{"video/quicktime", "video"},
		{"audio/mpeg", "audio"},
		{"audio/wav", "audio"},
		{"video/x-matroska", "website"},
		{"image/bmp", "website"},
		{"text/html", "website"},
		{"application/zip", "website"},
		{"", "website"},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, MediaKindFor(tt.contentType))
		})
	}
}

func TestAllowedMediaTypes_AreAllMediaKinds(t *testing.T) {
	// The allow-list should never produce a "website" kind; that kind only
	// arises for content types outside the list.
	for ct := range allowedMediaTypes {
		assert.NotEqual(t, "website", MediaKindFor(ct), "content type %s", ct)
	}
}

func TestHasMoreComputation(t *testing.T) {
	tests := []struct {
		name  string
		total int
		page  int
		limit int
		want  bool
	}{
		{"first page of many", 100, 1, 20, true},
		{"last full page", 100, 5, 20, false},
		{"partial last page", 45, 3, 20, false},
		{"middle page", 45, 2, 20, true},
		{"empty result", 0, 1, 20, false},
		{"exactly one page", 20, 1, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.total > tt.page*tt.limit)
		})
	}
}
