package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/middleware"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/storage"
)

// MaxUploadBytes is the media size ceiling for submissions.
const MaxUploadBytes = 50 << 20 // 50MB

// allowedMediaTypes is the fixed set of uploadable MIME types. Anything
// outside this set is stored as file_type "website" rather than rejected,
// matching the submission form's escape hatch for interactive work.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	"audio/mpeg":      true,
	"audio/wav":       true,
	"audio/ogg":       true,
	"audio/mp4":       true,
}

// MediaKindFor derives the stored media kind from a declared content type.
// Only allow-listed types map to a real media kind; everything else is
// stored as "website". Derived once at submission and never changed.
func MediaKindFor(contentType string) string {
	if !allowedMediaTypes[contentType] {
		return "website"
	}
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	case strings.HasPrefix(contentType, "audio/"):
		return "audio"
	default:
		return "website"
	}
}

type EntryService struct {
	repo  *repository.EntryRepo
	store *storage.Client
	cache *CacheService
}

func NewEntryService(repo *repository.EntryRepo, store *storage.Client, cache *CacheService) *EntryService {
	return &EntryService{repo: repo, store: store, cache: cache}
}

// Submission bundles the validated text fields with the uploaded media.
type Submission struct {
	Fields      middleware.SubmissionInput
	FileName    string
	ContentType string
	Data        []byte
	// OwnerID is the authenticated caller's identity, empty for guests.
	OwnerID string
}

// Create uploads the media object, then inserts the entry row referencing
// its public URL. If the insert fails after a successful upload, the
// object is deleted again (best effort) so no orphan is left behind.
func (s *EntryService) Create(ctx context.Context, sub Submission) (*model.Entry, error) {
	if len(sub.Data) == 0 {
		return nil, fmt.Errorf("empty media payload")
	}
	if len(sub.Data) > MaxUploadBytes {
		return nil, fmt.Errorf("media exceeds %dMB limit", MaxUploadBytes>>20)
	}

	key := storage.NewObjectKey(filepath.Ext(sub.FileName))
	if err := s.store.Upload(ctx, key, sub.ContentType, sub.Data); err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}

	entry := &model.Entry{
		Title:        strings.TrimSpace(sub.Fields.Title),
		Category:     strings.TrimSpace(sub.Fields.Category),
		FileURL:      s.store.PublicURL(key),
		FileType:     MediaKindFor(sub.ContentType),
		Prompt:       strings.TrimSpace(sub.Fields.Prompt),
		ToolUsed:     strings.TrimSpace(sub.Fields.ToolUsed),
		Description:  strings.TrimSpace(sub.Fields.Description),
		CreatorName:  strings.TrimSpace(sub.Fields.CreatorName),
		CreatorEmail: strings.TrimSpace(sub.Fields.CreatorEmail),
	}
	if link := strings.TrimSpace(sub.Fields.ShareLink); link != "" {
		entry.ShareLink = &link
	}
	if sub.OwnerID != "" {
		owner := sub.OwnerID
		entry.UserID = &owner
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		// Compensate for the upload; losing this cleanup only costs
		// storage, not correctness.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("entry: orphaned upload %s after failed insert: %v", key, delErr)
		}
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	return entry, nil
}

// Get returns a single entry, cache-aside.
func (s *EntryService) Get(ctx context.Context, id string) (*model.Entry, error) {
	if s.cache != nil {
		if data, err := s.cache.GetEntry(ctx, id); err == nil && data != nil {
			var e model.Entry
			if err := json.Unmarshal(data, &e); err == nil {
				return &e, nil
			}
		}
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetEntry(ctx, id, entry); err != nil {
			log.Printf("cache: set entry error: %v", err)
		}
	}
	return entry, nil
}

// List returns a filtered, paginated page of entries for the public gallery.
func (s *EntryService) List(ctx context.Context, f model.EntryFilters) (*model.PaginatedEntries, error) {
	entries, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &model.PaginatedEntries{
		Data:    entries,
		Total:   total,
		Page:    f.Page,
		Limit:   f.Limit,
		HasMore: total > f.Page*f.Limit,
	}, nil
}
