package service

import (
	"context"
	"fmt"
	"log"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/storage"
)

// AdminService backs the privileged surface: listing, bulk deletion,
// statistics, and export.
type AdminService struct {
	entries *repository.EntryRepo
	store   *storage.Client
	cache   *CacheService
}

func NewAdminService(entries *repository.EntryRepo, store *storage.Client, cache *CacheService) *AdminService {
	return &AdminService{entries: entries, store: store, cache: cache}
}

// List returns a page of entries for the admin table. Search covers
// title, creator name, and creator email.
func (s *AdminService) List(ctx context.Context, f model.EntryFilters) (*model.PaginatedEntries, error) {
	f.AdminSearch = true
	entries, total, err := s.entries.List(ctx, f)
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

// Delete removes the requested entries (or every entry when DeleteAll is
// set) together with their vote ledger rows and media objects.
//
// Order matters: storage keys are extracted first (unparseable URLs are
// skipped), then the storage batch delete runs, then votes and entries go
// in one database transaction. A storage failure is logged and tolerated —
// the media becomes garbage, not an error. A database failure aborts.
func (s *AdminService) Delete(ctx context.Context, req model.DeleteEntriesRequest, adminEmail string) (*model.DeleteEntriesResponse, error) {
	var targetIDs []string
	if req.DeleteAll {
		urls, err := s.entries.FileURLs(ctx, nil)
		if err != nil {
			return nil, err
		}
		if len(urls) == 0 {
			return &model.DeleteEntriesResponse{
				Success: true,
				Message: "No entries to delete",
			}, nil
		}
		for id := range urls {
			targetIDs = append(targetIDs, id)
		}
		s.deleteMedia(ctx, urls)
	} else {
		if len(req.EntryIDs) == 0 {
			return nil, fmt.Errorf("no entries specified for deletion")
		}
		targetIDs = req.EntryIDs
		urls, err := s.entries.FileURLs(ctx, targetIDs)
		if err != nil {
			return nil, err
		}
		s.deleteMedia(ctx, urls)
	}

	deleted, err := s.entries.DeleteCascade(ctx, targetIDs)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		for _, id := range targetIDs {
			if err := s.cache.InvalidateEntry(ctx, id); err != nil {
				log.Printf("cache: invalidate entry error: %v", err)
			}
		}
		if err := s.cache.InvalidateLeaderboards(ctx); err != nil {
			log.Printf("cache: invalidate leaderboards error: %v", err)
		}
	}

	log.Printf("admin %s deleted %d entries", adminEmail, deleted)

	return &model.DeleteEntriesResponse{
		Success:      true,
		Message:      fmt.Sprintf("Successfully deleted %d entries", deleted),
		DeletedCount: deleted,
	}, nil
}

// deleteMedia batch-removes the storage objects behind the given file
// URLs. Never fatal: a leaked object is cleanup debt, not a failed delete.
func (s *AdminService) deleteMedia(ctx context.Context, urls map[string]string) {
	var keys []string
	for _, fileURL := range urls {
		if key, ok := s.store.KeyFromURL(fileURL); ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.store.DeleteBatch(ctx, keys); err != nil {
		log.Printf("admin: storage delete failed for %d objects (continuing): %v", len(keys), err)
	}
}

// Stats returns the aggregate counts for the admin dashboard.
func (s *AdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	return s.entries.Stats(ctx)
}

// Export returns every entry, newest first, for the admin JSON dump.
func (s *AdminService) Export(ctx context.Context) ([]model.Entry, error) {
	all, _, err := s.entries.List(ctx, model.EntryFilters{
		SortBy:    "created_at",
		SortOrder: "desc",
		Page:      1,
		Limit:     100000,
	})
	return all, err
}
