package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
)

// GalleryService serves the vote-ranked read views: leaderboard and
// hall of fame.
type GalleryService struct {
	entries *repository.EntryRepo
	cache   *CacheService
}

func NewGalleryService(entries *repository.EntryRepo, cache *CacheService) *GalleryService {
	return &GalleryService{entries: entries, cache: cache}
}

// Leaderboard returns the top entries by vote count with 1-based ranks.
// Ties get consecutive distinct ranks in stable id order; there is no
// shared-rank handling.
func (s *GalleryService) Leaderboard(ctx context.Context, category string, limit int) ([]model.LeaderboardEntry, error) {
	if s.cache != nil {
		if data, err := s.cache.GetLeaderboard(ctx, category, limit); err == nil && data != nil {
			var cached []model.LeaderboardEntry
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	entries, _, err := s.entries.List(ctx, model.EntryFilters{
		Category:  category,
		SortBy:    "votes",
		SortOrder: "desc",
		Page:      1,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	ranked := RankEntries(entries)

	if s.cache != nil {
		if err := s.cache.SetLeaderboard(ctx, category, limit, ranked); err != nil {
			log.Printf("cache: set leaderboard error: %v", err)
		}
	}
	return ranked, nil
}

// RankEntries assigns 1-based dense ranks in slice order. RankChange is
// always "same": a delta needs a historical rank snapshot table, which
// does not exist.
func RankEntries(entries []model.Entry) []model.LeaderboardEntry {
	ranked := make([]model.LeaderboardEntry, 0, len(entries))
	for i, e := range entries {
		ranked = append(ranked, model.LeaderboardEntry{
			Entry:      e,
			Rank:       i + 1,
			RankChange: "same",
		})
	}
	return ranked
}

// HallOfFame returns winner-flagged entries with synthesized award titles,
// newest first.
func (s *GalleryService) HallOfFame(ctx context.Context, category string) ([]model.HallOfFameEntry, error) {
	winners, categoryNames, err := s.entries.ListWinners(ctx, category)
	if err != nil {
		return nil, err
	}

	famed := make([]model.HallOfFameEntry, 0, len(winners))
	for _, w := range winners {
		famed = append(famed, model.HallOfFameEntry{
			Entry:      w,
			AwardTitle: AwardTitle(w.Category, categoryNames[w.Category]),
			AwardDate:  w.CreatedAt.Format("January 2006"),
		})
	}
	return famed, nil
}

// AwardTitle builds the display award for a winner: the category's display
// name when the reference row exists, falling back to the raw slug.
func AwardTitle(categorySlug, categoryName string) string {
	if categoryName == "" {
		categoryName = categorySlug
	}
	return "Category Head - " + categoryName
}
