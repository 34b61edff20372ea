package service

import (
	"context"
	"log"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
)

type VoteService struct {
	repo  *repository.VoteRepo
	cache *CacheService
}

func NewVoteService(repo *repository.VoteRepo, cache *CacheService) *VoteService {
	return &VoteService{repo: repo, cache: cache}
}

// Cast records a vote for an entry under the given device identity and
// salted network identity, returning the entry's new vote count. Duplicate
// attempts surface as repository.ErrDuplicateDevice / ErrDuplicateNetwork.
func (s *VoteService) Cast(ctx context.Context, entryID, deviceHash, ipHash string) (*model.VoteResponse, error) {
	newCount, err := s.repo.CastVote(ctx, entryID, deviceHash, ipHash)
	if err != nil {
		return nil, err
	}

	// Invalidate cached reads so the new count shows up immediately.
	if s.cache != nil {
		if err := s.cache.InvalidateEntry(ctx, entryID); err != nil {
			log.Printf("cache: invalidate entry error: %v", err)
		}
		if err := s.cache.InvalidateLeaderboards(ctx); err != nil {
			log.Printf("cache: invalidate leaderboards error: %v", err)
		}
	}

	return &model.VoteResponse{
		Success: true,
		Message: "Vote recorded successfully",
		Votes:   newCount,
	}, nil
}

// HasVoted reports whether the device identity already voted for the entry.
func (s *VoteService) HasVoted(ctx context.Context, entryID, deviceHash string) (bool, error) {
	return s.repo.HasVoted(ctx, entryID, deviceHash)
}
