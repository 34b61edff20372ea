package service

import (
	"context"
	"log"
	"time"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
)

// RecountWorker periodically reconciles denormalized vote counters with
// the vote ledger. The vote path keeps both in one transaction, so drift
// only appears through out-of-band writes (manual fixes, partial
// restores); this worker is the long-term consistency backstop.
type RecountWorker struct {
	votes    *repository.VoteRepo
	cache    *CacheService
	interval time.Duration
	batch    int
}

// NewRecountWorker creates a reconciliation worker.
func NewRecountWorker(votes *repository.VoteRepo, cache *CacheService) *RecountWorker {
	return &RecountWorker{
		votes:    votes,
		cache:    cache,
		interval: 15 * time.Minute,
		batch:    100,
	}
}

// Start runs the reconciliation loop until the context is cancelled.
func (w *RecountWorker) Start(ctx context.Context) {
	log.Printf("recount-worker: starting (interval=%s)", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce(ctx)
		case <-ctx.Done():
			log.Println("recount-worker: stopping (context cancelled)")
			return
		}
	}
}

// runOnce recounts one batch of drifted entries.
func (w *RecountWorker) runOnce(ctx context.Context) {
	drifted, err := w.votes.FindDrifted(ctx, w.batch)
	if err != nil {
		log.Printf("recount-worker: drift scan error: %v", err)
		return
	}
	if len(drifted) == 0 {
		return
	}

	fixed := 0
	for _, entryID := range drifted {
		if _, err := w.votes.Recount(ctx, entryID); err != nil {
			log.Printf("recount-worker: recount error for %s: %v", entryID, err)
			continue
		}

		if w.cache != nil {
			if err := w.cache.InvalidateEntry(ctx, entryID); err != nil {
				log.Printf("recount-worker: cache invalidate error for %s: %v", entryID, err)
			}
		}
		fixed++
	}

	if fixed > 0 {
		log.Printf("recount-worker: corrected %d drifted counters (of %d found)", fixed, len(drifted))
	}
}
