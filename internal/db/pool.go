package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const maxConnectAttempts = 5

// Options tunes the connection pool. Zero values fall back to defaults
// sized for a small API fleet behind the gallery.
type Options struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

func (o *Options) applyDefaults() {
	if o.MaxConns == 0 {
		o.MaxConns = 15
	}
	if o.MinConns == 0 {
		o.MinConns = 2
	}
	if o.MaxConnLifetime == 0 {
		o.MaxConnLifetime = time.Hour
	}
	if o.MaxConnIdleTime == 0 {
		o.MaxConnIdleTime = 30 * time.Minute
	}
}

// NewPool connects to Postgres with linear backoff between attempts.
// The database is a hard dependency, so startup blocks until the pool
// answers a ping or the retry budget runs out.
func NewPool(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	opts.applyDefaults()

	cfg, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = opts.MaxConns
	cfg.MinConns = opts.MinConns
	cfg.MaxConnLifetime = opts.MaxConnLifetime
	cfg.MaxConnIdleTime = opts.MaxConnIdleTime
	cfg.HealthCheckPeriod = time.Minute

	var lastErr error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Printf("database connected (attempt %d)", attempt)
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		if attempt == maxConnectAttempts {
			break
		}

		wait := time.Duration(attempt) * time.Second
		log.Printf("database connection failed (attempt %d/%d), retrying in %s: %v",
			attempt, maxConnectAttempts, wait, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxConnectAttempts, lastErr)
}
