package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
)

// Vote rejection and lookup errors. Handlers map these to HTTP statuses.
var (
	// ErrDuplicateDevice: this device identity already voted for the entry.
	ErrDuplicateDevice = errors.New("already voted for this entry")
	// ErrDuplicateNetwork: a vote for the entry was already recorded from
	// the same IP, even though the device fingerprint differs.
	ErrDuplicateNetwork = errors.New("vote already recorded from this network")
	// ErrEntryNotFound: the referenced entry does not exist.
	ErrEntryNotFound = errors.New("entry not found")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// CastVote records a vote for an entry and bumps its denormalized counter,
// returning the new count. Everything runs in one transaction so the
// ledger and the counter cannot drift on a partial failure.
//
// Duplicate policy: the unique index on (entry_id, device_hash) is the
// authoritative device-level rejection; the SELECT checks before the
// insert are a fast path that also implements the stricter network-level
// dedup, which is deliberately not a storage constraint (shared NATs
// would make it impossible to ever insert a second row per network).
// ipHash is the caller's salted network identity; the raw address never
// reaches the ledger.
func (r *VoteRepo) CastVote(ctx context.Context, entryID, deviceHash, ipHash string) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM votes WHERE entry_id = $1 AND device_hash = $2)`,
		entryID, deviceHash).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateDevice
	}

	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM votes WHERE entry_id = $1 AND ip_address = $2)`,
		entryID, ipHash).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateNetwork
	}

	row := model.Vote{
		ID:         uuid.NewString(),
		EntryID:    entryID,
		DeviceHash: deviceHash,
		IPAddress:  ipHash,
		CreatedAt:  time.Now().UTC(),
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO votes (id, entry_id, device_hash, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		row.ID, row.EntryID, row.DeviceHash, row.IPAddress, row.CreatedAt)
	if err != nil {
		return 0, classifyInsertError(err)
	}

	// Atomic SQL increment. Never read-modify-write from the application:
	// concurrent votes on a popular entry would lose updates.
	var newCount int
	err = tx.QueryRow(ctx, `
		UPDATE entries SET votes = votes + 1 WHERE id = $1 RETURNING votes`,
		entryID).Scan(&newCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrEntryNotFound
		}
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newCount, nil
}

// classifyInsertError maps constraint violations from the ledger insert
// to the sentinel rejections. The unique index on (entry_id, device_hash)
// is the authoritative duplicate signal: hitting it means we lost the race
// against a concurrent identical vote after the SELECT fast path passed.
// Anything unrecognized passes through untouched.
func classifyInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateDevice
		case pgForeignKeyViolation:
			return ErrEntryNotFound
		}
	}
	return err
}

// HasVoted reports whether the device identity already has a ledger row
// for the entry. Used by clients to disable the vote control up front.
func (r *VoteRepo) HasVoted(ctx context.Context, entryID, deviceHash string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM votes WHERE entry_id = $1 AND device_hash = $2)`,
		entryID, deviceHash).Scan(&exists)
	return exists, err
}

// Recount overwrites an entry's denormalized counter with the authoritative
// ledger count and returns it. Reconciliation path only; the normal vote
// flow never calls this.
func (r *VoteRepo) Recount(ctx context.Context, entryID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		UPDATE entries
		SET votes = (SELECT COUNT(*) FROM votes WHERE entry_id = $1)
		WHERE id = $1
		RETURNING votes`, entryID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrEntryNotFound
		}
		return 0, err
	}
	return count, nil
}

// FindDrifted returns entry IDs whose counter disagrees with the ledger.
// Fed to Recount by the reconciliation worker.
func (r *VoteRepo) FindDrifted(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id
		FROM entries e
		WHERE e.votes <> (SELECT COUNT(*) FROM votes v WHERE v.entry_id = e.id)
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
