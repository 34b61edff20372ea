package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
)

// Server-side pagination caps. Client-requested limits are clamped to
// these regardless of what the request asked for.
const (
	DefaultPageLimit    = 20
	MaxGalleryLimit     = 50
	MaxLeaderboardLimit = 100
)

const entryColumns = `id, title, category, file_url, file_type, prompt, tool_used,
	       share_link, description, creator_name, creator_email, user_id,
	       votes, is_featured, is_winner, created_at`

// sortColumns whitelists client-supplied sort keys to real columns.
// Anything else falls back to created_at.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"votes":      "votes",
	"title":      "title",
}

type EntryRepo struct {
	pool *pgxpool.Pool
}

func NewEntryRepo(pool *pgxpool.Pool) *EntryRepo {
	return &EntryRepo{pool: pool}
}

// BuildListQuery translates normalized filters into a parameterized SELECT
// plus a matching COUNT query over the same WHERE clause. Pure, so the
// SQL shape is unit-testable without a database.
func BuildListQuery(f model.EntryFilters) (listSQL, countSQL string, args []any) {
	var where []string

	if f.Category != "" && f.Category != "all" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	if f.WinnersOnly {
		where = append(where, "is_winner = true")
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		p := fmt.Sprintf("$%d", len(args))
		if f.AdminSearch {
			where = append(where, fmt.Sprintf(
				"(title ILIKE %s OR creator_name ILIKE %s OR creator_email ILIKE %s)", p, p, p))
		} else {
			where = append(where, fmt.Sprintf(
				"(title ILIKE %s OR description ILIKE %s OR creator_name ILIKE %s OR tool_used ILIKE %s)", p, p, p, p))
		}
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if f.SortOrder == "asc" {
		dir = "ASC"
	}

	countSQL = "SELECT COUNT(*) FROM entries" + whereClause

	offset := (f.Page - 1) * f.Limit
	args = append(args, f.Limit, offset)
	// id as secondary sort keeps tied rows in a stable order across pages.
	listSQL = fmt.Sprintf(
		"SELECT %s FROM entries%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		entryColumns, whereClause, col, dir, len(args)-1, len(args))

	return listSQL, countSQL, args
}

// List returns one page of entries matching the filters plus the total
// filtered-but-unpaginated match count.
func (r *EntryRepo) List(ctx context.Context, f model.EntryFilters) ([]model.Entry, int, error) {
	listSQL, countSQL, args := BuildListQuery(f)

	var total int
	// The count query reuses the leading args; limit/offset are the last two.
	if err := r.pool.QueryRow(ctx, countSQL, args[:len(args)-2]...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]model.Entry, 0, f.Limit)
	for rows.Next() {
		var e model.Entry
		if err := scanEntry(rows.Scan, &e); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// FindByID returns a single entry. pgx.ErrNoRows when it does not exist.
func (r *EntryRepo) FindByID(ctx context.Context, id string) (*model.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE id = $1"

	var e model.Entry
	if err := scanEntry(r.pool.QueryRow(ctx, query, id).Scan, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new entry row. The caller has already uploaded the
// media object and set FileURL/FileType.
func (r *EntryRepo) Create(ctx context.Context, e *model.Entry) error {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO entries (id, title, category, file_url, file_type, prompt,
		                     tool_used, share_link, description, creator_name,
		                     creator_email, user_id, votes, is_featured, is_winner, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, false, false, $13)`,
		e.ID, e.Title, e.Category, e.FileURL, e.FileType, e.Prompt,
		e.ToolUsed, e.ShareLink, e.Description, e.CreatorName,
		e.CreatorEmail, e.UserID, e.CreatedAt)
	return err
}

// ListWinners returns winner-flagged entries newest-first, joined with the
// category reference row so callers can synthesize award titles.
func (r *EntryRepo) ListWinners(ctx context.Context, category string) ([]model.Entry, map[string]string, error) {
	query := `
		SELECT ` + prefixColumns("e", entryColumns) + `, COALESCE(c.name, '')
		FROM entries e
		LEFT JOIN categories c ON c.slug = e.category
		WHERE e.is_winner = true`
	var args []any
	if category != "" && category != "all" {
		args = append(args, category)
		query += fmt.Sprintf(" AND e.category = $%d", len(args))
	}
	query += " ORDER BY e.created_at DESC, e.id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var winners []model.Entry
	categoryNames := make(map[string]string)
	for rows.Next() {
		var e model.Entry
		var catName string
		scan := func(dest ...any) error {
			return rows.Scan(append(dest, &catName)...)
		}
		if err := scanEntry(scan, &e); err != nil {
			return nil, nil, err
		}
		if catName != "" {
			categoryNames[e.Category] = catName
		}
		winners = append(winners, e)
	}
	return winners, categoryNames, rows.Err()
}

// FileURLs returns id→file_url for the given entries, or for every entry
// when ids is nil (the admin delete-all path).
func (r *EntryRepo) FileURLs(ctx context.Context, ids []string) (map[string]string, error) {
	query := "SELECT id, file_url FROM entries"
	var args []any
	if ids != nil {
		query += " WHERE id = ANY($1)"
		args = append(args, ids)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make(map[string]string)
	for rows.Next() {
		var id, fileURL string
		if err := rows.Scan(&id, &fileURL); err != nil {
			return nil, err
		}
		urls[id] = fileURL
	}
	return urls, rows.Err()
}

// DeleteCascade removes the given entries together with their vote ledger
// rows in one transaction. Ledger rows go first to satisfy the foreign
// key. Returns the number of entries actually deleted.
func (r *EntryRepo) DeleteCascade(ctx context.Context, ids []string) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM votes WHERE entry_id = ANY($1)`, ids); err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM entries WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Stats returns the aggregate counts backing the admin dashboard.
func (r *EntryRepo) Stats(ctx context.Context) (*model.AdminStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM entries)                           AS total_entries,
			(SELECT COUNT(*) FROM votes)                             AS total_votes,
			(SELECT COUNT(*) FROM entries WHERE is_featured = true)  AS featured_count,
			(SELECT COUNT(*) FROM entries WHERE is_winner = true)    AS winners_count,
			(SELECT COUNT(*) FROM entries
			  WHERE created_at > NOW() - INTERVAL '7 days')          AS recent_submissions`

	var stats model.AdminStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalEntries, &stats.TotalVotes, &stats.FeaturedCount,
		&stats.WinnersCount, &stats.RecentSubmissions,
	)
	if err != nil {
		return nil, err
	}

	catRows, err := r.pool.Query(ctx, `
		SELECT category, COUNT(*) FROM entries GROUP BY category ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()

	stats.CategoryCounts = make(map[string]int)
	for catRows.Next() {
		var cat string
		var count int
		if err := catRows.Scan(&cat, &count); err != nil {
			return nil, err
		}
		stats.CategoryCounts[cat] = count
	}
	if err := catRows.Err(); err != nil {
		return nil, err
	}

	topRows, err := r.pool.Query(ctx, `
		SELECT id, title, creator_name, votes, category
		FROM entries ORDER BY votes DESC, id ASC LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer topRows.Close()

	for topRows.Next() {
		var t model.TopEntry
		if err := topRows.Scan(&t.ID, &t.Title, &t.CreatorName, &t.Votes, &t.Category); err != nil {
			return nil, err
		}
		stats.TopEntries = append(stats.TopEntries, t)
	}
	return &stats, topRows.Err()
}

func scanEntry(scan func(dest ...any) error, e *model.Entry) error {
	return scan(
		&e.ID, &e.Title, &e.Category, &e.FileURL, &e.FileType, &e.Prompt,
		&e.ToolUsed, &e.ShareLink, &e.Description, &e.CreatorName,
		&e.CreatorEmail, &e.UserID, &e.Votes, &e.IsFeatured, &e.IsWinner,
		&e.CreatedAt,
	)
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
