// Package dictentry implements the published-dictionary repository using
// PostgreSQL. The catalog is append-only: entries are bulk-inserted with
// conflict skipping and never updated in place.
package dictentry

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/wubigen/internal/adapter/postgres"
	"github.com/heartmarshall/wubigen/internal/domain"
)

// Repo provides dictionary entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
	sb squirrel.StatementBuilderType
}

// New creates a new dictionary entry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// BulkInsert inserts entries using pgx.Batch. Phrases already in the catalog
// are skipped via ON CONFLICT DO NOTHING. Returns the number of actually
// inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, entries []domain.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	now := time.Now()
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO dict_entries (phrase, code, weight, created_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (phrase) DO NOTHING`,
			e.Phrase, e.Code, e.Weight, now,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// ExistingPhrases returns the subset of phrases already present in the
// catalog.
func (r *Repo) ExistingPhrases(ctx context.Context, phrases []string) (map[string]bool, error) {
	if len(phrases) == 0 {
		return map[string]bool{}, nil
	}

	sql, args, err := r.sb.
		Select("phrase").
		From("dict_entries").
		Where(squirrel.Eq{"phrase": phrases}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build existing phrases query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query existing phrases: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool, len(phrases))
	for rows.Next() {
		var phrase string
		if err := rows.Scan(&phrase); err != nil {
			return nil, fmt.Errorf("scan phrase: %w", err)
		}
		result[phrase] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate existing phrases: %w", err)
	}
	return result, nil
}

// CountExisting reports how many of the given phrases are already in the
// catalog, querying in chunks so the IN list stays bounded.
func (r *Repo) CountExisting(ctx context.Context, phrases []string, chunkSize int) (int, error) {
	if chunkSize <= 0 {
		chunkSize = len(phrases)
	}
	var existing int
	for start := 0; start < len(phrases); start += chunkSize {
		end := min(start+chunkSize, len(phrases))
		found, err := r.ExistingPhrases(ctx, phrases[start:end])
		if err != nil {
			return existing, err
		}
		existing += len(found)
	}
	return existing, nil
}

// Count returns the total number of published entries.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.
		Select("COUNT(*)").
		From("dict_entries").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}
