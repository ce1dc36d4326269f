// Command publish uploads a built dictionary file to the PostgreSQL catalog.
// It applies pending migrations, then bulk-inserts entries in chunks with
// conflict skipping, so re-publishing the same file is safe.
//
// Flags:
//
//	--config      path to YAML config file (optional)
//	--input       dictionary file to publish (default: configured output path)
//	--batch-size  entries per insert batch (default: configured batch size)
//	--dry-run     report what would be inserted without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/wubigen/internal/adapter/postgres"
	"github.com/heartmarshall/wubigen/internal/adapter/postgres/dictentry"
	"github.com/heartmarshall/wubigen/internal/app"
	"github.com/heartmarshall/wubigen/internal/config"
	"github.com/heartmarshall/wubigen/internal/domain"
	"github.com/heartmarshall/wubigen/internal/store"
	"github.com/heartmarshall/wubigen/migrations"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	inputFlag := flag.String("input", "", "dictionary file to publish")
	batchSizeFlag := flag.Int("batch-size", 0, "entries per insert batch")
	dryRunFlag := flag.Bool("dry-run", false, "parse and count entries without writing to DB")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	input := *inputFlag
	if input == "" {
		input = cfg.Dictionary.OutputPath
	}
	batchSize := *batchSizeFlag
	if batchSize <= 0 {
		batchSize = cfg.Dictionary.BatchSize
	}

	if err := run(cfg, logger, input, batchSize, *dryRunFlag); err != nil {
		logger.Error("publish failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, input string, batchSize int, dryRun bool) error {
	entries, err := loadEntries(input)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		logger.Info("nothing to publish", slog.String("input", input))
		return nil
	}
	logger.Info("dictionary loaded",
		slog.String("input", input),
		slog.Int("entries", len(entries)),
	)

	if dryRun {
		return runDry(cfg, logger, entries, batchSize)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required to publish")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	repo := dictentry.New(pool)

	var inserted int
	for start := 0; start < len(entries); start += batchSize {
		end := min(start+batchSize, len(entries))
		n, err := repo.BulkInsert(ctx, entries[start:end])
		inserted += n
		if err != nil {
			return fmt.Errorf("insert entries %d..%d: %w", start, end, err)
		}
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count published entries: %w", err)
	}

	logger.Info("publish completed",
		slog.Int("read", len(entries)),
		slog.Int("inserted", inserted),
		slog.Int("skipped", len(entries)-inserted),
		slog.Int64("catalog_total", total),
	)
	return nil
}

// runDry reports what a publish would do without writing. With a database
// configured it checks how many entries are already in the catalog; without
// one it stops at the parse counts.
func runDry(cfg *config.Config, logger *slog.Logger, entries []domain.Entry, batchSize int) error {
	if cfg.Database.DSN == "" {
		logger.Info("dry run, no database configured, skipping catalog check")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	repo := dictentry.New(pool)

	phrases := make([]string, len(entries))
	for i, e := range entries {
		phrases[i] = e.Phrase
	}
	existing, err := repo.CountExisting(ctx, phrases, batchSize)
	if err != nil {
		return fmt.Errorf("check existing phrases: %w", err)
	}

	logger.Info("dry run completed",
		slog.Int("read", len(entries)),
		slog.Int("already_published", existing),
		slog.Int("would_insert", len(entries)-existing),
	)
	return nil
}

// loadEntries reads and parses the dictionary file. Malformed lines abort
// the publish: the file is machine-written and corruption should be looked
// at, not skipped.
func loadEntries(path string) ([]domain.Entry, error) {
	entryStore, err := store.OpenEntryStore(store.NewFileBackend(path))
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %w", path, err)
	}
	entries, err := entryStore.Entries()
	if err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	return entries, nil
}
