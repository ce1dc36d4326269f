package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/wubigen/internal/domain"
	"github.com/heartmarshall/wubigen/internal/store"
)

// BatchResult accumulates the counts of one batch run.
type BatchResult struct {
	Total    int // non-blank input lines
	Added    int
	Skipped  int // duplicates and known failures
	Failed   int
	Duration time.Duration
	Records  []domain.Result
}

// Batch drives the pipeline over an ordered sequence of phrases, one per
// input line. Failures that are worth retrying manually (uncodeable or no
// codeable characters) are routed to the FailSet so later runs over
// overlapping inputs skip them; write errors and cancellations are not, to
// keep transient problems out of the fail file.
type Batch struct {
	log   *slog.Logger
	pipe  *Pipeline
	fails *store.FailSet
}

// NewBatch builds a batch driver. The manual rule has no channel for
// per-item codes and is rejected outright.
func NewBatch(pipe *Pipeline, fails *store.FailSet, log *slog.Logger) (*Batch, error) {
	if pipe.Rule() == domain.RuleManual {
		return nil, domain.ErrManualRuleBatch
	}
	return &Batch{log: log, pipe: pipe, fails: fails}, nil
}

// Run ingests every line of r. Cancellation is honored between items only,
// so an interrupted run still leaves the dictionary line-complete. The
// stores are normalized (blank lines removed) when the run finishes
// normally.
func (b *Batch) Run(ctx context.Context, r io.Reader) (BatchResult, error) {
	start := time.Now()
	var res BatchResult

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		res.Total++

		if b.fails.Contains(line) {
			b.log.Debug("skipping phrase from fail file", slog.String("phrase", line))
			res.Skipped++
			continue
		}

		item := b.pipe.Ingest(line)
		res.Records = append(res.Records, item)

		switch item.Status {
		case domain.StatusAdded:
			res.Added++
		case domain.StatusSkipped:
			res.Skipped++
		case domain.StatusRejected:
			res.Failed++
			if item.Reason.Retriable() {
				if err := b.fails.Add(line); err != nil {
					b.log.Error("fail file append failed",
						slog.String("phrase", line),
						slog.String("error", err.Error()),
					)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("read batch input: %w", err)
	}

	res.Duration = time.Since(start)
	b.normalize()

	b.log.Info("batch completed",
		slog.Int("total", res.Total),
		slog.Int("added", res.Added),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

// IngestOne runs a single phrase through the pipeline and routes retriable
// failures to the fail file, mirroring the batch driver. The phrase is
// trimmed up front so the recorded fail line matches the trimmed lines of a
// later batch run.
func IngestOne(log *slog.Logger, pipe *Pipeline, fails *store.FailSet, phrase string) domain.Result {
	phrase = strings.TrimSpace(phrase)
	if fails.Contains(phrase) {
		log.Info("phrase is in the fail file, retrying", slog.String("phrase", phrase))
	}
	res := pipe.Ingest(phrase)
	if res.Status == domain.StatusRejected && res.Reason.Retriable() {
		if err := fails.Add(phrase); err != nil {
			log.Error("fail file append failed",
				slog.String("phrase", phrase),
				slog.String("error", err.Error()),
			)
		}
	}
	return res
}

func (b *Batch) normalize() {
	if err := b.pipe.Entries().Normalize(); err != nil {
		b.log.Warn("dictionary normalize failed", slog.String("error", err.Error()))
	}
	if err := b.fails.Normalize(); err != nil {
		b.log.Warn("fail file normalize failed", slog.String("error", err.Error()))
	}
}
