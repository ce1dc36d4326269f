// Command dictgen builds a wubi user dictionary. It encodes phrases with one
// of six rules and appends the results to the dictionary file, skipping known
// phrases and recording unencodable ones in a fail file for later manual
// handling.
//
// Flags:
//
//	--config  path to YAML config file (optional, ENV + defaults otherwise)
//	--rule    encoding rule 1-6 (default 1)
//	--phrase  encode a single phrase and exit
//	--input   batch file with one phrase per line
//
// Without --phrase or --input the command runs interactively: each line is a
// phrase, or a path to a batch file for rules 1-4. Two consecutive empty
// lines exit. Exit codes: 0 = success, 1 = error.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/heartmarshall/wubigen/internal/app"
	"github.com/heartmarshall/wubigen/internal/codetable"
	"github.com/heartmarshall/wubigen/internal/config"
	"github.com/heartmarshall/wubigen/internal/domain"
	"github.com/heartmarshall/wubigen/internal/pipeline"
	"github.com/heartmarshall/wubigen/internal/store"
	"github.com/heartmarshall/wubigen/internal/weights"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	ruleFlag := flag.Int("rule", 1, "encoding rule 1-6")
	phraseFlag := flag.String("phrase", "", "encode a single phrase and exit")
	inputFlag := flag.String("input", "", "batch file with one phrase per line")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if err := run(cfg, logger, domain.Rule(*ruleFlag), *phraseFlag, *inputFlag); err != nil {
		logger.Error("dictgen failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, rule domain.Rule, phrase, input string) error {
	if !rule.IsValid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidRule, rule)
	}
	if input != "" && rule == domain.RuleManual {
		return domain.ErrManualRuleBatch
	}

	table := codetable.Load(cfg.Dictionary.CodeTablePath, logger)
	if table.Len() == 0 {
		return fmt.Errorf("code table %s is empty or missing", cfg.Dictionary.CodeTablePath)
	}

	weightStore, err := weights.Load(cfg.Dictionary.WeightPath, logger)
	if err != nil {
		return fmt.Errorf("load weight table: %w", err)
	}

	entries, err := store.OpenEntryStore(store.NewFileBackend(cfg.Dictionary.OutputPath))
	if err != nil {
		return fmt.Errorf("open dictionary %s: %w", cfg.Dictionary.OutputPath, err)
	}
	fails, err := store.OpenFailSet(store.NewFileBackend(cfg.Dictionary.FailPath))
	if err != nil {
		return fmt.Errorf("open fail file %s: %w", cfg.Dictionary.FailPath, err)
	}

	// The interactive loop and the manual-code prompter must read through
	// the same buffered reader: a second bufio.Reader over os.Stdin would
	// buffer ahead and starve the other of piped input.
	stdin := bufio.NewReader(os.Stdin)

	pipe, err := pipeline.New(pipeline.Config{
		Log:           logger,
		Table:         table,
		Weights:       weightStore,
		Entries:       entries,
		Rule:          rule,
		Prompter:      pipeline.NewReaderPrompter(stdin, os.Stdout),
		DefaultWeight: cfg.Dictionary.DefaultWeight,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case input != "":
		return runBatchFile(ctx, logger, cfg, pipe, fails, input)
	case phrase != "":
		return runSingle(logger, cfg, pipe, fails, rule, phrase)
	default:
		return runInteractive(ctx, logger, cfg, pipe, fails, rule, stdin)
	}
}

func runBatchFile(ctx context.Context, logger *slog.Logger, cfg *config.Config, pipe *pipeline.Pipeline, fails *store.FailSet, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	batch, err := pipeline.NewBatch(pipe, fails, logger)
	if err != nil {
		return err
	}

	res, err := batch.Run(ctx, f)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	return writeReport(logger, cfg, sourceName(path), pipe.Rule(), res.Records)
}

func runSingle(logger *slog.Logger, cfg *config.Config, pipe *pipeline.Pipeline, fails *store.FailSet, rule domain.Rule, phrase string) error {
	res := pipeline.IngestOne(logger, pipe, fails, phrase)
	if err := writeReport(logger, cfg, "interactive", rule, []domain.Result{res}); err != nil {
		return err
	}
	normalize(logger, pipe, fails)
	if res.Status == domain.StatusRejected {
		return fmt.Errorf("phrase %q rejected: %s", phrase, res.Reason)
	}
	return nil
}

func runInteractive(ctx context.Context, logger *slog.Logger, cfg *config.Config, pipe *pipeline.Pipeline, fails *store.FailSet, rule domain.Rule, reader *bufio.Reader) error {
	var records []domain.Result
	emptyStreak := 0

	for ctx.Err() == nil {
		fmt.Print("phrase (or batch file path): ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimSpace(line)
		if line == "" {
			emptyStreak++
			if eof || emptyStreak >= 2 {
				break
			}
			continue
		}
		emptyStreak = 0

		// A path to an existing file switches to batch mode for the
		// automatic rules; the manual and pinyin rules always treat the
		// input as a phrase.
		if !rule.SkipsTableCheck() && isFile(line) {
			batch, err := pipeline.NewBatch(pipe, fails, logger)
			if err != nil {
				return err
			}
			f, err := os.Open(line)
			if err != nil {
				logger.Error("open batch file", slog.String("path", line), slog.String("error", err.Error()))
				continue
			}
			res, err := batch.Run(ctx, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("batch run: %w", err)
			}
			if err := writeReport(logger, cfg, sourceName(line), rule, res.Records); err != nil {
				return err
			}
			continue
		}

		records = append(records, pipeline.IngestOne(logger, pipe, fails, line))
		if eof {
			break
		}
	}

	if err := writeReport(logger, cfg, "interactive", rule, records); err != nil {
		return err
	}
	normalize(logger, pipe, fails)
	return nil
}

func writeReport(logger *slog.Logger, cfg *config.Config, source string, rule domain.Rule, records []domain.Result) error {
	rep := pipeline.NewReport(source, rule, records)
	path, err := rep.Write(cfg.Dictionary.RecordDir, time.Now())
	if err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	if path != "" {
		logger.Info("run report written", slog.String("path", path))
	}
	return nil
}

func normalize(logger *slog.Logger, pipe *pipeline.Pipeline, fails *store.FailSet) {
	if err := pipe.Entries().Normalize(); err != nil {
		logger.Warn("dictionary normalize failed", slog.String("error", err.Error()))
	}
	if err := fails.Normalize(); err != nil {
		logger.Warn("fail file normalize failed", slog.String("error", err.Error()))
	}
}

func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
