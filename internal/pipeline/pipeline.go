// Package pipeline orchestrates entry ingestion: validate the phrase, check
// for duplicates, encode (or solicit a manual code), resolve the weight and
// append to the dictionary. It is invoked once per phrase by either the
// single-item or the batch driver.
package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/wubigen/internal/codetable"
	"github.com/heartmarshall/wubigen/internal/domain"
	"github.com/heartmarshall/wubigen/internal/rules"
	"github.com/heartmarshall/wubigen/internal/store"
	"github.com/heartmarshall/wubigen/internal/weights"
)

// DefaultWeight is used when a phrase has no entry in the weight table.
const DefaultWeight = 100

// CodePrompter solicits a manual code for a phrase under the manual rule.
// Implementations return the raw user input; an error (conventionally
// domain.ErrCancelled) aborts the item.
type CodePrompter interface {
	PromptCode(phrase string) (string, error)
}

// Config wires a Pipeline. Table, Weights and Entries are required;
// Prompter is required only for domain.RuleManual.
type Config struct {
	Log           *slog.Logger
	Table         *codetable.Table
	Weights       *weights.Store
	Entries       *store.EntryStore
	Rule          domain.Rule
	Prompter      CodePrompter
	DefaultWeight int
}

// Pipeline ingests phrases under one fixed rule. The EntryStore is the only
// structure it mutates.
type Pipeline struct {
	log           *slog.Logger
	table         *codetable.Table
	weights       *weights.Store
	entries       *store.EntryStore
	engine        *rules.Engine
	rule          domain.Rule
	prompter      CodePrompter
	defaultWeight int
}

// New validates the configuration and builds a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if !cfg.Rule.IsValid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRule, cfg.Rule)
	}
	if cfg.Rule == domain.RuleManual && cfg.Prompter == nil {
		return nil, fmt.Errorf("rule %s requires a code prompter", cfg.Rule)
	}
	if cfg.DefaultWeight <= 0 {
		cfg.DefaultWeight = DefaultWeight
	}
	return &Pipeline{
		log:           cfg.Log,
		table:         cfg.Table,
		weights:       cfg.Weights,
		entries:       cfg.Entries,
		engine:        rules.NewEngine(cfg.Table),
		rule:          cfg.Rule,
		prompter:      cfg.Prompter,
		defaultWeight: cfg.DefaultWeight,
	}, nil
}

// Rule returns the rule this pipeline encodes with.
func (p *Pipeline) Rule() domain.Rule { return p.rule }

// Entries exposes the underlying dictionary store for end-of-run
// normalization by the drivers.
func (p *Pipeline) Entries() *store.EntryStore { return p.entries }

// Ingest runs one phrase through the state machine and returns its terminal
// outcome. Steps short-circuit in order: empty phrase, duplicate, table
// coverage, codeable stripping, encoding, weight resolution, append.
func (p *Pipeline) Ingest(phrase string) domain.Result {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return domain.Rejected(phrase, domain.ReasonEmptyPhrase)
	}

	if p.entries.Contains(phrase) {
		p.log.Debug("phrase already in dictionary", slog.String("phrase", phrase))
		return domain.Skipped(phrase)
	}

	codeable := domain.CodeableChars(phrase)

	if !p.rule.SkipsTableCheck() {
		for _, char := range codeable {
			if !p.table.Contains(char) {
				p.log.Warn("phrase contains uncodeable character",
					slog.String("phrase", phrase),
					slog.String("char", string(char)),
				)
				return domain.Rejected(phrase, domain.ReasonUncodeableChars)
			}
		}
	}

	if codeable == "" && p.rule != domain.RuleManual {
		p.log.Warn("phrase has no codeable characters", slog.String("phrase", phrase))
		return domain.Rejected(phrase, domain.ReasonNoCodeableChars)
	}

	code, err := p.resolveCode(phrase, codeable)
	if err != nil {
		p.log.Info("manual code input cancelled", slog.String("phrase", phrase))
		return domain.Rejected(phrase, domain.ReasonCancelled)
	}

	weight := p.defaultWeight
	if w, ok := p.weights.Lookup(phrase); ok {
		weight = w
	}

	entry := domain.Entry{Phrase: phrase, Code: code, Weight: weight}
	if err := p.entries.Append(entry); err != nil {
		// Logged at error level: a failed append points at the system
		// (permissions, disk), not at the input.
		p.log.Error("dictionary append failed",
			slog.String("phrase", phrase),
			slog.String("error", err.Error()),
		)
		res := domain.Rejected(phrase, domain.ReasonWriteError)
		res.Err = err
		return res
	}

	p.log.Info("entry added",
		slog.String("phrase", phrase),
		slog.String("code", code),
		slog.Int("weight", weight),
	)
	return domain.Result{Phrase: phrase, Code: code, Weight: weight, Status: domain.StatusAdded}
}

// resolveCode produces the entry code: the manual rule loops on the
// prompter until the input normalizes cleanly or the user cancels; all
// other rules call the engine on the codeable characters.
func (p *Pipeline) resolveCode(phrase, codeable string) (string, error) {
	if p.rule != domain.RuleManual {
		return p.engine.Encode(codeable, p.rule)
	}

	for {
		raw, err := p.prompter.PromptCode(phrase)
		if err != nil {
			return "", err
		}
		code, err := domain.NormalizeManualCode(raw)
		if err != nil {
			p.log.Warn("manual code rejected",
				slog.String("phrase", phrase),
				slog.String("error", err.Error()),
			)
			continue
		}
		return code, nil
	}
}
