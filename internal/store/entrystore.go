package store

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/wubigen/internal/domain"
)

// EntryStore is the persisted dictionary. Phrases are unique; an accepted
// phrase becomes visible to duplicate checks immediately because the
// in-memory set mirrors the on-disk state for the whole run.
type EntryStore struct {
	backend Backend
	phrases map[string]struct{}
}

// OpenEntryStore loads the existing dictionary through the backend. Only
// the phrase column matters for dedup, so malformed lines contribute their
// first field and are otherwise left alone.
func OpenEntryStore(backend Backend) (*EntryStore, error) {
	lines, err := backend.ReadLines()
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	phrases := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		phrase, _, _ := strings.Cut(line, "\t")
		phrases[phrase] = struct{}{}
	}
	return &EntryStore{backend: backend, phrases: phrases}, nil
}

// Contains reports whether the phrase is already in the dictionary.
func (s *EntryStore) Contains(phrase string) bool {
	_, ok := s.phrases[phrase]
	return ok
}

// Len returns the number of known phrases.
func (s *EntryStore) Len() int { return len(s.phrases) }

// Append writes one entry to durable storage and, on success, marks the
// phrase present so later duplicates in the same run are skipped.
func (s *EntryStore) Append(e domain.Entry) error {
	if err := s.backend.AppendLine(e.Line()); err != nil {
		return err
	}
	s.phrases[e.Phrase] = struct{}{}
	return nil
}

// Entries re-reads and parses the full dictionary from the backend.
func (s *EntryStore) Entries() ([]domain.Entry, error) {
	lines, err := s.backend.ReadLines()
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	entries := make([]domain.Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := domain.ParseEntry(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Normalize strips blank lines from the backing storage. Run once at the
// end of a run.
func (s *EntryStore) Normalize() error {
	return s.backend.Normalize()
}
