package store

import "fmt"

// FailSet records phrases that failed encoding in earlier batch runs so
// overlapping inputs are not re-attempted. It is advisory, not
// authoritative: a phrase that later succeeds under a different rule or an
// updated code table is never purged from it.
type FailSet struct {
	backend Backend
	phrases map[string]struct{}
}

// OpenFailSet loads the fail file through the backend.
func OpenFailSet(backend Backend) (*FailSet, error) {
	lines, err := backend.ReadLines()
	if err != nil {
		return nil, fmt.Errorf("load fail file: %w", err)
	}

	phrases := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		phrases[line] = struct{}{}
	}
	return &FailSet{backend: backend, phrases: phrases}, nil
}

// Contains reports whether the phrase failed in this or an earlier run.
func (s *FailSet) Contains(phrase string) bool {
	_, ok := s.phrases[phrase]
	return ok
}

// Len returns the number of recorded failures.
func (s *FailSet) Len() int { return len(s.phrases) }

// Add records a failed phrase. Phrases already present are not written
// again, keeping the file duplicate-free across runs.
func (s *FailSet) Add(phrase string) error {
	if s.Contains(phrase) {
		return nil
	}
	if err := s.backend.AppendLine(phrase); err != nil {
		return err
	}
	s.phrases[phrase] = struct{}{}
	return nil
}

// Normalize strips blank lines from the backing storage.
func (s *FailSet) Normalize() error {
	return s.backend.Normalize()
}
