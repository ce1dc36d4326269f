// Package weights loads the phrase → weight table used to rank dictionary
// candidates. The table is read once per run and never mutated.
package weights

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Store maps a phrase to the best weight observed across all sources.
type Store struct {
	byPhrase map[string]int
}

// Load reads a tab-separated `phrase<TAB>weight` file. Duplicate phrases
// keep the maximum weight regardless of order; weights that are not plain
// non-negative decimals are coerced to 0 with a warning rather than
// rejected. A missing or unreadable file is an error; the caller decides
// whether that is fatal.
func Load(path string, log *slog.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open weight table: %w", err)
	}
	defer f.Close()

	s := &Store{byPhrase: make(map[string]int)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		phrase := parts[0]
		weight := parseWeight(parts[1], log)
		if existing, ok := s.byPhrase[phrase]; !ok || weight > existing {
			s.byPhrase[phrase] = weight
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read weight table: %w", err)
	}

	log.Info("weight table loaded", slog.String("path", path), slog.Int("phrases", s.Len()))
	return s, nil
}

// parseWeight coerces a weight field to a non-negative int. Anything that
// is not all decimal digits becomes 0.
func parseWeight(field string, log *slog.Logger) int {
	field = strings.TrimSpace(field)
	if !isDigits(field) {
		log.Warn("malformed weight treated as 0", slog.String("weight", field))
		return 0
	}
	w, err := strconv.Atoi(field)
	if err != nil {
		// Digits but out of int range.
		log.Warn("malformed weight treated as 0", slog.String("weight", field))
		return 0
	}
	return w
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Len returns the number of distinct phrases in the store.
func (s *Store) Len() int { return len(s.byPhrase) }

// Lookup returns the stored weight for phrase.
func (s *Store) Lookup(phrase string) (int, bool) {
	w, ok := s.byPhrase[phrase]
	return w, ok
}
