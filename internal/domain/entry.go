package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is one dictionary record: a phrase mapped to its lookup code and
// candidate-ranking weight.
type Entry struct {
	Phrase string
	Code   string
	Weight int
}

// Line renders the entry in the tab-separated dictionary format.
func (e Entry) Line() string {
	return e.Phrase + "\t" + e.Code + "\t" + strconv.Itoa(e.Weight)
}

// ParseEntry parses one tab-separated dictionary line. Extra fields are
// ignored; a malformed weight is an error (the dictionary file is ours, so
// unlike the weight table we do not coerce).
func ParseEntry(line string) (Entry, error) {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return Entry{}, fmt.Errorf("dictionary line %q: want 3 tab-separated fields, got %d", line, len(parts))
	}
	weight, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Entry{}, fmt.Errorf("dictionary line %q: weight: %w", line, err)
	}
	if weight < 0 {
		return Entry{}, fmt.Errorf("dictionary line %q: negative weight", line)
	}
	return Entry{Phrase: parts[0], Code: parts[1], Weight: weight}, nil
}
