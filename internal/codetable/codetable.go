// Package codetable loads the immutable single-character code table that
// every encoding rule reads from. The source is a tab-separated file of
// `character<TAB>code` lines; extra fields are ignored.
package codetable

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"
)

// UnknownFirst and UnknownFirstTwo are the sentinel codes for characters
// absent from the table, chosen so concatenated fixed-width codes keep a
// deterministic length.
const (
	UnknownFirst    = "x"
	UnknownFirstTwo = "xx"
)

// Table is an immutable character → base code mapping.
type Table struct {
	codes map[rune]string
}

// New builds a table from an in-memory mapping. Codes are lowercased the
// same way Load does.
func New(codes map[rune]string) *Table {
	normalized := make(map[rune]string, len(codes))
	for char, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		normalized[char] = code
	}
	return &Table{codes: normalized}
}

// Load reads the code table from path. It fails soft: an absent or
// unreadable file yields an empty table and a warning, leaving the fatal
// decision to the caller.
func Load(path string, log *slog.Logger) *Table {
	f, err := os.Open(path)
	if err != nil {
		log.Warn("code table unavailable", slog.String("path", path), slog.String("error", err.Error()))
		return &Table{codes: map[rune]string{}}
	}
	defer f.Close()

	t := &Table{codes: parse(f)}
	log.Info("code table loaded", slog.String("path", path), slog.Int("chars", t.Len()))
	return t
}

func parse(r io.Reader) map[rune]string {
	codes := make(map[rune]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		char, code, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		codes[char] = code
	}
	return codes
}

// parseLine extracts the character and its lowercased code from one table
// line. Lines that are blank, have fewer than two fields, or whose key is
// not a single code point are dropped.
func parseLine(line string) (rune, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, "", false
	}
	parts := strings.Split(line, "\t")
	if len(parts) < 2 {
		return 0, "", false
	}
	key := []rune(parts[0])
	code := strings.ToLower(strings.TrimSpace(parts[1]))
	if len(key) != 1 || code == "" {
		return 0, "", false
	}
	return key[0], code, true
}

// Len returns the number of characters in the table.
func (t *Table) Len() int { return len(t.codes) }

// Lookup returns the base code for char.
func (t *Table) Lookup(char rune) (string, bool) {
	code, ok := t.codes[char]
	return code, ok
}

// Contains reports whether char has a base code.
func (t *Table) Contains(char rune) bool {
	_, ok := t.codes[char]
	return ok
}

// FullCode returns the complete stored code, or "" for unknown characters.
func (t *Table) FullCode(char rune) string {
	return t.codes[char]
}

// FirstCode returns the first character of the stored code, or the "x"
// sentinel for unknown characters.
func (t *Table) FirstCode(char rune) string {
	code := t.codes[char]
	if code == "" {
		return UnknownFirst
	}
	return code[:1]
}

// FirstTwo returns the first two characters of the stored code. Single-char
// codes are padded with "x"; unknown characters yield "xx".
func (t *Table) FirstTwo(char rune) string {
	code := t.codes[char]
	switch {
	case len(code) >= 2:
		return code[:2]
	case len(code) == 1:
		return code + UnknownFirst
	default:
		return UnknownFirstTwo
	}
}
