// Package store holds the two mutable, file-backed collections of a run:
// the dictionary itself (EntryStore) and the set of phrases that failed in
// earlier batch runs (FailSet). Persistence is behind a small Backend so
// the pipeline can be tested purely in memory.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Backend is a line-oriented append-only persistence target.
type Backend interface {
	// ReadLines returns all current lines. A backend that has never been
	// written to returns no lines and no error.
	ReadLines() ([]string, error)
	// AppendLine durably appends one record. Implementations must write
	// the line and its terminator in a single call so an interrupted run
	// never leaves a partial line behind.
	AppendLine(line string) error
	// Normalize rewrites the backing storage without blank lines.
	Normalize() error
}

// FileBackend persists lines to a UTF-8 text file, one record per line.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend over path. The file is created lazily on
// first append.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file path.
func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) ReadLines() ([]string, error) {
	f, err := os.Open(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", b.path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	return lines, nil
}

func (b *FileBackend) AppendLine(line string) error {
	f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", b.path, err)
	}
	defer f.Close()

	// One Write call per record keeps every line complete even if the run
	// is interrupted right after.
	if _, err := f.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("append to %s: %w", b.path, err)
	}
	return nil
}

func (b *FileBackend) Normalize() error {
	lines, err := b.ReadLines()
	if err != nil {
		return err
	}

	var b2 strings.Builder
	kept := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b2.WriteString(line)
		b2.WriteByte('\n')
		kept++
	}
	if kept == len(lines) {
		return nil
	}
	if err := os.WriteFile(b.path, []byte(b2.String()), 0o644); err != nil {
		return fmt.Errorf("rewrite %s: %w", b.path, err)
	}
	return nil
}

// MemBackend is an in-memory Backend for tests. AppendErr, when set, makes
// every append fail with that error.
type MemBackend struct {
	Lines     []string
	AppendErr error
}

func (b *MemBackend) ReadLines() ([]string, error) {
	return append([]string(nil), b.Lines...), nil
}

func (b *MemBackend) AppendLine(line string) error {
	if b.AppendErr != nil {
		return b.AppendErr
	}
	b.Lines = append(b.Lines, line)
	return nil
}

func (b *MemBackend) Normalize() error {
	var kept []string
	for _, line := range b.Lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	b.Lines = kept
	return nil
}
