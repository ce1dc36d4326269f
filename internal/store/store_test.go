package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/heartmarshall/wubigen/internal/domain"
)

// --- FileBackend ---

func TestFileBackend_MissingFileReadsEmpty(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "dict.txt"))

	lines, err := b.ReadLines()
	if err != nil {
		t.Fatalf("ReadLines on missing file: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %d", len(lines))
	}
}

func TestFileBackend_AppendAndRead(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "dict.txt"))

	if err := b.AppendLine("打字\trgpb\t100"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}
	if err := b.AppendLine("你好\twqvb\t50"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}

	lines, err := b.ReadLines()
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "打字\trgpb\t100" {
		t.Errorf("lines[0] = %q", lines[0])
	}
}

func TestFileBackend_NormalizeRemovesBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(path, []byte("a\tb\t1\n\n  \nc\td\t2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewFileBackend(path)
	if err := b.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\tb\t1\nc\td\t2\n" {
		t.Errorf("normalized file = %q", string(data))
	}
}

// --- EntryStore ---

func TestEntryStore_LoadAndContains(t *testing.T) {
	b := &MemBackend{Lines: []string{"打字\trgpb\t100", "", "你好\twqvb\t50"}}

	s, err := OpenEntryStore(b)
	if err != nil {
		t.Fatalf("OpenEntryStore: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains("打字") || !s.Contains("你好") {
		t.Error("loaded phrases should be present")
	}
	if s.Contains("没有") {
		t.Error("absent phrase reported present")
	}
}

func TestEntryStore_AppendMarksPresent(t *testing.T) {
	b := &MemBackend{}
	s, err := OpenEntryStore(b)
	if err != nil {
		t.Fatal(err)
	}

	e := domain.Entry{Phrase: "打字", Code: "rgpb", Weight: 100}
	if err := s.Append(e); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if !s.Contains("打字") {
		t.Error("phrase should be visible immediately after Append")
	}
	if len(b.Lines) != 1 || b.Lines[0] != "打字\trgpb\t100" {
		t.Errorf("backend lines = %v", b.Lines)
	}
}

func TestEntryStore_AppendErrorLeavesSetUntouched(t *testing.T) {
	writeErr := errors.New("disk full")
	b := &MemBackend{AppendErr: writeErr}
	s, err := OpenEntryStore(b)
	if err != nil {
		t.Fatal(err)
	}

	appendErr := s.Append(domain.Entry{Phrase: "打字", Code: "rgpb", Weight: 100})
	if !errors.Is(appendErr, writeErr) {
		t.Fatalf("Append error = %v, want wrapped disk error", appendErr)
	}
	if s.Contains("打字") {
		t.Error("failed append must not mark the phrase present")
	}
}

func TestEntryStore_Entries(t *testing.T) {
	b := &MemBackend{Lines: []string{"打字\trgpb\t100", "你好\twqvb\t50"}}
	s, err := OpenEntryStore(b)
	if err != nil {
		t.Fatal(err)
	}

	entries, err := s.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1] != (domain.Entry{Phrase: "你好", Code: "wqvb", Weight: 50}) {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

// --- FailSet ---

func TestFailSet_AddIsIdempotent(t *testing.T) {
	b := &MemBackend{}
	s, err := OpenFailSet(b)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Add("坏词"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add("坏词"); err != nil {
		t.Fatalf("second Add: %v", err)
	}

	if len(b.Lines) != 1 {
		t.Errorf("fail file should contain the phrase exactly once, got %v", b.Lines)
	}
	if !s.Contains("坏词") {
		t.Error("added phrase should be present")
	}
}

func TestFailSet_LoadFromBackend(t *testing.T) {
	b := &MemBackend{Lines: []string{"坏词", "", "另一个"}}
	s, err := OpenFailSet(b)
	if err != nil {
		t.Fatal(err)
	}

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains("坏词") || !s.Contains("另一个") {
		t.Error("loaded phrases should be present")
	}
}
