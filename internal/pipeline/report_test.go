package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/heartmarshall/wubigen/internal/domain"
)

func TestReport_WriteSkipsEmptyRun(t *testing.T) {
	dir := t.TempDir()
	rep := NewReport("interactive", domain.RuleStandard, nil)

	path, err := rep.Write(dir, time.Now())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != "" {
		t.Errorf("empty run should not produce a file, got %q", path)
	}
	files, _ := os.ReadDir(dir)
	if len(files) != 0 {
		t.Errorf("record dir should stay empty, found %d files", len(files))
	}
}

func TestReport_Write(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	records := []domain.Result{
		{Phrase: "打字", Code: "rgpb", Weight: 100, Status: domain.StatusAdded},
		{Phrase: "你好", Status: domain.StatusSkipped, Reason: domain.ReasonAlreadyExists},
		{Phrase: "打猫", Status: domain.StatusRejected, Reason: domain.ReasonUncodeableChars},
	}
	rep := NewReport("phrases", domain.RuleStandard, records)

	path, err := rep.Write(dir, now)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "phrases_processed_20260314_093000_") {
		t.Errorf("file name = %q, want source and timestamp prefix", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		"# added: 1, skipped: 1, failed: 1",
		"打字\trgpb\t100",
		"打猫\tuncodeable_chars",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "你好") {
		t.Errorf("skipped phrases should not be listed:\n%s", content)
	}
}

func TestReport_UniqueRunIDs(t *testing.T) {
	a := NewReport("interactive", domain.RuleStandard, nil)
	b := NewReport("interactive", domain.RuleStandard, nil)
	if a.RunID == b.RunID {
		t.Error("consecutive reports must carry distinct run IDs")
	}
}
