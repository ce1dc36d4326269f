package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wubigen/internal/domain"
)

// Report is the audit record of one run, written as a standalone file under
// the record directory so dictionary changes stay reviewable after sync.
type Report struct {
	RunID   uuid.UUID
	Source  string // "interactive" or the batch file base name
	Rule    domain.Rule
	Records []domain.Result
}

// NewReport stamps a fresh run ID on the given results.
func NewReport(source string, rule domain.Rule, records []domain.Result) Report {
	return Report{RunID: uuid.New(), Source: source, Rule: rule, Records: records}
}

// Write persists the report under dir and returns the file path. The
// directory is created if needed. Reports with no records are skipped.
func (r Report) Write(dir string, now time.Time) (string, error) {
	if len(r.Records) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create record dir: %w", err)
	}

	name := fmt.Sprintf("%s_processed_%s_%s.txt",
		r.Source,
		now.Format("20060102_150405"),
		r.RunID.String()[:8],
	)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(r.render(now)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func (r Report) render(now time.Time) string {
	var added, skipped, failed []domain.Result
	for _, rec := range r.Records {
		switch rec.Status {
		case domain.StatusAdded:
			added = append(added, rec)
		case domain.StatusSkipped:
			skipped = append(skipped, rec)
		case domain.StatusRejected:
			failed = append(failed, rec)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# run %s at %s\n", r.RunID, now.Format(time.RFC3339))
	fmt.Fprintf(&b, "# source: %s\n", r.Source)
	fmt.Fprintf(&b, "# rule: %s\n", r.Rule)
	fmt.Fprintf(&b, "# added: %d, skipped: %d, failed: %d\n", len(added), len(skipped), len(failed))

	if len(added) > 0 {
		b.WriteString("\n# added entries\n")
		for _, rec := range added {
			fmt.Fprintf(&b, "%s\t%s\t%d\n", rec.Phrase, rec.Code, rec.Weight)
		}
	}
	if len(failed) > 0 {
		b.WriteString("\n# failed phrases\n")
		for _, rec := range failed {
			fmt.Fprintf(&b, "%s\t%s\n", rec.Phrase, rec.Reason)
		}
	}
	return b.String()
}
