package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/wubigen/internal/domain"
)

// ReaderPrompter reads manual codes line by line, typically from stdin.
// EOF is reported as domain.ErrCancelled.
type ReaderPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReaderPrompter wraps an input/output pair for interactive prompting.
// When the caller also reads from in, it must pass its own *bufio.Reader
// here (bufio.NewReader returns it unwrapped) so both sides share one
// buffer; two independent buffered readers over the same input would steal
// each other's lines.
func NewReaderPrompter(in io.Reader, out io.Writer) *ReaderPrompter {
	return &ReaderPrompter{in: bufio.NewReader(in), out: out}
}

// PromptCode asks for a code and returns the raw line. Validation and
// re-prompting happen in the pipeline.
func (p *ReaderPrompter) PromptCode(phrase string) (string, error) {
	fmt.Fprintf(p.out, "code for %q (lowercase letters and spaces): ", phrase)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) != "" {
				return line, nil
			}
			return "", domain.ErrCancelled
		}
		return "", fmt.Errorf("read manual code: %w", err)
	}
	return strings.TrimSuffix(line, "\n"), nil
}
