package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bdutremble/projects/internal/domain/project"
	"github.com/shopspring/decimal"
)

// Prompter reads one line per prompt. A blank answer is reported as a nil
// value for every type so callers can tell "no value" from zero or "".
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing labels to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Text prompts for free text. The returned text is trimmed.
func (p *Prompter) Text(label string) (*string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read input: %w", err)
		}
		// A final line without a newline still counts; the next read reports EOF.
		if line == "" {
			fmt.Fprintln(p.out)
			return nil, io.EOF
		}
	}

	text := strings.TrimSpace(line)
	if text == "" {
		return nil, nil
	}
	return &text, nil
}

// Int prompts for a base-10 integer.
func (p *Prompter) Int(label string) (*int, error) {
	text, err := p.Text(label)
	if err != nil || text == nil {
		return nil, err
	}

	n, err := strconv.Atoi(*text)
	if err != nil {
		return nil, &ValidationError{Input: *text, Kind: "number"}
	}
	return &n, nil
}

// Decimal prompts for a decimal number, rounded to two fractional digits.
// Values outside the range of a stored amount are rejected.
func (p *Prompter) Decimal(label string) (*decimal.Decimal, error) {
	text, err := p.Text(label)
	if err != nil || text == nil {
		return nil, err
	}

	d, err := decimal.NewFromString(*text)
	if err != nil || !project.InAmountRange(d) {
		return nil, &ValidationError{Input: *text, Kind: "decimal number"}
	}
	d = d.Round(2)
	if !project.InAmountRange(d) {
		return nil, &ValidationError{Input: *text, Kind: "decimal number"}
	}
	return &d, nil
}
