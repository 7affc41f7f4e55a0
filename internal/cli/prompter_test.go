package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewPrompter(strings.NewReader(input), out), out
}

func TestPrompter_BlankIsAbsent(t *testing.T) {
	for _, blank := range []string{"\n", "   \n", "\t\n"} {
		p, _ := newTestPrompter(blank + blank + blank)

		text, err := p.Text("name")
		require.NoError(t, err)
		require.Nil(t, text)

		n, err := p.Int("count")
		require.NoError(t, err)
		require.Nil(t, n)

		d, err := p.Decimal("hours")
		require.NoError(t, err)
		require.Nil(t, d)
	}
}

func TestPrompter_WritesLabel(t *testing.T) {
	p, out := newTestPrompter("Deck\n")

	text, err := p.Text("Enter the project name")
	require.NoError(t, err)
	require.Equal(t, "Deck", *text)
	require.Equal(t, "Enter the project name: ", out.String())
}

func TestPrompter_TrimsText(t *testing.T) {
	p, _ := newTestPrompter("  build a deck  \n")

	text, err := p.Text("notes")
	require.NoError(t, err)
	require.Equal(t, "build a deck", *text)
}

func TestPrompter_Int(t *testing.T) {
	p, _ := newTestPrompter("42\n-3\nabc\n4.5\n")

	n, err := p.Int("a")
	require.NoError(t, err)
	require.Equal(t, 42, *n)

	n, err = p.Int("b")
	require.NoError(t, err)
	require.Equal(t, -3, *n)

	for _, bad := range []string{"abc", "4.5"} {
		_, err = p.Int("c")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, bad, verr.Input)
		require.Equal(t, bad+" is not a valid number", err.Error())
	}
}

func TestPrompter_DecimalRoundsToCents(t *testing.T) {
	p, _ := newTestPrompter("10\n1.005\n0.1\n")

	d, err := p.Decimal("a")
	require.NoError(t, err)
	require.Equal(t, "10.00", d.StringFixed(2))

	d, err = p.Decimal("b")
	require.NoError(t, err)
	require.Equal(t, "1.01", d.String())

	d, err = p.Decimal("c")
	require.NoError(t, err)
	require.Equal(t, "0.10", d.StringFixed(2))
}

func TestPrompter_DecimalValidation(t *testing.T) {
	p, _ := newTestPrompter("abc\n")

	d, err := p.Decimal("hours")
	require.Nil(t, d)
	require.EqualError(t, err, "abc is not a valid decimal number")
}

func TestPrompter_EOF(t *testing.T) {
	p, _ := newTestPrompter("last")

	text, err := p.Text("a")
	require.NoError(t, err)
	require.Equal(t, "last", *text)

	_, err = p.Text("b")
	require.True(t, errors.Is(err, io.EOF))

	_, err = p.Int("c")
	require.ErrorIs(t, err, io.EOF)
}

func TestPrompter_DecimalRejectsOutOfRange(t *testing.T) {
	inputs := []string{"1e50000000", "1e-50000000", "100000", "-100000", "99999.995"}
	p, _ := newTestPrompter(strings.Join(inputs, "\n") + "\n99999.99\n")

	for _, in := range inputs {
		d, err := p.Decimal("hours")
		require.Nil(t, d)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, in+" is not a valid decimal number", err.Error())
	}

	d, err := p.Decimal("hours")
	require.NoError(t, err)
	require.Equal(t, "99999.99", d.String())
}
