// Package ui provides the output and confirmation capability used by the
// patina engine.
//
// Console is the production implementation writing to a terminal. Tests
// use testutil.RecordingUI instead.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotpatina/pkg/diff"
	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/style"
)

// Interface is how the engine talks to the user.
type Interface interface {
	// Output writes s as is.
	Output(s string)
	// FileHeader introduces the section for one file.
	FileHeader(path string)
	// Diff writes a formatted diff.
	Diff(r diff.Result)
	// Confirm prints prompt and reports whether the answer was "y".
	Confirm(prompt string) (bool, error)
	// Styles returns the styles matching this output.
	Styles() *style.Styles
}

// Console writes to out and reads answers from in.
type Console struct {
	out    io.Writer
	in     *bufio.Reader
	styles *style.Styles
}

var _ Interface = (*Console)(nil)

// NewConsole creates a console. Color is decided once, here.
func NewConsole(out io.Writer, in io.Reader, noColor bool) *Console {
	return &Console{
		out:    out,
		in:     bufio.NewReader(in),
		styles: style.New(out, noColor),
	}
}

func (c *Console) Output(s string) {
	_, _ = io.WriteString(c.out, s)
}

func (c *Console) FileHeader(path string) {
	c.Output(c.styles.Header(path) + "\n")
}

func (c *Console) Diff(r diff.Result) {
	c.Output(r.Text)
}

// Confirm reads one line. Only "y", in any case and surrounded by any
// whitespace, is an acceptance; end of input declines.
func (c *Console) Confirm(prompt string) (bool, error) {
	c.Output(prompt)

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, errors.ErrInput, "failed to read user input")
	}
	return IsAffirmative(line), nil
}

func (c *Console) Styles() *style.Styles {
	return c.styles
}

// IsAffirmative reports whether answer accepts a prompt.
func IsAffirmative(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

// Printf is a convenience for formatted output.
func Printf(ui Interface, format string, args ...interface{}) {
	ui.Output(fmt.Sprintf(format, args...))
}
