// Package style holds the terminal styles used by dotpatina output.
//
// Styles are bound to one output writer and an explicit color setting
// chosen at construction. When color is off every method returns its
// input unchanged.
package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/dotpatina/pkg/diff"
)

// Styles renders styled text for one output.
type Styles struct {
	plain bool

	insert  lipgloss.Style
	delete  lipgloss.Style
	summary lipgloss.Style
	header  lipgloss.Style
	path    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	bold    lipgloss.Style
}

var _ diff.Highlighter = (*Styles)(nil)

// New creates styles for w. The color profile is detected from w unless
// noColor is set.
func New(w io.Writer, noColor bool) *Styles {
	if noColor {
		return NewWithProfile(w, termenv.Ascii)
	}
	return newStyles(lipgloss.NewRenderer(w))
}

// NewWithProfile creates styles for w using a fixed color profile.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return newStyles(r)
}

// Plain returns styles that never emit escape sequences.
func Plain() *Styles {
	return &Styles{plain: true}
}

func newStyles(r *lipgloss.Renderer) *Styles {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Styles{
		plain:   r.ColorProfile() == termenv.Ascii,
		insert:  base.Foreground(InsertColor),
		delete:  base.Foreground(DeleteColor),
		summary: base.Foreground(SummaryColor).Bold(true),
		header:  base.Foreground(HeaderColor).Bold(true).Underline(true),
		path:    base.Foreground(HeaderColor),
		muted:   base.Foreground(MutedColor),
		success: base.Foreground(SuccessColor),
		err:     base.Foreground(ErrorColor).Bold(true),
		bold:    base.Bold(true),
	}
}

// IsPlain reports whether styling is disabled.
func (s *Styles) IsPlain() bool { return s.plain }

func (s *Styles) render(st lipgloss.Style, text string) string {
	if s.plain || text == "" {
		return text
	}
	return st.Render(text)
}

func (s *Styles) Insert(line string) string  { return s.render(s.insert, line) }
func (s *Styles) Delete(line string) string  { return s.render(s.delete, line) }
func (s *Styles) Summary(line string) string { return s.render(s.summary, line) }

// Header styles a file section header.
func (s *Styles) Header(text string) string { return s.render(s.header, text) }

func (s *Styles) Path(text string) string    { return s.render(s.path, text) }
func (s *Styles) Muted(text string) string   { return s.render(s.muted, text) }
func (s *Styles) Success(text string) string { return s.render(s.success, text) }
func (s *Styles) Error(text string) string   { return s.render(s.err, text) }
func (s *Styles) Bold(text string) string    { return s.render(s.bold, text) }
