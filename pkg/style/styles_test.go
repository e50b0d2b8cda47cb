package style

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/dotpatina/pkg/diff"
)

func TestNoColorIsPlain(t *testing.T) {
	s := New(&bytes.Buffer{}, true)

	assert.True(t, s.IsPlain())
	for _, fn := range []func(string) string{
		s.Insert, s.Delete, s.Summary, s.Header, s.Path, s.Muted, s.Success, s.Error, s.Bold,
	} {
		assert.Equal(t, "+ 1 | \tvalue", fn("+ 1 | \tvalue"))
	}
}

func TestPlain(t *testing.T) {
	s := Plain()
	assert.True(t, s.IsPlain())
	assert.Equal(t, "x", s.Header("x"))
}

func TestColorProfileEmitsEscapes(t *testing.T) {
	s := NewWithProfile(&bytes.Buffer{}, termenv.TrueColor)

	assert.False(t, s.IsPlain())
	out := s.Insert("+   1 | hello")
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "+   1 | hello")
	assert.NotEqual(t, s.Insert("x"), s.Delete("x"))
}

func TestTabsAreKept(t *testing.T) {
	s := NewWithProfile(&bytes.Buffer{}, termenv.TrueColor)
	assert.Contains(t, s.Delete("-\tindented"), "\tindented")
}

func TestEmptyTextIsUnstyled(t *testing.T) {
	s := NewWithProfile(&bytes.Buffer{}, termenv.TrueColor)
	assert.Equal(t, "", s.Summary(""))
}

func TestStylesHighlightDiffs(t *testing.T) {
	colored := diff.New(NewWithProfile(&bytes.Buffer{}, termenv.ANSI256)).Compute("a\n", "b\n")
	plain := diff.New(Plain()).Compute("a\n", "b\n")

	assert.Equal(t, "- 1   | a\n+   1 | b\n", plain.Text)
	assert.NotEqual(t, plain.Text, colored.Text)
	assert.Equal(t, 2, strings.Count(colored.Text, "\n"), "newlines stay outside styled spans")
}
