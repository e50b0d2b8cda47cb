package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// gap is the number of unchanged lines kept on each side of a change.
const gap = 4

// far marks a line with no change on that side.
const far = -1

// Highlighter styles the lines of a formatted diff. It only ever receives
// single lines without their trailing newline.
type Highlighter interface {
	Insert(line string) string
	Delete(line string) string
	Summary(line string) string
}

type plain struct{}

func (plain) Insert(line string) string  { return line }
func (plain) Delete(line string) string  { return line }
func (plain) Summary(line string) string { return line }

// Plain leaves every line unstyled.
var Plain Highlighter = plain{}

// Result is a formatted diff.
type Result struct {
	HasChanges bool
	Text       string
	Inserted   int
	Deleted    int
}

// Engine formats diffs with a highlighter.
type Engine struct {
	h Highlighter
}

// New returns an engine using h. A nil highlighter means Plain.
func New(h Highlighter) *Engine {
	if h == nil {
		h = Plain
	}
	return &Engine{h: h}
}

// Compute diffs oldText against newText.
func (e *Engine) Compute(oldText, newText string) Result {
	return e.Format(Lines(oldText, newText))
}

// Format renders an already computed line diff.
func (e *Engine) Format(changes []Change) Result {
	lines, finalOld, finalNew := annotateForward(changes)

	res := Result{}
	for _, l := range lines {
		switch l.op {
		case Insert:
			res.Inserted++
		case Delete:
			res.Deleted++
		}
	}
	res.HasChanges = res.Inserted+res.Deleted > 0

	if !res.HasChanges {
		res.Text = e.h.Summary(fmt.Sprintf("%d lines, no changes detected", len(lines))) + "\n"
		return res
	}

	width := max(len(strconv.Itoa(finalOld)), len(strconv.Itoa(finalNew)))
	res.Text = e.render(annotateBackward(lines), width)
	return res
}

// line is a change annotated with its line numbers and distances to the
// nearest change on each side. A zero line number means the side has none.
type line struct {
	op      Op
	content string
	oldNum  int
	newNum  int
	since   int
	until   int
	visible bool
}

// annotateForward numbers the lines and records the distance since the
// previous change. It returns the final old and new counters.
func annotateForward(changes []Change) ([]line, int, int) {
	out := make([]line, len(changes))
	oldNum, newNum := 1, 1
	since := far

	for i, c := range changes {
		l := line{op: c.Op, content: c.Text, until: far}
		switch c.Op {
		case Insert:
			since = 0
			l.newNum = newNum
			newNum++
		case Delete:
			since = 0
			l.oldNum = oldNum
			oldNum++
		default:
			if since != far {
				since++
			}
			l.oldNum = oldNum
			l.newNum = newNum
			oldNum++
			newNum++
		}
		l.since = since
		out[i] = l
	}
	return out, oldNum, newNum
}

// annotateBackward records the distance until the next change and decides
// which lines are shown.
func annotateBackward(lines []line) []line {
	out := make([]line, len(lines))
	until := far

	for i := len(lines) - 1; i >= 0; i-- {
		l := lines[i]
		if l.op == Equal {
			if until != far {
				until++
			}
		} else {
			until = 0
		}
		l.until = until
		l.visible = near(l.since) || near(l.until)
		out[i] = l
	}
	return out
}

func near(distance int) bool {
	return distance != far && distance <= gap
}

func (e *Engine) render(lines []line, width int) string {
	var b strings.Builder
	hidden := 0

	flush := func() {
		if hidden > 0 {
			b.WriteString("\n" + e.h.Summary(fmt.Sprintf("... %d unchanged lines", hidden)) + "\n\n")
			hidden = 0
		}
	}

	for _, l := range lines {
		if !l.visible {
			hidden++
			continue
		}
		flush()
		b.WriteString(e.formatLine(l, width))
		b.WriteString("\n")
	}
	flush()
	return b.String()
}

func (e *Engine) formatLine(l line, width int) string {
	marker := " "
	switch l.op {
	case Insert:
		marker = "+"
	case Delete:
		marker = "-"
	}

	text := fmt.Sprintf("%s %*s %*s | %s",
		marker, width, number(l.oldNum), width, number(l.newNum),
		strings.TrimSuffix(l.content, "\n"))

	switch l.op {
	case Insert:
		return e.h.Insert(text)
	case Delete:
		return e.h.Delete(text)
	}
	return text
}

func number(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
