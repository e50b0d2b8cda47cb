package testutil

import (
	"strings"
	"sync"

	"github.com/arthur-debert/dotpatina/pkg/diff"
	"github.com/arthur-debert/dotpatina/pkg/style"
	"github.com/arthur-debert/dotpatina/pkg/ui"
)

// RecordingUI collects everything written to it in plain text and answers
// every prompt with Answer (or fails with Err).
type RecordingUI struct {
	Answer bool
	Err    error

	mu      sync.Mutex
	out     strings.Builder
	prompts []string
}

var _ ui.Interface = (*RecordingUI)(nil)

// NewRecordingUI returns a UI that answers prompts with answer.
func NewRecordingUI(answer bool) *RecordingUI {
	return &RecordingUI{Answer: answer}
}

func (r *RecordingUI) Output(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out.WriteString(s)
}

func (r *RecordingUI) FileHeader(path string) {
	r.Output(path + "\n")
}

func (r *RecordingUI) Diff(d diff.Result) {
	r.Output(d.Text)
}

func (r *RecordingUI) Confirm(prompt string) (bool, error) {
	r.Output(prompt)

	r.mu.Lock()
	r.prompts = append(r.prompts, prompt)
	r.mu.Unlock()

	if r.Err != nil {
		return false, r.Err
	}
	return r.Answer, nil
}

func (r *RecordingUI) Styles() *style.Styles {
	return style.Plain()
}

// Text returns all output so far.
func (r *RecordingUI) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out.String()
}

// Prompts returns the prompts shown so far.
func (r *RecordingUI) Prompts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.prompts...)
}

// Reset clears recorded output and prompts.
func (r *RecordingUI) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out.Reset()
	r.prompts = nil
}
