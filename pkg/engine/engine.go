package engine

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotpatina/pkg/diff"
	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/filesystem"
	"github.com/arthur-debert/dotpatina/pkg/logging"
	"github.com/arthur-debert/dotpatina/pkg/patina"
	"github.com/arthur-debert/dotpatina/pkg/render"
	"github.com/arthur-debert/dotpatina/pkg/template"
	"github.com/arthur-debert/dotpatina/pkg/trash"
	"github.com/arthur-debert/dotpatina/pkg/ui"
)

// ConfirmPrompt is shown before any target is written.
const ConfirmPrompt = "Do you want to continue? (y/n): "

// State is where an operation stopped.
type State int

const (
	StateNew State = iota
	StateLoaded
	StateRendered
	StateDiffed
	StateConfirmed
	StateApplied
	StateDeclined
	StateNoChanges
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateRendered:
		return "rendered"
	case StateDiffed:
		return "diffed"
	case StateConfirmed:
		return "confirmed"
	case StateApplied:
		return "applied"
	case StateDeclined:
		return "declined"
	case StateNoChanges:
		return "no-changes"
	default:
		return "new"
	}
}

// Options configures an Engine. Nil collaborators get production defaults.
type Options struct {
	PatinaPath string
	Tags       []string
	// VarsFiles are overlaid onto the patina variables in order.
	VarsFiles []string

	FS       filesystem.FS
	Renderer template.Renderer
	Trash    trash.Trasher

	UseTrash bool
	NoInput  bool
}

// Result summarizes an Apply.
type Result struct {
	State   State
	Files   []*render.RenderedFile
	Written int
	Trashed int
}

// Engine runs one patina against one user interface.
type Engine struct {
	ui       ui.Interface
	opts     Options
	fs       filesystem.FS
	renderer template.Renderer
	trash    trash.Trasher
	state    State
}

// New creates an engine reporting to u.
func New(u ui.Interface, opts Options) *Engine {
	e := &Engine{
		ui:       u,
		opts:     opts,
		fs:       opts.FS,
		renderer: opts.Renderer,
		trash:    opts.Trash,
	}
	if e.fs == nil {
		e.fs = filesystem.NewOS()
	}
	if e.renderer == nil {
		e.renderer = template.NewRenderer()
	}
	if e.trash == nil {
		e.trash = trash.New(e.fs, "")
	}
	return e
}

// State is the state reached by the last operation.
func (e *Engine) State() State { return e.state }

// Load reads the patina and applies the variable overlays.
func (e *Engine) Load() (*patina.Patina, error) {
	logger := logging.GetLogger("engine")
	done := logging.LogOperationStart(logger, "load")
	defer done()

	p, err := patina.Load(e.fs, e.opts.PatinaPath)
	if err != nil {
		return nil, err
	}
	if err := p.OverlayVariables(e.fs, e.opts.VarsFiles); err != nil {
		return nil, err
	}

	e.state = StateLoaded
	logger.Debug().
		Str("patina", p.Name).
		Str("source", p.SourcePath).
		Int("files", len(p.Files)).
		Int("overlays", len(e.opts.VarsFiles)).
		Msg("patina loaded")
	return p, nil
}

func (e *Engine) render(p *patina.Patina) ([]*render.RenderedFile, error) {
	done := logging.LogOperationStart(logging.GetLogger("engine"), "render")
	defer done()

	files, err := render.NewPipeline(e.fs, e.renderer).Render(p, e.opts.Tags)
	if err != nil {
		return nil, err
	}
	e.state = StateRendered
	return files, nil
}

// Render prints every selected template rendered against the patina
// variables. Nothing is written.
func (e *Engine) Render() error {
	p, err := e.Load()
	if err != nil {
		return err
	}
	files, err := e.render(p)
	if err != nil {
		return err
	}

	ui.Printf(e.ui, "Rendered %d files\n\n", len(files))
	for _, f := range files {
		e.ui.FileHeader(f.Entry.Template)
		e.ui.Output(f.Text + "\n")
	}
	return nil
}

// Apply renders, shows the diff against every target, asks for
// confirmation and writes the changed targets.
func (e *Engine) Apply() (*Result, error) {
	logger := logging.GetLogger("engine")

	p, err := e.Load()
	if err != nil {
		return nil, err
	}
	files, err := e.render(p)
	if err != nil {
		return nil, err
	}

	res := &Result{Files: files}
	changed, err := e.diff(files)
	if err != nil {
		return nil, err
	}
	res.State = e.state

	if !changed {
		e.ui.Output("No file changes detected in the patina\n")
		e.state = StateNoChanges
		res.State = e.state
		return res, nil
	}

	if !e.opts.NoInput {
		ok, err := e.ui.Confirm(ConfirmPrompt)
		if err != nil {
			return res, err
		}
		if !ok {
			e.ui.Output("Not applying patina.\n")
			e.state = StateDeclined
			res.State = e.state
			logger.Info().Str("patina", p.Name).Msg("apply declined")
			return res, nil
		}
	}
	e.state = StateConfirmed
	res.State = e.state

	e.ui.Output("\nApplying patina files\n")
	if err := e.write(res); err != nil {
		return res, err
	}

	e.state = StateApplied
	res.State = e.state

	styles := e.ui.Styles()
	e.ui.Output("Done")
	if res.Trashed > 0 {
		e.ui.Output(styles.Muted(" (original files moved to trash)"))
	}
	e.ui.Output("\n")

	logger.Info().
		Str("patina", p.Name).
		Int("written", res.Written).
		Int("trashed", res.Trashed).
		Msg("patina applied")
	return res, nil
}

// diff compares every rendered file with its target and shows the result,
// unchanged files first. It reports whether any file changed.
func (e *Engine) diff(files []*render.RenderedFile) (bool, error) {
	done := logging.LogOperationStart(logging.GetLogger("engine"), "diff")
	defer done()

	styles := e.ui.Styles()
	differ := diff.New(styles)

	type shown struct {
		path   string
		result diff.Result
	}
	var changed, unchanged []shown

	for _, f := range files {
		current, err := e.readTarget(f.TargetPath)
		if err != nil {
			return false, err
		}

		d := differ.Compute(current, f.Text)
		if d.HasChanges {
			f.Changes = render.ChangesPresent
			changed = append(changed, shown{f.TargetPath, d})
		} else {
			f.Changes = render.ChangesAbsent
			unchanged = append(unchanged, shown{f.TargetPath, d})
		}
	}

	if len(unchanged) > 0 {
		e.ui.Output("\nFiles without changes:\n")
		for _, s := range unchanged {
			e.ui.Output("  " + styles.Path(s.path) + " ")
			e.ui.Diff(s.result)
		}
		e.ui.Output("\n")
	}

	if len(changed) > 0 {
		if len(unchanged) == 0 {
			e.ui.Output("\n")
		}
		for _, s := range changed {
			e.ui.FileHeader(s.path)
			e.ui.Diff(s.result)
			e.ui.Output("\n")
		}
	}

	e.state = StateDiffed
	return len(changed) > 0, nil
}

// readTarget returns the current content of a target. A missing target
// reads as empty.
func (e *Engine) readTarget(path string) (string, error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrFileRead, "cannot read target %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return string(data), nil
}

// write applies the changed files in order and stops at the first failure.
func (e *Engine) write(res *Result) error {
	logger := logging.GetLogger("engine")
	done := logging.LogOperationStart(logger, "write")
	defer done()

	styles := e.ui.Styles()
	for _, f := range res.Files {
		path := f.TargetPath
		e.ui.Output("   " + path)

		if f.Changes == render.ChangesAbsent {
			e.ui.Output(" " + styles.Success("✓") + " " + styles.Muted("(no change)") + "\n")
			continue
		}

		if e.opts.UseTrash && e.isRegularFile(path) {
			if err := e.trash.MoveToTrash(path); err != nil {
				e.ui.Output("\n")
				if errors.IsErrorCode(err, errors.ErrTrash) {
					return err
				}
				return errors.Wrapf(err, errors.ErrTrash, "cannot move %s to trash", path).
					WithDetail(errors.DetailPath, path)
			}
			res.Trashed++
		}

		if err := e.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			e.ui.Output("\n")
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot create directory for %s", path).
				WithDetail(errors.DetailPath, path)
		}
		if err := e.fs.WriteFile(path, []byte(f.Text), 0644); err != nil {
			e.ui.Output("\n")
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
				WithDetail(errors.DetailPath, path)
		}
		res.Written++

		logger.Debug().Str("target", path).Msg("target written")
		e.ui.Output(styles.Success(" ✓") + "\n")
	}
	return nil
}

func (e *Engine) isRegularFile(path string) bool {
	info, err := e.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
