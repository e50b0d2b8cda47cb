// Package render runs the templates of a patina.
package render

import (
	stderrors "errors"

	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/filesystem"
	"github.com/arthur-debert/dotpatina/pkg/logging"
	"github.com/arthur-debert/dotpatina/pkg/patina"
	"github.com/arthur-debert/dotpatina/pkg/template"
	"github.com/arthur-debert/dotpatina/pkg/vars"
)

// ChangeState records whether a rendered file differs from its target.
type ChangeState int

const (
	ChangesUnknown ChangeState = iota
	ChangesPresent
	ChangesAbsent
)

func (c ChangeState) String() string {
	switch c {
	case ChangesPresent:
		return "changed"
	case ChangesAbsent:
		return "unchanged"
	default:
		return "unknown"
	}
}

// RenderedFile is the output of one template for one run.
type RenderedFile struct {
	Entry *patina.FileEntry
	// TemplatePath and TargetPath are resolved against the patina directory.
	TemplatePath string
	TargetPath   string
	Changes      ChangeState
	Text         string
}

// Pipeline renders the selected entries of a patina.
type Pipeline struct {
	fs       filesystem.FS
	renderer template.Renderer
}

func NewPipeline(fs filesystem.FS, renderer template.Renderer) *Pipeline {
	return &Pipeline{fs: fs, renderer: renderer}
}

// Render renders every entry selected by tags, in order. The first failure
// aborts the run and no files are returned.
func (pl *Pipeline) Render(p *patina.Patina, tags []string) ([]*RenderedFile, error) {
	logger := logging.GetLogger("render")

	data := p.Vars
	if data == nil {
		data = vars.NewObject()
	}

	entries := p.FilesForTags(tags)
	files := make([]*RenderedFile, 0, len(entries))
	for _, entry := range entries {
		templatePath := p.ResolvePath(entry.Template)

		source, err := pl.fs.ReadFile(templatePath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read template %s", templatePath).
				WithDetail(errors.DetailPath, templatePath)
		}

		text, err := pl.renderer.Render(entry.Template, string(source), data)
		if err != nil {
			return nil, renderError(entry.Template, err)
		}

		files = append(files, &RenderedFile{
			Entry:        entry,
			TemplatePath: templatePath,
			TargetPath:   p.ResolvePath(entry.Target),
			Text:         text,
		})

		logger.Debug().
			Str("template", templatePath).
			Int("bytes", len(text)).
			Msg("template rendered")
	}

	logger.Info().
		Str("patina", p.Name).
		Strs("tags", tags).
		Int("files", len(files)).
		Msg("patina rendered")
	return files, nil
}

func renderError(name string, cause error) error {
	err := errors.Wrapf(cause, errors.ErrRender, "failed to render template %s", name).
		WithDetail(errors.DetailTemplate, name)

	var missing *template.MissingVariableError
	if stderrors.As(cause, &missing) {
		err.WithDetail(errors.DetailVariable, missing.Path)
	}
	return err
}
