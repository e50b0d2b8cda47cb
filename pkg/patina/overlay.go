package patina

import (
	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/filesystem"
	"github.com/arthur-debert/dotpatina/pkg/logging"
	"github.com/arthur-debert/dotpatina/pkg/vars"
)

// OverlayVariables merges each variable document onto Vars in order. The
// first failure stops processing and names the offending file.
func (p *Patina) OverlayVariables(fs filesystem.FS, files []string) error {
	logger := logging.GetLogger("patina.overlay")

	for _, file := range files {
		path := p.ResolvePath(file)

		data, err := fs.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "cannot read variables file %s", path).
				WithDetail(errors.DetailPath, path)
		}

		overlay, err := vars.Parse(path, data)
		if err != nil {
			return err
		}
		if !overlay.IsObject() {
			return errors.Newf(errors.ErrInvalidVariables, "variables file %s must contain a table, got %s", path, overlay.Kind()).
				WithDetail(errors.DetailPath, path)
		}

		if p.Vars == nil {
			p.Vars = overlay
		} else {
			p.Vars = vars.Merge(p.Vars, overlay)
		}

		logger.Debug().
			Str("path", path).
			Int("keys", overlay.Len()).
			Msg("variables overlaid")
	}
	return nil
}
