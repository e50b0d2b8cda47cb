package patina

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/filesystem"
	"github.com/arthur-debert/dotpatina/pkg/logging"
	"github.com/arthur-debert/dotpatina/pkg/paths"
	"github.com/arthur-debert/dotpatina/pkg/vars"
)

// Patina is a loaded patina document.
type Patina struct {
	Name        string
	Description string
	// Vars is nil when the document has no vars table.
	Vars  *vars.Value
	Files []*FileEntry

	// BasePath is the absolute directory of the document, recomputed on
	// every load.
	BasePath   string
	SourcePath string
}

// FileEntry maps one template to one target.
type FileEntry struct {
	Template string
	Target   string
	Tags     []string
}

// HasTag reports whether the entry carries tag.
func (f *FileEntry) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Load reads and validates the patina document at path.
func Load(fs filesystem.FS, path string) (*Patina, error) {
	logger := logging.GetLogger("patina")

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid patina path %s", path)
	}

	data, err := fs.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read patina %s", abs).
			WithDetail(errors.DetailPath, abs)
	}

	doc, err := vars.Parse(abs, data)
	if err != nil {
		return nil, err
	}

	p, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}
	p.SourcePath = abs
	p.BasePath = filepath.Dir(abs)

	logger.Debug().
		Str("patina", p.Name).
		Str("path", abs).
		Int("files", len(p.Files)).
		Msg("patina loaded")
	return p, nil
}

// ResolvePath resolves p relative to the patina's directory.
func (p *Patina) ResolvePath(path string) string {
	return paths.Resolve(p.BasePath, path)
}

func fromDocument(doc *vars.Value) (*Patina, error) {
	if !doc.IsObject() {
		return nil, schemaError("", "patina document must be a table")
	}

	name, err := requiredString(doc, "name", "name")
	if err != nil {
		return nil, err
	}

	p := &Patina{Name: name}

	if d, ok := doc.Get("description"); ok {
		if d.Kind() != vars.String {
			return nil, schemaError("description", "description must be a string")
		}
		p.Description = d.Str()
	}

	if v, ok := doc.Get("vars"); ok {
		if !v.IsObject() {
			return nil, errors.Newf(errors.ErrInvalidVariables, "vars must be a table, got %s", v.Kind()).
				WithDetail(errors.DetailField, "vars")
		}
		p.Vars = v
	}

	files, ok := doc.Get("files")
	if !ok {
		return p, nil
	}
	if files.Kind() != vars.Array {
		return nil, schemaError("files", "files must be an array of tables")
	}
	for i, item := range files.Items() {
		entry, err := fileEntry(i, item)
		if err != nil {
			return nil, err
		}
		p.Files = append(p.Files, entry)
	}
	return p, nil
}

func fileEntry(i int, item *vars.Value) (*FileEntry, error) {
	prefix := fmt.Sprintf("files[%d]", i)
	if !item.IsObject() {
		return nil, schemaError(prefix, prefix+" must be a table")
	}

	template, err := requiredString(item, "template", prefix+".template")
	if err != nil {
		return nil, err
	}
	target, err := requiredString(item, "target", prefix+".target")
	if err != nil {
		return nil, err
	}

	entry := &FileEntry{Template: template, Target: target}

	tags, ok := item.Get("tags")
	if !ok {
		return entry, nil
	}
	if tags.Kind() != vars.Array {
		return nil, schemaError(prefix+".tags", prefix+".tags must be an array of strings")
	}
	for _, tag := range tags.Items() {
		if tag.Kind() != vars.String {
			return nil, schemaError(prefix+".tags", prefix+".tags must be an array of strings")
		}
		entry.Tags = append(entry.Tags, tag.Str())
	}
	return entry, nil
}

func requiredString(doc *vars.Value, key, field string) (string, error) {
	v, ok := doc.Get(key)
	if !ok {
		return "", schemaError(field, "missing field "+field)
	}
	if v.Kind() != vars.String {
		return "", schemaError(field, field+" must be a string")
	}
	if field == "name" && v.Str() == "" {
		return "", schemaError(field, "name must not be empty")
	}
	return v.Str(), nil
}

func schemaError(field, msg string) *errors.PatinaError {
	return errors.New(errors.ErrSchema, msg).WithDetail(errors.DetailField, field)
}
