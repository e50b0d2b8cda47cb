// Package template renders patina templates.
//
// Templates use the mustache syntax shared with handlebars. Rendering is
// strict: every referenced variable must exist, output is never HTML
// escaped, and \{{ produces a literal {{.
package template

import (
	"fmt"
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/arthur-debert/dotpatina/pkg/vars"
)

// Renderer turns a template source into text using a variable tree.
type Renderer interface {
	Render(name, source string, data *vars.Value) (string, error)
}

// MissingVariableError reports a variable referenced by a template that
// does not exist in the variable tree.
type MissingVariableError struct {
	Path string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing variable %q", e.Path)
}

// literalOpen swaps delimiters around a literal {{ so the parser leaves it
// alone, then restores the defaults.
const literalOpen = "{{=<% %>=}}{{<%={{ }}=%>"

// The engine setting is package wide. Every template rendered by this
// process is strict.
func init() {
	mustache.AllowMissingVariables = false
}

type mustacheRenderer struct{}

// NewRenderer returns the strict mustache renderer.
func NewRenderer() Renderer {
	return &mustacheRenderer{}
}

func (r *mustacheRenderer) Render(name, source string, data *vars.Value) (string, error) {
	tmpl, err := mustache.ParseStringRaw(escapeBraces(source), true)
	if err != nil {
		return "", err
	}

	if data == nil {
		data = vars.NewObject()
	}
	if err := checkTags(tmpl.Tags(), []*vars.Value{data}); err != nil {
		return "", err
	}

	out, err := tmpl.Render(context(data))
	if err != nil {
		if path, ok := missingPath(err); ok {
			return "", &MissingVariableError{Path: path}
		}
		return "", err
	}
	return out, nil
}

// context converts the tree for the engine. Nulls render as empty text
// and are falsy in sections.
func context(v *vars.Value) interface{} {
	switch v.Kind() {
	case vars.Null:
		return ""
	case vars.Object:
		m := make(map[string]interface{}, v.Len())
		for _, k := range v.Keys() {
			field, _ := v.Get(k)
			m[k] = context(field)
		}
		return m
	case vars.Array:
		items := v.Items()
		s := make([]interface{}, len(items))
		for i, item := range items {
			s[i] = context(item)
		}
		return s
	}
	return v.Interface()
}

func escapeBraces(source string) string {
	return strings.ReplaceAll(source, `\{{`, literalOpen)
}

// checkTags validates every variable and section name against the tree
// before rendering, so a miss names the full dotted path. stack holds the
// section contexts, innermost last. Section bodies are only checked for
// contexts they would actually render with.
func checkTags(tags []mustache.Tag, stack []*vars.Value) error {
	for _, tag := range tags {
		name := tag.Name()
		switch tag.Type() {
		case mustache.Variable:
			if name == "." {
				continue
			}
			if _, ok := resolve(stack, name); !ok {
				return &MissingVariableError{Path: name}
			}
		case mustache.Section:
			v, ok := resolve(stack, name)
			if !ok {
				return &MissingVariableError{Path: name}
			}
			for _, ctx := range sectionContexts(v) {
				if err := checkTags(tag.Tags(), append(stack[:len(stack):len(stack)], ctx)); err != nil {
					return err
				}
			}
		case mustache.InvertedSection:
			v, ok := resolve(stack, name)
			if !ok {
				return &MissingVariableError{Path: name}
			}
			if len(sectionContexts(v)) > 0 {
				continue
			}
			if err := checkTags(tag.Tags(), stack); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve finds the first path segment in the innermost context that has
// it, then walks the rest of the path from there.
func resolve(stack []*vars.Value, name string) (*vars.Value, bool) {
	if name == "." {
		return stack[len(stack)-1], true
	}
	first, _, _ := strings.Cut(name, ".")
	for i := len(stack) - 1; i >= 0; i-- {
		ctx := stack[i]
		if ctx.Kind() != vars.Object {
			continue
		}
		if _, ok := ctx.Get(first); ok {
			return ctx.Lookup(name)
		}
	}
	return nil, false
}

// sectionContexts lists the contexts a section body renders with: one per
// array item, the value itself when truthy, none when falsy.
func sectionContexts(v *vars.Value) []*vars.Value {
	switch v.Kind() {
	case vars.Null:
		return nil
	case vars.Array:
		return v.Items()
	case vars.Object:
		return []*vars.Value{v}
	case vars.String:
		if strings.TrimSpace(v.Str()) == "" {
			return nil
		}
	case vars.Integer:
		if v.Int() == 0 {
			return nil
		}
	case vars.Float:
		if v.Float() == 0 {
			return nil
		}
	case vars.Bool:
		if !v.Bool() {
			return nil
		}
	}
	return []*vars.Value{v}
}

// missingPath extracts the variable name from the engine's strict-mode
// error, which reads: missing variable "name".
func missingPath(err error) (string, bool) {
	msg := err.Error()
	const marker = `missing variable "`
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	rest := msg[i+len(marker):]
	j := strings.Index(rest, `"`)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}
