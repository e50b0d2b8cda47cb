package patina

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/filesystem"
)

func memWith(t *testing.T, files map[string]string) filesystem.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	for path, content := range files {
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	}
	return fs
}

func TestLoad(t *testing.T) {
	fs := memWith(t, map[string]string{
		"/dots/git/patina.toml": `
name = "git"
description = "Git settings"

[vars.name]
first = "Patina"
last = "User"

[[files]]
template = "templates/gitconfig.hbs"
target = "~/.gitconfig"
tags = ["git", "work"]

[[files]]
template = "templates/ignore.hbs"
target = "/tmp/ignore"
`,
	})

	p, err := Load(fs, "/dots/git/patina.toml")
	require.NoError(t, err)

	assert.Equal(t, "git", p.Name)
	assert.Equal(t, "Git settings", p.Description)
	assert.Equal(t, "/dots/git", p.BasePath)
	assert.Equal(t, "/dots/git/patina.toml", p.SourcePath)
	require.Len(t, p.Files, 2)
	assert.Equal(t, "templates/gitconfig.hbs", p.Files[0].Template)
	assert.Equal(t, []string{"git", "work"}, p.Files[0].Tags)
	assert.Empty(t, p.Files[1].Tags)

	first, ok := p.Vars.Lookup("name.first")
	require.True(t, ok)
	assert.Equal(t, "Patina", first.Str())
}

func TestLoad_YAML(t *testing.T) {
	fs := memWith(t, map[string]string{
		"/dots/shell/patina.yaml": `
name: shell
vars:
  editor: vim
files:
  - template: zshrc.hbs
    target: ~/.zshrc
`,
	})

	p, err := Load(fs, "/dots/shell/patina.yaml")
	require.NoError(t, err)
	assert.Equal(t, "shell", p.Name)
	assert.Equal(t, "", p.Description)
	require.Len(t, p.Files, 1)
	assert.Equal(t, "zshrc.hbs", p.Files[0].Template)
}

func TestLoad_Minimal(t *testing.T) {
	fs := memWith(t, map[string]string{"/p/patina.toml": `name = "bare"`})

	p, err := Load(fs, "/p/patina.toml")
	require.NoError(t, err)
	assert.Nil(t, p.Vars, "absent vars stays absent")
	assert.Empty(t, p.Files)
	assert.Equal(t, "/p", p.BasePath)
}

func TestLoad_EmptyVarsIsPresent(t *testing.T) {
	fs := memWith(t, map[string]string{"/p/patina.toml": "name = \"x\"\n[vars]\n"})

	p, err := Load(fs, "/p/patina.toml")
	require.NoError(t, err)
	require.NotNil(t, p.Vars)
	assert.Equal(t, 0, p.Vars.Len())
}

func TestLoad_SchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		code  errors.ErrorCode
		field string
	}{
		{
			name:  "missing name",
			doc:   `description = "no name"`,
			code:  errors.ErrSchema,
			field: "name",
		},
		{
			name:  "empty name",
			doc:   `name = ""`,
			code:  errors.ErrSchema,
			field: "name",
		},
		{
			name:  "missing template",
			doc:   "name = \"x\"\n[[files]]\ntarget = \"a\"\n",
			code:  errors.ErrSchema,
			field: "files[0].template",
		},
		{
			name:  "missing target in second entry",
			doc:   "name = \"x\"\n[[files]]\ntemplate = \"a\"\ntarget = \"b\"\n[[files]]\ntemplate = \"c\"\n",
			code:  errors.ErrSchema,
			field: "files[1].target",
		},
		{
			name:  "tags not strings",
			doc:   "name = \"x\"\n[[files]]\ntemplate = \"a\"\ntarget = \"b\"\ntags = [1]\n",
			code:  errors.ErrSchema,
			field: "files[0].tags",
		},
		{
			name:  "vars not a table",
			doc:   "name = \"x\"\nvars = 3\n",
			code:  errors.ErrInvalidVariables,
			field: "vars",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memWith(t, map[string]string{"/p/patina.toml": tt.doc})

			_, err := Load(fs, "/p/patina.toml")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, tt.field, errors.GetDetail(err, errors.DetailField))
		})
	}
}

func TestLoad_ReadAndParseErrors(t *testing.T) {
	fs := memWith(t, map[string]string{"/p/bad.toml": "name = "})

	_, err := Load(fs, "/p/missing.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
	assert.Equal(t, "/p/missing.toml", errors.GetDetail(err, errors.DetailPath))

	_, err = Load(fs, "/p/bad.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
	assert.Equal(t, "/p/bad.toml", errors.GetDetail(err, errors.DetailPath))
}

func TestResolvePath(t *testing.T) {
	p := &Patina{BasePath: "/nonexistent/dots"}

	assert.Equal(t, "/nonexistent/dots/templates/a.hbs", p.ResolvePath("templates/a.hbs"))
	assert.Equal(t, "/nonexistent/b", p.ResolvePath("../b"))
	assert.Equal(t, "/abs/path", p.ResolvePath("/abs/path"))
}
