package dotpatina

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotpatina/pkg/paths"
	"github.com/arthur-debert/dotpatina/pkg/testutil"
)

const gitPatina = `name = "git-patina"
description = "A Patina for **git** tooling"

[vars]
editor = "vim"

[[files]]
template = "gitconfig.hbs"
target = "out/.gitconfig"
tags = ["git"]

[[files]]
template = "lazygit.yml"
target = "out/lazygit.yml"
tags = ["ui"]
`

const gitTemplate = `[user]
    name = {{ user.name }}
[core]
    editor = {{ editor }}
`

type run struct {
	code   int
	stdout string
	stderr string
}

// setup writes a patina and an isolated application config, returning the
// patina directory.
func setup(t *testing.T, configContent string) string {
	t.Helper()
	dir := testutil.RealDir(t)

	testutil.CreateFile(t, dir, "patina.toml", gitPatina)
	testutil.CreateFile(t, dir, "gitconfig.hbs", gitTemplate)
	testutil.CreateFile(t, dir, "lazygit.yml", "gui:\n  showBottomLine: false\n")
	testutil.CreateFile(t, dir, "user.toml", "[user]\nname = \"Patina User\"\n")

	cfg := testutil.CreateFile(t, t.TempDir(), "config.toml", configContent)
	t.Setenv(paths.EnvConfigFile, cfg)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) run {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr, strings.NewReader(stdin))
	return run{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRenderCmd(t *testing.T) {
	dir := setup(t, "")
	patinaPath := filepath.Join(dir, "patina.toml")

	r := execute(t, "", "render", patinaPath, "-f", filepath.Join(dir, "user.toml"), "-t", "git")
	require.Equal(t, 0, r.code, r.stderr)

	assert.Equal(t, "Rendered 1 files\n\ngitconfig.hbs\n"+
		"[user]\n    name = Patina User\n[core]\n    editor = vim\n\n", r.stdout)
	assert.False(t, testutil.FileExists(filepath.Join(dir, "out", ".gitconfig")))
}

func TestRenderCmd_MissingVariable(t *testing.T) {
	dir := setup(t, "")

	r := execute(t, "", "render", filepath.Join(dir, "patina.toml"))
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Error:")
	assert.Contains(t, r.stderr, "gitconfig.hbs")
	assert.Empty(t, r.stdout)
}

func TestRenderCmd_RelativeVarsFile(t *testing.T) {
	dir := setup(t, "")
	t.Chdir(dir)

	r := execute(t, "", "render", "patina.toml", "-f", "user.toml", "--tags", "git")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "name = Patina User")
}

func TestRenderCmd_ConfiguredVarsFiles(t *testing.T) {
	dir := setup(t, "")
	cfg := testutil.CreateFile(t, t.TempDir(), "config.toml",
		"[vars]\nfiles = [\""+filepath.Join(dir, "user.toml")+"\"]\n")
	t.Setenv(paths.EnvConfigFile, cfg)

	r := execute(t, "", "render", filepath.Join(dir, "patina.toml"), "-t", "git")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "name = Patina User")
}

func TestApplyCmd_NoInput(t *testing.T) {
	dir := setup(t, "")

	r := execute(t, "", "apply", filepath.Join(dir, "patina.toml"),
		"-f", filepath.Join(dir, "user.toml"), "--no-input", "--no-trash")
	require.Equal(t, 0, r.code, r.stderr)

	assert.NotContains(t, r.stdout, "Do you want to continue?")
	assert.Contains(t, r.stdout, "+   1 | [user]")
	assert.Contains(t, r.stdout, "\nApplying patina files\n")
	assert.True(t, strings.HasSuffix(r.stdout, "Done\n"), r.stdout)
	assert.Equal(t, "[user]\n    name = Patina User\n[core]\n    editor = vim\n",
		testutil.ReadFile(t, filepath.Join(dir, "out", ".gitconfig")))
	assert.True(t, testutil.FileExists(filepath.Join(dir, "out", "lazygit.yml")))
}

func TestApplyCmd_Confirm(t *testing.T) {
	dir := setup(t, "[apply]\nno_trash = true\n")

	r := execute(t, "Y\n", "apply", filepath.Join(dir, "patina.toml"), "-t", "ui")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Do you want to continue? (y/n): ")
	assert.Equal(t, "gui:\n  showBottomLine: false\n", testutil.ReadFile(t, filepath.Join(dir, "out", "lazygit.yml")))

	// A second run finds nothing to do.
	r = execute(t, "", "apply", filepath.Join(dir, "patina.toml"), "-t", "ui")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Files without changes:")
	assert.Contains(t, r.stdout, "No file changes detected in the patina")
	assert.NotContains(t, r.stdout, "Do you want to continue?")
}

func TestApplyCmd_Decline(t *testing.T) {
	dir := setup(t, "")
	target := testutil.CreateFile(t, dir, "out/lazygit.yml", "old\n")

	for _, answer := range []string{"n\n", "\n", ""} {
		r := execute(t, answer, "apply", filepath.Join(dir, "patina.toml"), "-t", "ui")
		require.Equal(t, 0, r.code, r.stderr)
		assert.Contains(t, r.stdout, "Not applying patina.")
		assert.Equal(t, "old\n", testutil.ReadFile(t, target))
	}
}

func TestApplyCmd_Trash(t *testing.T) {
	trashDir := t.TempDir()
	dir := setup(t, "[trash]\ndir = \""+trashDir+"\"\n")
	target := testutil.CreateFile(t, dir, "out/lazygit.yml", "old\n")

	r := execute(t, "", "apply", filepath.Join(dir, "patina.toml"), "-t", "ui", "--no-input")
	require.Equal(t, 0, r.code, r.stderr)

	assert.Contains(t, r.stdout, "Done (original files moved to trash)\n")
	assert.Equal(t, "gui:\n  showBottomLine: false\n", testutil.ReadFile(t, target))
	assert.Equal(t, "old\n", testutil.ReadFile(t, filepath.Join(trashDir, "files", "lazygit.yml")))
	assert.True(t, testutil.FileExists(filepath.Join(trashDir, "info", "lazygit.yml.trashinfo")))
}

func TestApplyCmd_MissingPatina(t *testing.T) {
	setup(t, "")

	r := execute(t, "", "apply", filepath.Join(t.TempDir(), "nope.toml"))
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Error:")
	assert.Contains(t, r.stderr, "nope.toml")
}

func TestApplyCmd_RequiresPatina(t *testing.T) {
	setup(t, "")

	r := execute(t, "", "apply")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "accepts 1 arg(s)")
}

func TestDescribeCmd(t *testing.T) {
	dir := setup(t, "")

	r := execute(t, "", "describe", filepath.Join(dir, "patina.toml"))
	require.Equal(t, 0, r.code, r.stderr)

	assert.True(t, strings.HasPrefix(r.stdout, "git-patina\n"), r.stdout)
	assert.Contains(t, r.stdout, "source: "+filepath.Join(dir, "patina.toml"))
	assert.Contains(t, r.stdout, "vars:   editor")
	assert.Contains(t, r.stdout, "git")
	assert.Contains(t, r.stdout, "tooling")
	assert.Contains(t, r.stdout, "Files (2):")
	assert.Contains(t, r.stdout, "gitconfig.hbs -> "+filepath.Join(dir, "out", ".gitconfig")+" [git]")
	assert.Contains(t, r.stdout, "lazygit.yml   -> "+filepath.Join(dir, "out", "lazygit.yml")+" [ui]")
}

func TestDescribeCmd_Tags(t *testing.T) {
	dir := setup(t, "")

	r := execute(t, "", "describe", filepath.Join(dir, "patina.toml"), "-t", "ui", "-f", filepath.Join(dir, "user.toml"))
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "vars:   editor, user")
	assert.Contains(t, r.stdout, "Files (1):")
	assert.NotContains(t, r.stdout, "gitconfig.hbs")

	r = execute(t, "", "describe", filepath.Join(dir, "patina.toml"), "-t", "nothing")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "(no files selected)")
}

func TestVersionCmd(t *testing.T) {
	setup(t, "")

	r := execute(t, "", "version")
	require.Equal(t, 0, r.code)
	assert.True(t, strings.HasPrefix(r.stdout, "dotpatina version dev\n"), r.stdout)
}

func TestCompletionCmd(t *testing.T) {
	setup(t, "")

	r := execute(t, "", "completion", "bash")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "dotpatina")

	r = execute(t, "", "completion", "tcsh")
	assert.Equal(t, 1, r.code)
}

func TestRootCmd_NoCommand(t *testing.T) {
	setup(t, "")

	r := execute(t, "")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, MsgErrNoCommand)
	assert.Contains(t, r.stdout, "USAGE:")
}

func TestRootCmd_BadConfig(t *testing.T) {
	dir := setup(t, "")

	r := execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "render", filepath.Join(dir, "patina.toml"))
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "missing.toml")
}

func TestMain_LogFile(t *testing.T) {
	dir := setup(t, "")
	state := os.Getenv("XDG_STATE_HOME")

	r := execute(t, "", "-v", "render", filepath.Join(dir, "patina.toml"), "-t", "ui")
	require.Equal(t, 0, r.code, r.stderr)
	assert.True(t, testutil.FileExists(filepath.Join(state, "dotpatina", "dotpatina.log")))
}
