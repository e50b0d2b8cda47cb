package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotpatina/pkg/filesystem"
)

// CreateFile writes content to dir/name, creating parent directories, and
// returns the full path.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "create parent of %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "write %s", path)
	return path
}

// ReadFile returns the content of path, failing the test if it is missing.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "read %s", path)
	return string(data)
}

// FileExists reports whether path exists on disk.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RealDir is t.TempDir() with symlinks resolved, so it compares equal to
// paths produced by paths.Resolve.
func RealDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// MemFS returns an in-memory filesystem holding files, keyed by absolute
// path.
func MemFS(t *testing.T, files map[string]string) filesystem.FS {
	t.Helper()

	fs := filesystem.NewMemory()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644), "seed %s", path)
	}
	return fs
}

// MemRead returns the content of path in fs.
func MemRead(t *testing.T, fs filesystem.FS, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	require.NoError(t, err, "read %s", path)
	return string(data)
}
