package trash

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/filesystem"
)

func newCan(t *testing.T, fsys filesystem.FS) *Can {
	t.Helper()
	c := New(fsys, "/home/user/.local/share/Trash")
	c.now = func() time.Time { return time.Date(2024, 5, 1, 10, 22, 3, 0, time.Local) }
	return c
}

func TestMoveToTrash(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.WriteFile("/home/user/my config", []byte("old"), 0644))
	c := newCan(t, fsys)

	require.NoError(t, c.MoveToTrash("/home/user/my config"))

	_, err := fsys.Stat("/home/user/my config")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	data, err := fsys.ReadFile("/home/user/.local/share/Trash/files/my config")
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	info, err := fsys.ReadFile("/home/user/.local/share/Trash/info/my config.trashinfo")
	require.NoError(t, err)
	assert.Equal(t, "[Trash Info]\nPath=/home/user/my%20config\nDeletionDate=2024-05-01T10:22:03\n", string(info))
}

func TestMoveToTrash_NameCollisions(t *testing.T) {
	fsys := filesystem.NewMemory()
	c := newCan(t, fsys)

	for i, content := range []string{"one", "two", "three"} {
		require.NoError(t, fsys.WriteFile("/etc/app/config", []byte(content), 0644))
		require.NoError(t, c.MoveToTrash("/etc/app/config"), "move %d", i)
	}

	for name, want := range map[string]string{"config": "one", "config.2": "two", "config.3": "three"} {
		data, err := fsys.ReadFile(filepath.Join(c.Dir(), "files", name))
		require.NoError(t, err, name)
		assert.Equal(t, want, string(data))

		_, err = fsys.Stat(filepath.Join(c.Dir(), "info", name+".trashinfo"))
		assert.NoError(t, err)
	}
}

func TestMoveToTrash_Errors(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/home/user/dir", 0755))
	require.NoError(t, fsys.WriteFile("/home/user/.local/share/Trash/files/x", []byte("x"), 0644))
	c := newCan(t, fsys)

	tests := []struct {
		name string
		path string
	}{
		{"missing file", "/home/user/missing"},
		{"directory", "/home/user/dir"},
		{"inside the trash", "/home/user/.local/share/Trash/files/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.MoveToTrash(tt.path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrTrash))
			assert.Equal(t, tt.path, errors.GetDetail(err, errors.DetailPath))
		})
	}
}

// renameless fails every rename to force the copy fallback.
type renameless struct {
	filesystem.FS
}

func (renameless) Rename(string, string) error {
	return &os.LinkError{Op: "rename", Err: fs.ErrInvalid}
}

func TestMoveToTrash_CopyFallback(t *testing.T) {
	fsys := renameless{filesystem.NewMemory()}
	require.NoError(t, fsys.WriteFile("/srv/file", []byte("payload"), 0600))
	c := newCan(t, fsys)

	require.NoError(t, c.MoveToTrash("/srv/file"))

	_, err := fsys.Stat("/srv/file")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	data, err := fsys.ReadFile(filepath.Join(c.Dir(), "files", "file"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMoveToTrash_OSFilesystem(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("real"), 0644))

	c := New(filesystem.NewOS(), filepath.Join(root, "Trash"))
	require.NoError(t, c.MoveToTrash(target))

	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(root, "Trash", "files", "target.txt"))
	require.NoError(t, err)
	assert.Equal(t, "real", string(data))
}

func TestNew_DefaultDir(t *testing.T) {
	c := New(filesystem.NewMemory(), "")
	assert.Equal(t, "Trash", filepath.Base(c.Dir()))
}
