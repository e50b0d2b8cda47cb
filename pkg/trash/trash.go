// Package trash moves files into the user's FreeDesktop trash can so that
// overwritten targets stay recoverable.
//
// The can at <dir> holds the file under <dir>/files/<name> and its origin
// under <dir>/info/<name>.trashinfo:
//
//	[Trash Info]
//	Path=/home/user/.gitconfig
//	DeletionDate=2024-05-01T10:22:03
package trash

import (
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/filesystem"
	"github.com/arthur-debert/dotpatina/pkg/logging"
	"github.com/arthur-debert/dotpatina/pkg/paths"
)

// Trasher moves a file somewhere it can be recovered from.
type Trasher interface {
	MoveToTrash(path string) error
}

// Can is a FreeDesktop trash directory.
type Can struct {
	fs  filesystem.FS
	dir string
	now func() time.Time
}

var _ Trasher = (*Can)(nil)

// New returns the trash can rooted at dir, or the user's default can when
// dir is empty.
func New(fs filesystem.FS, dir string) *Can {
	if dir == "" {
		dir = paths.TrashDir()
	}
	return &Can{fs: fs, dir: paths.ExpandHome(dir), now: time.Now}
}

// Dir is the root of the can.
func (c *Can) Dir() string { return c.dir }

// MoveToTrash moves path into the can under a name no other trashed file
// uses.
func (c *Can) MoveToTrash(path string) error {
	logger := logging.GetLogger("trash")

	info, err := c.fs.Stat(path)
	if err != nil {
		return trashError(err, path, "cannot trash %s", path)
	}
	if info.IsDir() {
		return trashError(nil, path, "cannot trash directory %s", path)
	}
	if paths.IsWithin(c.dir, path) {
		return trashError(nil, path, "%s is already inside the trash", path)
	}

	filesDir := filepath.Join(c.dir, "files")
	infoDir := filepath.Join(c.dir, "info")
	for _, dir := range []string{filesDir, infoDir} {
		if err := c.fs.MkdirAll(dir, 0700); err != nil {
			return trashError(err, path, "cannot create trash directory %s", dir)
		}
	}

	name := c.freeName(filesDir, infoDir, filepath.Base(path))
	infoPath := filepath.Join(infoDir, name+".trashinfo")
	dest := filepath.Join(filesDir, name)

	if err := c.fs.WriteFile(infoPath, c.trashInfo(path), 0600); err != nil {
		return trashError(err, path, "cannot write trash info for %s", path)
	}

	if err := c.move(path, dest, info.Mode().Perm()); err != nil {
		_ = c.fs.Remove(infoPath)
		return trashError(err, path, "cannot move %s to trash", path)
	}

	logger.Info().
		Str("path", path).
		Str("trashed", dest).
		Msg("file moved to trash")
	return nil
}

// move renames src, falling back to copy and remove when a rename is not
// possible, such as across devices.
func (c *Can) move(src, dest string, perm fs.FileMode) error {
	if err := c.fs.Rename(src, dest); err == nil {
		return nil
	}

	data, err := c.fs.ReadFile(src)
	if err != nil {
		return err
	}
	if perm == 0 {
		perm = 0644
	}
	if err := c.fs.WriteFile(dest, data, perm); err != nil {
		return err
	}
	if err := c.fs.Remove(src); err != nil {
		_ = c.fs.Remove(dest)
		return err
	}
	return nil
}

func (c *Can) freeName(filesDir, infoDir, base string) string {
	name := base
	for i := 2; c.taken(filesDir, infoDir, name); i++ {
		name = base + "." + strconv.Itoa(i)
	}
	return name
}

func (c *Can) taken(filesDir, infoDir, name string) bool {
	if _, err := c.fs.Stat(filepath.Join(filesDir, name)); err == nil {
		return true
	}
	if _, err := c.fs.Stat(filepath.Join(infoDir, name+".trashinfo")); err == nil {
		return true
	}
	return false
}

func (c *Can) trashInfo(path string) []byte {
	escaped := (&url.URL{Path: path}).EscapedPath()
	return []byte(fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escaped, c.now().Format("2006-01-02T15:04:05")))
}

func trashError(err error, path, format string, args ...interface{}) error {
	if err == nil {
		return errors.Newf(errors.ErrTrash, format, args...).WithDetail(errors.DetailPath, path)
	}
	return errors.Wrapf(err, errors.ErrTrash, format, args...).WithDetail(errors.DetailPath, path)
}
