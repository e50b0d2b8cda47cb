package testutil

import (
	"github.com/arthur-debert/dotpatina/pkg/filesystem"
	"github.com/arthur-debert/dotpatina/pkg/trash"
)

// FakeTrash records trashed paths. With FS set it also removes the file, so
// callers observe the same state as with a real trash can.
type FakeTrash struct {
	FS  filesystem.FS
	Err error

	Paths []string
}

var _ trash.Trasher = (*FakeTrash)(nil)

func (f *FakeTrash) MoveToTrash(path string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Paths = append(f.Paths, path)
	if f.FS != nil {
		return f.FS.Remove(path)
	}
	return nil
}
