// Package testutil provides helpers shared by dotpatina tests.
//
// Key components:
//   - CreateFile / ReadFile: real files under t.TempDir()
//   - MemFS: an in-memory filesystem.FS seeded with files
//   - RecordingUI: a ui.Interface that records output and answers prompts
//   - FakeTrash: a trash.Trasher that records what it was asked to trash
//
// Tests should prefer MemFS. Only filesystem and end to end tests need
// real files.
package testutil
