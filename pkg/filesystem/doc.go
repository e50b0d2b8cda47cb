// Package filesystem provides the file I/O capability used by dotpatina.
//
// FS is implemented on top of go-billy: NewOS serves the real filesystem
// and NewMemory an in-memory tree for tests.
package filesystem
