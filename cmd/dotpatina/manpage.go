package dotpatina

import (
	"io"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotpatina/internal/version"
)

func manHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "DOTPATINA",
		Section: "1",
		Source:  "dotpatina " + version.Version,
		Manual:  "dotpatina manual",
	}
}

// WriteManPage writes the dotpatina(1) man page to w.
func WriteManPage(w io.Writer) error {
	return doc.GenMan(NewRootCmd(), manHeader(), w)
}

// WriteManTree writes one man page per command into dir.
func WriteManTree(dir string) error {
	return doc.GenManTree(NewRootCmd(), manHeader(), dir)
}
