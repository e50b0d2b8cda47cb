package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotpatina/cmd/dotpatina"
)

// Usage: dotpatina-manpage [dir]
// Without a directory the root page is written to stdout.
func main() {
	var err error
	if len(os.Args) > 1 {
		err = dotpatina.WriteManTree(os.Args[1])
	} else {
		err = dotpatina.WriteManPage(os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
