package main

import (
	"os"

	"github.com/arthur-debert/dotpatina/cmd/dotpatina"
)

func main() {
	os.Exit(dotpatina.Execute(os.Args[1:], os.Stdout, os.Stderr, os.Stdin))
}
