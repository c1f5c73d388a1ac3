// Command guesslang identifies the natural language of text.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ZaguanLabs/guesslang"
)

// Build-time variables (can be overridden with ldflags)
var (
	commit    = guesslang.GitCommit
	buildDate = guesslang.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}
