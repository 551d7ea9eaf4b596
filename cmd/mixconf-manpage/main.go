package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/mixconf/cmd/mixconf"
	"github.com/arthur-debert/mixconf/internal/version"
)

// Writes the mixconf(1) man page to stdout, or one page per command into
// the directory given as the only argument.
func main() {
	rootCmd := mixconf.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MIXCONF",
		Section: "1",
		Source:  "mixconf " + version.Version,
		Manual:  "mixconf manual",
	}

	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
