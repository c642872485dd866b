// Command odot-manpage writes the odot(1) man page to stdout, for
// packaging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/recule556688/obsidian-dotfiles/cmd/odot"
	"github.com/recule556688/obsidian-dotfiles/internal/version"
)

func main() {
	rootCmd := odot.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "ODOT",
		Section: "1",
		Source:  "odot " + version.Version,
		Manual:  "odot manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
