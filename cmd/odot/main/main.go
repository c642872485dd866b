package main

import (
	"fmt"
	"os"

	"github.com/recule556688/obsidian-dotfiles/cmd/odot"
	"github.com/recule556688/obsidian-dotfiles/pkg/ui/styles"
)

func main() {
	rootCmd := odot.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
