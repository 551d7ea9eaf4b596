package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/mixconf/cmd/mixconf"
	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	rootCmd := mixconf.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
			fmt.Fprintf(os.Stderr, "  code: %s\n", code)
		}
		os.Exit(1)
	}
}
