package mixconf

import (
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/mixconf/pkg/output"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// stdoutStyled reports whether stdout takes terminal styling
func stdoutStyled() bool {
	return output.DetectFormat(os.Stdout) == output.FormatTerminal
}

func formatBold(s string) string {
	if !stdoutStyled() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds the formatting functions used by the usage template
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": formatBoldUpper,
	})
}

// resolveFormat turns the --format value into a concrete format for w.
// Only a real stdout can be a styled terminal; buffers and pipes get text.
func resolveFormat(name string, w io.Writer, fallback output.Format) (output.Format, error) {
	f, err := output.ParseFormat(name)
	if err != nil {
		return f, err
	}
	if file, ok := w.(*os.File); ok {
		return output.Resolve(f, file, fallback), nil
	}
	if f == output.FormatAuto {
		if fallback != output.FormatAuto {
			return fallback, nil
		}
		return output.FormatText, nil
	}
	return f, nil
}
