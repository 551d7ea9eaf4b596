package output

import (
	"os"
	"strings"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how output is rendered
type Format string

const (
	FormatAuto     Format = "auto"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatTerminal Format = "term"
	FormatText     Format = "text"
)

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "term", "terminal", "table":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput,
			"unknown format '%s'. Expected auto, json, yaml, toml, term, or text.", s)
	}
}

// IsEncoding reports whether the format is a machine encoding
func (f Format) IsEncoding() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}

// ExtFormat picks an encoding from a file extension, defaulting to json
func ExtFormat(path string) Format {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return FormatYAML
	case strings.HasSuffix(path, ".toml"):
		return FormatTOML
	default:
		return FormatJSON
	}
}

// DetectFormat picks term or text for the given output
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Resolve turns auto into a concrete format for output. fallback is used
// when the caller wants an encoding rather than a terminal rendering.
func Resolve(f Format, output *os.File, fallback Format) Format {
	if f != FormatAuto {
		return f
	}
	if fallback != FormatAuto {
		return fallback
	}
	return DetectFormat(output)
}
