package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	warnColor    = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	okColor      = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
)

type styles struct {
	label   lipgloss.Style
	value   lipgloss.Style
	loader  lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
	ok      lipgloss.Style
}

// newStyles binds the palette to w. Plain output uses the ascii profile,
// which renders no escape sequences.
func newStyles(w io.Writer, styled bool) styles {
	r := lipgloss.NewRenderer(w)
	if !styled {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		label:   r.NewStyle().Bold(true).Width(10),
		value:   r.NewStyle().Foreground(primaryColor),
		loader:  r.NewStyle().Foreground(primaryColor).Bold(true),
		muted:   r.NewStyle().Foreground(mutedColor),
		warning: r.NewStyle().Foreground(warnColor),
		ok:      r.NewStyle().Foreground(okColor).Bold(true),
	}
}
