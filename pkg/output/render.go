package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/mixconf/pkg/mix"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/pterm/pterm"
)

// RenderRules writes the rule table
func RenderRules(w io.Writer, rules []types.Rule, styled bool) error {
	data := pterm.TableData{{"Category", "Match", "Loaders", "Excludes"}}
	for _, rule := range rules {
		data = append(data, []string{
			rule.Category,
			rule.Match,
			strings.Join(rule.Loaders(), " > "),
			fmt.Sprintf("%d", len(rule.Exclude)),
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if !styled {
		plain := pterm.NewStyle()
		table = table.
			WithStyle(plain).
			WithHeaderStyle(plain).
			WithSeparatorStyle(plain).
			WithHeaderRowSeparatorStyle(plain)
	}

	rendered, err := table.Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, rendered)
	return err
}

// RenderExplanation writes which rule handles a file and its loader chain
func RenderExplanation(w io.Writer, e *mix.Explanation, styled bool) error {
	s := newStyles(w, styled)
	var b strings.Builder

	line := func(label, value string) {
		b.WriteString(s.label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("file", s.value.Render(e.Path))
	if len(e.ExcludedBy) > 0 {
		line("excluded", s.warning.Render(strings.Join(e.ExcludedBy, ", ")))
	}

	if e.Rule == nil {
		line("rule", s.muted.Render("no rule handles this file"))
		_, err := io.WriteString(w, b.String())
		return err
	}

	line("rule", s.ok.Render(e.Rule.Category)+" "+s.muted.Render(e.Rule.Match))
	for i, step := range e.Rule.Steps {
		label := ""
		if i == 0 {
			label = "loaders"
		}
		entry := fmt.Sprintf("%d. %s", i+1, s.loader.Render(step.Loader))
		if len(step.Options) > 0 {
			entry += " " + s.muted.Render(optionKeys(step.Options))
		}
		line(label, entry)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func optionKeys(options map[string]interface{}) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, ", ") + "}"
}
