package types

import (
	"sort"
)

// BuildContext is the build-wide state both the merger and the rule
// resolver read. It is assembled once per build and never mutated.
type BuildContext struct {
	// Root is the absolute project root
	Root string

	// StyleExtractionDisabled forces the auto style method to inline styles
	StyleExtractionDisabled bool

	GlobalStyles GlobalStyles

	// Claims maps a registered preprocessing command to the source paths it owns
	Claims map[string][]string

	// Babel is the user supplied transpiler fragment
	Babel Fragment
}

// ClaimsFor returns the source paths claimed by a command
func (c BuildContext) ClaimsFor(command string) ([]string, bool) {
	paths, ok := c.Claims[command]
	return paths, ok
}

// Commands returns the registered commands in sorted order
func (c BuildContext) Commands() []string {
	commands := make([]string, 0, len(c.Claims))
	for command := range c.Claims {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	return commands
}
