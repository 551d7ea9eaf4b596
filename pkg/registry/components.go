package registry

import (
	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/logging"
)

// Preprocessor is one standalone compilation registered by a command,
// e.g. sass("src/app.scss", "public/css")
type Preprocessor struct {
	Src    string `mapstructure:"src" toml:"src" yaml:"src" json:"src"`
	Output string `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
}

// Component is a preprocessing command with everything registered under it
type Component struct {
	Command string
	Details []Preprocessor
}

// Components tracks preprocessing commands in use for a build
type Components struct {
	reg Registry[Component]
}

// NewComponents creates an empty component registry
func NewComponents() *Components {
	return &Components{reg: New[Component]()}
}

// Add registers a preprocessor under a command. Repeated calls for the
// same command accumulate details in call order.
func (c *Components) Add(command string, p Preprocessor) error {
	if command == "" {
		return errors.New(errors.ErrInvalidInput, "component command cannot be empty")
	}
	if p.Src == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s: preprocessor source cannot be empty", command)
	}

	c.reg.Update(command, func(existing Component, _ bool) Component {
		existing.Command = command
		existing.Details = append(existing.Details, p)
		return existing
	})

	logger := logging.GetLogger("registry")
	logger.Debug().
		Str("command", command).
		Str("src", p.Src).
		Str("output", p.Output).
		Msg("Registered preprocessor")
	return nil
}

// Get returns the component registered for a command
func (c *Components) Get(command string) (Component, error) {
	return c.reg.Get(command)
}

// Commands returns the registered commands in sorted order
func (c *Components) Commands() []string {
	return c.reg.List()
}

// Claims snapshots the source paths claimed by each command
func (c *Components) Claims() map[string][]string {
	claims := make(map[string][]string, c.reg.Count())
	for _, command := range c.reg.List() {
		component, err := c.reg.Get(command)
		if err != nil {
			continue
		}
		paths := make([]string, 0, len(component.Details))
		for _, p := range component.Details {
			paths = append(paths, p.Src)
		}
		claims[command] = paths
	}
	return claims
}
