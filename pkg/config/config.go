package config

import (
	"strings"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/paths"
	"github.com/arthur-debert/mixconf/pkg/postcss"
	"github.com/arthur-debert/mixconf/pkg/registry"
	"github.com/arthur-debert/mixconf/pkg/types"
)

// Config holds mixconf settings
type Config struct {
	Styles     Styles                 `koanf:"styles"`
	PostCSS    postcss.Options        `koanf:"postcss"`
	Babel      map[string]interface{} `koanf:"babel"`
	Components []Component            `koanf:"components"`
	Output     Output                 `koanf:"output"`
}

// Styles controls stylesheet rules
type Styles struct {
	// Method is auto, inline or extract
	Method string `koanf:"method"`
	// Extract=false makes the auto method inline styles
	Extract            bool               `koanf:"extract"`
	InjectGlobalStyles bool               `koanf:"inject_global_styles"`
	GlobalStyles       types.GlobalStyles `koanf:"global_styles"`
}

// Component is a standalone preprocessor compilation, e.g.
//
//	[[components]]
//	command = "sass"
//	src = "resources/sass/app.scss"
//	output = "public/css"
type Component struct {
	Command string `koanf:"command"`
	Src     string `koanf:"src"`
	Output  string `koanf:"output"`
}

// Output controls how results are written
type Output struct {
	// Format is auto, json, yaml, toml or table
	Format string `koanf:"format"`
	// File, when set, is written under the project root
	File string `koanf:"file"`
}

// StyleMethod returns the configured style method
func (c *Config) StyleMethod() types.StyleMethod {
	if c.Styles.Method == "" {
		return types.StyleAuto
	}
	return types.StyleMethod(c.Styles.Method)
}

// Registry registers the configured components with their sources
// resolved against the project root. A component without a source is
// rejected: resolving it would claim the whole project.
func (c *Config) Registry(p *paths.Paths) (*registry.Components, error) {
	components := registry.NewComponents()
	for i, comp := range c.Components {
		if strings.TrimSpace(comp.Src) == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "component %d (%s) has no src", i, comp.Command).
				WithDetail("command", comp.Command)
		}
		err := components.Add(comp.Command, registry.Preprocessor{
			Src:    p.Resolve(comp.Src),
			Output: comp.Output,
		})
		if err != nil {
			return nil, err
		}
	}
	return components, nil
}

// BuildContext assembles the per-build context
func (c *Config) BuildContext(p *paths.Paths, components *registry.Components) types.BuildContext {
	ctx := types.BuildContext{
		Root:                    p.Root(),
		StyleExtractionDisabled: !c.Styles.Extract,
		GlobalStyles:            c.Styles.GlobalStyles,
		Claims:                  map[string][]string{},
	}
	if components != nil {
		ctx.Claims = components.Claims()
	}
	if len(c.Babel) > 0 {
		ctx.Babel = types.Fragment(c.Babel).Clone()
	}
	return ctx
}
