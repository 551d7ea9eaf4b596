// Package postcss builds the plugin list handed to postcss-loader
package postcss

import (
	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/mixconf/pkg/types"
)

// Autoprefixer is appended after the configured plugins unless disabled
const Autoprefixer = "autoprefixer"

// PluginConfig is one configured postcss plugin
type PluginConfig struct {
	Name    string                 `koanf:"name"`
	Options map[string]interface{} `koanf:"options"`
}

// AutoprefixerConfig controls the trailing autoprefixer plugin
type AutoprefixerConfig struct {
	Enabled bool                   `koanf:"enabled"`
	Options map[string]interface{} `koanf:"options"`
}

// Options configures the factory
type Options struct {
	Plugins      []PluginConfig     `koanf:"plugins"`
	Autoprefixer AutoprefixerConfig `koanf:"autoprefixer"`
}

// Factory produces postcss plugin descriptors
type Factory struct {
	opts Options
}

// NewFactory creates a factory for the given options
func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

// Load returns the configured plugins in order followed by autoprefixer
func (f *Factory) Load() ([]types.PluginSpec, error) {
	plugins := make([]types.PluginSpec, 0, len(f.opts.Plugins)+1)
	for i, p := range f.opts.Plugins {
		if p.Name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "postcss plugin %d has no name", i)
		}
		if p.Name == Autoprefixer && f.opts.Autoprefixer.Enabled {
			// configured explicitly; the trailing default would duplicate it
			continue
		}
		plugins = append(plugins, types.PluginSpec{Name: p.Name, Options: p.Options})
	}

	if f.opts.Autoprefixer.Enabled {
		plugins = append(plugins, types.PluginSpec{
			Name:    Autoprefixer,
			Options: f.autoprefixerOptions(),
		})
	}

	logger := logging.GetLogger("postcss")
	logger.Trace().Int("plugins", len(plugins)).Msg("Loaded postcss plugins")
	return plugins, nil
}

// autoprefixerOptions prefers options given on an explicitly listed
// autoprefixer entry over the autoprefixer section
func (f *Factory) autoprefixerOptions() map[string]interface{} {
	for _, p := range f.opts.Plugins {
		if p.Name == Autoprefixer && p.Options != nil {
			return p.Options
		}
	}
	return f.opts.Autoprefixer.Options
}
