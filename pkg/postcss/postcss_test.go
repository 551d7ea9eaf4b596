package postcss

import (
	"testing"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryLoad(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected []types.PluginSpec
	}{
		{
			name: "autoprefixer_only",
			opts: Options{Autoprefixer: AutoprefixerConfig{Enabled: true}},
			expected: []types.PluginSpec{
				{Name: "autoprefixer"},
			},
		},
		{
			name: "configured_plugins_precede_autoprefixer",
			opts: Options{
				Plugins: []PluginConfig{
					{Name: "postcss-import"},
					{Name: "tailwindcss", Options: map[string]interface{}{"config": "tw.js"}},
				},
				Autoprefixer: AutoprefixerConfig{
					Enabled: true,
					Options: map[string]interface{}{"remove": false},
				},
			},
			expected: []types.PluginSpec{
				{Name: "postcss-import"},
				{Name: "tailwindcss", Options: map[string]interface{}{"config": "tw.js"}},
				{Name: "autoprefixer", Options: map[string]interface{}{"remove": false}},
			},
		},
		{
			name: "autoprefixer_disabled",
			opts: Options{Plugins: []PluginConfig{{Name: "postcss-nested"}}},
			expected: []types.PluginSpec{
				{Name: "postcss-nested"},
			},
		},
		{
			name: "explicit_autoprefixer_moves_to_end",
			opts: Options{
				Plugins: []PluginConfig{
					{Name: "autoprefixer", Options: map[string]interface{}{"grid": true}},
					{Name: "cssnano"},
				},
				Autoprefixer: AutoprefixerConfig{Enabled: true},
			},
			expected: []types.PluginSpec{
				{Name: "cssnano"},
				{Name: "autoprefixer", Options: map[string]interface{}{"grid": true}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plugins, err := NewFactory(tt.opts).Load()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, plugins)
		})
	}
}

func TestFactoryLoadRejectsUnnamedPlugin(t *testing.T) {
	_, err := NewFactory(Options{Plugins: []PluginConfig{{}}}).Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
