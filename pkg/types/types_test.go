package types

import (
	"testing"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		expected Step
	}{
		{
			name:     "bare_identifier",
			raw:      "@babel/plugin-syntax-dynamic-import",
			expected: Step{Name: "@babel/plugin-syntax-dynamic-import"},
		},
		{
			name: "name_with_options",
			raw:  []interface{}{"@babel/preset-env", map[string]interface{}{"modules": false}},
			expected: Step{
				Name:    "@babel/preset-env",
				Options: map[string]interface{}{"modules": false},
			},
		},
		{
			name:     "single_element_pair",
			raw:      []interface{}{"react"},
			expected: Step{Name: "react"},
		},
		{
			name: "yaml_style_options",
			raw:  []interface{}{"vue", map[interface{}]interface{}{"jsx": true}},
			expected: Step{
				Name:    "vue",
				Options: map[string]interface{}{"jsx": true},
			},
		},
		{
			name:     "config_item_unwraps",
			raw:      ConfigItem{Kind: KindPlugin, Value: Step{Name: "x"}},
			expected: Step{Name: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, err := ParseStep(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, step)
		})
	}
}

func TestParseStepInvalid(t *testing.T) {
	invalid := map[string]interface{}{
		"empty_name":    "",
		"empty_pair":    []interface{}{},
		"three_element": []interface{}{"a", map[string]interface{}{}, "c"},
		"non_string":    []interface{}{42},
		"bad_options":   []interface{}{"a", "not-an-object"},
		"number":        3,
	}

	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStep(raw)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrStepInvalid))
		})
	}
}

func TestConfigItemIdentity(t *testing.T) {
	resolved := ConfigItem{Value: Step{Name: "a"}, File: &FileRef{Request: "a", Resolved: "/nm/a/index.js"}}
	id, ok := resolved.Identity()
	assert.True(t, ok)
	assert.Equal(t, "/nm/a/index.js", id)

	_, ok = ConfigItem{Value: Step{Name: "inline"}}.Identity()
	assert.False(t, ok)
}

func TestFragmentExport(t *testing.T) {
	f := Fragment{
		"cacheDirectory": true,
		KeyPresets: []ConfigItem{
			{Kind: KindPreset, Value: Step{Name: "env", Options: map[string]interface{}{"modules": false}}},
		},
		KeyPlugins: []ConfigItem{{Kind: KindPlugin, Value: Step{Name: "runtime"}}},
	}

	out := f.Export()
	assert.Equal(t, true, out["cacheDirectory"])
	assert.Equal(t, []interface{}{[]interface{}{"env", map[string]interface{}{"modules": false}}}, out[KeyPresets])
	assert.Equal(t, []interface{}{"runtime"}, out[KeyPlugins])
}

func TestParseGlobalStyles(t *testing.T) {
	t.Run("string_is_shorthand", func(t *testing.T) {
		g, err := ParseGlobalStyles("resources/sass/_vars.scss")
		require.NoError(t, err)
		assert.True(t, g.IsShorthand())
		assert.Equal(t, "resources/sass/_vars.scss", g.Path)
	})

	t.Run("mapping_coerces_scalars", func(t *testing.T) {
		g, err := ParseGlobalStyles(map[string]interface{}{
			"scss": "a.scss",
			"less": []interface{}{"a.less", "b.less"},
		})
		require.NoError(t, err)
		assert.False(t, g.IsShorthand())
		assert.Equal(t, []string{"a.scss"}, g.Files["scss"])
		assert.Equal(t, []string{"a.less", "b.less"}, g.Files["less"])
		assert.Equal(t, []string{"less", "scss"}, g.Types())
	})

	t.Run("nil_is_zero", func(t *testing.T) {
		g, err := ParseGlobalStyles(nil)
		require.NoError(t, err)
		assert.True(t, g.IsZero())
	})

	t.Run("invalid_values", func(t *testing.T) {
		_, err := ParseGlobalStyles(12)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))

		_, err = ParseGlobalStyles(map[string]interface{}{"scss": []interface{}{1}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestRuleExport(t *testing.T) {
	r := Rule{
		Category: "less",
		Match:    `\.less$`,
		Exclude:  []string{"/p/a.scss"},
		Steps: []LoaderSpec{
			{Loader: "style-loader"},
			{Loader: "less-loader", Options: map[string]interface{}{"x": 1}},
		},
	}

	out := r.Export()
	assert.Equal(t, `\.less$`, out["test"])
	assert.Equal(t, []interface{}{"/p/a.scss"}, out["exclude"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"loader": "style-loader"},
		map[string]interface{}{"loader": "less-loader", "options": map[string]interface{}{"x": 1}},
	}, out["use"])
	assert.Equal(t, []string{"style-loader", "less-loader"}, r.Loaders())
}

func TestBuildContextClaims(t *testing.T) {
	ctx := BuildContext{Claims: map[string][]string{"sass": {"/p/a.scss"}, "less": {"/p/b.less"}}}

	paths, ok := ctx.ClaimsFor("sass")
	assert.True(t, ok)
	assert.Equal(t, []string{"/p/a.scss"}, paths)

	_, ok = ctx.ClaimsFor("stylus")
	assert.False(t, ok)

	assert.Equal(t, []string{"less", "sass"}, ctx.Commands())
}

func TestFragmentSteps(t *testing.T) {
	f := Fragment{
		KeyPresets: []string{"a", "b"},
		KeyPlugins: "not-a-list",
	}

	steps, err := f.Steps(KeyPresets)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b"}, steps)

	_, err = f.Steps(KeyPlugins)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStepInvalid))

	steps, err = Fragment{}.Steps(KeyPresets)
	require.NoError(t, err)
	assert.Nil(t, steps)
}
