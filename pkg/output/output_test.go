package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/mix"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"", FormatAuto},
		{"JSON", FormatJSON},
		{"yml", FormatYAML},
		{"toml", FormatTOML},
		{"table", FormatTerminal},
		{"plain", FormatText},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestExtFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, ExtFormat("mix.config.yml"))
	assert.Equal(t, FormatTOML, ExtFormat("out.toml"))
	assert.Equal(t, FormatJSON, ExtFormat("webpack.mix.json"))
}

func TestDetectFormat(t *testing.T) {
	t.Run("no_color", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, FormatText, DetectFormat(os.Stdout))
	})

	t.Run("not_a_terminal", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, FormatText, DetectFormat(f))
	})

	t.Run("resolve_prefers_explicit", func(t *testing.T) {
		assert.Equal(t, FormatYAML, Resolve(FormatYAML, os.Stdout, FormatJSON))
		assert.Equal(t, FormatJSON, Resolve(FormatAuto, os.Stdout, FormatJSON))
	})
}

func sample() map[string]interface{} {
	return map[string]interface{}{
		"babel": map[string]interface{}{
			"cacheDirectory": true,
			"presets":        []interface{}{"@babel/preset-env"},
		},
		"plugins": []interface{}{
			map[string]interface{}{"name": "mini-css-extract-plugin"},
		},
	}
}

func TestEncode(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, sample(), FormatJSON))
		assert.JSONEq(t, `{
			"babel": {"cacheDirectory": true, "presets": ["@babel/preset-env"]},
			"plugins": [{"name": "mini-css-extract-plugin"}]
		}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, sample(), FormatYAML))

		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, sample(), decoded)
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, sample(), FormatTOML))

		var decoded map[string]interface{}
		require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, true, decoded["babel"].(map[string]interface{})["cacheDirectory"])
	})

	t.Run("terminal_is_not_an_encoding", func(t *testing.T) {
		err := Encode(&bytes.Buffer{}, sample(), FormatTerminal)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestRenderRules(t *testing.T) {
	rules := []types.Rule{
		{
			Category: "scss",
			Match:    `\.scss$`,
			Exclude:  []string{"/p/admin.less"},
			Steps: []types.LoaderSpec{
				{Loader: "style-loader"},
				{Loader: "css-loader"},
				{Loader: "sass-loader"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderRules(&buf, rules, false))
	out := buf.String()
	assert.Contains(t, out, "Category")
	assert.Contains(t, out, "scss")
	assert.Contains(t, out, "style-loader > css-loader > sass-loader")
}

func TestRenderExplanation(t *testing.T) {
	t.Run("handled", func(t *testing.T) {
		var buf bytes.Buffer
		err := RenderExplanation(&buf, &mix.Explanation{
			Path: "/p/app.scss",
			Rule: &types.Rule{
				Category: "scss",
				Match:    `\.scss$`,
				Steps: []types.LoaderSpec{
					{Loader: "css-loader"},
					{Loader: "sass-loader", Options: map[string]interface{}{"sassOptions": 1}},
				},
			},
		}, false)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "/p/app.scss")
		assert.Contains(t, out, "1. css-loader")
		assert.Contains(t, out, "2. sass-loader {sassOptions}")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("unhandled", func(t *testing.T) {
		var buf bytes.Buffer
		err := RenderExplanation(&buf, &mix.Explanation{
			Path:       "/p/node_modules/x.js",
			ExcludedBy: []string{"script"},
		}, false)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "excluded")
		assert.Contains(t, buf.String(), "no rule handles this file")
	})
}
