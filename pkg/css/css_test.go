package css

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticPlugins []types.PluginSpec

func (s staticPlugins) Load() ([]types.PluginSpec, error) { return s, nil }

func ruleFor(t *testing.T, rules []types.Rule, category string) types.Rule {
	t.Helper()
	for _, r := range rules {
		if r.Category == category {
			return r
		}
	}
	t.Fatalf("no rule for %s", category)
	return types.Rule{}
}

func TestBuildRulesChain(t *testing.T) {
	plugins := staticPlugins{{Name: "autoprefixer"}}
	rules, err := BuildRules(types.BuildContext{Root: "/project"}, plugins, Options{Method: types.StyleAuto})
	require.NoError(t, err)

	var categories []string
	for _, r := range rules {
		categories = append(categories, r.Category)
	}
	assert.Equal(t, []string{"css", "scss", "sass", "less", "stylus"}, categories)

	postcss := types.LoaderSpec{
		Loader: PostCSSLoader,
		Options: map[string]interface{}{
			"postcssOptions": map[string]interface{}{
				"plugins":            []interface{}{map[string]interface{}{"name": "autoprefixer"}},
				"hideNothingWarning": true,
			},
		},
	}
	extract := types.LoaderSpec{Loader: ExtractLoader, Options: map[string]interface{}{"esModule": true}}

	expected := types.Rule{
		Category: "sass",
		Match:    `\.sass$`,
		Exclude:  []string{},
		Steps: []types.LoaderSpec{
			extract,
			{Loader: CSSLoader},
			postcss,
			{Loader: "sass-loader", Options: map[string]interface{}{
				"sassOptions": map[string]interface{}{
					"precision":      8,
					"outputStyle":    "expanded",
					"indentedSyntax": true,
				},
			}},
		},
	}
	if diff := cmp.Diff(expected, ruleFor(t, rules, "sass")); diff != "" {
		t.Errorf("sass rule mismatch (-want +got):\n%s", diff)
	}

	cssRule := ruleFor(t, rules, "css")
	assert.Equal(t, []string{ExtractLoader, CSSLoader, PostCSSLoader}, cssRule.Loaders())

	assert.Equal(t, `\.styl(us)?$`, ruleFor(t, rules, "stylus").Match)
	assert.Equal(t, []string{ExtractLoader, CSSLoader, PostCSSLoader, "less-loader"},
		ruleFor(t, rules, "less").Loaders())
}

func TestExcludePathsFor(t *testing.T) {
	ctx := types.BuildContext{
		Claims: map[string][]string{
			"css":  {"/p/a.css"},
			"sass": {"/p/app.scss", "/p/print.sass"},
			"less": {"/p/admin.less"},
		},
	}

	t.Run("sass_excludes_other_commands_only", func(t *testing.T) {
		assert.Equal(t, []string{"/p/admin.less"}, ExcludePathsFor("sass", ctx))
	})

	t.Run("less_excludes_sass", func(t *testing.T) {
		assert.Equal(t, []string{"/p/app.scss", "/p/print.sass"}, ExcludePathsFor("less", ctx))
	})

	t.Run("css_excludes_nothing", func(t *testing.T) {
		assert.Empty(t, ExcludePathsFor("css", ctx))
	})

	t.Run("rules_carry_exclusions", func(t *testing.T) {
		rules, err := BuildRules(ctx, nil, Options{})
		require.NoError(t, err)
		for _, r := range rules {
			for _, p := range r.Exclude {
				own, _ := ctx.ClaimsFor(r.Category)
				assert.NotContains(t, own, p, "rule %s excludes its own source", r.Category)
			}
		}
		assert.Equal(t, []string{"/p/admin.less"}, ruleFor(t, rules, "scss").Exclude)
		assert.Equal(t, []string{"/p/admin.less", "/p/app.scss", "/p/print.sass"}, ruleFor(t, rules, "stylus").Exclude)
	})

	t.Run("shared_source_never_excluded_from_own_command", func(t *testing.T) {
		shared := types.BuildContext{Claims: map[string][]string{
			"sass": {"/p/shared.scss"},
			"less": {"/p/shared.scss", "/p/x.less"},
		}}
		assert.Equal(t, []string{"/p/x.less"}, ExcludePathsFor("sass", shared))
		assert.Equal(t, []string{"/p/shared.scss"}, ExcludePathsFor("stylus", shared))
	})
}

func TestStyleHandlingLoaders(t *testing.T) {
	t.Run("auto_with_extraction_disabled_inlines", func(t *testing.T) {
		loaders, err := StyleHandlingLoaders(types.StyleAuto, types.BuildContext{StyleExtractionDisabled: true})
		require.NoError(t, err)
		assert.Equal(t, []types.LoaderSpec{{Loader: StyleLoader}}, loaders)
	})

	t.Run("auto_extracts_by_default", func(t *testing.T) {
		loaders, err := StyleHandlingLoaders(types.StyleAuto, types.BuildContext{})
		require.NoError(t, err)
		require.Len(t, loaders, 1)
		assert.Equal(t, ExtractLoader, loaders[0].Loader)
		assert.Equal(t, true, loaders[0].Options["esModule"])
	})

	t.Run("explicit_methods", func(t *testing.T) {
		inline, err := StyleHandlingLoaders(types.StyleInline, types.BuildContext{})
		require.NoError(t, err)
		assert.Equal(t, StyleLoader, inline[0].Loader)

		extract, err := StyleHandlingLoaders(types.StyleExtract, types.BuildContext{StyleExtractionDisabled: true})
		require.NoError(t, err)
		assert.Equal(t, ExtractLoader, extract[0].Loader)
	})

	t.Run("unknown_method", func(t *testing.T) {
		_, err := StyleHandlingLoaders("bogus", types.BuildContext{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownStyleMethod))
		assert.Contains(t, err.Error(), "Unknown css loader method 'bogus'. Expected auto, inline, or extract.")
		assert.Equal(t, "bogus", errors.GetErrorDetails(err)["method"])
	})

	t.Run("unknown_method_aborts_rule_building", func(t *testing.T) {
		rules, err := BuildRules(types.BuildContext{}, nil, Options{Method: "bogus"})
		require.Error(t, err)
		assert.Nil(t, rules)
	})
}

func TestExtractPlugin(t *testing.T) {
	plugin := ExtractPlugin()
	assert.Equal(t, ExtractPluginName, plugin.Name)
	assert.Equal(t, map[string]interface{}{
		"filename":      "[name].css",
		"chunkFilename": "[name].css",
		"esModule":      true,
	}, plugin.Options)
}

func TestNormalizeGlobalStyles(t *testing.T) {
	root := filepath.FromSlash("/project")
	resolver := RootResolver(root)

	t.Run("shorthand_applies_to_sass_types", func(t *testing.T) {
		shared := filepath.FromSlash("/abs/shared.scss")
		normalized, err := NormalizeGlobalStyles(shared, resolver)
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{
			"sass": {shared},
			"scss": {shared},
		}, normalized)
	})

	t.Run("relative_paths_resolve_against_root", func(t *testing.T) {
		normalized, err := NormalizeGlobalStyles(map[string]interface{}{
			"scss": "styles/vars.scss",
			"less": []interface{}{"a.less", "b.less"},
		}, resolver)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "styles", "vars.scss")}, normalized["scss"])
		assert.Equal(t, []string{filepath.Join(root, "a.less"), filepath.Join(root, "b.less")}, normalized["less"])
		assert.NotContains(t, normalized, "sass")
	})

	t.Run("invalid_value", func(t *testing.T) {
		_, err := NormalizeGlobalStyles(42, resolver)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestGlobalStyleInjection(t *testing.T) {
	root := filepath.FromSlash("/project")
	ctx := types.BuildContext{
		Root:         root,
		GlobalStyles: types.GlobalStylesPath("resources/sass/_vars.scss"),
		Claims: map[string][]string{
			"css":  {},
			"sass": {},
			"less": {},
		},
	}

	rules, err := BuildRules(ctx, nil, Options{InjectGlobalStyles: true})
	require.NoError(t, err)

	expectedResources := []interface{}{filepath.Join(root, "resources", "sass", "_vars.scss")}
	for _, category := range []string{"sass", "scss"} {
		rule := ruleFor(t, rules, category)
		last := rule.Steps[len(rule.Steps)-1]
		assert.Equal(t, ResourcesLoader, last.Loader, category)
		assert.Equal(t, expectedResources, last.Options["resources"], category)
	}
	for _, category := range []string{"css", "less"} {
		assert.NotContains(t, ruleFor(t, rules, category).Loaders(), ResourcesLoader, category)
	}

	t.Run("not_injected_without_opt_in", func(t *testing.T) {
		rules, err := BuildRules(ctx, nil, Options{})
		require.NoError(t, err)
		assert.NotContains(t, ruleFor(t, rules, "scss").Loaders(), ResourcesLoader)
	})
}
