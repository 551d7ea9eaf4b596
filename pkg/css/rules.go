package css

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/mixconf/pkg/types"
)

// Loader ids
const (
	StyleLoader          = "style-loader"
	ExtractLoader        = "mini-css-extract-plugin/dist/loader"
	CSSLoader            = "css-loader"
	PostCSSLoader        = "postcss-loader"
	ResourcesLoader      = "sass-resources-loader"
	ExtractPluginName    = "mini-css-extract-plugin"
	extractedFilePattern = "[name].css"
)

// PluginSource supplies the postcss plugins for postcss-loader
type PluginSource interface {
	Load() ([]types.PluginSpec, error)
}

// Options selects how rules are built
type Options struct {
	// Method is the style handling method; empty means auto
	Method types.StyleMethod
	// InjectGlobalStyles appends global resources to categories that have them
	InjectGlobalStyles bool
}

// BuildRules builds one rule per category in Categories order. An unknown
// style method fails the whole build.
func BuildRules(ctx types.BuildContext, plugins PluginSource, opts Options) ([]types.Rule, error) {
	logger := logging.GetLogger("css")

	prefix, err := StyleHandlingLoaders(opts.Method, ctx)
	if err != nil {
		return nil, err
	}

	var postcssPlugins []types.PluginSpec
	if plugins != nil {
		if postcssPlugins, err = plugins.Load(); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to load postcss plugins")
		}
	}

	categories := Categories()
	rules := make([]types.Rule, 0, len(categories))
	for _, category := range categories {
		steps := make([]types.LoaderSpec, 0, 6)
		steps = append(steps, prefix...)
		steps = append(steps,
			types.LoaderSpec{Loader: CSSLoader},
			postcssLoader(postcssPlugins),
		)
		if category.Loader != nil {
			steps = append(steps, *category.Loader)
		}
		if opts.InjectGlobalStyles {
			suffix, err := GlobalStyleLoaders(category.Type, ctx)
			if err != nil {
				return nil, err
			}
			steps = append(steps, suffix...)
		}

		rule := types.Rule{
			Category: category.Type,
			Match:    category.Match,
			Exclude:  ExcludePathsFor(category.Command, ctx),
			Steps:    steps,
		}
		logger.Debug().
			Str("category", rule.Category).
			Strs("loaders", rule.Loaders()).
			Int("excluded", len(rule.Exclude)).
			Msg("Built style rule")
		rules = append(rules, rule)
	}

	return rules, nil
}

func postcssLoader(plugins []types.PluginSpec) types.LoaderSpec {
	exported := make([]interface{}, len(plugins))
	for i, p := range plugins {
		exported[i] = p.Export()
	}
	return types.LoaderSpec{
		Loader: PostCSSLoader,
		Options: map[string]interface{}{
			"postcssOptions": map[string]interface{}{
				"plugins":            exported,
				"hideNothingWarning": true,
			},
		},
	}
}

// ResolveStyleMethod resolves auto against the build's extraction flag
func ResolveStyleMethod(method types.StyleMethod, ctx types.BuildContext) (types.StyleMethod, error) {
	switch method {
	case "", types.StyleAuto:
		if ctx.StyleExtractionDisabled {
			return types.StyleInline, nil
		}
		return types.StyleExtract, nil
	case types.StyleInline, types.StyleExtract:
		return method, nil
	default:
		valid := make([]string, len(types.ValidStyleMethods))
		for i, m := range types.ValidStyleMethods {
			valid[i] = string(m)
		}
		return "", errors.Newf(errors.ErrUnknownStyleMethod,
			"Unknown css loader method '%s'. Expected %s, or %s.",
			method, strings.Join(valid[:len(valid)-1], ", "), valid[len(valid)-1]).
			WithDetail("method", string(method)).
			WithDetail("valid", valid)
	}
}

// StyleHandlingLoaders returns the loaders that hand processed styles to
// the page, either inline or through file extraction
func StyleHandlingLoaders(method types.StyleMethod, ctx types.BuildContext) ([]types.LoaderSpec, error) {
	resolved, err := ResolveStyleMethod(method, ctx)
	if err != nil {
		return nil, err
	}

	if resolved == types.StyleInline {
		return []types.LoaderSpec{{Loader: StyleLoader}}, nil
	}
	return []types.LoaderSpec{{
		Loader:  ExtractLoader,
		Options: map[string]interface{}{"esModule": true},
	}}, nil
}

// GlobalStyleLoaders returns the resource injection loader for a file type,
// or nothing when the type has no global resources
func GlobalStyleLoaders(fileType string, ctx types.BuildContext) ([]types.LoaderSpec, error) {
	if ctx.GlobalStyles.IsZero() {
		return nil, nil
	}

	normalized, err := NormalizeGlobalStyles(ctx.GlobalStyles, RootResolver(ctx.Root))
	if err != nil {
		return nil, err
	}

	resources := normalized[fileType]
	if len(resources) == 0 {
		return nil, nil
	}

	list := make([]interface{}, len(resources))
	for i, r := range resources {
		list[i] = r
	}
	return []types.LoaderSpec{{
		Loader:  ResourcesLoader,
		Options: map[string]interface{}{"resources": list},
	}}, nil
}

// ExcludePathsFor returns the sources claimed by every other registered
// command. The css command excludes nothing, and a command's own sources
// are never excluded from its rules.
func ExcludePathsFor(command string, ctx types.BuildContext) []string {
	exclude := []string{}
	if command == CSSCommand {
		return exclude
	}

	seen := make(map[string]bool)
	for _, other := range ctx.Commands() {
		if other == command || other == CSSCommand {
			continue
		}
		claimed, _ := ctx.ClaimsFor(other)
		for _, p := range claimed {
			if !seen[p] {
				seen[p] = true
				exclude = append(exclude, p)
			}
		}
	}

	own, _ := ctx.ClaimsFor(command)
	if len(own) == 0 {
		return exclude
	}
	mine := make(map[string]bool, len(own))
	for _, p := range own {
		mine[p] = true
	}
	filtered := exclude[:0]
	for _, p := range exclude {
		if !mine[p] {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ExtractPlugin returns the bundler plugin paired with the extract loader
func ExtractPlugin() types.PluginSpec {
	return types.PluginSpec{
		Name: ExtractPluginName,
		Options: map[string]interface{}{
			"filename":      extractedFilePattern,
			"chunkFilename": extractedFilePattern,
			"esModule":      true,
		},
	}
}

// PathResolver resolves configured paths against the project root
type PathResolver interface {
	Resolve(path string) string
}

// RootResolver resolves relative paths against root
type RootResolver string

// Resolve implements PathResolver
func (r RootResolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(string(r), path)
}

// SassTypes receive the single-path global styles shorthand
var SassTypes = []string{"sass", "scss"}

// NormalizeGlobalStyles turns a global styles value into file type to
// resolved resource paths. A single path applies to the sass types.
func NormalizeGlobalStyles(raw interface{}, resolver PathResolver) (map[string][]string, error) {
	styles, err := types.ParseGlobalStyles(raw)
	if err != nil {
		return nil, err
	}

	files := styles.Files
	if styles.IsShorthand() {
		files = make(map[string][]string, len(SassTypes))
		for _, t := range SassTypes {
			files[t] = []string{styles.Path}
		}
	}

	normalized := make(map[string][]string, len(files))
	for t, paths := range files {
		resolved := make([]string, len(paths))
		for i, p := range paths {
			resolved[i] = resolver.Resolve(p)
		}
		normalized[t] = resolved
	}
	return normalized, nil
}
