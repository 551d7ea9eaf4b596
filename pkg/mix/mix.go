// Package mix composes the transpiler configuration, loader rules and
// plugins of one build.
package mix

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mixconf/pkg/babel"
	"github.com/arthur-debert/mixconf/pkg/css"
	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/events"
	"github.com/arthur-debert/mixconf/pkg/filesystem"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
)

// Script rule settings
const (
	ScriptCategory = "script"
	ScriptMatch    = `\.(cjs|mjs|jsx?|tsx?)$`
	BabelLoader    = "babel-loader"
)

// ScriptExcludes are resolved against the project root
var ScriptExcludes = []string{"node_modules", "bower_components"}

// Options configures a Mix
type Options struct {
	// FS reads project-local transpiler config; defaults to the OS filesystem
	FS types.FS
	// Resolver identifies steps; nil resolves from node_modules
	Resolver babel.Resolver
	// PostCSS supplies postcss-loader plugins
	PostCSS css.PluginSource
	Styles  css.Options
}

// Mix builds the configuration for one build context
type Mix struct {
	ctx        types.BuildContext
	opts       Options
	dispatcher *events.Dispatcher
	hooks      *events.Hooks
	logger     zerolog.Logger
}

// New creates a Mix. The build context is not modified afterwards.
func New(ctx types.BuildContext, opts Options) *Mix {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	m := &Mix{
		ctx:        ctx,
		opts:       opts,
		dispatcher: events.NewDispatcher(),
		hooks:      &events.Hooks{},
		logger:     logging.GetLogger("mix"),
	}
	events.NewBuildCallbackPlugin(events.DispatchTo(m.dispatcher)).Apply(m.hooks)
	return m
}

// Context returns the build context
func (m *Mix) Context() types.BuildContext {
	return m.ctx
}

// BabelConfig generates the final transpiler configuration
func (m *Mix) BabelConfig() (types.Fragment, error) {
	return babel.NewGenerator(m.opts.FS, m.opts.Resolver).Generate(m.ctx)
}

// ScriptRule returns the rule running scripts through babel-loader
func (m *Mix) ScriptRule(babelConfig types.Fragment) types.Rule {
	exclude := make([]string, len(ScriptExcludes))
	for i, dir := range ScriptExcludes {
		exclude[i] = filepath.Join(m.ctx.Root, dir)
	}
	return types.Rule{
		Category: ScriptCategory,
		Match:    ScriptMatch,
		Exclude:  exclude,
		Steps: []types.LoaderSpec{{
			Loader:  BabelLoader,
			Options: babelConfig.Export(),
		}},
	}
}

// Rules returns the script rule followed by the style rules
func (m *Mix) Rules() ([]types.Rule, error) {
	babelConfig, err := m.BabelConfig()
	if err != nil {
		return nil, err
	}
	return m.rules(babelConfig)
}

func (m *Mix) rules(babelConfig types.Fragment) ([]types.Rule, error) {
	styleRules, err := css.BuildRules(m.ctx, m.opts.PostCSS, m.opts.Styles)
	if err != nil {
		return nil, err
	}
	return append([]types.Rule{m.ScriptRule(babelConfig)}, styleRules...), nil
}

// Plugins returns the bundler plugins the rules depend on
func (m *Mix) Plugins() []types.PluginSpec {
	return []types.PluginSpec{css.ExtractPlugin()}
}

// Result is the complete configuration handed to the bundler
type Result struct {
	Babel   types.Fragment
	Rules   []types.Rule
	Plugins []types.PluginSpec
}

// Export renders the result as plain maps and slices
func (r *Result) Export() map[string]interface{} {
	rules := make([]interface{}, len(r.Rules))
	for i, rule := range r.Rules {
		rules[i] = rule.Export()
	}
	plugins := make([]interface{}, len(r.Plugins))
	for i, p := range r.Plugins {
		plugins[i] = p.Export()
	}
	return map[string]interface{}{
		"babel":   r.Babel.Export(),
		"module":  map[string]interface{}{"rules": rules},
		"plugins": plugins,
	}
}

// Generate builds the whole configuration. On error nothing is returned.
func (m *Mix) Generate() (*Result, error) {
	done := logging.LogOperationStart(m.logger, "generate")
	defer done()

	babelConfig, err := m.BabelConfig()
	if err != nil {
		return nil, err
	}
	rules, err := m.rules(babelConfig)
	if err != nil {
		return nil, err
	}

	m.logger.Info().Int("rules", len(rules)).Msg("Generated build configuration")
	return &Result{
		Babel:   babelConfig,
		Rules:   rules,
		Plugins: m.Plugins(),
	}, nil
}

// Explanation tells which rule handles a file
type Explanation struct {
	Path string
	// Rule is nil when no rule handles the file
	Rule *types.Rule
	// ExcludedBy lists rules that match the file but exclude it
	ExcludedBy []string
}

// Explain finds the first rule whose pattern accepts path and whose
// exclusions do not cover it
func (m *Mix) Explain(path string) (*Explanation, error) {
	rules, err := m.Rules()
	if err != nil {
		return nil, err
	}
	return ExplainWith(rules, m.ctx.Root, path)
}

// ExplainWith explains path against already built rules
func ExplainWith(rules []types.Rule, root, path string) (*Explanation, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	explanation := &Explanation{Path: filepath.Clean(path)}
	slashPath := filepath.ToSlash(explanation.Path)

	for i := range rules {
		rule := rules[i]
		re, err := regexp2.Compile(rule.Match, regexp2.ECMAScript)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "rule %s has an invalid pattern", rule.Category).
				WithDetail("pattern", rule.Match)
		}
		matched, err := re.MatchString(slashPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "failed to match %s", path)
		}
		if !matched {
			continue
		}
		if isExcluded(explanation.Path, rule.Exclude) {
			explanation.ExcludedBy = append(explanation.ExcludedBy, rule.Category)
			continue
		}
		explanation.Rule = &rule
		break
	}
	return explanation, nil
}

// isExcluded applies the bundler's path condition: an exclude entry covers
// the path itself and everything below it
func isExcluded(path string, exclude []string) bool {
	for _, ex := range exclude {
		ex = filepath.Clean(ex)
		if path == ex || strings.HasPrefix(path, ex+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Then registers a callback to run after every build pass
func (m *Mix) Then(cb events.Callback) error {
	return events.Then(m.dispatcher, cb)
}

// Apply taps an external compiler's done hook so it dispatches the
// registered callbacks
func (m *Mix) Apply(hook events.DoneHook) {
	events.NewBuildCallbackPlugin(events.DispatchTo(m.dispatcher)).Apply(hook)
}

// Done reports a completed build pass to the registered callbacks
func (m *Mix) Done(ctx context.Context, stats events.Stats) error {
	return m.hooks.Done(ctx, stats)
}
