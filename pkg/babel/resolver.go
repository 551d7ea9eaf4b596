package babel

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mixconf/pkg/filesystem"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/dlclark/regexp2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/rs/zerolog"
)

// Resolver resolves a step name to the file identity used for de-duplication
type Resolver interface {
	Resolve(name string, kind types.ItemKind) (resolved string, ok bool)
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(name string, kind types.ItemKind) (string, bool)

// Resolve calls f
func (f ResolverFunc) Resolve(name string, kind types.ItemKind) (string, bool) {
	return f(name, kind)
}

// Name standardization follows Babel's own shorthand rules
var (
	pluginPrefixRE   = regexp2.MustCompile(`^(?!@|module:|[^/]+\/|babel-plugin-)`, regexp2.ECMAScript)
	presetPrefixRE   = regexp2.MustCompile(`^(?!@|module:|[^/]+\/|babel-preset-)`, regexp2.ECMAScript)
	pluginOrgRE      = regexp2.MustCompile(`^(@babel\/)(?!plugin-|[^/]+\/)`, regexp2.ECMAScript)
	presetOrgRE      = regexp2.MustCompile(`^(@babel\/)(?!preset-|[^/]+\/)`, regexp2.ECMAScript)
	otherPluginOrgRE = regexp2.MustCompile(`^(@(?!babel\/)[^/]+\/)(?![^/]*babel-plugin(?:-|\/|$)|[^/]+\/)`, regexp2.ECMAScript)
	otherPresetOrgRE = regexp2.MustCompile(`^(@(?!babel\/)[^/]+\/)(?![^/]*babel-preset(?:-|\/|$)|[^/]+\/)`, regexp2.ECMAScript)
	otherOrgRE       = regexp2.MustCompile(`^(@(?!babel$)[^/]+)$`, regexp2.ECMAScript)
)

// StandardizeName expands shorthand preset and plugin names into the
// package name they refer to: "env" becomes "babel-preset-env",
// "@babel/env" becomes "@babel/preset-env" and "module:x" becomes "x".
func StandardizeName(kind types.ItemKind, name string) string {
	if filepath.IsAbs(name) || isRelative(name) {
		return name
	}

	prefixRE, orgRE, otherRE := pluginPrefixRE, pluginOrgRE, otherPluginOrgRE
	if kind == types.KindPreset {
		prefixRE, orgRE, otherRE = presetPrefixRE, presetOrgRE, otherPresetOrgRE
	}
	k := string(kind)

	out := replace(prefixRE, name, "babel-"+k+"-")
	out = replace(orgRE, out, "${1}"+k+"-")
	out = replace(otherRE, out, "${1}babel-"+k+"-")
	out = replace(otherOrgRE, out, "${1}/babel-"+k)
	return strings.TrimPrefix(out, "module:")
}

func replace(re *regexp2.Regexp, input, replacement string) string {
	out, err := re.Replace(input, replacement, -1, -1)
	if err != nil {
		return input
	}
	return out
}

func isRelative(name string) bool {
	return name == "." || name == ".." ||
		strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../")
}

// ModuleResolver resolves steps the way Node resolves packages: relative
// names against the project root, package names through node_modules
// directories walking up from the root. The identity is the package's
// main entry file.
type ModuleResolver struct {
	fs     types.FS
	root   string
	logger zerolog.Logger
}

// NewModuleResolver creates a resolver rooted at the project directory
func NewModuleResolver(fsys types.FS, root string) *ModuleResolver {
	return &ModuleResolver{
		fs:     fsys,
		root:   root,
		logger: logging.GetLogger("babel.resolver"),
	}
}

var fileCandidates = []string{"", ".js", ".cjs", ".mjs", "/index.js"}

// Resolve implements Resolver
func (r *ModuleResolver) Resolve(name string, kind types.ItemKind) (string, bool) {
	if filepath.IsAbs(name) || isRelative(name) {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.root, path)
		}
		return r.resolveFile(path)
	}

	request := StandardizeName(kind, name)
	for dir := r.root; ; dir = filepath.Dir(dir) {
		pkgDir := filepath.Join(dir, "node_modules", filepath.FromSlash(request))
		if resolved, ok := r.resolvePackage(pkgDir); ok {
			r.logger.Trace().
				Str("name", name).
				Str("request", request).
				Str("resolved", resolved).
				Msg("Resolved step")
			return resolved, true
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}

	r.logger.Debug().Str("name", name).Str("request", request).Msg("Step has no resolvable identity")
	return "", false
}

func (r *ModuleResolver) resolveFile(path string) (string, bool) {
	for _, suffix := range fileCandidates {
		candidate := path + filepath.FromSlash(suffix)
		if info, err := r.fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func (r *ModuleResolver) resolvePackage(pkgDir string) (string, bool) {
	data, ok, err := filesystem.ReadOptional(r.fs, filepath.Join(pkgDir, "package.json"))
	if err != nil || !ok {
		return "", false
	}

	main := "index.js"
	manifest, err := json.Parser().Unmarshal(data)
	if err != nil {
		r.logger.Warn().Err(err).Str("package", pkgDir).Msg("Ignoring unreadable package manifest")
	} else if m, ok := manifest["main"].(string); ok && m != "" {
		main = m
	}

	if resolved, ok := r.resolveFile(filepath.Join(pkgDir, filepath.FromSlash(main))); ok {
		return resolved, true
	}
	return filepath.Join(pkgDir, filepath.FromSlash(main)), true
}
