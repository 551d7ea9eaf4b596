package types

import (
	"sort"

	"github.com/arthur-debert/mixconf/pkg/errors"
)

// StyleMethod selects how generated stylesheets reach the page
type StyleMethod string

const (
	StyleAuto    StyleMethod = "auto"
	StyleInline  StyleMethod = "inline"
	StyleExtract StyleMethod = "extract"
)

// ValidStyleMethods lists the accepted style methods in display order
var ValidStyleMethods = []StyleMethod{StyleAuto, StyleInline, StyleExtract}

// GlobalStyles holds shared style resources injected into preprocessor
// sources. Exactly one form is set: Path is the legacy single-path
// shorthand, Files maps a file type to its ordered resources.
type GlobalStyles struct {
	Path  string
	Files map[string][]string
}

// GlobalStylesPath builds the single-path shorthand form
func GlobalStylesPath(path string) GlobalStyles {
	return GlobalStyles{Path: path}
}

// GlobalStylesFiles builds the explicit per-type form
func GlobalStylesFiles(files map[string][]string) GlobalStyles {
	return GlobalStyles{Files: files}
}

// IsZero reports whether no global styles are configured
func (g GlobalStyles) IsZero() bool {
	return g.Path == "" && len(g.Files) == 0
}

// IsShorthand reports whether the legacy single-path form is in use
func (g GlobalStyles) IsShorthand() bool {
	return g.Path != ""
}

// Types returns the file types of the explicit form in sorted order
func (g GlobalStyles) Types() []string {
	types := make([]string, 0, len(g.Files))
	for t := range g.Files {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ParseGlobalStyles normalizes a raw configuration value. A string is the
// shorthand form; a map is the per-type form whose values may be a single
// path or a list of paths.
func ParseGlobalStyles(raw interface{}) (GlobalStyles, error) {
	switch v := raw.(type) {
	case nil:
		return GlobalStyles{}, nil
	case GlobalStyles:
		return v, nil
	case string:
		return GlobalStylesPath(v), nil
	case map[string][]string:
		return GlobalStylesFiles(v), nil
	case map[string]interface{}:
		files := make(map[string][]string, len(v))
		for fileType, val := range v {
			paths, err := toPathList(val)
			if err != nil {
				return GlobalStyles{}, errors.Wrapf(err, errors.ErrConfigValid,
					"invalid global styles for %q", fileType)
			}
			files[fileType] = paths
		}
		return GlobalStylesFiles(files), nil
	default:
		return GlobalStyles{}, errors.Newf(errors.ErrConfigValid,
			"global styles must be a path or a mapping, got %T", raw)
	}
}

func toPathList(v interface{}) ([]string, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []string:
		return val, nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf(errors.ErrInvalidInput, "expected a path, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "expected a path or list of paths, got %T", v)
	}
}
