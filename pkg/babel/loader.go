package babel

import (
	"path/filepath"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/filesystem"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	// ProjectConfigFile is the root-wide transpiler configuration
	ProjectConfigFile = "babel.config.json"
	// PackageManifest may carry a "babel" key
	PackageManifest = "package.json"
)

// relativeConfigFiles are tried in order; the first one present wins
var relativeConfigFiles = []string{".babelrc", ".babelrc.json", ".babelrc.yaml", ".babelrc.yml"}

// PartialLoader discovers project-local transpiler configuration and merges
// it under a programmatic fragment
type PartialLoader struct {
	fs     types.FS
	root   string
	merger *Merger
	logger zerolog.Logger
}

// NewPartialLoader creates a loader reading files below root
func NewPartialLoader(fsys types.FS, root string, merger *Merger) *PartialLoader {
	return &PartialLoader{
		fs:     fsys,
		root:   root,
		merger: merger,
		logger: logging.GetLogger("babel.loader"),
	}
}

// Load returns the project fragment merged with custom. A configuration
// file that does not exist contributes nothing; one that exists but cannot
// be parsed fails the load.
func (l *PartialLoader) Load(custom types.Fragment) (types.Fragment, error) {
	fragments := make([]types.Fragment, 0, 3)

	projectFragment, err := l.loadProjectConfig(custom)
	if err != nil {
		return nil, err
	}
	fragments = append(fragments, projectFragment)

	relativeFragment, err := l.loadRelativeConfig(custom)
	if err != nil {
		return nil, err
	}
	fragments = append(fragments, relativeFragment)

	if custom == nil {
		custom = types.Fragment{}
	}
	fragments = append(fragments, custom)

	return l.merger.MergeAll(fragments)
}

func (l *PartialLoader) loadProjectConfig(custom types.Fragment) (types.Fragment, error) {
	path := filepath.Join(l.root, ProjectConfigFile)
	switch v := custom["configFile"].(type) {
	case bool:
		if !v {
			return types.Fragment{}, nil
		}
	case string:
		if v != "" {
			path = v
			if !filepath.IsAbs(path) {
				path = filepath.Join(l.root, path)
			}
		}
	}

	fragment, _, err := l.readFragment(path)
	return fragment, err
}

func (l *PartialLoader) loadRelativeConfig(custom types.Fragment) (types.Fragment, error) {
	if enabled, ok := custom["babelrc"].(bool); ok && !enabled {
		return types.Fragment{}, nil
	}

	for _, name := range relativeConfigFiles {
		fragment, found, err := l.readFragment(filepath.Join(l.root, name))
		if err != nil {
			return nil, err
		}
		if found {
			return fragment, nil
		}
	}

	return l.readManifestFragment(filepath.Join(l.root, PackageManifest))
}

// readFragment parses one configuration file. The parsers are used directly
// rather than through koanf.Load so that option names containing dots are
// not split into nested keys.
func (l *PartialLoader) readFragment(path string) (types.Fragment, bool, error) {
	data, found, err := filesystem.ReadOptional(l.fs, path)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}
	if !found {
		l.logger.Trace().Str("path", path).Msg("No transpiler config file")
		return types.Fragment{}, false, nil
	}

	var parser koanf.Parser = json.Parser()
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		parser = yaml.Parser()
	}

	parsed, err := parser.Unmarshal(data)
	if err != nil {
		return nil, true, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}

	l.logger.Debug().Str("path", path).Int("keys", len(parsed)).Msg("Loaded transpiler config file")
	return types.Fragment(parsed), true, nil
}

func (l *PartialLoader) readManifestFragment(path string) (types.Fragment, error) {
	data, found, err := filesystem.ReadOptional(l.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}
	if !found {
		return types.Fragment{}, nil
	}

	manifest, err := json.Parser().Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}

	section, ok := manifest["babel"]
	if !ok {
		return types.Fragment{}, nil
	}
	fragment, ok := section.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrConfigParse, "%s: \"babel\" must be an object", path).
			WithDetail("path", path)
	}
	return types.Fragment(fragment), nil
}
