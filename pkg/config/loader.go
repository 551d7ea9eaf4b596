package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/filesystem"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/mixconf/pkg/paths"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: MIXCONF_STYLES__METHOD=inline sets styles.method.
// Keys are lowercased, so camelCase babel options (cacheDirectory) cannot
// be set from the environment; use --set or a settings file for those.
// Values are typed with ParseValue.
const EnvPrefix = "MIXCONF_"

// ProjectFiles are looked up at the project root; the first one found is used
var ProjectFiles = []string{"mix.toml", ".mixconf.toml", "mix.yaml", "mix.yml"}

// LoadOptions selects the configuration sources
type LoadOptions struct {
	Paths *paths.Paths
	// FS reads the project file
	FS types.FS
	// ConfigFile is an explicit settings file that must exist
	ConfigFile string
	// Overrides are applied last, keyed by dotted path
	Overrides map[string]interface{}
	// SkipUserConfig ignores the user config file
	SkipUserConfig bool
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Default returns the compiled-in settings
func Default() *Config {
	cfg, err := decode(mustDefaults())
	if err != nil {
		panic(err)
	}
	return cfg
}

func mustDefaults() *koanf.Koanf {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	return k
}

// Load reads every configuration layer and decodes the result
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := mustDefaults()

	if opts.Paths != nil && !opts.SkipUserConfig {
		userPath := opts.Paths.UserConfigPath()
		if _, err := os.Stat(userPath); err == nil {
			if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load user config from %s", userPath).
					WithDetail("path", userPath)
			}
			logger.Debug().Str("path", userPath).Msg("Loaded user config")
		}
	}

	if opts.Paths != nil {
		fsys := opts.FS
		if fsys == nil {
			fsys = filesystem.NewOS()
		}
		if err := loadProjectFile(k, fsys, opts.Paths.Root()); err != nil {
			return nil, err
		}
	}

	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if err := k.Load(file.Provider(opts.ConfigFile), parserFor(opts.ConfigFile)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load %s", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("Loaded explicit config")
	}

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		return EnvKey(key), ParseValue(value)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return decode(k)
}

// EnvKey maps an environment variable name to its dotted settings key
func EnvKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "__", ".")
}

func loadProjectFile(k *koanf.Koanf, fsys types.FS, root string) error {
	for _, name := range ProjectFiles {
		path := filepath.Join(root, name)
		data, found, err := filesystem.ReadOptional(fsys, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
		}
		if !found {
			continue
		}
		if err := k.Load(&rawBytesProvider{bytes: data}, parserFor(path)); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
				WithDetail("path", path)
		}
		logger := logging.GetLogger("config")
		logger.Debug().Str("path", path).Msg("Loaded project config")
		return nil
	}
	return nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return toml.Parser()
	}
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				globalStylesHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to decode configuration")
	}
	return &cfg, nil
}

var globalStylesType = reflect.TypeOf(types.GlobalStyles{})

// globalStylesHookFunc decodes either a single path or a per-type mapping
// into GlobalStyles
func globalStylesHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != globalStylesType {
			return data, nil
		}
		return types.ParseGlobalStyles(data)
	}
}
