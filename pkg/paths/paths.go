package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/mixconf/pkg/errors"
)

// Environment variable names
const (
	// EnvProjectRoot overrides project root discovery
	EnvProjectRoot = "MIXCONF_ROOT"

	// EnvConfigDir overrides the XDG config directory for mixconf
	EnvConfigDir = "MIXCONF_CONFIG_DIR"
)

const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "mixconf"

	// ProjectMarker is the file whose presence marks a project root
	ProjectMarker = "package.json"

	// UserConfigFile is the user-level settings file inside the config dir
	UserConfigFile = "config.toml"
)

// Paths provides path management rooted at the project directory
type Paths struct {
	root         string
	usedFallback bool
	configDir    string
}

// New creates Paths for the given project root. An empty root is taken
// from MIXCONF_ROOT, or discovered by walking up from the working
// directory to the nearest package.json.
func New(root string) (*Paths, error) {
	p := &Paths{}

	if root == "" {
		found, usedFallback, err := findProjectRoot()
		if err != nil {
			return nil, err
		}
		root = found
		p.usedFallback = usedFallback
	}

	absRoot, err := filepath.Abs(expandHome(root))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	p.root = absRoot

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = expandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	return p, nil
}

// Root returns the absolute project root
func (p *Paths) Root() string {
	return p.root
}

// UsedFallback reports whether the working directory was used because no
// project marker was found
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// Resolve resolves a path against the project root. Absolute paths are
// returned cleaned.
func (p *Paths) Resolve(path string) string {
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.root, path)
}

// ResolveAll resolves every path in order
func (p *Paths) ResolveAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, path := range paths {
		out[i] = p.Resolve(path)
	}
	return out
}

// ConfigDir returns the user-level configuration directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// UserConfigPath returns the user-level settings file path
func (p *Paths) UserConfigPath() string {
	return filepath.Join(p.configDir, UserConfigFile)
}

// findProjectRoot walks up from the working directory looking for a
// package.json
func findProjectRoot() (string, bool, error) {
	if root := os.Getenv(EnvProjectRoot); root != "" {
		return root, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectMarker)); err == nil {
			return dir, false, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd, true, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
