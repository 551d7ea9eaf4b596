// Package config loads mixconf settings.
//
// Settings are layered with koanf, each layer overriding the previous one:
// compiled-in defaults, the user config file, the project file (mix.toml,
// .mixconf.toml, mix.yaml or mix.yml at the project root), an explicit
// config file, MIXCONF_* environment variables and command line overrides.
// A missing file is skipped; a file that exists but does not parse is an
// error.
package config
