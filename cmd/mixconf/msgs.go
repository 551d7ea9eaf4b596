package mixconf

import (
	_ "embed"
	"strings"
)

// Short messages
const (
	MsgRootShort       = "Compose transpiler and bundler configuration"
	MsgGenerateShort   = "Generate the complete build configuration"
	MsgBabelShort      = "Print the merged transpiler configuration"
	MsgRulesShort      = "List the bundler loader rules"
	MsgExplainShort    = "Show which rule handles a file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	MsgVersionFormat = "mixconf version %s\n  commit: %s\n  built:  %s\n"
	MsgWroteFile     = "Wrote %s\n"

	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrLoadConfig = "failed to load settings: %w"

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot    = "Project root (default: nearest directory with package.json)"
	MsgFlagConfig  = "Settings file applied over mix.toml"
	MsgFlagFormat  = "Output format: auto, json, yaml, toml, term or text"
	MsgFlagSet     = "Override a setting, e.g. --set babel.cacheDirectory=false (repeatable, values are YAML)"
	MsgFlagOut     = "Write the configuration to this file below the project root"
	MsgFlagForce   = "Replace an existing output file"
	MsgFlagMethod  = "Style method for this run: auto, inline or extract"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/babel-long.txt
	msgBabelLongRaw string
	MsgBabelLong    = strings.TrimSpace(msgBabelLongRaw)

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/explain-long.txt
	msgExplainLongRaw string
	MsgExplainLong    = strings.TrimSpace(msgExplainLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
