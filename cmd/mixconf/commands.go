package mixconf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/mixconf/internal/version"
	"github.com/arthur-debert/mixconf/pkg/config"
	"github.com/arthur-debert/mixconf/pkg/css"
	"github.com/arthur-debert/mixconf/pkg/emit"
	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/filesystem"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/mixconf/pkg/mix"
	"github.com/arthur-debert/mixconf/pkg/output"
	"github.com/arthur-debert/mixconf/pkg/paths"
	"github.com/arthur-debert/mixconf/pkg/postcss"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	root       string
	configFile string
	format     string
	set        []string
}

// session is the loaded state one command works on
type session struct {
	paths  *paths.Paths
	config *config.Config
	mix    *mix.Mix
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "mixconf",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.root, "root", "", MsgFlagRoot)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.format, "format", "f", "", MsgFlagFormat)
	flags.StringArrayVar(&opts.set, "set", nil, MsgFlagSet)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newBabelCmd(opts))
	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newExplainCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	installTopics(rootCmd)
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// overrides parses --set key=value pairs. Values are typed, so
// babel.cacheDirectory=false reaches the transpiler as a bool.
func (o *globalOptions) overrides() (map[string]interface{}, error) {
	if len(o.set) == 0 {
		return nil, nil
	}
	values := make(map[string]interface{}, len(o.set))
	for _, pair := range o.set {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid --set value %q, expected key=value", pair).
				WithDetail("value", pair)
		}
		values[key] = config.ParseValue(value)
	}
	return values, nil
}

// formatName returns the --format flag, or the configured default
func (o *globalOptions) formatName(cfg *config.Config) string {
	if o.format != "" {
		return o.format
	}
	return cfg.Output.Format
}

// load reads settings and assembles the Mix. A non-empty method replaces
// the configured style method.
func (o *globalOptions) load(method string) (*session, error) {
	p, err := paths.New(o.root)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	overrides, err := o.overrides()
	if err != nil {
		return nil, err
	}

	fsys := filesystem.NewOS()
	cfg, err := config.Load(config.LoadOptions{
		Paths:      p,
		FS:         fsys,
		ConfigFile: o.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	components, err := cfg.Registry(p)
	if err != nil {
		return nil, err
	}

	styleMethod := cfg.StyleMethod()
	if method != "" {
		styleMethod = types.StyleMethod(method)
	}

	log.Info().
		Str("root", p.Root()).
		Str("method", string(styleMethod)).
		Strs("components", components.Commands()).
		Msg("Loaded project settings")

	m := mix.New(cfg.BuildContext(p, components), mix.Options{
		FS:      fsys,
		PostCSS: postcss.NewFactory(cfg.PostCSS),
		Styles: css.Options{
			Method:             styleMethod,
			InjectGlobalStyles: cfg.Styles.InjectGlobalStyles,
		},
	})
	return &session{paths: p, config: cfg, mix: m}, nil
}

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var (
		out   string
		force bool
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load("")
			if err != nil {
				return err
			}

			result, err := s.mix.Generate()
			if err != nil {
				return err
			}

			if out == "" {
				out = s.config.Output.File
			}
			if out == "" {
				return printEncoded(cmd.OutOrStdout(), result.Export(), opts.formatName(s.config))
			}

			format, err := output.ParseFormat(opts.formatName(s.config))
			if err != nil {
				return err
			}
			if !format.IsEncoding() {
				format = output.ExtFormat(out)
			}

			var buf bytes.Buffer
			if err := output.Encode(&buf, result.Export(), format); err != nil {
				return err
			}
			writer := emit.NewWriter(s.paths.Root(), force)
			if err := writer.Write(cmd.Context(), emit.File{Path: out, Content: buf.Bytes()}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgWroteFile, s.paths.Resolve(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newBabelCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "babel",
		Short:   MsgBabelShort,
		Long:    MsgBabelLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load("")
			if err != nil {
				return err
			}
			babelConfig, err := s.mix.BabelConfig()
			if err != nil {
				return err
			}
			return printEncoded(cmd.OutOrStdout(), babelConfig.Export(), opts.formatName(s.config))
		},
	}
}

func newRulesCmd(opts *globalOptions) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(method)
			if err != nil {
				return err
			}
			rules, err := s.mix.Rules()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			format, err := resolveFormat(opts.formatName(s.config), w, output.FormatAuto)
			if err != nil {
				return err
			}
			if format.IsEncoding() {
				exported := make([]interface{}, len(rules))
				for i, rule := range rules {
					exported[i] = rule.Export()
				}
				return output.Encode(w, map[string]interface{}{"rules": exported}, format)
			}
			return output.RenderRules(w, rules, format == output.FormatTerminal)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "", MsgFlagMethod)
	_ = cmd.RegisterFlagCompletionFunc("method", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		methods := make([]string, len(types.ValidStyleMethods))
		for i, m := range types.ValidStyleMethods {
			methods[i] = string(m)
		}
		return methods, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newExplainCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "explain FILE",
		Short:   MsgExplainShort,
		Long:    MsgExplainLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load("")
			if err != nil {
				return err
			}
			explanation, err := s.mix.Explain(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			format, err := resolveFormat(opts.formatName(s.config), w, output.FormatAuto)
			if err != nil {
				return err
			}
			if format.IsEncoding() {
				return output.Encode(w, exportExplanation(explanation), format)
			}
			return output.RenderExplanation(w, explanation, format == output.FormatTerminal)
		},
	}
}

func exportExplanation(e *mix.Explanation) map[string]interface{} {
	excluded := make([]interface{}, len(e.ExcludedBy))
	for i, name := range e.ExcludedBy {
		excluded[i] = name
	}
	exported := map[string]interface{}{
		"path":       e.Path,
		"excludedBy": excluded,
	}
	if e.Rule != nil {
		exported["category"] = e.Rule.Category
		exported["rule"] = e.Rule.Export()
	}
	return exported
}

// printEncoded writes data in an encoding, json unless one is asked for
func printEncoded(w io.Writer, data interface{}, formatName string) error {
	format, err := resolveFormat(formatName, w, output.FormatJSON)
	if err != nil {
		return err
	}
	if !format.IsEncoding() {
		format = output.FormatJSON
	}
	return output.Encode(w, data, format)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
