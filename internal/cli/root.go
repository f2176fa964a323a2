// Package cli wires the warforge commands.
package cli

import (
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/warforge/internal/version"
	"github.com/arthur-debert/warforge/pkg/config"
	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/filesystem"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/types"
	"github.com/arthur-debert/warforge/pkg/ui"
)

// globalOptions carries the persistent flags into every command.
type globalOptions struct {
	verbosity  int
	configFile string
	baseDir    string
	format     string

	// output is the format the loaded configuration settled on.
	output ui.Format

	fs types.FS
	// noUserConfig keeps tests away from the real per-user file.
	noUserConfig bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&globalOptions{fs: filesystem.NewOS()})
}

func newRootCmd(g *globalOptions) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "warforge",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&g.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&g.baseDir, "base-dir", "C", "", MsgFlagBaseDir)
	flags.StringVar(&g.format, "format", "", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newAssembleCmd(g))
	rootCmd.AddCommand(newPackageCmd(g))
	rootCmd.AddCommand(newConfigurationCmd(g))
	rootCmd.AddCommand(newCopyJSCmd(g))
	rootCmd.AddCommand(newCleanCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// formatAnnotation records the effective output format on the root command
// so a failure is reported the way results would have been.
const formatAnnotation = "warforge.output.format"

// load reads the configuration with the given flag overrides. The --format
// flag is one of them when set.
func (g *globalOptions) load(cmd *cobra.Command, overrides map[string]interface{}) (*config.Config, error) {
	if g.format != "" {
		if overrides == nil {
			overrides = make(map[string]interface{})
		}
		overrides["output.format"] = g.format
	}
	cfg, err := config.Load(config.LoadOptions{
		FS:           g.fs,
		BaseDir:      g.baseDir,
		ConfigFile:   g.configFile,
		NoUserConfig: g.noUserConfig,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, err
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, MsgErrBadFormat).
			WithDetail("format", cfg.Output.Format)
	}
	g.output = format

	root := cmd.Root()
	if root.Annotations == nil {
		root.Annotations = make(map[string]string)
	}
	root.Annotations[formatAnnotation] = string(format)
	return cfg, nil
}

// renderer builds the output renderer for cmd.
func (g *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format := g.output
	if format == "" {
		f, err := ui.ParseFormat(g.format)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, MsgErrBadFormat)
		}
		format = f
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// render writes result with the configured renderer.
func (g *globalOptions) render(cmd *cobra.Command, result interface{}) error {
	r, err := g.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

// message writes a one-line message with the configured renderer.
func (g *globalOptions) message(cmd *cobra.Command, msg string) error {
	r, err := g.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderMessage(msg)
}

// absFlag makes a directory flag absolute against the working directory;
// configuration paths resolve against the project instead.
func absFlag(p string) (string, error) {
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", p)
	}
	return abs, nil
}

// ReportError prints err on the command's error stream, as JSON when JSON
// output was requested by flag or configuration.
func ReportError(cmd *cobra.Command, err error) {
	root := cmd.Root()
	name := root.Annotations[formatAnnotation]
	if name == "" {
		name, _ = root.PersistentFlags().GetString("format")
	}
	format := ui.FormatText
	if f, perr := ui.ParseFormat(name); perr == nil && f == ui.FormatJSON {
		format = ui.FormatJSON
	}
	r, rerr := ui.NewRenderer(format, cmd.ErrOrStderr())
	if rerr != nil {
		_, _ = cmd.ErrOrStderr().Write([]byte("Error: " + err.Error() + "\n"))
		return
	}
	_ = r.RenderError(err)
}
