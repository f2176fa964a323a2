package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/warforge/pkg/assembler"
	"github.com/arthur-debert/warforge/pkg/config"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/types"
)

func newAssembleCmd(g *globalOptions) *cobra.Command {
	var (
		archiveClasses bool
		webappDir      string
	)

	cmd := &cobra.Command{
		Use:     "assemble",
		Short:   MsgAssembleShort,
		Long:    MsgAssembleLong,
		Example: MsgAssembleExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := assembleOverrides(cmd, archiveClasses, webappDir)
			if err != nil {
				return err
			}
			cfg, err := g.load(cmd, overrides)
			if err != nil {
				return err
			}

			report, err := runAssembly(g.fs, cfg)
			if report != nil {
				if rerr := g.render(cmd, report); rerr != nil && err == nil {
					err = rerr
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&archiveClasses, "archive-classes", false, MsgFlagArchiveClasses)
	cmd.Flags().StringVar(&webappDir, "webapp-dir", "", MsgFlagWebappDir)
	return cmd
}

// assembleOverrides maps the assembly flags that were set.
func assembleOverrides(cmd *cobra.Command, archiveClasses bool, webappDir string) (map[string]interface{}, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("archive-classes") {
		overrides["war.archive_classes"] = archiveClasses
	}
	if webappDir != "" {
		dir, err := absFlag(webappDir)
		if err != nil {
			return nil, err
		}
		overrides["war.output_dir"] = dir
	}
	return overrides, nil
}

// runAssembly runs one assembly for cfg. The report is returned even when
// the run fails, so the caller can show how far it got.
func runAssembly(fs types.FS, cfg *config.Config) (*assembler.Report, error) {
	logger := logging.GetLogger("cli.assemble")
	opts, err := cfg.AssemblerOptions(os.Environ())
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("project", cfg.Project.ID()).
		Str("output", opts.OutputDir).
		Msg("Starting assembly")
	return assembler.New(fs).Run(opts)
}
