package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/warforge/pkg/packaging"
	"github.com/arthur-debert/warforge/pkg/ui/display"
)

func newPackageCmd(g *globalOptions) *cobra.Command {
	var (
		archiveClasses bool
		webappDir      string
	)

	cmd := &cobra.Command{
		Use:     "package",
		Short:   MsgPackageShort,
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
			if err != nil {
				if report != nil {
					_ = g.render(cmd, report)
				}
				return err
			}

			dest := cfg.WarFile()
			if err := packaging.New(g.fs, nil).PackageWar(cfg.War.OutputDir, dest, cfg.Project); err != nil {
				return err
			}
			return g.render(cmd, &display.Packaged{Kind: "war", File: dest, Report: report})
		},
	}

	cmd.Flags().BoolVar(&archiveClasses, "archive-classes", false, MsgFlagArchiveClasses)
	cmd.Flags().StringVar(&webappDir, "webapp-dir", "", MsgFlagWebappDir)
	return cmd
}

func newConfigurationCmd(g *globalOptions) *cobra.Command {
	var classifier string

	cmd := &cobra.Command{
		Use:     "configuration",
		Short:   MsgConfigurationShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("classifier") {
				overrides["configuration.classifier"] = classifier
			}
			cfg, err := g.load(cmd, overrides)
			if err != nil {
				return err
			}

			dest := cfg.ConfigurationFile()
			if err := packaging.New(g.fs, nil).PackageConfiguration(cfg.Configuration.Directory, dest); err != nil {
				return err
			}
			return g.render(cmd, &display.Packaged{Kind: "configuration", File: dest})
		},
	}

	cmd.Flags().StringVar(&classifier, "classifier", "", MsgFlagClassifier)
	return cmd
}
