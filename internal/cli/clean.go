package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/workarea"
)

func newCleanCmd(g *globalOptions) *cobra.Command {
	var work, webapp bool

	cmd := &cobra.Command{
		Use:     "clean",
		Short:   MsgCleanShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd, nil)
			if err != nil {
				return err
			}
			// neither flag means both
			if !work && !webapp {
				work, webapp = true, true
			}

			var removed []string
			if webapp && exists(g, cfg.War.OutputDir) {
				if err := g.fs.RemoveAll(cfg.War.OutputDir); err != nil {
					return errors.IO(err, cfg.War.OutputDir, "cannot remove web application directory")
				}
				removed = append(removed, cfg.War.OutputDir)
			}
			cache := workarea.New(g.fs, cfg.War.WorkDir)
			if work && exists(g, cache.Root()) {
				if err := cache.Clean(); err != nil {
					return err
				}
				removed = append(removed, cache.Root())
			}

			if len(removed) == 0 {
				return g.message(cmd, MsgNothingToDo)
			}
			for _, path := range removed {
				if err := g.message(cmd, fmt.Sprintf(MsgCleaned, path)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&work, "work", false, MsgFlagCleanWork)
	cmd.Flags().BoolVar(&webapp, "webapp", false, MsgFlagCleanWebapp)
	return cmd
}

func exists(g *globalOptions, path string) bool {
	_, err := g.fs.Stat(path)
	return err == nil
}
