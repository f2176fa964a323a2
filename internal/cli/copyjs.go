package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/warforge/pkg/packaging"
)

func newCopyJSCmd(g *globalOptions) *cobra.Command {
	var source, target, query, onError string

	cmd := &cobra.Command{
		Use:     "copyjs",
		Short:   MsgCopyJSShort,
		Long:    MsgCopyJSLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			for key, value := range map[string]string{
				"copyjs.source_dir": source,
				"copyjs.target_dir": target,
			} {
				dir, err := absFlag(value)
				if err != nil {
					return err
				}
				if dir != "" {
					overrides[key] = dir
				}
			}
			if cmd.Flags().Changed("query") {
				overrides["copyjs.query"] = query
			}
			if cmd.Flags().Changed("on-error") {
				overrides["copyjs.on_error"] = onError
			}

			cfg, err := g.load(cmd, overrides)
			if err != nil {
				return err
			}
			opts, err := cfg.CopyJSOptions()
			if err != nil {
				return err
			}
			result, err := packaging.New(g.fs, nil).CopyJS(opts)
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", MsgFlagSource)
	cmd.Flags().StringVar(&target, "target", "", MsgFlagTarget)
	cmd.Flags().StringVar(&query, "query", "", MsgFlagQuery)
	cmd.Flags().StringVar(&onError, "on-error", string(packaging.OnErrorIgnore), MsgFlagOnError)
	return cmd
}
