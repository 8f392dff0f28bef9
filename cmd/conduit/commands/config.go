package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/conduit/internal/app"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the loaded pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := c.app.Pipeline(configPath(cmd))
			if err != nil {
				return err
			}
			return app.WriteConfig(cmd.OutOrStdout(), p)
		},
	}
}
