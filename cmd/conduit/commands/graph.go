package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/conduit/internal/app"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the dependency graph inferred from task bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := c.app.Graph(configPath(cmd))
			if err != nil {
				return err
			}
			return app.WriteGraph(cmd.OutOrStdout(), g)
		},
	}
}
