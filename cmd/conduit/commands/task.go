package commands

import "github.com/spf13/cobra"

func (c *CLI) newTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "task <id>",
		Short: "Run a single task once, ignoring its inputs and predecessors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RunTask(cmd.Context(), configPath(cmd), args[0])
		},
	}
}
