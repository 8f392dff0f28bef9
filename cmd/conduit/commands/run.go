package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/conduit/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline until every task is launched or the idle timeout expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := *c.settings
			s.ConfigPath = configPath(cmd)
			s.TickInterval, _ = cmd.Flags().GetDuration("tick-interval")
			s.IdleTimeout, _ = cmd.Flags().GetInt("idle-timeout")
			s.Mode, _ = cmd.Flags().GetString("mode")
			s.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
			noCycleCheck, _ := cmd.Flags().GetBool("no-cycle-check")
			s.DetectCycles = !noCycleCheck
			s.GlobInputs, _ = cmd.Flags().GetBool("glob-inputs")

			if err := s.Validate(); err != nil {
				return err
			}
			opts, err := s.OrchestratorOptions()
			if err != nil {
				return err
			}

			report, err := c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath:   s.ConfigPath,
				Orchestrator: opts,
				DetectCycles: s.DetectCycles,
				GlobInputs:   s.GlobInputs,
				MetricsFile:  s.MetricsFile,
			})
			if report != nil {
				if werr := app.WriteReport(cmd.OutOrStdout(), report); werr != nil && err == nil {
					err = werr
				}
			}
			return err
		},
	}
	cmd.Flags().Duration("tick-interval", c.settings.TickInterval, "Pause between two scheduling ticks")
	cmd.Flags().Int("idle-timeout", c.settings.IdleTimeout, "Stop after this many consecutive ticks without a launch")
	cmd.Flags().StringP("mode", "m", c.settings.Mode, "Predecessor rule: launch or completion")
	cmd.Flags().String("metrics-file", c.settings.MetricsFile, "Write Prometheus metrics to this file after the run")
	cmd.Flags().Bool("glob-inputs", c.settings.GlobInputs, "Treat file inputs holding *, ? or [ as glob patterns")
	cmd.Flags().Bool("no-cycle-check", !c.settings.DetectCycles, "Run even if the inferred graph has a cycle")
	return cmd
}
