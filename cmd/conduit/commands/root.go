// Package commands implements the CLI commands for conduit.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/conduit/internal/app"
	"go.trai.ch/conduit/internal/build"
	"go.trai.ch/conduit/internal/config"
	"go.trai.ch/conduit/internal/core/domain"
)

// CLI represents the command line interface for conduit.
type CLI struct {
	app      Application
	settings *config.Settings
	rootCmd  *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(json, debug bool)
	Run(ctx context.Context, opts app.RunOptions) (*domain.RunReport, error)
	RunTask(ctx context.Context, configPath, id string) error
	Pipeline(configPath string) (*domain.Pipeline, error)
	Graph(configPath string) (*domain.Graph, error)
}

// New creates a new CLI instance with the given app.
// Flag defaults come from settings; a nil settings value uses the built-in defaults.
func New(a Application, settings *config.Settings) *CLI {
	if settings == nil {
		settings = defaultSettings()
	}

	rootCmd := &cobra.Command{
		Use:           "conduit",
		Short:         "A pipeline orchestrator that infers task order from inputs and outputs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", settings.ConfigPath, "Path to the pipeline file")
	rootCmd.PersistentFlags().String("log-format", settings.LogFormat, "Log format: text or json")
	rootCmd.PersistentFlags().Bool("debug", settings.Debug, "Enable debug logging")

	c := &CLI{
		app:      a,
		settings: settings,
		rootCmd:  rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configureLogging

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newTaskCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) configureLogging(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	debug, _ := cmd.Flags().GetBool("debug")

	s := *c.settings
	s.LogFormat = format
	if err := s.Validate(); err != nil {
		return err
	}
	c.app.ConfigureLogging(s.JSONLogs(), debug)
	return nil
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

func defaultSettings() *config.Settings {
	s, err := config.LoadFrom(map[string]string{})
	if err != nil {
		panic(err)
	}
	return s
}
