// Package main is the entry point for the conduit pipeline orchestrator.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/conduit/cmd/conduit/commands"
	"go.trai.ch/conduit/internal/app"
	"go.trai.ch/conduit/internal/config"
	"go.trai.ch/conduit/internal/core/domain"
	_ "go.trai.ch/conduit/internal/wiring"
)

// Exit codes.
const (
	exitOK            = 0
	exitFailure       = 1
	exitDuplicateID   = 2
	exitTaskNotFound  = 3
	exitTaskFailed    = 4
	exitUnknownType   = 5
	exitCycleDetected = 6
)

const shutdownTimeout = 5 * time.Second

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, defaultProvider))
}

// defaultProvider resolves the components from the registered Graft nodes.
func defaultProvider(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		return nil, func() {}, err
	}
	return c, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = c.App.Shutdown(shutdownCtx)
	}, nil
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Read settings from the environment
	settings, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFailure
	}

	// 2. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr passed in
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFailure
	}
	defer cleanup()

	if l, ok := components.Logger.(interface{ SetOutput(io.Writer) }); ok {
		l.SetOutput(stderr)
	}

	// 3. Interface - CLI
	cli := commands.New(components.App, settings)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 4. Execution
	if err := cli.Execute(ctx); err != nil {
		// The task already logged why it failed.
		if !errors.Is(err, domain.ErrTaskExecutionFailed) {
			components.Logger.Error(err)
		}
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrDuplicateTaskID):
		return exitDuplicateID
	case errors.Is(err, domain.ErrTaskNotFound):
		return exitTaskNotFound
	case errors.Is(err, domain.ErrTaskExecutionFailed):
		return exitTaskFailed
	case errors.Is(err, domain.ErrUnknownTaskType), errors.Is(err, domain.ErrMissingTaskType):
		return exitUnknownType
	case errors.Is(err, domain.ErrCycleDetected):
		return exitCycleDetected
	default:
		return exitFailure
	}
}
