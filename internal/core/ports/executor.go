// Package ports defines the core interfaces for the application.
package ports

import "context"

// Command describes a process launched on behalf of a task.
type Command struct {
	// TaskID identifies the task in log output.
	TaskID string
	// Argv is the program followed by its arguments.
	Argv []string
	// Env holds variables layered over the current process environment.
	Env map[string]string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Executor defines the interface for running external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command to completion.
	//
	// It returns an error if the command cannot be started or exits unsuccessfully.
	Execute(ctx context.Context, cmd Command) error
}
