package ports

import (
	"context"

	"go.trai.ch/conduit/internal/core/domain"
)

// Task is the runnable capability bound to one task descriptor.
//
//go:generate go run go.uber.org/mock/mockgen -source=task.go -destination=mocks/mock_task.go -package=mocks
type Task interface {
	// Descriptor returns the descriptor the task was built from.
	Descriptor() *domain.TaskDescriptor

	// IsReady reports whether every input binding is currently available.
	// A task without input bindings is always ready.
	IsReady() bool

	// Process performs the task's effect and reports success.
	// On success every flag output is raised in the run's signals.
	// It must be safe to call concurrently with other tasks.
	Process(ctx context.Context) bool
}

// TaskSet holds the resolved tasks of one run, keyed by task id.
type TaskSet map[string]Task

// TaskResolver binds descriptors to runnable tasks.
type TaskResolver interface {
	// Resolve builds the task for a single descriptor.
	// It returns domain.ErrUnknownTaskType when the descriptor's type is not registered.
	Resolve(desc *domain.TaskDescriptor, signals *domain.Signals) (Task, error)

	// ResolveAll builds a task for every descriptor of the pipeline.
	// All descriptors are checked; the errors of every failing one are joined.
	ResolveAll(p *domain.Pipeline, signals *domain.Signals) (TaskSet, error)
}
