package tasks

import (
	"context"
	"fmt"

	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/core/ports"
	"go.trai.ch/conduit/internal/engine/readiness"
	"go.trai.ch/zerr"
)

// Behavior is the effect performed by a task.
type Behavior interface {
	Run(ctx context.Context, desc *domain.TaskDescriptor) error
}

// BehaviorFunc adapts a function to the Behavior interface.
type BehaviorFunc func(ctx context.Context, desc *domain.TaskDescriptor) error

// Run calls f.
func (f BehaviorFunc) Run(ctx context.Context, desc *domain.TaskDescriptor) error {
	return f(ctx, desc)
}

// Task implements ports.Task for a descriptor and its behavior.
type Task struct {
	desc      *domain.TaskDescriptor
	behavior  Behavior
	evaluator *readiness.Evaluator
	signals   *domain.Signals
	logger    ports.Logger
}

var _ ports.Task = (*Task)(nil)

// NewTask creates a Task.
func NewTask(
	desc *domain.TaskDescriptor,
	behavior Behavior,
	evaluator *readiness.Evaluator,
	signals *domain.Signals,
	logger ports.Logger,
) *Task {
	return &Task{
		desc:      desc,
		behavior:  behavior,
		evaluator: evaluator,
		signals:   signals,
		logger:    logger,
	}
}

// Descriptor returns the descriptor the task was built from.
func (t *Task) Descriptor() *domain.TaskDescriptor {
	return t.desc
}

// IsReady reports whether every input binding is available now.
func (t *Task) IsReady() bool {
	return t.evaluator.Ready(t.desc.Inputs)
}

// Process runs the behavior. On success the task's flags are raised.
// Failures, including panics, are logged and reported as false.
func (t *Task) Process(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error(t.failure(zerr.New(fmt.Sprint(r))))
			ok = false
		}
	}()

	if err := t.behavior.Run(ctx, t.desc); err != nil {
		t.logger.Error(t.failure(err))
		return false
	}

	for _, flag := range t.desc.Flags() {
		t.signals.Raise(flag)
	}
	return true
}

func (t *Task) failure(cause error) error {
	err := zerr.With(zerr.Wrap(cause, "task failed"), "task_id", t.desc.ID)
	return zerr.With(err, "task_type", t.desc.Type)
}
