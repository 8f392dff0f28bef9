// Package tasks binds task descriptors to runnable behaviors.
package tasks

import (
	"errors"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/core/ports"
	"go.trai.ch/conduit/internal/engine/readiness"
	"go.trai.ch/zerr"
)

// Constructor builds the behavior for a descriptor.
// It validates the descriptor's parameters so that misconfiguration surfaces before a run starts.
type Constructor func(desc *domain.TaskDescriptor) (Behavior, error)

// Registry maps task type tags to behavior constructors.
type Registry struct {
	mu         sync.RWMutex
	ctors      map[string]Constructor
	logger     ports.Logger
	opts       []readiness.Option
	globInputs bool
}

// NewRegistry creates an empty registry.
// The readiness options are applied to the evaluator of every resolved task.
func NewRegistry(logger ports.Logger, opts ...readiness.Option) *Registry {
	return &Registry{
		ctors:  make(map[string]Constructor),
		logger: logger,
		opts:   opts,
	}
}

// NewDefaultRegistry creates a registry holding the built-in task types.
func NewDefaultRegistry(logger ports.Logger, executor ports.Executor, opts ...readiness.Option) *Registry {
	r := NewRegistry(logger, opts...)
	r.Register(TypeNoop, newNoop)
	r.Register(TypeTouch, newTouch)
	r.Register(TypeShell, func(desc *domain.TaskDescriptor) (Behavior, error) {
		return newShell(desc, executor)
	})
	r.Register(TypeReRename, func(desc *domain.TaskDescriptor) (Behavior, error) {
		return newReRename(desc, logger)
	})
	return r
}

// Register adds a constructor under the given type tag, replacing any previous one.
func (r *Registry) Register(taskType string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[taskType] = ctor
}

// SetGlobInputs lets file inputs holding a glob pattern be satisfied by any
// matching path for tasks resolved afterwards. It is off by default.
func (r *Registry) SetGlobInputs(enable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.globInputs = enable
}

// Types returns the registered type tags, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.ctors))
}

// Resolve builds the task for a single descriptor.
func (r *Registry) Resolve(desc *domain.TaskDescriptor, signals *domain.Signals) (ports.Task, error) {
	if desc.Type == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingTaskType, "cannot resolve task"), "task_id", desc.ID)
	}

	r.mu.RLock()
	ctor, ok := r.ctors[desc.Type]
	opts := slices.Clone(r.opts)
	if r.globInputs {
		opts = append(opts, readiness.WithGlobPatterns())
	}
	r.mu.RUnlock()
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrUnknownTaskType, "cannot resolve task"), "task_type", desc.Type)
		return nil, zerr.With(err, "task_id", desc.ID)
	}

	behavior, err := ctor(desc)
	if err != nil {
		return nil, err
	}

	return NewTask(desc, behavior, readiness.NewEvaluator(signals, opts...), signals, r.logger), nil
}

// ResolveAll builds a task for every descriptor of the pipeline.
func (r *Registry) ResolveAll(p *domain.Pipeline, signals *domain.Signals) (ports.TaskSet, error) {
	set := make(ports.TaskSet, p.Len())
	var errs []error
	for _, desc := range p.Descriptors() {
		task, err := r.Resolve(desc, signals)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set[desc.ID] = task
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}
