package domain

import (
	"maps"
	"slices"
)

// Binding keys understood by the readiness evaluator.
const (
	// BindingFile names a filesystem path that must exist.
	BindingFile = "file"
	// BindingFlag names a signal raised by another task on success.
	BindingFlag = "flag"
)

// Bindings maps a symbolic key to a symbolic value.
// A task consumes its input bindings and produces its output bindings.
type Bindings map[string]string

// Has reports whether the bindings contain exactly the given pair.
func (b Bindings) Has(key, value string) bool {
	v, ok := b[key]
	return ok && v == value
}

// Keys returns the binding keys in sorted order.
func (b Bindings) Keys() []string {
	return slices.Sorted(maps.Keys(b))
}

// TaskDescriptor is the declarative record of one unit of work.
// It is built once from configuration and never modified afterwards.
type TaskDescriptor struct {
	ID         string
	Type       string
	Inputs     Bindings
	Outputs    Bindings
	Parameters map[string]any
}

// Flags returns the signal raised by the task on success, if it declares one.
func (d *TaskDescriptor) Flags() []string {
	if flag, ok := d.Outputs[BindingFlag]; ok {
		return []string{flag}
	}
	return nil
}

// Feeds reports whether any output binding of d matches an input binding of next.
// A descriptor never feeds itself.
func (d *TaskDescriptor) Feeds(next *TaskDescriptor) bool {
	if d == next || d.ID == next.ID {
		return false
	}
	for key, value := range next.Inputs {
		if d.Outputs.Has(key, value) {
			return true
		}
	}
	return false
}
