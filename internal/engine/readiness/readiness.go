// Package readiness decides whether a task's input bindings are currently available.
package readiness

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/conduit/internal/core/domain"
)

// StatFunc reports information about a path. It matches os.Stat.
type StatFunc func(name string) (os.FileInfo, error)

// GlobFunc expands a pattern. It matches filepath.Glob.
type GlobFunc func(pattern string) ([]string, error)

// Evaluator answers binding availability queries against the filesystem and a run's signals.
// Answers are never cached: a file may appear or disappear between two queries.
type Evaluator struct {
	signals *domain.Signals
	stat    StatFunc
	glob    GlobFunc
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithStat replaces os.Stat for file bindings.
func WithStat(stat StatFunc) Option {
	return func(e *Evaluator) {
		e.stat = stat
	}
}

// WithGlob lets file bindings holding a pattern be satisfied by any match of glob.
// Without it a file binding is available only when the literal path exists.
func WithGlob(glob GlobFunc) Option {
	return func(e *Evaluator) {
		e.glob = glob
	}
}

// WithGlobPatterns is WithGlob using filepath.Glob.
func WithGlobPatterns() Option {
	return WithGlob(filepath.Glob)
}

// NewEvaluator creates an Evaluator bound to the given signals.
func NewEvaluator(signals *domain.Signals, opts ...Option) *Evaluator {
	e := &Evaluator{
		signals: signals,
		stat:    os.Stat,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Binding reports whether a single binding is available right now.
// Unknown keys are never available.
func (e *Evaluator) Binding(key, value string) bool {
	switch key {
	case domain.BindingFile:
		return e.fileExists(value)
	case domain.BindingFlag:
		return e.signals != nil && e.signals.Has(value)
	default:
		return false
	}
}

// Ready reports whether every binding is available. Empty bindings are always ready.
func (e *Evaluator) Ready(bindings domain.Bindings) bool {
	for _, key := range bindings.Keys() {
		if !e.Binding(key, bindings[key]) {
			return false
		}
	}
	return true
}

// fileExists stats the path. When pattern matching is enabled, a value holding
// glob metacharacters that does not exist literally is available when the
// pattern matches at least one path.
func (e *Evaluator) fileExists(value string) bool {
	if _, err := e.stat(value); err == nil {
		return true
	}
	if e.glob == nil || !strings.ContainsAny(value, "*?[") {
		return false
	}
	matches, err := e.glob(value)
	return err == nil && len(matches) > 0
}
