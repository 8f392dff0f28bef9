// Package app implements the application layer for conduit.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/core/ports"
	"go.trai.ch/conduit/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// textfileWriter is implemented by metrics recorders that can export to a file.
type textfileWriter interface {
	WriteTextfile(path string) error
}

// tracerShutdowner is implemented by tracers that buffer spans.
type tracerShutdowner interface {
	Shutdown(ctx context.Context) error
}

// globConfigurer is implemented by resolvers that can match file inputs as glob patterns.
type globConfigurer interface {
	SetGlobInputs(enable bool)
}

// logConfigurer is implemented by loggers whose format and level can change.
type logConfigurer interface {
	SetJSON(enable bool)
	SetDebug(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.TaskResolver
	orchestrator *orchestrator.Orchestrator
	logger       ports.Logger
	metrics      ports.Metrics
	tracer       ports.Tracer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.TaskResolver,
	orch *orchestrator.Orchestrator,
	log ports.Logger,
	metrics ports.Metrics,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		orchestrator: orch,
		logger:       log,
		metrics:      metrics,
		tracer:       tracer,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	ConfigPath   string
	Orchestrator orchestrator.Options
	DetectCycles bool
	GlobInputs   bool
	MetricsFile  string
}

// ConfigureLogging switches the logger format and level when the logger supports it.
func (a *App) ConfigureLogging(json, debug bool) {
	if l, ok := a.logger.(logConfigurer); ok {
		l.SetJSON(json)
		l.SetDebug(debug)
	}
}

// Shutdown flushes the tracer.
func (a *App) Shutdown(ctx context.Context) error {
	if t, ok := a.tracer.(tracerShutdowner); ok {
		return t.Shutdown(ctx)
	}
	return nil
}

// Run loads the pipeline, infers its graph and schedules every task.
// Every task type is resolved before the first tick.
func (a *App) Run(ctx context.Context, opts RunOptions) (*domain.RunReport, error) {
	// 1. Load the pipeline and infer the graph
	pipeline, graph, err := a.load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 2. Reject cycles unless disabled
	if opts.DetectCycles {
		if err := graph.DetectCycles(); err != nil {
			return nil, err
		}
	}

	// 3. Resolve every task against a fresh signal registry
	if g, ok := a.resolver.(globConfigurer); ok {
		g.SetGlobInputs(opts.GlobInputs)
	} else if opts.GlobInputs {
		a.logger.Warn("task resolver cannot match glob inputs; file inputs are literal paths")
	}
	signals := domain.NewSignals()
	tasks, err := a.resolver.ResolveAll(pipeline, signals)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve tasks")
	}

	// 4. Schedule
	report, err := a.orchestrator.Run(ctx, graph, tasks, signals, opts.Orchestrator)
	if err != nil {
		return nil, zerr.Wrap(err, "orchestration failed")
	}

	// 5. Export metrics
	if opts.MetricsFile != "" {
		if err := a.exportMetrics(opts.MetricsFile); err != nil {
			return report, err
		}
	}

	if report.Reason == domain.StopCancelled {
		return report, zerr.With(zerr.Wrap(ctx.Err(), "run cancelled"), "run_id", report.RunID)
	}
	return report, nil
}

// RunTask processes the task with the given id once, ignoring readiness and predecessors.
// The dependency graph is never built.
func (a *App) RunTask(ctx context.Context, configPath, id string) error {
	pipeline, err := a.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if _, ok := pipeline.Get(id); !ok {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrTaskNotFound, "cannot run task"), "task_id", id), "path", configPath)
	}

	tasks, err := a.resolver.ResolveAll(pipeline, domain.NewSignals())
	if err != nil {
		return zerr.Wrap(err, "failed to resolve tasks")
	}

	ok, err := a.orchestrator.RunOne(ctx, tasks, id)
	if err != nil {
		return err
	}
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrTaskExecutionFailed, "task reported failure"), "task_id", id)
	}
	a.logger.Info(fmt.Sprintf("task %s succeeded", id))
	return nil
}

// Pipeline loads the pipeline at configPath.
func (a *App) Pipeline(configPath string) (*domain.Pipeline, error) {
	pipeline, _, err := a.load(configPath)
	return pipeline, err
}

// Graph loads the pipeline at configPath and infers its dependency graph.
func (a *App) Graph(configPath string) (*domain.Graph, error) {
	_, graph, err := a.load(configPath)
	return graph, err
}

func (a *App) load(configPath string) (*domain.Pipeline, *domain.Graph, error) {
	pipeline, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}
	graph := domain.BuildGraph(pipeline)
	a.logger.Debug(fmt.Sprintf("inferred %d edge(s) between %d task(s)", len(graph.Edges()), graph.Len()))
	return pipeline, graph, nil
}

func (a *App) exportMetrics(path string) error {
	w, ok := a.metrics.(textfileWriter)
	if !ok {
		a.logger.Warn("metrics recorder cannot export to a textfile")
		return nil
	}
	if err := w.WriteTextfile(path); err != nil {
		return err
	}
	a.logger.Debug("metrics written to " + path)
	return nil
}
