// Package orchestrator implements the tick-driven task launcher.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Mode selects when a node's predecessors count as satisfied.
type Mode string

const (
	// ModeLaunch treats a predecessor as satisfied once it has been launched.
	ModeLaunch Mode = "launch"
	// ModeCompletion treats a predecessor as satisfied once its Process has returned.
	ModeCompletion Mode = "completion"
)

// ParseMode converts a mode name. An empty name selects ModeLaunch.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeLaunch:
		return ModeLaunch, nil
	case ModeCompletion:
		return ModeCompletion, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "unknown scheduling mode"), "mode", s)
	}
}

const (
	// DefaultTickInterval is the pause between two scheduling ticks.
	DefaultTickInterval = time.Second
	// DefaultIdleTimeout is the number of consecutive idle ticks after which a run stops.
	DefaultIdleTimeout = 10
)

// Options tune a run.
type Options struct {
	TickInterval time.Duration
	IdleTimeout  int
	Mode         Mode
}

// DefaultOptions returns the options used when none are set.
func DefaultOptions() Options {
	return Options{
		TickInterval: DefaultTickInterval,
		IdleTimeout:  DefaultIdleTimeout,
		Mode:         ModeLaunch,
	}
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = DefaultIdleTimeout
	}
	if o.Mode == "" {
		o.Mode = ModeLaunch
	}
	return o
}

// Orchestrator launches the tasks of a graph as their predecessors and inputs allow.
type Orchestrator struct {
	logger  ports.Logger
	tracer  ports.Tracer
	metrics ports.Metrics
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(logger ports.Logger, tracer ports.Tracer, metrics ports.Metrics) *Orchestrator {
	return &Orchestrator{
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Run schedules every node of the graph until all have been launched, the idle
// timeout expires, or ctx is cancelled. Task failures never stop the loop.
// Run returns only after every launched task has returned.
func (o *Orchestrator) Run(
	ctx context.Context,
	graph *domain.Graph,
	tasks ports.TaskSet,
	signals *domain.Signals,
	opts Options,
) (*domain.RunReport, error) {
	for _, id := range graph.IDs() {
		if _, ok := tasks[id]; !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrTaskNotFound, "no task bound to graph node"), "task_id", id)
		}
	}

	opts = opts.withDefaults()
	runID := uuid.NewString()

	ctx, span := o.tracer.Start(ctx, "run")
	defer span.End()
	span.SetAttribute("run.id", runID)
	span.SetAttribute("run.mode", string(opts.Mode))
	span.SetAttribute("run.tasks", graph.Len())

	state := o.newRunState(ctx, graph, tasks, opts, runID)
	reason := state.loop()
	_ = state.group.Wait()

	report := state.report(reason, signals)
	span.SetAttribute("run.reason", string(report.Reason))
	o.metrics.RunFinished(report)
	o.logReport(report)
	return report, nil
}

// RunOne processes a single task immediately, ignoring readiness and predecessors.
func (o *Orchestrator) RunOne(ctx context.Context, tasks ports.TaskSet, id string) (bool, error) {
	task, ok := tasks[id]
	if !ok {
		return false, zerr.With(zerr.Wrap(domain.ErrTaskNotFound, "cannot run task"), "task_id", id)
	}
	return o.process(ctx, task, uuid.NewString()), nil
}

// process runs one task under its own span and records the outcome.
func (o *Orchestrator) process(ctx context.Context, task ports.Task, runID string) bool {
	desc := task.Descriptor()

	ctx, span := o.tracer.Start(ctx, "task "+desc.ID)
	defer span.End()
	span.SetAttribute("task.id", desc.ID)
	span.SetAttribute("task.type", desc.Type)
	span.SetAttribute("run.id", runID)

	o.metrics.TaskLaunched(desc.Type)
	start := time.Now()
	ok := task.Process(ctx)
	o.metrics.TaskFinished(desc.Type, ok, time.Since(start))

	if !ok {
		span.RecordError(zerr.With(zerr.Wrap(domain.ErrTaskExecutionFailed, "task reported failure"), "task_id", desc.ID))
	}
	return ok
}

func (o *Orchestrator) logReport(r *domain.RunReport) {
	switch r.Reason {
	case domain.StopCompleted:
		o.logger.Info(fmt.Sprintf("run %s completed: %d task(s) launched in %d tick(s)", r.RunID, len(r.Launched), r.Ticks))
	case domain.StopIdleTimeout:
		o.logger.Warn(fmt.Sprintf("run %s stopped after %d idle tick(s); never launched: %s",
			r.RunID, r.IdleTicks, strings.Join(r.Unlaunched, ", ")))
	case domain.StopCancelled:
		o.logger.Warn(fmt.Sprintf("run %s cancelled after %d tick(s)", r.RunID, r.Ticks))
	}
	if failed := r.Failed(); len(failed) > 0 {
		o.logger.Warn(fmt.Sprintf("run %s: %d task(s) failed: %s", r.RunID, len(failed), strings.Join(failed, ", ")))
	}
}

type runState struct {
	o      *Orchestrator
	ctx    context.Context
	graph  *domain.Graph
	tasks  ports.TaskSet
	opts   Options
	runID  string
	group  errgroup.Group
	ticks  int
	idle   int
	queued int

	mu         sync.RWMutex
	taskStatus map[string]domain.TaskStatus
}

func (o *Orchestrator) newRunState(
	ctx context.Context,
	graph *domain.Graph,
	tasks ports.TaskSet,
	opts Options,
	runID string,
) *runState {
	status := make(map[string]domain.TaskStatus, graph.Len())
	for _, id := range graph.IDs() {
		status[id] = domain.StatusPending
	}
	return &runState{
		o:          o,
		ctx:        ctx,
		graph:      graph,
		tasks:      tasks,
		opts:       opts,
		runID:      runID,
		queued:     graph.Len(),
		taskStatus: status,
	}
}

func (s *runState) updateStatus(id string, status domain.TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[id] = status
}

func (s *runState) getStatus(id string) domain.TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[id]
}

// inFlight counts launched tasks whose Process has not returned.
func (s *runState) inFlight() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, status := range s.taskStatus {
		if status == domain.StatusLaunched {
			n++
		}
	}
	return n
}

func (s *runState) loop() domain.StopReason {
	for {
		if s.queued == 0 {
			return domain.StopCompleted
		}
		if s.idle >= s.opts.IdleTimeout {
			return domain.StopIdleTimeout
		}
		if s.ctx.Err() != nil {
			return domain.StopCancelled
		}

		launched := s.tick()
		s.ticks++
		switch {
		case launched > 0:
			s.idle = 0
		case s.opts.Mode == ModeLaunch || s.inFlight() == 0:
			s.idle++
			s.o.metrics.IdleTick()
		}

		if s.queued == 0 {
			continue
		}

		select {
		case <-time.After(s.opts.TickInterval):
		case <-s.ctx.Done():
		}
	}
}

// tick walks the nodes in declaration order and launches every eligible one.
// A launch is visible to later nodes of the same tick.
func (s *runState) tick() int {
	launched := 0
	for _, id := range s.graph.IDs() {
		if s.getStatus(id) != domain.StatusPending {
			continue
		}
		if !s.predecessorsSatisfied(id) {
			continue
		}
		task := s.tasks[id]
		if !task.IsReady() {
			continue
		}
		s.launch(id, task)
		launched++
	}
	return launched
}

func (s *runState) predecessorsSatisfied(id string) bool {
	for _, pred := range s.graph.Predecessors(id) {
		status := s.getStatus(pred)
		switch s.opts.Mode {
		case ModeCompletion:
			if !status.Finished() {
				return false
			}
		default:
			if status == domain.StatusPending {
				return false
			}
		}
	}
	return true
}

func (s *runState) launch(id string, task ports.Task) {
	s.updateStatus(id, domain.StatusLaunched)
	s.queued--
	s.o.logger.Debug("launching task " + id)

	s.group.Go(func() error {
		status := domain.StatusFailed
		if s.o.process(s.ctx, task, s.runID) {
			status = domain.StatusSucceeded
		}
		s.updateStatus(id, status)
		return nil
	})
}

func (s *runState) report(reason domain.StopReason, signals *domain.Signals) *domain.RunReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := &domain.RunReport{
		RunID:     s.runID,
		Reason:    reason,
		Ticks:     s.ticks,
		IdleTicks: s.idle,
		Outcomes:  make(map[string]domain.TaskStatus, len(s.taskStatus)),
	}
	for _, id := range s.graph.IDs() {
		status := s.taskStatus[id]
		r.Outcomes[id] = status
		if status == domain.StatusPending {
			r.Unlaunched = append(r.Unlaunched, id)
		} else {
			r.Launched = append(r.Launched, id)
		}
	}
	if signals != nil {
		r.Flags = signals.Snapshot()
	}
	return r
}
