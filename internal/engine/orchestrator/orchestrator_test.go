package orchestrator_test

import (
	"context"
	"io/fs"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/core/ports"
	"go.trai.ch/conduit/internal/core/ports/mocks"
	"go.trai.ch/conduit/internal/engine/orchestrator"
	"go.trai.ch/conduit/internal/engine/readiness"
	"go.uber.org/mock/gomock"
)

// fakeTask is a ports.Task whose readiness follows the real evaluator and
// whose effect is a test-supplied function.
type fakeTask struct {
	desc      *domain.TaskDescriptor
	evaluator *readiness.Evaluator
	signals   *domain.Signals
	run       func(ctx context.Context) bool

	mu       sync.Mutex
	calls    int
	started  time.Time
	finished time.Time
}

func (f *fakeTask) Descriptor() *domain.TaskDescriptor { return f.desc }

func (f *fakeTask) IsReady() bool { return f.evaluator.Ready(f.desc.Inputs) }

func (f *fakeTask) Process(ctx context.Context) bool {
	f.mu.Lock()
	f.calls++
	f.started = time.Now()
	f.mu.Unlock()

	ok := true
	if f.run != nil {
		ok = f.run(ctx)
	}
	if ok {
		for _, flag := range f.desc.Flags() {
			f.signals.Raise(flag)
		}
	}

	f.mu.Lock()
	f.finished = time.Now()
	f.mu.Unlock()
	return ok
}

func (f *fakeTask) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fixture struct {
	graph   *domain.Graph
	signals *domain.Signals
	tasks   ports.TaskSet
	fakes   map[string]*fakeTask
}

func newFixture(t *testing.T, descs ...*domain.TaskDescriptor) *fixture {
	t.Helper()
	p, err := domain.NewPipeline(descs...)
	require.NoError(t, err)

	signals := domain.NewSignals()
	f := &fixture{
		graph:   domain.BuildGraph(p),
		signals: signals,
		tasks:   make(ports.TaskSet),
		fakes:   make(map[string]*fakeTask),
	}
	for _, d := range descs {
		ft := &fakeTask{desc: d, evaluator: readiness.NewEvaluator(signals), signals: signals}
		f.tasks[d.ID] = ft
		f.fakes[d.ID] = ft
	}
	return f
}

func newOrchestrator(t *testing.T) *orchestrator.Orchestrator {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	return orchestrator.NewOrchestrator(mockLogger, newMockTracer(ctrl), newMockMetrics(ctrl))
}

func newMockTracer(ctrl *gomock.Controller) *mocks.MockTracer {
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	return tracer
}

func newMockMetrics(ctrl *gomock.Controller) *mocks.MockMetrics {
	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().TaskLaunched(gomock.Any()).AnyTimes()
	m.EXPECT().TaskFinished(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().IdleTick().AnyTimes()
	m.EXPECT().RunFinished(gomock.Any()).AnyTimes()
	return m
}

func opts(mode orchestrator.Mode, idle int) orchestrator.Options {
	return orchestrator.Options{TickInterval: time.Second, IdleTimeout: idle, Mode: mode}
}

func TestRun_Chain(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t,
			&domain.TaskDescriptor{ID: "A", Outputs: domain.Bindings{"flag": "a_done"}},
			&domain.TaskDescriptor{ID: "B", Inputs: domain.Bindings{"flag": "a_done"}},
		)

		report, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 10))
		require.NoError(t, err)

		assert.Equal(t, domain.StopCompleted, report.Reason)
		assert.True(t, report.Complete())
		assert.Equal(t, []string{"A", "B"}, report.Launched)
		assert.Equal(t, domain.StatusSucceeded, report.Outcomes["A"])
		assert.Equal(t, domain.StatusSucceeded, report.Outcomes["B"])
		assert.Equal(t, []string{"a_done"}, report.Flags)
		assert.Equal(t, 1, f.fakes["A"].Calls())
		assert.Equal(t, 1, f.fakes["B"].Calls())
		assert.False(t, f.fakes["B"].started.Before(f.fakes["A"].finished))
		assert.NotEmpty(t, report.RunID)
	})
}

func TestRun_EmptyGraph(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		start := time.Now()

		report, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 10))
		require.NoError(t, err)

		assert.Equal(t, domain.StopCompleted, report.Reason)
		assert.Zero(t, report.Ticks)
		assert.Zero(t, time.Since(start))
	})
}

func TestRun_StarvationEndsByIdleTimeout(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t,
			&domain.TaskDescriptor{ID: "A"},
			&domain.TaskDescriptor{ID: "X", Inputs: domain.Bindings{"flag": "never"}},
		)
		start := time.Now()

		report, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 3))
		require.NoError(t, err)

		assert.Equal(t, domain.StopIdleTimeout, report.Reason)
		assert.False(t, report.Complete())
		assert.Equal(t, []string{"A"}, report.Launched)
		assert.Equal(t, []string{"X"}, report.Unlaunched)
		assert.Equal(t, domain.StatusPending, report.Outcomes["X"])
		assert.Equal(t, 4, report.Ticks)
		assert.Equal(t, 3, report.IdleTicks)
		assert.Equal(t, 4*time.Second, time.Since(start))
		assert.Zero(t, f.fakes["X"].Calls())
	})
}

func TestRun_UnknownBindingKeyNeverReady(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t,
			&domain.TaskDescriptor{ID: "fetch", Inputs: domain.Bindings{"url": "https://example.com"}},
		)

		report, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 2))
		require.NoError(t, err)

		assert.Equal(t, domain.StopIdleTimeout, report.Reason)
		assert.Equal(t, []string{"fetch"}, report.Unlaunched)
		assert.Equal(t, 2, report.Ticks)
	})
}

func TestRun_FlagRaisedMidRun(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t,
			&domain.TaskDescriptor{ID: "W", Inputs: domain.Bindings{"flag": "external"}},
		)
		go func() {
			time.Sleep(2500 * time.Millisecond)
			f.signals.Raise("external")
		}()
		start := time.Now()

		report, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 10))
		require.NoError(t, err)

		assert.Equal(t, domain.StopCompleted, report.Reason)
		assert.Equal(t, 4, report.Ticks)
		assert.Equal(t, 3*time.Second, time.Since(start))
		assert.Equal(t, 1, f.fakes["W"].Calls())
	})
}

func TestRun_LaunchModeCascadesWithinTick(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t,
			&domain.TaskDescriptor{ID: "A", Outputs: domain.Bindings{"file": "shared"}},
			&domain.TaskDescriptor{ID: "B", Inputs: domain.Bindings{"file": "shared"}},
		)
		// B's readiness must not depend on A here.
		f.fakes["B"].evaluator = readiness.NewEvaluator(f.signals, readiness.WithStat(alwaysExists))
		f.fakes["A"].run = func(context.Context) bool {
			time.Sleep(5 * time.Second)
			return true
		}

		report, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 10))
		require.NoError(t, err)

		assert.Equal(t, 1, report.Ticks)
		assert.True(t, f.fakes["B"].started.Before(f.fakes["A"].finished))
	})
}

func TestRun_CompletionModeWaitsForPredecessor(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t,
			&domain.TaskDescriptor{ID: "A", Outputs: domain.Bindings{"file": "shared"}},
			&domain.TaskDescriptor{ID: "B", Inputs: domain.Bindings{"file": "shared"}},
		)
		f.fakes["B"].evaluator = readiness.NewEvaluator(f.signals, readiness.WithStat(alwaysExists))
		f.fakes["A"].run = func(context.Context) bool {
			time.Sleep(4500 * time.Millisecond)
			return false
		}
		start := time.Now()

		// An idle timeout of 2 would expire while A runs if in-flight ticks counted as idle.
		report, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeCompletion, 2))
		require.NoError(t, err)

		assert.Equal(t, domain.StopCompleted, report.Reason)
		assert.Equal(t, domain.StatusFailed, report.Outcomes["A"])
		assert.Equal(t, domain.StatusSucceeded, report.Outcomes["B"])
		assert.Equal(t, []string{"A"}, report.Failed())
		assert.False(t, f.fakes["B"].started.Before(f.fakes["A"].finished))
		assert.Equal(t, 5*time.Second, f.fakes["B"].started.Sub(start))
	})
}

func TestRun_FailureDoesNotAbort(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t,
			&domain.TaskDescriptor{ID: "bad", Outputs: domain.Bindings{"flag": "bad_done"}},
			&domain.TaskDescriptor{ID: "good"},
			&domain.TaskDescriptor{ID: "after_bad", Inputs: domain.Bindings{"flag": "bad_done"}},
		)
		f.fakes["bad"].run = func(context.Context) bool { return false }

		report, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 2))
		require.NoError(t, err)

		assert.Equal(t, domain.StopIdleTimeout, report.Reason)
		assert.Equal(t, []string{"bad", "good"}, report.Launched)
		assert.Equal(t, []string{"after_bad"}, report.Unlaunched)
		assert.Equal(t, domain.StatusFailed, report.Outcomes["bad"])
		assert.Equal(t, domain.StatusSucceeded, report.Outcomes["good"])
		assert.Empty(t, report.Flags)
	})
}

func TestRun_WaitsForInFlightTasks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, &domain.TaskDescriptor{ID: "slow"})
		f.fakes["slow"].run = func(context.Context) bool {
			time.Sleep(30 * time.Second)
			return true
		}
		start := time.Now()

		report, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 10))
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, time.Since(start))
		assert.Equal(t, 1, report.Ticks)
		assert.Equal(t, domain.StatusSucceeded, report.Outcomes["slow"])
	})
}

func TestRun_Cancelled(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t,
			&domain.TaskDescriptor{ID: "running"},
			&domain.TaskDescriptor{ID: "blocked", Inputs: domain.Bindings{"flag": "never"}},
		)
		var sawCancel bool
		f.fakes["running"].run = func(ctx context.Context) bool {
			<-ctx.Done()
			sawCancel = true
			return false
		}

		ctx, cancel := context.WithCancel(t.Context())
		go func() {
			time.Sleep(2500 * time.Millisecond)
			cancel()
		}()
		start := time.Now()

		report, err := newOrchestrator(t).Run(ctx, f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 10))
		require.NoError(t, err)

		assert.Equal(t, domain.StopCancelled, report.Reason)
		assert.Equal(t, []string{"blocked"}, report.Unlaunched)
		assert.Equal(t, 2500*time.Millisecond, time.Since(start))
		assert.True(t, sawCancel)
	})
}

func TestRun_MissingTask(t *testing.T) {
	f := newFixture(t, &domain.TaskDescriptor{ID: "A"})
	delete(f.tasks, "A")

	_, err := newOrchestrator(t).Run(t.Context(), f.graph, f.tasks, f.signals, orchestrator.DefaultOptions())
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Zero(t, f.fakes["A"].Calls())
}

func TestRun_RecordsMetrics(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockLogger := mocks.NewMockLogger(ctrl)
		mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
		mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

		metrics := mocks.NewMockMetrics(ctrl)
		metrics.EXPECT().TaskLaunched("noop").Times(1)
		metrics.EXPECT().TaskFinished("noop", true, gomock.Any()).Times(1)
		metrics.EXPECT().IdleTick().Times(2)
		metrics.EXPECT().RunFinished(gomock.Any()).Do(func(r *domain.RunReport) {
			assert.Equal(t, domain.StopIdleTimeout, r.Reason)
		})

		f := newFixture(t,
			&domain.TaskDescriptor{ID: "A", Type: "noop"},
			&domain.TaskDescriptor{ID: "B", Type: "noop", Inputs: domain.Bindings{"flag": "never"}},
		)
		o := orchestrator.NewOrchestrator(mockLogger, newMockTracer(ctrl), metrics)

		_, err := o.Run(t.Context(), f.graph, f.tasks, f.signals, opts(orchestrator.ModeLaunch, 2))
		require.NoError(t, err)
	})
}

func TestRunOne(t *testing.T) {
	f := newFixture(t,
		&domain.TaskDescriptor{ID: "gated", Inputs: domain.Bindings{"flag": "never"}, Outputs: domain.Bindings{"flag": "g"}},
	)
	o := newOrchestrator(t)

	ok, err := o.RunOne(t.Context(), f.tasks, "gated")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, f.fakes["gated"].Calls())
	assert.True(t, f.signals.Has("g"))
}

func TestRunOne_IgnoresReadiness(t *testing.T) {
	ctrl := gomock.NewController(t)

	// IsReady has no expectation: consulting it fails the test.
	task := mocks.NewMockTask(ctrl)
	task.EXPECT().Descriptor().Return(&domain.TaskDescriptor{ID: "gated", Type: "noop"}).AnyTimes()
	task.EXPECT().Process(gomock.Any()).Return(true).Times(1)

	ok, err := newOrchestrator(t).RunOne(t.Context(), ports.TaskSet{"gated": task}, "gated")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunOne_Failure(t *testing.T) {
	f := newFixture(t, &domain.TaskDescriptor{ID: "bad"})
	f.fakes["bad"].run = func(context.Context) bool { return false }

	ok, err := newOrchestrator(t).RunOne(t.Context(), f.tasks, "bad")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunOne_NotFound(t *testing.T) {
	f := newFixture(t, &domain.TaskDescriptor{ID: "A"})

	ok, err := newOrchestrator(t).RunOne(t.Context(), f.tasks, "missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.False(t, ok)
	assert.Zero(t, f.signals.Len())
	assert.Zero(t, f.fakes["A"].Calls())
}

func TestParseMode(t *testing.T) {
	m, err := orchestrator.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ModeLaunch, m)

	m, err = orchestrator.ParseMode("Completion")
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ModeCompletion, m)

	_, err = orchestrator.ParseMode("eager")
	require.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func alwaysExists(string) (fs.FileInfo, error) { return nil, nil }
