package domain_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestNewPipeline_DuplicateID(t *testing.T) {
	_, err := domain.NewPipeline(
		&domain.TaskDescriptor{ID: "task1", Type: "noop"},
		&domain.TaskDescriptor{ID: "task1", Type: "touch"},
	)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrDuplicateTaskID)

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if id, ok := zErr.Metadata()["task_id"].(string); !ok || id != "task1" {
		t.Errorf("expected metadata task_id=task1, got %v", zErr.Metadata()["task_id"])
	}
}

func TestNewPipeline_EmptyID(t *testing.T) {
	_, err := domain.NewPipeline(&domain.TaskDescriptor{Type: "noop"})
	require.ErrorIs(t, err, domain.ErrEmptyTaskID)
}

func TestPipeline_OrderAndLookup(t *testing.T) {
	p, err := domain.NewPipeline(
		&domain.TaskDescriptor{ID: "second"},
		&domain.TaskDescriptor{ID: "first"},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	descs := p.Descriptors()
	require.Len(t, descs, 2)
	assert.Equal(t, "second", descs[0].ID)
	assert.Equal(t, "first", descs[1].ID)

	d, ok := p.Get("first")
	require.True(t, ok)
	assert.Equal(t, "first", d.ID)

	_, ok = p.Get("missing")
	assert.False(t, ok)
}

func TestBindings(t *testing.T) {
	b := domain.Bindings{"flag": "x", "file": "a.tif"}

	assert.True(t, b.Has("flag", "x"))
	assert.False(t, b.Has("flag", "y"))
	assert.False(t, b.Has("other", "x"))
	assert.Equal(t, []string{"file", "flag"}, b.Keys())

	var empty domain.Bindings
	assert.False(t, empty.Has("flag", "x"))
}

func TestTaskDescriptor_Flags(t *testing.T) {
	d := &domain.TaskDescriptor{ID: "a", Outputs: domain.Bindings{"flag": "done", "file": "out"}}
	assert.Equal(t, []string{"done"}, d.Flags())

	none := &domain.TaskDescriptor{ID: "b", Outputs: domain.Bindings{"file": "out"}}
	assert.Nil(t, none.Flags())
}

func TestSignals(t *testing.T) {
	s := domain.NewSignals()
	assert.False(t, s.Has("x"))

	s.Raise("x")
	s.Raise("x")
	s.Raise("a")

	assert.True(t, s.Has("x"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "x"}, s.Snapshot())
}

func TestSignals_ConcurrentRaiseAndRead(t *testing.T) {
	s := domain.NewSignals()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Raise(fmt.Sprintf("flag-%d", i))
		}()
		go func() {
			defer wg.Done()
			_ = s.Has(fmt.Sprintf("flag-%d", i))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}

func TestRunReport(t *testing.T) {
	r := &domain.RunReport{
		Launched:   []string{"a", "b"},
		Unlaunched: []string{"c"},
		Outcomes: map[string]domain.TaskStatus{
			"a": domain.StatusSucceeded,
			"b": domain.StatusFailed,
			"c": domain.StatusPending,
		},
	}

	assert.False(t, r.Complete())
	assert.Equal(t, []string{"b"}, r.Failed())
	assert.True(t, domain.StatusFailed.Finished())
	assert.False(t, domain.StatusLaunched.Finished())
}
