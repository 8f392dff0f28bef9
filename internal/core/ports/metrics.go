package ports

import (
	"time"

	"go.trai.ch/conduit/internal/core/domain"
)

// Metrics records orchestration activity.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// TaskLaunched counts a dispatched task.
	TaskLaunched(taskType string)
	// TaskFinished records the outcome and duration of a task.
	TaskFinished(taskType string, ok bool, elapsed time.Duration)
	// IdleTick counts a scheduling tick that launched nothing.
	IdleTick()
	// RunFinished records the end of a run.
	RunFinished(report *domain.RunReport)
}
