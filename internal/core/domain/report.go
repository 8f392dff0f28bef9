package domain

// TaskStatus represents the status of a task within one run.
type TaskStatus string

const (
	// StatusPending indicates the task has not been launched.
	StatusPending TaskStatus = "Pending"
	// StatusLaunched indicates the task was dispatched and has not returned yet.
	StatusLaunched TaskStatus = "Launched"
	// StatusSucceeded indicates the task returned success.
	StatusSucceeded TaskStatus = "Succeeded"
	// StatusFailed indicates the task returned failure.
	StatusFailed TaskStatus = "Failed"
)

// Finished reports whether the task has returned, successfully or not.
func (s TaskStatus) Finished() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// StopReason explains why the scheduling loop ended.
type StopReason string

const (
	// StopCompleted means every node was launched.
	StopCompleted StopReason = "completed"
	// StopIdleTimeout means no node was launched for the configured number of ticks.
	StopIdleTimeout StopReason = "idle_timeout"
	// StopCancelled means the run context was cancelled.
	StopCancelled StopReason = "cancelled"
)

// RunReport summarises one orchestration run.
type RunReport struct {
	RunID      string
	Reason     StopReason
	Ticks      int
	IdleTicks  int
	Launched   []string
	Unlaunched []string
	Outcomes   map[string]TaskStatus
	Flags      []string
}

// Complete reports whether every node was launched.
func (r *RunReport) Complete() bool {
	return len(r.Unlaunched) == 0
}

// Failed returns the ids of launched tasks that reported failure, in declaration order.
func (r *RunReport) Failed() []string {
	var failed []string
	for _, id := range r.Launched {
		if r.Outcomes[id] == StatusFailed {
			failed = append(failed, id)
		}
	}
	return failed
}
