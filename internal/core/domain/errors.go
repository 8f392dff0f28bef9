package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateTaskID is returned when two descriptors share the same id.
	ErrDuplicateTaskID = zerr.New("duplicate task id")

	// ErrEmptyTaskID is returned when a descriptor has no id.
	ErrEmptyTaskID = zerr.New("task id must not be empty")

	// ErrMissingTaskType is returned when a descriptor has no type.
	ErrMissingTaskType = zerr.New("task type must not be empty")

	// ErrUnknownTaskType is returned when no constructor is registered for a task type.
	ErrUnknownTaskType = zerr.New("unknown task type")

	// ErrInvalidTaskParameters is returned when a behavior cannot use the parameters it was given.
	ErrInvalidTaskParameters = zerr.New("invalid task parameters")

	// ErrCycleDetected is returned when a cycle is detected in the inferred dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the pipeline.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrTaskExecutionFailed is returned when a directly invoked task reports failure.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrConfigNotFound is returned when the pipeline file does not exist.
	ErrConfigNotFound = zerr.New("no config file provided")

	// ErrConfigReadFailed is returned when the pipeline file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the pipeline file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidSettings is returned when runtime settings cannot be parsed or are out of range.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrCommandFailed is returned when a shell command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrMetricsExportFailed is returned when metrics cannot be written to the textfile.
	ErrMetricsExportFailed = zerr.New("failed to export metrics")
)
