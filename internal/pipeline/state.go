// Package pipeline describes the lifecycle states a pipeline job reports
// after submission to a runner.
package pipeline

// JobState is the runner-reported state of a pipeline job. Values match the
// labels runners expose.
type JobState string

const (
	StateUnknown   JobState = "UNKNOWN"
	StateStopped   JobState = "STOPPED"
	StateStarting  JobState = "STARTING"
	StateRunning   JobState = "RUNNING"
	StateDone      JobState = "DONE"
	StateFailed    JobState = "FAILED"
	StateCancelled JobState = "CANCELLED"
	StateUpdated   JobState = "UPDATED"
	StateDraining  JobState = "DRAINING"
	StateDrained   JobState = "DRAINED"
)

// IsTerminal reports whether the job has finished and will not change state
// again.
func (s JobState) IsTerminal() bool {
	switch s {
	case StateDone, StateFailed, StateCancelled, StateUpdated, StateDrained:
		return true
	default:
		return false
	}
}

// Valid reports whether s is one of the known job states.
func (s JobState) Valid() bool {
	switch s {
	case StateUnknown, StateStopped, StateStarting, StateRunning, StateDone,
		StateFailed, StateCancelled, StateUpdated, StateDraining, StateDrained:
		return true
	default:
		return false
	}
}

// Result is the handle a runner returns for a submitted job. The verifiers
// only query its state; they never mutate the job.
type Result interface {
	CurrentState() JobState
}
