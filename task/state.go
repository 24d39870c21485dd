package task

// State represents the lifecycle state of one dispatch call.
// Each call is a fresh instance of the machine
// submitting → polling → {succeeded | timed_out | submission_failed | cancelled};
// there are no transitions out of a terminal state.
type State string

const (
	// StateSubmitting means the task is being handed to the runner.
	StateSubmitting State = "submitting"
	// StatePolling means the task was accepted and the client is polling
	// the result store.
	StatePolling State = "polling"
	// StateSucceeded means a result appeared within the timeout.
	StateSucceeded State = "succeeded"
	// StateTimedOut means no result appeared within the timeout.
	StateTimedOut State = "timed_out"
	// StateSubmissionFailed means the runner rejected the task.
	StateSubmissionFailed State = "submission_failed"
	// StateCancelled means the caller abandoned the dispatch while polling.
	StateCancelled State = "cancelled"
)

// Terminal reports whether the state ends the dispatch state machine.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateTimedOut, StateSubmissionFailed, StateCancelled:
		return true
	default:
		return false
	}
}
