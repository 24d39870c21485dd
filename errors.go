package browserworker

import "errors"

var (
	// Programmer errors. These are the only conditions under which
	// Dispatch returns an error instead of a task.Outcome.
	ErrInvalidRequest = errors.New("browserworker: invalid request")
	ErrNoRunner       = errors.New("browserworker: no task runner configured")
	ErrNoResultStore  = errors.New("browserworker: no result store configured")
)
