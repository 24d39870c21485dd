// Package runner defines the task-runner boundary: the external execution
// service that runs submitted browser-worker tasks asynchronously.
//
// The dispatch client only needs Submit; everything after submission is
// observed through the result store. Implementations must embed the
// correlation id from the Env map so the executed task can write its result
// back under that key.
package runner

import (
	"context"
	"time"
)

// Environment keys carried into the executed task. EnvTaskID is the
// well-known correlation key: the worker writes its result to the result
// store under this value.
const (
	EnvTaskID      = "TASK_ID"
	EnvTaskAction  = "TASK_ACTION"
	EnvTaskTarget  = "TASK_TARGET"
	EnvTaskPayload = "TASK_PAYLOAD"
)

// SubmitInput describes one task submission.
type SubmitInput struct {
	// Cluster is the execution cluster or target the task runs on.
	Cluster string

	// TaskDefinition identifies the unit of work to run.
	TaskDefinition string

	// Subnets lists the network targets the task may be placed in.
	Subnets []string

	// SecurityGroups lists the security scopes applied to the task.
	SecurityGroups []string

	// Env is the task's execution environment. Must include EnvTaskID.
	Env map[string]string
}

// Handle identifies a task accepted by the runner. The runner-assigned ID
// is distinct from the dispatch correlation id; it is useful for runner-side
// debugging only.
type Handle struct {
	ID        string
	StartedAt time.Time
}

// Runner submits tasks to an external execution service.
// Implementations must be safe for concurrent use.
type Runner interface {
	// Submit hands the task to the runner. A non-nil error means the
	// runner rejected or failed to accept the task; submission is never
	// retried by the dispatch client.
	Submit(ctx context.Context, in SubmitInput) (*Handle, error)
}
