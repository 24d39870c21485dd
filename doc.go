// Package browserworker provides a client for dispatching browser-automation
// tasks to remote workers and waiting for their results.
//
// A dispatch submits one task to an execution runner with a fresh
// correlation id embedded in the task's environment, then polls a result
// store until the worker writes its outcome under that id or the timeout
// elapses. Every call resolves to a uniform task.Outcome; expected failures
// (runner rejection, timeout, cancellation) are reported in the outcome,
// never as errors.
//
// # Quick Start
//
//	c, err := browserworker.New(
//	    browserworker.WithRunner(r),
//	    browserworker.WithResultStore(s),
//	)
//	out, err := c.Dispatch(ctx, task.Request{
//	    Action:   task.ActionSendMessage,
//	    TargetID: "fan-42",
//	    Payload:  json.RawMessage(`{"text":"hey!"}`),
//	})
//
// The client is stateless across calls apart from shared configuration, so
// one instance serves any number of concurrent dispatches. Construct it once
// at startup and inject it; construction never fails for missing
// collaborators — the operation that needs them fails instead.
package browserworker
