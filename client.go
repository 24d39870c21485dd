package browserworker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chrlshc/Huntaze-sub003/backoff"
	"github.com/chrlshc/Huntaze-sub003/id"
	"github.com/chrlshc/Huntaze-sub003/middleware"
	"github.com/chrlshc/Huntaze-sub003/runner"
	"github.com/chrlshc/Huntaze-sub003/store"
	"github.com/chrlshc/Huntaze-sub003/task"
	"github.com/chrlshc/Huntaze-sub003/telemetry"
)

// Client dispatches browser-worker tasks and waits for their results.
//
// The client holds no mutable per-call state — correlation id, start time,
// and the poll loop live in each call's activation record — so any number
// of Dispatch calls may run concurrently on one instance.
type Client struct {
	clientID  id.ID
	cfg       Config
	runner    runner.Runner
	results   store.Store
	telemetry telemetry.Sink
	logger    *slog.Logger
	pacing    backoff.Strategy
	mws       []middleware.Middleware
	mw        middleware.Middleware
}

// New creates a Client with the given options. Construction never fails for
// missing collaborators (fail-slow): a Dispatch without a runner or result
// store returns ErrNoRunner / ErrNoResultStore.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		clientID:  id.NewClientID(),
		cfg:       DefaultConfig(),
		telemetry: telemetry.Nop{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.cfg = c.cfg.withDefaults()
	if c.pacing == nil {
		c.pacing = backoff.NewConstant(c.cfg.PollInterval)
	}
	if len(c.mws) > 0 {
		c.mw = middleware.Chain(c.mws...)
	}

	c.logger = c.logger.With(slog.String("client_id", c.clientID.String()))
	return c, nil
}

// ID returns the client's unique instance identifier, used in logs.
func (c *Client) ID() id.ID { return c.clientID }

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config { return c.cfg }

// Dispatch submits one task and waits for its result.
//
// The returned error is reserved for programmer errors: an invalid request
// or a client missing its runner or result store. Expected failures —
// submission rejection, timeout, cancellation while polling — resolve to a
// task.Outcome with Success false. Submission is never retried here; retries
// belong to the caller so the call stays duration-bounded.
func (c *Client) Dispatch(ctx context.Context, req task.Request) (task.Outcome, error) {
	if err := req.Validate(); err != nil {
		return task.Outcome{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if c.runner == nil {
		return task.Outcome{}, ErrNoRunner
	}
	if c.results == nil {
		return task.Outcome{}, ErrNoResultStore
	}

	handler := func(hctx context.Context) (task.Outcome, error) {
		return c.dispatch(hctx, req), nil
	}
	if c.mw != nil {
		return c.mw(ctx, &req, handler)
	}
	return handler(ctx)
}

// dispatch runs the per-call state machine: generate a correlation id,
// submit, poll, interpret, emit telemetry. It always produces exactly one
// outcome.
func (c *Client) dispatch(ctx context.Context, req task.Request) task.Outcome {
	start := time.Now()
	taskID := id.NewTaskID()

	logger := c.logger.With(
		slog.String("task_id", taskID),
		slog.String("action", string(req.Action)),
	)
	logger.Debug("dispatching task", slog.String("target_id", req.TargetID))

	out := c.submitAndPoll(ctx, logger, req, taskID, start)
	out.TaskID = taskID
	out.Duration = time.Since(start)

	c.emitMetrics(ctx, req, out)
	return out
}

func (c *Client) submitAndPoll(ctx context.Context, logger *slog.Logger, req task.Request, taskID string, start time.Time) task.Outcome {
	env := map[string]string{
		runner.EnvTaskID:     taskID,
		runner.EnvTaskAction: string(req.Action),
		runner.EnvTaskTarget: req.TargetID,
	}
	if len(req.Payload) > 0 {
		env[runner.EnvTaskPayload] = string(req.Payload)
	}

	handle, err := c.runner.Submit(ctx, runner.SubmitInput{
		Cluster:        c.cfg.RunnerTarget,
		TaskDefinition: c.cfg.TaskDefinition,
		Subnets:        c.cfg.NetworkTargets,
		SecurityGroups: c.cfg.SecurityScopes,
		Env:            env,
	})
	if err != nil {
		logger.Warn("task submission failed", slog.String("error", err.Error()))
		return task.Outcome{State: task.StateSubmissionFailed, Error: err.Error()}
	}
	logger.Debug("task accepted", slog.String("runner_task_id", handle.ID))

	timeout := c.cfg.DispatchTimeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	return c.poll(ctx, logger, taskID, start.Add(timeout))
}

// poll reads the result store until the worker writes a result, the
// wall-clock deadline passes, or the context is cancelled.
func (c *Client) poll(ctx context.Context, logger *slog.Logger, taskID string, deadline time.Time) task.Outcome {
	for attempt := 1; ; attempt++ {
		rec, err := c.results.Get(ctx, c.cfg.ResultTable, taskID)
		switch {
		case err == nil:
			return task.Outcome{
				Success: true,
				State:   task.StateSucceeded,
				Data:    decodeResult(logger, rec.Result),
			}
		case errors.Is(err, store.ErrNotFound):
			// Not written yet; keep polling.
		default:
			// A transient store error must not fail a task that can
			// still report its result within the bound.
			logger.Warn("result store read failed", slog.String("error", err.Error()))
		}

		if !time.Now().Before(deadline) {
			logger.Warn("timed out waiting for task result")
			return task.Outcome{
				State: task.StateTimedOut,
				Error: "Timeout waiting for task: " + taskID,
			}
		}

		select {
		case <-ctx.Done():
			logger.Warn("dispatch cancelled while polling", slog.String("error", ctx.Err().Error()))
			return task.Outcome{
				State: task.StateCancelled,
				Error: "Cancelled waiting for task: " + taskID,
			}
		case <-time.After(c.pacing.Next(attempt)):
		}
	}
}

// decodeResult deserializes the worker's result blob. The store's job is to
// report that the task finished, not to validate the blob: a result that
// exists but cannot be parsed degrades to an empty object instead of masking
// a real completion as a failure.
func decodeResult(logger *slog.Logger, raw string) any {
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		logger.Warn("result present but unparseable, defaulting to empty object",
			slog.String("error", err.Error()),
		)
		return map[string]any{}
	}
	if data == nil {
		return map[string]any{}
	}
	return data
}

// emitMetrics sends a success/failure count and a duration metric for the
// dispatch. Telemetry is a side channel, not part of the contract: failures
// and panics here are logged and can never alter the returned outcome.
func (c *Client) emitMetrics(ctx context.Context, req task.Request, out task.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("telemetry emission panicked", slog.Any("panic", r))
		}
	}()

	name := "task.success"
	if !out.Success {
		name = "task.failure"
	}

	now := time.Now().UTC()
	dims := map[string]string{
		"action": string(req.Action),
		"state":  string(out.State),
		"region": c.cfg.Region,
	}
	metrics := []telemetry.Metric{
		{Name: name, Value: 1, Unit: telemetry.UnitCount, Dimensions: dims, Timestamp: now},
		{
			Name:       "task.duration",
			Value:      float64(out.Duration) / float64(time.Millisecond),
			Unit:       telemetry.UnitMilliseconds,
			Dimensions: dims,
			Timestamp:  now,
		},
	}

	// The dispatch context may already be cancelled or past its deadline;
	// that must not take the metrics down with it.
	if err := c.telemetry.Put(context.WithoutCancel(ctx), c.cfg.MetricNamespace, metrics); err != nil {
		c.logger.Warn("telemetry emission failed",
			slog.String("task_id", out.TaskID),
			slog.String("error", err.Error()),
		)
	}
}
