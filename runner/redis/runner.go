// Package redis implements runner.Runner on top of a Redis list used as a
// per-cluster task queue. Remote workers BRPOP envelopes from the queue,
// execute them, and write their outcome to the result store under the
// correlation id found in the envelope's Env.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	r := redisrunner.New(client)
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chrlshc/Huntaze-sub003/runner"
)

// keyPrefix namespaces all runner keys to avoid collisions.
const keyPrefix = "browserworker:"

// queueKey returns the list key for a cluster: browserworker:queue:{cluster}
func queueKey(cluster string) string { return keyPrefix + "queue:" + cluster }

// envelope is the wire form of one submitted task.
type envelope struct {
	ID             string            `json:"id"`
	TaskDefinition string            `json:"task_definition"`
	Subnets        []string          `json:"subnets,omitempty"`
	SecurityGroups []string          `json:"security_groups,omitempty"`
	Env            map[string]string `json:"env"`
	SubmittedAt    time.Time         `json:"submitted_at"`
}

// Compile-time interface check.
var _ runner.Runner = (*Runner)(nil)

// Option configures the Runner.
type Option func(*Runner)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// Runner submits tasks by pushing envelopes onto a per-cluster Redis list.
type Runner struct {
	client goredis.Cmdable
	logger *slog.Logger
}

// New creates a Redis-backed runner. The caller owns the Redis client
// lifecycle.
func New(client goredis.Cmdable, opts ...Option) *Runner {
	r := &Runner{client: client, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Submit pushes the task envelope onto the cluster's queue.
func (r *Runner) Submit(ctx context.Context, in runner.SubmitInput) (*runner.Handle, error) {
	now := time.Now().UTC()
	env := envelope{
		ID:             in.Env[runner.EnvTaskID],
		TaskDefinition: in.TaskDefinition,
		Subnets:        in.Subnets,
		SecurityGroups: in.SecurityGroups,
		Env:            in.Env,
		SubmittedAt:    now,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("runner/redis: marshal envelope: %w", err)
	}

	if err := r.client.LPush(ctx, queueKey(in.Cluster), data).Err(); err != nil {
		return nil, fmt.Errorf("runner/redis: submit to %q: %w", in.Cluster, err)
	}

	r.logger.Debug("task submitted",
		slog.String("cluster", in.Cluster),
		slog.String("task_id", env.ID),
	)

	return &runner.Handle{ID: env.ID, StartedAt: now}, nil
}

// QueueLength returns the number of pending envelopes for a cluster.
func (r *Runner) QueueLength(ctx context.Context, cluster string) (int64, error) {
	n, err := r.client.LLen(ctx, queueKey(cluster)).Result()
	if err != nil {
		return 0, fmt.Errorf("runner/redis: queue length for %q: %w", cluster, err)
	}
	return n, nil
}
