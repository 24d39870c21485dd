package browserworker

import (
	"log/slog"

	"github.com/chrlshc/Huntaze-sub003/backoff"
	"github.com/chrlshc/Huntaze-sub003/middleware"
	"github.com/chrlshc/Huntaze-sub003/runner"
	"github.com/chrlshc/Huntaze-sub003/store"
	"github.com/chrlshc/Huntaze-sub003/telemetry"
)

// Option configures a Client.
type Option func(*Client) error

// WithConfig sets the client configuration. Zero-valued fields keep
// their defaults.
func WithConfig(cfg Config) Option {
	return func(c *Client) error {
		c.cfg = cfg
		return nil
	}
}

// WithRunner sets the task runner submissions go to.
func WithRunner(r runner.Runner) Option {
	return func(c *Client) error {
		c.runner = r
		return nil
	}
}

// WithResultStore sets the result store polled for task outcomes.
func WithResultStore(s store.Store) Option {
	return func(c *Client) error {
		c.results = s
		return nil
	}
}

// WithTelemetry sets the metrics sink. The default discards metrics.
func WithTelemetry(sink telemetry.Sink) Option {
	return func(c *Client) error {
		c.telemetry = sink
		return nil
	}
}

// WithLogger sets the structured logger for the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithPollStrategy sets the poll pacing strategy. The default polls at the
// configured fixed interval.
func WithPollStrategy(s backoff.Strategy) Option {
	return func(c *Client) error {
		c.pacing = s
		return nil
	}
}

// WithMiddleware wraps every Dispatch call with the given middleware,
// outermost first.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(c *Client) error {
		c.mws = append(c.mws, mws...)
		return nil
	}
}
