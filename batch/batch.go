// Package batch fans a set of task requests out through a dispatching
// client with bounded concurrency and optional rate limiting.
//
// A campaign that messages thousands of fans should not open thousands
// of browser sessions at once. Executor caps in-flight dispatches,
// optionally paces submissions with a token bucket, and collects every
// outcome into a Report. Failed entries can be re-dispatched with
// Replay without repeating the ones that already succeeded.
package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/chrlshc/Huntaze-sub003/id"
	"github.com/chrlshc/Huntaze-sub003/task"
)

// Dispatcher is the subset of the client the executor needs. Outcomes
// carry expected failures; the error return is reserved for programmer
// errors such as an invalid request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req task.Request) (task.Outcome, error)
}

// Result pairs a request with what happened to it.
type Result struct {
	Index   int
	Request task.Request
	Outcome task.Outcome
	Err     error
}

// OK reports whether the dispatch both resolved and succeeded.
func (r Result) OK() bool {
	return r.Err == nil && r.Outcome.Success
}

// Report holds the results of one executor run, in request order.
type Report struct {
	BatchID  id.ID
	Results  []Result
	Started  time.Time
	Finished time.Time
}

// Failed returns the results that did not succeed, preserving order.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Succeeded counts the results that succeeded.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Duration is the wall-clock time the run took.
func (r *Report) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Executor runs batches of requests against a Dispatcher.
type Executor struct {
	dispatcher  Dispatcher
	concurrency int
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithConcurrency caps the number of in-flight dispatches. Values
// below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(e *Executor) { e.concurrency = n }
}

// WithRateLimit paces submissions to perSecond sustained dispatches
// with the given burst. Zero or negative perSecond disables pacing.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(e *Executor) {
		if perSecond <= 0 {
			e.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		e.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// NewExecutor creates an Executor around the given dispatcher.
func NewExecutor(d Dispatcher, opts ...Option) *Executor {
	e := &Executor{
		dispatcher:  d,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Run dispatches every request and waits for all of them to resolve.
// A cancelled context stops new submissions; requests not yet started
// are reported with the context error. Run itself only returns an
// error when ctx is nil or already cancelled before any work started.
func (e *Executor) Run(ctx context.Context, reqs []task.Request) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		BatchID: id.NewBatchID(),
		Results: make([]Result, len(reqs)),
		Started: time.Now().UTC(),
	}
	logger := e.logger.With(slog.String("batch_id", report.BatchID.String()))
	logger.Info("batch started",
		slog.Int("requests", len(reqs)),
		slog.Int("concurrency", e.concurrency),
	)

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)

	for i, req := range reqs {
		res := Result{Index: i, Request: req}

		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				res.Err = err
				mu.Lock()
				report.Results[i] = res
				mu.Unlock()
				continue
			}
		} else if err := ctx.Err(); err != nil {
			res.Err = err
			mu.Lock()
			report.Results[i] = res
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			out, err := e.dispatcher.Dispatch(ctx, res.Request)
			res.Outcome = out
			res.Err = err
			mu.Lock()
			report.Results[res.Index] = res
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	report.Finished = time.Now().UTC()

	logger.Info("batch finished",
		slog.Int("succeeded", report.Succeeded()),
		slog.Int("failed", len(report.Failed())),
		slog.Duration("duration", report.Duration()),
	)
	return report, nil
}

// Replay re-dispatches the failed entries of a previous run and
// returns a fresh report covering only those requests. Succeeded
// entries are never re-submitted.
func (e *Executor) Replay(ctx context.Context, prev *Report) (*Report, error) {
	failed := prev.Failed()
	reqs := make([]task.Request, len(failed))
	for i, res := range failed {
		reqs[i] = res.Request
	}
	e.logger.Info("replaying failed batch entries",
		slog.String("batch_id", prev.BatchID.String()),
		slog.Int("requests", len(reqs)),
	)
	return e.Run(ctx, reqs)
}
