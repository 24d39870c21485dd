// Package schedule fires recurring task dispatches on cron schedules.
//
// The scheduler is single-process: it belongs to one client instance
// and does no coordination across replicas. Entries are kept in
// memory; each tick fires whatever is due through the Dispatcher in
// its own goroutine so a slow dispatch never delays other entries.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cronlib "github.com/robfig/cron/v3"

	"github.com/chrlshc/Huntaze-sub003/id"
	"github.com/chrlshc/Huntaze-sub003/task"
)

// Dispatcher dispatches a single task request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req task.Request) (task.Outcome, error)
}

// cronParser supports standard 5-field cron and descriptors like "@every 30s".
var cronParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// ParseExpr parses a cron expression. Useful for validating user input
// before registering an entry.
func ParseExpr(expr string) (cronlib.Schedule, error) {
	return cronParser.Parse(expr)
}

// Entry is one registered recurring dispatch.
type Entry struct {
	ID        id.ID
	Name      string
	Expr      string
	Request   task.Request
	NextRunAt time.Time
	LastRunAt time.Time

	schedule cronlib.Schedule
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTickInterval sets how often the scheduler checks for due entries.
func WithTickInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.tickInterval = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// Scheduler fires due entries on a tick loop.
type Scheduler struct {
	dispatcher   Dispatcher
	logger       *slog.Logger
	tickInterval time.Duration

	mu      sync.Mutex
	entries map[string]*Entry
	running bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewScheduler creates a Scheduler around the given dispatcher.
func NewScheduler(d Dispatcher, opts ...Option) *Scheduler {
	s := &Scheduler{
		dispatcher:   d,
		tickInterval: 1 * time.Second,
		entries:      make(map[string]*Entry),
		stopCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Add registers a recurring dispatch under a unique name. The request
// is validated once here so a bad entry fails at registration, not at
// fire time.
func (s *Scheduler) Add(name, expr string, req task.Request) (*Entry, error) {
	if name == "" {
		return nil, fmt.Errorf("schedule: entry name is required")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("schedule: entry %q: %w", name, err)
	}
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("schedule: entry %q: parse %q: %w", name, expr, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[name]; exists {
		return nil, fmt.Errorf("schedule: entry %q already registered", name)
	}

	now := time.Now().UTC()
	entry := &Entry{
		ID:        id.NewScheduleID(),
		Name:      name,
		Expr:      expr,
		Request:   req,
		NextRunAt: sched.Next(now),
		schedule:  sched,
	}
	s.entries[name] = entry

	s.logger.Info("schedule entry added",
		slog.String("entry", name),
		slog.String("expr", expr),
		slog.Time("next_run_at", entry.NextRunAt),
	)
	return entry, nil
}

// Remove unregisters an entry. Removing an unknown name is a no-op.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[name]; ok {
		delete(s.entries, name)
		s.logger.Info("schedule entry removed", slog.String("entry", name))
	}
}

// Entries returns a snapshot of the registered entries.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	return out
}

// Start launches the tick loop. Calling Start on a running scheduler
// is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.tickLoop()
	s.logger.Info("scheduler started", slog.Duration("tick_interval", s.tickInterval))
}

// Stop signals the tick loop to stop and waits for in-flight fires to
// finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) tickLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick(time.Now().UTC())
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	s.mu.Lock()
	var due []*Entry
	for _, entry := range s.entries {
		if !entry.NextRunAt.After(now) {
			due = append(due, entry)
			entry.LastRunAt = now
			entry.NextRunAt = entry.schedule.Next(now)
		}
	}
	s.mu.Unlock()

	for _, entry := range due {
		s.wg.Add(1)
		go s.fire(entry.Name, entry.Request)
	}
}

func (s *Scheduler) fire(name string, req task.Request) {
	defer s.wg.Done()

	out, err := s.dispatcher.Dispatch(context.Background(), req)
	if err != nil {
		s.logger.Error("scheduled dispatch rejected",
			slog.String("entry", name),
			slog.String("error", err.Error()),
		)
		return
	}
	if !out.Success {
		s.logger.Warn("scheduled dispatch failed",
			slog.String("entry", name),
			slog.String("task_id", out.TaskID),
			slog.String("state", string(out.State)),
			slog.String("error", out.Error),
		)
		return
	}
	s.logger.Info("scheduled dispatch succeeded",
		slog.String("entry", name),
		slog.String("task_id", out.TaskID),
		slog.Duration("duration", out.Duration),
	)
}
