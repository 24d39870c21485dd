package browserworker

import (
	"strings"
	"time"
)

// Config holds configuration for the Client. Every field has a default;
// a zero Config is usable. Missing configuration never fails construction —
// the client is often built eagerly at startup, so the operation that needs
// a value fails instead.
type Config struct {
	// RunnerTarget is the execution cluster tasks are submitted to.
	RunnerTarget string

	// TaskDefinition identifies the unit of work the runner executes.
	TaskDefinition string

	// NetworkTargets lists the network placements for submitted tasks.
	NetworkTargets []string

	// SecurityScopes lists the security scopes applied to submitted tasks.
	SecurityScopes []string

	// ResultTable is the result-store table workers write outcomes to.
	ResultTable string

	// Region identifies the deployment region, carried in logs and
	// submissions for operator cross-referencing.
	Region string

	// MetricNamespace is the namespace dispatch metrics are emitted under.
	MetricNamespace string

	// PollInterval is how often the result store is polled for an outcome.
	PollInterval time.Duration

	// DispatchTimeout bounds the total wall-clock wait for a result.
	// Enforced by elapsed-time check, not iteration count, so slow poll
	// round-trips cannot extend the effective timeout.
	DispatchTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RunnerTarget:    "browser-workers",
		TaskDefinition:  "browser-worker",
		ResultTable:     "browser_worker_results",
		Region:          "us-east-1",
		MetricNamespace: "browser-worker",
		PollInterval:    1500 * time.Millisecond,
		DispatchTimeout: 60 * time.Second,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.RunnerTarget == "" {
		c.RunnerTarget = def.RunnerTarget
	}
	if c.TaskDefinition == "" {
		c.TaskDefinition = def.TaskDefinition
	}
	if c.ResultTable == "" {
		c.ResultTable = def.ResultTable
	}
	if c.Region == "" {
		c.Region = def.Region
	}
	if c.MetricNamespace == "" {
		c.MetricNamespace = def.MetricNamespace
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.DispatchTimeout <= 0 {
		c.DispatchTimeout = def.DispatchTimeout
	}
	return c
}

// ParseList splits a comma-separated value into its entries, trimming
// whitespace and dropping empty tokens: "a,,b," parses to ["a","b"].
// Flat configuration sources (deploy manifests, parameter stores) deliver
// network targets and security scopes in this form.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
