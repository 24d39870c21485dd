// Package id defines identity types for the browser-worker dispatch client.
//
// Two families of identifiers live here:
//
//   - Task correlation ids — the wire contract between this client and the
//     remote workers. A worker reads TASK_ID from its environment and writes
//     its outcome to the result store under that key, so the format
//     "task-<epoch-millis>-<suffix>" is fixed and operators grep for it
//     across client and worker logs.
//
//   - Entity ids — TypeID-based (prefix-qualified, K-sortable, URL-safe)
//     identifiers for process-local entities such as client instances,
//     batch runs, and schedule entries. These appear in logs and reports
//     only; they never cross the worker boundary.
package id

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"time"

	"go.jetify.com/typeid/v2"
)

// ──────────────────────────────────────────────────
// Task correlation ids
// ──────────────────────────────────────────────────

// taskIDAlphabet is the character set for the random suffix.
const taskIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// taskIDSuffixLen is the length of the random suffix. 36^8 possible
// suffixes per millisecond keeps collision probability negligible for
// bursts of concurrent dispatches.
const taskIDSuffixLen = 8

var taskIDPattern = regexp.MustCompile(`^task-\d+-[a-z0-9]+$`)

// NewTaskID generates a fresh correlation id in the format
// "task-<epoch-millis>-<random-suffix>". Safe for concurrent use.
func NewTaskID() string {
	return NewTaskIDAt(time.Now())
}

// NewTaskIDAt generates a correlation id using the given timestamp.
func NewTaskIDAt(t time.Time) string {
	suffix := make([]byte, taskIDSuffixLen)
	for i := range suffix {
		suffix[i] = taskIDAlphabet[rand.IntN(len(taskIDAlphabet))]
	}

	return "task-" + strconv.FormatInt(t.UnixMilli(), 10) + "-" + string(suffix)
}

// IsTaskID reports whether s matches the task correlation id format.
func IsTaskID(s string) bool {
	return taskIDPattern.MatchString(s)
}

// ──────────────────────────────────────────────────
// TypeID-based entity ids
// ──────────────────────────────────────────────────

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for browser-worker entity types.
const (
	PrefixClient   Prefix = "client"
	PrefixBatch    Prefix = "batch"
	PrefixSchedule Prefix = "sched"
)

// ID is a prefix-qualified, globally unique, sortable identifier in the
// format "prefix_suffix".
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "batch_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// NewClientID generates a new unique client instance ID.
func NewClientID() ID { return New(PrefixClient) }

// NewBatchID generates a new unique batch run ID.
func NewBatchID() ID { return New(PrefixBatch) }

// NewScheduleID generates a new unique schedule entry ID.
func NewScheduleID() ID { return New(PrefixSchedule) }

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}
