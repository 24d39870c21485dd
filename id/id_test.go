package id_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chrlshc/Huntaze-sub003/id"
)

func TestNewTaskID_Format(t *testing.T) {
	got := id.NewTaskID()

	if !id.IsTaskID(got) {
		t.Errorf("NewTaskID() = %q, want match for task-<digits>-<alnum>", got)
	}
	if !strings.HasPrefix(got, "task-") {
		t.Errorf("NewTaskID() = %q, want prefix %q", got, "task-")
	}
}

func TestNewTaskIDAt_EmbedsTimestamp(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	got := id.NewTaskIDAt(at)

	if !strings.HasPrefix(got, "task-1700000000123-") {
		t.Errorf("NewTaskIDAt() = %q, want prefix %q", got, "task-1700000000123-")
	}
	if !id.IsTaskID(got) {
		t.Errorf("NewTaskIDAt() = %q, want valid task id", got)
	}
}

// Concurrent dispatches share the same millisecond timestamp, so uniqueness
// rests entirely on the random suffix.
func TestNewTaskID_UniqueUnderConcurrency(t *testing.T) {
	const n = 64

	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = id.NewTaskID()
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, s := range ids {
		if !id.IsTaskID(s) {
			t.Errorf("generated id %q does not match the task id pattern", s)
		}
		seen[s] = struct{}{}
	}

	if len(seen) != n {
		t.Errorf("generated %d unique ids, want %d", len(seen), n)
	}
}

func TestIsTaskID_RejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"task-",
		"task-abc-def",
		"job-1700000000123-abcd1234",
		"task-1700000000123-ABCD1234",
		"task-1700000000123-",
	}
	for _, s := range tests {
		if id.IsTaskID(s) {
			t.Errorf("IsTaskID(%q) = true, want false", s)
		}
	}
}

func TestNew_GeneratesPrefixedID(t *testing.T) {
	batchID := id.NewBatchID()

	if batchID.IsNil() {
		t.Fatal("NewBatchID() returned the nil ID")
	}
	if batchID.Prefix() != id.PrefixBatch {
		t.Errorf("Prefix() = %q, want %q", batchID.Prefix(), id.PrefixBatch)
	}
	if !strings.HasPrefix(batchID.String(), "batch_") {
		t.Errorf("String() = %q, want prefix %q", batchID.String(), "batch_")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	orig := id.NewClientID()

	parsed, err := id.Parse(orig.String())
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", orig.String(), err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("Parse round-trip = %q, want %q", parsed.String(), orig.String())
	}
}

func TestParse_EmptyString(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Error("Parse(\"\") = nil error, want error")
	}
}

func TestID_TextMarshaling(t *testing.T) {
	orig := id.NewScheduleID()

	data, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if decoded.String() != orig.String() {
		t.Errorf("text round-trip = %q, want %q", decoded.String(), orig.String())
	}
}

func TestNil_Behavior(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Error("Nil.IsNil() = false, want true")
	}
	if id.Nil.String() != "" {
		t.Errorf("Nil.String() = %q, want empty", id.Nil.String())
	}
}
