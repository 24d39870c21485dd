package memory_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/chrlshc/Huntaze-sub003/store"
	"github.com/chrlshc/Huntaze-sub003/store/memory"
)

func TestStore_GetMissing(t *testing.T) {
	s := memory.New()

	_, err := s.Get(context.Background(), "results", "task-1-a")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() error = %v, want store.ErrNotFound", err)
	}
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	rec := &store.Record{Key: "task-1-a", Result: `{"success":true}`}
	if err := s.Put(ctx, "results", rec); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := s.Get(ctx, "results", "task-1-a")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Result != rec.Result {
		t.Errorf("Result = %q, want %q", got.Result, rec.Result)
	}
	if got.WrittenAt.IsZero() {
		t.Error("WrittenAt not filled on Put")
	}
}

func TestStore_TablesAreIsolated(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.Put(ctx, "results-a", &store.Record{Key: "task-1-a", Result: "{}"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	if _, err := s.Get(ctx, "results-b", "task-1-a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() from other table error = %v, want store.ErrNotFound", err)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.Put(ctx, "results", &store.Record{Key: "task-1-a", Result: "{}"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := s.Get(ctx, "results", "task-1-a")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	got.Result = "mutated"

	again, err := s.Get(ctx, "results", "task-1-a")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if again.Result != "{}" {
		t.Errorf("stored record mutated through returned copy: %q", again.Result)
	}
}

func TestStore_Delete(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.Put(ctx, "results", &store.Record{Key: "task-1-a", Result: "{}"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := s.Delete(ctx, "results", "task-1-a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, "results", "task-1-a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want store.ErrNotFound", err)
	}
	if err := s.Delete(ctx, "results", "task-1-a"); err != nil {
		t.Errorf("Delete() of missing key error = %v, want nil", err)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := &store.Record{
				Key:       "task-1-k" + strconv.Itoa(i),
				Result:    "{}",
				WrittenAt: time.Now().UTC(),
			}
			if err := s.Put(ctx, "results", rec); err != nil {
				t.Errorf("Put() error: %v", err)
			}
			if _, err := s.Get(ctx, "results", rec.Key); err != nil {
				t.Errorf("Get() error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := s.Len("results"); got != 32 {
		t.Errorf("Len() = %d, want 32", got)
	}
}
