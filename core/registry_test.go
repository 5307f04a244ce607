package core

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func newBoundRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.InitializeTerminal("T01"); err != nil {
		t.Fatalf("InitializeTerminal: %v", err)
	}
	return r
}

// TestTerminalBinding covers init, idempotent re-init and collision.
func TestTerminalBinding(t *testing.T) {
	r := NewRegistry()
	if err := r.InitializeTerminal("T01"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := r.InitializeTerminal("T01"); err != nil {
		t.Fatalf("re-init same id: %v", err)
	}
	if err := r.InitializeTerminal("T02"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("collision: want ErrInvalidState, got %v", err)
	}
	id, err := r.TerminalID()
	if err != nil || id != "T01" {
		t.Fatalf("TerminalID = %q, %v", id, err)
	}
	if err := r.InitializeTerminal("  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank id: %v", err)
	}
}

// TestBeginRequiresTerminal verifies the terminal gate.
func TestBeginRequiresTerminal(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Begin("Store", "USD"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := r.TerminalID(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("TerminalID: %v", err)
	}
}

// TestHandleLifecycle covers allocation, resolution, closing and the
// reserved zero handle.
func TestHandleLifecycle(t *testing.T) {
	r := newBoundRegistry(t)
	h, err := r.Begin("Store-1001", "USD")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if h == InvalidHandle {
		t.Fatalf("allocated the invalid handle")
	}
	tx, err := r.Resolve(h)
	if err != nil || tx.StoreName() != "Store-1001" {
		t.Fatalf("Resolve: %v, %v", tx, err)
	}
	if _, err := r.Resolve(InvalidHandle); !errors.Is(err, ErrNotFound) {
		t.Fatalf("handle 0: %v", err)
	}
	if err := r.Close(h); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := r.Resolve(h); !errors.Is(err, ErrNotFound) {
		t.Fatalf("resolve after close: %v", err)
	}
	if err := r.Close(h); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double close: %v", err)
	}
}

// TestHandlesMonotonic verifies handles increase and survive closes
// without being reissued.
func TestHandlesMonotonic(t *testing.T) {
	r := newBoundRegistry(t)
	var last Handle
	for i := 0; i < 10; i++ {
		h, err := r.Begin("Store", "USD")
		if err != nil {
			t.Fatalf("Begin: %v", err)
		}
		if h <= last {
			t.Fatalf("handle %d after %d", h, last)
		}
		last = h
		if i%2 == 0 {
			if err := r.Close(h); err != nil {
				t.Fatalf("Close: %v", err)
			}
		}
	}
	// A reset clears state but keeps the counter running.
	r.Reset()
	if err := r.InitializeTerminal("T01"); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	h, err := r.Begin("Store", "USD")
	if err != nil {
		t.Fatalf("Begin after reset: %v", err)
	}
	if h <= last {
		t.Fatalf("handle %d reissued after reset (last %d)", h, last)
	}
}

// TestShutdownTerminal verifies shutdown closes every handle and
// releases the binding for a different terminal.
func TestShutdownTerminal(t *testing.T) {
	r := newBoundRegistry(t)
	var handles []Handle
	for i := 0; i < 3; i++ {
		h, err := r.Begin("Store", "USD")
		if err != nil {
			t.Fatalf("Begin: %v", err)
		}
		handles = append(handles, h)
	}
	if err := r.ShutdownTerminal(); err != nil {
		t.Fatalf("ShutdownTerminal: %v", err)
	}
	for _, h := range handles {
		if _, err := r.Resolve(h); !errors.Is(err, ErrNotFound) {
			t.Fatalf("handle %d survived shutdown: %v", h, err)
		}
	}
	if err := r.ShutdownTerminal(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double shutdown: %v", err)
	}
	if err := r.InitializeTerminal("T02"); err != nil {
		t.Fatalf("rebind after shutdown: %v", err)
	}
}

// TestPoisoning verifies a poisoned registry answers ErrInternal for
// everything until reset.
func TestPoisoning(t *testing.T) {
	r := newBoundRegistry(t)
	h, err := r.Begin("Store", "USD")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	r.Poison()
	if _, err := r.Resolve(h); !errors.Is(err, ErrInternal) {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := r.Begin("Store", "USD"); !errors.Is(err, ErrInternal) {
		t.Fatalf("Begin: %v", err)
	}
	if err := r.Close(h); !errors.Is(err, ErrInternal) {
		t.Fatalf("Close: %v", err)
	}
	if err := r.InitializeTerminal("T01"); !errors.Is(err, ErrInternal) {
		t.Fatalf("InitializeTerminal: %v", err)
	}
	if err := r.ShutdownTerminal(); !errors.Is(err, ErrInternal) {
		t.Fatalf("ShutdownTerminal: %v", err)
	}
	r.Reset()
	if err := r.InitializeTerminal("T01"); err != nil {
		t.Fatalf("init after reset: %v", err)
	}
}

// TestConcurrentRegistry hammers the registry and independent
// transactions from many goroutines; correctness here is the absence
// of races plus consistent per-transaction totals.
func TestConcurrentRegistry(t *testing.T) {
	r := newBoundRegistry(t)
	const workers = 16
	const linesPer = 25

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			h, err := r.Begin(fmt.Sprintf("Store-%02d", w), "USD")
			if err != nil {
				errs <- err
				return
			}
			tx, err := r.Resolve(h)
			if err != nil {
				errs <- err
				return
			}
			for i := 0; i < linesPer; i++ {
				if _, err := tx.AddLineItem("SKU", 1, Money{MinorUnits: 100, Currency: "USD"}); err != nil {
					errs <- err
					return
				}
			}
			tot, err := tx.GetTotals()
			if err != nil {
				errs <- err
				return
			}
			if tot.Total.MinorUnits != int64(linesPer)*100 {
				errs <- fmt.Errorf("worker %d total %d", w, tot.Total.MinorUnits)
				return
			}
			errs <- r.Close(h)
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("worker error: %v", err)
		}
	}
	if n := r.HandleCount(); n != 0 {
		t.Fatalf("%d handles leaked", n)
	}
}
