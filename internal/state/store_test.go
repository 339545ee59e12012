package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/five82/farmstand/internal/catalog"
)

func TestStore_ZeroValueIsEmptyAndIdle(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap.Products == nil || len(snap.Products) != 0 {
		t.Fatalf("Products = %#v, want empty non-nil", snap.Products)
	}
	if snap.Loading {
		t.Fatalf("Loading = true, want false before any request")
	}
}

func TestStore_ApplyAndSnapshotClone(t *testing.T) {
	var s Store

	gen := s.Begin()
	if !s.Snapshot().Loading {
		t.Fatalf("Loading = false after Begin, want true")
	}

	before := time.Now()
	if !s.Apply(gen, []catalog.Product{{ID: "1"}, {ID: "2"}}, nil) {
		t.Fatalf("Apply(current gen) = false, want true")
	}

	snap := s.Snapshot()
	if snap.Loading {
		t.Fatalf("Loading = true after Apply, want false")
	}
	if len(snap.Products) != 2 || snap.Products[0].ID != "1" {
		t.Fatalf("Products = %#v, want 2 items", snap.Products)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Products[0].ID = "999"
	if got := s.Snapshot().Products[0].ID; got != "1" {
		t.Fatalf("Snapshot should clone products; got id %q want 1", got)
	}
}

func TestStore_FailureKeepsPreviousList(t *testing.T) {
	var s Store

	s.Apply(s.Begin(), []catalog.Product{{ID: "keep"}}, nil)

	gen := s.Begin()
	origErr := errors.New("boom")
	s.Apply(gen, nil, origErr)

	snap := s.Snapshot()
	if len(snap.Products) != 1 || snap.Products[0].ID != "keep" {
		t.Fatalf("Products changed on error: %#v", snap.Products)
	}
	if snap.Loading {
		t.Fatalf("Loading = true after failed Apply, want false")
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_FirstFailureLeavesEmptyList(t *testing.T) {
	var s Store
	gen := s.Begin()
	if !s.Snapshot().Loading {
		t.Fatalf("Loading = false after Begin, want true")
	}
	s.Apply(gen, nil, errors.New("status 500"))

	snap := s.Snapshot()
	if len(snap.Products) != 0 {
		t.Fatalf("Products = %#v, want empty", snap.Products)
	}
	if snap.Loading {
		t.Fatalf("Loading = true, want false")
	}
}

func TestStore_StaleGenerationIsDiscarded(t *testing.T) {
	var s Store

	first := s.Begin()
	second := s.Begin()

	if s.Apply(first, []catalog.Product{{ID: "old"}}, nil) {
		t.Fatalf("Apply(stale gen) = true, want false")
	}
	snap := s.Snapshot()
	if len(snap.Products) != 0 {
		t.Fatalf("stale response applied: %#v", snap.Products)
	}
	if !snap.Loading {
		t.Fatalf("stale response cleared loading of newer request")
	}

	s.Apply(second, []catalog.Product{{ID: "new"}}, nil)
	if got := s.Snapshot().Products; len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("Products = %#v, want [new]", got)
	}
	if s.Current(first) || !s.Current(second) {
		t.Fatalf("Current mismatch: first=%v second=%v", s.Current(first), s.Current(second))
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Apply(s.Begin(), []catalog.Product{{ID: "x"}}, nil)
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	if s.Snapshot().Generation != 20 {
		t.Fatalf("Generation = %d, want 20", s.Snapshot().Generation)
	}
}
