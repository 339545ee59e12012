package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/farmstand/internal/catalog"
)

// Snapshot represents the latest catalog data available to the UI.
type Snapshot struct {
	Products    []catalog.Product
	Loading     bool
	Generation  uint64 // generation of the newest request
	LastUpdated time.Time
	LastError   error
}

// Store coordinates catalog updates coming from concurrent fetches.
//
// Every fetch takes a generation with Begin. Only the newest generation may
// change the stored products or clear the loading flag, so a slow response
// for an old token can never overwrite the list of a newer one.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	products []catalog.Product
}

// Begin starts a new request generation and marks the store as loading.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Generation++
	s.snapshot.Loading = true
	return s.snapshot.Generation
}

// Apply records the outcome of the request identified by gen. It returns
// false and changes nothing when gen is not the newest generation.
//
// On success the product list is replaced. On failure the previous list is
// kept and the error is recorded for visibility. In both cases loading ends.
func (s *Store) Apply(gen uint64, products []catalog.Product, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation {
		return false
	}
	s.snapshot.Loading = false
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		return true
	}
	s.products = cloneProducts(products)
	if s.products == nil {
		s.products = []catalog.Product{}
	}
	s.snapshot.LastError = nil
	return true
}

// Current reports whether gen is still the newest generation.
func (s *Store) Current(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.snapshot.Generation
}

// Snapshot returns a copy of the current snapshot. Products is never nil.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Products = cloneProducts(s.products)
	if snap.Products == nil {
		snap.Products = []catalog.Product{}
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneProducts(items []catalog.Product) []catalog.Product {
	if items == nil {
		return nil
	}
	dup := make([]catalog.Product, len(items))
	copy(dup, items)
	return dup
}
