// Package state provides thread-safe storage for the product catalog shared
// between fetches and the UI.
//
// # Overview
//
// The Store is the coordination point where fetch results meet rendering.
// Fetches run in their own goroutines (Bubble Tea commands or the list
// command) and the UI reads immutable snapshots.
//
//	Fetch controller:              UI:
//	┌────────────────┐            ┌─────────────────┐
//	│ gen := Begin() │            │                 │
//	│ Fetch...()     │            │                 │
//	│ Apply(gen, ..) │───────────→│ Snapshot()      │
//	└────────────────┘  (mutex)   │ derive + render │
//	                              └─────────────────┘
//
// # Generations
//
// Each fetch takes a monotonic generation with Begin, which also sets the
// loading flag. Apply only has an effect for the newest generation:
//
//	g1 := store.Begin()  // token A
//	g2 := store.Begin()  // token B, still loading
//	store.Apply(g1, a, nil) // false: discarded, loading stays true
//	store.Apply(g2, b, nil) // true: products = b, loading = false
//
// A failed Apply keeps the previous product list and records LastError.
// On the first load that list is empty.
//
// # Copying
//
// Apply and Snapshot copy the product slice so callers never share backing
// arrays with the store. Snapshot.Products is never nil.
//
// The zero Store is ready to use.
package state
