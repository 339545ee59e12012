// Package ui provides the terminal storefront for farmstand.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns the presentation state and
// delegates everything that is not rendering to other packages:
//
//   - fetch.Controller loads product listings into a state.Store
//   - view.State holds the loaded products, the active filter and sort, the
//     derived list and the add-to-cart popup
//   - cart.Cart records line items
//   - prefs persists the theme and layout between runs
//
// # Event Flow
//
//  1. Init issues the first load for the current token and starts waiting
//     on token changes.
//  2. A finished load produces loadedMsg; the model copies the store
//     snapshot into view.State and re-derives the visible list.
//  3. A token change produces tokenMsg and triggers a reload.
//  4. Filter keystrokes and sort keys re-derive the list synchronously.
//
// # Views
//
//   - Product list: cards (default) or one compact row per product
//   - Skeleton: placeholder cards while a load is in flight
//   - Empty state: shown when nothing is loaded or nothing matches
//   - Cart popup: shown after a successful add, dismissed with enter or esc
//   - Help overlay: generated from the key map
//
// # Key Bindings
//
//   - /: Filter by name (esc clears)
//   - n/p/t/s: Sort by name, price, type or stock; repeat to flip direction
//   - x: Reset filter and sort
//   - a or enter: Add the selected product to the cart
//   - r: Reload
//   - c: Toggle cards/compact rows
//   - T: Cycle theme
//   - j/k, g/G, ctrl+u/ctrl+d: Navigate
//   - q or Ctrl+C: Exit
package ui
