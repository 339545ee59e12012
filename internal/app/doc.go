// Package app provides the orchestration layer for farmstand.
//
// # Overview
//
// This package wires together configuration, logging, the catalog client, the
// fetch controller, the token source and the UI. It is the composition root
// for every command.
//
// # Commands
//
//   - Run: the interactive storefront (browse)
//   - List: fetch once and print the derived list as a table or JSON
//   - Logs: print the tail of the log file
//   - ServeDev: run the local stand-in backend
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config, env and flag overrides
//	       ├─────> logging.New()        JSON log file
//	       ├─────> catalog.NewClient()  HTTP client for the listing route
//	       ├─────> fetch.New()          Controller writing to state.Store
//	       ├─────> startTokens()        Static token or file watcher goroutine
//	       └─────> ui.Run()             Start TUI (blocks)
//
// The watcher and the UI run in one errgroup. Quitting the UI cancels the
// group context, which stops the watcher; a signal cancels both.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Log file or token directory cannot be opened
//   - Invalid backend URL
//
// Recoverable errors (logged, list left at its prior state):
//   - Missing token, transport failure, non-2xx response, undecodable body
//
// List returns the fetch error so the command can exit non-zero.
package app
