// Package logtail reads the tail of farmstand's log file and renders its JSON
// records for a terminal.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory is bounded by the requested tail rather than the file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Formatting
//
// The logger writes one JSON object per line. Format turns each into
//
//	<ts> <LEVEL> [<logger>] <msg> key=value ...
//
// with fields sorted by key and the caller and stacktrace dropped. Lines that
// are not JSON pass through unchanged.
package logtail
