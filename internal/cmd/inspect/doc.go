// Package inspect implements the read-side CLI commands for trace files:
// dump (print records, optionally filtered by a CEL expression), verify
// (structural replay check), stat (per-file session summary) and watch
// (live rotation/retention reporting via fsnotify).
//
// The commands only decode record framing; payloads are treated as opaque
// bytes throughout.
package inspect
