// Package blackbox implements the trace session engine behind the blackbox
// recorder: a block-framed binary event log split across rotating files so a
// crashed or hung GPU workload can be diagnosed post mortem.
//
// # Overview
//
// The interception layer reports block begin/end and value events plus
// submission boundaries; the engine persists them as fixed-header records:
//
//	kind(1B) | name_length(4B LE) | value_length(4B LE) | name | value
//
// Files are named <prefix>.<sequence>. Rotation happens only at submission
// boundaries, driven by a size threshold, a submissions-per-file threshold,
// or unconditionally in retention mode, where each submission gets its own
// file and only the N most recent files survive on disk. Whenever a file is
// closed, one synthetic BlockEnd per still-open block is appended, and
// whenever a file is opened the open blocks are replayed as BlockBegin
// records, so every file is a self-consistent block structure when read in
// isolation.
//
// API surface (internal)
//
//	s, _ := blackbox.Open(blackbox.Options{Prefix: "trace", MaxRetainedFiles: 4})
//	_ = s.SubmissionBegin()
//	_ = s.BeginBlock([]byte("batch"), nil)
//	_ = s.Value([]byte("reloc"), payload)
//	_ = s.EndBlock()
//	_ = s.SubmissionEnd()
//	_ = s.Close()
//
//	// Reading a possibly truncated file back:
//	stats, _ := blackbox.VerifyFile("trace.3")
//	_ = stats.OpenAtEnd // blocks still open when the writer died
//
// # Concurrency
//
// The engine is single-threaded by contract: all events of one Session must
// arrive in one total order. A multi-threaded caller serializes externally.
//
// # Failure policy
//
// Recording is diagnostic. A write failure is logged once and parks the
// session in a degraded state where every call is a safe no-op; the engine
// never panics into the instrumented application. The only loud error is
// ErrUnbalancedBlock, which means the instrumentation itself is broken.
package blackbox
