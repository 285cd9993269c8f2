package blackbox

// Notifier is an optional callback surface for file lifecycle events.
// Implementations may forward rotations to a diagnostic channel or record
// metrics. Callbacks run synchronously on the session's calling thread and
// must not call back into the Session.
type Notifier interface {
	// FileOpened is called after a trace file has been created.
	FileOpened(path string, seq uint64)
	// FileClosed is called after a trace file has been closed, with its
	// final size in bytes.
	FileClosed(path string, size int64)
	// FileRetired is called after the retention ring deleted a file.
	FileRetired(path string)
}

type noopNotifier struct{}

func (noopNotifier) FileOpened(string, uint64) {}
func (noopNotifier) FileClosed(string, int64)  {}
func (noopNotifier) FileRetired(string)        {}
