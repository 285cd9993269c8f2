package blackbox

// CallReporter brackets intercepted API calls as blocks on a Session. The
// interception layer calls PreCall/PostCall around every hooked function; the
// reporter is agnostic to which functions exist.
type CallReporter struct {
	s *Session
	n uint64
}

// NewCallReporter returns a reporter that records calls into s.
func NewCallReporter(s *Session) *CallReporter {
	return &CallReporter{s: s}
}

// PreCall opens a block for one intercepted call. The call name becomes the
// block name and detail its payload.
func (c *CallReporter) PreCall(name, detail string) error {
	c.n++
	return c.s.BeginBlock([]byte(name), []byte(detail))
}

// PostCall closes the block opened by the matching PreCall.
func (c *CallReporter) PostCall() error {
	return c.s.EndBlock()
}

// Calls returns the number of calls reported so far.
func (c *CallReporter) Calls() uint64 { return c.n }
