package blackbox

import "errors"

// ErrUnbalancedBlock reports a block end with no matching open block. It
// indicates broken instrumentation on the caller's side, not an I/O failure.
var ErrUnbalancedBlock = errors.New("unbalanced block end")

// Block is a named, nested scope opened by a BlockBegin record.
type Block struct {
	Name  []byte
	Value []byte
}

// BlockStack tracks the currently open blocks of a session so their structure
// can be replayed into a freshly started file. It performs no I/O.
type BlockStack struct {
	blocks []Block
}

// Push opens a block. The name and value bytes are copied.
func (s *BlockStack) Push(name, value []byte) {
	s.blocks = append(s.blocks, Block{Name: copyBytes(name), Value: copyBytes(value)})
}

// Pop closes the innermost open block. Popping an empty stack fails with
// ErrUnbalancedBlock.
func (s *BlockStack) Pop() error {
	if len(s.blocks) == 0 {
		return ErrUnbalancedBlock
	}
	s.blocks = s.blocks[:len(s.blocks)-1]
	return nil
}

// Depth returns the number of currently open blocks.
func (s *BlockStack) Depth() int { return len(s.blocks) }

// Snapshot returns the open blocks, outermost first. The blocks share name
// and value bytes with the stack; both sides treat them as immutable.
func (s *BlockStack) Snapshot() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

func copyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
