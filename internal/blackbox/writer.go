package blackbox

import (
	"bufio"
	"fmt"
	"os"
)

// fileWriter owns one open trace file. It buffers writes and counts bytes as
// soon as append succeeds, whether or not the OS has flushed them.
type fileWriter struct {
	path    string
	f       *os.File
	bw      *bufio.Writer
	written int64
	scratch []byte
}

func newFileWriter(path string) (*fileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &fileWriter{path: path, f: f, bw: bufio.NewWriter(f)}, nil
}

// append encodes and writes one record, advancing the byte counter by the
// exact encoded length.
func (w *fileWriter) append(rec Record) error {
	w.scratch = AppendRecord(w.scratch[:0], rec)
	n, err := w.bw.Write(w.scratch)
	w.written += int64(n)
	if err != nil {
		return fmt.Errorf("write %s: %w", w.path, err)
	}
	return nil
}

func (w *fileWriter) size() int64 { return w.written }

// flush forces buffered bytes to the OS.
func (w *fileWriter) flush() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", w.path, err)
	}
	return nil
}

// close terminates the file's block structure by emitting one synthetic
// BlockEnd per still-open block, then flushes and releases the handle. The
// handle is released even when a write fails; the first error wins.
func (w *fileWriter) close(openBlocks int) error {
	var firstErr error
	for i := 0; i < openBlocks; i++ {
		if err := w.append(Record{Kind: KindBlockEnd}); err != nil {
			firstErr = err
			break
		}
	}
	if err := w.bw.Flush(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("flush %s: %w", w.path, err)
	}
	if err := w.f.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close %s: %w", w.path, err)
	}
	return firstErr
}
