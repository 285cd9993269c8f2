package blackbox

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader decodes a stream of trace records. A file truncated mid-write (the
// recorded process crashed) yields every complete record and then
// ErrTruncatedRecord instead of io.EOF.
type Reader struct {
	br  *bufio.Reader
	hdr [headerSize]byte
}

// NewReader returns a Reader decoding from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the next record, io.EOF at a clean end of the stream, or
// ErrTruncatedRecord when the stream ends inside a record.
func (r *Reader) Next() (Record, error) {
	if _, err := io.ReadFull(r.br, r.hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Record{}, ErrTruncatedRecord
		}
		return Record{}, err
	}
	k := Kind(r.hdr[0])
	if !k.valid() {
		return Record{}, fmt.Errorf("%w: %d", ErrInvalidKind, r.hdr[0])
	}
	nameLen := int(binary.LittleEndian.Uint32(r.hdr[1:5]))
	valueLen := int(binary.LittleEndian.Uint32(r.hdr[5:9]))
	rec := Record{Kind: k}
	if nameLen > 0 {
		rec.Name = make([]byte, nameLen)
		if err := r.readFull(rec.Name); err != nil {
			return Record{}, err
		}
	}
	if valueLen > 0 {
		rec.Value = make([]byte, valueLen)
		if err := r.readFull(rec.Value); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

func (r *Reader) readFull(buf []byte) error {
	if _, err := io.ReadFull(r.br, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrTruncatedRecord
		}
		return err
	}
	return nil
}

// ScanStats summarizes one pass over a trace file.
type ScanStats struct {
	Records   int
	Truncated bool
}

// ScanFile reads every complete record of the file at path, invoking fn for
// each. A truncated tail is reported via Truncated, not as an error; other
// decode and I/O failures, and errors returned by fn, abort the scan.
func ScanFile(path string, fn func(Record) error) (ScanStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ScanStats{}, err
	}
	defer f.Close()

	r := NewReader(f)
	var st ScanStats
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		if errors.Is(err, ErrTruncatedRecord) {
			st.Truncated = true
			return st, nil
		}
		if err != nil {
			return st, err
		}
		st.Records++
		if fn != nil {
			if err := fn(rec); err != nil {
				return st, err
			}
		}
	}
}

// VerifyStats summarizes the structural check of one trace file.
type VerifyStats struct {
	Records   int
	Begins    int
	Ends      int
	Values    int
	MaxDepth  int
	OpenAtEnd int
	Truncated bool
}

// VerifyFile replays the file at path through a block stack, checking that
// every block end matches an open block. A completed file replays to zero
// open blocks; a file cut off while the session was live reports how many
// blocks were still open.
func VerifyFile(path string) (VerifyStats, error) {
	var stack BlockStack
	var vs VerifyStats
	st, err := ScanFile(path, func(rec Record) error {
		switch rec.Kind {
		case KindBlockBegin:
			stack.Push(rec.Name, rec.Value)
			vs.Begins++
			if d := stack.Depth(); d > vs.MaxDepth {
				vs.MaxDepth = d
			}
		case KindBlockEnd:
			if err := stack.Pop(); err != nil {
				return err
			}
			vs.Ends++
		case KindValue:
			vs.Values++
		}
		return nil
	})
	vs.Records = st.Records
	vs.Truncated = st.Truncated
	vs.OpenAtEnd = stack.Depth()
	return vs, err
}
