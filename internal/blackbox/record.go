package blackbox

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Record encoding: kind(1B) | name_length(4B LE) | value_length(4B LE) | name | value

// Kind discriminates trace records. The numeric values are part of the wire
// format and must not change.
type Kind uint8

const (
	KindBlockBegin Kind = 0
	KindBlockEnd   Kind = 1
	KindValue      Kind = 2
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindBlockBegin:
		return "begin"
	case KindBlockEnd:
		return "end"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

func (k Kind) valid() bool { return k <= KindValue }

const headerSize = 1 + 4 + 4

// ErrTruncatedRecord reports a stream that ends inside a record, typically a
// file whose writer died mid-write. Readers stop at the last complete record.
var ErrTruncatedRecord = errors.New("truncated record")

// ErrInvalidKind reports a record header with an out-of-range kind byte.
var ErrInvalidKind = errors.New("invalid record kind")

// Record is one trace event. BlockEnd records carry no name or value.
// A Record is immutable once constructed.
type Record struct {
	Kind  Kind
	Name  []byte
	Value []byte
}

// EncodedLen returns the number of bytes EncodeRecord produces for r.
func EncodedLen(r Record) int { return headerSize + len(r.Name) + len(r.Value) }

// AppendRecord appends the wire encoding of r to dst and returns the
// extended slice.
func AppendRecord(dst []byte, r Record) []byte {
	var hdr [headerSize]byte
	hdr[0] = byte(r.Kind)
	binary.LittleEndian.PutUint32(hdr[1:5], uint32(len(r.Name)))
	binary.LittleEndian.PutUint32(hdr[5:9], uint32(len(r.Value)))
	dst = append(dst, hdr[:]...)
	dst = append(dst, r.Name...)
	dst = append(dst, r.Value...)
	return dst
}

// EncodeRecord returns the wire encoding of r.
func EncodeRecord(r Record) []byte {
	return AppendRecord(make([]byte, 0, EncodedLen(r)), r)
}

// DecodeRecord decodes one record from the front of b and returns it together
// with the number of bytes consumed. Input shorter than a full record fails
// with ErrTruncatedRecord. The returned Record does not alias b.
func DecodeRecord(b []byte) (Record, int, error) {
	if len(b) < headerSize {
		return Record{}, 0, ErrTruncatedRecord
	}
	k := Kind(b[0])
	if !k.valid() {
		return Record{}, 0, fmt.Errorf("%w: %d", ErrInvalidKind, b[0])
	}
	nameLen := int(binary.LittleEndian.Uint32(b[1:5]))
	valueLen := int(binary.LittleEndian.Uint32(b[5:9]))
	total := headerSize + nameLen + valueLen
	if total > len(b) {
		return Record{}, 0, ErrTruncatedRecord
	}
	rec := Record{Kind: k}
	if nameLen > 0 {
		rec.Name = append([]byte(nil), b[headerSize:headerSize+nameLen]...)
	}
	if valueLen > 0 {
		rec.Value = append([]byte(nil), b[total-valueLen:total]...)
	}
	return rec, total, nil
}
