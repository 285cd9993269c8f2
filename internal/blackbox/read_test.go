package blackbox

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, recs []Record) {
	t.Helper()
	var buf []byte
	for _, rec := range recs {
		buf = AppendRecord(buf, rec)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestReaderStream(t *testing.T) {
	recs := []Record{
		{Kind: KindBlockBegin, Name: []byte("frame"), Value: []byte("7")},
		{Kind: KindValue, Name: []byte("reloc"), Value: bytes.Repeat([]byte{0xab}, 100)},
		{Kind: KindBlockEnd},
	}
	var buf []byte
	for _, rec := range recs {
		buf = AppendRecord(buf, rec)
	}
	r := NewReader(bytes.NewReader(buf))
	for i, want := range recs {
		got, err := r.Next()
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if got.Kind != want.Kind || !bytes.Equal(got.Name, want.Name) || !bytes.Equal(got.Value, want.Value) {
			t.Fatalf("record %d mismatch", i)
		}
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF at end of stream")
	}
}

func TestReaderTruncatedTail(t *testing.T) {
	var buf []byte
	buf = AppendRecord(buf, Record{Kind: KindValue, Name: []byte("a"), Value: []byte("1")})
	buf = AppendRecord(buf, Record{Kind: KindValue, Name: []byte("b"), Value: []byte("2")})
	// cut the second record short
	buf = buf[:len(buf)-1]

	r := NewReader(bytes.NewReader(buf))
	if _, err := r.Next(); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if _, err := r.Next(); !errors.Is(err, ErrTruncatedRecord) {
		t.Fatalf("got %v, want ErrTruncatedRecord", err)
	}
}

func TestScanFileTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.0")
	writeFile(t, path, []Record{
		{Kind: KindBlockBegin, Name: []byte("a")},
		{Kind: KindValue, Name: []byte("x"), Value: []byte("1")},
	})
	// simulate a crash mid-write
	full, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.WriteFile(path, full[:len(full)-3], 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	st, err := ScanFile(path, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !st.Truncated {
		t.Fatalf("truncation not reported")
	}
	if st.Records != 1 {
		t.Fatalf("%d complete records, want 1", st.Records)
	}
}

func TestVerifyFileBalanced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.0")
	writeFile(t, path, []Record{
		{Kind: KindBlockBegin, Name: []byte("a")},
		{Kind: KindBlockBegin, Name: []byte("b")},
		{Kind: KindValue, Name: []byte("x"), Value: []byte("1")},
		{Kind: KindBlockEnd},
		{Kind: KindBlockEnd},
	})
	vs, err := VerifyFile(path)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if vs.Records != 5 || vs.Begins != 2 || vs.Ends != 2 || vs.Values != 1 {
		t.Fatalf("unexpected stats: %+v", vs)
	}
	if vs.MaxDepth != 2 || vs.OpenAtEnd != 0 {
		t.Fatalf("depth stats: %+v", vs)
	}
}

func TestVerifyFileUnbalancedEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.0")
	writeFile(t, path, []Record{
		{Kind: KindValue, Name: []byte("x"), Value: []byte("1")},
		{Kind: KindBlockEnd},
	})
	if _, err := VerifyFile(path); !errors.Is(err, ErrUnbalancedBlock) {
		t.Fatalf("got %v, want ErrUnbalancedBlock", err)
	}
}

func TestSessionFilesReplayToEmpty(t *testing.T) {
	// Every file a session produces, rotation or not, must replay to zero
	// open blocks once the session is closed.
	prefix := filepath.Join(t.TempDir(), "trace")
	s, err := Open(Options{Prefix: prefix, MaxFileSize: 48})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := s.SubmissionBegin(); err != nil {
			t.Fatalf("submission begin: %v", err)
		}
		if err := s.BeginBlock([]byte("batch"), nil); err != nil {
			t.Fatalf("begin: %v", err)
		}
		if err := s.Value([]byte("data"), bytes.Repeat([]byte("d"), 64)); err != nil {
			t.Fatalf("value: %v", err)
		}
		if err := s.EndBlock(); err != nil {
			t.Fatalf("end: %v", err)
		}
		if err := s.SubmissionEnd(); err != nil {
			t.Fatalf("submission end: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	files, err := ListFiles(prefix)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) < 2 {
		t.Fatalf("expected size rotation to produce multiple files, got %d", len(files))
	}
	for _, f := range files {
		vs, err := VerifyFile(f.Path)
		if err != nil {
			t.Fatalf("verify %s: %v", f.Path, err)
		}
		if vs.OpenAtEnd != 0 {
			t.Fatalf("%s replays to %d open blocks, want 0", f.Path, vs.OpenAtEnd)
		}
	}
}

func TestListFilesOrdersBySequence(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "trace")
	for _, seq := range []string{"10", "2", "0"} {
		writeFile(t, prefix+"."+seq, []Record{{Kind: KindValue}})
	}
	// noise that must be ignored
	writeFile(t, filepath.Join(dir, "other.0"), []Record{{Kind: KindValue}})
	touch(t, prefix+".notanumber")

	files, err := ListFiles(prefix)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("%d files, want 3", len(files))
	}
	for i, want := range []uint64{0, 2, 10} {
		if files[i].Seq != want {
			t.Fatalf("files[%d].Seq = %d, want %d", i, files[i].Seq, want)
		}
	}
}
