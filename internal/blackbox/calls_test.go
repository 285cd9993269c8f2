package blackbox

import (
	"path/filepath"
	"testing"
)

func TestCallReporterBracketsCalls(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "trace")
	s, err := Open(Options{Prefix: prefix})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r := NewCallReporter(s)
	for _, name := range []string{"glDrawArrays", "glFlush"} {
		if err := r.PreCall(name, name); err != nil {
			t.Fatalf("pre call: %v", err)
		}
		if err := s.Value([]byte("arg"), []byte("0")); err != nil {
			t.Fatalf("value: %v", err)
		}
		if err := r.PostCall(); err != nil {
			t.Fatalf("post call: %v", err)
		}
	}
	if r.Calls() != 2 {
		t.Fatalf("reported %d calls, want 2", r.Calls())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	vs, err := VerifyFile(prefix + ".0")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if vs.Begins != 2 || vs.Ends != 2 || vs.OpenAtEnd != 0 {
		t.Fatalf("unexpected structure: %+v", vs)
	}
}
