package record

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/krogueintel/batchbuffer-logger-all/internal/blackbox"
	"github.com/krogueintel/batchbuffer-logger-all/internal/config"
	"github.com/krogueintel/batchbuffer-logger-all/pkg/log"
)

func TestRunScript(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "trace")
	s, err := blackbox.Open(blackbox.Options{Prefix: prefix})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	script := `
# one submission with a nested block
submit
begin frame 0
value draw abc
end
endsubmit
`
	if err := run(strings.NewReader(script), s); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	vs, err := blackbox.VerifyFile(prefix + ".0")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if vs.Begins != 1 || vs.Ends != 1 || vs.Values != 1 || vs.OpenAtEnd != 0 {
		t.Fatalf("unexpected structure: %+v", vs)
	}
}

func TestRunScriptUnknownDirective(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "trace")
	s, err := blackbox.Open(blackbox.Options{Prefix: prefix})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if err := run(strings.NewReader("bogus\n"), s); err == nil {
		t.Fatalf("expected error for unknown directive")
	}
}

func TestCommandRetentionMode(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "trace")
	cmd := New(config.Default(), log.NewNopLogger())
	cmd.SetArgs([]string{"--prefix", prefix, "--keep", "1"})
	script := strings.Repeat("submit\nvalue x 1\nendsubmit\n", 3)
	cmd.SetIn(strings.NewReader(script))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	files, err := blackbox.ListFiles(prefix)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 1 || files[0].Seq != 3 {
		t.Fatalf("expected only the last submission's file, got %v", files)
	}
}
