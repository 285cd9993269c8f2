package inspect

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/krogueintel/batchbuffer-logger-all/internal/blackbox"
)

func writeTrace(t *testing.T) string {
	t.Helper()
	prefix := filepath.Join(t.TempDir(), "trace")
	s, err := blackbox.Open(blackbox.Options{Prefix: prefix})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SubmissionBegin(); err != nil {
		t.Fatalf("submission begin: %v", err)
	}
	if err := s.BeginBlock([]byte("frame"), []byte("f0")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.Value([]byte("draw"), []byte{0xde, 0xad, 0xbe, 0xef}); err != nil {
		t.Fatalf("value: %v", err)
	}
	if err := s.EndBlock(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := s.SubmissionEnd(); err != nil {
		t.Fatalf("submission end: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return prefix + ".0"
}

func TestDumpFileText(t *testing.T) {
	path := writeTrace(t)
	var buf bytes.Buffer
	if err := dumpFile(&buf, path, recordFilter{}, false, 2); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `name="frame"`) {
		t.Fatalf("missing block begin line: %q", out)
	}
	if !strings.Contains(out, "hex=dead") {
		t.Fatalf("missing hex preview: %q", out)
	}
	if strings.Contains(out, "truncated") {
		t.Fatalf("clean file reported truncated: %q", out)
	}
}

func TestDumpFileJSONFiltered(t *testing.T) {
	path := writeTrace(t)
	filter, err := newRecordFilter(`kind == "value"`)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	var buf bytes.Buffer
	if err := dumpFile(&buf, path, filter, true, 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one value record, got %d lines: %q", len(lines), buf.String())
	}
	var dr dumpRecord
	if err := json.Unmarshal([]byte(lines[0]), &dr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dr.Kind != "value" || dr.Name != "draw" || dr.Size != 4 {
		t.Fatalf("unexpected record: %+v", dr)
	}
}

func TestDumpFileTruncated(t *testing.T) {
	path := writeTrace(t)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.WriteFile(path, b[:len(b)-3], 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var buf bytes.Buffer
	if err := dumpFile(&buf, path, recordFilter{}, false, 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "truncated tail") {
		t.Fatalf("expected truncation footer: %q", buf.String())
	}
}
