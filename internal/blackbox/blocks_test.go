package blackbox

import (
	"errors"
	"testing"
)

func TestBlockStackPushPop(t *testing.T) {
	var s BlockStack
	s.Push([]byte("outer"), nil)
	s.Push([]byte("inner"), []byte("v"))
	if s.Depth() != 2 {
		t.Fatalf("depth %d, want 2", s.Depth())
	}
	if err := s.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	if err := s.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	if s.Depth() != 0 {
		t.Fatalf("depth %d after popping all, want 0", s.Depth())
	}
}

func TestBlockStackPopEmpty(t *testing.T) {
	var s BlockStack
	if err := s.Pop(); !errors.Is(err, ErrUnbalancedBlock) {
		t.Fatalf("got %v, want ErrUnbalancedBlock", err)
	}
}

func TestBlockStackSnapshotOrder(t *testing.T) {
	var s BlockStack
	s.Push([]byte("a"), nil)
	s.Push([]byte("b"), nil)
	s.Push([]byte("c"), nil)
	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot length %d, want 3", len(snap))
	}
	for i, want := range []string{"a", "b", "c"} {
		if string(snap[i].Name) != want {
			t.Fatalf("snapshot[%d] = %q, want %q (outermost first)", i, snap[i].Name, want)
		}
	}
	// later stack changes must not affect the snapshot
	if err := s.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	if len(snap) != 3 || string(snap[2].Name) != "c" {
		t.Fatalf("snapshot mutated by later pop")
	}
}

func TestBlockStackCopiesBytes(t *testing.T) {
	var s BlockStack
	name := []byte("name")
	s.Push(name, nil)
	name[0] = 'X'
	if string(s.Snapshot()[0].Name) != "name" {
		t.Fatalf("stack aliases caller bytes")
	}
}
