package logcore

import "testing"

func TestSavedBlockAppendAndString(t *testing.T) {
	b := NewSavedBlock(0)
	if cap(b.Tags) < initLogBlockSize {
		t.Errorf("NewSavedBlock(0) cap = %d, want at least %d", cap(b.Tags), initLogBlockSize)
	}
	if !b.Empty() {
		t.Fatalf("fresh block should be Empty()")
	}

	b.AppendString(3, "hello")
	b.Append(TagStringIdx, 3)
	b.Append(TagEnd, 0)

	if b.Empty() {
		t.Errorf("block with appended slots should not be Empty()")
	}
	s, ok := b.String(3)
	if !ok || s != "hello" {
		t.Errorf("String(3) = (%q, %v), want (\"hello\", true)", s, ok)
	}
	if len(b.Tags) != 2 || len(b.Data) != 2 {
		t.Errorf("len(Tags)=%d len(Data)=%d, want 2/2", len(b.Tags), len(b.Data))
	}
}

func TestSavedBlockAppendStringKeepsFirstWrite(t *testing.T) {
	b := NewSavedBlock(0)
	b.AppendString(1, "first")
	b.AppendString(1, "second")
	s, _ := b.String(1)
	if s != "first" {
		t.Errorf("String(1) = %q, want %q (first write wins)", s, "first")
	}
}
