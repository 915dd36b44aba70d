package tags

import (
	"reflect"
	"testing"
)

func TestCommitKeepsInsertionOrder(t *testing.T) {
	e := NewEditor(nil, nil)
	for _, s := range []string{"kitchen", "ceramic", "kitchen"} {
		e.SetScratch(s)
		if !e.Commit() {
			t.Fatalf("commit of %q rejected", s)
		}
	}
	want := []string{"kitchen", "ceramic", "kitchen"}
	if got := e.Tags(); !reflect.DeepEqual(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	if e.Scratch() != "" {
		t.Fatalf("scratch not cleared after commit")
	}
}

func TestCommitTrimsAndRejectsBlank(t *testing.T) {
	e := NewEditor(nil, nil)
	e.SetScratch("  sale  ")
	e.Commit()
	if got := e.Tags(); len(got) != 1 || got[0] != "sale" {
		t.Fatalf("tags = %v, want [sale]", got)
	}
	for _, blank := range []string{"", "   ", "\t"} {
		e.SetScratch(blank)
		if e.Commit() {
			t.Fatalf("blank scratch %q was committed", blank)
		}
	}
	if got := e.Tags(); len(got) != 1 {
		t.Fatalf("blank input changed collection: %v", got)
	}
}

func TestPopLast(t *testing.T) {
	e := NewEditor([]string{"a", "b", "c"}, nil)
	if !e.PopLast() {
		t.Fatalf("expected pop to remove a tag")
	}
	if got := e.Tags(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("tags = %v, want [a b]", got)
	}
}

func TestPopLastOnEmptyIsNoop(t *testing.T) {
	e := NewEditor(nil, nil)
	if e.PopLast() {
		t.Fatalf("pop on empty collection reported a change")
	}
	if got := e.Tags(); len(got) != 0 {
		t.Fatalf("tags = %v, want empty", got)
	}
}

func TestRemoveByIndex(t *testing.T) {
	e := NewEditor([]string{"a", "b", "c", "b"}, nil)
	if !e.Remove(1) {
		t.Fatalf("expected removal at index 1")
	}
	if got := e.Tags(); !reflect.DeepEqual(got, []string{"a", "c", "b"}) {
		t.Fatalf("tags = %v, want [a c b]", got)
	}
	if e.Remove(7) || e.Remove(-1) {
		t.Fatalf("out of range removal reported a change")
	}
}

func TestOnChangeReceivesCopies(t *testing.T) {
	var seen [][]string
	e := NewEditor(nil, func(tags []string) {
		seen = append(seen, tags)
	})
	e.SetScratch("one")
	e.Commit()
	e.SetScratch("two")
	e.Commit()
	e.Remove(0)

	want := [][]string{
		{"one"},
		{"one", "two"},
		{"two"},
	}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("emitted sequences = %v, want %v", seen, want)
	}
	// mutating an emitted slice must not corrupt the editor
	seen[2][0] = "corrupted"
	if got := e.Tags(); got[0] != "two" {
		t.Fatalf("editor state shared with callback slice: %v", got)
	}
}
