// Package tags implements the ordered tag editor backing a product's tags
// field. It owns no persistence; the parent owns the value and observes
// changes through a callback.
package tags

import "strings"

// Editor edits an ordered list of free-text labels plus one in-progress
// scratch input. Tags keep insertion order and duplicates are allowed.
type Editor struct {
	tags     []string
	scratch  string
	onChange func([]string)
}

// NewEditor wraps the current tag list. onChange receives a copy of the full
// list after every mutation; it may be nil.
func NewEditor(current []string, onChange func([]string)) *Editor {
	e := &Editor{onChange: onChange}
	e.tags = append(e.tags, current...)
	return e
}

func (e *Editor) Tags() []string {
	out := make([]string, len(e.tags))
	copy(out, e.tags)
	return out
}

func (e *Editor) Scratch() string {
	return e.scratch
}

func (e *Editor) SetScratch(s string) {
	e.scratch = s
}

// Commit appends the trimmed scratch value and clears the scratch input.
// Blank-after-trim input is rejected silently and nothing changes.
func (e *Editor) Commit() bool {
	tag := strings.TrimSpace(e.scratch)
	if tag == "" {
		return false
	}
	e.tags = append(e.tags, tag)
	e.scratch = ""
	e.emit()
	return true
}

// PopLast removes the last tag. Called for backspace on an empty scratch
// input; a no-op when there are no tags.
func (e *Editor) PopLast() bool {
	if len(e.tags) == 0 {
		return false
	}
	e.tags = e.tags[:len(e.tags)-1]
	e.emit()
	return true
}

// Remove splices out the tag at index i, preserving the relative order of
// the rest. Out-of-range indexes are a no-op.
func (e *Editor) Remove(i int) bool {
	if i < 0 || i >= len(e.tags) {
		return false
	}
	e.tags = append(e.tags[:i], e.tags[i+1:]...)
	e.emit()
	return true
}

func (e *Editor) emit() {
	if e.onChange != nil {
		e.onChange(e.Tags())
	}
}
