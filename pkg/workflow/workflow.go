// Package workflow drives the create-or-edit lifecycle for one catalog
// entity: it composes the form controller, the tag editor and the image
// staging pipeline, talks to the gateway, and tells the list view to
// re-fetch after every successful mutation.
package workflow

import (
	"context"
	"errors"
)

// State is the editor lifecycle. There is no cancellation of an in-flight
// submission; closing an editor mid-submit does not abort the request.
type State int

const (
	StateClosed State = iota
	StateCreating
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Confirm guards destructive operations. Delete asks it before touching the
// gateway.
type Confirm func(prompt string) bool

// ErrNotOpen is returned when a mutation is attempted without an open
// editor session.
var ErrNotOpen = errors.New("workflow: no open editor session")

// ErrDeclined is returned when the operator declines a confirmation prompt.
var ErrDeclined = errors.New("workflow: confirmation declined")

// notify invokes the refresh hook if one is set. The refreshed list is
// authoritative; nothing is patched in place.
func notify(onRefresh func(ctx context.Context)) func(context.Context) {
	if onRefresh == nil {
		return func(context.Context) {}
	}
	return onRefresh
}
