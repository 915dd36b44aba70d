// Package form provides a generic form controller: field values, per-field
// errors and touched state bound to an injected validation contract and
// submit action. The same controller drives category and product editing.
package form

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Mode selects what happens to the session after a successful submit.
type Mode int

const (
	// Create resets values to the initial shape so the operator can keep
	// adding entities.
	Create Mode = iota
	// Edit closes the session; there is no further use for it.
	Edit
)

// ErrInvalid is returned by Submit when local validation fails. No network
// call has been made.
var ErrInvalid = errors.New("form: validation failed")

// Describe flattens a field error map into one readable line, for surfaces
// without per-field placement (the CLI).
func Describe(errs map[string]string) string {
	if len(errs) == 0 {
		return ""
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			parts = append(parts, errs[f])
			continue
		}
		parts = append(parts, f+" "+errs[f])
	}
	return strings.Join(parts, "; ")
}

// Validate maps a value to field-keyed error messages; an empty map means
// the value is valid.
type Validate[T any] func(T) map[string]string

// Action performs the remote write for a valid value.
type Action[T any] func(context.Context, T) error

// Controller owns one form session. Zero sessions or two sessions per open
// editor do not exist; the enclosing workflow creates a controller when the
// editor opens and drops it when the editor closes.
type Controller[T any] struct {
	mode     Mode
	fields   []string
	initial  func() T
	validate Validate[T]
	action   Action[T]

	values     T
	errors     map[string]string
	touched    map[string]bool
	submitting bool
	closed     bool
	failure    string
}

// New builds a controller. fields names every field the form can touch, used
// to mark everything touched on a submit attempt. initial produces the empty
// value shape; for edit sessions seed the returned controller with Seed.
func New[T any](mode Mode, fields []string, initial func() T, validate Validate[T], action Action[T]) *Controller[T] {
	c := &Controller[T]{
		mode:     mode,
		fields:   fields,
		initial:  initial,
		validate: validate,
		action:   action,
		touched:  make(map[string]bool),
	}
	c.values = initial()
	return c
}

// Seed replaces the current values without touching any field; used to open
// an edit session over an existing entity.
func (c *Controller[T]) Seed(values T) {
	c.values = values
	c.errors = nil
}

func (c *Controller[T]) Values() T {
	return c.values
}

// Apply mutates values and re-runs validation without touching any field.
// Used for programmatic syncs (staged images, tag lists) that should not by
// themselves surface an error banner.
func (c *Controller[T]) Apply(mutate func(*T)) {
	if c.closed {
		return
	}
	mutate(&c.values)
	c.errors = c.validate(c.values)
}

// SetField mutates one named field, marks it touched and re-runs validation.
func (c *Controller[T]) SetField(name string, mutate func(*T)) {
	if c.closed {
		return
	}
	mutate(&c.values)
	c.touched[name] = true
	c.errors = c.validate(c.values)
}

// FieldError reports the validation message for a field, but only once the
// operator has interacted with it (or a submit attempt touched everything).
func (c *Controller[T]) FieldError(name string) (string, bool) {
	if !c.touched[name] {
		return "", false
	}
	msg, ok := c.errors[name]
	return msg, ok && msg != ""
}

// Errors returns the current field error map.
func (c *Controller[T]) Errors() map[string]string {
	return c.errors
}

func (c *Controller[T]) Touched(name string) bool {
	return c.touched[name]
}

func (c *Controller[T]) Submitting() bool {
	return c.submitting
}

func (c *Controller[T]) Closed() bool {
	return c.closed
}

// Failure is the session-level error from the last failed submit, cleared by
// the next successful one.
func (c *Controller[T]) Failure() string {
	return c.failure
}

// BeginSubmit marks every field touched, validates, and moves the session
// into the submitting state, returning a snapshot of the values to act on.
// A failed local validation returns ErrInvalid without entering the
// submitting state. The controller is not goroutine-safe: BeginSubmit and
// FinishSubmit must run on the goroutine that owns it, with only the action
// itself free to run elsewhere.
func (c *Controller[T]) BeginSubmit() (T, error) {
	var zero T
	if c.closed {
		return zero, errors.New("form: session closed")
	}
	for _, f := range c.fields {
		c.touched[f] = true
	}
	c.errors = c.validate(c.values)
	if len(c.errors) > 0 {
		return zero, ErrInvalid
	}
	c.submitting = true
	return c.values, nil
}

// FinishSubmit applies the action's outcome. On failure the values and
// touched state survive so the operator can retry without re-entering data.
func (c *Controller[T]) FinishSubmit(err error) {
	if !c.submitting {
		return
	}
	c.submitting = false
	if err != nil {
		c.failure = err.Error()
		return
	}
	c.failure = ""
	switch c.mode {
	case Create:
		c.values = c.initial()
		c.touched = make(map[string]bool)
		c.errors = nil
	case Edit:
		c.closed = true
	}
}

// Submit validates and, if clean, runs the submit action synchronously. A
// failed local validation aborts before any network call.
func (c *Controller[T]) Submit(ctx context.Context) error {
	values, err := c.BeginSubmit()
	if err != nil {
		return err
	}
	defer func() { c.submitting = false }()
	err = c.action(ctx, values)
	c.FinishSubmit(err)
	return err
}
