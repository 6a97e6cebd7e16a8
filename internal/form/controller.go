// Package form manages one entity's editable draft through its
// lifecycle: idle -> editing -> validating -> valid | invalid. Drafts
// only reach the store through Submit, and only when the whole entity
// validates; there are no partial writes.
package form

import (
	"context"

	"kyri56xcaesar/teamdash/internal/schema"
	"kyri56xcaesar/teamdash/internal/store"
)

type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

type State string

const (
	StateIdle       State = "idle"
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateValid      State = "valid"
	StateInvalid    State = "invalid"

	// StateNotFound is terminal: the edit seed id does not exist and
	// the caller is expected to navigate away.
	StateNotFound State = "not_found"
)

// Hooks carries the entity-specific behavior of a controller. Each
// entity package provides its own set.
type Hooks[T any] struct {
	// Defaults seeds an add-mode draft.
	Defaults func() T
	// Validate runs whole-entity validation.
	Validate func(draft T, mode Mode) []schema.FieldError
	// CheckField validates a single field of the draft.
	CheckField func(draft T, field string, mode Mode) []schema.FieldError
	// Apply writes one field value into the draft. The entity id is
	// never applied this way; it is immutable after creation.
	Apply func(draft *T, field string, value any)
	// SetID stamps the id assigned on a successful add.
	SetID func(draft *T, id int)
}

type Controller[T store.Identifiable] struct {
	mode    Mode
	state   State
	draft   T
	touched bool
	errs    []schema.FieldError

	store store.Store[T]
	hooks Hooks[T]
}

func New[T store.Identifiable](s store.Store[T], h Hooks[T]) *Controller[T] {
	return &Controller[T]{state: StateIdle, store: s, hooks: h}
}

// Init starts a draft. Add mode seeds from type defaults; edit mode
// seeds from the entity with the given id, transitioning to the
// terminal not-found state when it does not exist.
func (c *Controller[T]) Init(ctx context.Context, mode Mode, id int) error {
	c.mode = mode
	c.touched = false
	c.errs = nil

	switch mode {
	case ModeEdit:
		items, err := c.store.Load(ctx)
		if err != nil {
			return err
		}
		seed, ok := store.FindByID(items, id)
		if !ok {
			c.state = StateNotFound

			return store.ErrNotFound
		}
		c.draft = seed
	default:
		c.draft = c.hooks.Defaults()
	}

	c.state = StateEditing
	return nil
}

// SetField updates one draft field. Once the form has been touched,
// field-level errors are refreshed on every change so messages update
// live rather than only on submit.
func (c *Controller[T]) SetField(field string, value any) {
	if c.state == StateIdle || c.state == StateNotFound {
		return
	}

	c.hooks.Apply(&c.draft, field, value)
	c.touched = true
	c.errs = replaceFieldErrors(c.errs, field, c.hooks.CheckField(c.draft, field, c.mode))
	c.state = StateEditing
}

// Submit validates the whole draft. On success the entity is committed
// to the collection (append with a fresh id in add mode, in-place
// replace by id in edit mode) and the collection is persisted. On
// validation failure the full error list is returned and nothing is
// written. Repeated submits of unchanged invalid data return the same
// errors; each successful add allocates a new id.
func (c *Controller[T]) Submit(ctx context.Context) (T, []schema.FieldError, error) {
	var zero T
	if c.state == StateIdle || c.state == StateNotFound {
		return zero, nil, store.ErrNotFound
	}

	c.state = StateValidating
	if errs := c.hooks.Validate(c.draft, c.mode); len(errs) > 0 {
		c.errs = errs
		c.state = StateInvalid

		return zero, errs, nil
	}

	items, err := c.store.Load(ctx)
	if err != nil {
		c.state = StateEditing

		return zero, nil, err
	}

	switch c.mode {
	case ModeEdit:
		replaced := false
		for i, it := range items {
			if it.EntityID() == c.draft.EntityID() {
				items[i] = c.draft
				replaced = true

				break
			}
		}
		if !replaced {
			c.state = StateNotFound

			return zero, nil, store.ErrNotFound
		}
	default:
		c.hooks.SetID(&c.draft, store.NextID(items))
		items = append(items, c.draft)
	}

	if err := c.store.Save(ctx, items); err != nil {
		// leave the draft intact so the user may retry
		c.state = StateEditing

		return zero, nil, err
	}

	c.state = StateValid
	c.errs = nil

	return c.draft, nil, nil
}

func (c *Controller[T]) Draft() T {
	return c.draft
}

func (c *Controller[T]) State() State {
	return c.state
}

func (c *Controller[T]) Errors() []schema.FieldError {
	return c.errs
}

func replaceFieldErrors(errs []schema.FieldError, field string, next []schema.FieldError) []schema.FieldError {
	out := make([]schema.FieldError, 0, len(errs)+len(next))
	for _, e := range errs {
		if e.Field != field {
			out = append(out, e)
		}
	}

	return append(out, next...)
}
