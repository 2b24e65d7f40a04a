// Package controller switches between the four target forms and exposes one
// submit entry point for whichever is active.
package controller

import (
	"context"
	"sync"

	"github.com/brizzai/target-wizard/internal/form"
	"github.com/brizzai/target-wizard/internal/logger"
	"github.com/brizzai/target-wizard/internal/openapi"
	"github.com/brizzai/target-wizard/internal/target"
	"go.uber.org/zap"
)

// ErrUnknownType is returned when selecting a type that has no form
var ErrUnknownType = target.ErrUnknownType

// Controller owns the active type and one form per type. Forms are created
// once and keep their edits while another type is active.
type Controller struct {
	mu       sync.Mutex
	active   target.Type
	existing *target.Descriptor
	forms    map[target.Type]form.Form
}

// New creates the four forms in controller mode and seeds them from existing,
// which may be nil
func New(name string, onSubmit form.SubmitFunc, loader openapi.Loader, existing *target.Descriptor) *Controller {
	return NewWithForms(existing,
		form.NewSSEForm(name, onSubmit, form.WithHiddenSubmit()),
		form.NewStdioForm(name, onSubmit, form.WithHiddenSubmit()),
		form.NewOpenAPIForm(name, onSubmit, loader, form.WithHiddenSubmit()),
		form.NewStreamableHTTPForm(name, onSubmit, form.WithHiddenSubmit()),
	)
}

// NewWithForms builds a controller over the given forms, keyed by their type
func NewWithForms(existing *target.Descriptor, forms ...form.Form) *Controller {
	c := &Controller{
		active: target.InferType(existing),
		forms:  make(map[target.Type]form.Form, len(forms)),
	}
	for _, f := range forms {
		c.forms[f.Type()] = f
	}
	c.load(existing)
	return c
}

// Active returns the selected type
func (c *Controller) Active() target.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetActive selects a tab. The previous form is left untouched.
func (c *Controller) SetActive(t target.Type) error {
	if _, err := target.ParseType(string(t)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = t
	return nil
}

// Form returns the form for t, or nil
func (c *Controller) Form(t target.Type) form.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forms[t]
}

// ActiveForm returns the form of the selected type, or nil
func (c *Controller) ActiveForm() form.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forms[c.active]
}

// Reset re-seeds the forms when existing is a different target than the one
// last seen. The active type is inferred again, replacing any manual choice.
func (c *Controller) Reset(existing *target.Descriptor) {
	c.mu.Lock()
	if existing == c.existing || existing == nil {
		c.mu.Unlock()
		return
	}
	c.active = target.InferType(existing)
	c.mu.Unlock()

	logger.Debug("Re-seeding target forms",
		zap.String("name", existing.Name),
		zap.String("type", string(c.Active())),
	)
	c.load(existing)
}

func (c *Controller) load(existing *target.Descriptor) {
	c.mu.Lock()
	c.existing = existing
	c.mu.Unlock()

	for _, f := range c.all() {
		f.Load(existing)
	}
}

// SetName updates the target name on every form
func (c *Controller) SetName(name string) {
	for _, f := range c.all() {
		f.SetName(name)
	}
}

// SetListeners updates the listener selection on every form
func (c *Controller) SetListeners(listeners []string) {
	for _, f := range c.all() {
		f.SetListeners(listeners)
	}
}

func (c *Controller) all() []form.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	forms := make([]form.Form, 0, len(c.forms))
	for _, t := range target.Types {
		if f, ok := c.forms[t]; ok {
			forms = append(forms, f)
		}
	}
	return forms
}

// SubmitForm submits the active form and returns its result unchanged. It is
// a no-op when the active type has no form.
func (c *Controller) SubmitForm(ctx context.Context) error {
	f := c.ActiveForm()
	if f == nil {
		return nil
	}
	return f.SubmitForm(ctx)
}

var _ form.Submittable = (*Controller)(nil)
