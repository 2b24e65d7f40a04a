// Package form holds the per-transport target editors. Each form owns its
// editable fields, builds a target from them and hands it to a SubmitFunc.
package form

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/brizzai/target-wizard/internal/logger"
	"github.com/brizzai/target-wizard/internal/target"
	"go.uber.org/zap"
)

var (
	// ErrSubmitDisabled is returned by PressSubmit while the submit button is
	// disabled
	ErrSubmitDisabled = errors.New("submit is disabled")
	// ErrMissingCommand is returned when a stdio target has no command
	ErrMissingCommand = errors.New("stdio target requires a command")
)

// Submittable is the single submit entry point shared by forms and the
// controller
type Submittable interface {
	SubmitForm(ctx context.Context) error
}

// SubmitFunc receives every target a form builds. Its error is returned from
// SubmitForm unchanged.
type SubmitFunc func(ctx context.Context, t target.Target) error

// State is the form lifecycle. There is no terminal success or error state;
// the form returns to Editing after every submit.
type State int

const (
	StateEditing State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "editing"
}

// Form is implemented by the four transport editors
type Form interface {
	Submittable

	Type() target.Type
	// Load seeds the form from an existing target. A nil descriptor is ignored.
	Load(existing *target.Descriptor)
	SetName(name string)
	SetListeners(listeners []string)
	Listeners() []string
	State() State
	// CanSubmit reports whether the default submit button is enabled
	CanSubmit() bool
	// PressSubmit is the default submit button: it enforces CanSubmit
	PressSubmit(ctx context.Context) error
	SubmitLabel() string
	SubmitHidden() bool
}

// Option configures a form
type Option func(*base)

// WithHiddenSubmit marks the form as driven by a controller, which renders
// no default submit button for it
func WithHiddenSubmit() Option {
	return func(b *base) {
		b.hideSubmit = true
	}
}

// base carries what every form shares: identity, listeners and the submit
// lifecycle
type base struct {
	mu sync.Mutex

	targetType target.Type
	name       string
	listeners  []string
	updating   bool
	hideSubmit bool

	onSubmit SubmitFunc
	inFlight atomic.Int32
}

func (b *base) init(t target.Type, name string, onSubmit SubmitFunc, opts []Option) {
	b.targetType = t
	b.name = name
	b.onSubmit = onSubmit
	for _, opt := range opts {
		opt(b)
	}
}

func (b *base) Type() target.Type {
	return b.targetType
}

func (b *base) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
}

func (b *base) Name() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.name
}

func (b *base) SetListeners(listeners []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append([]string(nil), listeners...)
}

func (b *base) Listeners() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.listeners...)
}

// seed applies the variant independent part of an existing target. Callers
// hold b.mu.
func (b *base) seed(existing *target.Descriptor) {
	b.updating = true
	b.listeners = append([]string(nil), existing.Listeners...)
}

func (b *base) State() State {
	if b.inFlight.Load() > 0 {
		return StateSubmitting
	}
	return StateEditing
}

func (b *base) SubmitHidden() bool {
	return b.hideSubmit
}

func (b *base) SubmitLabel() string {
	b.mu.Lock()
	updating := b.updating
	b.mu.Unlock()

	switch {
	case b.State() == StateSubmitting && updating:
		return "Updating Target..."
	case b.State() == StateSubmitting:
		return "Creating Target..."
	case updating:
		return "Update Target"
	default:
		return "Create Target"
	}
}

// canSubmit is the gate shared by every default submit button. Callers hold
// b.mu.
func (b *base) canSubmit(primaryField string) bool {
	return !b.hideSubmit &&
		primaryField != "" &&
		len(b.listeners) > 0 &&
		b.State() == StateEditing
}

// submit builds the target under the lock, then awaits onSubmit without it so
// fields stay editable. Overlapping calls are not serialized.
func (b *base) submit(ctx context.Context, build func() (target.Target, error)) error {
	b.mu.Lock()
	t, err := build()
	name := b.name
	b.mu.Unlock()

	if err != nil {
		logger.Error("Failed to build target",
			zap.String("name", name),
			zap.String("type", string(b.targetType)),
			zap.Error(err),
		)
		return err
	}

	b.inFlight.Add(1)
	defer b.inFlight.Add(-1)

	if err := b.onSubmit(ctx, t); err != nil {
		logger.Error("Failed to submit target",
			zap.String("name", t.Name),
			zap.String("type", string(t.Type())),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var (
	_ Form = (*SSEForm)(nil)
	_ Form = (*StdioForm)(nil)
	_ Form = (*OpenAPIForm)(nil)
	_ Form = (*StreamableHTTPForm)(nil)
)
