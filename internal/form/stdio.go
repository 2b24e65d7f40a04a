package form

import (
	"context"
	"sort"
	"strings"

	"github.com/brizzai/target-wizard/internal/headers"
	"github.com/brizzai/target-wizard/internal/target"
)

// StdioForm edits a stdio target: a command, its arguments and environment.
// Environment entries reuse the header editor; on duplicate keys the last
// entry wins.
type StdioForm struct {
	base

	cmd  string
	args []string
	env  *headers.Editor
}

func NewStdioForm(name string, onSubmit SubmitFunc, opts ...Option) *StdioForm {
	f := &StdioForm{env: headers.NewEditor(nil)}
	f.init(target.TypeStdio, name, onSubmit, opts)
	return f
}

func (f *StdioForm) SetCommand(cmd string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cmd = cmd
}

func (f *StdioForm) Command() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cmd
}

func (f *StdioForm) SetArgs(args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.args = append([]string(nil), args...)
}

// SetArgsText sets one argument per non-blank line
func (f *StdioForm) SetArgsText(text string) {
	var args []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			args = append(args, line)
		}
	}
	f.SetArgs(args)
}

func (f *StdioForm) Args() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.args...)
}

func (f *StdioForm) SetPendingEnv(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.env.SetPendingKey(key)
	f.env.SetPendingValue(value)
}

func (f *StdioForm) PendingEnv() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.env.Pending()
}

func (f *StdioForm) AddEnv() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.env.Add()
}

func (f *StdioForm) RemoveEnv(index int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.env.Remove(index)
}

func (f *StdioForm) Env() []target.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.env.Entries()
}

// Load seeds listeners, and the command only when a stdio payload is present.
// Environment entries are listed in key order.
func (f *StdioForm) Load(existing *target.Descriptor) {
	if existing == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seed(existing)
	if existing.Stdio == nil {
		return
	}
	f.cmd = existing.Stdio.Cmd
	f.args = append([]string(nil), existing.Stdio.Args...)

	keys := make([]string, 0, len(existing.Stdio.Env))
	for k := range existing.Stdio.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]target.Header, 0, len(keys))
	for _, k := range keys {
		env = append(env, target.NewHeader(k, existing.Stdio.Env[k]))
	}
	f.env.Reset(env)
}

func (f *StdioForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSubmit(strings.TrimSpace(f.cmd))
}

func (f *StdioForm) PressSubmit(ctx context.Context) error {
	if !f.CanSubmit() {
		return ErrSubmitDisabled
	}
	return f.SubmitForm(ctx)
}

func (f *StdioForm) SubmitForm(ctx context.Context) error {
	return f.submit(ctx, f.build)
}

func (f *StdioForm) build() (target.Target, error) {
	cmd := strings.TrimSpace(f.cmd)
	if cmd == "" {
		return target.Target{}, ErrMissingCommand
	}

	stdio := target.StdioTarget{Cmd: cmd}
	if len(f.args) > 0 {
		stdio.Args = append([]string(nil), f.args...)
	}
	if entries := f.env.Entries(); len(entries) > 0 {
		stdio.Env = make(map[string]string, len(entries))
		for _, e := range entries {
			stdio.Env[e.Key] = e.Value.StringValue
		}
	}

	return target.Target{
		Name:      f.name,
		Listeners: append([]string{}, f.listeners...),
		Spec:      stdio,
	}, nil
}
