package tui

import (
	"fmt"
	"strings"

	"github.com/brizzai/target-wizard/internal/form"
	"github.com/brizzai/target-wizard/internal/target"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldKind int

const (
	textField fieldKind = iota
	toggleField
	listField
	areaField
)

// field is one focusable row of a form editor. Text fields push every change
// into the form through sync; the form stays the single owner of the value.
type field struct {
	kind  fieldKind
	label string

	input textinput.Model
	sync  func(value string)
	enter func() bool

	get func() bool
	set func(bool)

	items  func() []string
	remove func(int) bool
	cursor int

	value func() string
}

func newTextField(label, placeholder, value string, sync func(string)) *field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = 50
	ti.SetValue(value)
	return &field{kind: textField, label: label, input: ti, sync: sync}
}

// formEditorKeyMap holds the bindings shared by every form editor
type formEditorKeyMap struct {
	next   key.Binding
	prev   key.Binding
	toggle key.Binding
	up     key.Binding
	down   key.Binding
	remove key.Binding
}

func newFormEditorKeyMap() *formEditorKeyMap {
	return &formEditorKeyMap{
		next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		toggle: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter", "Toggle"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		remove: key.NewBinding(
			key.WithKeys("x", "backspace", "delete"),
			key.WithHelp("x", "Remove entry"),
		),
	}
}

// OpenArgsEditorMsg asks the target page to open the arguments editor
type OpenArgsEditorMsg struct {
	Initial string
}

// formEditor renders the fields of one form and routes keys to the focused
// one
type formEditor struct {
	typ    target.Type
	keys   *formEditorKeyMap
	fields []*field
	focus  int
}

func newFormEditor(typ target.Type, fields ...*field) *formEditor {
	e := &formEditor{typ: typ, keys: newFormEditorKeyMap(), fields: fields}
	e.setFocus(0)
	return e
}

func (e *formEditor) focused() *field {
	if len(e.fields) == 0 {
		return nil
	}
	return e.fields[e.focus]
}

func (e *formEditor) setFocus(i int) tea.Cmd {
	if len(e.fields) == 0 {
		return nil
	}
	if f := e.focused(); f.kind == textField {
		f.input.Blur()
	}
	e.focus = (i + len(e.fields)) % len(e.fields)
	if f := e.focused(); f.kind == textField {
		return f.input.Focus()
	}
	return nil
}

// Update handles a key for the focused field
func (e *formEditor) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, e.keys.next):
		return e.setFocus(e.focus + 1)
	case key.Matches(msg, e.keys.prev):
		return e.setFocus(e.focus - 1)
	}

	f := e.focused()
	if f == nil {
		return nil
	}

	switch f.kind {
	case textField:
		if msg.Type == tea.KeyEnter {
			if f.enter != nil {
				f.enter()
			}
			return nil
		}
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		f.sync(f.input.Value())
		return cmd

	case toggleField:
		if key.Matches(msg, e.keys.toggle) {
			f.set(!f.get())
		}

	case listField:
		n := len(f.items())
		switch {
		case key.Matches(msg, e.keys.up):
			if f.cursor > 0 {
				f.cursor--
			}
		case key.Matches(msg, e.keys.down):
			if f.cursor < n-1 {
				f.cursor++
			}
		case key.Matches(msg, e.keys.remove):
			f.remove(f.cursor)
			if f.cursor >= len(f.items()) && f.cursor > 0 {
				f.cursor--
			}
		}

	case areaField:
		if msg.Type == tea.KeyEnter {
			initial := f.value()
			return func() tea.Msg { return OpenArgsEditorMsg{Initial: initial} }
		}
	}
	return nil
}

// Tick forwards non-key messages, such as cursor blinks, to the focused input
func (e *formEditor) Tick(msg tea.Msg) tea.Cmd {
	f := e.focused()
	if f == nil || f.kind != textField {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// View renders every field, marking the focused one
func (e *formEditor) View() string {
	var sb strings.Builder
	for i, f := range e.fields {
		label := labelStyle.Render(f.label)
		if i == e.focus {
			label = focusedLabelStyle.Render("> " + f.label)
		}
		sb.WriteString(label)
		sb.WriteString("\n")

		switch f.kind {
		case textField:
			sb.WriteString(f.input.View())
		case toggleField:
			box := "[ ]"
			if f.get() {
				box = "[x]"
			}
			sb.WriteString(box)
		case listField:
			items := f.items()
			if len(items) == 0 {
				sb.WriteString(helpStyle.Render("(none)"))
			}
			for j, item := range items {
				marker := "  "
				if i == e.focus && j == f.cursor {
					marker = "> "
				}
				sb.WriteString(fmt.Sprintf("%s%s", marker, item))
				if j < len(items)-1 {
					sb.WriteString("\n")
				}
			}
		case areaField:
			v := f.value()
			if v == "" {
				v = helpStyle.Render("(none, enter to edit)")
			}
			sb.WriteString(strings.ReplaceAll(v, "\n", " "))
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// remoteEditable is the field set of SSE and Streamable HTTP forms
type remoteEditable interface {
	form.Form
	SetURL(string)
	URL() string
	SetPendingHeader(key, value string)
	AddHeader() bool
	RemoveHeader(int) bool
	Headers() []target.Header
	SetPassthroughAuth(bool)
	PassthroughAuth() bool
	SetInsecureSkipVerify(bool)
	InsecureSkipVerify() bool
}

func headerLines(headers []target.Header) []string {
	lines := make([]string, len(headers))
	for i, h := range headers {
		lines[i] = h.Key + ": " + h.Value.StringValue
	}
	return lines
}

// pairFields builds the key/value inputs and committed list of a header style
// editor. Enter on either input commits the pair.
func pairFields(label string, setPending func(k, v string), add func() bool, entries func() []target.Header, remove func(int) bool) []*field {
	keyField := newTextField(label+" key", "", "", nil)
	valueField := newTextField(label+" value", "", "", nil)

	push := func(string) { setPending(keyField.input.Value(), valueField.input.Value()) }
	commit := func() bool {
		if !add() {
			return false
		}
		keyField.input.SetValue("")
		valueField.input.SetValue("")
		return true
	}
	keyField.sync, valueField.sync = push, push
	keyField.enter, valueField.enter = commit, commit

	list := &field{
		kind:   listField,
		label:  label + "s",
		items:  func() []string { return headerLines(entries()) },
		remove: remove,
	}
	return []*field{keyField, valueField, list}
}

func newRemoteEditor(f remoteEditable, placeholder string) *formEditor {
	fields := []*field{newTextField("Server URL", placeholder, f.URL(), f.SetURL)}
	fields = append(fields, pairFields("Header", f.SetPendingHeader, f.AddHeader, f.Headers, f.RemoveHeader)...)
	fields = append(fields,
		&field{kind: toggleField, label: "Pass through authentication", get: f.PassthroughAuth, set: f.SetPassthroughAuth},
		&field{kind: toggleField, label: "Insecure skip verify", get: f.InsecureSkipVerify, set: f.SetInsecureSkipVerify},
	)
	return newFormEditor(f.Type(), fields...)
}

func newStdioEditor(f *form.StdioForm) *formEditor {
	fields := []*field{
		newTextField("Command", "npx", f.Command(), f.SetCommand),
		{
			kind:  areaField,
			label: "Arguments",
			value: func() string { return strings.Join(f.Args(), "\n") },
		},
	}
	fields = append(fields, pairFields("Environment variable", f.SetPendingEnv, f.AddEnv, f.Env, f.RemoveEnv)...)
	return newFormEditor(target.TypeStdio, fields...)
}

func newOpenAPIEditor(f *form.OpenAPIForm) *formEditor {
	return newFormEditor(target.TypeOpenAPI,
		newTextField("API URL", "http://localhost:8080", f.URL(), f.SetURL),
		newTextField("Schema file", "./openapi.yaml", f.SchemaFile(), f.SetSchemaFile),
	)
}
