package tui

import (
	"fmt"
	"strings"

	"github.com/brizzai/target-wizard/internal/controller"
	"github.com/brizzai/target-wizard/internal/form"
	"github.com/brizzai/target-wizard/internal/target"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// targetPageKeyMap holds key bindings for the target page
type targetPageKeyMap struct {
	nextType key.Binding
	prevType key.Binding
	submit   key.Binding
	inspect  key.Binding
	back     key.Binding
	save     key.Binding
	cancel   key.Binding
	quit     key.Binding
}

func newTargetPageKeyMap() *targetPageKeyMap {
	return &targetPageKeyMap{
		nextType: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Next type"),
		),
		prevType: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "Previous type"),
		),
		submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Submit"),
		),
		inspect: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Preview tools"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to listeners"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
		),
		cancel: key.NewBinding(
			key.WithKeys("ctrl+q"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
	}
}

// SubmitRequestedMsg asks the app to submit the active form
type SubmitRequestedMsg struct{}

// BackToListenersMsg returns to the listener picker
type BackToListenersMsg struct{}

// TargetPageModel shows one tab per transport type and the editor of the
// active one. Editors are built once so each keeps its own state.
type TargetPageModel struct {
	ctrl    *controller.Controller
	keys    *targetPageKeyMap
	editors map[target.Type]*formEditor

	editingArgs bool
	argsModal   ArgsEditorModal

	status string
	width  int
}

// NewTargetPageModel builds the editors over the controller's forms
func NewTargetPageModel(ctrl *controller.Controller) TargetPageModel {
	editors := make(map[target.Type]*formEditor, len(target.Types))
	for _, t := range target.Types {
		switch f := ctrl.Form(t).(type) {
		case *form.SSEForm:
			editors[t] = newRemoteEditor(f, "http://localhost:8080/sse")
		case *form.StreamableHTTPForm:
			editors[t] = newRemoteEditor(f, "http://localhost:8080/mcp")
		case *form.StdioForm:
			editors[t] = newStdioEditor(f)
		case *form.OpenAPIForm:
			editors[t] = newOpenAPIEditor(f)
		}
	}
	return TargetPageModel{
		ctrl:    ctrl,
		keys:    newTargetPageKeyMap(),
		editors: editors,
	}
}

func (m TargetPageModel) Init() tea.Cmd {
	return nil
}

func (m TargetPageModel) activeEditor() *formEditor {
	return m.editors[m.ctrl.Active()]
}

func (m TargetPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editingArgs {
		return m.handleArgsUpdate(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.back):
			return m, func() tea.Msg { return BackToListenersMsg{} }
		case key.Matches(msg, m.keys.nextType):
			return m, m.switchType(1)
		case key.Matches(msg, m.keys.prevType):
			return m, m.switchType(-1)
		case key.Matches(msg, m.keys.submit):
			m.status = ""
			return m, func() tea.Msg { return SubmitRequestedMsg{} }
		case key.Matches(msg, m.keys.inspect):
			m.status = m.inspect()
			return m, nil
		}
		if e := m.activeEditor(); e != nil {
			return m, e.Update(msg)
		}
		return m, nil

	case OpenArgsEditorMsg:
		m.editingArgs = true
		m.argsModal = NewArgsEditorModal(msg.Initial)
		return m, m.argsModal.Init()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	if e := m.activeEditor(); e != nil {
		return m, e.Tick(msg)
	}
	return m, nil
}

func (m TargetPageModel) handleArgsUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.save):
			m.editingArgs = false
			if f, ok := m.ctrl.Form(target.TypeStdio).(*form.StdioForm); ok {
				f.SetArgsText(m.argsModal.Value())
				m.status = statusMessageStyle(fmt.Sprintf("Saved %d arguments", len(f.Args())))
			}
			return m, nil
		case key.Matches(msg, m.keys.cancel):
			m.editingArgs = false
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.argsModal, cmd = m.argsModal.Update(msg)
	return m, cmd
}

func (m *TargetPageModel) switchType(step int) tea.Cmd {
	current := 0
	for i, t := range target.Types {
		if t == m.ctrl.Active() {
			current = i
		}
	}
	n := len(target.Types)
	next := target.Types[((current+step)%n+n)%n]
	if err := m.ctrl.SetActive(next); err != nil {
		m.status = errorMessageStyle(err.Error())
		return nil
	}
	m.status = ""
	if e := m.activeEditor(); e != nil {
		return e.setFocus(e.focus)
	}
	return nil
}

func (m TargetPageModel) inspect() string {
	f, ok := m.ctrl.ActiveForm().(*form.OpenAPIForm)
	if !ok {
		return statusMessageStyle("Tool preview is only available for OpenAPI targets")
	}
	doc, err := f.Inspect()
	if err != nil {
		return errorMessageStyle(fmt.Sprintf("Error loading schema: %v", err))
	}

	tools := doc.Tools()
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	const maxPreview = 5
	preview := names
	if len(preview) > maxPreview {
		preview = append(preview[:maxPreview:maxPreview], fmt.Sprintf("... and %d more", len(names)-maxPreview))
	}
	return completeMessageStyle(fmt.Sprintf("%s exposes %s: %s",
		doc.Title(), pluralize(len(tools), "tool"), strings.Join(preview, ", ")))
}

// SetStatus shows msg under the editor
func (m *TargetPageModel) SetStatus(msg string) {
	m.status = msg
}

func (m TargetPageModel) View() string {
	if m.editingArgs {
		return docStyle.Render(m.argsModal.View("Arguments"))
	}

	tabs := make([]string, 0, len(target.Types))
	for _, t := range target.Types {
		style := inactiveTabStyle
		if t == m.ctrl.Active() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.DisplayName()))
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Target Type"))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n\n")
	if e := m.activeEditor(); e != nil {
		sb.WriteString(e.View())
	}
	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n\n")
	}
	sb.WriteString(helpStyle.Render(
		"ctrl+n/ctrl+p switch type • tab next field • ctrl+s " + m.submitLabel() + " • esc back • ctrl+c quit",
	))
	return docStyle.Render(sb.String())
}

func (m TargetPageModel) submitLabel() string {
	if f := m.ctrl.ActiveForm(); f != nil {
		return strings.ToLower(f.SubmitLabel())
	}
	return "submit"
}
