package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// ArgsEditorModal is a textarea for stdio arguments, one per line
type ArgsEditorModal struct {
	textarea textarea.Model
}

// NewArgsEditorModal creates a focused modal holding initial
func NewArgsEditorModal(initial string) ArgsEditorModal {
	ta := textarea.New()
	ta.Placeholder = "-y\n@modelcontextprotocol/server-everything"
	ta.ShowLineNumbers = true
	ta.SetValue(initial)
	ta.Focus()
	return ArgsEditorModal{textarea: ta}
}

func (m ArgsEditorModal) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the modal. Saving and closing are handled by
// the page that owns it.
func (m ArgsEditorModal) Update(msg tea.Msg) (ArgsEditorModal, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			if m.textarea.Focused() {
				m.textarea.Blur()
			}
		default:
			if !m.textarea.Focused() {
				cmd = m.textarea.Focus()
				cmds = append(cmds, cmd)
			}
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// Value returns the current text
func (m ArgsEditorModal) Value() string {
	return m.textarea.Value()
}

func (m ArgsEditorModal) View(title string) string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		editHeaderStyle.Render(title),
		m.textarea.View(),
		"(ctrl+s to save, ctrl+q to cancel)",
	) + "\n\n"
}
