package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brizzai/target-wizard/internal/form"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SubmitResultMsg carries the outcome of a submit
type SubmitResultMsg struct {
	Err error
}

// BackToTargetMsg returns to the target page after a failed submit
type BackToTargetMsg struct{}

// submitCmd runs the submit off the UI loop. ctx is cancelled when the
// program exits, which abandons a pending request.
func submitCmd(ctx context.Context, s form.Submittable) tea.Cmd {
	return func() tea.Msg {
		return SubmitResultMsg{Err: s.SubmitForm(ctx)}
	}
}

// SubmitView shows a pending submit and its outcome
type SubmitView struct {
	name     string
	updating bool
	spinner  spinner.Model
	pending  bool
	err      error
	width    int
	height   int
	status   string
	Success  bool
}

// NewSubmitView creates a view for a submit that has just started
func NewSubmitView(name string, updating bool) SubmitView {
	s := spinner.New()
	s.Spinner = spinner.Dot

	status := "Creating Target..."
	if updating {
		status = "Updating Target..."
	}
	return SubmitView{
		name:     name,
		updating: updating,
		spinner:  s,
		pending:  true,
		status:   status,
	}
}

func (m SubmitView) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SubmitView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.pending && !m.Success {
				return m, func() tea.Msg { return BackToTargetMsg{} }
			}
		}
		return m, nil

	case SubmitResultMsg:
		m.pending = false
		if msg.Err != nil {
			m.err = msg.Err
			m.status = errorMessageStyle(fmt.Sprintf("Error submitting target: %v", msg.Err))
			return m, nil
		}

		m.Success = true
		verb := "created"
		if m.updating {
			verb = "updated"
		}
		m.status = completeMessageStyle(fmt.Sprintf("Target %s %s", m.name, verb))
		// Wait for 1 second, then exit the application
		return m, tea.Tick(time.Second*1, func(time.Time) tea.Msg {
			return tea.Quit()
		})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.pending {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Err returns the error of a failed submit
func (m SubmitView) Err() error {
	return m.err
}

func (m SubmitView) View() string {
	var sb strings.Builder

	verticalPadding := (m.height - 6) / 2
	for i := 0; i < verticalPadding; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(centerText(titleStyle.Render("Submit Target"), m.width))
	sb.WriteString("\n\n")

	status := m.status
	if m.pending {
		status = m.spinner.View() + " " + status
	}
	sb.WriteString(centerText(status, m.width))
	sb.WriteString("\n\n")

	switch {
	case m.pending, m.Success:
	default:
		sb.WriteString(centerText("(esc) Back to target | (ctrl+c) Quit", m.width))
	}
	return sb.String()
}

// Helper function to center text horizontally
func centerText(text string, width int) string {
	if width <= len(text) {
		return text
	}

	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
