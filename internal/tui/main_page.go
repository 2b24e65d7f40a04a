package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MainPageKeyMap holds key bindings for the main page actions
type MainPageKeyMap struct {
	open key.Binding
	quit key.Binding
}

func newMainPageKeyMap() *MainPageKeyMap {
	return &MainPageKeyMap{
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Start"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("ctrl+c/q", "Quit"),
		),
	}
}

// Summary is what the landing page shows about the target being set up
type Summary struct {
	Name        string
	Updating    bool
	Type        string
	Destination string
	Listeners   []string
}

// MainPageModel represents the main landing page of the application
type MainPageModel struct {
	keys    *MainPageKeyMap
	width   int
	height  int
	summary Summary
}

// OpenListenersMsg is sent when the user leaves the landing page
type OpenListenersMsg struct{}

// NewMainPageModel creates a new main page model
func NewMainPageModel(summary Summary) MainPageModel {
	return MainPageModel{
		keys:    newMainPageKeyMap(),
		summary: summary,
	}
}

// Init initializes the model
func (m MainPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the main page
func (m MainPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.open):
			return m, func() tea.Msg {
				return OpenListenersMsg{}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the main page
func (m MainPageModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render("Gateway Target Setup")

	action := "create"
	if m.summary.Updating {
		action = "update"
	}

	descStyle := lipgloss.NewStyle().
		Padding(1, 0).
		Width(m.width - 4).
		Align(lipgloss.Center)

	description := descStyle.Render(
		fmt.Sprintf("This wizard will %s the target %q.\n", action, m.summary.Name) +
			"Pick the listeners it is attached to, then choose its transport:\n" +
			"SSE, stdio, OpenAPI or Streamable HTTP.",
	)

	summaryStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#f56a96")).
		Padding(1, 1).
		Width(m.width - 10).
		Align(lipgloss.Left)

	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("Type:        %s\n", m.summary.Type))
	summary.WriteString(fmt.Sprintf("Destination: %s\n", m.summary.Destination))
	if len(m.summary.Listeners) > 0 {
		summary.WriteString(fmt.Sprintf("Listeners:   %s", strings.Join(m.summary.Listeners, ", ")))
	} else {
		summary.WriteString("Listeners:   none selected")
	}

	instructionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f56a96")).
		Padding(1, 0).
		Width(m.width - 4).
		Align(lipgloss.Center)

	instruction := instructionStyle.Render("Press ENTER to start")

	help := helpStyle.
		Width(m.width - 4).
		Align(lipgloss.Center).
		Render("Press q or Ctrl+C to quit")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		description,
		"",
		summaryStyle.Render(summary.String()),
		"",
		instruction,
		"",
		help,
	)

	return docStyle.Render(content)
}

// pluralize returns the count followed by the noun, pluralized
func pluralize(count int, singular string) string {
	if count == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %ss", count, singular)
}
