package tui

import (
	"github.com/brizzai/target-wizard/internal/tui/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// listenerKeyMap holds key bindings for the listener picker.
type listenerKeyMap struct {
	next key.Binding
	quit key.Binding
}

// ListenersChosenMsg is sent when the user leaves the picker
type ListenersChosenMsg struct {
	Listeners []string
}

func newListenerKeyMap() *listenerKeyMap {
	return &listenerKeyMap{
		next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Continue"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
	}
}

// ListenerPageModel lets the user attach the target to gateway listeners
type ListenerPageModel struct {
	list list.Model
	keys *listenerKeyMap
}

// NewListenerPageModel creates the picker. Names in preselected start
// attached, and are added to the list if the gateway did not report them.
func NewListenerPageModel(available []models.ListenerItem, preselected []string) ListenerPageModel {
	listenerKeys := newListenerKeyMap()

	selected := make(map[string]bool, len(preselected))
	for _, name := range preselected {
		selected[name] = true
	}

	items := make([]list.Item, 0, len(available)+len(preselected))
	seen := make(map[string]bool, len(available))
	for _, l := range available {
		l.Selected = l.Selected || selected[l.Name]
		items = append(items, l)
		seen[l.Name] = true
	}
	for _, name := range preselected {
		if !seen[name] {
			items = append(items, models.ListenerItem{Name: name, Selected: true})
			seen[name] = true
		}
	}

	l := list.New(items, newItemDelegate(newDelegateKeyMap()), 0, 0)
	l.Title = titleStyle.Render("Attach to listeners")
	l.SetShowFilter(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			listenerKeys.next,
			listenerKeys.quit,
		}
	}
	return ListenerPageModel{list: l, keys: listenerKeys}
}

func (m ListenerPageModel) Init() tea.Cmd {
	return nil
}

func (m ListenerPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.next):
			listeners := m.Selected()
			return m, func() tea.Msg {
				return ListenersChosenMsg{Listeners: listeners}
			}
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ListenerPageModel) View() string {
	return docStyle.Render(m.list.View())
}

// Selected returns the attached listener names in list order
func (m ListenerPageModel) Selected() []string {
	var names []string
	for _, item := range m.list.Items() {
		if l, ok := item.(models.ListenerItem); ok && l.Selected {
			names = append(names, l.Name)
		}
	}
	return names
}
