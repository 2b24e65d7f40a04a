package models

import (
	"github.com/charmbracelet/lipgloss"
)

// ListenerItem wraps a gateway listener for display in the picker
// Implements list.Item
type ListenerItem struct {
	Name     string
	Protocol string
	Selected bool
}

func (i ListenerItem) Title() string {
	if i.Selected {
		return "[x] " + i.Name
	}
	return "[ ] " + i.Name
}

func (i ListenerItem) Description() string {
	if i.Selected {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56FF4E")).
			Render("Attached")
	}
	if i.Protocol != "" {
		return i.Protocol
	}
	return "Not attached"
}

func (i ListenerItem) ToggleSelected() ListenerItem {
	i.Selected = !i.Selected
	return i
}

func (i ListenerItem) FilterValue() string {
	return i.Name + " " + i.Protocol
}
