package tui

import (
	"context"

	"github.com/brizzai/target-wizard/internal/controller"
	"github.com/brizzai/target-wizard/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the main application model that manages page switching
type AppModel struct {
	ctx  context.Context
	ctrl *controller.Controller

	mainPage     MainPageModel
	listenerPage ListenerPageModel
	targetPage   TargetPageModel
	submitView   SubmitView
	page         string // "main", "listeners", "target" or "submit"

	name     string
	updating bool
}

// NewAppModel creates the wizard over ctrl. ctx is passed to every submit.
func NewAppModel(ctx context.Context, ctrl *controller.Controller, listeners []models.ListenerItem, summary Summary) AppModel {
	summary.Type = ctrl.Active().DisplayName()
	return AppModel{
		ctx:          ctx,
		ctrl:         ctrl,
		mainPage:     NewMainPageModel(summary),
		listenerPage: NewListenerPageModel(listeners, summary.Listeners),
		targetPage:   NewTargetPageModel(ctrl),
		page:         "main",
		name:         summary.Name,
		updating:     summary.Updating,
	}
}

// Init initializes the AppModel
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.mainPage.Init(),
		m.listenerPage.Init(),
		m.targetPage.Init(),
	)
}

// Update handles app-level messages and delegates to the appropriate page model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case OpenListenersMsg:
		m.page = "listeners"
		return m, nil

	case ListenersChosenMsg:
		m.ctrl.SetListeners(msg.Listeners)
		m.page = "target"
		return m, nil

	case BackToListenersMsg:
		m.page = "listeners"
		return m, nil

	case SubmitRequestedMsg:
		m.page = "submit"
		m.submitView = NewSubmitView(m.name, m.updating)
		return m, tea.Batch(
			m.submitView.Init(),
			submitCmd(m.ctx, m.ctrl),
		)

	case BackToTargetMsg:
		m.page = "target"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && m.page == "listeners" {
			m.page = "main"
			return m, nil
		}

	case tea.WindowSizeMsg:
		var cmd tea.Cmd
		var tempModel tea.Model

		// Update all models with the window size
		tempModel, cmd = m.mainPage.Update(msg)
		m.mainPage = tempModel.(MainPageModel)
		cmds = append(cmds, cmd)

		tempModel, cmd = m.listenerPage.Update(msg)
		m.listenerPage = tempModel.(ListenerPageModel)
		cmds = append(cmds, cmd)

		tempModel, cmd = m.targetPage.Update(msg)
		m.targetPage = tempModel.(TargetPageModel)
		cmds = append(cmds, cmd)

		tempModel, cmd = m.submitView.Update(msg)
		m.submitView = tempModel.(SubmitView)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	// Delegate message to the active page
	var cmd tea.Cmd
	var tempModel tea.Model
	switch m.page {
	case "main":
		tempModel, cmd = m.mainPage.Update(msg)
		m.mainPage = tempModel.(MainPageModel)
	case "listeners":
		tempModel, cmd = m.listenerPage.Update(msg)
		m.listenerPage = tempModel.(ListenerPageModel)
	case "target":
		tempModel, cmd = m.targetPage.Update(msg)
		m.targetPage = tempModel.(TargetPageModel)
	case "submit":
		tempModel, cmd = m.submitView.Update(msg)
		m.submitView = tempModel.(SubmitView)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the active page
func (m AppModel) View() string {
	switch m.page {
	case "main":
		return m.mainPage.View()
	case "listeners":
		return m.listenerPage.View()
	case "submit":
		return m.submitView.View()
	default: // target
		return m.targetPage.View()
	}
}

// IsFinished reports whether the target was submitted successfully
func (m AppModel) IsFinished() bool {
	return m.submitView.Success
}

// Err returns the error of the last failed submit, if any
func (m AppModel) Err() error {
	return m.submitView.Err()
}
