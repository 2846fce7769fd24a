package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lettucelabs/lettucectl/internal/controller"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenHome      Screen = "home"
	ScreenChat      Screen = "chat"
	ScreenSetup     Screen = "setup"
	ScreenCharacter Screen = "character"
	ScreenProviders Screen = "providers"
	ScreenSettings  Screen = "settings"
)

// Messages for screen transitions
type screenTransitionMsg struct {
	screen Screen
	data   interface{}
}

type goBackMsg struct{}
type quitMsg struct{}

// chatTarget carries the character a chat screen is opened for
type chatTarget struct {
	Slug string
	Name string
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen  Screen
	PreviousScreen Screen

	// Shared application state
	Gateway controller.Gateway
	Persona controller.Persona

	// Screen models
	HomeModel      HomeModel
	ChatModel      ChatModel
	SetupModel     SetupModel
	CharacterModel CharacterModel
	ProvidersModel ProvidersModel
	SettingsModel  SettingsModel

	// UI state
	Width  int
	Height int
}

// NewAppModel creates a new application model starting at the specified screen
func NewAppModel(gw controller.Gateway, persona controller.Persona, startScreen Screen) AppModel {
	model := AppModel{
		CurrentScreen: startScreen,
		Gateway:       gw,
		Persona:       persona,
	}

	// Initialize the starting screen
	switch startScreen {
	case ScreenHome:
		model.HomeModel = NewHomeModel(gw)
	case ScreenSetup:
		model.SetupModel = NewSetupModel(gw)
	case ScreenProviders:
		model.ProvidersModel = NewProvidersModel(gw)
	case ScreenSettings:
		model.SettingsModel = NewSettingsModel(gw)
	case ScreenCharacter:
		model.CharacterModel = NewCharacterModel(gw)
	}

	return model
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenHome:
		return m.HomeModel.Init()
	case ScreenSetup:
		return m.SetupModel.Init()
	case ScreenProviders:
		return m.ProvidersModel.Init()
	case ScreenSettings:
		return m.SettingsModel.Init()
	case ScreenCharacter:
		return m.CharacterModel.Init()
	default:
		return nil
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Propagate to all screens
		m.HomeModel.Width, m.HomeModel.Height = msg.Width, msg.Height
		m.ChatModel.setSize(msg.Width, msg.Height)
		m.SetupModel.Width, m.SetupModel.Height = msg.Width, msg.Height
		m.CharacterModel.Width, m.CharacterModel.Height = msg.Width, msg.Height
		m.ProvidersModel.Width, m.ProvidersModel.Height = msg.Width, msg.Height
		m.SettingsModel.Width, m.SettingsModel.Height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			m.closeCurrent()
			return m, tea.Quit
		}

	case screenTransitionMsg:
		return m.transitionTo(msg.screen, msg.data)

	case goBackMsg:
		return m.goBack()

	case quitMsg:
		m.closeCurrent()
		return m, tea.Quit
	}

	// Route to current screen
	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenHome:
		m.HomeModel, cmd = m.HomeModel.Update(msg)
	case ScreenChat:
		m.ChatModel, cmd = m.ChatModel.Update(msg)
	case ScreenSetup:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case ScreenCharacter:
		m.CharacterModel, cmd = m.CharacterModel.Update(msg)
	case ScreenProviders:
		m.ProvidersModel, cmd = m.ProvidersModel.Update(msg)
	case ScreenSettings:
		m.SettingsModel, cmd = m.SettingsModel.Update(msg)
	}

	return m, cmd
}

// transitionTo closes the current screen's controller and initializes
// the target screen with a fresh one
func (m AppModel) transitionTo(screen Screen, data interface{}) (tea.Model, tea.Cmd) {
	m.closeCurrent()
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen

	var cmd tea.Cmd

	switch screen {
	case ScreenHome:
		m.HomeModel = NewHomeModel(m.Gateway)
		m.HomeModel.Width, m.HomeModel.Height = m.Width, m.Height
		cmd = m.HomeModel.Init()

	case ScreenChat:
		target, _ := data.(chatTarget)
		m.ChatModel = NewChatModel(m.Gateway, target, m.Persona)
		m.ChatModel.setSize(m.Width, m.Height)
		cmd = m.ChatModel.Init()

	case ScreenSetup:
		m.SetupModel = NewSetupModel(m.Gateway)
		m.SetupModel.Width, m.SetupModel.Height = m.Width, m.Height
		cmd = m.SetupModel.Init()

	case ScreenCharacter:
		m.CharacterModel = NewCharacterModel(m.Gateway)
		m.CharacterModel.Width, m.CharacterModel.Height = m.Width, m.Height
		cmd = m.CharacterModel.Init()

	case ScreenProviders:
		m.ProvidersModel = NewProvidersModel(m.Gateway)
		m.ProvidersModel.Width, m.ProvidersModel.Height = m.Width, m.Height
		cmd = m.ProvidersModel.Init()

	case ScreenSettings:
		m.SettingsModel = NewSettingsModel(m.Gateway)
		m.SettingsModel.Width, m.SettingsModel.Height = m.Width, m.Height
		cmd = m.SettingsModel.Init()
	}

	return m, cmd
}

// closeCurrent tears down the active screen's controller so in-flight
// calls are discarded rather than applied to a replaced screen
func (m *AppModel) closeCurrent() {
	switch m.CurrentScreen {
	case ScreenHome:
		m.HomeModel.Close()
	case ScreenChat:
		m.ChatModel.Close()
	case ScreenSetup:
		m.SetupModel.Close()
	case ScreenCharacter:
		m.CharacterModel.Close()
	case ScreenProviders:
		m.ProvidersModel.Close()
	case ScreenSettings:
		m.SettingsModel.Close()
	}
}

// goBack returns to the home dashboard (or quits from home)
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	if m.CurrentScreen == ScreenHome {
		m.closeCurrent()
		return m, tea.Quit
	}
	return m.transitionTo(ScreenHome, nil)
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenHome:
		return m.HomeModel.View()
	case ScreenChat:
		return m.ChatModel.View()
	case ScreenSetup:
		return m.SetupModel.View()
	case ScreenCharacter:
		return m.CharacterModel.View()
	case ScreenProviders:
		return m.ProvidersModel.View()
	case ScreenSettings:
		return m.SettingsModel.View()
	default:
		return "Unknown screen"
	}
}

// transition builds a command that asks the coordinator to switch screens
func transition(screen Screen, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return screenTransitionMsg{screen: screen, data: data}
	}
}

// goHome builds a command that returns to the dashboard
func goHome() tea.Cmd {
	return func() tea.Msg { return goBackMsg{} }
}

// runOp executes a controller operation off the UI goroutine. State
// changes arrive through the screen's snapshot watcher, not through
// the returned message.
func runOp(op func()) tea.Cmd {
	return func() tea.Msg {
		op()
		return nil
	}
}
