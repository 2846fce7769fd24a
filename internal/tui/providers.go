package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lettucelabs/lettucectl/internal/controller"
	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/store"
)

// providersSnapshotMsg carries a fresh editor snapshot from the controller
type providersSnapshotMsg struct {
	state store.ProvidersState
}

// watchProviders waits for the next editor snapshot
func watchProviders(ch <-chan store.ProvidersState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return providersSnapshotMsg{state: state}
	}
}

// editorKeyMap defines key bindings shared by both config editors
type editorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cycle  key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Cycle, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Cycle, k.Back},
	}
}

// newEditorKeyMap creates the shared editor key bindings
func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit/toggle"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "cycle"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ProvidersModel represents the provider configuration editor screen
type ProvidersModel struct {
	ctrl  *controller.Providers
	watch <-chan store.ProvidersState
	stop  func()

	State store.ProvidersState

	// Form state
	Editor fieldEditor
	Rows   []setupRow

	// Saved marks that the last save round-trip succeeded
	Saved bool

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
	Help    help.Model
	Keys    editorKeyMap
}

// providersSavedMsg reports the outcome of a save round-trip
type providersSavedMsg struct {
	ok bool
}

// NewProvidersModel creates a provider editor with its own controller
func NewProvidersModel(gw controller.Gateway) ProvidersModel {
	ctrl := controller.NewProviders(gw)
	ch, stop := ctrl.Watch()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := ProvidersModel{
		ctrl:    ctrl,
		watch:   ch,
		stop:    stop,
		State:   ctrl.State(),
		Editor:  newFieldEditor(),
		Spinner: s,
		Help:    help.New(),
		Keys:    newEditorKeyMap(),
	}
	m.rebuildRows()
	return m
}

// Init starts the config fetch and the snapshot watcher
func (m ProvidersModel) Init() tea.Cmd {
	return tea.Batch(
		runOp(m.ctrl.Load),
		watchProviders(m.watch),
		m.Spinner.Tick,
	)
}

// Close tears down the editor controller
func (m ProvidersModel) Close() {
	if m.stop != nil {
		m.stop()
	}
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}

// Update handles messages and updates the model
func (m ProvidersModel) Update(msg tea.Msg) (ProvidersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case providersSnapshotMsg:
		m.State = msg.state
		m.rebuildRows()
		return m, watchProviders(m.watch)

	case providersSavedMsg:
		m.Saved = msg.ok
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

// updateKeys handles keyboard input
func (m ProvidersModel) updateKeys(msg tea.KeyMsg) (ProvidersModel, tea.Cmd) {
	if m.Editor.Editing {
		switch msg.String() {
		case "esc":
			m.Editor.CancelEditing()
			return m, nil
		case "enter":
			return m.commitEdit()
		}
		cmd := m.Editor.Update(msg)
		return m, cmd
	}

	m.Saved = false

	switch msg.String() {
	case "esc":
		return m, goHome()

	case "up", "k":
		m.Editor.MoveUp()

	case "down", "j":
		m.Editor.MoveDown()

	case "left", "right":
		if m.currentRow().attr == "default" {
			next := cycleChoice(providerIDs(), m.State.DefaultBackend, msg.String() == "right")
			return m, runOp(func() { m.ctrl.SetDefaultBackend(next) })
		}

	case "enter":
		return m.activateRow()
	}

	return m, nil
}

// activateRow interprets enter on the focused row
func (m ProvidersModel) activateRow() (ProvidersModel, tea.Cmd) {
	row := m.currentRow()

	switch m.Editor.Current().Kind {
	case fieldToggle:
		cfg := m.State.Providers[row.provider]
		cfg.Enabled = !cfg.Enabled
		id := row.provider
		return m, runOp(func() { m.ctrl.UpdateProvider(id, cfg) })

	case fieldText, fieldSecret:
		m.Editor.StartEditing()
		return m, nil
	}

	if row.attr == "save" && !m.State.Saving {
		return m, func() tea.Msg {
			return providersSavedMsg{ok: m.ctrl.Save()}
		}
	}

	return m, nil
}

// commitEdit writes a finished inline edit back through the controller
func (m ProvidersModel) commitEdit() (ProvidersModel, tea.Cmd) {
	row := m.currentRow()
	value := m.Editor.CommitEditing()

	cfg := m.State.Providers[row.provider]
	switch row.attr {
	case "model":
		cfg.Model = value
	case "key":
		cfg.APIKey = value
		cfg.APIKeyChanged = true
	case "baseurl":
		cfg.BaseURL = value
	}
	id := row.provider
	return m, runOp(func() { m.ctrl.UpdateProvider(id, cfg) })
}

// currentRow returns the descriptor for the focused form row
func (m ProvidersModel) currentRow() setupRow {
	if m.Editor.Cursor < 0 || m.Editor.Cursor >= len(m.Rows) {
		return setupRow{}
	}
	return m.Rows[m.Editor.Cursor]
}

// rebuildRows regenerates the form from the current snapshot
func (m *ProvidersModel) rebuildRows() {
	var fields []field
	var rows []setupRow

	fields = append(fields, field{
		Label:   "Default backend",
		Value:   m.State.DefaultBackend,
		Kind:    fieldChoice,
		Choices: providerIDs(),
	})
	rows = append(rows, setupRow{attr: "default"})

	for _, p := range engine.Providers {
		cfg := m.State.Providers[p.ID]

		status := FormatEnabled(cfg.Enabled)
		if cfg.Configured() {
			status += " (configured)"
		}
		fields = append(fields, field{Label: p.Name, Value: status, Kind: fieldToggle})
		rows = append(rows, setupRow{provider: p.ID, attr: "enabled"})

		if !cfg.Enabled {
			continue
		}

		fields = append(fields, field{Label: "  Model", Value: cfg.Model, Kind: fieldText})
		rows = append(rows, setupRow{provider: p.ID, attr: "model"})

		if p.RequiresKey {
			keyValue := cfg.APIKey
			if keyValue == "" {
				keyValue = cfg.APIKeyRedacted
			}
			fields = append(fields, field{Label: "  API key", Value: keyValue, Kind: fieldSecret})
			rows = append(rows, setupRow{provider: p.ID, attr: "key"})
		}

		if p.RequiresBaseURL {
			fields = append(fields, field{Label: "  Base URL", Value: cfg.BaseURL, Kind: fieldText})
			rows = append(rows, setupRow{provider: p.ID, attr: "baseurl"})
		}
	}

	fields = append(fields, field{Label: "Apply changes", Kind: fieldAction})
	rows = append(rows, setupRow{attr: "save"})

	m.Editor.SetFields(fields)
	m.Rows = rows
}

// View renders the provider editor
func (m ProvidersModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("LLM Providers"))
	b.WriteString("\n")

	if m.State.Loading {
		b.WriteString(SpinnerStyle.Render(fmt.Sprintf("%s Loading configuration...", m.Spinner.View())))
		b.WriteString("\n")
	} else {
		b.WriteString(m.Editor.View())
	}

	if m.State.Saving {
		b.WriteString("\n")
		b.WriteString(SpinnerStyle.Render(fmt.Sprintf("%s Applying...", m.Spinner.View())))
		b.WriteString("\n")
	}

	if m.Saved {
		b.WriteString("\n")
		b.WriteString(RenderSuccess("Provider configuration applied"))
		b.WriteString("\n")
	}

	if m.State.Error != "" {
		b.WriteString("\n")
		b.WriteString(RenderError(m.State.Error))
		b.WriteString("\n")
	}

	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}
