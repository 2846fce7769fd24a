package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lettucelabs/lettucectl/internal/controller"
	"github.com/lettucelabs/lettucectl/internal/store"
)

// settingsSnapshotMsg carries a fresh editor snapshot from the controller
type settingsSnapshotMsg struct {
	state store.SettingsState
}

// watchSettings waits for the next editor snapshot
func watchSettings(ch <-chan store.SettingsState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return settingsSnapshotMsg{state: state}
	}
}

// settingsSavedMsg reports the outcome of a save round-trip
type settingsSavedMsg struct {
	ok bool
}

// SettingsModel represents the engine settings editor screen
type SettingsModel struct {
	ctrl  *controller.Settings
	watch <-chan store.SettingsState
	stop  func()

	State store.SettingsState

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

// NewSettingsModel creates a settings editor with its own controller
func NewSettingsModel(gw controller.Gateway) SettingsModel {
	ctrl := controller.NewSettings(gw)
	ch, stop := ctrl.Watch()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := SettingsModel{
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
func (m SettingsModel) Init() tea.Cmd {
	return tea.Batch(
		runOp(m.ctrl.Load),
		watchSettings(m.watch),
		m.Spinner.Tick,
	)
}

// Close tears down the editor controller
func (m SettingsModel) Close() {
	if m.stop != nil {
		m.stop()
	}
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}

// Update handles messages and updates the model
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSnapshotMsg:
		m.State = msg.state
		m.rebuildRows()
		return m, watchSettings(m.watch)

	case settingsSavedMsg:
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
func (m SettingsModel) updateKeys(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	if m.Editor.Editing {
		switch msg.String() {
		case "esc":
			m.Editor.CancelEditing()
			return m, nil
		case "enter":
			row := m.currentRow()
			value := m.Editor.CommitEditing()
			values := applySettingsEdit(m.State.Values, row.attr, value)
			return m, runOp(func() { m.ctrl.Update(values) })
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

	case "enter":
		row := m.currentRow()

		switch m.Editor.Current().Kind {
		case fieldToggle:
			values := toggleSetting(m.State.Values, row.attr)
			return m, runOp(func() { m.ctrl.Update(values) })

		case fieldText:
			m.Editor.StartEditing()
			return m, nil
		}

		if row.attr == "save" && !m.State.Saving {
			return m, func() tea.Msg {
				return settingsSavedMsg{ok: m.ctrl.Save()}
			}
		}
	}

	return m, nil
}

// currentRow returns the descriptor for the focused form row
func (m SettingsModel) currentRow() setupRow {
	if m.Editor.Cursor < 0 || m.Editor.Cursor >= len(m.Rows) {
		return setupRow{}
	}
	return m.Rows[m.Editor.Cursor]
}

// rebuildRows regenerates the form from the current snapshot
func (m *SettingsModel) rebuildRows() {
	fields, rows := buildSettingsRows(m.State.Values, "Apply changes")
	m.Editor.SetFields(fields)
	m.Rows = rows
}

// View renders the settings editor
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Engine Settings"))
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
		b.WriteString(RenderSuccess("Settings applied"))
		b.WriteString("\n")
	}

	if m.State.Error != "" {
		b.WriteString("\n")
		b.WriteString(RenderError(m.State.Error))
		b.WriteString("\n")
	}

	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}
