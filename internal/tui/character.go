package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lettucelabs/lettucectl/internal/controller"
	"github.com/lettucelabs/lettucectl/internal/store"
	"github.com/lettucelabs/lettucectl/internal/wizard"
)

// characterSnapshotMsg carries a fresh wizard snapshot from the controller
type characterSnapshotMsg struct {
	state store.CharacterState
}

// watchCharacter waits for the next wizard snapshot
func watchCharacter(ch <-chan store.CharacterState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return characterSnapshotMsg{state: state}
	}
}

// characterCreatedMsg reports the outcome of the final create call
type characterCreatedMsg struct {
	ok bool
}

// characterKeyMap defines key bindings for the character wizard
type characterKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Next   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k characterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Next, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k characterKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Next, k.Back, k.Quit},
	}
}

// CharacterModel represents the character-creation wizard screen
type CharacterModel struct {
	ctrl  *controller.Character
	watch <-chan store.CharacterState
	stop  func()

	State store.CharacterState

	// Form state
	Editor fieldEditor
	Rows   []setupRow

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
	Help    help.Model
	Keys    characterKeyMap
}

// NewCharacterModel creates a character wizard with its own controller
func NewCharacterModel(gw controller.Gateway) CharacterModel {
	ctrl := controller.NewCharacter(gw)
	ch, stop := ctrl.Watch()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := characterKeyMap{
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
			key.WithHelp("enter", "edit/select"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next step"),
		),
		Back: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous step"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to dashboard"),
		),
	}

	m := CharacterModel{
		ctrl:    ctrl,
		watch:   ch,
		stop:    stop,
		State:   ctrl.State(),
		Editor:  newFieldEditor(),
		Spinner: s,
		Help:    help.New(),
		Keys:    keys,
	}
	m.rebuildRows()
	return m
}

// Init starts the snapshot watcher
func (m CharacterModel) Init() tea.Cmd {
	return tea.Batch(watchCharacter(m.watch), m.Spinner.Tick)
}

// Close tears down the wizard controller
func (m CharacterModel) Close() {
	if m.stop != nil {
		m.stop()
	}
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}

// Update handles messages and updates the model
func (m CharacterModel) Update(msg tea.Msg) (CharacterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case characterSnapshotMsg:
		m.State = msg.state
		m.rebuildRows()
		return m, watchCharacter(m.watch)

	case characterCreatedMsg:
		if msg.ok {
			return m, goHome()
		}
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
func (m CharacterModel) updateKeys(msg tea.KeyMsg) (CharacterModel, tea.Cmd) {
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

	switch msg.String() {
	case "esc":
		return m, goHome()

	case "up", "k":
		m.Editor.MoveUp()

	case "down", "j":
		m.Editor.MoveDown()

	case "tab":
		return m, runOp(m.ctrl.Next)

	case "shift+tab":
		return m, runOp(m.ctrl.Back)

	case "left", "right":
		row := m.currentRow()
		if row.attr == "backend" {
			draft := m.State.Draft
			draft.Backend = cycleChoice(append([]string{""}, providerIDs()...), draft.Backend, msg.String() == "right")
			return m, runOp(func() { m.ctrl.UpdateDraft(draft) })
		}

	case "enter":
		return m.activateRow()
	}

	return m, nil
}

// activateRow interprets enter on the focused row
func (m CharacterModel) activateRow() (CharacterModel, tea.Cmd) {
	row := m.currentRow()

	switch m.Editor.Current().Kind {
	case fieldToggle:
		if row.attr == "researchEnabled" {
			draft := m.State.Draft
			draft.ResearchEnabled = !draft.ResearchEnabled
			return m, runOp(func() { m.ctrl.UpdateDraft(draft) })
		}

	case fieldText, fieldSecret:
		m.Editor.StartEditing()
		return m, nil
	}

	switch row.attr {
	case "boost":
		if m.State.Boosting {
			return m, nil
		}
		return m, runOp(m.ctrl.Boost)

	case "blank":
		return m, runOp(m.ctrl.Next)

	case "edit-identity":
		return m, runOp(func() { m.ctrl.JumpTo(store.CharacterStepIdentity) })

	case "edit-personality":
		return m, runOp(func() { m.ctrl.JumpTo(store.CharacterStepPersonality) })

	case "edit-world":
		return m, runOp(func() { m.ctrl.JumpTo(store.CharacterStepWorld) })

	case "create":
		if m.State.Saving {
			return m, nil
		}
		return m, func() tea.Msg {
			return characterCreatedMsg{ok: m.ctrl.Create()}
		}
	}

	return m, nil
}

// commitEdit writes a finished inline edit back through the controller
func (m CharacterModel) commitEdit() (CharacterModel, tea.Cmd) {
	row := m.currentRow()
	value := m.Editor.CommitEditing()

	switch row.attr {
	case "boostSeed":
		return m, runOp(func() { m.ctrl.SetBoostSeed(value) })
	case "boostName":
		return m, runOp(func() { m.ctrl.SetBoostName(value) })
	case "boostEra":
		return m, runOp(func() { m.ctrl.SetBoostEra(value) })
	}

	draft := applyDraftEdit(m.State.Draft, row.attr, value)
	return m, runOp(func() { m.ctrl.UpdateDraft(draft) })
}

// currentRow returns the descriptor for the focused form row
func (m CharacterModel) currentRow() setupRow {
	if m.Editor.Cursor < 0 || m.Editor.Cursor >= len(m.Rows) {
		return setupRow{}
	}
	return m.Rows[m.Editor.Cursor]
}

// rebuildRows regenerates form rows for the current step and snapshot
func (m *CharacterModel) rebuildRows() {
	draft := m.State.Draft

	var fields []field
	var rows []setupRow

	add := func(f field, r setupRow) {
		fields = append(fields, f)
		rows = append(rows, r)
	}

	switch m.State.Step {
	case store.CharacterStepMode:
		add(field{Label: "Seed idea", Value: m.State.BoostSeed, Kind: fieldText}, setupRow{attr: "boostSeed"})
		add(field{Label: "Name (optional)", Value: m.State.BoostName, Kind: fieldText}, setupRow{attr: "boostName"})
		add(field{Label: "Era (optional)", Value: m.State.BoostEra, Kind: fieldText}, setupRow{attr: "boostEra"})
		add(field{Label: "Generate with AI", Kind: fieldAction}, setupRow{attr: "boost"})
		add(field{Label: "Start from a blank card", Kind: fieldAction}, setupRow{attr: "blank"})

	case store.CharacterStepIdentity:
		add(field{Label: "Name", Value: draft.Name, Kind: fieldText}, setupRow{attr: "name"})
		add(field{Label: "Era", Value: draft.Era, Kind: fieldText}, setupRow{attr: "era"})
		add(field{Label: "Setting", Value: draft.Setting, Kind: fieldText}, setupRow{attr: "setting"})
		add(field{Label: "Role", Value: draft.Role, Kind: fieldText}, setupRow{attr: "role"})
		add(field{Label: "Core identity", Value: draft.CoreIdentity, Kind: fieldText}, setupRow{attr: "coreIdentity"})
		add(field{Label: "Backstory", Value: draft.Backstory, Kind: fieldText}, setupRow{attr: "backstory"})

	case store.CharacterStepPersonality:
		add(field{Label: "Traits (comma-separated)", Value: joinList(draft.PersonalityTraits), Kind: fieldText}, setupRow{attr: "traits"})
		add(field{Label: "Formality", Value: draft.SpeechPatterns.Formality, Kind: fieldText}, setupRow{attr: "formality"})
		add(field{Label: "Verbosity", Value: draft.SpeechPatterns.Verbosity, Kind: fieldText}, setupRow{attr: "verbosity"})
		add(field{Label: "Text style", Value: draft.SpeechPatterns.TextStyle, Kind: fieldText}, setupRow{attr: "textStyle"})
		add(field{Label: "Catchphrases (comma-separated)", Value: joinList(draft.SpeechPatterns.Catchphrases), Kind: fieldText}, setupRow{attr: "catchphrases"})

	case store.CharacterStepWorld:
		add(field{Label: "Knowledge domains (comma-separated)", Value: joinList(draft.KnowledgeDomains), Kind: fieldText}, setupRow{attr: "domains"})
		add(field{Label: "Knowledge boundaries (comma-separated)", Value: joinList(draft.KnowledgeBoundaries), Kind: fieldText}, setupRow{attr: "boundaries"})
		add(field{Label: "Research seeds (comma-separated)", Value: joinList(draft.ResearchSeeds), Kind: fieldText}, setupRow{attr: "seeds"})
		add(field{Label: "Research", Value: FormatEnabled(draft.ResearchEnabled), Kind: fieldToggle}, setupRow{attr: "researchEnabled"})
		add(field{Label: "Physical description", Value: draft.PhysicalDescription, Kind: fieldText}, setupRow{attr: "physicalDescription"})

	case store.CharacterStepReview:
		add(field{Label: "Backend override", Value: draft.Backend, Kind: fieldChoice, Choices: providerIDs()}, setupRow{attr: "backend"})
		add(field{Label: "Model override", Value: draft.Model, Kind: fieldText}, setupRow{attr: "model"})
		add(field{Label: "Temperature", Value: formatFloat(draft.Temperature), Kind: fieldText}, setupRow{attr: "temperature"})
		add(field{Label: "Edit identity", Kind: fieldAction}, setupRow{attr: "edit-identity"})
		add(field{Label: "Edit personality", Kind: fieldAction}, setupRow{attr: "edit-personality"})
		add(field{Label: "Edit world knowledge", Kind: fieldAction}, setupRow{attr: "edit-world"})
		add(field{Label: "Create character", Kind: fieldAction}, setupRow{attr: "create"})
	}

	m.Editor.SetFields(fields)
	m.Rows = rows
}

// View renders the wizard step
func (m CharacterModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("New Character: " + stepTitle(m.State.Step)))
	b.WriteString("\n")

	if m.State.Step == store.CharacterStepMode {
		b.WriteString(RenderSubtitle("  Describe a character idea and let the engine flesh it out,"))
		b.WriteString("\n")
		b.WriteString(RenderSubtitle("  or start from a blank card."))
		b.WriteString("\n\n")
	}

	if m.State.Step == store.CharacterStepReview {
		b.WriteString(m.renderSummary())
		b.WriteString("\n")
	}

	b.WriteString(m.Editor.View())

	if m.State.Boosting {
		b.WriteString("\n")
		b.WriteString(SpinnerStyle.Render(fmt.Sprintf("%s Generating character...", m.Spinner.View())))
		b.WriteString("\n")
	}

	if m.State.Saving {
		b.WriteString("\n")
		b.WriteString(SpinnerStyle.Render(fmt.Sprintf("%s Creating character...", m.Spinner.View())))
		b.WriteString("\n")
	}

	if m.State.BoostError != "" {
		b.WriteString("\n")
		b.WriteString(RenderError(m.State.BoostError))
		b.WriteString("\n")
	}

	if m.State.Error != "" {
		b.WriteString("\n")
		b.WriteString(RenderError(m.State.Error))
		b.WriteString("\n")
	}

	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}

// renderSummary renders the assembled draft on the review step
func (m CharacterModel) renderSummary() string {
	draft := m.State.Draft

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  Name:    %s\n", draft.Name))
	if draft.Era != "" {
		b.WriteString(fmt.Sprintf("  Era:     %s\n", draft.Era))
	}
	if draft.Role != "" {
		b.WriteString(fmt.Sprintf("  Role:    %s\n", draft.Role))
	}
	if len(draft.PersonalityTraits) > 0 {
		b.WriteString(fmt.Sprintf("  Traits:  %s\n", joinList(draft.PersonalityTraits)))
	}
	if len(draft.KnowledgeDomains) > 0 {
		b.WriteString(fmt.Sprintf("  Knows:   %s\n", joinList(draft.KnowledgeDomains)))
	}
	if m.State.Boosted {
		b.WriteString(SubtitleStyle.Render("  (generated from your seed idea)"))
		b.WriteString("\n")
	}

	return RenderInfo(b.String())
}

// stepTitle maps a wizard step to its heading
func stepTitle(step wizard.Step) string {
	switch step {
	case store.CharacterStepMode:
		return "How to start"
	case store.CharacterStepIdentity:
		return "Identity"
	case store.CharacterStepPersonality:
		return "Personality"
	case store.CharacterStepWorld:
		return "World knowledge"
	case store.CharacterStepReview:
		return "Review"
	default:
		return string(step)
	}
}

// applyDraftEdit writes one edited value into the draft
func applyDraftEdit(draft store.CharacterDraft, attr, raw string) store.CharacterDraft {
	switch attr {
	case "name":
		draft.Name = raw
	case "era":
		draft.Era = raw
	case "setting":
		draft.Setting = raw
	case "role":
		draft.Role = raw
	case "coreIdentity":
		draft.CoreIdentity = raw
	case "backstory":
		draft.Backstory = raw
	case "traits":
		draft.PersonalityTraits = splitList(raw)
	case "formality":
		draft.SpeechPatterns.Formality = raw
	case "verbosity":
		draft.SpeechPatterns.Verbosity = raw
	case "textStyle":
		draft.SpeechPatterns.TextStyle = raw
	case "catchphrases":
		draft.SpeechPatterns.Catchphrases = splitList(raw)
	case "domains":
		draft.KnowledgeDomains = splitList(raw)
	case "boundaries":
		draft.KnowledgeBoundaries = splitList(raw)
	case "seeds":
		draft.ResearchSeeds = splitList(raw)
	case "physicalDescription":
		draft.PhysicalDescription = raw
	case "model":
		draft.Model = raw
	case "temperature":
		draft.Temperature = parseFloat(raw, draft.Temperature)
	}
	return draft
}

// splitList parses a comma-separated entry into trimmed items
func splitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// joinList renders a list for a comma-separated entry
func joinList(items []string) string {
	return strings.Join(items, ", ")
}
