package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lettucelabs/lettucectl/internal/config"
	"github.com/lettucelabs/lettucectl/internal/controller"
	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/engineconfig"
	"github.com/lettucelabs/lettucectl/internal/store"
)

// setupSnapshotMsg carries a fresh wizard snapshot from the controller
type setupSnapshotMsg struct {
	state store.SetupState
}

// watchSetup waits for the next wizard snapshot
func watchSetup(ch <-chan store.SetupState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return setupSnapshotMsg{state: state}
	}
}

// setupRow identifies what a form row edits
type setupRow struct {
	provider string             // provider id for provider rows
	attr     string             // "default", "enabled", "model", "key", "baseurl", "import", "save"
	cred     *config.Credential // import rows only
}

// setupKeyMap defines key bindings for the setup wizard
type setupKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cycle  key.Binding
	Next   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k setupKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Cycle, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k setupKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Cycle},
		{k.Next, k.Back, k.Quit},
	}
}

// SetupModel represents the first-run setup wizard screen
type SetupModel struct {
	ctrl  *controller.Setup
	watch <-chan store.SetupState
	stop  func()

	State store.SetupState

	// Importable credentials from the local registry, resolved once
	Credentials []*config.Credential

	// Form state
	Editor fieldEditor
	Rows   []setupRow

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
	Help    help.Model
	Keys    setupKeyMap
}

// NewSetupModel creates a setup wizard screen with its own controller
func NewSetupModel(gw controller.Gateway) SetupModel {
	ctrl := controller.NewSetup(gw)
	ch, stop := ctrl.Watch()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := setupKeyMap{
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

	var creds []*config.Credential
	if registry, err := config.LoadRegistry(); err == nil {
		creds = registry.ImportableCredentials(engine.IsKnownProvider)
	}

	m := SetupModel{
		ctrl:        ctrl,
		watch:       ch,
		stop:        stop,
		State:       ctrl.State(),
		Credentials: creds,
		Editor:      newFieldEditor(),
		Spinner:     s,
		Help:        help.New(),
		Keys:        keys,
	}
	m.rebuildRows()
	return m
}

// Init starts the snapshot watcher
func (m SetupModel) Init() tea.Cmd {
	return tea.Batch(watchSetup(m.watch), m.Spinner.Tick)
}

// Close tears down the wizard controller
func (m SetupModel) Close() {
	if m.stop != nil {
		m.stop()
	}
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}

// Update handles messages and updates the model
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case setupSnapshotMsg:
		m.State = msg.state
		m.rebuildRows()
		return m, watchSetup(m.watch)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

// updateKeys routes keyboard input by wizard step
func (m SetupModel) updateKeys(msg tea.KeyMsg) (SetupModel, tea.Cmd) {
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
	}

	switch m.State.Step {
	case store.SetupStepWelcome:
		if msg.String() == "enter" {
			return m, runOp(m.ctrl.Next)
		}

	case store.SetupStepProviders, store.SetupStepSettings:
		return m.updateForm(msg)

	case store.SetupStepDone:
		if msg.String() == "enter" {
			return m, goHome()
		}
	}

	return m, nil
}

// updateForm handles form navigation on the providers and settings steps
func (m SetupModel) updateForm(msg tea.KeyMsg) (SetupModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.Editor.MoveUp()

	case "down", "j":
		m.Editor.MoveDown()

	case "shift+tab":
		return m, runOp(m.ctrl.Back)

	case "left", "right":
		row := m.currentRow()
		if row.attr == "default" {
			next := cycleChoice(providerIDs(), m.State.DefaultBackend, msg.String() == "right")
			return m, runOp(func() { m.ctrl.SetDefaultBackend(next) })
		}

	case "enter":
		return m.activateRow()
	}

	return m, nil
}

// activateRow interprets enter on the focused row
func (m SetupModel) activateRow() (SetupModel, tea.Cmd) {
	row := m.currentRow()

	switch m.Editor.Current().Kind {
	case fieldToggle:
		if row.attr == "enabled" {
			cfg := m.State.Providers[row.provider]
			cfg.Enabled = !cfg.Enabled
			id := row.provider
			return m, runOp(func() { m.ctrl.UpdateProvider(id, cfg) })
		}
		values := toggleSetting(m.State.Settings, row.attr)
		return m, runOp(func() { m.ctrl.UpdateSettings(values) })

	case fieldText, fieldSecret:
		m.Editor.StartEditing()
		return m, nil
	}

	switch row.attr {
	case "import":
		cred := row.cred
		return m, runOp(func() {
			m.ctrl.ImportCredential(cred.ProviderID, cred.APIKey, cred.BaseURL)
		})

	case "save":
		if m.State.Saving {
			return m, nil
		}
		if m.State.Step == store.SetupStepProviders {
			return m, runOp(func() { m.ctrl.SaveProviders() })
		}
		return m, runOp(func() { m.ctrl.SaveSettings() })
	}

	return m, nil
}

// commitEdit writes a finished inline edit back through the controller
func (m SetupModel) commitEdit() (SetupModel, tea.Cmd) {
	row := m.currentRow()
	value := m.Editor.CommitEditing()

	switch m.State.Step {
	case store.SetupStepProviders:
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

	case store.SetupStepSettings:
		values := applySettingsEdit(m.State.Settings, row.attr, value)
		return m, runOp(func() { m.ctrl.UpdateSettings(values) })
	}

	return m, nil
}

// currentRow returns the descriptor for the focused form row
func (m SetupModel) currentRow() setupRow {
	if m.Editor.Cursor < 0 || m.Editor.Cursor >= len(m.Rows) {
		return setupRow{}
	}
	return m.Rows[m.Editor.Cursor]
}

// rebuildRows regenerates form rows for the current step and snapshot
func (m *SetupModel) rebuildRows() {
	switch m.State.Step {
	case store.SetupStepProviders:
		fields, rows := m.buildProviderRows()
		m.Editor.SetFields(fields)
		m.Rows = rows
	case store.SetupStepSettings:
		fields, rows := buildSettingsRows(m.State.Settings, "Save and finish")
		m.Editor.SetFields(fields)
		m.Rows = rows
	default:
		m.Editor.SetFields(nil)
		m.Rows = nil
	}
}

// buildProviderRows builds the providers step: a default-backend
// selector, per-provider entries, credential imports and the save row
func (m *SetupModel) buildProviderRows() ([]field, []setupRow) {
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

		fields = append(fields, field{
			Label: p.Name,
			Value: FormatEnabled(cfg.Enabled),
			Kind:  fieldToggle,
		})
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

	for _, cred := range m.Credentials {
		label := cred.Label
		if label == "" {
			label = cred.ProviderID
		}
		fields = append(fields, field{
			Label: fmt.Sprintf("Import key from %s (%s)", label, cred.ProviderID),
			Kind:  fieldAction,
		})
		rows = append(rows, setupRow{attr: "import", cred: cred})
	}

	fields = append(fields, field{Label: "Save and continue", Kind: fieldAction})
	rows = append(rows, setupRow{attr: "save"})

	return fields, rows
}

// View renders the wizard step
func (m SetupModel) View() string {
	var b strings.Builder

	switch m.State.Step {
	case store.SetupStepWelcome:
		b.WriteString(RenderTitle("Engine Setup"))
		b.WriteString("\n")
		b.WriteString(RenderInfo("This wizard configures your engine for first use:\n\n" +
			"  1. Enable at least one LLM provider and pick a default\n" +
			"  2. Review engine, background and memory settings\n\n" +
			"API keys are sent straight to your engine and never stored remotely\n" +
			"anywhere else."))
		b.WriteString("\n")
		b.WriteString(MenuItemStyle.Render("Press enter to begin"))
		b.WriteString("\n")

	case store.SetupStepProviders:
		b.WriteString(RenderTitle("Step 1 of 2: LLM Providers"))
		b.WriteString("\n")
		b.WriteString(m.Editor.View())

	case store.SetupStepSettings:
		b.WriteString(RenderTitle("Step 2 of 2: Engine Settings"))
		b.WriteString("\n")
		b.WriteString(m.Editor.View())

	case store.SetupStepDone:
		b.WriteString(RenderSuccess("Setup complete. Your engine is ready."))
		b.WriteString("\n\n")
		b.WriteString(MenuItemStyle.Render("Press enter to go to the dashboard"))
		b.WriteString("\n")
	}

	if m.State.Saving {
		b.WriteString("\n")
		b.WriteString(SpinnerStyle.Render(fmt.Sprintf("%s Saving...", m.Spinner.View())))
		b.WriteString("\n")
	}

	if m.State.Error != "" {
		b.WriteString("\n")
		b.WriteString(RenderError(m.State.Error))
		b.WriteString("\n")
	}

	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}

// providerIDs returns the fixed provider id order for choice rows
func providerIDs() []string {
	ids := make([]string, len(engine.Providers))
	for i, p := range engine.Providers {
		ids[i] = p.ID
	}
	return ids
}

// buildSettingsRows builds the flat settings form shared by the setup
// wizard and the settings editor
func buildSettingsRows(values engineconfig.Settings, saveLabel string) ([]field, []setupRow) {
	entries := []struct {
		label string
		attr  string
		value string
	}{
		{"Data directory", "dataDir", values.DataDir},
		{"Log level", "logLevel", values.LogLevel},
		{"Max history turns", "maxHistory", strconv.Itoa(values.MaxHistory)},
		{"Synthesis interval (min)", "synthesisInterval", strconv.Itoa(values.SynthesisInterval)},
		{"Consolidation interval (min)", "consolidationInterval", strconv.Itoa(values.ConsolidationInterval)},
		{"BM25 rebuild interval (min)", "bm25RebuildInterval", strconv.Itoa(values.BM25RebuildInterval)},
		{"Drip research interval (min)", "dripResearchInterval", strconv.Itoa(values.DripResearchInterval)},
		{"Embedding model", "embeddingModel", values.EmbeddingModel},
		{"Max retrieval results", "maxRetrievalResults", strconv.Itoa(values.MaxRetrievalResults)},
		{"Dense weight", "denseWeight", formatFloat(values.DenseWeight)},
		{"BM25 weight", "bm25Weight", formatFloat(values.BM25Weight)},
		{"Graph weight", "graphWeight", formatFloat(values.GraphWeight)},
		{"Recency boost (hours)", "recencyBoostHours", formatFloat(values.RecencyBoostHours)},
		{"Random surface probability", "randomSurfaceProbability", formatFloat(values.RandomSurfaceProbability)},
		{"Honesty section", "honestySection", FormatEnabled(values.HonestySection)},
		{"User data deletion", "userDataDeletion", FormatEnabled(values.UserDataDeletion)},
		{"Scrape on boot", "initialScrapeOnBoot", FormatEnabled(values.InitialScrapeOnBoot)},
		{"Periodic research interval (h)", "periodicIntervalHours", strconv.Itoa(values.PeriodicIntervalHours)},
	}

	var fields []field
	var rows []setupRow
	for _, e := range entries {
		kind := fieldText
		if e.value == "Enabled" || e.value == "Disabled" {
			kind = fieldToggle
		}
		fields = append(fields, field{Label: e.label, Value: e.value, Kind: kind})
		rows = append(rows, setupRow{attr: e.attr})
	}

	fields = append(fields, field{Label: saveLabel, Kind: fieldAction})
	rows = append(rows, setupRow{attr: "save"})

	return fields, rows
}

// applySettingsEdit writes one edited value into the settings record.
// Numeric fields keep their previous value when the input fails to
// parse.
func applySettingsEdit(values engineconfig.Settings, attr, raw string) engineconfig.Settings {
	switch attr {
	case "dataDir":
		values.DataDir = raw
	case "logLevel":
		values.LogLevel = strings.ToUpper(strings.TrimSpace(raw))
	case "maxHistory":
		values.MaxHistory = parseInt(raw, values.MaxHistory)
	case "synthesisInterval":
		values.SynthesisInterval = parseInt(raw, values.SynthesisInterval)
	case "consolidationInterval":
		values.ConsolidationInterval = parseInt(raw, values.ConsolidationInterval)
	case "bm25RebuildInterval":
		values.BM25RebuildInterval = parseInt(raw, values.BM25RebuildInterval)
	case "dripResearchInterval":
		values.DripResearchInterval = parseInt(raw, values.DripResearchInterval)
	case "embeddingModel":
		values.EmbeddingModel = raw
	case "maxRetrievalResults":
		values.MaxRetrievalResults = parseInt(raw, values.MaxRetrievalResults)
	case "denseWeight":
		values.DenseWeight = parseFloat(raw, values.DenseWeight)
	case "bm25Weight":
		values.BM25Weight = parseFloat(raw, values.BM25Weight)
	case "graphWeight":
		values.GraphWeight = parseFloat(raw, values.GraphWeight)
	case "recencyBoostHours":
		values.RecencyBoostHours = parseFloat(raw, values.RecencyBoostHours)
	case "randomSurfaceProbability":
		values.RandomSurfaceProbability = parseFloat(raw, values.RandomSurfaceProbability)
	case "periodicIntervalHours":
		values.PeriodicIntervalHours = parseInt(raw, values.PeriodicIntervalHours)
	}
	return values
}

// toggleSetting flips one boolean settings field
func toggleSetting(values engineconfig.Settings, attr string) engineconfig.Settings {
	switch attr {
	case "honestySection":
		values.HonestySection = !values.HonestySection
	case "userDataDeletion":
		values.UserDataDeletion = !values.UserDataDeletion
	case "initialScrapeOnBoot":
		values.InitialScrapeOnBoot = !values.InitialScrapeOnBoot
	}
	return values
}

func parseInt(raw string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return n
	}
	return fallback
}

func parseFloat(raw string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return f
	}
	return fallback
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
