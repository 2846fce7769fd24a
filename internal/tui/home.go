package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lettucelabs/lettucectl/internal/controller"
	"github.com/lettucelabs/lettucectl/internal/store"
)

// homeSnapshotMsg carries a fresh dashboard snapshot from the controller
type homeSnapshotMsg struct {
	state store.HomeState
}

// watchHome waits for the next dashboard snapshot
func watchHome(ch <-chan store.HomeState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return homeSnapshotMsg{state: state}
	}
}

// homeKeyMap defines key bindings for the home dashboard
type homeKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Chat      key.Binding
	Toggle    key.Binding
	New       key.Binding
	Delete    key.Binding
	Refresh   key.Binding
	Setup     key.Binding
	Providers key.Binding
	Settings  key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k homeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Chat, k.Toggle, k.New, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k homeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Chat, k.Toggle},
		{k.New, k.Delete, k.Refresh},
		{k.Setup, k.Providers, k.Settings, k.Quit},
	}
}

// HomeModel represents the home dashboard screen state
type HomeModel struct {
	ctrl  *controller.Home
	watch <-chan store.HomeState
	stop  func()

	State  store.HomeState
	Cursor int

	// PendingDelete holds the slug awaiting a y/n confirmation
	PendingDelete string

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
	Help    help.Model
	Keys    homeKeyMap
}

// NewHomeModel creates a new dashboard model with its own controller
func NewHomeModel(gw controller.Gateway) HomeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	ctrl := controller.NewHome(gw)
	ch, stop := ctrl.Watch()

	keys := homeKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Chat: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "chat"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "l"),
			key.WithHelp("space", "load/unload"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new character"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Setup: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "setup wizard"),
		),
		Providers: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "providers"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	return HomeModel{
		ctrl:    ctrl,
		watch:   ch,
		stop:    stop,
		State:   ctrl.State(),
		Spinner: s,
		Help:    help.New(),
		Keys:    keys,
	}
}

// Init starts the dashboard load and the snapshot watcher
func (m HomeModel) Init() tea.Cmd {
	return tea.Batch(
		runOp(m.ctrl.Load),
		watchHome(m.watch),
		m.Spinner.Tick,
	)
}

// Close tears down the dashboard controller
func (m HomeModel) Close() {
	if m.stop != nil {
		m.stop()
	}
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}

// Update handles messages and updates the model
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeSnapshotMsg:
		m.State = msg.state
		if m.Cursor >= len(m.State.Characters) {
			m.Cursor = len(m.State.Characters) - 1
		}
		if m.Cursor < 0 {
			m.Cursor = 0
		}
		return m, watchHome(m.watch)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.PendingDelete != "" {
			return m.updateDeleteConfirm(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

// updateNormal handles keyboard input outside the delete confirmation
func (m HomeModel) updateNormal(msg tea.KeyMsg) (HomeModel, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, func() tea.Msg { return quitMsg{} }

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}

	case "down", "j":
		if m.Cursor < len(m.State.Characters)-1 {
			m.Cursor++
		}

	case "enter":
		if card, ok := m.selectedCard(); ok && card.Loaded {
			slug := card.Slug
			return m, tea.Batch(
				runOp(func() { m.ctrl.Select(slug) }),
				transition(ScreenChat, chatTarget{Slug: card.Slug, Name: card.Name}),
			)
		}

	case " ", "l":
		if card, ok := m.selectedCard(); ok {
			slug := card.Slug
			return m, runOp(func() { m.ctrl.Toggle(slug) })
		}

	case "d":
		if card, ok := m.selectedCard(); ok {
			m.PendingDelete = card.Slug
		}

	case "r":
		return m, runOp(m.ctrl.Load)

	case "n":
		return m, transition(ScreenCharacter, nil)

	case "w":
		return m, transition(ScreenSetup, nil)

	case "p":
		return m, transition(ScreenProviders, nil)

	case "s":
		return m, transition(ScreenSettings, nil)
	}

	return m, nil
}

// updateDeleteConfirm handles the y/n delete confirmation
func (m HomeModel) updateDeleteConfirm(msg tea.KeyMsg) (HomeModel, tea.Cmd) {
	slug := m.PendingDelete
	m.PendingDelete = ""

	if msg.String() == "y" {
		return m, runOp(func() { m.ctrl.Delete(slug) })
	}
	return m, nil
}

// selectedCard returns the card under the cursor
func (m HomeModel) selectedCard() (store.CharacterCard, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.State.Characters) {
		return store.CharacterCard{}, false
	}
	return m.State.Characters[m.Cursor], true
}

// View renders the dashboard
func (m HomeModel) View() string {
	var content string
	if m.State.Loading {
		content = m.renderLoading()
	} else {
		content = m.renderDashboard()
	}

	helpText := m.Help.View(m.Keys)
	if m.PendingDelete != "" {
		helpText = BuildFooterContent("y confirm delete • any other key cancel")
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderLoading renders the initial load indicator
func (m HomeModel) renderLoading() string {
	status := fmt.Sprintf("%s Connecting to engine...", m.Spinner.View())
	return "\n" + SpinnerStyle.Render(status) + "\n"
}

// renderDashboard renders connectivity, the roster and usage totals
func (m HomeModel) renderDashboard() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")

	if m.State.Error != "" {
		b.WriteString(RenderError(m.State.Error))
		b.WriteString("\n\n")
		b.WriteString(MenuItemStyle.Render("r - retry"))
		b.WriteString("\n")
		return b.String()
	}

	if m.State.NeedsSetup {
		b.WriteString(WarningBoxStyle.Render("⚠ Engine needs first-run setup. Press w to run the setup wizard."))
		b.WriteString("\n\n")
	}

	if len(m.State.Characters) == 0 {
		b.WriteString(RenderSubtitle("  No characters yet. Press n to create one."))
		b.WriteString("\n")
	} else {
		for i, card := range m.State.Characters {
			b.WriteString(m.renderCard(card, i == m.Cursor))
			b.WriteString("\n")
		}
	}

	if m.PendingDelete != "" {
		b.WriteString("\n")
		b.WriteString(WarningBoxStyle.Render(fmt.Sprintf("Delete character %q? This removes its memories on the engine.", m.PendingDelete)))
		b.WriteString("\n")
	}

	b.WriteString(m.renderUsage())

	return b.String()
}

// renderStatusLine renders the engine connectivity summary
func (m HomeModel) renderStatusLine() string {
	if !m.State.Connected {
		return "  " + lipgloss.NewStyle().Foreground(ErrorColor).Bold(true).Render("● Engine unreachable")
	}

	line := lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true).Render("● Connected")
	if m.State.Version != "" {
		line += SubtitleStyle.Render("  engine v" + m.State.Version)
	}
	return "  " + line
}

// renderCard renders one character row with its activity summary
func (m HomeModel) renderCard(card store.CharacterCard, selected bool) string {
	var content strings.Builder

	name := card.Name
	if name == "" {
		name = card.Slug
	}
	if selected {
		content.WriteString(SelectedMenuItemStyle.Render("→ " + name))
	} else {
		content.WriteString("  " + name)
	}
	content.WriteString("\n\n")

	if card.Role != "" {
		content.WriteString(fmt.Sprintf("  Role:   %s\n", card.Role))
	}
	if card.Era != "" {
		content.WriteString(fmt.Sprintf("  Era:    %s\n", card.Era))
	}

	statusStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	if card.Loaded {
		statusStyle = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	}
	status := FormatLoaded(card.Loaded)
	if m.State.TogglingSlug == card.Slug {
		status = m.Spinner.View() + " working..."
	}
	if m.State.DeletingSlug == card.Slug {
		status = m.Spinner.View() + " deleting..."
	}
	content.WriteString(fmt.Sprintf("  Status: %s", statusStyle.Render(status)))

	if activity, ok := m.State.Activities[card.Slug]; ok && activity.LoopsRunning {
		content.WriteString("\n")
		content.WriteString("  Loops:  " + lipgloss.NewStyle().Foreground(SecondaryColor).Render("running"))
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2).
		MarginLeft(2)

	cardWidth := m.Width - 8
	if cardWidth < MinTerminalWidth-8 {
		cardWidth = MinTerminalWidth - 8
	}
	if cardWidth > MaxContentWidth-8 {
		cardWidth = MaxContentWidth - 8
	}
	cardStyle = cardStyle.Width(cardWidth)

	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	return cardStyle.Render(content.String())
}

// renderUsage renders the aggregate token totals, when known
func (m HomeModel) renderUsage() string {
	usage := m.State.Usage
	if usage == nil || usage.TotalCalls == 0 {
		return ""
	}

	return "\n" + SubtitleStyle.Render(fmt.Sprintf(
		"  Usage: %d calls • %d in / %d out • %d tokens total",
		usage.TotalCalls, usage.TotalInputTokens, usage.TotalOutputTokens, usage.TotalTokens,
	)) + "\n"
}
