package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lettucelabs/lettucectl/internal/controller"
	"github.com/lettucelabs/lettucectl/internal/store"
)

// chatSnapshotMsg carries a fresh chat snapshot from the controller
type chatSnapshotMsg struct {
	state store.ChatState
}

// watchChat waits for the next chat snapshot
func watchChat(ch <-chan store.ChatState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return chatSnapshotMsg{state: state}
	}
}

// chatKeyMap defines key bindings for the chat screen
type chatKeyMap struct {
	Send   key.Binding
	Scroll key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k chatKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Scroll, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k chatKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Scroll, k.Back},
	}
}

// ChatModel represents a chat session screen with one character
type ChatModel struct {
	ctrl  *controller.Chat
	watch <-chan store.ChatState
	stop  func()

	Target chatTarget
	State  store.ChatState

	// UI state
	Width      int
	Height     int
	Transcript viewport.Model
	Input      textinput.Model
	Spinner    spinner.Model
	Help       help.Model
	Keys       chatKeyMap
}

// NewChatModel creates a chat screen for the given character
func NewChatModel(gw controller.Gateway, target chatTarget, persona controller.Persona) ChatModel {
	ctrl := controller.NewChat(gw, target.Slug, persona)
	ch, stop := ctrl.Watch()

	input := textinput.New()
	input.Placeholder = "Say something..."
	input.CharLimit = 2000
	input.Width = 60
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := chatKeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}

	return ChatModel{
		ctrl:       ctrl,
		watch:      ch,
		stop:       stop,
		Target:     target,
		State:      ctrl.State(),
		Transcript: viewport.New(72, 16),
		Input:      input,
		Spinner:    s,
		Help:       help.New(),
		Keys:       keys,
	}
}

// Init starts the history load and the snapshot watcher
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(
		runOp(m.ctrl.LoadHistory),
		watchChat(m.watch),
		m.Spinner.Tick,
		textinput.Blink,
	)
}

// Close tears down the chat controller
func (m ChatModel) Close() {
	if m.stop != nil {
		m.stop()
	}
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}

// setSize resizes the transcript viewport for the terminal
func (m *ChatModel) setSize(width, height int) {
	m.Width = width
	m.Height = height

	vpWidth := width - 8
	if vpWidth < 40 {
		vpWidth = 40
	}
	vpHeight := height - 12
	if vpHeight < 5 {
		vpHeight = 5
	}
	m.Transcript.Width = vpWidth
	m.Transcript.Height = vpHeight
	m.Input.Width = vpWidth - 4
	m.Transcript.SetContent(m.renderTranscript())
}

// Update handles messages and updates the model
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatSnapshotMsg:
		atBottom := m.Transcript.AtBottom()
		m.State = msg.state
		m.Transcript.SetContent(m.renderTranscript())
		if atBottom {
			m.Transcript.GotoBottom()
		}
		return m, watchChat(m.watch)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, goHome()

		case "enter":
			text := m.Input.Value()
			if strings.TrimSpace(text) == "" || m.State.Sending {
				return m, nil
			}
			m.Input.SetValue("")
			return m, runOp(func() {
				m.ctrl.SetDraft(text)
				m.ctrl.Send()
			})

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.Transcript, cmd = m.Transcript.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View renders the chat screen
func (m ChatModel) View() string {
	var b strings.Builder

	title := m.Target.Name
	if title == "" {
		title = m.Target.Slug
	}
	b.WriteString(RenderTitle("Chat with " + title))
	b.WriteString("\n")

	if m.State.Loading {
		b.WriteString(SpinnerStyle.Render(fmt.Sprintf("%s Loading history...", m.Spinner.View())))
		b.WriteString("\n")
	} else {
		b.WriteString(m.Transcript.View())
		b.WriteString("\n")
	}

	if m.State.Error != "" {
		b.WriteString(RenderError(m.State.Error))
		b.WriteString("\n")
	}

	prompt := "  > "
	if m.State.Sending {
		prompt = "  " + m.Spinner.View() + " "
	}
	b.WriteString(prompt + m.Input.View())
	b.WriteString("\n")

	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}

// renderTranscript renders the message history for the viewport
func (m ChatModel) renderTranscript() string {
	if len(m.State.Messages) == 0 {
		return RenderSubtitle("  No messages yet. Say hello!")
	}

	name := m.Target.Name
	if name == "" {
		name = m.Target.Slug
	}

	var b strings.Builder
	for _, msg := range m.State.Messages {
		if msg.Role == "user" {
			b.WriteString(UserMessageStyle.Render("You"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(TextColor).Bold(true).Render(name))
			if msg.Emotion != "" {
				b.WriteString(" " + EmotionTagStyle.Render(fmt.Sprintf("(%s %.1f)", msg.Emotion, msg.EmotionIntensity)))
			}
		}
		if !msg.Timestamp.IsZero() {
			b.WriteString(SubtitleStyle.Render("  " + msg.Timestamp.Format("15:04")))
		}
		b.WriteString("\n")
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}
