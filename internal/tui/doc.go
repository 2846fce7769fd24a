// Package tui implements the interactive terminal client for the Engine.
//
// This package provides a full-screen TUI for driving a remote Engine:
// a character dashboard, a chat session screen, the first-run setup
// wizard, a character-creation wizard, and editors for LLM providers
// and engine settings. Built using the Bubble Tea framework, it follows
// the Elm architecture with immutable state updates and a clean
// Model-Update-View pattern.
//
// # Architecture
//
// Screens render store snapshots and translate key events into
// controller calls; they never talk to the Engine directly. Every
// screen model owns one controller (internal/controller) whose
// snapshots arrive through a typed feed. A screen's Update loop is:
//
//  1. Re-arm the snapshot watcher on every snapshot message
//  2. Map key events to controller operations via background commands
//  3. Render only what the latest snapshot says
//
// Because controller operations never mutate UI state directly,
// screens stay pure over the snapshot and slow Engine calls cannot
// clobber a screen the user has already left.
//
// The AppModel coordinator manages screen transitions. Switching
// screens closes the old controller, so its in-flight results are
// discarded rather than applied to a replaced screen.
//
// # Framework Components
//
// The TUI leverages Bubble Tea framework components throughout:
//   - bubbles/spinner: Loading and in-flight indicators
//   - bubbles/textinput: Inline field editing and the chat input
//   - bubbles/viewport: Scrolling for the chat transcript
//   - bubbles/help: Context-aware help system
//   - lipgloss: Styling and layout
//
// # Usage Example
//
//	app := tui.NewAppModel(client, persona, tui.ScreenHome)
//	program := tea.NewProgram(app, tea.WithAltScreen())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Key Bindings
//
// Each screen has context-aware key bindings:
//   - Home: ↑/↓ navigate, enter chat, space load/unload, n new
//     character, w setup, p providers, s settings, q quit
//   - Chat: enter send, pgup/pgdn scroll, esc back
//   - Wizards/editors: ↑/↓ navigate, enter edit/toggle, ←/→ cycle
//     choices, tab/shift+tab step, esc back
//
// # Thread Safety
//
// The Bubble Tea framework ensures thread safety through message
// passing. Controller calls run in background commands; their results
// come back only as snapshot messages on the UI goroutine.
package tui
