package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fieldKind selects how a form row reacts to enter/arrow keys
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSecret
	fieldToggle
	fieldChoice
	fieldAction
)

// field is one row of an editable form. Value is the display form;
// screens own the underlying state and rebuild the rows after every
// snapshot.
type field struct {
	Label   string
	Value   string
	Kind    fieldKind
	Choices []string // fieldChoice only
}

// fieldEditor is the shared inline form component behind the setup
// wizard, the character wizard and both config editors. Navigation and
// text entry live here; toggles, choices and actions are interpreted
// by the owning screen.
type fieldEditor struct {
	Fields  []field
	Cursor  int
	Editing bool
	Input   textinput.Model
}

// newFieldEditor creates an editor with a ready text input
func newFieldEditor() fieldEditor {
	input := textinput.New()
	input.CharLimit = 256
	input.Width = 48
	return fieldEditor{Input: input}
}

// SetFields replaces the rows, clamping the cursor
func (e *fieldEditor) SetFields(fields []field) {
	e.Fields = fields
	if e.Cursor >= len(fields) {
		e.Cursor = len(fields) - 1
	}
	if e.Cursor < 0 {
		e.Cursor = 0
	}
}

// Current returns the focused row
func (e *fieldEditor) Current() field {
	if e.Cursor < 0 || e.Cursor >= len(e.Fields) {
		return field{}
	}
	return e.Fields[e.Cursor]
}

// MoveUp moves the cursor one row up
func (e *fieldEditor) MoveUp() {
	if !e.Editing && e.Cursor > 0 {
		e.Cursor--
	}
}

// MoveDown moves the cursor one row down
func (e *fieldEditor) MoveDown() {
	if !e.Editing && e.Cursor < len(e.Fields)-1 {
		e.Cursor++
	}
}

// StartEditing expands the focused text/secret row into an inline input
func (e *fieldEditor) StartEditing() {
	f := e.Current()
	if f.Kind != fieldText && f.Kind != fieldSecret {
		return
	}
	e.Editing = true
	e.Input.SetValue(f.Value)
	if f.Kind == fieldSecret {
		// Secrets start blank so the redacted display form is never
		// resubmitted by accident
		e.Input.SetValue("")
		e.Input.EchoMode = textinput.EchoPassword
	} else {
		e.Input.EchoMode = textinput.EchoNormal
	}
	e.Input.CursorEnd()
	e.Input.Focus()
}

// CancelEditing collapses the inline input without committing
func (e *fieldEditor) CancelEditing() {
	e.Editing = false
	e.Input.Blur()
	e.Input.SetValue("")
}

// CommitEditing collapses the inline input and returns the typed value
func (e *fieldEditor) CommitEditing() string {
	value := e.Input.Value()
	e.CancelEditing()
	return value
}

// Update forwards key events to the inline input while editing
func (e *fieldEditor) Update(msg tea.Msg) tea.Cmd {
	if !e.Editing {
		return nil
	}
	var cmd tea.Cmd
	e.Input, cmd = e.Input.Update(msg)
	return cmd
}

// View renders the form with the cursor row highlighted. The editing
// row expands into the inline input in place.
func (e *fieldEditor) View() string {
	var b strings.Builder

	for i, f := range e.Fields {
		selected := i == e.Cursor

		if selected && e.Editing {
			b.WriteString(FocusedInputStyle.Render("→ " + f.Label + ": "))
			b.WriteString(e.Input.View())
			b.WriteString("\n")
			continue
		}

		line := fmt.Sprintf("%s: %s", f.Label, e.displayValue(f))
		if f.Kind == fieldChoice {
			line = fmt.Sprintf("%s: ◂ %s ▸", f.Label, e.displayValue(f))
		}
		if f.Kind == fieldAction {
			line = "[ " + f.Label + " ]"
		}

		if selected {
			b.WriteString(SelectedMenuItemStyle.Render("→ " + line))
		} else {
			b.WriteString(MenuItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// displayValue masks secrets and dims empty values
func (e *fieldEditor) displayValue(f field) string {
	if f.Value == "" {
		return lipgloss.NewStyle().Foreground(SubtleColor).Render("(not set)")
	}
	if f.Kind == fieldSecret {
		return strings.Repeat("•", 8)
	}
	return f.Value
}

// cycleChoice returns the next (or previous) entry after current in
// choices, wrapping around
func cycleChoice(choices []string, current string, forward bool) string {
	if len(choices) == 0 {
		return current
	}
	idx := 0
	for i, c := range choices {
		if c == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(choices)
	} else {
		idx = (idx - 1 + len(choices)) % len(choices)
	}
	return choices[idx]
}
