package store

import "github.com/lettucelabs/lettucectl/internal/engineconfig"

// SettingsState backs the engine settings editor
type SettingsState struct {
	Loading bool
	Saving  bool
	Error   string

	Values engineconfig.Settings
}

// NewSettingsState returns the initial editor state (loading, with
// documented defaults visible until the fetch lands)
func NewSettingsState() SettingsState {
	return SettingsState{
		Loading: true,
		Values:  engineconfig.DefaultSettings(),
	}
}

// Settings editor events

type SettingsSetLoading struct{ Loading bool }
type SettingsSetSaving struct{ Saving bool }
type SettingsSetError struct{ Error string }

// SettingsLoadValues replaces the editable record with a freshly
// normalized config fetch and clears the loading flag.
type SettingsLoadValues struct{ Values engineconfig.Settings }

type SettingsUpdateValues struct{ Values engineconfig.Settings }

// Apply transitions the settings editor state. Unrecognized events
// return the state unchanged.
func (s SettingsState) Apply(ev Event) SettingsState {
	switch ev := ev.(type) {
	case SettingsSetLoading:
		s.Loading = ev.Loading
	case SettingsSetSaving:
		s.Saving = ev.Saving
	case SettingsSetError:
		s.Error = ev.Error
	case SettingsLoadValues:
		s.Values = ev.Values
		s.Loading = false
	case SettingsUpdateValues:
		s.Values = ev.Values
	}
	return s
}
