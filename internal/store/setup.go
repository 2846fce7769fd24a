package store

import (
	"github.com/lettucelabs/lettucectl/internal/engineconfig"
	"github.com/lettucelabs/lettucectl/internal/wizard"
)

// Setup wizard steps, in order. "done" is terminal and entered only by
// jumping there after the final save succeeds.
const (
	SetupStepWelcome   wizard.Step = "welcome"
	SetupStepProviders wizard.Step = "providers"
	SetupStepSettings  wizard.Step = "settings"
	SetupStepDone      wizard.Step = "done"
)

// SetupFlow is the setup wizard's step order
var SetupFlow = wizard.NewFlow(SetupStepWelcome, SetupStepProviders, SetupStepSettings, SetupStepDone)

// SetupState backs the first-run setup wizard
type SetupState struct {
	Step   wizard.Step
	Saving bool
	Error  string

	DefaultBackend string
	Providers      map[string]engineconfig.ProviderConfig
	Settings       engineconfig.Settings
}

// NewSetupState returns the wizard's initial state: sensible provider
// drafts for each backend and the documented Engine defaults.
func NewSetupState() SetupState {
	providers := engineconfig.EmptyProviders()

	anthropic := providers["anthropic"]
	anthropic.Model = "claude-sonnet-4-5-20250929"
	providers["anthropic"] = anthropic

	openai := providers["openai"]
	openai.Model = "gpt-4o"
	providers["openai"] = openai

	ollama := providers["ollama"]
	ollama.Model = "llama3"
	providers["ollama"] = ollama

	return SetupState{
		Step:           SetupStepWelcome,
		DefaultBackend: "anthropic",
		Providers:      providers,
		Settings:       engineconfig.DefaultSettings(),
	}
}

// Setup wizard events

// SetupSetStep moves the wizard and clears any stale error
type SetupSetStep struct{ Step wizard.Step }
type SetupSetSaving struct{ Saving bool }
type SetupSetError struct{ Error string }
type SetupSetDefaultBackend struct{ Provider string }
type SetupUpdateProvider struct {
	ID     string
	Config engineconfig.ProviderConfig
}
type SetupSetSettings struct{ Settings engineconfig.Settings }

// Apply transitions the setup wizard state. Unrecognized events return
// the state unchanged.
func (s SetupState) Apply(ev Event) SetupState {
	switch ev := ev.(type) {
	case SetupSetStep:
		s.Step = ev.Step
		s.Error = ""
	case SetupSetSaving:
		s.Saving = ev.Saving
	case SetupSetError:
		s.Error = ev.Error
	case SetupSetDefaultBackend:
		s.DefaultBackend = ev.Provider
	case SetupUpdateProvider:
		providers := make(map[string]engineconfig.ProviderConfig, len(s.Providers))
		for k, v := range s.Providers {
			providers[k] = v
		}
		providers[ev.ID] = ev.Config
		s.Providers = providers
	case SetupSetSettings:
		s.Settings = ev.Settings
	}
	return s
}
