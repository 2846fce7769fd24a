package controller

import (
	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/engineconfig"
	"github.com/lettucelabs/lettucectl/internal/store"
	"github.com/lettucelabs/lettucectl/internal/wizard"
)

// Setup drives the first-run wizard: welcome, provider configuration,
// engine settings, done. Each saving step advances only after the
// Engine accepts its payload; the terminal step is entered by jumping
// there once setup is marked complete.
type Setup struct {
	*screen[store.SetupState]
	gw Gateway
}

// NewSetup returns a setup wizard controller over gw
func NewSetup(gw Gateway) *Setup {
	return &Setup{screen: newScreen(store.NewSetupState()), gw: gw}
}

// Next advances past a step with no remote work of its own. Steps
// that save advance through their save method instead, so the gate
// here admits only the welcome step.
func (s *Setup) Next() {
	next, ok := store.SetupFlow.Advance(s.State().Step, func(step wizard.Step) bool {
		return step == store.SetupStepWelcome
	})
	if !ok {
		return
	}
	s.dispatch(store.SetupSetStep{Step: next})
}

// Back returns to the previous step
func (s *Setup) Back() {
	prev, ok := store.SetupFlow.Back(s.State().Step)
	if !ok {
		return
	}
	s.dispatch(store.SetupSetStep{Step: prev})
}

// SetDefaultBackend records the provider chat should default to
func (s *Setup) SetDefaultBackend(provider string) {
	s.dispatch(store.SetupSetDefaultBackend{Provider: provider})
}

// UpdateProvider replaces one provider's draft configuration
func (s *Setup) UpdateProvider(id string, cfg engineconfig.ProviderConfig) {
	s.dispatch(store.SetupUpdateProvider{ID: id, Config: cfg})
}

// UpdateSettings replaces the engine settings draft
func (s *Setup) UpdateSettings(values engineconfig.Settings) {
	s.dispatch(store.SetupSetSettings{Settings: values})
}

// ImportCredential pre-fills a provider draft from a locally stored
// credential, enabling it in one keystroke.
func (s *Setup) ImportCredential(providerID, apiKey, baseURL string) {
	if !engine.IsKnownProvider(providerID) {
		return
	}
	cfg := s.State().Providers[providerID]
	cfg.Enabled = true
	if apiKey != "" {
		cfg.APIKey = apiKey
		cfg.APIKeyChanged = true
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	s.dispatch(store.SetupUpdateProvider{ID: providerID, Config: cfg})
}

// SaveProviders pushes every enabled provider to the Engine, sets the
// default backend (falling back to the first enabled provider if the
// selected one is disabled), and advances to the settings step.
// Returns false when validation or a remote call failed.
func (s *Setup) SaveProviders() bool {
	state := s.State()
	s.dispatch(store.SetupSetSaving{Saving: true})
	s.dispatch(store.SetupSetError{})
	defer s.dispatch(store.SetupSetSaving{})

	plan, err := engineconfig.BuildProviderPlan(state.Providers, state.DefaultBackend)
	if err != nil {
		s.dispatch(store.SetupSetError{Error: err.Error()})
		return false
	}

	for _, step := range plan.Configure {
		if err := s.gw.SetProviderConfig(s.ctx, step.ID, step.Request); err != nil {
			s.dispatch(store.SetupSetError{Error: engine.Detail(err)})
			return false
		}
	}
	if err := s.gw.SetDefaultProvider(s.ctx, plan.Default); err != nil {
		s.dispatch(store.SetupSetError{Error: engine.Detail(err)})
		return false
	}

	s.dispatch(store.SetupSetStep{Step: store.SetupStepSettings})
	return true
}

// SaveSettings pushes the engine, background-loop, and memory groups,
// marks setup complete, and jumps to the terminal step. Returns false
// when a remote call failed.
func (s *Setup) SaveSettings() bool {
	state := s.State()
	s.dispatch(store.SetupSetSaving{Saving: true})
	s.dispatch(store.SetupSetError{})
	defer s.dispatch(store.SetupSetSaving{})

	eng, bg, mem, _, _ := engineconfig.SettingsRequests(state.Settings)
	if err := s.gw.SetEngineConfig(s.ctx, eng); err != nil {
		s.dispatch(store.SetupSetError{Error: engine.Detail(err)})
		return false
	}
	if err := s.gw.SetBackgroundConfig(s.ctx, bg); err != nil {
		s.dispatch(store.SetupSetError{Error: engine.Detail(err)})
		return false
	}
	if err := s.gw.SetMemoryConfig(s.ctx, mem); err != nil {
		s.dispatch(store.SetupSetError{Error: engine.Detail(err)})
		return false
	}
	if _, err := s.gw.SetupComplete(s.ctx); err != nil {
		s.dispatch(store.SetupSetError{Error: engine.Detail(err)})
		return false
	}

	s.dispatch(store.SetupSetStep{Step: store.SetupStepDone})
	return true
}
