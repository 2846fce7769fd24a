package controller

import (
	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/engineconfig"
	"github.com/lettucelabs/lettucectl/internal/store"
)

// Settings drives the engine settings editor
type Settings struct {
	*screen[store.SettingsState]
	gw Gateway
}

// NewSettings returns a settings editor controller over gw
func NewSettings(gw Gateway) *Settings {
	return &Settings{screen: newScreen(store.NewSettingsState()), gw: gw}
}

// Load fetches and normalizes the Engine's current config
func (s *Settings) Load() {
	s.dispatch(store.SettingsSetLoading{Loading: true})
	s.dispatch(store.SettingsSetError{})

	doc, err := s.gw.GetConfig(s.ctx)
	if err != nil {
		s.dispatch(store.SettingsSetError{Error: engine.Detail(err)})
		s.dispatch(store.SettingsSetLoading{})
		return
	}
	s.dispatch(store.SettingsLoadValues{Values: engineconfig.Normalize(doc).Settings})
}

// Update replaces the editable values
func (s *Settings) Update(values engineconfig.Settings) {
	s.dispatch(store.SettingsUpdateValues{Values: values})
}

// Save pushes all five config groups in order. Every group is
// required; the first failure aborts and is surfaced. Returns false
// on failure.
func (s *Settings) Save() bool {
	state := s.State()
	s.dispatch(store.SettingsSetSaving{Saving: true})
	s.dispatch(store.SettingsSetError{})
	defer s.dispatch(store.SettingsSetSaving{})

	eng, bg, mem, safety, research := engineconfig.SettingsRequests(state.Values)
	if err := s.gw.SetEngineConfig(s.ctx, eng); err != nil {
		s.dispatch(store.SettingsSetError{Error: engine.Detail(err)})
		return false
	}
	if err := s.gw.SetBackgroundConfig(s.ctx, bg); err != nil {
		s.dispatch(store.SettingsSetError{Error: engine.Detail(err)})
		return false
	}
	if err := s.gw.SetMemoryConfig(s.ctx, mem); err != nil {
		s.dispatch(store.SettingsSetError{Error: engine.Detail(err)})
		return false
	}
	if err := s.gw.SetSafetyConfig(s.ctx, safety); err != nil {
		s.dispatch(store.SettingsSetError{Error: engine.Detail(err)})
		return false
	}
	if err := s.gw.SetResearchConfig(s.ctx, research); err != nil {
		s.dispatch(store.SettingsSetError{Error: engine.Detail(err)})
		return false
	}
	return true
}
