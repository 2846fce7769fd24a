package controller

import (
	"reflect"
	"testing"

	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/store"
)

func enableWithKey(s *Setup, id, model, key string) {
	cfg := s.State().Providers[id]
	cfg.Enabled = true
	cfg.Model = model
	cfg.APIKey = key
	cfg.APIKeyChanged = true
	s.UpdateProvider(id, cfg)
}

func TestSetupNextOnlyPassesWelcome(t *testing.T) {
	gw := &fakeGateway{}
	s := NewSetup(gw)
	defer s.Close()

	s.Next()
	if s.State().Step != store.SetupStepProviders {
		t.Fatalf("Step = %s, want providers", s.State().Step)
	}

	// Providers advances through its save, never through Next
	s.Next()
	if s.State().Step != store.SetupStepProviders {
		t.Error("providers step must not advance without saving")
	}
	if len(gw.recorded()) != 0 {
		t.Errorf("calls = %v, want none", gw.recorded())
	}
}

func TestSetupBack(t *testing.T) {
	s := NewSetup(&fakeGateway{})
	defer s.Close()

	s.Next()
	s.Back()
	if s.State().Step != store.SetupStepWelcome {
		t.Errorf("Step = %s, want welcome", s.State().Step)
	}
}

func TestSetupSaveProvidersValidationStopsBeforeNetwork(t *testing.T) {
	gw := &fakeGateway{}
	s := NewSetup(gw)
	defer s.Close()
	s.Next()

	if s.SaveProviders() {
		t.Fatal("save with nothing enabled must fail")
	}

	st := s.State()
	if st.Error == "" || st.Saving {
		t.Errorf("Error=%q Saving=%v", st.Error, st.Saving)
	}
	if st.Step != store.SetupStepProviders {
		t.Error("failed save must not advance")
	}
	if len(gw.recorded()) != 0 {
		t.Errorf("calls = %v, want none", gw.recorded())
	}
}

func TestSetupSaveProvidersPushesAndAdvances(t *testing.T) {
	var sent engine.ProviderConfigRequest
	gw := &fakeGateway{
		setProviderFn: func(provider string, req engine.ProviderConfigRequest) error {
			sent = req
			return nil
		},
	}
	s := NewSetup(gw)
	defer s.Close()
	s.Next()
	enableWithKey(s, "anthropic", "claude-sonnet-4-5-20250929", "sk-ant-test")

	if !s.SaveProviders() {
		t.Fatalf("SaveProviders failed: %s", s.State().Error)
	}

	want := []string{"SetProviderConfig anthropic", "SetDefaultProvider anthropic"}
	if got := gw.recorded(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if sent.APIKey == nil || *sent.APIKey != "sk-ant-test" {
		t.Errorf("api key = %v, want the newly entered secret", sent.APIKey)
	}
	if s.State().Step != store.SetupStepSettings {
		t.Errorf("Step = %s, want settings", s.State().Step)
	}
	if s.State().Saving {
		t.Error("saving flag must clear")
	}
}

func TestSetupSaveProvidersFallsBackToFirstEnabled(t *testing.T) {
	var defaulted string
	gw := &fakeGateway{
		setDefaultFn: func(provider string) error {
			defaulted = provider
			return nil
		},
	}
	s := NewSetup(gw)
	defer s.Close()
	s.Next()
	enableWithKey(s, "openai", "gpt-4o", "sk-oai-test")
	enableWithKey(s, "anthropic", "claude-sonnet-4-5-20250929", "sk-ant-test")
	s.SetDefaultBackend("ollama") // disabled

	if !s.SaveProviders() {
		t.Fatalf("SaveProviders failed: %s", s.State().Error)
	}
	if defaulted != "openai" {
		t.Errorf("default = %s, want openai (first enabled in fixed order)", defaulted)
	}
}

func TestSetupSaveProvidersRemoteFailureSurfaces(t *testing.T) {
	gw := &fakeGateway{
		setProviderFn: func(provider string, req engine.ProviderConfigRequest) error { return errDown },
	}
	s := NewSetup(gw)
	defer s.Close()
	s.Next()
	enableWithKey(s, "anthropic", "claude-sonnet-4-5-20250929", "sk-ant-test")

	if s.SaveProviders() {
		t.Fatal("remote failure must fail the save")
	}
	st := s.State()
	if st.Error == "" || st.Saving || st.Step != store.SetupStepProviders {
		t.Errorf("Error=%q Saving=%v Step=%s", st.Error, st.Saving, st.Step)
	}
}

func TestSetupSaveSettingsFinishes(t *testing.T) {
	gw := &fakeGateway{}
	s := NewSetup(gw)
	defer s.Close()

	if !s.SaveSettings() {
		t.Fatalf("SaveSettings failed: %s", s.State().Error)
	}

	// The first-run wizard pushes only the three setup groups before
	// marking setup complete.
	want := []string{"SetEngineConfig", "SetBackgroundConfig", "SetMemoryConfig", "SetupComplete"}
	if got := gw.recorded(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if s.State().Step != store.SetupStepDone {
		t.Errorf("Step = %s, want done", s.State().Step)
	}
}

func TestSetupSaveSettingsFailureStopsSequence(t *testing.T) {
	gw := &fakeGateway{
		setBackgroundFn: func(req engine.BackgroundConfigRequest) error { return errDown },
	}
	s := NewSetup(gw)
	defer s.Close()

	if s.SaveSettings() {
		t.Fatal("remote failure must fail the save")
	}
	for _, call := range gw.recorded() {
		if call == "SetMemoryConfig" || call == "SetupComplete" {
			t.Errorf("call %s must not follow a failed group", call)
		}
	}
	if s.State().Step == store.SetupStepDone {
		t.Error("failed save must not reach the terminal step")
	}
}

func TestSetupImportCredential(t *testing.T) {
	s := NewSetup(&fakeGateway{})
	defer s.Close()

	s.ImportCredential("openai", "sk-oai-import", "")
	cfg := s.State().Providers["openai"]
	if !cfg.Enabled || cfg.APIKey != "sk-oai-import" || !cfg.APIKeyChanged {
		t.Errorf("imported config = %+v", cfg)
	}

	s.ImportCredential("lettuce-engine", "key", "")
	if _, ok := s.State().Providers["lettuce-engine"]; ok {
		t.Error("credentials outside the provider set must be ignored")
	}
}
