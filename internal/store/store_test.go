package store

import (
	"reflect"
	"testing"

	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/engineconfig"
)

func TestHomeApplyTotality(t *testing.T) {
	s := NewHomeState()

	// Unknown events and other workflows' events are no-ops
	if got := s.Apply(struct{ X int }{1}); !reflect.DeepEqual(got, s) {
		t.Error("unknown event must leave state unchanged")
	}
	if got := s.Apply(ChatSetDraft{Draft: "hi"}); !reflect.DeepEqual(got, s) {
		t.Error("foreign workflow event must leave state unchanged")
	}
}

func TestHomeReplayDeterminism(t *testing.T) {
	events := []Event{
		HomeSetLoading{true},
		HomeSetHealth{Version: "0.4.1", Connected: true},
		HomeSetCharacters{Characters: []CharacterCard{
			{Slug: "ada", Name: "Ada", Loaded: true},
			{Slug: "kai", Name: "Kai"},
		}},
		HomeSetActivity{Slug: "ada", Activity: engine.ActivityResponse{LoopsRunning: true}},
		HomeSetToggling{Slug: "kai"},
		HomeToggleLoaded{Slug: "kai", Loaded: true},
		HomeSetToggling{},
		HomeSetLoading{false},
	}

	replay := func() HomeState {
		s := NewHomeState()
		for _, ev := range events {
			s = s.Apply(ev)
		}
		return s
	}

	first, second := replay(), replay()
	if !reflect.DeepEqual(first, second) {
		t.Error("replaying the same event log must yield identical state")
	}
	if !first.Characters[1].Loaded || first.TogglingSlug != "" || first.Loading {
		t.Errorf("final state = %+v", first)
	}
}

func TestHomeApplyCopiesCollections(t *testing.T) {
	base := NewHomeState().Apply(HomeSetCharacters{Characters: []CharacterCard{
		{Slug: "ada", Name: "Ada"},
	}}).Apply(HomeSetActivity{Slug: "ada", Activity: engine.ActivityResponse{}})

	toggled := base.Apply(HomeToggleLoaded{Slug: "ada", Loaded: true})
	if base.Characters[0].Loaded {
		t.Error("toggle must not mutate the prior state's slice")
	}
	if !toggled.Characters[0].Loaded {
		t.Error("toggle must flip the new state's card")
	}

	withKai := base.Apply(HomeSetActivity{Slug: "kai", Activity: engine.ActivityResponse{}})
	if _, ok := base.Activities["kai"]; ok {
		t.Error("activity insert must not mutate the prior state's map")
	}
	if len(withKai.Activities) != 2 {
		t.Errorf("new state activities = %d, want 2", len(withKai.Activities))
	}
}

func TestHomeRemoveCharacterClearsSelection(t *testing.T) {
	s := NewHomeState().
		Apply(HomeSetCharacters{Characters: []CharacterCard{{Slug: "ada"}, {Slug: "kai"}}}).
		Apply(HomeSelectCharacter{Slug: "ada"}).
		Apply(HomeRemoveCharacter{Slug: "ada"})

	if len(s.Characters) != 1 || s.Characters[0].Slug != "kai" {
		t.Errorf("Characters = %+v", s.Characters)
	}
	if s.SelectedSlug != "" {
		t.Error("removal must clear the selection pointer")
	}
}

func TestChatAppendPreservesOrder(t *testing.T) {
	s := NewChatState().
		Apply(ChatSetLoading{false}).
		Apply(ChatAppendMessage{Message: ChatMessage{ID: "1", Role: "user", Content: "hello"}}).
		Apply(ChatAppendMessage{Message: ChatMessage{ID: "2", Role: "assistant", Content: "hi"}})

	if len(s.Messages) != 2 || s.Messages[0].ID != "1" || s.Messages[1].ID != "2" {
		t.Errorf("Messages = %+v", s.Messages)
	}
}

func TestChatAppendDoesNotAliasPriorTranscript(t *testing.T) {
	base := NewChatState().Apply(ChatSetMessages{Messages: make([]ChatMessage, 1, 4)})
	a := base.Apply(ChatAppendMessage{Message: ChatMessage{ID: "a"}})
	b := base.Apply(ChatAppendMessage{Message: ChatMessage{ID: "b"}})

	if a.Messages[1].ID != "a" || b.Messages[1].ID != "b" {
		t.Error("appends from a shared base must not clobber each other")
	}
}

func TestSetupSetStepClearsError(t *testing.T) {
	s := NewSetupState().
		Apply(SetupSetError{Error: "Please enable at least one provider."}).
		Apply(SetupSetStep{Step: SetupStepProviders})

	if s.Error != "" {
		t.Error("moving steps must clear the stale error")
	}
	if s.Step != SetupStepProviders {
		t.Errorf("Step = %s", s.Step)
	}
}

func TestSetupUpdateProviderIsCopyOnWrite(t *testing.T) {
	base := NewSetupState()
	cfg := base.Providers["openai"]
	cfg.Enabled = true
	updated := base.Apply(SetupUpdateProvider{ID: "openai", Config: cfg})

	if base.Providers["openai"].Enabled {
		t.Error("update must not mutate the prior state's map")
	}
	if !updated.Providers["openai"].Enabled {
		t.Error("update must apply to the new state")
	}
}

func TestSetupInitialDefaults(t *testing.T) {
	s := NewSetupState()

	if s.Step != SetupStepWelcome || s.DefaultBackend != "anthropic" {
		t.Errorf("initial = %s/%s", s.Step, s.DefaultBackend)
	}
	if s.Providers["ollama"].BaseURL != "http://localhost:11434" {
		t.Errorf("ollama BaseURL = %q", s.Providers["ollama"].BaseURL)
	}
	if s.Settings != engineconfig.DefaultSettings() {
		t.Error("settings should start at documented defaults")
	}
}

func TestCharacterPopulateFromBoost(t *testing.T) {
	temp := 0.7
	s := NewCharacterState().
		Apply(CharacterSetBoostSeed{Seed: "first programmer"}).
		Apply(CharacterPopulateFromBoost{Document: engine.CharacterDocument{
			Name:              "Ada Lovelace",
			Era:               "Victorian",
			PersonalityTraits: []string{"curious"},
			Temperature:       &temp,
		}})

	if s.Step != CharacterStepIdentity {
		t.Errorf("Step = %s, want identity (boost forces the second step)", s.Step)
	}
	if !s.Boosted {
		t.Error("Boosted provenance marker must be set")
	}
	if s.Draft.Name != "Ada Lovelace" || s.Draft.Temperature != 0.7 {
		t.Errorf("Draft = %+v", s.Draft)
	}
}

func TestCharacterPopulateDefaultsAbsentFields(t *testing.T) {
	s := NewCharacterState().Apply(CharacterPopulateFromBoost{Document: engine.CharacterDocument{Name: "Kai"}})

	if s.Draft.Temperature != 0.9 {
		t.Errorf("Temperature = %v, want default 0.9", s.Draft.Temperature)
	}
}

func TestProvidersLoadConfigClearsLoading(t *testing.T) {
	loaded := engineconfig.EmptyProviders()
	cfg := loaded["anthropic"]
	cfg.Enabled = true
	cfg.Model = "claude-sonnet-4-5"
	loaded["anthropic"] = cfg

	s := NewProvidersState().Apply(ProvidersLoadConfig{Providers: loaded, DefaultBackend: "anthropic"})
	if s.Loading {
		t.Error("load must clear the loading flag")
	}
	if s.DefaultBackend != "anthropic" || !s.Providers["anthropic"].Enabled {
		t.Errorf("state = %+v", s)
	}
}

func TestSettingsReplayDeterminism(t *testing.T) {
	values := engineconfig.DefaultSettings()
	values.LogLevel = "DEBUG"

	events := []Event{
		SettingsSetLoading{true},
		SettingsLoadValues{Values: values},
		SettingsSetSaving{true},
		SettingsSetSaving{false},
	}

	replay := func() SettingsState {
		s := NewSettingsState()
		for _, ev := range events {
			s = s.Apply(ev)
		}
		return s
	}

	if !reflect.DeepEqual(replay(), replay()) {
		t.Error("settings replay must be deterministic")
	}
	if got := replay(); got.Loading || got.Saving || got.Values.LogLevel != "DEBUG" {
		t.Errorf("final = %+v", got)
	}
}
