package engineconfig

import (
	"encoding/json"
	"testing"

	"github.com/lettucelabs/lettucectl/internal/engine"
)

func TestNormalizeNilDocumentYieldsDefaults(t *testing.T) {
	n := Normalize(nil)

	if n.Settings != DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults", n.Settings)
	}
	if n.DefaultBackend != "" {
		t.Errorf("DefaultBackend = %q, want empty", n.DefaultBackend)
	}
	for _, p := range engine.Providers {
		cfg := n.Providers[p.ID]
		if cfg.Enabled {
			t.Errorf("%s should start disabled", p.ID)
		}
		if cfg.BaseURL != p.DefaultBaseURL {
			t.Errorf("%s BaseURL = %q, want capability default %q", p.ID, cfg.BaseURL, p.DefaultBaseURL)
		}
	}
}

func TestNormalizeAbsentGroupsEqualEmptyGroups(t *testing.T) {
	absent := Normalize(&engine.ConfigDocument{})
	empty := Normalize(&engine.ConfigDocument{
		Engine:     &engine.EngineConfigDocument{},
		LLM:        map[string]engine.ProviderEntry{},
		Background: &engine.BackgroundConfigDocument{},
		Memory:     &engine.MemoryConfigDocument{},
		Safety:     &engine.SafetyConfigDocument{},
		Research:   &engine.ResearchConfigDocument{},
	})

	if absent.Settings != empty.Settings {
		t.Errorf("absent groups normalized differently from empty groups:\n%+v\n%+v", absent.Settings, empty.Settings)
	}
}

func TestNormalizeDocumentedDefaults(t *testing.T) {
	s := Normalize(&engine.ConfigDocument{}).Settings

	if s.LogLevel != "INFO" {
		t.Errorf("LogLevel default = %q, want INFO", s.LogLevel)
	}
	if s.DenseWeight != 0.5 || s.BM25Weight != 0.3 || s.GraphWeight != 0.2 {
		t.Errorf("retrieval weight defaults = %v/%v/%v, want 0.5/0.3/0.2", s.DenseWeight, s.BM25Weight, s.GraphWeight)
	}
	if s.RecencyBoostHours != 2.0 || s.RandomSurfaceProbability != 0.05 {
		t.Errorf("memory defaults = %v/%v", s.RecencyBoostHours, s.RandomSurfaceProbability)
	}
	if !s.HonestySection || !s.UserDataDeletion || !s.InitialScrapeOnBoot {
		t.Error("safety/research toggles should default to true")
	}
	if s.PeriodicIntervalHours != 6 {
		t.Errorf("PeriodicIntervalHours default = %d, want 6", s.PeriodicIntervalHours)
	}
}

func TestNormalizeFullDocument(t *testing.T) {
	// Decoded from a wire document rather than built by hand, so every
	// optional field goes through the real JSON shapes.
	raw := `{
		"engine": {"data_dir": "/srv/lettuce", "log_level": "DEBUG", "max_history": 80, "default_backend": "openai"},
		"llm": {
			"openai": {"model": "gpt-4o", "api_key": "sk-...7f2a", "max_tokens": 2048, "temperature": 0.7},
			"ollama": {"model": "llama3", "base_url": "http://10.0.0.5:11434"},
			"bedrock": {"model": "claude"}
		},
		"background": {"synthesis_interval_minutes": 5},
		"memory": {"dense_weight": 0.8},
		"safety": {"honesty_section": false},
		"research": {"periodic_interval_hours": 12}
	}`
	var doc engine.ConfigDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	n := Normalize(&doc)

	if n.DefaultBackend != "openai" {
		t.Errorf("DefaultBackend = %q, want openai", n.DefaultBackend)
	}

	openai := n.Providers["openai"]
	if !openai.Enabled || openai.Model != "gpt-4o" {
		t.Errorf("openai = %+v", openai)
	}
	if openai.APIKeyRedacted != "sk-...7f2a" || openai.APIKey != "" || openai.APIKeyChanged {
		t.Error("fetched key must land in the redacted field only")
	}
	if openai.MaxTokens != 2048 || openai.Temperature != 0.7 {
		t.Errorf("openai tuning = %d/%v", openai.MaxTokens, openai.Temperature)
	}

	ollama := n.Providers["ollama"]
	if !ollama.Enabled || ollama.BaseURL != "http://10.0.0.5:11434" {
		t.Errorf("ollama = %+v", ollama)
	}
	if ollama.MaxTokens != 1024 || ollama.Temperature != 0.9 {
		t.Errorf("absent tuning fields should default: %d/%v", ollama.MaxTokens, ollama.Temperature)
	}

	// Unknown ids stay outside the closed set
	if _, ok := n.Providers["bedrock"]; ok {
		t.Error("bedrock should be ignored")
	}

	// Provided fields override defaults, untouched fields keep them
	if n.Settings.DataDir != "/srv/lettuce" || n.Settings.LogLevel != "DEBUG" || n.Settings.MaxHistory != 80 {
		t.Errorf("engine group = %+v", n.Settings)
	}
	if n.Settings.SynthesisInterval != 5 || n.Settings.ConsolidationInterval != 60 {
		t.Errorf("background = %d/%d", n.Settings.SynthesisInterval, n.Settings.ConsolidationInterval)
	}
	if n.Settings.DenseWeight != 0.8 || n.Settings.BM25Weight != 0.3 {
		t.Errorf("memory weights = %v/%v", n.Settings.DenseWeight, n.Settings.BM25Weight)
	}
	if n.Settings.HonestySection || !n.Settings.UserDataDeletion {
		t.Error("safety overrides mis-applied")
	}
	if n.Settings.PeriodicIntervalHours != 12 {
		t.Errorf("PeriodicIntervalHours = %d, want 12", n.Settings.PeriodicIntervalHours)
	}
}
