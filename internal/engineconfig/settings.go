package engineconfig

import "github.com/lettucelabs/lettucectl/internal/engine"

// Settings is the flat editable record behind the settings editor and
// the setup wizard's settings step. Field defaults are the documented
// Engine defaults; Normalize falls back to them for every field the
// config document omits.
type Settings struct {
	// Engine group
	DataDir    string
	LogLevel   string
	MaxHistory int

	// Background loop intervals, minutes
	SynthesisInterval     int
	ConsolidationInterval int
	BM25RebuildInterval   int
	DripResearchInterval  int

	// Memory / retrieval
	EmbeddingModel           string
	MaxRetrievalResults      int
	DenseWeight              float64
	BM25Weight               float64
	GraphWeight              float64
	RecencyBoostHours        float64
	RandomSurfaceProbability float64

	// Safety
	HonestySection   bool
	UserDataDeletion bool

	// Research
	InitialScrapeOnBoot   bool
	PeriodicIntervalHours int
}

// DefaultSettings returns the documented default for every field
func DefaultSettings() Settings {
	return Settings{
		DataDir:                  "./data",
		LogLevel:                 "INFO",
		MaxHistory:               40,
		SynthesisInterval:        10,
		ConsolidationInterval:    60,
		BM25RebuildInterval:      15,
		DripResearchInterval:     60,
		EmbeddingModel:           "all-MiniLM-L6-v2",
		MaxRetrievalResults:      15,
		DenseWeight:              0.5,
		BM25Weight:               0.3,
		GraphWeight:              0.2,
		RecencyBoostHours:        2.0,
		RandomSurfaceProbability: 0.05,
		HonestySection:           true,
		UserDataDeletion:         true,
		InitialScrapeOnBoot:      true,
		PeriodicIntervalHours:    6,
	}
}

// ProviderConfig is the editable model for one Engine LLM provider.
//
// APIKey is write-only: it holds a newly typed secret and is never
// round-tripped from the Engine. APIKeyRedacted is the masked display
// form the Engine returns. APIKeyChanged distinguishes "user typed a
// new secret" from "field left blank meaning keep the stored one".
type ProviderConfig struct {
	Enabled        bool
	Model          string
	APIKey         string
	APIKeyRedacted string
	APIKeyChanged  bool
	BaseURL        string
	MaxTokens      int
	Temperature    float64
}

// EmptyProvider returns an unconfigured entry with the Engine defaults
func EmptyProvider() ProviderConfig {
	return ProviderConfig{
		MaxTokens:   1024,
		Temperature: 0.9,
	}
}

// EmptyProviders returns one unconfigured entry per known provider id,
// seeding capability defaults (e.g. the ollama base URL).
func EmptyProviders() map[string]ProviderConfig {
	providers := make(map[string]ProviderConfig, len(engine.Providers))
	for _, p := range engine.Providers {
		entry := EmptyProvider()
		entry.BaseURL = p.DefaultBaseURL
		providers[p.ID] = entry
	}
	return providers
}

// Configured reports whether the Engine holds this provider remotely,
// detected via the redacted key from the last fetched config document.
func (p ProviderConfig) Configured() bool {
	return p.APIKeyRedacted != ""
}
