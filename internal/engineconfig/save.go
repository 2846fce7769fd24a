package engineconfig

import (
	"fmt"
	"strings"

	"github.com/lettucelabs/lettucectl/internal/engine"
)

// ProviderStep is one PUT /config/llm/{provider} call of a save plan
type ProviderStep struct {
	ID      string
	Request engine.ProviderConfigRequest
}

// ProviderPlan is the ordered set of wire calls that persists the
// provider editor state. Execution order: Configure steps first (fixed
// provider order), then Deletes (non-critical), then the resolved
// Default.
type ProviderPlan struct {
	Configure []ProviderStep
	// Delete lists providers that are disabled locally but still
	// configured remotely. Delete failures are non-critical; the
	// provider may already be absent.
	Delete []string
	// Default is the resolved default backend. If the selected default
	// is not among the enabled set, it falls back to the first enabled
	// provider in fixed order; the fallback is an enforced invariant,
	// never an error.
	Default string
}

// ValidationError is a local precondition failure; no wire call may be
// made when BuildProviderPlan returns one.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BuildProviderPlan validates the editable provider set and produces
// the save plan. It is pure: no I/O, deterministic for a given input.
func BuildProviderPlan(providers map[string]ProviderConfig, defaultBackend string) (*ProviderPlan, error) {
	plan := &ProviderPlan{}

	var enabled []engine.Provider
	for _, p := range engine.Providers {
		if providers[p.ID].Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, &ValidationError{Message: "At least one provider must be enabled."}
	}

	for _, p := range enabled {
		cfg := providers[p.ID]
		model := strings.TrimSpace(cfg.Model)
		if model == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("Model is required for %s.", p.Name)}
		}
		newKey := strings.TrimSpace(cfg.APIKey)
		if p.RequiresKey && newKey == "" && cfg.APIKeyRedacted == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("API key is required for %s.", p.Name)}
		}

		req := engine.ProviderConfigRequest{
			Model:     model,
			MaxTokens: cfg.MaxTokens,
		}
		// Secret-preserving merge: only send a key the user typed;
		// omitting the field tells the Engine to keep its stored one.
		if cfg.APIKeyChanged && newKey != "" {
			req.APIKey = &newKey
		}
		if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
			req.BaseURL = &baseURL
		}
		temp := cfg.Temperature
		req.Temperature = &temp

		plan.Configure = append(plan.Configure, ProviderStep{ID: p.ID, Request: req})
	}

	for _, p := range engine.Providers {
		cfg := providers[p.ID]
		if !cfg.Enabled && cfg.Configured() {
			plan.Delete = append(plan.Delete, p.ID)
		}
	}

	plan.Default = resolveDefault(defaultBackend, enabled)
	return plan, nil
}

// resolveDefault enforces "default must be enabled"
func resolveDefault(selected string, enabled []engine.Provider) string {
	for _, p := range enabled {
		if p.ID == selected {
			return selected
		}
	}
	return enabled[0].ID
}

// SettingsRequests splits the flat settings record into the per-group
// wire requests, in the order the controller issues them.
func SettingsRequests(v Settings) (
	engine.EngineConfigRequest,
	engine.BackgroundConfigRequest,
	engine.MemoryConfigRequest,
	engine.SafetyConfigRequest,
	engine.ResearchConfigRequest,
) {
	dense := v.DenseWeight
	bm25 := v.BM25Weight
	graph := v.GraphWeight
	recency := v.RecencyBoostHours
	surface := v.RandomSurfaceProbability
	honesty := v.HonestySection
	deletion := v.UserDataDeletion
	scrape := v.InitialScrapeOnBoot
	periodic := v.PeriodicIntervalHours

	return engine.EngineConfigRequest{
			DataDir:    v.DataDir,
			LogLevel:   v.LogLevel,
			MaxHistory: v.MaxHistory,
		},
		engine.BackgroundConfigRequest{
			SynthesisInterval:     v.SynthesisInterval,
			ConsolidationInterval: v.ConsolidationInterval,
			BM25RebuildInterval:   v.BM25RebuildInterval,
			DripResearchInterval:  v.DripResearchInterval,
		},
		engine.MemoryConfigRequest{
			EmbeddingModel:           v.EmbeddingModel,
			MaxRetrievalResults:      v.MaxRetrievalResults,
			DenseWeight:              &dense,
			BM25Weight:               &bm25,
			GraphWeight:              &graph,
			RecencyBoostHours:        &recency,
			RandomSurfaceProbability: &surface,
		},
		engine.SafetyConfigRequest{
			HonestySection:   &honesty,
			UserDataDeletion: &deletion,
		},
		engine.ResearchConfigRequest{
			InitialScrapeOnBoot:   &scrape,
			PeriodicIntervalHours: &periodic,
		}
}
