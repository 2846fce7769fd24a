package engineconfig

import (
	"github.com/lettucelabs/lettucectl/internal/engine"
)

// Normalized is the result of mapping a wire config document into the
// editable model.
type Normalized struct {
	Providers      map[string]ProviderConfig
	DefaultBackend string
	Settings       Settings
}

// Normalize flattens the Engine's config document into the editable
// model. A nil document, absent groups, and empty groups all normalize
// to the same defaults. Unknown provider ids in the LLM group are
// ignored; the provider set is closed.
func Normalize(doc *engine.ConfigDocument) Normalized {
	n := Normalized{
		Providers: EmptyProviders(),
		Settings:  DefaultSettings(),
	}
	if doc == nil {
		return n
	}

	for id, entry := range doc.LLM {
		if !engine.IsKnownProvider(id) {
			continue
		}
		cfg := ProviderConfig{
			Enabled:        true,
			Model:          entry.Model,
			APIKeyRedacted: entry.APIKey,
			BaseURL:        entry.BaseURL,
			MaxTokens:      entry.MaxTokens,
			Temperature:    0.9,
		}
		if cfg.MaxTokens == 0 {
			cfg.MaxTokens = 1024
		}
		if entry.Temperature != nil {
			cfg.Temperature = *entry.Temperature
		}
		n.Providers[id] = cfg
	}

	if eng := doc.Engine; eng != nil {
		// default_backend lives under the engine group, not llm
		n.DefaultBackend = eng.DefaultBackend
		setString(&n.Settings.DataDir, eng.DataDir)
		setString(&n.Settings.LogLevel, eng.LogLevel)
		setInt(&n.Settings.MaxHistory, eng.MaxHistory)
	}

	if bg := doc.Background; bg != nil {
		setInt(&n.Settings.SynthesisInterval, bg.SynthesisInterval)
		setInt(&n.Settings.ConsolidationInterval, bg.ConsolidationInterval)
		setInt(&n.Settings.BM25RebuildInterval, bg.BM25RebuildInterval)
		setInt(&n.Settings.DripResearchInterval, bg.DripResearchInterval)
	}

	if mem := doc.Memory; mem != nil {
		if mem.EmbeddingModel != "" {
			n.Settings.EmbeddingModel = mem.EmbeddingModel
		}
		setInt(&n.Settings.MaxRetrievalResults, mem.MaxRetrievalResults)
		setFloat(&n.Settings.DenseWeight, mem.DenseWeight)
		setFloat(&n.Settings.BM25Weight, mem.BM25Weight)
		setFloat(&n.Settings.GraphWeight, mem.GraphWeight)
		setFloat(&n.Settings.RecencyBoostHours, mem.RecencyBoostHours)
		setFloat(&n.Settings.RandomSurfaceProbability, mem.RandomSurfaceProbability)
	}

	if safety := doc.Safety; safety != nil {
		setBool(&n.Settings.HonestySection, safety.HonestySection)
		setBool(&n.Settings.UserDataDeletion, safety.UserDataDeletion)
	}

	if research := doc.Research; research != nil {
		setBool(&n.Settings.InitialScrapeOnBoot, research.InitialScrapeOnBoot)
		setInt(&n.Settings.PeriodicIntervalHours, research.PeriodicIntervalHours)
	}

	return n
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

