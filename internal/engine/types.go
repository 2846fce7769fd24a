package engine

// Wire types for the Engine REST API. Every field in a success payload
// is optional/absent-tolerant; zero values stand in for absent fields
// and callers apply their own defaults.

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// SetupStatusResponse is returned by GET /setup/status
type SetupStatusResponse struct {
	NeedsSetup          bool     `json:"needs_setup"`
	ConfiguredProviders []string `json:"configured_providers,omitempty"`
	HasAPIKey           bool     `json:"has_api_key,omitempty"`
}

// SetupCompleteResponse is returned by POST /setup/complete
type SetupCompleteResponse struct {
	Status string `json:"status"`
}

// ProviderConfigRequest is the body for PUT /config/llm/{provider}.
// APIKey is write-only: it is sent only when the caller holds a newly
// entered secret, otherwise the Engine keeps its stored one.
type ProviderConfigRequest struct {
	Model       string   `json:"model"`
	APIKey      *string  `json:"api_key,omitempty"`
	BaseURL     *string  `json:"base_url,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// DefaultProviderRequest is the body for PUT /config/llm/default
type DefaultProviderRequest struct {
	Provider string `json:"provider"`
}

// EngineConfigRequest is the body for PUT /config/engine
type EngineConfigRequest struct {
	DataDir    string `json:"data_dir,omitempty"`
	LogLevel   string `json:"log_level,omitempty"`
	MaxHistory int    `json:"max_history,omitempty"`
}

// BackgroundConfigRequest is the body for PUT /config/background.
// All intervals are minutes.
type BackgroundConfigRequest struct {
	SynthesisInterval     int `json:"synthesis_interval_minutes,omitempty"`
	ConsolidationInterval int `json:"consolidation_interval_minutes,omitempty"`
	BM25RebuildInterval   int `json:"bm25_rebuild_interval_minutes,omitempty"`
	DripResearchInterval  int `json:"drip_research_interval_minutes,omitempty"`
}

// MemoryConfigRequest is the body for PUT /config/memory
type MemoryConfigRequest struct {
	EmbeddingModel           string   `json:"embedding_model,omitempty"`
	MaxRetrievalResults      int      `json:"max_retrieval_results,omitempty"`
	DenseWeight              *float64 `json:"dense_weight,omitempty"`
	BM25Weight               *float64 `json:"bm25_weight,omitempty"`
	GraphWeight              *float64 `json:"graph_weight,omitempty"`
	RecencyBoostHours        *float64 `json:"recency_boost_hours,omitempty"`
	RandomSurfaceProbability *float64 `json:"random_surface_probability,omitempty"`
}

// SafetyConfigRequest is the body for PUT /config/safety
type SafetyConfigRequest struct {
	HonestySection   *bool `json:"honesty_section,omitempty"`
	UserDataDeletion *bool `json:"user_data_deletion,omitempty"`
}

// ResearchConfigRequest is the body for PUT /config/research
type ResearchConfigRequest struct {
	InitialScrapeOnBoot   *bool `json:"initial_scrape_on_boot,omitempty"`
	PeriodicIntervalHours *int  `json:"periodic_interval_hours,omitempty"`
}

// ConfigDocument is the heterogeneous document returned by GET /config.
// Groups may be absent entirely; an absent group is equivalent to an
// empty one. The LLM group maps provider id -> provider entry directly
// (no wrapper object), while default_backend lives under engine.
type ConfigDocument struct {
	Engine     *EngineConfigDocument     `json:"engine,omitempty"`
	LLM        map[string]ProviderEntry  `json:"llm,omitempty"`
	Background *BackgroundConfigDocument `json:"background,omitempty"`
	Memory     *MemoryConfigDocument     `json:"memory,omitempty"`
	Safety     *SafetyConfigDocument     `json:"safety,omitempty"`
	Research   *ResearchConfigDocument   `json:"research,omitempty"`
}

// EngineConfigDocument mirrors the engine group of GET /config.
// DefaultBackend lives here rather than in the llm group; the string
// fields are pointers so an absent field and an empty one stay
// distinguishable.
type EngineConfigDocument struct {
	DataDir        *string `json:"data_dir,omitempty"`
	LogLevel       *string `json:"log_level,omitempty"`
	MaxHistory     *int    `json:"max_history,omitempty"`
	DefaultBackend string  `json:"default_backend,omitempty"`
}

// ProviderEntry is a single configured provider inside the config
// document. APIKey here is the redacted display form, never the stored
// secret.
type ProviderEntry struct {
	Model       string   `json:"model,omitempty"`
	APIKey      string   `json:"api_key,omitempty"`
	BaseURL     string   `json:"base_url,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// BackgroundConfigDocument mirrors the background group of GET /config
type BackgroundConfigDocument struct {
	SynthesisInterval     *int `json:"synthesis_interval_minutes,omitempty"`
	ConsolidationInterval *int `json:"consolidation_interval_minutes,omitempty"`
	BM25RebuildInterval   *int `json:"bm25_rebuild_interval_minutes,omitempty"`
	DripResearchInterval  *int `json:"drip_research_interval_minutes,omitempty"`
}

// MemoryConfigDocument mirrors the memory group of GET /config
type MemoryConfigDocument struct {
	EmbeddingModel           string   `json:"embedding_model,omitempty"`
	MaxRetrievalResults      *int     `json:"max_retrieval_results,omitempty"`
	DenseWeight              *float64 `json:"dense_weight,omitempty"`
	BM25Weight               *float64 `json:"bm25_weight,omitempty"`
	GraphWeight              *float64 `json:"graph_weight,omitempty"`
	RecencyBoostHours        *float64 `json:"recency_boost_hours,omitempty"`
	RandomSurfaceProbability *float64 `json:"random_surface_probability,omitempty"`
}

// SafetyConfigDocument mirrors the safety group of GET /config
type SafetyConfigDocument struct {
	HonestySection   *bool `json:"honesty_section,omitempty"`
	UserDataDeletion *bool `json:"user_data_deletion,omitempty"`
}

// ResearchConfigDocument mirrors the research group of GET /config
type ResearchConfigDocument struct {
	InitialScrapeOnBoot   *bool `json:"initial_scrape_on_boot,omitempty"`
	PeriodicIntervalHours *int  `json:"periodic_interval_hours,omitempty"`
}

// CharacterSummary is one entry of the characters list inside
// GET /status (and GET /characters).
type CharacterSummary struct {
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	Role           string `json:"role,omitempty"`
	Era            string `json:"era,omitempty"`
	Loaded         bool   `json:"loaded"`
	MemoryCount    int    `json:"memory_count,omitempty"`
	TurnCount      int    `json:"turn_count,omitempty"`
	PrimaryEmotion string `json:"primary_emotion,omitempty"`
}

// StatusResponse is returned by GET /status
type StatusResponse struct {
	Characters []CharacterSummary `json:"characters,omitempty"`
}

// UsageByModel breaks usage down per backend model
type UsageByModel struct {
	Model        string `json:"model"`
	Backend      string `json:"backend"`
	Calls        int    `json:"calls"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// UsageBySource breaks usage down per call source
type UsageBySource struct {
	Source       string `json:"source"`
	Calls        int    `json:"calls"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// CharacterUsage aggregates usage for one character
type CharacterUsage struct {
	Character         string          `json:"character"`
	TotalCalls        int             `json:"total_calls"`
	TotalInputTokens  int             `json:"total_input_tokens"`
	TotalOutputTokens int             `json:"total_output_tokens"`
	TotalTokens       int             `json:"total_tokens"`
	ByModel           []UsageByModel  `json:"by_model,omitempty"`
	BySource          []UsageBySource `json:"by_source,omitempty"`
}

// UsageResponse is returned by GET /usage
type UsageResponse struct {
	Characters        []CharacterUsage `json:"characters,omitempty"`
	TotalCalls        int              `json:"total_calls"`
	TotalInputTokens  int              `json:"total_input_tokens"`
	TotalOutputTokens int              `json:"total_output_tokens"`
	TotalTokens       int              `json:"total_tokens"`
}

// LoopStatus describes one background loop of a loaded character
type LoopStatus struct {
	LastRun         *string `json:"last_run"`
	IntervalMinutes int     `json:"interval_minutes"`
	Status          string  `json:"status"` // "running" or "stopped"
}

// ActivityResponse is returned by GET /characters/{slug}/activity
type ActivityResponse struct {
	LoopsRunning  bool       `json:"loops_running"`
	Synthesis     LoopStatus `json:"synthesis"`
	Consolidation LoopStatus `json:"consolidation"`
	BM25Rebuild   LoopStatus `json:"bm25_rebuild"`
	DripResearch  LoopStatus `json:"drip_research"`
}

// SpeechPatterns describes how a character talks
type SpeechPatterns struct {
	Formality             string   `json:"formality,omitempty"`
	Verbosity             string   `json:"verbosity,omitempty"`
	TextStyle             string   `json:"text_style,omitempty"`
	Dialect               string   `json:"dialect,omitempty"`
	Catchphrases          []string `json:"catchphrases,omitempty"`
	VocabularyPreferences []string `json:"vocabulary_preferences,omitempty"`
	VocabularyAvoidances  []string `json:"vocabulary_avoidances,omitempty"`
	FillerWords           []string `json:"filler_words,omitempty"`
	ExampleQuotes         []string `json:"example_quotes,omitempty"`
}

// TimeBehaviors describes time-of-day behavior prompts
type TimeBehaviors struct {
	EarlyMorning string `json:"early_morning,omitempty"`
	Morning      string `json:"morning,omitempty"`
	Afternoon    string `json:"afternoon,omitempty"`
	Evening      string `json:"evening,omitempty"`
	Night        string `json:"night,omitempty"`
}

// BaselineEmotions holds resting emotion intensities (0..1)
type BaselineEmotions struct {
	Joy          *float64 `json:"joy,omitempty"`
	Trust        *float64 `json:"trust,omitempty"`
	Fear         *float64 `json:"fear,omitempty"`
	Surprise     *float64 `json:"surprise,omitempty"`
	Sadness      *float64 `json:"sadness,omitempty"`
	Disgust      *float64 `json:"disgust,omitempty"`
	Anger        *float64 `json:"anger,omitempty"`
	Anticipation *float64 `json:"anticipation,omitempty"`
}

// CharacterDocument is the full character card used for both
// POST /characters and the payload returned by /characters/boost and
// /characters/{slug}/full.
type CharacterDocument struct {
	Slug                string            `json:"slug,omitempty"`
	Name                string            `json:"name"`
	Era                 string            `json:"era,omitempty"`
	Setting             string            `json:"setting,omitempty"`
	Role                string            `json:"role,omitempty"`
	CoreIdentity        string            `json:"core_identity,omitempty"`
	Backstory           string            `json:"backstory,omitempty"`
	PersonalityTraits   []string          `json:"personality_traits,omitempty"`
	SpeechPatterns      *SpeechPatterns   `json:"speech_patterns,omitempty"`
	KnowledgeDomains    []string          `json:"knowledge_domains,omitempty"`
	KnowledgeBoundaries []string          `json:"knowledge_boundaries,omitempty"`
	ResearchSeeds       []string          `json:"research_seeds,omitempty"`
	ResearchEnabled     bool              `json:"research_enabled,omitempty"`
	PhysicalDescription string            `json:"physical_description,omitempty"`
	PhysicalHabits      []string          `json:"physical_habits,omitempty"`
	IdleBehaviors       []string          `json:"idle_behaviors,omitempty"`
	TimeBehaviors       *TimeBehaviors    `json:"time_behaviors,omitempty"`
	BaselineEmotions    *BaselineEmotions `json:"baseline_emotions,omitempty"`
	Backend             string            `json:"backend,omitempty"`
	Model               string            `json:"model,omitempty"`
	Temperature         *float64          `json:"temperature,omitempty"`
	IsSeed              bool              `json:"is_seed,omitempty"`
	SeedPrompt          string            `json:"seed_prompt,omitempty"`
}

// BoostRequest is the body for POST /characters/boost
type BoostRequest struct {
	Name string `json:"name,omitempty"`
	Seed string `json:"seed"`
	Era  string `json:"era,omitempty"`
}

// boostResponse tolerates both observed shapes of the boost payload:
// a wrapper {"character": {...}} or the bare character document.
type boostResponse struct {
	Character *CharacterDocument `json:"character,omitempty"`
	CharacterDocument
}

// ChatRequest is the body for POST /characters/{slug}/chat
type ChatRequest struct {
	Message         string `json:"message"`
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	UserDescription string `json:"user_description"`
}

// ChatResponse is returned by POST /characters/{slug}/chat
type ChatResponse struct {
	Response         string   `json:"response"`
	Character        string   `json:"character,omitempty"`
	Emotion          string   `json:"emotion,omitempty"`
	EmotionIntensity *float64 `json:"emotion_intensity,omitempty"`
}

// HistoryMessage is one transcript entry from
// GET /characters/{slug}/history/{userId}
type HistoryMessage struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	UserName          string   `json:"user_name,omitempty"`
	Role              string   `json:"role"` // "user" or "assistant"
	Content           string   `json:"content"`
	Timestamp         string   `json:"timestamp,omitempty"`
	EntitiesMentioned []string `json:"entities_mentioned,omitempty"`
}
