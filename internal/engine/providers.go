package engine

// Provider describes the capabilities of one Engine LLM backend.
// The set is closed: the Engine only knows these four backends, and
// every screen consults this table instead of branching on id strings.
type Provider struct {
	ID              string
	Name            string
	RequiresKey     bool
	RequiresBaseURL bool
	DefaultBaseURL  string
}

// Providers is the fixed, ordered provider set. Order matters: the
// default-backend fallback picks the first enabled provider in this
// order.
var Providers = []Provider{
	{ID: "openai", Name: "OpenAI", RequiresKey: true},
	{ID: "anthropic", Name: "Anthropic", RequiresKey: true},
	{ID: "openrouter", Name: "OpenRouter", RequiresKey: true},
	{ID: "ollama", Name: "Ollama", RequiresBaseURL: true, DefaultBaseURL: "http://localhost:11434"},
}

// ProviderByID looks up a provider by id. The second return value is
// false for ids outside the closed set.
func ProviderByID(id string) (Provider, bool) {
	for _, p := range Providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

// IsKnownProvider reports whether id names one of the Engine's backends
func IsKnownProvider(id string) bool {
	_, ok := ProviderByID(id)
	return ok
}
