package config

import (
	"time"

	"github.com/google/uuid"
)

// EngineProviderID is the providerId a credential uses to point at a
// Lettuce Engine itself rather than an LLM backend. Its BaseURL and
// APIKey form the session identity every remote call carries.
const EngineProviderID = "lettuce-engine"

// Registry represents the entire user configuration file.
// This stores Engine connections, importable LLM credentials, chat
// personas, and application preferences.
type Registry struct {
	Version     int           `yaml:"version"`
	Credentials []*Credential `yaml:"credentials,omitempty"`
	Personas    []*Persona    `yaml:"personas,omitempty"`
	// UserID is the stable chat identity sent with every message so
	// the Engine keeps one history per user. Generated on first use.
	UserID      string       `yaml:"user_id,omitempty"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
}

// Credential is one stored provider credential. ProviderID is either
// EngineProviderID (an Engine connection) or one of the Engine's LLM
// backend ids, in which case the credential can be imported into the
// Engine during setup.
type Credential struct {
	ID         string    `yaml:"id"`
	ProviderID string    `yaml:"provider_id"`
	Label      string    `yaml:"label,omitempty"`
	BaseURL    string    `yaml:"base_url,omitempty"`
	APIKey     string    `yaml:"api_key,omitempty"`
	LastUsed   time.Time `yaml:"last_used,omitempty"`
}

// Persona is a chat identity the user speaks as. The default persona
// supplies the name and description sent with every chat message.
type Persona struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Default     bool   `yaml:"default,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool `yaml:"auto_discover"`    // Enable automatic mDNS discovery on startup
	DiscoverTimeout int  `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
		},
	}
}

// CredentialByID retrieves a credential by its id.
// Returns nil if no credential with that id exists.
func (r *Registry) CredentialByID(id string) *Credential {
	for _, c := range r.Credentials {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// EngineCredentials returns the stored Engine connections, in file
// order.
func (r *Registry) EngineCredentials() []*Credential {
	var out []*Credential
	for _, c := range r.Credentials {
		if c.ProviderID == EngineProviderID {
			out = append(out, c)
		}
	}
	return out
}

// ImportableCredentials returns credentials whose provider id matches
// one of the Engine's LLM backends, the candidates the setup wizard
// offers to import.
func (r *Registry) ImportableCredentials(isKnown func(string) bool) []*Credential {
	var out []*Credential
	for _, c := range r.Credentials {
		if c.ProviderID != EngineProviderID && isKnown(c.ProviderID) {
			out = append(out, c)
		}
	}
	return out
}

// AddCredential appends a credential, assigning it an id when absent,
// and returns it.
func (r *Registry) AddCredential(c *Credential) *Credential {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.Credentials = append(r.Credentials, c)
	return c
}

// RemoveCredential deletes the credential with the given id.
// Returns true if a credential was removed.
func (r *Registry) RemoveCredential(id string) bool {
	for i, c := range r.Credentials {
		if c.ID == id {
			r.Credentials = append(r.Credentials[:i], r.Credentials[i+1:]...)
			return true
		}
	}
	return false
}

// TouchCredential updates the last-used timestamp for a credential.
func (r *Registry) TouchCredential(id string) {
	if c := r.CredentialByID(id); c != nil {
		c.LastUsed = time.Now()
	}
}

// DefaultPersona returns the persona marked default, or nil when the
// user has not created one. Callers fall back to an anonymous
// identity.
func (r *Registry) DefaultPersona() *Persona {
	for _, p := range r.Personas {
		if p.Default {
			return p
		}
	}
	return nil
}

// EnsureUserID returns the stable chat user id, generating and
// recording one on first use. The caller is responsible for saving
// the registry if the id was just generated.
func (r *Registry) EnsureUserID() string {
	if r.UserID == "" {
		r.UserID = uuid.NewString()
	}
	return r.UserID
}
