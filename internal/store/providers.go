package store

import "github.com/lettucelabs/lettucectl/internal/engineconfig"

// ProvidersState backs the provider configuration editor
type ProvidersState struct {
	Loading bool
	Saving  bool
	Error   string

	DefaultBackend string
	Providers      map[string]engineconfig.ProviderConfig
}

// NewProvidersState returns the initial editor state (loading)
func NewProvidersState() ProvidersState {
	return ProvidersState{
		Loading:   true,
		Providers: engineconfig.EmptyProviders(),
	}
}

// Provider editor events

type ProvidersSetLoading struct{ Loading bool }
type ProvidersSetSaving struct{ Saving bool }
type ProvidersSetError struct{ Error string }
type ProvidersSetDefaultBackend struct{ Provider string }

// ProvidersLoadConfig replaces the editable set with a freshly
// normalized config fetch and clears the loading flag.
type ProvidersLoadConfig struct {
	Providers      map[string]engineconfig.ProviderConfig
	DefaultBackend string
}

type ProvidersUpdateProvider struct {
	ID     string
	Config engineconfig.ProviderConfig
}

// Apply transitions the provider editor state. Unrecognized events
// return the state unchanged.
func (s ProvidersState) Apply(ev Event) ProvidersState {
	switch ev := ev.(type) {
	case ProvidersSetLoading:
		s.Loading = ev.Loading
	case ProvidersSetSaving:
		s.Saving = ev.Saving
	case ProvidersSetError:
		s.Error = ev.Error
	case ProvidersSetDefaultBackend:
		s.DefaultBackend = ev.Provider
	case ProvidersLoadConfig:
		s.Providers = ev.Providers
		s.DefaultBackend = ev.DefaultBackend
		s.Loading = false
	case ProvidersUpdateProvider:
		providers := make(map[string]engineconfig.ProviderConfig, len(s.Providers))
		for k, v := range s.Providers {
			providers[k] = v
		}
		providers[ev.ID] = ev.Config
		s.Providers = providers
	}
	return s
}
