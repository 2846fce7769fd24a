// Package config provides user configuration management for lettucectl.
//
// This package manages a YAML-based configuration file that stores Engine
// connections, LLM provider credentials, chat personas, and application
// preferences. The configuration follows OS-specific conventions for storage
// location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/lettucectl/config.yaml or $HOME/.config/lettucectl/config.yaml
//   - macOS: $HOME/.config/lettucectl/config.yaml
//   - Windows: %LOCALAPPDATA%\lettucectl\config.yaml
//
// # Credentials
//
// A credential whose provider id is EngineProviderID points at a Lettuce
// Engine; its base URL and API key form the session identity for every
// remote call. Credentials with an LLM backend provider id (anthropic,
// openai, ...) are candidates the setup wizard can import into the Engine.
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register an Engine connection
//	registry.AddCredential(&config.Credential{
//	    ProviderID: config.EngineProviderID,
//	    Label:      "Home Engine",
//	    BaseURL:    "http://192.168.1.20:8000",
//	    APIKey:     "secret",
//	})
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
