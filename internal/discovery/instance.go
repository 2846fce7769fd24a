package discovery

import (
	"fmt"
	"time"
)

// Instance represents a discovered Engine on the local network
type Instance struct {
	// Name is the mDNS instance name (e.g., "Lettuce Engine (study)")
	Name string

	// Hostname is the mDNS hostname (e.g., "study.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.42")
	IP string

	// Port is the HTTP API port (typically 8000)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "version=0.4.1", "auth=bearer"
	Metadata map[string]string

	// DiscoveredAt is when the instance was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the instance
func (i *Instance) String() string {
	return fmt.Sprintf("Engine %q (%s) at %s:%d", i.Name, i.Hostname, i.IP, i.Port)
}

// BaseURL returns the HTTP base URL for the instance's API
func (i *Instance) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", i.IP, i.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}
