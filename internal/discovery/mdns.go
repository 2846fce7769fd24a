package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type Engines advertise under
	ServiceType = "_lettuce-engine._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for instance discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default API port for Engine instances
	DefaultPort = 8000
)

// Scanner handles mDNS Engine discovery
type Scanner struct {
	// Timeout is the maximum time to wait for instance discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers all Engine instances on the local network
// Returns a list of discovered instances or an error
func (s *Scanner) Scan() ([]*Instance, error) {
	return s.ScanWithContext(context.Background())
}

// ScanWithContext discovers instances with a custom context
func (s *Scanner) ScanWithContext(ctx context.Context) ([]*Instance, error) {
	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	instances := make([]*Instance, 0)

	// Start the resolver
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Collect entries in a goroutine
	go func() {
		for entry := range entries {
			instance := s.parseServiceEntry(entry)
			if instance != nil {
				instances = append(instances, instance)
			}
		}
	}()

	// Start browsing for Engine services
	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()

	return instances, nil
}

// WaitForInstance waits for a specific instance by name
// Returns the instance or an error if not found within timeout
func (s *Scanner) WaitForInstance(name string) (*Instance, error) {
	return s.WaitForInstanceWithContext(context.Background(), name)
}

// WaitForInstanceWithContext waits for a specific instance with a custom context
func (s *Scanner) WaitForInstanceWithContext(ctx context.Context, name string) (*Instance, error) {
	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	instanceChan := make(chan *Instance, 1)

	// Start the resolver
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Watch for the named instance in a goroutine
	go func() {
		for entry := range entries {
			instance := s.parseServiceEntry(entry)
			if instance != nil && instance.Name == name {
				instanceChan <- instance
				cancel() // Found the instance, cancel context
				return
			}
		}
	}()

	// Start browsing for Engine services
	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for instance or timeout
	select {
	case instance := <-instanceChan:
		return instance, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("engine %q not found within timeout", name)
	}
}

// parseServiceEntry converts a zeroconf service entry to an Instance
// Returns nil if the entry carries no usable address
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Instance {
	if entry.Instance == "" {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}

	// Fallback to IPv6 if no IPv4
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}

	if ip == "" {
		return nil
	}

	// Get port (default to 8000 if not specified)
	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// Parse TXT records into metadata
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			// Key without value
			metadata[parts[0]] = ""
		}
	}

	return &Instance{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Scan is a convenience function to scan for instances with a custom timeout
func Scan(timeout time.Duration) ([]*Instance, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.Scan()
}

// QuickScan performs a fast scan with a 3-second timeout
func QuickScan() ([]*Instance, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.Scan()
}

// FindInstance searches for a specific instance by name with default timeout
func FindInstance(name string) (*Instance, error) {
	scanner := NewScanner()
	return scanner.WaitForInstance(name)
}
