package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantName string
		wantIP   string
		wantPort int
	}{
		{
			name: "valid instance with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "Lettuce Engine (study)"},
				HostName:      "study.local.",
				Port:          8000,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.42")},
				Text:          []string{"version=0.4.1", "auth=bearer"},
			},
			wantNil:  false,
			wantName: "Lettuce Engine (study)",
			wantIP:   "192.168.1.42",
			wantPort: 8000,
		},
		{
			name: "valid instance with custom port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "garage"},
				HostName:      "garage.local",
				Port:          8080,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.100")},
			},
			wantNil:  false,
			wantName: "garage",
			wantIP:   "192.168.1.100",
			wantPort: 8080,
		},
		{
			name: "no port specified (should default to 8000)",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "attic"},
				HostName:      "attic.local",
				Port:          0,
				AddrIPv4:      []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantNil:  false,
			wantName: "attic",
			wantIP:   "172.16.0.1",
			wantPort: 8000,
		},
		{
			name: "empty instance name",
			entry: &zeroconf.ServiceEntry{
				HostName: "anon.local",
				Port:     8000,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "ghost"},
				HostName:      "ghost.local",
				Port:          8000,
				AddrIPv4:      []net.IP{},
				AddrIPv6:      []net.IP{},
			},
			wantNil: true,
		},
		{
			name: "IPv6 only instance",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "study"},
				HostName:      "study.local",
				Port:          8000,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:  false,
			wantName: "study",
			wantIP:   "fe80::1",
			wantPort: 8000,
		},
		{
			name: "both IPv4 and IPv6 (should prefer IPv4)",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "study"},
				HostName:      "study.local",
				Port:          8000,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::2")},
			},
			wantNil:  false,
			wantName: "study",
			wantIP:   "192.168.1.50",
			wantPort: 8000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instance := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if instance != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", instance)
				}
				return
			}

			if instance == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil instance")
			}

			if instance.Name != tt.wantName {
				t.Errorf("instance.Name = %v, want %v", instance.Name, tt.wantName)
			}

			if instance.IP != tt.wantIP {
				t.Errorf("instance.IP = %v, want %v", instance.IP, tt.wantIP)
			}

			if instance.Port != tt.wantPort {
				t.Errorf("instance.Port = %v, want %v", instance.Port, tt.wantPort)
			}

			if instance.Hostname != tt.entry.HostName {
				t.Errorf("instance.Hostname = %v, want %v", instance.Hostname, tt.entry.HostName)
			}

			// Check that DiscoveredAt is recent (within last second)
			if time.Since(instance.DiscoveredAt) > time.Second {
				t.Errorf("instance.DiscoveredAt is not recent: %v", instance.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	scanner := NewScanner()

	entry := &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "Lettuce Engine (study)"},
		HostName:      "study.local",
		Port:          8000,
		AddrIPv4:      []net.IP{net.ParseIP("192.168.1.42")},
		Text:          []string{"version=0.4.1", "auth=bearer", "flag", "path=/api"},
	}

	instance := scanner.parseServiceEntry(entry)
	if instance == nil {
		t.Fatal("parseServiceEntry() = nil, want instance")
	}

	// Check metadata parsing
	expectedMetadata := map[string]string{
		"version": "0.4.1",
		"auth":    "bearer",
		"flag":    "", // Key without value
		"path":    "/api",
	}

	if len(instance.Metadata) != len(expectedMetadata) {
		t.Errorf("instance.Metadata has %d entries, want %d", len(instance.Metadata), len(expectedMetadata))
	}

	for key, expectedValue := range expectedMetadata {
		if actualValue, ok := instance.Metadata[key]; !ok {
			t.Errorf("instance.Metadata missing key %q", key)
		} else if actualValue != expectedValue {
			t.Errorf("instance.Metadata[%q] = %q, want %q", key, actualValue, expectedValue)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

// Note: Integration tests with live mDNS discovery require network access
// and should be run manually with:
// go test -tags=integration ./internal/discovery/
