// Package discovery provides mDNS-based discovery of Engine instances.
//
// This package implements multicast DNS (mDNS) service discovery to
// automatically locate Engines on the local network, so the CLI can connect
// without a manually configured base URL. Engines advertise themselves using
// the "_lettuce-engine._tcp" service type.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for service advertisements from Engine instances
//  3. Collects instance information (name, IP, port, TXT metadata)
//  4. Returns a list of discovered instances after the timeout period
//
// Discovery is best-effort. A failed or empty scan never blocks connecting
// to an Engine whose base URL is already known.
//
// # Usage Example
//
//	// Discover instances with a 10-second timeout
//	instances, err := discovery.Scan(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Print discovered instances
//	for _, instance := range instances {
//	    fmt.Printf("Found: %s at %s\n", instance.Name, instance.BaseURL())
//	}
//
// # Instance Information
//
// Each discovered instance includes:
//   - Name: mDNS instance name (e.g., "Lettuce Engine (study)")
//   - Hostname: the advertising host (e.g., "study.local")
//   - IP: IPv4 address, falling back to IPv6
//   - Port: HTTP API port (typically 8000)
//   - Metadata: TXT record key/value pairs (e.g., "version=0.4.1")
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Engines must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery
