// Package engine provides the wire gateway for the Lettuce Engine API.
//
// The Engine is a remote stateful service hosting AI character
// sessions: provider and engine configuration, character lifecycle
// (create/boost/load/unload/delete), chat exchange, and background-loop
// activity and usage reporting. This package exposes exactly one typed
// method per remote operation and nothing else: no retries, no
// interpretation, no policy. All sequencing and failure-tolerance
// policy lives in internal/controller.
//
// # Session Identity
//
// A Client is bound to one (base URL, access credential) pair at
// construction. The credential is sent as a Bearer token; health and
// setup-status probes work without one.
//
// # Error Taxonomy
//
// Every failure is an *engine.Error with one of three kinds:
//   - KindTransport: the Engine was unreachable (timeout, refused, DNS)
//   - KindApplication: the Engine answered with an error body; Message
//     carries the Engine's "detail" field verbatim
//   - KindDecode: the payload did not match the expected shape
//
// Callers must treat every field of a success payload as optional;
// absent fields decode to zero values and defaults are applied by the
// config normalizer, not here.
//
// # Usage Example
//
//	client := engine.NewClient("http://localhost:8742", apiKey)
//
//	health, err := client.Health(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Engine", health.Version)
//
// # Thread Safety
//
// Client instances are safe for concurrent use; they hold no mutable
// state beyond the shared http.Client instances.
package engine
