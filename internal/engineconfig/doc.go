// Package engineconfig maps between the Engine's wire configuration
// document and the client's editable model.
//
// The Engine returns one heterogeneous document from GET /config
// (nested groups, snake_case, everything optional) but accepts writes
// only as one call per group. This package owns both directions:
//
//   - Normalize: wire document -> flat editable record, applying a
//     documented default for every absent field. Absent groups are
//     treated identically to present-but-empty groups.
//   - BuildProviderPlan / SettingsRequests: editable record -> the
//     ordered write calls, including the secret-preserving merge (a
//     stored API key is only replaced when the user typed a new one),
//     explicit deletes for providers that were disabled locally but are
//     still configured remotely, and the default-backend fallback to
//     the first enabled provider in fixed order.
//
// Everything here is pure; the controllers execute the resulting plans
// against the wire gateway.
package engineconfig
