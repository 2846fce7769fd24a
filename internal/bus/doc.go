// Package bus carries state snapshots from controllers to whatever is
// rendering them.
//
// A Feed is a single-topic broadcast channel with latest-wins
// delivery: every published value is a complete snapshot, so a slow
// subscriber may skip intermediate snapshots but always observes the
// newest one. Publishing never blocks on subscribers.
package bus
