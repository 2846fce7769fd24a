// Package store holds the pure state for every workflow screen.
//
// Each workflow state is a plain record of three kinds of fields:
// status flags (Loading, Saving, Sending), domain data, and transient
// UI pointers (Error, Selected/Toggling/Deleting ids) that mark which
// single item is mid-operation. Each state has an Apply method that is
// a total transition function: deterministic, free of I/O, and a no-op
// for events it does not recognize. Replaying the same event sequence
// from the same initial state always yields the same final state.
//
// Apply uses value semantics with copy-on-write for slices and maps, so
// an applied event never aliases mutable data with the previous state.
// All I/O and sequencing policy lives in internal/controller; nothing
// here ever touches the network.
package store
