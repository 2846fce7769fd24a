package store

// Event is a state-transition input. Events are plain data; each state
// recognizes its own event vocabulary and ignores everything else.
type Event any
