// Package wizard implements the step traversal shared by the setup
// wizard and the character-creation wizard.
//
// A Flow is an ordered, closed list of step identifiers. Forward
// navigation is gated on a per-step validity predicate evaluated from
// workflow state; backward navigation and jumps to already-visited
// steps are always legal. The terminal step is exited by an explicit
// completion action (save, create), never by Advance.
package wizard
