package wizard

// Step identifies one screen of a wizard. Each wizard declares its own
// closed, ordered set of steps.
type Step string

// Flow is a constrained traversal over an ordered list of steps. It
// holds no per-session state; position lives in the workflow state and
// the Flow only answers legality questions about transitions.
type Flow struct {
	steps []Step
}

// NewFlow creates a flow over the given steps, in order. The last step
// is terminal: it is exited via an explicit completion action, never
// via Advance.
func NewFlow(steps ...Step) Flow {
	return Flow{steps: steps}
}

// Steps returns the step order
func (f Flow) Steps() []Step {
	out := make([]Step, len(f.steps))
	copy(out, f.steps)
	return out
}

// First returns the entry step
func (f Flow) First() Step {
	if len(f.steps) == 0 {
		return ""
	}
	return f.steps[0]
}

// Terminal returns the final step
func (f Flow) Terminal() Step {
	if len(f.steps) == 0 {
		return ""
	}
	return f.steps[len(f.steps)-1]
}

// Index returns the position of a step, or -1 for steps outside the
// flow
func (f Flow) Index(step Step) int {
	for i, s := range f.steps {
		if s == step {
			return i
		}
	}
	return -1
}

// Contains reports whether step belongs to this flow
func (f Flow) Contains(step Step) bool {
	return f.Index(step) >= 0
}

// Advance moves forward one step, gated on the current step's validity
// predicate. It returns the unchanged step and false when the gate
// fails, the step is unknown, or the step is already terminal.
func (f Flow) Advance(current Step, valid func(Step) bool) (Step, bool) {
	i := f.Index(current)
	if i < 0 || i >= len(f.steps)-1 {
		return current, false
	}
	if valid != nil && !valid(current) {
		return current, false
	}
	return f.steps[i+1], true
}

// Back moves backward one step. Backward navigation is never gated.
func (f Flow) Back(current Step) (Step, bool) {
	i := f.Index(current)
	if i <= 0 {
		return current, false
	}
	return f.steps[i-1], true
}

// CanJump reports whether a jump to target is legal given the furthest
// step the wizard has validated its way to: any earlier step is fair
// game, skipping ahead of the furthest-validated step is not.
func (f Flow) CanJump(furthest, target Step) bool {
	ti := f.Index(target)
	fi := f.Index(furthest)
	return ti >= 0 && fi >= 0 && ti <= fi
}
