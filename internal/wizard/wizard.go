// Package wizard holds the pure core of the vacancy wizard: the bounded step
// machine, per-step validation rule sets, draft snapshot/dirty tracking and
// the credit cost arithmetic. It performs no I/O; handlers wire it to the
// database and the HTTP surface.
//
// Step sequence:
//
//	1 Package ──► 2 Content ──► 3 Preview ──► 4 Submit
//
// Once a vacancy has been submitted, the package is immutable and step 1 is
// no longer reachable.
package wizard

import "fmt"

type Step int

const (
	StepPackage Step = 1
	StepContent Step = 2
	StepPreview Step = 3
	StepSubmit  Step = 4

	FirstStep = StepPackage
	LastStep  = StepSubmit
)

// ParseStep converts a raw step number, returning an error for out-of-range
// values.
func ParseStep(n int) (Step, error) {
	s := Step(n)
	if s < FirstStep || s > LastStep {
		return 0, fmt.Errorf("unknown wizard step %d", n)
	}
	return s, nil
}

// MinStep is the lowest step the wizard may sit on. Editing an already
// submitted vacancy never goes below the content step.
func MinStep(isExisting bool) Step {
	if isExisting {
		return StepContent
	}
	return StepPackage
}

// Next returns the step after current, bounded at the last step.
func Next(current Step) Step {
	if current >= LastStep {
		return LastStep
	}
	return current + 1
}

// Previous returns the step before current, bounded at MinStep.
func Previous(current Step, isExisting bool) Step {
	min := MinStep(isExisting)
	if current <= min {
		return min
	}
	return current - 1
}

// Bump mirrors the persisted step forward, never backward.
func Bump(current, to Step) Step {
	if to > current {
		return to
	}
	return current
}

// CanJump reports whether a direct jump from current to target is allowed:
// target must be reachable (≥ MinStep, ≤ LastStep), and either already
// completed or the successor of a completed current step. Anything else is a
// no-op for the caller.
func CanJump(current Step, completed map[Step]bool, target Step, isExisting bool) bool {
	if target < MinStep(isExisting) || target > LastStep {
		return false
	}
	if target == current {
		return false
	}
	if completed[target] {
		return true
	}
	return target == current+1 && completed[current]
}

// Clamp validates a client-supplied step hint against server state: the step
// is forced into [MinStep, maxReached+1] where maxReached is the highest
// completed step. Reload resilience without trusting the query string.
func Clamp(hint Step, completed map[Step]bool, isExisting bool) Step {
	min := MinStep(isExisting)
	max := min
	for s := FirstStep; s <= LastStep; s++ {
		if completed[s] && s >= max {
			max = s + 1
		}
	}
	if max > LastStep {
		max = LastStep
	}
	if hint < min {
		return min
	}
	if hint > max {
		return max
	}
	return hint
}

type StepPhase string

const (
	PhaseDone     StepPhase = "done"
	PhaseActive   StepPhase = "active"
	PhaseUpcoming StepPhase = "upcoming"
)

// StepState is one entry of the step indicator.
type StepState struct {
	Step      Step      `json:"step"`
	Phase     StepPhase `json:"phase"`
	Clickable bool      `json:"clickable"`
}

// StepStates derives the full step indicator: phase per step plus whether
// selecting it would be accepted. Steps below MinStep are omitted, so an
// edit-mode wizard never renders step 1 at all.
func StepStates(current Step, completed map[Step]bool, isExisting bool) []StepState {
	min := MinStep(isExisting)
	out := make([]StepState, 0, int(LastStep-min)+1)
	for s := min; s <= LastStep; s++ {
		st := StepState{Step: s}
		switch {
		case s == current:
			st.Phase = PhaseActive
		case completed[s]:
			st.Phase = PhaseDone
		default:
			st.Phase = PhaseUpcoming
		}
		st.Clickable = CanJump(current, completed, s, isExisting)
		out = append(out, st)
	}
	return out
}
