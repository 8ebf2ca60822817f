// README: Stage progression rules (monotonic advance, absorbing terminals) and per-step rendering state.
package status

type StepState struct {
	Completed bool `json:"completed"`
	Active    bool `json:"active"`
}

type Step struct {
	Stage Stage `json:"stage"`
	StepState
}

// Advance returns the stage that results from observing next while at current.
// Stage index never decreases; delivered and cancelled are absorbing; cancelled
// is reachable from any non-terminal stage.
func Advance(current, next Stage) Stage {
	if current == "" {
		return next
	}
	if current.Terminal() {
		return current
	}
	if next == StageCancelled {
		return StageCancelled
	}
	if next.Index() > current.Index() {
		return next
	}
	return current
}

func CanTransition(from, to Stage) bool {
	return Advance(from, to) == to && from != to
}

func StepStateOf(current, step Stage) StepState {
	if current == StageCancelled {
		return StepState{}
	}
	if current == StageDelivered {
		return StepState{Completed: true}
	}
	ci, si := current.Index(), step.Index()
	return StepState{Completed: ci > si, Active: ci == si}
}

// StepStateForRaw classifies currentRaw before computing the step state.
func StepStateForRaw(currentRaw string, step Stage) StepState {
	return StepStateOf(Classify(currentRaw), step)
}

func StepsFor(current Stage) []Step {
	out := make([]Step, 0, len(Steps))
	for _, st := range Steps {
		out = append(out, Step{Stage: st, StepState: StepStateOf(current, st)})
	}
	return out
}
