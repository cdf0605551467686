package model

// TaskKind names a task primitive executed by the simulation.
type TaskKind string

const (
	TaskRecharge   TaskKind = "recharge"
	TaskTravel     TaskKind = "travel"
	TaskUpgrade    TaskKind = "upgrade"
	TaskFortify    TaskKind = "fortify"
	TaskBuild      TaskKind = "build"
	TaskReposition TaskKind = "reposition"
)

// Task is the single assignment written onto an agent for this cycle.
// A nil *Task means the agent idles.
type Task struct {
	Kind     TaskKind `json:"kind"`
	TargetID string   `json:"targetId,omitempty"`

	// Travel only.
	Destination    *Position `json:"destination,omitempty"`
	FreshPath      bool      `json:"freshPath,omitempty"`
	TolerateUnsafe bool      `json:"tolerateUnsafe,omitempty"`

	// Reposition only: keep at least Range tiles away from every target.
	Targets []Position `json:"targets,omitempty"`
	Range   int        `json:"range,omitempty"`
}

// ClearanceMet reports whether pos already keeps at least Range tiles from
// every reposition target.
func (t *Task) ClearanceMet(pos Position) bool {
	for _, target := range t.Targets {
		if pos.InRangeTo(target, t.Range-1) {
			return false
		}
	}
	return true
}

// State is the outcome of one decision. The set is fixed; guard order is
// the only transition priority between states.
type State string

const (
	StateRecharge         State = "recharge"
	StateTravel           State = "travel"
	StateIdleNoController State = "idle-no-controller"
	StateUpgrade          State = "upgrade"
	StateFortify          State = "fortify"
	StateBuild            State = "build"
	StateReposition       State = "reposition"
	StateIdleNoTargets    State = "idle-no-targets"
)

// Idle reports whether the state leaves the agent without a task.
func (s State) Idle() bool {
	return s == StateIdleNoController || s == StateIdleNoTargets
}
