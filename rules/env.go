package rules

import (
	"github.com/nstehr/sealer/model"
)

// RuleEnv is the decision input for one agent: the agent itself plus the
// read-only facts of the cycle. Its methods are callable from expr
// conditions.
type RuleEnv struct {
	Agent  model.Agent
	Home   string         // room of the colony's home base
	Target model.Position // directive position in the target area
	Area   model.AreaFacts
	Params Params
}

// AtHome reports whether the agent stands in the home base room.
func (e RuleEnv) AtHome() bool {
	return e.Home != "" && e.Agent.Pos.Room == e.Home
}

// InArea reports whether the agent stands in the target area.
func (e RuleEnv) InArea() bool {
	return e.Agent.Pos.Room == e.Target.Room
}

func (e RuleEnv) Energy() int { return e.Agent.Energy }

func (e RuleEnv) HasController() bool {
	_, ok := e.controller()
	return ok
}

// ControlLevel is 0 when no controller is visible.
func (e RuleEnv) ControlLevel() int {
	c, _ := e.controller()
	return c.Level
}

// WeakBarriers fetches the live barriers below the minimum durability.
func (e RuleEnv) WeakBarriers() []model.Structure {
	if e.Area == nil {
		return nil
	}
	var out []model.Structure
	for _, b := range e.Area.Barriers() {
		if b.Hits < e.Params.MinBarrierHits {
			out = append(out, b)
		}
	}
	return out
}

// ConstructionMarkers fetches the live pending construction markers.
func (e RuleEnv) ConstructionMarkers() []model.ConstructionMarker {
	if e.Area == nil {
		return nil
	}
	return e.Area.ConstructionMarkers()
}

// SafePositions collects the walkable tiles adjacent to the controller or
// any source, deduplicated in first-seen order. These are the tiles the
// directive may want to build on, so idle agents keep clear of them.
func (e RuleEnv) SafePositions() []model.Position {
	if e.Area == nil {
		return nil
	}
	var anchors []model.Position
	if c, ok := e.Area.Controller(); ok {
		anchors = append(anchors, c.Pos)
	}
	anchors = append(anchors, e.Area.Sources()...)

	seen := make(map[model.Position]bool)
	var out []model.Position
	for _, a := range anchors {
		for _, n := range a.Neighbors() {
			if seen[n] {
				continue
			}
			seen[n] = true
			if e.Area.Walkable(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

func (e RuleEnv) controller() (model.Controller, bool) {
	if e.Area == nil {
		return model.Controller{}, false
	}
	return e.Area.Controller()
}
