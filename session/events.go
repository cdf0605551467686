package session

import (
	"fmt"
	"slices"

	"github.com/nstehr/sealer/model"
	"github.com/nstehr/sealer/rules"
)

// EventKind identifies a notable change in the target area between two
// consecutive cycles.
type EventKind string

const (
	EventControllerUpgraded EventKind = "controller_upgraded"
	EventHostilesArrived    EventKind = "hostiles_arrived"
	EventHostilesCleared    EventKind = "hostiles_cleared"
	EventBarrierBreached    EventKind = "barrier_breached"
	EventAreaSealed         EventKind = "area_sealed"
	EventAgentLost          EventKind = "agent_lost"
)

// Event is detected by diffing consecutive world snapshots. Events are only
// logged; decisions never read them, so the guard chain stays a function
// of the current cycle alone.
type Event struct {
	Kind   EventKind
	Tick   int
	Detail string
}

// stateSnapshot captures the diffable fields of one cycle.
type stateSnapshot struct {
	visible   bool
	level     int
	dangerous int
	weak      map[string]bool // barrier ids below the durability threshold
	sealed    bool
	agents    map[string]bool
}

func takeSnapshot(w model.World, p rules.Params) stateSnapshot {
	snap := stateSnapshot{
		weak:   make(map[string]bool),
		agents: make(map[string]bool, len(w.Agents)),
	}
	for _, a := range w.Agents {
		snap.agents[a.Name] = true
	}

	area := w.AreaFacts()
	if area == nil {
		return snap
	}
	snap.visible = true
	snap.dangerous = len(model.DangerousPlayerHostiles(area))

	c, hasController := area.Controller()
	snap.level = c.Level

	barriers := area.Barriers()
	for _, b := range barriers {
		if b.Hits < p.MinBarrierHits {
			snap.weak[b.ID] = true
		}
	}
	snap.sealed = hasController &&
		c.Level >= p.UpgradeLevel &&
		len(barriers) > 0 &&
		len(snap.weak) == 0 &&
		len(area.ConstructionMarkers()) == 0
	return snap
}

// detectEvents compares the current world to prev. Area events need the
// area visible in both cycles.
func detectEvents(w model.World, p rules.Params, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}
	cur := takeSnapshot(w, p)
	var events []Event

	if cur.visible && prev.visible {
		if cur.level > prev.level {
			events = append(events, Event{
				Kind:   EventControllerUpgraded,
				Tick:   w.Tick,
				Detail: fmt.Sprintf("control level %d -> %d", prev.level, cur.level),
			})
		}
		if cur.dangerous > 0 && prev.dangerous == 0 {
			events = append(events, Event{
				Kind:   EventHostilesArrived,
				Tick:   w.Tick,
				Detail: fmt.Sprintf("%d dangerous hostiles, population frozen", cur.dangerous),
			})
		}
		if cur.dangerous == 0 && prev.dangerous > 0 {
			events = append(events, Event{Kind: EventHostilesCleared, Tick: w.Tick, Detail: "area clear"})
		}
		for _, id := range newKeys(cur.weak, prev.weak) {
			events = append(events, Event{
				Kind:   EventBarrierBreached,
				Tick:   w.Tick,
				Detail: fmt.Sprintf("barrier %s below %d hits", id, p.MinBarrierHits),
			})
		}
		if cur.sealed && !prev.sealed {
			events = append(events, Event{Kind: EventAreaSealed, Tick: w.Tick, Detail: "all barriers standing"})
		}
	}

	for _, name := range newKeys(prev.agents, cur.agents) {
		events = append(events, Event{Kind: EventAgentLost, Tick: w.Tick, Detail: name})
	}
	return events
}

// newKeys returns the keys of a missing from b, sorted for stable output.
func newKeys(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
