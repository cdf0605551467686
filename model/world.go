package model

// World is the observable state for one tick.
type World struct {
	Tick   int      `json:"tick"`
	Home   string   `json:"home"`   // room holding the colony's home base
	Target Position `json:"target"` // directive position inside the target area
	Area   *Room    `json:"area,omitempty"`
	Agents []Agent  `json:"agents"`
}

// AreaFacts returns the target area, or nil when it is not visible.
// The explicit nil keeps a nil *Room from turning into a non-nil interface.
func (w World) AreaFacts() AreaFacts {
	if w.Area == nil {
		return nil
	}
	return w.Area
}

// Agent is one mobile unit. The controller only ever writes Task.
type Agent struct {
	Name   string   `json:"name"`
	Pos    Position `json:"pos"`
	Energy int      `json:"energy"`
	Task   *Task    `json:"task,omitempty"`
}

// Handle addresses an agent inside a Pool.
type Handle int

// Pool is the arena of live agents for one cycle.
type Pool struct {
	agents []Agent
}

// NewPool copies agents into a fresh arena.
func NewPool(agents []Agent) *Pool {
	p := &Pool{agents: make([]Agent, len(agents))}
	copy(p.agents, agents)
	return p
}

func (p *Pool) Len() int { return len(p.agents) }

// Handles returns every valid handle in arena order.
func (p *Pool) Handles() []Handle {
	out := make([]Handle, len(p.agents))
	for i := range p.agents {
		out[i] = Handle(i)
	}
	return out
}

// Get returns a copy of the agent behind h.
func (p *Pool) Get(h Handle) (Agent, bool) {
	if int(h) < 0 || int(h) >= len(p.agents) {
		return Agent{}, false
	}
	return p.agents[h], true
}

// Assign overwrites the task of the agent behind h.
func (p *Pool) Assign(h Handle, t *Task) bool {
	if int(h) < 0 || int(h) >= len(p.agents) {
		return false
	}
	p.agents[h].Task = t
	return true
}

// AgentTemplate describes the body the spawning collaborator should build.
type AgentTemplate struct {
	Role string   `json:"role"`
	Body []string `json:"body"`
}

// PopulationRequest asks the spawning collaborator to keep Target agents
// of Template alive.
type PopulationRequest struct {
	Target   int           `json:"target"`
	Template AgentTemplate `json:"template"`
}
