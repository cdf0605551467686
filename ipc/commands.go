package ipc

import "github.com/nstehr/sealer/model"

// Command type constants; these must stay in sync with the simulation's executor.
const (
	TypeAssign = "assign"
	TypeSpawn  = "spawn"
)

// AssignCommand writes one agent's task for the tick. A nil Task idles it.
type AssignCommand struct {
	Tick  int         `json:"tick"`
	Agent string      `json:"agent"`
	State model.State `json:"state"`
	Task  *model.Task `json:"task"`
}

// SpawnCommand asks the spawning collaborator to keep a population target.
type SpawnCommand struct {
	Tick     int                 `json:"tick"`
	Target   int                 `json:"target"`
	Template model.AgentTemplate `json:"template"`
}
