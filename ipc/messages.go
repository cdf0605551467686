package ipc

import "github.com/nstehr/sealer/model"

// These constants must stay in sync with the simulation's message types.
const (
	TypeHello = "hello"
	TypeAck   = "ack"
	TypeWorld = "world"
)

// HelloMessage opens a session: which colony we serve and which area the
// directive targets.
type HelloMessage struct {
	Colony   string               `json:"colony"` // home base room
	Target   model.Position       `json:"target"` // directive position
	Template *model.AgentTemplate `json:"template,omitempty"`
}

// WorldMessage carries the observable state for one tick.
type WorldMessage = model.World

type AckMessage struct {
	Status string `json:"status"`
	Tick   int    `json:"tick,omitempty"`
}
