package session

import (
	"github.com/nstehr/sealer/ipc"
	"github.com/nstehr/sealer/model"
	"github.com/nstehr/sealer/rules"
)

// connDispatcher sends decisions back over the session's connection.
type connDispatcher struct {
	conn *ipc.Connection
}

func (c connDispatcher) RequestPopulation(tick int, req model.PopulationRequest) error {
	return c.conn.Send(ipc.TypeSpawn, ipc.SpawnCommand{
		Tick:     tick,
		Target:   req.Target,
		Template: req.Template,
	})
}

func (c connDispatcher) Assign(tick int, agent string, d rules.Decision) error {
	return c.conn.Send(ipc.TypeAssign, ipc.AssignCommand{
		Tick:  tick,
		Agent: agent,
		State: d.State,
		Task:  d.Task,
	})
}
