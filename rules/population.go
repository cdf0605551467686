package rules

import (
	"log/slog"

	"github.com/nstehr/sealer/model"
)

// SizePopulation decides whether to ask for agents this cycle. It only asks
// while the area is visible and free of dangerous player hostiles; with
// hostiles present the pool is left to shrink through attrition.
func SizePopulation(area model.AreaFacts, p Params, tmpl model.AgentTemplate) (model.PopulationRequest, bool) {
	if area == nil {
		return model.PopulationRequest{}, false
	}
	if hostiles := model.DangerousPlayerHostiles(area); len(hostiles) > 0 {
		slog.Debug("population frozen", "room", area.Name(), "hostiles", len(hostiles))
		return model.PopulationRequest{}, false
	}
	p.Validate()
	return model.PopulationRequest{Target: p.PopulationTarget, Template: tmpl}, true
}
