package rules

import (
	"fmt"

	"github.com/nstehr/sealer/model"
)

// CompileGuards generates the task-selection chain from params. Conditions
// are built via fmt.Sprintf with interpolated values, so the compiler never
// generates invalid expr. Priorities are spaced by 100 so the order reads
// straight off the source.
func CompileGuards(p Params) []*Rule {
	p.Validate()

	return []*Rule{
		{
			// Home always has energy on hand, so never leave it empty.
			Name:         "recharge-home",
			Priority:     1000,
			State:        model.StateRecharge,
			ConditionSrc: `AtHome() && Energy() == 0`,
			Action:       ActionRecharge,
		},
		{
			Name:         "travel-to-area",
			Priority:     900,
			State:        model.StateTravel,
			ConditionSrc: `!InArea()`,
			Action:       ActionTravel,
		},
		{
			Name:         "await-controller",
			Priority:     800,
			State:        model.StateIdleNoController,
			ConditionSrc: `!HasController()`,
			Action:       ActionAwaitController,
		},
		{
			Name:         "recharge-area",
			Priority:     700,
			State:        model.StateRecharge,
			ConditionSrc: `Energy() == 0`,
			Action:       ActionRecharge,
		},
		{
			Name:         "upgrade-controller",
			Priority:     600,
			State:        model.StateUpgrade,
			ConditionSrc: fmt.Sprintf(`ControlLevel() < %d`, p.UpgradeLevel),
			Action:       ActionUpgrade,
		},
		{
			Name:         "fortify-barrier",
			Priority:     500,
			State:        model.StateFortify,
			ConditionSrc: `len(WeakBarriers()) > 0`,
			Action:       ActionFortify,
		},
		{
			Name:         "build-marker",
			Priority:     400,
			State:        model.StateBuild,
			ConditionSrc: `len(ConstructionMarkers()) > 0`,
			Action:       ActionBuild,
		},
		{
			Name:         "reposition",
			Priority:     300,
			State:        model.StateReposition,
			ConditionSrc: `len(SafePositions()) > 0`,
			Action:       ActionReposition,
		},
	}
}

// DefaultGuards compiles the chain with default params.
func DefaultGuards() []*Rule {
	return CompileGuards(DefaultParams())
}
