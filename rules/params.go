package rules

// Params holds the tunable thresholds of the selection chain and of the
// population sizer.
type Params struct {
	MinBarrierHits   int `json:"min_barrier_hits" koanf:"min_barrier_hits"`     // barriers below this are fortified first
	UpgradeLevel     int `json:"upgrade_level" koanf:"upgrade_level"`           // control level to reach before anything else
	FleeRange        int `json:"flee_range" koanf:"flee_range"`                 // clearance kept from safe positions when idle
	PopulationTarget int `json:"population_target" koanf:"population_target"` // agents requested while the area is quiet
}

// Wall hits cap in the simulation.
const maxBarrierHits = 300_000_000

// DefaultParams returns the baseline thresholds.
func DefaultParams() Params {
	return Params{
		MinBarrierHits:   1,
		UpgradeLevel:     2,
		FleeRange:        3,
		PopulationTarget: 1,
	}
}

// Validate clamps all params to their valid ranges.
func (p *Params) Validate() {
	p.MinBarrierHits = clampInt(p.MinBarrierHits, 1, maxBarrierHits)
	p.UpgradeLevel = clampInt(p.UpgradeLevel, 1, 8)
	p.FleeRange = clampInt(p.FleeRange, 1, 10)
	p.PopulationTarget = clampInt(p.PopulationTarget, 1, 10)
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
