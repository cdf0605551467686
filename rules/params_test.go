package rules

import "testing"

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{"defaults untouched", DefaultParams(), DefaultParams()},
		{"zero values clamp up", Params{}, Params{MinBarrierHits: 1, UpgradeLevel: 1, FleeRange: 1, PopulationTarget: 1}},
		{"large values clamp down", Params{MinBarrierHits: 1 << 40, UpgradeLevel: 12, FleeRange: 50, PopulationTarget: 99},
			Params{MinBarrierHits: maxBarrierHits, UpgradeLevel: 8, FleeRange: 10, PopulationTarget: 10}},
	}
	for _, tc := range tests {
		got := tc.in
		got.Validate()
		if got != tc.want {
			t.Errorf("%s: Validate() = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestMinByKeepsFirstOnTie(t *testing.T) {
	type item struct {
		id   string
		hits int
	}
	items := []item{{"a", 3}, {"b", 1}, {"c", 1}}
	got, ok := minBy(items, func(i item) int { return i.hits })
	if !ok || got.id != "b" {
		t.Errorf("minBy() = %v, %v; want b", got, ok)
	}
	if _, ok := minBy([]item(nil), func(i item) int { return i.hits }); ok {
		t.Error("minBy(nil) should report no result")
	}
}
