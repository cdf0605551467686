package rules

import (
	"testing"

	"github.com/nstehr/sealer/model"
)

func TestSafePositionsDedupes(t *testing.T) {
	room := &model.Room{
		RoomName:        targetRoom,
		Ctrl:            &model.Controller{ID: "ctrl", Pos: at(10, 10), Level: 2},
		SourcePositions: []model.Position{at(11, 12)},
		Terrain:         model.PlainTerrain(),
	}
	env := envFor(inArea(50), room)

	got := env.SafePositions()
	// 8 around the controller + 8 around the source - 2 shared tiles.
	if len(got) != 14 {
		t.Fatalf("SafePositions() returned %d tiles, want 14: %v", len(got), got)
	}
	seen := make(map[model.Position]bool)
	for _, p := range got {
		if seen[p] {
			t.Errorf("duplicate tile %v", p)
		}
		seen[p] = true
	}
	// Controller neighbors come first.
	if got[0] != at(9, 9) {
		t.Errorf("first tile = %v, want %v", got[0], at(9, 9))
	}
}

func TestSafePositionsFiltersUnwalkable(t *testing.T) {
	grid := model.PlainTerrain()
	grid.Grid[13*model.RoomSize+12] = model.Wall // (12,13)

	room := &model.Room{
		RoomName:        targetRoom,
		Ctrl:            &model.Controller{ID: "ctrl", Pos: at(10, 10), Level: 2},
		SourcePositions: []model.Position{at(11, 12)},
		Terrain:         grid,
		Structures: []model.Structure{
			wall("w1", 100, 9, 9),
			{ID: "road", Type: model.StructureRoad, Pos: at(9, 10)},
		},
	}
	env := envFor(inArea(50), room)

	got := env.SafePositions()
	if len(got) != 12 {
		t.Fatalf("SafePositions() returned %d tiles, want 12: %v", len(got), got)
	}
	for _, p := range got {
		if p == at(9, 9) || p == at(12, 13) {
			t.Errorf("unwalkable tile %v returned", p)
		}
	}
}

func TestSafePositionsRoomEdge(t *testing.T) {
	room := &model.Room{
		RoomName: targetRoom,
		Ctrl:     &model.Controller{ID: "ctrl", Pos: at(1, 1), Level: 2},
		Terrain:  model.PlainTerrain(),
	}
	got := envFor(inArea(50), room).SafePositions()
	if len(got) != 3 {
		t.Errorf("SafePositions() at the edge returned %d tiles, want 3: %v", len(got), got)
	}
}

func TestEnvWithoutArea(t *testing.T) {
	env := envFor(inArea(50), nil)
	if env.HasController() {
		t.Error("HasController() should be false without vision")
	}
	if env.ControlLevel() != 0 {
		t.Errorf("ControlLevel() = %d, want 0", env.ControlLevel())
	}
	if env.WeakBarriers() != nil || env.ConstructionMarkers() != nil || env.SafePositions() != nil {
		t.Error("fact lists should be nil without vision")
	}
}

func TestAtHomeRequiresHome(t *testing.T) {
	env := RuleEnv{Agent: model.Agent{Pos: model.Position{Room: ""}}}
	if env.AtHome() {
		t.Error("AtHome() should be false when no home is known")
	}
}
