package model

import (
	"encoding/json"
	"testing"
)

func TestTerrainGridAt(t *testing.T) {
	grid := PlainTerrain()
	grid.Grid[2*RoomSize+3] = Wall  // (3,2)
	grid.Grid[4*RoomSize+1] = Swamp // (1,4)

	tests := []struct {
		x, y int
		want TerrainType
	}{
		{0, 0, Plain},
		{3, 2, Wall},
		{1, 4, Swamp},
		{49, 49, Plain},
	}
	for _, tc := range tests {
		got := grid.At(tc.x, tc.y)
		if got != tc.want {
			t.Errorf("At(%d, %d) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestTerrainGridAtOutOfBounds(t *testing.T) {
	grid := PlainTerrain()

	// Out-of-bounds should return Wall so nothing paths off the map.
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {RoomSize, 0}, {0, RoomSize}} {
		if got := grid.At(c[0], c[1]); got != Wall {
			t.Errorf("At(%d, %d) = %d, want Wall", c[0], c[1], got)
		}
	}
}

func TestTerrainGridUnknown(t *testing.T) {
	var grid *TerrainGrid
	if !grid.Passable(10, 10) {
		t.Error("nil grid should be passable inside the room")
	}
	if grid.Passable(-1, 10) {
		t.Error("nil grid should not be passable outside the room")
	}
	if NewTerrainGrid([]int{0, 1, 2}) != nil {
		t.Error("NewTerrainGrid should reject a grid of the wrong size")
	}
}

func TestTerrainGridJSON(t *testing.T) {
	raw := make([]int, RoomSize*RoomSize)
	raw[5] = 2
	raw[6] = 1
	raw[7] = 9 // unknown, read as wall
	b, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}

	var grid TerrainGrid
	if err := json.Unmarshal(b, &grid); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if grid.At(5, 0) != Wall || grid.At(6, 0) != Swamp || grid.At(7, 0) != Wall {
		t.Errorf("unexpected tiles: %d %d %d", grid.At(5, 0), grid.At(6, 0), grid.At(7, 0))
	}

	if err := json.Unmarshal([]byte(`[0,0,0]`), &grid); err == nil {
		t.Error("expected an error for a short terrain array")
	}
}
