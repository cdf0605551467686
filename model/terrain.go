package model

import (
	"encoding/json"
	"fmt"
)

// TerrainType classifies a single room tile.
type TerrainType byte

const (
	Plain TerrainType = 0 // passable
	Swamp TerrainType = 1 // passable, slow
	Wall  TerrainType = 2 // natural wall, impassable
)

// TerrainGrid is the static RoomSize x RoomSize terrain of one room.
type TerrainGrid struct {
	Grid []TerrainType // row-major: Grid[y*RoomSize + x]
}

// At returns the terrain type at (x, y). Out-of-bounds tiles read as Wall.
// A missing or malformed grid reads as Plain inside the room: terrain is
// unknown, not impassable.
func (g *TerrainGrid) At(x, y int) TerrainType {
	if x < 0 || x >= RoomSize || y < 0 || y >= RoomSize {
		return Wall
	}
	if g == nil || len(g.Grid) != RoomSize*RoomSize {
		return Plain
	}
	return g.Grid[y*RoomSize+x]
}

// Passable reports whether terrain alone allows standing on (x, y).
func (g *TerrainGrid) Passable(x, y int) bool {
	return g.At(x, y) != Wall
}

// NewTerrainGrid builds a grid from raw wire values. Unknown values are
// treated as Wall.
func NewTerrainGrid(raw []int) *TerrainGrid {
	if len(raw) != RoomSize*RoomSize {
		return nil
	}
	grid := make([]TerrainType, len(raw))
	for i, v := range raw {
		switch TerrainType(v) {
		case Plain, Swamp:
			grid[i] = TerrainType(v)
		default:
			grid[i] = Wall
		}
	}
	return &TerrainGrid{Grid: grid}
}

// PlainTerrain returns an all-Plain grid.
func PlainTerrain() *TerrainGrid {
	return &TerrainGrid{Grid: make([]TerrainType, RoomSize*RoomSize)}
}

// UnmarshalJSON accepts the flat integer array sent by the simulation.
func (g *TerrainGrid) UnmarshalJSON(b []byte) error {
	var raw []int
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("unmarshal terrain: %w", err)
	}
	parsed := NewTerrainGrid(raw)
	if parsed == nil {
		return fmt.Errorf("terrain has %d tiles, want %d", len(raw), RoomSize*RoomSize)
	}
	*g = *parsed
	return nil
}

// MarshalJSON writes the grid back as a flat integer array.
func (g TerrainGrid) MarshalJSON() ([]byte, error) {
	raw := make([]int, len(g.Grid))
	for i, t := range g.Grid {
		raw[i] = int(t)
	}
	return json.Marshal(raw)
}
