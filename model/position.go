package model

import (
	"fmt"

	"github.com/paulmach/orb"
)

// RoomSize is the edge length of every room grid.
const RoomSize = 50

// interior excludes the exit tiles on the room border; nothing is ever
// placed there, so neighbors never land on it.
var interior = orb.Bound{
	Min: orb.Point{1, 1},
	Max: orb.Point{RoomSize - 2, RoomSize - 2},
}

// Position is a tile inside a named room.
type Position struct {
	Room string `json:"room"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (p Position) Point() orb.Point { return orb.Point{float64(p.X), float64(p.Y)} }

func (p Position) Key() string { return fmt.Sprintf("%s:%d,%d", p.Room, p.X, p.Y) }

func (p Position) String() string { return p.Key() }

// Neighbors returns the up to eight adjacent interior tiles in a fixed
// order: dx from -1 to 1, and dy from -1 to 1 within each dx.
func (p Position) Neighbors() []Position {
	out := make([]Position, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Position{Room: p.Room, X: p.X + dx, Y: p.Y + dy}
			if interior.Contains(n.Point()) {
				out = append(out, n)
			}
		}
	}
	return out
}

// InRangeTo reports whether other is in the same room and within r tiles
// (Chebyshev distance, the movement metric of the grid).
func (p Position) InRangeTo(other Position, r int) bool {
	if p.Room != other.Room {
		return false
	}
	return abs(p.X-other.X) <= r && abs(p.Y-other.Y) <= r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
