package model

import (
	"cmp"
	"slices"
	"strings"
)

// Structure type constants.
const (
	StructureWall      = "wall"
	StructureRoad      = "road"
	StructureContainer = "container"
	StructureRampart   = "rampart"
)

// Owners that never count as another player.
const (
	OwnerInvader      = "Invader"
	OwnerSourceKeeper = "Source Keeper"
)

// walkableStructures can be stood on; every other structure blocks its tile.
// Ramparts additionally need to be ours or public.
var walkableStructures = map[string]bool{
	StructureRoad:      true,
	StructureContainer: true,
	StructureRampart:   true,
}

type Controller struct {
	ID    string   `json:"id"`
	Pos   Position `json:"pos"`
	Level int      `json:"level"`
}

type Structure struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Pos     Position `json:"pos"`
	Hits    int      `json:"hits"`
	HitsMax int      `json:"hitsMax"`
	My      bool     `json:"my"`
	Public  bool     `json:"isPublic"` // ramparts only
}

// Walkable reports whether an agent may stand on the structure's tile.
func (s Structure) Walkable() bool {
	kind := strings.ToLower(s.Type)
	if kind == StructureRampart {
		return s.My || s.Public
	}
	return walkableStructures[kind]
}

// ConstructionMarker is a pending build location queued by the directive.
type ConstructionMarker struct {
	ID   string   `json:"id"`
	Type string   `json:"type"`
	Pos  Position `json:"pos"`
}

type Hostile struct {
	ID    string   `json:"id"`
	Owner string   `json:"owner"`
	Pos   Position `json:"pos"`
	Body  []string `json:"body"`
}

// Player reports whether the hostile belongs to another player rather than
// to the environment's NPC factions.
func (h Hostile) Player() bool {
	return h.Owner != OwnerInvader && h.Owner != OwnerSourceKeeper
}

// Dangerous reports whether the hostile can damage or sustain combat.
func (h Hostile) Dangerous() bool {
	for _, part := range h.Body {
		switch strings.ToLower(part) {
		case "attack", "ranged_attack", "heal":
			return true
		}
	}
	return false
}

// AreaFacts is the read-only view of the target area for the current cycle.
//
// Barriers and ConstructionMarkers must be derived from the authoritative
// structure lists on every call and never memoized: a barrier that just
// dropped to zero hits or a marker that was just consumed has to be visible
// to the very next decision. Both return results in ascending ID order.
type AreaFacts interface {
	Name() string
	Controller() (Controller, bool)
	Barriers() []Structure
	ConstructionMarkers() []ConstructionMarker
	Sources() []Position
	Hostiles() []Hostile
	Walkable(pos Position) bool
}

// Room is the per-tick snapshot of one room as sent by the simulation.
// It implements AreaFacts.
type Room struct {
	RoomName          string               `json:"name"`
	Ctrl              *Controller          `json:"controller,omitempty"`
	Structures        []Structure          `json:"structures"`
	ConstructionSites []ConstructionMarker `json:"constructionSites"`
	SourcePositions   []Position           `json:"sources"`
	HostileCreeps     []Hostile            `json:"hostiles"`
	Terrain           *TerrainGrid         `json:"terrain,omitempty"`
}

func (r *Room) Name() string { return r.RoomName }

func (r *Room) Controller() (Controller, bool) {
	if r.Ctrl == nil {
		return Controller{}, false
	}
	return *r.Ctrl, true
}

func (r *Room) Barriers() []Structure {
	var out []Structure
	for _, s := range r.Structures {
		if strings.EqualFold(s.Type, StructureWall) {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b Structure) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r *Room) ConstructionMarkers() []ConstructionMarker {
	out := slices.Clone(r.ConstructionSites)
	slices.SortStableFunc(out, func(a, b ConstructionMarker) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r *Room) Sources() []Position { return slices.Clone(r.SourcePositions) }

func (r *Room) Hostiles() []Hostile { return slices.Clone(r.HostileCreeps) }

// Walkable ignores agents standing on the tile: only terrain and
// obstacle structures block it.
func (r *Room) Walkable(pos Position) bool {
	if pos.Room != r.RoomName {
		return false
	}
	if !r.Terrain.Passable(pos.X, pos.Y) {
		return false
	}
	for _, s := range r.Structures {
		if s.Pos == pos && !s.Walkable() {
			return false
		}
	}
	return true
}

// DangerousPlayerHostiles returns the player-owned hostiles able to fight.
func DangerousPlayerHostiles(area AreaFacts) []Hostile {
	var out []Hostile
	for _, h := range area.Hostiles() {
		if h.Player() && h.Dangerous() {
			out = append(out, h)
		}
	}
	return out
}
