package lifecycle

import "github.com/ironhold/endless/components"

// Spawner links a home building to the NPC slot it currently houses.
// LinkedSlot is -1 when the previous occupant is dead or the building was
// just placed; the respawn timer then counts down game hours to the next
// materialization.
type Spawner struct {
	Building     components.Building
	Kind         components.BuildingKind
	TownIndex    int32
	LinkedSlot   int32
	RespawnTimer float64 // game hours remaining; only meaningful while LinkedSlot < 0
}

// NewSpawner builds a spawner for a freshly placed home building, primed
// with the default respawn window.
func NewSpawner(b components.Building, kind components.BuildingKind, townIndex int32, respawnHours float64) *Spawner {
	return &Spawner{
		Building:     b,
		Kind:         kind,
		TownIndex:    townIndex,
		LinkedSlot:   -1,
		RespawnTimer: respawnHours,
	}
}

// Tick advances the respawn timer by gameHours. It returns true once the
// timer has run out and the caller should materialize a fresh NPC of the
// spawner's kind at the building position, resetting the timer for next
// time.
func (s *Spawner) Tick(gameHours, respawnHours float64) bool {
	if s.LinkedSlot >= 0 {
		return false
	}
	s.RespawnTimer -= gameHours
	if s.RespawnTimer > 0 {
		return false
	}
	s.RespawnTimer = respawnHours
	return true
}

// LinkSlot records the freshly materialized occupant.
func (s *Spawner) LinkSlot(slot int32) {
	s.LinkedSlot = slot
}

// Unlink clears the occupant reference when it dies, arming the respawn
// countdown from the caller-supplied default.
func (s *Spawner) Unlink(respawnHours float64) {
	s.LinkedSlot = -1
	s.RespawnTimer = respawnHours
}
