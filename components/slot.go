// Package components defines the ECS components for the simulation: the
// slot-indexed, GPU-synchronized NPC/projectile/building state plus the
// CPU-only behavior and lifecycle state layered on top of it.
package components

// Flags classifies how a slot participates in the GPU compute pipeline.
type Flags uint8

const (
	// NPCMobile slots have speed > 0 and run the full steering/separation/
	// dodge/road-attraction pass plus targeting.
	NPCMobile Flags = 1 << iota
	// NPCStationary slots (e.g. an attacking tower proxy) skip movement
	// but still participate in targeting.
	NPCStationary
	// BuildingProxy slots are invisible, speed=0, and only collide with
	// projectiles.
	BuildingProxy
	// Tower marks a BuildingProxy that should bypass the shader's
	// speed==0 early exit so it can be targeted and fire back.
	Tower
)

// Has reports whether f contains every bit in other.
func (f Flags) Has(other Flags) bool { return f&other == other }

// Any reports whether f contains any bit in other.
func (f Flags) Any(other Flags) bool { return f&other != 0 }

// Slot is the fixed integer index into every GPU buffer. It is the
// identity of an NPC or damageable building proxy while alive; a slot is
// recycled on death, so any stored Slot value must be re-validated
// through the entity map before use.
type Slot struct {
	Index int32
	Flags Flags
}

// TombstonePos is the off-map sentinel position written to a freed slot
// so the physics/targeting shader treats it as inert without a separate
// alive mask. No code other than IsAlivePos may hardcode this value.
var TombstonePos = Position{X: -9999, Y: -9999}

// NeutralFaction is the faction id meaning "never targeted, never
// targets" — both tombstoned slots and truly neutral wildlife use it.
const NeutralFaction int32 = -1

// PlayerFaction is the player's town faction id.
const PlayerFaction int32 = 0

// IsAlivePos reports whether a position is not the tombstone sentinel. This is
// the single helper every system must use instead of hardcoding the
// sentinel value.
func IsAlivePos(p Position) bool {
	return p != TombstonePos
}
