package lifecycle

import (
	"math"

	"github.com/ironhold/endless/components"
)

// MigrationPhase tracks a PendingAiSpawn's lifecycle once it fires: boat
// en route, disembarked on land, or fully settled.
type MigrationPhase uint8

const (
	PhaseBoat MigrationPhase = iota
	PhaseDisembarked
	PhaseSettled
)

// PendingAiSpawn is a queued migration/respawn trigger, per spec §4J:
// insufficient raider towns, player growth, or endless-mode replacement
// all enqueue one of these with a cooldown before it fires.
type PendingAiSpawn struct {
	Strength      float32
	Faction       int32
	Personality   components.Personality
	Kind          components.BuildingKind
	CooldownHours float64
}

// Migration tracks one in-flight PendingAiSpawn from boat-spawn through
// settlement.
type Migration struct {
	Spawn        PendingAiSpawn
	BoatPos      components.Position
	SettleTarget components.Position
	Members      []int32 // NPC slots aboard, pruned as they die
	Phase        MigrationPhase
}

// NewMigration places a boat at mapEdge heading toward settleTarget.
func NewMigration(spawn PendingAiSpawn, mapEdge, settleTarget components.Position) *Migration {
	return &Migration{
		Spawn:        spawn,
		BoatPos:      mapEdge,
		SettleTarget: settleTarget,
		Phase:        PhaseBoat,
	}
}

// AdvanceBoat moves the boat toward its settle target at boatSpeed,
// returning true once it has arrived and should disembark.
func (m *Migration) AdvanceBoat(dt float64, boatSpeed float64) bool {
	if m.Phase != PhaseBoat {
		return false
	}
	dx := float64(m.SettleTarget.X - m.BoatPos.X)
	dy := float64(m.SettleTarget.Y - m.BoatPos.Y)
	dist := math.Hypot(dx, dy)
	if dist <= boatSpeed*dt {
		m.BoatPos = m.SettleTarget
		m.Phase = PhaseDisembarked
		return true
	}
	step := boatSpeed * dt / dist
	m.BoatPos.X += float32(dx * step)
	m.BoatPos.Y += float32(dy * step)
	return false
}

// AllMembersDead reports whether every migrating NPC died before
// settlement completed, in which case the migration must be cleared and
// a replacement PendingAiSpawn queued 4h later per spec §4J.
func (m *Migration) AllMembersDead(isAlive func(slot int32) bool) bool {
	if m.Phase == PhaseSettled {
		return false
	}
	if len(m.Members) == 0 {
		return false
	}
	for _, slot := range m.Members {
		if isAlive(slot) {
			return false
		}
	}
	return true
}

// Settle marks the migration complete once place_buildings has run.
func (m *Migration) Settle() {
	m.Phase = PhaseSettled
}

// ReplacementSpawn builds the 4h-delayed replacement PendingAiSpawn for a
// migration whose members all died before settling.
func ReplacementSpawn(original PendingAiSpawn, delayHours float64) PendingAiSpawn {
	replacement := original
	replacement.CooldownHours = delayHours
	return replacement
}

