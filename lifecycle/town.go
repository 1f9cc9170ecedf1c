// Package lifecycle implements NPC spawn/materialization, spawner
// respawn, AI migration, and save/load, grounded on the teacher's
// game/lifecycle.go spawnEntity/cleanupDead pattern and
// telemetry/snapshot.go versioned-JSON idiom.
package lifecycle

import (
	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/economy"
)

// Town is a plain, non-ECS shared resource per spec §5: the fountain
// position, per-town storages, upgrade levels, and policies. Towns are
// indexed by TownIndex, never referenced by pointer across save/load.
type Town struct {
	Index        int32
	Faction      int32
	FountainPos  components.Position
	Food         *economy.Storage
	Gold         *economy.Storage
	Upgrades     map[string]int
	Policies     map[string]string
	AIActive     bool
}

// NewTown builds an empty town at fountainPos for faction.
func NewTown(index, faction int32, fountainPos components.Position) *Town {
	return &Town{
		Index:       index,
		Faction:     faction,
		FountainPos: fountainPos,
		Food:        &economy.Storage{},
		Gold:        &economy.Storage{},
		Upgrades:    map[string]int{},
		Policies:    map[string]string{},
		AIActive:    faction != components.PlayerFaction,
	}
}

// UpgradeLevel returns the level of a named upgrade, 0 if unset.
func (t *Town) UpgradeLevel(name string) int {
	return t.Upgrades[name]
}

// GoldYieldMultiplier derives the mine-extraction multiplier from the
// town's GoldYield upgrade: each level adds 15%.
func (t *Town) GoldYieldMultiplier() float64 {
	return 1.0 + 0.15*float64(t.UpgradeLevel("gold_yield"))
}

// FarmUpgradeMultiplier derives the farm-growth multiplier similarly.
func (t *Town) FarmUpgradeMultiplier() float64 {
	return 1.0 + 0.15*float64(t.UpgradeLevel("farm_yield"))
}
