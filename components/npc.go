package components

import "github.com/mlange-42/ark/ecs"

// Job is an NPC's occupation. Per-job base stats live in the
// lifecycle package's jobBaseStats table.
type Job uint8

const (
	JobNone Job = iota
	JobFarmer
	JobMiner
	JobArcher
	JobCrossbow
	JobFighter
	JobRaider
)

// Kind distinguishes how an NPC's slot participates in the GPU pipeline,
// independent of Job: a fighter home's guard is NPCMobile like a farmer,
// but a tower is NPCStationary.
type Kind uint8

const (
	KindMobile Kind = iota
	KindStationary
)

// Activity is the behavior axis of an NPC's state (see components.Combat
// for the concurrent combat axis). LootCarried is only meaningful while
// Activity == ActivityReturning; RecoverUntil is only meaningful while
// Activity is ActivityResting or ActivityHealingAtFountain.
type Activity uint8

const (
	ActivityIdle Activity = iota
	ActivityWorking
	ActivityOnDuty
	ActivityPatrolling
	ActivityGoingToWork
	ActivityGoingToRest
	ActivityResting
	ActivityWandering
	ActivityRaiding
	ActivityReturning
	ActivityHealingAtFountain
	ActivityMiningAtMine
	ActivityGoingToHeal
)

func (a Activity) String() string {
	names := [...]string{
		"Idle", "Working", "OnDuty", "Patrolling", "GoingToWork",
		"GoingToRest", "Resting", "Wandering", "Raiding", "Returning",
		"HealingAtFountain", "MiningAtMine", "GoingToHeal",
	}
	if int(a) < len(names) {
		return names[a]
	}
	return "Unknown"
}

// Personality is a bitset of dispositions that bias the Decision Core's
// utility weights and AI squad allocation shares. Grounded on the
// diet/behavior trait-bitset idiom.
type Personality uint16

const (
	Bold Personality = 1 << iota
	Cautious
	Loyal
	Greedy
	Aggressive
	Industrious
)

// Has reports whether p contains every bit in other.
func (p Personality) Has(other Personality) bool { return p&other == other }

// Energy models the 0..100 fatigue pool, decoupled from hunger/starvation
// (starvation is Current==0 triggering a separate flee-home response).
type Energy struct {
	Current float32 // 0..100
}

const (
	EnergyMax             float32 = 100
	EnergyEatThreshold    float32 = 35
	EnergyDrainPerHour    float32 = EnergyMax / 12 // empties in ~12 game-hours
	EnergyRestPerHour     float32 = EnergyMax / 4  // refills in ~4 game-hours resting
)

// Starving reports whether energy has hit zero, triggering the starvation
// penalties (50% speed, 50% HP cap, flee home).
func (e Energy) Starving() bool { return e.Current <= 0 }

// LevelXP tracks combat progression.
type LevelXP struct {
	Level uint16
	XP    uint32
}

// XPForKill is the flat XP grant on landing a kill, per the archer-vs-raider
// end-to-end scenario.
const XPForKill uint32 = 100

// Assignment binds an NPC to its home building, a work position (farm,
// mine, waypoint, enemy target), a squad, and a patrol route. Building
// references are by ecs.Entity (ark's own generational handle realizes the
// spec's "entity map" validity check: a stale reference to a recycled
// entity fails World.Alive). Squad and patrol route are plain registry
// indices since those registries are not ECS-managed.
type Assignment struct {
	Home         Position
	HomeBuilding ecs.Entity
	WorkTarget   ecs.Entity
	SquadID      int32 // -1 if unassigned
	PatrolRoute  int32 // -1 if unassigned
}

// Loot is the food/gold an NPC is carrying while Activity==ActivityReturning.
type Loot struct {
	Food, Gold float32
}

// Equipment indexes the weapon/helmet/armor registries; zero means
// "unequipped".
type Equipment struct {
	WeaponID, HelmetID, ArmorID uint16
}

// Name is an NPC's player-assigned display name, empty until a rename
// command sets one.
type Name struct {
	Value string
}

// CachedStats is the resolved-on-spawn-or-upgrade stat bundle derived from
// job, personality, level, and town upgrades. Recomputing this is the
// single seam the stat-resolution pipeline (lifecycle.ResolveStats) writes
// through; every other system reads it instead of re-deriving stats.
type CachedStats struct {
	MaxSpeed     float32
	MaxHealth    float32
	AttackSpeed  float32 // attacks/sec multiplier
	DamageMult   float32
	ArmorMult    float32 // incoming damage multiplier, <1 reduces damage
	VisionRange  float32
	ArrivalRadius float32
}
