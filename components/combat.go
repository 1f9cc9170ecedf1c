package components

// CombatState is the concurrent combat axis of an NPC's state. It is
// independent of Activity: a raider who is also fighting has
// Activity=Raiding, CombatState=Fighting, and re-enters Raiding (not
// Idle) once the fight ends.
type CombatState uint8

const (
	CombatNone CombatState = iota
	CombatFighting
	CombatFleeing
)

func (c CombatState) String() string {
	switch c {
	case CombatFighting:
		return "Fighting"
	case CombatFleeing:
		return "Fleeing"
	default:
		return "None"
	}
}

// Health tracks hit points. The GPU health buffer at a slot's index mirrors
// CurrentHP for every damageable thing (NPC or building proxy); CPU is
// authoritative and pushes changes via a sparse write.
type Health struct {
	Current, Max float32
}

// Alive reports whether hit points remain.
func (h Health) Alive() bool { return h.Current > 0 }

// Combat holds per-NPC combat bookkeeping not owned by the GPU shader.
type Combat struct {
	State           CombatState
	Target          int32 // validated enemy slot, or -1
	AttackCooldown  float32
	FlashIntensity  float32 // damage flash, decays at a fixed rate/sec
	LastHitBy       int32   // slot of the last attacker to land a hit, for XP grant
	ThreatEnemies   uint16  // packed threat count from the shader: enemies
	ThreatAllies    uint16  // and allies within the combat/threat scan radius
}

// BaseAttackType selects a projectile's kind-specific range/speed/lifetime.
type BaseAttackType uint8

const (
	AttackNone BaseAttackType = iota
	AttackMelee
	AttackArrow
	AttackCrossbowBolt
	AttackTowerBolt
)

// AttackProfile describes the kind-specific stats an attacker's projectiles
// are spawned with, before upgrade multipliers are applied.
type AttackProfile struct {
	Type      BaseAttackType
	Range     float32
	Damage    float32
	Cooldown  float32 // seconds between shots
	ProjSpeed float32
	ProjLife  float32 // seconds
}
