package combat

import "github.com/ironhold/endless/components"

// AttackProfiles is the registry-driven attack-kind table: adding a new
// BaseAttackType means adding one row here, per spec §9's
// registry-driven-breadth principle.
var AttackProfiles = map[components.BaseAttackType]components.AttackProfile{
	components.AttackMelee: {
		Type: components.AttackMelee, Range: 20, Damage: 8, Cooldown: 1.0, ProjSpeed: 0, ProjLife: 0.05,
	},
	components.AttackArrow: {
		Type: components.AttackArrow, Range: 250, Damage: 15, Cooldown: 1.5, ProjSpeed: 220, ProjLife: 3,
	},
	components.AttackCrossbowBolt: {
		Type: components.AttackCrossbowBolt, Range: 200, Damage: 22, Cooldown: 2.2, ProjSpeed: 260, ProjLife: 2.5,
	},
	components.AttackTowerBolt: {
		Type: components.AttackTowerBolt, Range: 320, Damage: 20, Cooldown: 1.8, ProjSpeed: 300, ProjLife: 3,
	},
}

// TickCooldown decrements an attacker's cooldown, gated by its cached
// attack-speed multiplier, floored at zero.
func TickCooldown(cooldown *float32, dt, attackSpeedMult float32) {
	*cooldown -= dt * attackSpeedMult
	if *cooldown < 0 {
		*cooldown = 0
	}
}

// CanFire reports whether an attacker with a validated target may fire
// this tick: cooldown elapsed and the target is a live, validated enemy
// slot (validation happens at the call site, game's combatTick, against
// the slot buffers, not here).
func CanFire(cooldown float32, targetSlot int32) bool {
	return cooldown <= 0 && targetSlot >= 0
}

// ResolveFireDamage applies a profile's damage and multipliers, returning
// the final damage to deal.
func ResolveFireDamage(profile components.AttackProfile, damageMult float32) float32 {
	return profile.Damage * damageMult
}
