package combat

import "github.com/ironhold/endless/components"

// ApplyDamage subtracts damage (reduced by the victim's armor multiplier)
// from health, sets the GPU-visible damage flash to full intensity, and
// reports whether this hit was lethal.
func ApplyDamage(h *components.Health, flash *float32, raw, armorMult float32) (lethal bool) {
	h.Current -= raw * armorMult
	*flash = 1.0
	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	return false
}

// DecayFlash reduces a damage-flash intensity toward zero at a fixed
// rate per second.
func DecayFlash(flash *float32, dt, ratePerSecond float32) {
	*flash -= ratePerSecond * dt
	if *flash < 0 {
		*flash = 0
	}
}

// GrantKillXP credits the flat per-kill XP to the last-hit attacker and
// reports whether this XP pushes them to the next level (reaching level n
// takes n*n*100 total XP, see xpForLevel).
func GrantKillXP(lvl *components.LevelXP) (leveledUp bool) {
	lvl.XP += components.XPForKill
	needed := xpForLevel(lvl.Level + 1)
	if lvl.XP >= needed {
		lvl.Level++
		return true
	}
	return false
}

func xpForLevel(level uint16) uint32 {
	return uint32(level) * uint32(level) * 100
}

// BuildingDamageAllowed reports whether a building kind may take damage,
// per spec §4I: fountains/gold-mines/beds may be indestructible per
// design, enemy fountains are destructible.
func BuildingDamageAllowed(b components.Building, isEnemy bool) bool {
	if b.Indestructible {
		return isEnemy && b.Kind == components.BuildingFountain
	}
	return true
}
