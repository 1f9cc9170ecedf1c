package economy

import "github.com/ironhold/endless/components"

// DrainEnergy applies activity-driven fatigue, floored at zero (zero
// triggers starvation rather than going negative).
func DrainEnergy(e *components.Energy, gameHours float64, drainPerHour float64) {
	e.Current -= float32(drainPerHour * gameHours)
	if e.Current < 0 {
		e.Current = 0
	}
}

// RestEnergy refills energy while resting, capped at EnergyMax.
func RestEnergy(e *components.Energy, gameHours float64, restPerHour float64) {
	e.Current += float32(restPerHour * gameHours)
	if e.Current > components.EnergyMax {
		e.Current = components.EnergyMax
	}
}

// StarvationSpeedMultiplier returns the speed penalty applied while
// starving, 1.0 otherwise.
func StarvationSpeedMultiplier(e components.Energy, penalty float64) float32 {
	if e.Starving() {
		return float32(penalty)
	}
	return 1.0
}
