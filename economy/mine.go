package economy

import "github.com/ironhold/endless/components"

// AdvanceMine accrues work progress toward the next extraction cycle. When
// the cycle completes it resets WorkProgress and returns the gold amount
// to credit, scaled by the GoldYield upgrade multiplier; otherwise it
// returns 0.
func AdvanceMine(m *components.MineState, gameHours, workHoursPerCycle, extractPerCycle, goldYieldMult float64) float64 {
	m.WorkProgress += float32(gameHours / workHoursPerCycle)
	if m.WorkProgress < 1 {
		return 0
	}
	m.WorkProgress -= 1
	return extractPerCycle * goldYieldMult
}

// ClaimOccupant increments a mine's occupant count if it has capacity,
// reporting success. Full mines are skipped by the game package's
// nearestFreeWork lookup.
func ClaimOccupant(m *components.MineState) bool {
	if m.Full() {
		return false
	}
	m.Occupants++
	return true
}

// ReleaseOccupant decrements a mine's occupant count, called when a miner
// reassigns or dies.
func ReleaseOccupant(m *components.MineState) {
	if m.Occupants > 0 {
		m.Occupants--
	}
}
