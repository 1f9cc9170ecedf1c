package economy

import "github.com/ironhold/endless/components"

// AdvanceFarm accrues growth progress at the passive rate plus a tended
// bonus when claimed is true, scaled by the town's upgrade multiplier.
// Ready() becomes true once progress reaches 1.
func AdvanceFarm(f *components.FarmState, gameHours float64, passiveRate, tendedBonus, upgradeMult float64, claimed bool) {
	rate := passiveRate
	if claimed {
		rate += tendedBonus
	}
	f.Progress += float32(rate * upgradeMult * gameHours)
	if f.Progress > 1 {
		f.Progress = 1
	}
}

// Harvest is the single transition back to Growing(0), reused by a
// farmer's own harvest, a miner's side-harvest for gold (not applicable
// to farms but kept uniform), and a raider's steal.
func Harvest(f *components.FarmState) {
	f.Progress = 0
}
