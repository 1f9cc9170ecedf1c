package economy

import "github.com/ironhold/endless/components"

// ArriveGoingToWork resolves the GoingToWork -> Working transition. A
// farmer/miner/archer/raider that fails to claim a work slot (farm taken,
// mine full, route closed) stays in GoingToWork so the next utility pass
// retargets it.
func ArriveGoingToWork(claimed bool) components.Activity {
	if claimed {
		return components.ActivityWorking
	}
	return components.ActivityGoingToWork
}

// ArriveReturning resolves the Returning{loot} transition: if the NPC is
// within delivery radius of home, the loot is credited and the cycle
// restarts at GoingToWork; otherwise it keeps walking (Returning is
// unchanged, the shader is still chasing home).
func ArriveReturning(withinDeliveryRadius bool, loot components.Loot, food, gold *Storage) (next components.Activity, cleared components.Loot) {
	if !withinDeliveryRadius {
		return components.ActivityReturning, loot
	}
	if loot.Food > 0 {
		food.Credit(float64(loot.Food))
	}
	if loot.Gold > 0 {
		gold.Credit(float64(loot.Gold))
	}
	return components.ActivityGoingToWork, components.Loot{}
}

// ArriveRaiding resolves Raiding's arrival at an enemy farm: harvest if
// ready, add the stolen food to the raider's loot, and transition to
// Returning regardless (an empty farm still sends the raider home rather
// than idling in enemy territory).
func ArriveRaiding(farm *components.FarmState, stealAmount float32) (next components.Activity, loot components.Loot) {
	if farm.Ready() {
		Harvest(farm)
		loot.Food = stealAmount
	}
	return components.ActivityReturning, loot
}

// ArriveGoingToHeal resolves GoingToHeal -> HealingAtFountain.
func ArriveGoingToHeal() components.Activity {
	return components.ActivityHealingAtFountain
}

// ArriveGoingToRest resolves GoingToRest -> Resting.
func ArriveGoingToRest() components.Activity {
	return components.ActivityResting
}
