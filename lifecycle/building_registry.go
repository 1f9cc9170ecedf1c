package lifecycle

import "github.com/ironhold/endless/components"

// buildingMaxHP is the registry-driven max-HP table spec §9 calls for:
// adding a new building kind means adding one row here. Every current
// kind is listed; a kind missing from the table gets
// indestructibleDefaultHP. Whether a building may take damage at all is
// decided separately by combat.BuildingDamageAllowed.
var buildingMaxHP = map[components.BuildingKind]float32{
	components.BuildingFountain:     400,
	components.BuildingTower:        250,
	components.BuildingFarm:         120,
	components.BuildingGoldMine:     150,
	components.BuildingFarmerHome:   150,
	components.BuildingArcherHome:   150,
	components.BuildingCrossbowHome: 150,
	components.BuildingFighterHome:  150,
	components.BuildingMinerHome:    150,
	components.BuildingBed:          100,
	components.BuildingTent:         300,
	components.BuildingWaypoint:     60,
	components.BuildingRoad:         1,
}

const indestructibleDefaultHP = 9999

// MaxHPForKind returns the registry max-HP for a building kind.
func MaxHPForKind(kind components.BuildingKind) float32 {
	if hp, ok := buildingMaxHP[kind]; ok {
		return hp
	}
	return indestructibleDefaultHP
}
