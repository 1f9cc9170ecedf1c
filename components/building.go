package components

// BuildingKind selects a building's registry entry (cost, HP, sprite
// index, save key, spawner job, tower stats). Adding a new building kind
// should only require a new registry row.
type BuildingKind uint8

const (
	BuildingFountain BuildingKind = iota
	BuildingFarm
	BuildingBed
	BuildingFarmerHome
	BuildingArcherHome
	BuildingCrossbowHome
	BuildingFighterHome
	BuildingMinerHome
	BuildingGoldMine
	BuildingWaypoint
	BuildingTent
	BuildingRoad
	BuildingTower
)

// IsTownCenter reports whether destroying this building's kind deactivates
// its town's AI brain.
func (k BuildingKind) IsTownCenter() bool {
	return k == BuildingFountain || k == BuildingTent
}

// TowerStats holds the optional ranged-attack stats of a BuildingTower.
type TowerStats struct {
	Range    float32
	Damage   float32
	Cooldown float32
}

// Building is the CPU-authoritative record for a placed building. Kind,
// position, and town index never change after placement; HP mirrors the
// GPU health buffer at ProxySlot for anything that can take damage.
type Building struct {
	Kind      BuildingKind
	Pos       Position
	TownIndex int32
	HP        Health
	Tower     *TowerStats // nil unless Kind==BuildingTower
	HasProxy  bool        // true if this building occupies a BUILDING_PROXY slot
	ProxySlot int32       // valid iff HasProxy
	Indestructible bool   // fountains/gold-mines/beds may be indestructible by design
}

// FarmState is the growth state attached to BuildingFarm entities.
type FarmState struct {
	Progress float32 // 0..1, Ready once it reaches 1
}

// Ready reports whether a farm is ready for harvest.
func (f FarmState) Ready() bool { return f.Progress >= 1 }

// MineState is the extraction state attached to BuildingGoldMine entities.
type MineState struct {
	WorkProgress float32 // hours accumulated toward MineWorkHours
	Occupants    uint8
	MaxOccupants uint8
}

// Full reports whether a mine has no room for another miner.
func (m MineState) Full() bool { return m.Occupants >= m.MaxOccupants }
