package lifecycle

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/components"
)

// defaultMineOccupants caps how many miners can work a gold mine
// concurrently; every mine, placed fresh or restored, gets this cap.
const defaultMineOccupants = 3

// BuildingManager owns the ECS entities backing placed buildings,
// mirroring Manager's Map1-per-component layering: every building always
// carries components.Building, with FarmState/MineState added only for
// the kinds that need growth/extraction bookkeeping. Index-based lookup
// (byIndex) gives each building a handle that survives across save/load,
// used by SpawnerSave.BuildingIndex and UI queries; an NPC's Assignment
// refers to buildings by ecs.Entity instead.
type BuildingManager struct {
	World *ecs.World

	buildingMap *ecs.Map1[components.Building]
	farmMap     *ecs.Map1[components.FarmState]
	mineMap     *ecs.Map1[components.MineState]

	buildingFilter *ecs.Filter1[components.Building]

	byIndex   map[int32]ecs.Entity
	indexOf   map[ecs.Entity]int32
	nextIndex int32
}

// NewBuildingManager builds a building manager bound to world.
func NewBuildingManager(world *ecs.World) *BuildingManager {
	return &BuildingManager{
		World:          world,
		buildingMap:    ecs.NewMap1[components.Building](world),
		farmMap:        ecs.NewMap1[components.FarmState](world),
		mineMap:        ecs.NewMap1[components.MineState](world),
		buildingFilter: ecs.NewFilter1[components.Building](world),
		byIndex:        make(map[int32]ecs.Entity),
		indexOf:        make(map[ecs.Entity]int32),
	}
}

// Place materializes a new building at pos for townIndex, attaching the
// kind-specific growth component, and registers it under a fresh index.
func (m *BuildingManager) Place(kind components.BuildingKind, pos components.Position, townIndex int32, maxHP float32) (ecs.Entity, int32) {
	idx := m.nextIndex
	m.nextIndex++

	b := components.Building{
		Kind:      kind,
		Pos:       pos,
		TownIndex: townIndex,
		HP:        components.Health{Current: maxHP, Max: maxHP},
	}
	e := m.buildingMap.NewEntity(&b)

	switch kind {
	case components.BuildingFarm:
		m.farmMap.Add(e, &components.FarmState{})
	case components.BuildingGoldMine:
		m.mineMap.Add(e, &components.MineState{MaxOccupants: defaultMineOccupants})
	}

	m.byIndex[idx] = e
	m.indexOf[e] = idx
	return e, idx
}

// PlaceAt restores a building at a previously-assigned index, used only by
// save/load: the document preserves each building's original index so a
// reloaded SpawnerSave.BuildingIndex resolves to the same building it did
// before the save. Advances nextIndex past idx
// so a subsequent fresh Place never collides with a restored index.
func (m *BuildingManager) PlaceAt(idx int32, kind components.BuildingKind, pos components.Position, townIndex int32, hp, maxHP float32) ecs.Entity {
	b := components.Building{
		Kind:      kind,
		Pos:       pos,
		TownIndex: townIndex,
		HP:        components.Health{Current: hp, Max: maxHP},
	}
	e := m.buildingMap.NewEntity(&b)

	switch kind {
	case components.BuildingFarm:
		m.farmMap.Add(e, &components.FarmState{})
	case components.BuildingGoldMine:
		m.mineMap.Add(e, &components.MineState{MaxOccupants: defaultMineOccupants})
	}

	m.byIndex[idx] = e
	m.indexOf[e] = idx
	if idx >= m.nextIndex {
		m.nextIndex = idx + 1
	}
	return e
}

// EntityForIndex resolves a building index back to its entity.
func (m *BuildingManager) EntityForIndex(idx int32) (ecs.Entity, bool) {
	e, ok := m.byIndex[idx]
	if !ok || !m.World.Alive(e) {
		return ecs.Entity{}, false
	}
	return e, true
}

// Building returns a building's core record.
func (m *BuildingManager) Building(e ecs.Entity) *components.Building {
	return m.buildingMap.Get(e)
}

// Farm returns a building's farm growth state, nil if it isn't a farm.
func (m *BuildingManager) Farm(e ecs.Entity) *components.FarmState {
	return m.farmMap.Get(e)
}

// Mine returns a building's mine extraction state, nil if it isn't a mine.
func (m *BuildingManager) Mine(e ecs.Entity) *components.MineState {
	return m.mineMap.Get(e)
}

// ForEach iterates every live building.
func (m *BuildingManager) ForEach(fn func(ecs.Entity, *components.Building)) {
	query := m.buildingFilter.Query()
	for query.Next() {
		fn(query.Entity(), query.Get())
	}
}

// IndexOf resolves a building entity back to its stable placement index,
// the inverse of EntityForIndex — needed by UI queries that report a
// building index (MiningAssignmentView, FarmAssignmentView) rather than an
// opaque ECS handle.
func (m *BuildingManager) IndexOf(e ecs.Entity) (int32, bool) {
	idx, ok := m.indexOf[e]
	return idx, ok
}

// Remove demolishes a building, freeing its index for reuse is
// deliberately not done: indices are save-stable identifiers, and the
// small leak from a destroyed building's index never being reassigned is
// cheaper than risking a stale building index (such as a spawner's
// BuildingIndex) resolving to a new building after a demolition.
func (m *BuildingManager) Remove(idx int32) {
	e, ok := m.byIndex[idx]
	if !ok {
		return
	}
	m.World.RemoveEntity(e)
	delete(m.byIndex, idx)
	delete(m.indexOf, e)
}
