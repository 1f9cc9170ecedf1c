package lifecycle

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/gpufabric"
	"github.com/ironhold/endless/slots"
	"github.com/ironhold/endless/traits"
)

// NpcSpawnOverrides carries load-time values that bypass the fresh-spawn
// defaults (level, XP, equipment, personality, carried loot, ...), so
// save/load can replay every NPC through the same materialize_npc path a
// fresh spawn uses per spec §4J.
type NpcSpawnOverrides struct {
	Personality *components.Personality
	Level       *components.LevelXP
	Equipment   *components.Equipment
	Loot        *components.Loot
	Energy      *float32
	Health      *float32
}

// SpawnRequest describes a new NPC to materialize.
type SpawnRequest struct {
	Pos       components.Position
	Faction   int32
	Job       components.Job
	Kind      components.Kind
	HomePos   components.Position
	Home      ecs.Entity
	Stats     components.CachedStats
	Overrides *NpcSpawnOverrides
}

// Manager owns the slot allocator, GPU-synchronized buffers, and the ECS
// world's NPC component maps, and is the single path (MaterializeNpc)
// through which every NPC — fresh spawn, spawner respawn, migration
// disembark, or load — comes into existence. The seven always-present
// components are created together through the core Map7; the remainder
// (name, level, equipment, loot, cached stats) are added individually right
// after, mirroring the teacher's entityMapper-plus-individual-Map1s
// layering (game/game.go's posMap/velMap/... alongside neuralGenomeMap).
type Manager struct {
	World *ecs.World
	Alloc *slots.Allocator
	Buf   *gpufabric.SlotBuffers

	coreMap *ecs.Map7[
		components.Slot,
		components.Combat,
		components.Activity,
		components.Job,
		components.Personality,
		components.Energy,
		components.Assignment,
	]
	coreFilter *ecs.Filter7[
		components.Slot,
		components.Combat,
		components.Activity,
		components.Job,
		components.Personality,
		components.Energy,
		components.Assignment,
	]
	levelMap  *ecs.Map1[components.LevelXP]
	equipMap  *ecs.Map1[components.Equipment]
	lootMap   *ecs.Map1[components.Loot]
	statsMap  *ecs.Map1[components.CachedStats]
	combatMap     *ecs.Map1[components.Combat]
	nameMap       *ecs.Map1[components.Name]
	assignmentMap *ecs.Map1[components.Assignment]
	activityMap   *ecs.Map1[components.Activity]
	energyMap     *ecs.Map1[components.Energy]

	rng    *rand.Rand
	bySlot map[int32]ecs.Entity
}

// NewManager builds a lifecycle manager bound to an ECS world and the
// shared GPU buffer fabric.
func NewManager(world *ecs.World, alloc *slots.Allocator, buf *gpufabric.SlotBuffers, rng *rand.Rand) *Manager {
	return &Manager{
		World: world,
		Alloc: alloc,
		Buf:   buf,
		coreMap: ecs.NewMap7[
			components.Slot,
			components.Combat,
			components.Activity,
			components.Job,
			components.Personality,
			components.Energy,
			components.Assignment,
		](world),
		coreFilter: ecs.NewFilter7[
			components.Slot,
			components.Combat,
			components.Activity,
			components.Job,
			components.Personality,
			components.Energy,
			components.Assignment,
		](world),
		levelMap:  ecs.NewMap1[components.LevelXP](world),
		equipMap:  ecs.NewMap1[components.Equipment](world),
		lootMap:   ecs.NewMap1[components.Loot](world),
		statsMap:  ecs.NewMap1[components.CachedStats](world),
		combatMap:     ecs.NewMap1[components.Combat](world),
		nameMap:       ecs.NewMap1[components.Name](world),
		assignmentMap: ecs.NewMap1[components.Assignment](world),
		activityMap:   ecs.NewMap1[components.Activity](world),
		energyMap:     ecs.NewMap1[components.Energy](world),
		rng:           rng,
		bySlot:    make(map[int32]ecs.Entity),
	}
}

// MaterializeNpc allocates a slot, resolves components, writes the
// initial GPU fields sparsely, and registers the NPC in the entity map
// (a plain slot->entity index here; validity is re-checked through
// World.Alive on every lookup, realizing the spec's entity-map concept).
// Slot exhaustion returns an error rather than panicking, per spec §7.
func (m *Manager) MaterializeNpc(req SpawnRequest) (ecs.Entity, int32, error) {
	slot, err := m.Alloc.Alloc()
	if err != nil {
		return ecs.Entity{}, -1, fmt.Errorf("materialize npc: %w", err)
	}

	personality := traits.Roll(m.rng)
	level := components.LevelXP{Level: 1}
	equip := components.Equipment{}
	var loot components.Loot
	energy := float32(components.EnergyMax)
	health := req.Stats.MaxHealth

	if o := req.Overrides; o != nil {
		if o.Personality != nil {
			personality = *o.Personality
		}
		if o.Level != nil {
			level = *o.Level
		}
		if o.Equipment != nil {
			equip = *o.Equipment
		}
		if o.Loot != nil {
			loot = *o.Loot
		}
		if o.Energy != nil {
			energy = *o.Energy
		}
		if o.Health != nil {
			health = *o.Health
		}
	}

	flags := components.NPCMobile
	if req.Kind == components.KindStationary {
		flags = components.NPCStationary
	}

	slotComp := components.Slot{Index: slot, Flags: flags}
	combat := components.Combat{Target: -1}
	activity := components.ActivityIdle
	energyComp := components.Energy{Current: energy}
	assignment := components.Assignment{Home: req.HomePos, HomeBuilding: req.Home, SquadID: -1, PatrolRoute: -1}

	entity := m.coreMap.NewEntity(&slotComp, &combat, &activity, &req.Job, &personality, &energyComp, &assignment)
	m.levelMap.Add(entity, &level)
	m.equipMap.Add(entity, &equip)
	m.lootMap.Add(entity, &loot)
	m.statsMap.Add(entity, &req.Stats)
	m.nameMap.Add(entity, &components.Name{})

	m.bySlot[slot] = entity

	m.Buf.WritePositionSparse(slot, gpufabric.Vec2{X: req.Pos.X, Y: req.Pos.Y})
	m.Buf.WriteTarget(slot, gpufabric.Vec2{X: req.Pos.X, Y: req.Pos.Y})
	m.Buf.SetFaction(slot, req.Faction)
	m.Buf.SetFlags(slot, flags)
	m.Buf.WriteHealth(slot, health)
	m.Buf.Speed[slot] = req.Stats.MaxSpeed

	return entity, slot, nil
}

// Despawn tombstones slot's GPU state, frees the allocator slot, removes
// the ECS entity, and drops the entity-map entry.
func (m *Manager) Despawn(slot int32) {
	if e, ok := m.bySlot[slot]; ok {
		m.World.RemoveEntity(e)
	}
	m.Buf.Tombstone(slot)
	m.Alloc.Free(slot)
	delete(m.bySlot, slot)
}

// EntityForSlot resolves a slot back to its ECS entity, validating
// liveness through World.Alive — the re-validation step spec §4F and §9
// require before any cross-reference is used.
func (m *Manager) EntityForSlot(slot int32) (ecs.Entity, bool) {
	e, ok := m.bySlot[slot]
	if !ok || !m.World.Alive(e) {
		return ecs.Entity{}, false
	}
	return e, true
}

// NpcView is one NPC's queryable state, yielded by ForEachNpc.
type NpcView struct {
	Entity      ecs.Entity
	Slot        *components.Slot
	Combat      *components.Combat
	Activity    *components.Activity
	Job         *components.Job
	Personality *components.Personality
	Energy      *components.Energy
	Assignment  *components.Assignment
}

// ForEachNpc iterates every live NPC's core components, mirroring the
// teacher's entityFilter.Query()/query.Get() loop (game/game.go).
func (m *Manager) ForEachNpc(fn func(NpcView)) {
	query := m.coreFilter.Query()
	for query.Next() {
		slot, combat, activity, job, personality, energy, assignment := query.Get()
		fn(NpcView{
			Entity:      query.Entity(),
			Slot:        slot,
			Combat:      combat,
			Activity:    activity,
			Job:         job,
			Personality: personality,
			Energy:      energy,
			Assignment:  assignment,
		})
	}
}

// Level returns an NPC's level/XP component, for systems outside the core
// query (XP grants on kill).
func (m *Manager) Level(e ecs.Entity) *components.LevelXP {
	return m.levelMap.Get(e)
}

// Stats returns an NPC's cached stat bundle.
func (m *Manager) Stats(e ecs.Entity) *components.CachedStats {
	return m.statsMap.Get(e)
}

// Loot returns an NPC's carried-loot component.
func (m *Manager) Loot(e ecs.Entity) *components.Loot {
	return m.lootMap.Get(e)
}

// Equipment returns an NPC's equipped weapon/helmet/armor ids.
func (m *Manager) Equipment(e ecs.Entity) *components.Equipment {
	return m.equipMap.Get(e)
}

// Combat returns an NPC's combat bookkeeping component, for systems
// outside the core query that only hold an entity (e.g. resolving a
// projectile hit back to its defender).
func (m *Manager) Combat(e ecs.Entity) *components.Combat {
	return m.combatMap.Get(e)
}

// Name returns an NPC's display-name component.
func (m *Manager) Name(e ecs.Entity) *components.Name {
	return m.nameMap.Get(e)
}

// Assignment returns an NPC's assignment component, for systems outside
// the core query that only hold an entity (e.g. a squad-assign command
// resolved from a slot).
func (m *Manager) Assignment(e ecs.Entity) *components.Assignment {
	return m.assignmentMap.Get(e)
}

// Activity returns an NPC's behavior-state component, for systems outside
// the core query that only hold an entity (e.g. restoring a save).
func (m *Manager) Activity(e ecs.Entity) *components.Activity {
	return m.activityMap.Get(e)
}

// Energy returns an NPC's fatigue component, for systems outside the core
// query that only hold an entity.
func (m *Manager) Energy(e ecs.Entity) *components.Energy {
	return m.energyMap.Get(e)
}
