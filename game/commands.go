package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/external"
	"github.com/ironhold/endless/gpufabric"
	"github.com/ironhold/endless/lifecycle"
	"github.com/ironhold/endless/squad"
)

// applyDeferredCommands handles the UiCommand kinds applyCommands left
// unhandled and passes every other kind (save/load among them) back
// untouched: this package has no external.SaveStore of its own, so Step
// parks them in PendingSaveLoad and the caller (main.go) runs them
// through g.SaveGame / g.LoadGame with its own store.
func (g *Game) applyDeferredCommands(cmds []external.UiCommand) []external.UiCommand {
	var rest []external.UiCommand
	for _, c := range cmds {
		switch c.Kind {
		case external.CmdBuildAt:
			g.handleBuildAt(c)
		case external.CmdDestroyBuilding:
			g.handleDestroyBuilding(c)
		case external.CmdAssignSquad:
			g.handleAssignSquad(c)
		case external.CmdSetSquadTarget:
			g.handleSetSquadTarget(c)
		case external.CmdPurchaseUpgrade:
			g.handlePurchaseUpgrade(c)
		case external.CmdToggleTower:
			g.handleToggleTower(c)
		case external.CmdRenameNpc:
			g.handleRenameNpc(c)
		case external.CmdSetMiningPolicy:
			g.handleSetMiningPolicy(c)
		default:
			rest = append(rest, c)
		}
	}
	return rest
}

// proxyEligible reports whether a building kind occupies a BUILDING_PROXY
// slot. Roads and waypoints are pure pathing/tile markers with no HP or
// render footprint of their own.
func proxyEligible(kind components.BuildingKind) bool {
	switch kind {
	case components.BuildingRoad, components.BuildingWaypoint:
		return false
	default:
		return true
	}
}

func (g *Game) handleBuildAt(c external.UiCommand) {
	g.placeBuilding(c.BuildingKind, c.Pos, c.TownIndex)
}

// placeBuilding materializes a building through the one path every building
// origin (player command, WorldGen, migration settlement) shares: registry
// HP lookup, BuildingManager.Place, spawner registration, and its
// BUILDING_PROXY slot.
func (g *Game) placeBuilding(kind components.BuildingKind, pos components.Position, townIndex int32) (ecs.Entity, int32) {
	hp := lifecycle.MaxHPForKind(kind)
	entity, idx := g.Buildings.Place(kind, pos, townIndex, hp)
	g.RegisterSpawner(idx, *g.Buildings.Building(entity))
	g.materializeBuildingProxy(entity, kind, pos, townIndex, hp)
	return entity, idx
}

// materializeBuildingProxy allocates and writes a BUILDING_PROXY slot for a
// newly placed building, called by placeBuilding's every caller (player
// commands, WorldGen's initial placements, migration settlement).
// Roads/waypoints have no proxy and are silently skipped.
func (g *Game) materializeBuildingProxy(entity ecs.Entity, kind components.BuildingKind, pos components.Position, townIndex int32, hp float32) {
	if !proxyEligible(kind) {
		return
	}
	slot, err := g.Alloc.Alloc()
	if err != nil {
		return
	}
	b := g.Buildings.Building(entity)
	b.HasProxy = true
	b.ProxySlot = slot

	flags := components.BuildingProxy
	if kind == components.BuildingTower {
		flags |= components.Tower
	}
	faction := components.NeutralFaction
	if town := g.townByIndex(townIndex); town != nil {
		faction = town.Faction
	}

	gv := gpufabric.Vec2{X: pos.X, Y: pos.Y}
	g.Buf.WritePositionSparse(slot, gv)
	g.Buf.WriteTarget(slot, gv)
	g.Buf.SetFaction(slot, faction)
	g.Buf.SetFlags(slot, flags)
	g.Buf.WriteHealth(slot, hp)
}

// handleDestroyBuilding treats TargetSlot as a building index (distinct
// from an NPC slot, which only CmdRenameNpc/CmdAssignSquad use).
func (g *Game) handleDestroyBuilding(c external.UiCommand) {
	entity, ok := g.Buildings.EntityForIndex(c.TargetSlot)
	if !ok {
		return
	}
	if b := g.Buildings.Building(entity); b != nil && b.HasProxy {
		g.Buf.Tombstone(b.ProxySlot)
		g.Alloc.Free(b.ProxySlot)
	}
	g.Buildings.Remove(c.TargetSlot)
	delete(g.Spawners, c.TargetSlot)
	g.Stats.RecordBuildingLost()
}

func (g *Game) handleAssignSquad(c external.UiCommand) {
	sq, ok := g.Squads[c.SquadID]
	if !ok {
		sq = squad.NewSquad(c.SquadID, c.TownIndex, c.Pos,
			g.cfg.Squad.DefaultWaveMinStart, g.cfg.Squad.DefaultRetreatBelowPct)
		g.Squads[c.SquadID] = sq
	}
	sq.AddMember(c.NpcSlot)

	entity, ok := g.Manager.EntityForSlot(c.NpcSlot)
	if !ok {
		return
	}
	if a := g.Manager.Assignment(entity); a != nil {
		a.SquadID = c.SquadID
	}
}

// handleSetSquadTarget only distinguishes an NPC target (TargetSlot>=0)
// from a bare position; a building target isn't reachable through the
// current command encoding, which has no separate target-kind field.
func (g *Game) handleSetSquadTarget(c external.UiCommand) {
	sq, ok := g.Squads[c.SquadID]
	if !ok {
		return
	}
	var target squad.Target
	switch {
	case c.TargetSlot >= 0:
		target = squad.Target{Kind: squad.TargetNpc, Slot: c.TargetSlot}
	case c.TargetPos != (components.Position{}):
		target = squad.Target{Kind: squad.TargetPosition, Pos: c.TargetPos}
	default:
		target = squad.Target{Kind: squad.TargetNone}
	}
	sq.SetManualTarget(target)
}

// upgradeCost doubles per level, starting at 100 for level 0. The curve is
// fixed here and is not one of cmd/balance's tuned parameters.
func upgradeCost(currentLevel int) float64 {
	return 100 * float64(uint(1)<<uint(currentLevel))
}

func (g *Game) handlePurchaseUpgrade(c external.UiCommand) {
	town := g.townByIndex(c.TownIndex)
	if town == nil {
		return
	}
	cost := upgradeCost(town.UpgradeLevel(c.UpgradeKey))
	if town.Gold.TrySpend(cost) {
		town.Upgrades[c.UpgradeKey]++
	}
}

// handleToggleTower flips the GPU-visible Tower flag on a tower's proxy
// slot, the bit physics.go's targeting loop checks to decide whether a
// stationary BuildingProxy fires.
func (g *Game) handleToggleTower(c external.UiCommand) {
	entity, ok := g.Buildings.EntityForIndex(c.TargetSlot)
	if !ok {
		return
	}
	b := g.Buildings.Building(entity)
	if b == nil || !b.HasProxy || b.Kind != components.BuildingTower {
		return
	}
	flags := g.Buf.Flags[b.ProxySlot]
	if flags.Has(components.Tower) {
		flags &^= components.Tower
	} else {
		flags |= components.Tower
	}
	g.Buf.SetFlags(b.ProxySlot, flags)
}

func (g *Game) handleRenameNpc(c external.UiCommand) {
	entity, ok := g.Manager.EntityForSlot(c.NpcSlot)
	if !ok {
		return
	}
	if n := g.Manager.Name(entity); n != nil {
		n.Value = c.NewName
	}
}

func (g *Game) handleSetMiningPolicy(c external.UiCommand) {
	if town := g.townByIndex(c.TownIndex); town != nil {
		town.Policies["mining"] = c.MiningPolicy
	}
}
