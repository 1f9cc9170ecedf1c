package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/combat"
	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/external"
	"github.com/ironhold/endless/lifecycle"
)

// FactionSummaries reports one row per town: live NPC count and current
// food/gold. Satisfies external.UiQueries.
func (g *Game) FactionSummaries() []external.FactionSummary {
	counts := make(map[int32]int, len(g.Towns))
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		slot := v.Slot.Index
		if slot < 0 || int(slot) >= len(g.Buf.Faction) {
			return
		}
		counts[g.Buf.Faction[slot]]++
	})

	out := make([]external.FactionSummary, 0, len(g.Towns))
	for _, t := range g.Towns {
		out = append(out, external.FactionSummary{
			Faction:  t.Faction,
			NpcCount: counts[t.Faction],
			Food:     t.Food.Amount(),
			Gold:     t.Gold.Amount(),
		})
	}
	return out
}

// NpcInspector returns a read-only snapshot of one NPC, false if the slot
// is unallocated or its entity has since died.
func (g *Game) NpcInspector(slot int32) (external.NpcInspectorView, bool) {
	entity, ok := g.Manager.EntityForSlot(slot)
	if !ok || slot < 0 || int(slot) >= len(g.Buf.Health) {
		return external.NpcInspectorView{}, false
	}

	var view external.NpcInspectorView
	found := false
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		if v.Entity != entity {
			return
		}
		found = true
		view = external.NpcInspectorView{
			Slot:        slot,
			Pos:         components.Position{X: g.Buf.Position[slot].X, Y: g.Buf.Position[slot].Y},
			Health:      g.Buf.Health[slot],
			MaxHealth:   g.statsMaxHealth(entity),
			Energy:      v.Energy.Current,
			Activity:    *v.Activity,
			Combat:      v.Combat.State,
			Personality: *v.Personality,
			SquadID:     v.Assignment.SquadID,
			Home:        v.Assignment.Home,
		}
		if equip := g.Manager.Equipment(entity); equip != nil {
			view.Equipment = *equip
		}
		if lvl := g.Manager.Level(entity); lvl != nil {
			view.Level = lvl.Level
			view.XP = lvl.XP
		}
	})
	return view, found
}

// CombatLogTail returns the n most recent combat events.
func (g *Game) CombatLogTail(n int) []combat.Event {
	return g.CombatLog.Tail(n)
}

// Roster lists every live NPC belonging to townIndex's faction.
func (g *Game) Roster(townIndex int32) []external.RosterRow {
	town := g.townByIndex(townIndex)
	if town == nil {
		return nil
	}
	var out []external.RosterRow
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		slot := v.Slot.Index
		if slot < 0 || int(slot) >= len(g.Buf.Faction) || g.Buf.Faction[slot] != town.Faction {
			return
		}
		out = append(out, external.RosterRow{
			Slot:     slot,
			Job:      *v.Job,
			Activity: *v.Activity,
		})
	})
	return out
}

// MiningAssignments reports every gold mine's occupancy.
func (g *Game) MiningAssignments() []external.MiningAssignmentView {
	var out []external.MiningAssignmentView
	g.Buildings.ForEach(func(e ecs.Entity, b *components.Building) {
		mine := g.Buildings.Mine(e)
		if mine == nil {
			return
		}
		idx, ok := g.Buildings.IndexOf(e)
		if !ok {
			return
		}
		out = append(out, external.MiningAssignmentView{
			BuildingIndex: int(idx),
			Occupants:     mine.Occupants,
			MaxOccupants:  mine.MaxOccupants,
		})
	})
	return out
}

// FarmAssignments reports every farm's growth progress.
func (g *Game) FarmAssignments() []external.FarmAssignmentView {
	var out []external.FarmAssignmentView
	g.Buildings.ForEach(func(e ecs.Entity, b *components.Building) {
		farm := g.Buildings.Farm(e)
		if farm == nil {
			return
		}
		idx, ok := g.Buildings.IndexOf(e)
		if !ok {
			return
		}
		out = append(out, external.FarmAssignmentView{
			BuildingIndex: int(idx),
			Progress:      farm.Progress,
		})
	})
	return out
}
