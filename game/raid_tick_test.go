package game

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/lifecycle"
	"github.com/ironhold/endless/worldgen"
)

func seededRaider(t *testing.T, g *Game) (lifecycle.NpcView, int32) {
	t.Helper()
	g.PopulateFresh(7, worldgen.NewGenerator())
	if len(g.Towns) < 2 {
		t.Fatalf("expected at least one enemy camp alongside the player town, got %d towns", len(g.Towns))
	}
	g.SeedPopulation(rand.New(rand.NewSource(1)), 1, components.JobRaider, g.Towns[1].FountainPos, 1)

	var view lifecycle.NpcView
	slot := int32(-1)
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		slot = v.Slot.Index
		view = v
	})
	if slot == -1 {
		t.Fatalf("expected a seeded raider")
	}
	return view, slot
}

func TestNearestFreeWorkFindsEnemyFarmForRaider(t *testing.T) {
	g := newTestGame(t)
	view, slot := seededRaider(t, g)

	target, dist, ok := g.nearestFreeWork(view, slot)
	if !ok {
		t.Fatalf("nearestFreeWork = false, want an enemy farm for the raider")
	}
	b := g.Buildings.Building(target)
	if b == nil || b.Kind != components.BuildingFarm {
		t.Fatalf("raid target is not a farm: %+v", b)
	}
	if b.TownIndex == g.npcTownIndex(view) {
		t.Fatalf("raid target town = %d, want a different town than the raider's own (%d)", b.TownIndex, g.npcTownIndex(view))
	}
	if dist < 0 {
		t.Errorf("dist = %v, want >= 0", dist)
	}
}

func TestAdvanceRaidingHarvestsAndCreditsLootThenDeliversHome(t *testing.T) {
	g := newTestGame(t)
	view, slot := seededRaider(t, g)

	target, _, ok := g.nearestFreeWork(view, slot)
	if !ok {
		t.Fatalf("expected an enemy farm to raid")
	}
	g.claimWorkTarget(view, target)
	*view.Activity = components.ActivityGoingToWork

	farm := g.Buildings.Farm(target)
	farm.Progress = 1 // ready to harvest

	g.Buf.Arrived[slot] = true
	g.resolveArrival(view, slot)
	if *view.Activity != components.ActivityRaiding {
		t.Fatalf("Activity = %v, want Raiding once the raider arrives at an enemy farm", *view.Activity)
	}

	g.advanceRaiding(view)
	if *view.Activity != components.ActivityReturning {
		t.Fatalf("Activity = %v, want Returning once the raid resolves", *view.Activity)
	}
	if view.Assignment.WorkTarget != (ecs.Entity{}) {
		t.Errorf("WorkTarget not cleared after raiding")
	}
	loot := g.Manager.Loot(view.Entity)
	if loot == nil || loot.Food <= 0 {
		t.Fatalf("loot.Food not credited by a ready-farm raid, got %+v", loot)
	}

	before := g.townFood(slot).Amount()
	stolenFood := loot.Food
	g.Buf.Arrived[slot] = true
	g.resolveArrival(view, slot)
	if *view.Activity != components.ActivityGoingToWork {
		t.Errorf("Activity = %v, want GoingToWork once the raider delivers loot home", *view.Activity)
	}
	if got := g.townFood(slot).Amount(); got != before+float64(stolenFood) {
		t.Errorf("raider's own town Food = %v, want %v after delivery", got, before+float64(stolenFood))
	}
}

func TestAdvanceRaidingOnUnreadyFarmReturnsEmptyHanded(t *testing.T) {
	g := newTestGame(t)
	view, slot := seededRaider(t, g)

	target, _, ok := g.nearestFreeWork(view, slot)
	if !ok {
		t.Fatalf("expected an enemy farm to raid")
	}
	g.claimWorkTarget(view, target)
	farm := g.Buildings.Farm(target)
	farm.Progress = 0 // not ready

	*view.Activity = components.ActivityRaiding
	g.advanceRaiding(view)

	if *view.Activity != components.ActivityReturning {
		t.Fatalf("Activity = %v, want Returning even on an empty-handed raid", *view.Activity)
	}
	if loot := g.Manager.Loot(view.Entity); loot != nil && loot.Food != 0 {
		t.Errorf("loot.Food = %v, want 0 from an unready farm", loot.Food)
	}
}
