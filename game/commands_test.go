package game

import (
	"math/rand"
	"testing"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/external"
	"github.com/ironhold/endless/lifecycle"
	"github.com/ironhold/endless/worldgen"
)

func TestHandleBuildAtRegistersSpawnerAndProxy(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())

	before := len(g.Spawners)
	g.Commands.Enqueue(external.UiCommand{
		Kind:         external.CmdBuildAt,
		BuildingKind: components.BuildingFarm,
		Pos:          components.Position{X: 500, Y: 500},
		TownIndex:    0,
	})
	g.Step(1.0 / 60.0)

	if len(g.Spawners) != before+1 {
		t.Fatalf("Spawners count = %d, want %d", len(g.Spawners), before+1)
	}
}

func TestHandleDestroyBuildingRemovesSpawnerAndFreesProxy(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())

	var idx int32 = -1
	for i := range g.Spawners {
		idx = i
		break
	}
	if idx == -1 {
		t.Fatalf("expected at least one spawner after PopulateFresh")
	}

	g.Commands.Enqueue(external.UiCommand{Kind: external.CmdDestroyBuilding, TargetSlot: idx})
	g.Step(1.0 / 60.0)

	if _, ok := g.Spawners[idx]; ok {
		t.Errorf("spawner %d still present after destroy", idx)
	}
	if _, ok := g.Buildings.EntityForIndex(idx); ok {
		t.Errorf("building %d still present after destroy", idx)
	}
}

func TestHandlePurchaseUpgradeSpendsGoldAndIncrementsLevel(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	g.Towns[0].Gold.Credit(1000)

	g.Commands.Enqueue(external.UiCommand{
		Kind:       external.CmdPurchaseUpgrade,
		TownIndex:  0,
		UpgradeKey: "gold_yield",
	})
	g.Step(1.0 / 60.0)

	if got := g.Towns[0].UpgradeLevel("gold_yield"); got != 1 {
		t.Errorf("UpgradeLevel(gold_yield) = %d, want 1", got)
	}
	if got := g.Towns[0].Gold.Amount(); got != 900 {
		t.Errorf("Gold.Amount() = %v, want 900", got)
	}
}

func TestHandlePurchaseUpgradeInsufficientGoldIsNoOp(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())

	g.Commands.Enqueue(external.UiCommand{
		Kind:       external.CmdPurchaseUpgrade,
		TownIndex:  0,
		UpgradeKey: "gold_yield",
	})
	g.Step(1.0 / 60.0)

	if got := g.Towns[0].UpgradeLevel("gold_yield"); got != 0 {
		t.Errorf("UpgradeLevel(gold_yield) = %d, want 0 (insufficient gold)", got)
	}
}

func TestHandleRenameNpc(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	rng := rand.New(rand.NewSource(1))
	g.SeedPopulation(rng, 0, components.JobFarmer, g.Towns[0].FountainPos, 1)

	var slot int32 = -1
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		if slot == -1 {
			slot = v.Slot.Index
		}
	})
	if slot == -1 {
		t.Fatalf("expected at least one seeded NPC")
	}

	g.Commands.Enqueue(external.UiCommand{
		Kind:    external.CmdRenameNpc,
		NpcSlot: slot,
		NewName: "Alaric",
	})
	g.Step(1.0 / 60.0)

	entity, ok := g.Manager.EntityForSlot(slot)
	if !ok {
		t.Fatalf("NPC at slot %d no longer alive", slot)
	}
	name := g.Manager.Name(entity)
	if name == nil || name.Value != "Alaric" {
		t.Errorf("Name = %+v, want Value=Alaric", name)
	}
}
