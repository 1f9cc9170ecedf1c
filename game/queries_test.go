package game

import (
	"math/rand"
	"testing"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/worldgen"
)

func TestFactionSummariesReportsNpcCountsAndResources(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	rng := rand.New(rand.NewSource(1))
	g.SeedPopulation(rng, 0, components.JobFarmer, g.Towns[0].FountainPos, 4)
	g.Towns[0].Food.Credit(25)

	summaries := g.FactionSummaries()
	if len(summaries) != len(g.Towns) {
		t.Fatalf("len(summaries) = %d, want %d", len(summaries), len(g.Towns))
	}

	found := false
	for _, s := range summaries {
		if s.Faction == g.Towns[0].Faction {
			found = true
			if s.NpcCount != 4 {
				t.Errorf("NpcCount = %d, want 4", s.NpcCount)
			}
			if s.Food != 25 {
				t.Errorf("Food = %v, want 25", s.Food)
			}
		}
	}
	if !found {
		t.Fatalf("no summary row for player faction %d", g.Towns[0].Faction)
	}
}

func TestNpcInspectorMissingSlotReturnsFalse(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())

	if _, ok := g.NpcInspector(9999); ok {
		t.Errorf("NpcInspector(9999) = true, want false for an unallocated slot")
	}
}

func TestNpcInspectorReturnsSeededNpc(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	rng := rand.New(rand.NewSource(1))
	g.SeedPopulation(rng, 0, components.JobFarmer, g.Towns[0].FountainPos, 1)

	var slot int32 = -1
	for i := int32(0); i < g.Alloc.HighWaterMark(); i++ {
		if _, ok := g.Manager.EntityForSlot(i); ok {
			slot = i
			break
		}
	}
	if slot == -1 {
		t.Fatalf("expected at least one seeded NPC slot")
	}

	view, ok := g.NpcInspector(slot)
	if !ok {
		t.Fatalf("NpcInspector(%d) = false, want true", slot)
	}
	if view.Slot != slot {
		t.Errorf("view.Slot = %d, want %d", view.Slot, slot)
	}
}
