package economy

import (
	"testing"

	"github.com/ironhold/endless/components"
)

func TestStorageCreditAndSpend(t *testing.T) {
	var s Storage
	s.Credit(10)
	if s.Amount() != 10 {
		t.Fatalf("amount = %v, want 10", s.Amount())
	}
	if !s.TrySpend(4) {
		t.Fatal("spend within balance should succeed")
	}
	if s.TrySpend(100) {
		t.Fatal("spend beyond balance should fail")
	}
	if s.Amount() != 6 {
		t.Fatalf("amount after spend = %v, want 6", s.Amount())
	}
}

func TestAdvanceFarmCapsAtReady(t *testing.T) {
	f := &components.FarmState{}
	AdvanceFarm(f, 100, 0.08, 0.12, 1.0, true)
	if !f.Ready() {
		t.Fatal("farm should be ready after enough growth hours")
	}
	if f.Progress > 1 {
		t.Fatalf("progress = %v, should cap at 1", f.Progress)
	}
}

func TestHarvestResetsProgress(t *testing.T) {
	f := &components.FarmState{Progress: 1}
	Harvest(f)
	if f.Progress != 0 {
		t.Fatal("harvest should reset progress to 0")
	}
}

func TestAdvanceMineExtractsOnCycleComplete(t *testing.T) {
	m := &components.MineState{MaxOccupants: 2}
	gold := AdvanceMine(m, 1, 2, 10, 1)
	if gold != 0 {
		t.Fatalf("half a cycle should not extract yet, got %v", gold)
	}
	gold = AdvanceMine(m, 1, 2, 10, 1)
	if gold != 10 {
		t.Fatalf("completed cycle should extract 10, got %v", gold)
	}
}

func TestMineOccupancyGating(t *testing.T) {
	m := &components.MineState{MaxOccupants: 1}
	if !ClaimOccupant(m) {
		t.Fatal("first claim should succeed")
	}
	if ClaimOccupant(m) {
		t.Fatal("second claim should fail once full")
	}
	ReleaseOccupant(m)
	if !ClaimOccupant(m) {
		t.Fatal("claim should succeed again after release")
	}
}

func TestArriveReturningCreditsOnlyWithinRadius(t *testing.T) {
	food, gold := &Storage{}, &Storage{}
	loot := components.Loot{Food: 5, Gold: 2}

	next, cleared := ArriveReturning(false, loot, food, gold)
	if next != components.ActivityReturning || cleared.Food != 5 {
		t.Fatal("outside delivery radius should keep loot and stay Returning")
	}
	if food.Amount() != 0 {
		t.Fatal("should not credit food before reaching delivery radius")
	}

	next, cleared = ArriveReturning(true, loot, food, gold)
	if next != components.ActivityGoingToWork {
		t.Fatal("within delivery radius should restart the work cycle")
	}
	if cleared != (components.Loot{}) {
		t.Fatal("loot should clear after delivery")
	}
	if food.Amount() != 5 || gold.Amount() != 2 {
		t.Fatal("delivery should credit both food and gold storages")
	}
}

func TestArriveRaidingHarvestsReadyFarm(t *testing.T) {
	farm := &components.FarmState{Progress: 1}
	next, loot := ArriveRaiding(farm, 3)
	if next != components.ActivityReturning {
		t.Fatal("raiding should always transition to Returning")
	}
	if loot.Food != 3 {
		t.Fatalf("loot food = %v, want 3", loot.Food)
	}
	if farm.Ready() {
		t.Fatal("harvested farm should reset to Growing")
	}
}
