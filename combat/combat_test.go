package combat

import (
	"testing"

	"github.com/ironhold/endless/components"
)

func TestApplyDamageReportsLethal(t *testing.T) {
	h := &components.Health{Current: 10, Max: 100}
	var flash float32
	lethal := ApplyDamage(h, &flash, 15, 1.0)
	if !lethal {
		t.Fatal("damage exceeding current HP should be lethal")
	}
	if h.Current != 0 {
		t.Fatalf("health should floor at 0, got %v", h.Current)
	}
	if flash != 1.0 {
		t.Fatal("damage should set flash to full intensity")
	}
}

func TestApplyDamageArmorMultiplierReducesDamage(t *testing.T) {
	h := &components.Health{Current: 100, Max: 100}
	var flash float32
	ApplyDamage(h, &flash, 20, 0.5)
	if h.Current != 90 {
		t.Fatalf("health = %v, want 90 with 0.5 armor mult", h.Current)
	}
}

func TestDecayFlashFloorsAtZero(t *testing.T) {
	flash := float32(1.0)
	DecayFlash(&flash, 1.0, 3.0)
	if flash != 0 {
		t.Fatalf("flash = %v, want 0 after decaying past zero", flash)
	}
}

func TestGrantKillXPMatchesScenario(t *testing.T) {
	lvl := &components.LevelXP{}
	GrantKillXP(lvl)
	if lvl.XP != components.XPForKill {
		t.Fatalf("xp = %v, want %v", lvl.XP, components.XPForKill)
	}
}

func TestCanFireRequiresCooldownElapsedAndValidTarget(t *testing.T) {
	if CanFire(0.5, 3) {
		t.Fatal("should not fire before cooldown elapses")
	}
	if CanFire(0, -1) {
		t.Fatal("should not fire without a validated target")
	}
	if !CanFire(0, 3) {
		t.Fatal("should fire with cooldown elapsed and a valid target")
	}
}

func TestLogTailReturnsMostRecentEvents(t *testing.T) {
	log := NewLog(3)
	for i := 0; i < 5; i++ {
		log.Append(Event{Kind: EventHit, Frame: uint64(i)})
	}
	tail := log.Tail(2)
	if len(tail) != 2 || tail[1].Frame != 4 {
		t.Fatalf("tail = %+v, want last 2 events capped at limit 3", tail)
	}
}

func TestBuildingDamageAllowedForEnemyFountainOnly(t *testing.T) {
	indestructibleFountain := components.Building{Kind: components.BuildingFountain, Indestructible: true}
	if !BuildingDamageAllowed(indestructibleFountain, true) {
		t.Fatal("enemy fountains should be destructible even if marked indestructible by default")
	}
	if BuildingDamageAllowed(indestructibleFountain, false) {
		t.Fatal("own indestructible fountain should not take damage")
	}
}
