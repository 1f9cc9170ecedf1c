package gpufabric

import (
	"testing"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

// TestArrivalLatchesOnce exercises spec scenario: an NPC whose cached
// position reaches its arrival radius sets Arrived exactly once and
// further ticks do not undo it without a new SetTarget.
func TestArrivalLatchesOnce(t *testing.T) {
	cfg := testConfig(t)
	grid := NewSpatialGrid(cfg)
	phys := NewPhysicsCPU(cfg, grid)
	buf := NewSlotBuffers(4)

	buf.WritePositionSparse(0, Vec2{100, 100})
	buf.WriteTarget(0, Vec2{100, 100})
	buf.Speed[0] = 50
	buf.SetFlags(0, components.NPCMobile)
	buf.SetFaction(0, components.PlayerFaction)

	grid.Rebuild(buf, 1)
	phys.Dispatch(1.0/60, buf, 1, nil, 0)

	if !buf.Arrived[0] {
		t.Fatal("NPC already at target should latch Arrived on first tick")
	}

	buf.Position[0] = Vec2{105, 100} // simulate a small post-arrival jitter
	phys.Dispatch(1.0/60, buf, 1, nil, 1)
	if !buf.Arrived[0] {
		t.Fatal("Arrived should not clear without a new SetTarget")
	}
}

// TestSeparationPushesOverlappingSlotsApart covers the 3x3 separation
// force: two coincident mobile NPCs must receive nonzero, opposite-signed
// separation velocity even at exact overlap (golden-angle fallback).
func TestSeparationPushesOverlappingSlotsApart(t *testing.T) {
	cfg := testConfig(t)
	grid := NewSpatialGrid(cfg)
	phys := NewPhysicsCPU(cfg, grid)
	buf := NewSlotBuffers(4)

	for _, slot := range []int32{0, 1} {
		buf.WritePositionSparse(slot, Vec2{500, 500})
		buf.WriteTarget(slot, Vec2{500, 500})
		buf.SetFlags(slot, components.NPCMobile)
		buf.SetFaction(slot, components.PlayerFaction)
	}

	grid.Rebuild(buf, 2)
	sep0 := phys.separation(0, buf.Position[0], buf, 2)
	sep1 := phys.separation(1, buf.Position[1], buf, 2)

	if speedSq(sep0) < 1e-6 || speedSq(sep1) < 1e-6 {
		t.Fatal("exact-overlap separation should fall back to a nonzero golden-angle push")
	}
}

// TestProjectileDodgeProducesMissDistance mirrors spec §8 scenario 3: a
// target crossing perpendicular to an incoming shot ends up off the
// original firing line by more than a few pixels.
func TestProjectileDodgeProducesMissDistance(t *testing.T) {
	origin := Vec2{0, 0}
	shotVel := Vec2{100, 0}
	targetStart := Vec2{200, 0}
	targetVel := Vec2{0, 60}

	impactT := float32(2.0) // (200,0) closing at 100px/s along X
	miss := RayMissDistance(origin, shotVel, targetStart, targetVel, impactT)

	if miss < 10 {
		t.Fatalf("miss distance = %.2f, want >= 10px per scenario", miss)
	}
}

// TestResolveTargetingPicksNearestEnemy checks faction-aware nearest
// enemy selection and threat counting.
func TestResolveTargetingPicksNearestEnemy(t *testing.T) {
	cfg := testConfig(t)
	grid := NewSpatialGrid(cfg)
	phys := NewPhysicsCPU(cfg, grid)
	buf := NewSlotBuffers(8)

	buf.WritePositionSparse(0, Vec2{1000, 1000})
	buf.SetFaction(0, components.PlayerFaction)
	buf.SetFlags(0, components.NPCMobile)

	buf.WritePositionSparse(1, Vec2{1010, 1000}) // near enemy
	buf.SetFaction(1, 1)
	buf.SetFlags(1, components.NPCMobile)

	buf.WritePositionSparse(2, Vec2{1200, 1000}) // far enemy
	buf.SetFaction(2, 1)
	buf.SetFlags(2, components.NPCMobile)

	buf.WritePositionSparse(3, Vec2{1005, 1005}) // ally
	buf.SetFaction(3, components.PlayerFaction)
	buf.SetFlags(3, components.NPCMobile)

	grid.Rebuild(buf, 4)
	ns := grid.QueryRadiusInto(buf.Position[0], 500, buf, make([]Neighbor, 0, MaxQueryResults))
	phys.resolveTargeting(0, buf.Position[0], buf, ns)

	if buf.CombatTarget[0] != 1 {
		t.Fatalf("combat target = %d, want 1 (nearest enemy)", buf.CombatTarget[0])
	}
	if buf.ThreatEnemies[0] != 2 {
		t.Fatalf("threat enemies = %d, want 2", buf.ThreatEnemies[0])
	}
	if buf.ThreatAllies[0] != 1 {
		t.Fatalf("threat allies = %d, want 1", buf.ThreatAllies[0])
	}
}
