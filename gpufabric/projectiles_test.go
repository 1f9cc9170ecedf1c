package gpufabric

import (
	"testing"

	"github.com/ironhold/endless/components"
)

func TestProjectileSpawnAndRelease(t *testing.T) {
	cfg := testConfig(t)
	pb := NewProjectileBuffers(cfg)

	idx, ok := pb.Spawn(Vec2{0, 0}, Vec2{100, 0}, 10, 5, components.PlayerFaction, components.AttackMelee)
	if !ok {
		t.Fatal("spawn should succeed with free capacity")
	}
	if !pb.Active[idx] {
		t.Fatal("spawned projectile should be active")
	}

	pb.release(idx)
	if pb.Active[idx] {
		t.Fatal("released projectile should be inactive")
	}
}

func TestProjectileEngineExpiresOnLifetime(t *testing.T) {
	cfg := testConfig(t)
	grid := NewSpatialGrid(cfg)
	eng := NewProjectileEngine(cfg, grid)
	pb := NewProjectileBuffers(cfg)
	buf := NewSlotBuffers(4)
	grid.Rebuild(buf, 0)

	idx, _ := pb.Spawn(Vec2{0, 0}, Vec2{0, 0}, 1, -1, components.NeutralFaction, components.AttackArrow)
	pb.Lifetime[idx] = 0.01

	eng.Dispatch(1.0, pb, buf)

	if pb.HitSlot[idx] != HitExpired {
		t.Fatalf("hit slot = %d, want HitExpired", pb.HitSlot[idx])
	}
	if pb.Active[idx] {
		t.Fatal("expired projectile should be released")
	}
}

func TestProjectileEngineResolvesHitAgainstEnemy(t *testing.T) {
	cfg := testConfig(t)
	grid := NewSpatialGrid(cfg)
	eng := NewProjectileEngine(cfg, grid)
	pb := NewProjectileBuffers(cfg)
	buf := NewSlotBuffers(4)

	buf.WritePositionSparse(0, Vec2{1000, 1000})
	buf.SetFaction(0, 1)
	grid.Rebuild(buf, 1)

	idx, _ := pb.Spawn(Vec2{998, 1000}, Vec2{50, 0}, 10, -1, components.PlayerFaction, components.AttackArrow)

	eng.Dispatch(0.1, pb, buf)

	if pb.HitSlot[idx] != 0 {
		t.Fatalf("hit slot = %d, want 0 (the enemy slot)", pb.HitSlot[idx])
	}
}
