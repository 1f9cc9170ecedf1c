package gpufabric

import (
	"math"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/config"
)

// Hit sentinel values, mirrored from components for buffer-local use.
const (
	HitNone    = components.HitSentinelNone
	HitExpired = components.HitSentinelExpired
	HitMiss    = components.HitSentinelMiss
)

// ProjectileBuffers is the GPU-synchronized projectile buffer set: per-
// projectile position, velocity, damage, shooter, faction, lifetime,
// active flag, and hit output, exactly as spec §4B lists.
type ProjectileBuffers struct {
	Position       []Vec2
	Velocity       []Vec2
	Damage         []float32
	Shooter        []int32
	ShooterFaction []int32
	Lifetime       []float32
	Active         []bool
	Attack         []components.BaseAttackType
	HitSlot        []int32

	free []int32
}

// NewProjectileBuffers allocates inert projectile slots.
func NewProjectileBuffers(cfg *config.Config) *ProjectileBuffers {
	n := cfg.GPU.MaxProjectiles
	pb := &ProjectileBuffers{
		Position:       make([]Vec2, n),
		Velocity:       make([]Vec2, n),
		Damage:         make([]float32, n),
		Shooter:        make([]int32, n),
		ShooterFaction: make([]int32, n),
		Lifetime:       make([]float32, n),
		Active:         make([]bool, n),
		Attack:         make([]components.BaseAttackType, n),
		HitSlot:        make([]int32, n),
		free:           make([]int32, n),
	}
	for i := range pb.free {
		pb.free[i] = int32(n - 1 - i)
		pb.HitSlot[i] = HitNone
	}
	return pb
}

// Spawn activates a free projectile slot, or reports ok=false if the pool
// is exhausted (the oldest-in-flight cap silently drops new shots, which
// is acceptable: a saturated projectile pool means combat is already
// overloaded well past playable scale).
func (pb *ProjectileBuffers) Spawn(pos, vel Vec2, damage float32, shooter, shooterFaction int32, attack components.BaseAttackType) (int32, bool) {
	if len(pb.free) == 0 {
		return -1, false
	}
	idx := pb.free[len(pb.free)-1]
	pb.free = pb.free[:len(pb.free)-1]

	pb.Position[idx] = pos
	pb.Velocity[idx] = vel
	pb.Damage[idx] = damage
	pb.Shooter[idx] = shooter
	pb.ShooterFaction[idx] = shooterFaction
	pb.Lifetime[idx] = 3.0
	pb.Active[idx] = true
	pb.Attack[idx] = attack
	pb.HitSlot[idx] = HitNone
	return idx, true
}

func (pb *ProjectileBuffers) release(idx int32) {
	pb.Active[idx] = false
	pb.free = append(pb.free, idx)
}

// ProjectileEngine integrates active projectiles and resolves hits against
// the shared spatial grid (spec §4E).
type ProjectileEngine struct {
	cfg  *config.Config
	grid *SpatialGrid
}

// NewProjectileEngine builds a projectile engine sharing the NPC grid.
func NewProjectileEngine(cfg *config.Config, grid *SpatialGrid) *ProjectileEngine {
	return &ProjectileEngine{cfg: cfg, grid: grid}
}

// Dispatch advances every active projectile by dt, resolving collisions
// against buf (the NPC/building slot buffers) and writing HitSlot for
// each projectile that connected, expired, or missed.
func (e *ProjectileEngine) Dispatch(dt float32, pb *ProjectileBuffers, buf *SlotBuffers) {
	hitR := float32(e.cfg.GPU.ProjectileHitRadius)
	for i := range pb.Active {
		if !pb.Active[i] {
			continue
		}
		pb.Position[i] = pb.Position[i].Add(pb.Velocity[i].Scale(dt))
		pb.Lifetime[i] -= dt
		if pb.Lifetime[i] <= 0 {
			pb.HitSlot[i] = HitExpired
			pb.release(int32(i))
			continue
		}

		ns := e.grid.QueryRadiusInto(pb.Position[i], hitR*2, buf, make([]Neighbor, 0, MaxQueryResults))
		hit := int32(-1)
		bestD2 := hitR * hitR
		for _, n := range ns {
			if buf.Faction[n.Slot] == pb.ShooterFaction[i] || buf.Faction[n.Slot] == components.NeutralFaction {
				continue
			}
			if n.DistSq < bestD2 {
				bestD2 = n.DistSq
				hit = n.Slot
			}
		}
		if hit >= 0 {
			pb.HitSlot[i] = hit
			pb.release(int32(i))
		}
	}
}

// RayMissDistance returns the perpendicular miss distance of a shot fired
// from origin at velocity vel against a straight-line target moving at
// targetVel from targetStart, used by tests to assert the projectile-dodge
// property (spec §8 scenario 3) without running the full physics tick.
func RayMissDistance(origin, vel, targetStart, targetVel Vec2, t float32) float32 {
	shotAt := origin.Add(vel.Scale(t))
	targetAt := targetStart.Add(targetVel.Scale(t))
	return float32(math.Hypot(float64(shotAt.X-targetAt.X), float64(shotAt.Y-targetAt.Y)))
}
