package gpufabric

import (
	"github.com/ironhold/endless/config"
)

// Fabric is the compute pipeline driven once per frame by the game loop's
// stage (f): grid build, physics/targeting, projectile integration. Both
// backends share the same SlotBuffers/ProjectileBuffers staging layout,
// so headless runs and tests get the identical buffer contract. Only the
// CPU backend carries out the math; the GPU backend's shaders are
// pass-through placeholders (see GPUFabric).
type Fabric interface {
	// Step runs one tick of the full compute pipeline: grid rebuild,
	// physics/targeting, projectile integration, in that order.
	Step(dt float32, buf *SlotBuffers, proj *ProjectileBuffers, highWater int32, frame uint64)

	// Readback returns the CPU-side position/combat-target/projectile
	// caches as of the last completed dispatch. On the GPU backend this
	// is deliberately one frame stale (spec §4F); on the CPU backend it
	// is always current, since there is no texture round-trip to delay.
	Readback() (positions []Vec2, combatTargets []int32, hits []int32)
}

// CPUFabric runs the entire compute pipeline directly in Go. It is the
// only Fabric implementation game.New actually constructs, so it is also
// the only physics/targeting/projectile behavior this repo runs, not
// merely a headless fallback for a GPU path validated against it — see
// GPUFabric's doc comment for why no such validation exists.
type CPUFabric struct {
	grid     *SpatialGrid
	physics  *PhysicsCPU
	projEng  *ProjectileEngine
	lastPos  []Vec2
	lastTgt  []int32
	lastHits []int32
}

// NewCPUFabric builds a CPU-backed fabric from config.
func NewCPUFabric(cfg *config.Config) *CPUFabric {
	grid := NewSpatialGrid(cfg)
	return &CPUFabric{
		grid:    grid,
		physics: NewPhysicsCPU(cfg, grid),
		projEng: NewProjectileEngine(cfg, grid),
	}
}

// Step implements Fabric.
func (f *CPUFabric) Step(dt float32, buf *SlotBuffers, proj *ProjectileBuffers, highWater int32, frame uint64) {
	f.grid.Rebuild(buf, highWater)
	f.physics.Dispatch(dt, buf, highWater, proj, frame)
	if proj != nil {
		f.projEng.Dispatch(dt, proj, buf)
	}

	if cap(f.lastPos) < int(highWater) {
		f.lastPos = make([]Vec2, highWater)
		f.lastTgt = make([]int32, highWater)
	}
	f.lastPos = f.lastPos[:highWater]
	f.lastTgt = f.lastTgt[:highWater]
	copy(f.lastPos, buf.Position[:highWater])
	copy(f.lastTgt, buf.CombatTarget[:highWater])

	if proj != nil {
		if cap(f.lastHits) < len(proj.HitSlot) {
			f.lastHits = make([]int32, len(proj.HitSlot))
		}
		f.lastHits = f.lastHits[:len(proj.HitSlot)]
		copy(f.lastHits, proj.HitSlot)
	}
}

// Readback implements Fabric.
func (f *CPUFabric) Readback() ([]Vec2, []int32, []int32) {
	return f.lastPos, f.lastTgt, f.lastHits
}
