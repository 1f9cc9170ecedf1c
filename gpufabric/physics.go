package gpufabric

import (
	"math"
	"runtime"
	"sync"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/config"
)

// PhysicsCPU implements NPC Physics & Targeting (spec §4D) directly in
// Go: per-slot movement, separation, dodge, nearest-enemy scan, threat
// counting. It applies no pull toward roads, and nothing in this repo
// sets buf.OnRoad, so the road speed bonus and the road-road separation
// skip below never take effect. physics.fs, the GPU shader this was meant to
// have a render-pass counterpart in, is an unfinished pass-through
// placeholder (see its doc comment) with no uniform wiring for the
// inputs this math needs, so PhysicsCPU is this repo's only
// physics/targeting implementation, not one of two cross-checked paths.
// Chunked parallel dispatch across runtime.GOMAXPROCS(0) workers mirrors
// the teacher's game/parallel.go worker-pool pattern.
type PhysicsCPU struct {
	cfg  *config.Config
	grid *SpatialGrid
}

// NewPhysicsCPU builds a physics system bound to cfg and the shared grid.
func NewPhysicsCPU(cfg *config.Config, grid *SpatialGrid) *PhysicsCPU {
	return &PhysicsCPU{cfg: cfg, grid: grid}
}

const (
	arrivalRadiusDefault = 24.0
	roadSpeedMul         = 1.5
	projectileDodgeRange = 60.0
	goldenAngle          = 2.399963 // radians, golden-angle overlap fallback
)

// Dispatch runs one tick of physics/targeting over [0, highWater), writing
// results directly back into buf. projBuf may be nil if no projectiles are
// active.
func (p *PhysicsCPU) Dispatch(dt float32, buf *SlotBuffers, highWater int32, projBuf *ProjectileBuffers, frame uint64) {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	chunk := (int(highWater) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < int(highWater); start += chunk {
		end := start + chunk
		if end > int(highWater) {
			end = int(highWater)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			p.dispatchRange(dt, buf, int32(lo), int32(hi), highWater, projBuf)
		}(start, end)
	}
	wg.Wait()
}

func (p *PhysicsCPU) dispatchRange(dt float32, buf *SlotBuffers, lo, hi, highWater int32, projBuf *ProjectileBuffers) {
	var neighbors [MaxQueryResults]Neighbor
	for slot := lo; slot < hi; slot++ {
		if !components.IsAlivePos(components.Position{X: buf.Position[slot].X, Y: buf.Position[slot].Y}) {
			continue
		}
		flags := buf.Flags[slot]
		if flags.Has(components.BuildingProxy) && !flags.Has(components.Tower) {
			// stationary, non-combatant proxy: skip movement and targeting entirely.
			continue
		}

		self := buf.Position[slot]
		newVel := buf.Velocity[slot]

		if flags.Has(components.NPCMobile) && !buf.Arrived[slot] {
			steer := p.seek(self, buf.Target[slot])
			sep := p.separation(slot, self, buf, highWater)
			dodge := p.dodge(slot, self, buf.Velocity[slot], buf, highWater)
			pdodge := Vec2{}
			if projBuf != nil {
				pdodge = p.projectileDodge(self, projBuf)
			}

			newVel = steer.Add(sep).Add(dodge).Add(pdodge)
			speed := buf.Speed[slot]
			if buf.OnRoad[slot] {
				speed *= roadSpeedMul
			}
			newVel = clampLen(newVel, speed)

			next := self.Add(newVel.Scale(dt))
			buf.Position[slot] = next
			buf.Velocity[slot] = newVel

			if dist(next, buf.Target[slot]) <= arrivalRadiusDefault {
				buf.Arrived[slot] = true
			}
		}

		// targeting: nearest enemy and threat counts both come from this
		// one query over the combat scan window (GPU.ThreatScanCells is
		// not used here).
		scanRadius := p.grid.cellW * float32(p.cfg.GPU.CombatScanCells) / 2
		ns := p.grid.QueryRadiusInto(self, scanRadius, buf, neighbors[:0])
		p.resolveTargeting(slot, self, buf, ns)
	}
}

func (p *PhysicsCPU) seek(self, target Vec2) Vec2 {
	d := target.Sub(self)
	n := dist(self, target)
	if n < 1e-4 {
		return Vec2{}
	}
	return d.Scale(1.0 / n)
}

// separation sums normalize(self-other)*overlap across the 3x3 grid
// neighborhood, asymmetric: a moving entity pushes a settled one harder
// than the reverse. Exact-overlap (distance ~0) falls back to a
// deterministic golden-angle direction keyed by slot so two coincident
// NPCs don't produce a zero-vector degenerate push.
func (p *PhysicsCPU) separation(slot int32, self Vec2, buf *SlotBuffers, highWater int32) Vec2 {
	var out Vec2
	ns := p.grid.QueryRadiusInto(self, p.grid.cellW*1.5, buf, make([]Neighbor, 0, MaxQueryResults))
	for _, n := range ns {
		if n.Slot == slot {
			continue
		}
		if buf.OnRoad[slot] && buf.OnRoad[n.Slot] {
			continue // two road NPCs skip mutual separation
		}
		overlapR := float32(16.0)
		d2 := n.DistSq
		if d2 >= overlapR*overlapR {
			continue
		}
		d := float32(math.Sqrt(float64(d2)))
		var push Vec2
		if d < 0.01 {
			angle := goldenAngle * float64(slot)
			push = Vec2{float32(math.Cos(angle)), float32(math.Sin(angle))}
		} else {
			push = Vec2{-n.DX / d, -n.DY / d}
		}
		overlap := overlapR - d
		weight := float32(1.0)
		if buf.Flags[n.Slot].Has(components.NPCStationary) {
			weight = 1.6 // moving entity pushes settled one harder
		}
		out = out.Add(push.Scale(overlap * weight))
	}
	return out
}

// dodge steers away from each nearby moving NPC whose relative velocity
// is closing on this one, perpendicular to the other's velocity,
// choosing side deterministically by slot-id comparison so two NPCs
// don't oscillate by picking opposite sides. It does not tell head-on,
// crossing and overtaking encounters apart: every closing neighbour gets
// the same fixed-strength sidestep.
func (p *PhysicsCPU) dodge(slot int32, self, vel Vec2, buf *SlotBuffers, highWater int32) Vec2 {
	var out Vec2
	ns := p.grid.QueryRadiusInto(self, p.grid.cellW, buf, make([]Neighbor, 0, MaxQueryResults))
	for _, n := range ns {
		if n.Slot == slot || !buf.Flags[n.Slot].Has(components.NPCMobile) {
			continue
		}
		otherVel := buf.Velocity[n.Slot]
		if speedSq(otherVel) < 1e-3 {
			continue
		}
		closing := vel.Sub(otherVel)
		if dot(closing, Vec2{-n.DX, -n.DY}) <= 0 {
			continue // moving apart, no dodge needed
		}
		perp := Vec2{-otherVel.Y, otherVel.X}
		if slot < n.Slot {
			perp = perp.Scale(-1)
		}
		pn := normalize(perp)
		out = out.Add(pn.Scale(0.5))
	}
	return out
}

// projectileDodge strafes perpendicular to an approaching enemy
// projectile within range.
func (p *PhysicsCPU) projectileDodge(self Vec2, projBuf *ProjectileBuffers) Vec2 {
	var out Vec2
	for i := range projBuf.Active {
		if !projBuf.Active[i] {
			continue
		}
		d := dist(self, projBuf.Position[i])
		if d > projectileDodgeRange {
			continue
		}
		toSelf := self.Sub(projBuf.Position[i])
		if dot(toSelf, projBuf.Velocity[i]) <= 0 {
			continue // moving away from self
		}
		perp := normalize(Vec2{-projBuf.Velocity[i].Y, projBuf.Velocity[i].X})
		out = out.Add(perp.Scale(1.2))
	}
	return out
}

// resolveTargeting writes the nearest-enemy combat target (or -1) and
// threat counts from the neighbor scan.
func (p *PhysicsCPU) resolveTargeting(slot int32, self Vec2, buf *SlotBuffers, ns []Neighbor) {
	myFaction := buf.Faction[slot]
	best := int32(-1)
	bestD2 := float32(math.MaxFloat32)
	var enemies, allies uint16

	for _, n := range ns {
		if n.Slot == slot {
			continue
		}
		theirFaction := buf.Faction[n.Slot]
		if theirFaction == components.NeutralFaction {
			continue
		}
		if theirFaction == myFaction {
			allies++
			continue
		}
		enemies++
		if n.DistSq < bestD2 {
			bestD2 = n.DistSq
			best = n.Slot
		}
	}

	buf.CombatTarget[slot] = best
	buf.ThreatEnemies[slot] = enemies
	buf.ThreatAllies[slot] = allies
}

func dist(a, b Vec2) float32 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

func speedSq(v Vec2) float32 { return v.X*v.X + v.Y*v.Y }

func dot(a, b Vec2) float32 { return a.X*b.X + a.Y*b.Y }

func normalize(v Vec2) Vec2 {
	l := float32(math.Sqrt(float64(speedSq(v))))
	if l < 1e-4 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

func clampLen(v Vec2, maxLen float32) Vec2 {
	l := float32(math.Sqrt(float64(speedSq(v))))
	if l <= maxLen || l < 1e-4 {
		return v
	}
	return v.Scale(maxLen / l)
}
