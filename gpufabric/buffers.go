// Package gpufabric owns the parallel, slot-indexed buffers that back
// every NPC, projectile, and damageable building proxy, and the compute
// pipeline (spatial grid, physics/targeting, projectile integration) that
// operates on them each frame. It exposes two backends behind the same
// Fabric interface: a raylib render-texture-backed GPU backend, and a
// plain-Go CPU backend used for headless runs and tests, mirroring the
// teacher's own GPU/CPU dual-path idiom (GPUResourceField vs.
// NewGameHeadless's CPU-only fields).
package gpufabric

import "github.com/ironhold/endless/components"

// Vec2 is a world-space position or velocity.
type Vec2 struct{ X, Y float32 }

// Sub returns a-b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Scale returns a*s.
func (a Vec2) Scale(s float32) Vec2 { return Vec2{a.X * s, a.Y * s} }

// SlotBuffers is the CPU-resident staging layout shared by both backends:
// the CPU backend computes directly against these slices, the GPU backend
// uploads them to textures before a dispatch and reads results back into
// them afterward. Every slice has length MaxSlots.
type SlotBuffers struct {
	Position []Vec2
	Velocity []Vec2
	Target   []Vec2
	Arrived  []bool

	Speed   []float32
	Faction []int32
	Health  []float32
	Flags   []components.Flags

	CombatTarget  []int32
	ThreatEnemies []uint16
	ThreatAllies  []uint16

	Flash   []float32
	Backoff []float32
	OnRoad  []bool

	VisualLayer []int32 // packed body/equipment/status index, -1 = none

	// Sparse write bookkeeping: dirty slot indices accumulated this frame
	// per buffer, cleared after upload. Bulk buffers (Faction, Flags) use
	// a single dirty bool instead.
	dirtyPosition []int32
	dirtyTarget   []int32
	dirtyHealth   []int32
	dirtyVisual   []int32

	factionDirty bool
	flagsDirty   bool
}

// NewSlotBuffers allocates a buffer set with sentinel defaults: positions
// off-map, factions neutral, healths zero, visual layers unset. These
// defaults make an unallocated slot inert to physics, targeting, and
// rendering without a separate alive mask.
func NewSlotBuffers(maxSlots int) *SlotBuffers {
	b := &SlotBuffers{
		Position:      make([]Vec2, maxSlots),
		Velocity:      make([]Vec2, maxSlots),
		Target:        make([]Vec2, maxSlots),
		Arrived:       make([]bool, maxSlots),
		Speed:         make([]float32, maxSlots),
		Faction:       make([]int32, maxSlots),
		Health:        make([]float32, maxSlots),
		Flags:         make([]components.Flags, maxSlots),
		CombatTarget:  make([]int32, maxSlots),
		ThreatEnemies: make([]uint16, maxSlots),
		ThreatAllies:  make([]uint16, maxSlots),
		Flash:         make([]float32, maxSlots),
		Backoff:       make([]float32, maxSlots),
		OnRoad:        make([]bool, maxSlots),
		VisualLayer:   make([]int32, maxSlots),
	}
	for i := range b.Position {
		b.Position[i] = Vec2{components.TombstonePos.X, components.TombstonePos.Y}
		b.Target[i] = b.Position[i]
		b.Faction[i] = components.NeutralFaction
		b.CombatTarget[i] = -1
		b.VisualLayer[i] = -1
	}
	return b
}

// Tombstone resets a slot to its inert sentinel state. Called by the
// lifecycle manager on death/free, before the slot is returned to the
// allocator's free list.
func (b *SlotBuffers) Tombstone(slot int32) {
	b.Position[slot] = Vec2{components.TombstonePos.X, components.TombstonePos.Y}
	b.Target[slot] = b.Position[slot]
	b.Arrived[slot] = false
	b.Speed[slot] = 0
	b.Faction[slot] = components.NeutralFaction
	b.Health[slot] = 0
	b.Flags[slot] = 0
	b.CombatTarget[slot] = -1
	b.ThreatEnemies[slot] = 0
	b.ThreatAllies[slot] = 0
	b.Flash[slot] = 0
	b.Backoff[slot] = 0
	b.OnRoad[slot] = false
	b.VisualLayer[slot] = -1

	b.dirtyPosition = append(b.dirtyPosition, slot)
	b.factionDirty = true
	b.flagsDirty = true
	b.dirtyHealth = append(b.dirtyHealth, slot)
}

// WritePositionSparse stages an explicit position write (spawn, retarget)
// for the next sparse upload.
func (b *SlotBuffers) WritePositionSparse(slot int32, p Vec2) {
	b.Position[slot] = p
	b.dirtyPosition = append(b.dirtyPosition, slot)
}

// WriteTarget stages a new goal position and clears the arrival flag, per
// the spec's rule that SetTarget always resets Arrived.
func (b *SlotBuffers) WriteTarget(slot int32, t Vec2) {
	b.Target[slot] = t
	b.Arrived[slot] = false
	b.dirtyTarget = append(b.dirtyTarget, slot)
}

// WriteHealth stages a health change (damage, heal) for sparse upload.
func (b *SlotBuffers) WriteHealth(slot int32, hp float32) {
	b.Health[slot] = hp
	b.dirtyHealth = append(b.dirtyHealth, slot)
}

// WriteVisualLayer stages an equipment/status visual-layer change.
func (b *SlotBuffers) WriteVisualLayer(slot int32, layer int32) {
	b.VisualLayer[slot] = layer
	b.dirtyVisual = append(b.dirtyVisual, slot)
}

// SetFaction is a bulk-authored field: CPU rewrites the whole faction
// buffer on spawn/death only, gated by a single dirty bool rather than a
// per-slot list.
func (b *SlotBuffers) SetFaction(slot int32, faction int32) {
	b.Faction[slot] = faction
	b.factionDirty = true
}

// SetFlags is bulk-authored like SetFaction.
func (b *SlotBuffers) SetFlags(slot int32, flags components.Flags) {
	b.Flags[slot] = flags
	b.flagsDirty = true
}

// DrainDirty returns and clears the accumulated sparse-write slot lists.
// Both backends call this once per frame before their dispatch.
func (b *SlotBuffers) DrainDirty() (pos, target, health, visual []int32, faction, flags bool) {
	pos, target, health, visual = b.dirtyPosition, b.dirtyTarget, b.dirtyHealth, b.dirtyVisual
	faction, flags = b.factionDirty, b.flagsDirty
	b.dirtyPosition = nil
	b.dirtyTarget = nil
	b.dirtyHealth = nil
	b.dirtyVisual = nil
	b.factionDirty = false
	b.flagsDirty = false
	return
}
