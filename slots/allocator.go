// Package slots implements the fixed-integer slot arena that backs every
// GPU-tracked thing in the simulation: NPCs, projectiles, and damageable
// building proxies each occupy one slot for their lifetime.
package slots

import "fmt"

// MaxSlots is the size of the slot arena. It must stay a value the GPU
// buffer fabric can size textures around (see texSideFor in
// gpufabric/gpu_backend.go).
const MaxSlots = 131072

// ErrExhausted is returned by Alloc when the arena has no room left.
var ErrExhausted = fmt.Errorf("slots: arena exhausted (max %d)", MaxSlots)

// Allocator assigns, recycles, and tombstones slot indices.
//
// alloc() prefers a freed slot (LIFO) over advancing the high-water mark,
// so short-lived recycling never grows the mark; free() never shrinks it,
// so the GPU dispatch count (which is sized to the mark) stays valid even
// after a burst of deaths followed by reuse.
type Allocator struct {
	next     int32 // high-water mark: slots [0,next) have been handed out at least once
	freeList []int32
	alive    int32
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Alloc returns a fresh slot, preferring recycled slots over growing the
// high-water mark. Returns ErrExhausted if the arena is full.
func (a *Allocator) Alloc() (int32, error) {
	if n := len(a.freeList); n > 0 {
		s := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		a.alive++
		return s, nil
	}
	if a.next >= MaxSlots {
		return -1, ErrExhausted
	}
	s := a.next
	a.next++
	a.alive++
	return s, nil
}

// Free returns a slot to the free list. It does not shrink the high-water
// mark: recycled slots are tombstoned in the buffer fabric (position set to
// the off-map sentinel, faction set to neutral), so GPU threads for them
// remain cheap no-ops until reused.
func (a *Allocator) Free(slot int32) {
	a.freeList = append(a.freeList, slot)
	a.alive--
}

// AliveCount returns the number of slots currently allocated and not freed.
func (a *Allocator) AliveCount() int32 { return a.alive }

// HighWaterMark returns the exclusive upper bound of slots ever handed out.
// The GPU dispatch count for every per-frame compute pass is sized to this
// value, not to AliveCount, so recycled-but-tombstoned slots still get a
// (cheap, early-exiting) thread.
func (a *Allocator) HighWaterMark() int32 { return a.next }

// FreeListLen reports the number of slots currently on the free list, used
// by the invariant check alive_count == high_water_mark - |free_list|.
func (a *Allocator) FreeListLen() int { return len(a.freeList) }
