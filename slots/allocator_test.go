package slots

import "testing"

func TestAllocRecyclesBeforeGrowingMark(t *testing.T) {
	a := NewAllocator()
	s0, err := a.Alloc()
	if err != nil || s0 != 0 {
		t.Fatalf("Alloc() = %d, %v, want 0, nil", s0, err)
	}
	s1, _ := a.Alloc()
	if s1 != 1 {
		t.Fatalf("Alloc() = %d, want 1", s1)
	}
	a.Free(s0)
	if a.HighWaterMark() != 2 {
		t.Fatalf("HighWaterMark() = %d, want 2 (free must not shrink it)", a.HighWaterMark())
	}
	s2, _ := a.Alloc()
	if s2 != s0 {
		t.Fatalf("Alloc() after Free = %d, want recycled slot %d", s2, s0)
	}
	if a.HighWaterMark() != 2 {
		t.Fatalf("HighWaterMark() = %d, want unchanged 2", a.HighWaterMark())
	}
}

func TestAliveCountInvariant(t *testing.T) {
	a := NewAllocator()
	for i := 0; i < 10; i++ {
		if _, err := a.Alloc(); err != nil {
			t.Fatalf("Alloc() failed: %v", err)
		}
	}
	for i := int32(0); i < 3; i++ {
		a.Free(i)
	}
	if got, want := a.AliveCount(), a.HighWaterMark()-int32(a.FreeListLen()); got != want {
		t.Fatalf("alive_count=%d, want high_water_mark-|free_list|=%d", got, want)
	}
}

func TestAllocExhaustionDoesNotCorruptState(t *testing.T) {
	a := &Allocator{next: MaxSlots}
	_, err := a.Alloc()
	if err != ErrExhausted {
		t.Fatalf("Alloc() at MaxSlots = %v, want ErrExhausted", err)
	}
	if a.next != MaxSlots || len(a.freeList) != 0 {
		t.Fatalf("allocator state corrupted after exhaustion: next=%d freeList=%d", a.next, len(a.freeList))
	}
}
