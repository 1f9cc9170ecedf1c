package gpufabric

import "testing"

func TestQueryRadiusFindsNeighborsWithinRange(t *testing.T) {
	cfg := testConfig(t)
	grid := NewSpatialGrid(cfg)
	buf := NewSlotBuffers(4)

	buf.WritePositionSparse(0, Vec2{1000, 1000})
	buf.WritePositionSparse(1, Vec2{1020, 1000})
	buf.WritePositionSparse(2, Vec2{5000, 5000})

	grid.Rebuild(buf, 3)
	out := grid.QueryRadiusInto(Vec2{1000, 1000}, 100, buf, nil)

	found := false
	for _, n := range out {
		if n.Slot == 1 {
			found = true
		}
		if n.Slot == 2 {
			t.Fatal("query returned a neighbor far outside the radius")
		}
	}
	if !found {
		t.Fatal("query should have found slot 1 within 100px")
	}
}

func TestRebuildSkipsTombstonedSlots(t *testing.T) {
	cfg := testConfig(t)
	grid := NewSpatialGrid(cfg)
	buf := NewSlotBuffers(2)
	buf.WritePositionSparse(0, Vec2{1000, 1000})
	// slot 1 left at its tombstone sentinel default.

	grid.Rebuild(buf, 2)
	out := grid.QueryRadiusInto(Vec2{1000, 1000}, 50, buf, nil)
	if len(out) != 1 {
		t.Fatalf("expected only the live slot, got %d neighbors", len(out))
	}
}
