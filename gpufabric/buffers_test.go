package gpufabric

import (
	"testing"

	"github.com/ironhold/endless/components"
)

func TestNewSlotBuffersDefaultsAreInert(t *testing.T) {
	b := NewSlotBuffers(8)
	if components.IsAlivePos(components.Position{X: b.Position[0].X, Y: b.Position[0].Y}) {
		t.Fatal("fresh slot should start at the tombstone sentinel")
	}
	if b.Faction[0] != components.NeutralFaction {
		t.Fatalf("fresh slot faction = %d, want NeutralFaction", b.Faction[0])
	}
	if b.CombatTarget[0] != -1 {
		t.Fatalf("fresh slot combat target = %d, want -1", b.CombatTarget[0])
	}
}

func TestWriteTargetResetsArrived(t *testing.T) {
	b := NewSlotBuffers(4)
	b.Arrived[2] = true
	b.WriteTarget(2, Vec2{10, 10})
	if b.Arrived[2] {
		t.Fatal("WriteTarget must clear Arrived")
	}
}

func TestDrainDirtyClearsAccumulators(t *testing.T) {
	b := NewSlotBuffers(4)
	b.WritePositionSparse(0, Vec2{1, 1})
	b.WritePositionSparse(1, Vec2{2, 2})
	b.SetFaction(0, components.PlayerFaction)

	pos, _, _, _, faction, _ := b.DrainDirty()
	if len(pos) != 2 {
		t.Fatalf("dirty position count = %d, want 2", len(pos))
	}
	if !faction {
		t.Fatal("faction dirty flag should be set")
	}

	pos2, _, _, _, faction2, _ := b.DrainDirty()
	if len(pos2) != 0 || faction2 {
		t.Fatal("DrainDirty should clear accumulators after draining")
	}
}

func TestTombstoneResetsSlot(t *testing.T) {
	b := NewSlotBuffers(4)
	b.WritePositionSparse(0, Vec2{5, 5})
	b.SetFaction(0, components.PlayerFaction)
	b.Health[0] = 50

	b.Tombstone(0)

	if components.IsAlivePos(components.Position{X: b.Position[0].X, Y: b.Position[0].Y}) {
		t.Fatal("Tombstone should restore the sentinel position")
	}
	if b.Faction[0] != components.NeutralFaction {
		t.Fatal("Tombstone should reset faction to neutral")
	}
	if b.Health[0] != 0 {
		t.Fatal("Tombstone should zero health")
	}
}
