package decision

import "testing"

func TestUtilityBucketSpreadsPopulationAcrossFrames(t *testing.T) {
	tiers := Tiers{FleeCheckFrames: 8, UtilityPeriodSec: 2, FrameRateHint: 60}
	bucket := tiers.UtilityBucketFrames()
	if bucket != 120 {
		t.Fatalf("bucket frames = %d, want 120", bucket)
	}

	hits := 0
	for slot := int32(0); slot < int32(bucket); slot++ {
		if tiers.ShouldUtilityScore(slot, 0) {
			hits++
		}
	}
	if hits != 1 {
		t.Fatalf("exactly one slot in the bucket should score per frame, got %d", hits)
	}
}

func TestFleeCheckStaggersAcrossFrames(t *testing.T) {
	tiers := Tiers{FleeCheckFrames: 8}
	checked := map[int32]bool{}
	for frame := uint64(0); frame < 8; frame++ {
		for slot := int32(0); slot < 8; slot++ {
			if tiers.ShouldFleeCheck(slot, frame) {
				checked[slot] = true
			}
		}
	}
	if len(checked) != 8 {
		t.Fatalf("every slot should be checked at least once across a full cycle, got %d", len(checked))
	}
}
