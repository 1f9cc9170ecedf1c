// Package decision implements the throttled priority+utility Decision
// Core: per-NPC activity selection bucketed into three scheduling tiers so
// total CPU cost stays O(population / interval) regardless of population
// size, per the teacher's game/parallel.go chunked-dispatch idiom
// generalized from per-frame physics chunks to per-tier decision buckets.
package decision

import "github.com/ironhold/endless/config"

// Tiers is the fixed three-tier schedule spec §4G describes.
type Tiers struct {
	FleeCheckFrames  int
	UtilityPeriodSec float64
	FrameRateHint    int
}

// NewTiers builds the tier schedule from config.
func NewTiers(cfg *config.Config) Tiers {
	return Tiers{
		FleeCheckFrames:  cfg.Decision.FleeCheckFrames,
		UtilityPeriodSec: cfg.Decision.UtilityPeriodSec,
		FrameRateHint:    cfg.Decision.FrameRateHint,
	}
}

// ShouldFleeCheck reports whether slot's flee/leash check runs this frame:
// every FleeCheckFrames frames, staggered by slot so the whole population
// doesn't check in the same frame.
func (t Tiers) ShouldFleeCheck(slot int32, frame uint64) bool {
	if t.FleeCheckFrames <= 0 {
		return true
	}
	return (uint64(slot)+frame)%uint64(t.FleeCheckFrames) == 0
}

// UtilityBucketFrames is the number of frames a full utility-scoring pass
// over the population spans: UtilityPeriodSec * FrameRateHint.
func (t Tiers) UtilityBucketFrames() uint64 {
	n := uint64(t.UtilityPeriodSec * float64(t.FrameRateHint))
	if n == 0 {
		n = 1
	}
	return n
}

// ShouldUtilityScore reports whether slot's utility score runs this frame:
// a rotating bucket of size UtilityBucketFrames so only
// population/UtilityBucketFrames NPCs score per frame.
func (t Tiers) ShouldUtilityScore(slot int32, frame uint64) bool {
	bucket := t.UtilityBucketFrames()
	return uint64(slot)%bucket == frame%bucket
}
