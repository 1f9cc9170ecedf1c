package squad

import "github.com/ironhold/endless/components"

// Allocation splits an AI town's available squad slots between attack and
// defense duty, per spec §4L: an aggressive/bold leadership leans toward
// attack, a cautious/loyal one toward defense. Personality here is the
// town's dominant disposition, typically voted from its founding NPC or
// its current garrison.
type Allocation struct {
	AttackShare  float64
	DefenseShare float64
}

// AllocateShares computes attack/defense shares from a personality
// bitset, reusing the same trait semantics as the Decision Core's utility
// bias so squad behavior and individual NPC behavior read the same way.
func AllocateShares(p components.Personality) Allocation {
	attack := 0.4
	if p.Has(components.Aggressive) {
		attack += 0.2
	}
	if p.Has(components.Bold) {
		attack += 0.1
	}
	if p.Has(components.Greedy) {
		attack += 0.1
	}
	if p.Has(components.Cautious) {
		attack -= 0.2
	}
	if p.Has(components.Loyal) {
		attack -= 0.1
	}
	if attack < 0.1 {
		attack = 0.1
	}
	if attack > 0.9 {
		attack = 0.9
	}
	return Allocation{AttackShare: attack, DefenseShare: 1 - attack}
}

// RetargetPolicy gates how often an AI squad is allowed to reconsider its
// target, avoiding thrashing between two near-equal enemies every frame.
type RetargetPolicy struct {
	CooldownSec     float64
	elapsedSinceSec float64
}

// NewRetargetPolicy builds a policy with the given cooldown.
func NewRetargetPolicy(cooldownSec float64) *RetargetPolicy {
	return &RetargetPolicy{CooldownSec: cooldownSec}
}

// Tick advances elapsed time and reports whether a retarget decision may
// be made this call, resetting the internal clock if so.
func (r *RetargetPolicy) Tick(dtSec float64) bool {
	r.elapsedSinceSec += dtSec
	if r.elapsedSinceSec >= r.CooldownSec {
		r.elapsedSinceSec = 0
		return true
	}
	return false
}

// KindFilter restricts which NPC kinds/jobs a squad will draw members
// from or accept as valid targets, per spec §4L's per-kind filter sets
// (e.g. a raiding squad ignoring farmers to focus fighters and towers).
type KindFilter struct {
	allowed map[components.Job]bool
}

// NewKindFilter builds a filter admitting exactly the given jobs.
func NewKindFilter(jobs ...components.Job) *KindFilter {
	f := &KindFilter{allowed: make(map[components.Job]bool, len(jobs))}
	for _, j := range jobs {
		f.allowed[j] = true
	}
	return f
}

// Allows reports whether job passes the filter.
func (f *KindFilter) Allows(job components.Job) bool {
	if f == nil || len(f.allowed) == 0 {
		return true
	}
	return f.allowed[job]
}
