package decision

import (
	"math/rand"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/traits"
)

// Action names the utility-scored candidate behaviors. Strings match the
// keys traits.UtilityBias understands, so adding an action only means
// adding a score function here and a bias case there.
type Action string

const (
	ActionEat    Action = "eat"
	ActionRest   Action = "rest"
	ActionWork   Action = "work"
	ActionWander Action = "wander"
	ActionHeal   Action = "heal"
	ActionRaid   Action = "raid"
)

// Candidate is one scored action awaiting weighted-random selection.
type Candidate struct {
	Action Action
	Score  float32
}

// Input bundles the per-NPC facts the score functions read. Score
// functions never mutate state; they are pure functions of this snapshot.
type Input struct {
	Energy       components.Energy
	Health       components.Health
	TownHasFood  bool
	NearestFreeWorkDist float32 // <0 if none available
	NearestHealDist     float32 // <0 if no fountain in range and wounded
	Personality  components.Personality
	IsNight      bool
	WorkAllowedAtNight bool
	// IsRaider swaps the NearestFreeWorkDist candidate from ActionWork to
	// ActionRaid: a JobRaider scores against the nearest enemy farm/camp
	// the same way a farmer/miner scores against the nearest free work
	// building, it just resolves to a different action.
	IsRaider bool
}

// Score evaluates every candidate action for one NPC. Only positive
// scores are eligible for selection.
func Score(in Input) []Candidate {
	var out []Candidate

	if in.Energy.Current < energyEatThreshold(in) && in.TownHasFood {
		out = append(out, Candidate{ActionEat, biased(ActionEat, in.Personality, 0.9)})
	}

	restFrac := 1 - in.Energy.Current/100
	restScore := restFrac * restFrac
	out = append(out, Candidate{ActionRest, biased(ActionRest, in.Personality, restScore)})

	if in.NearestFreeWorkDist >= 0 && (!in.IsNight || in.WorkAllowedAtNight) {
		// closer work (or, for a raider, closer prey) is preferred: score
		// falls off with distance.
		workScore := float32(1.0) / (1.0 + in.NearestFreeWorkDist/500)
		if in.IsRaider {
			out = append(out, Candidate{ActionRaid, biased(ActionRaid, in.Personality, workScore)})
		} else {
			out = append(out, Candidate{ActionWork, biased(ActionWork, in.Personality, workScore)})
		}
	}

	if in.NearestHealDist >= 0 && in.Health.Current < in.Health.Max {
		healScore := 1 - in.Health.Current/in.Health.Max
		out = append(out, Candidate{ActionHeal, biased(ActionHeal, in.Personality, healScore)})
	}

	out = append(out, Candidate{ActionWander, biased(ActionWander, in.Personality, 0.1)})

	return out
}

func energyEatThreshold(in Input) float32 { return components.EnergyEatThreshold }

func biased(a Action, p components.Personality, base float32) float32 {
	return base * traits.UtilityBias(p, string(a))
}

// Select performs a weighted-random pick among positive-scoring
// candidates, seeded by slot id and frame so synchronization waves don't
// form across a population of similarly-scored NPCs.
func Select(candidates []Candidate, slot int32, frame uint64) (Action, bool) {
	var total float32
	for _, c := range candidates {
		if c.Score > 0 {
			total += c.Score
		}
	}
	if total <= 0 {
		return "", false
	}

	rng := rand.New(rand.NewSource(seed(slot, frame)))
	r := rng.Float32() * total
	for _, c := range candidates {
		if c.Score <= 0 {
			continue
		}
		if r < c.Score {
			return c.Action, true
		}
		r -= c.Score
	}
	return candidates[len(candidates)-1].Action, true
}

// seed combines slot and frame into a deterministic per-call seed using a
// splitmix64-style mix, avoiding both global RNG contention across
// parallel decision workers and visible correlation between nearby slots.
func seed(slot int32, frame uint64) int64 {
	x := uint64(slot)*0x9E3779B97F4A7C15 + frame*0xBF58476D1CE4E5B9
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}
