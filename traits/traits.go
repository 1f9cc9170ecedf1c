// Package traits provides weighted random personality assignment and the
// utility-weight modifiers personality bits apply to the Decision Core.
package traits

import (
	"math/rand"

	"github.com/ironhold/endless/components"
)

// Weights gives the relative frequency of each personality bit when
// rolling a fresh NPC's disposition. Multiple bits may be rolled
// independently, so an NPC can be e.g. both Bold and Greedy.
var Weights = map[components.Personality]float32{
	components.Bold:        0.22,
	components.Cautious:    0.22,
	components.Loyal:       0.18,
	components.Greedy:      0.18,
	components.Aggressive:  0.16,
	components.Industrious: 0.20,
}

// Roll picks a fresh personality bitset by independently flipping each
// trait against its weight.
func Roll(rng *rand.Rand) components.Personality {
	var p components.Personality
	for trait, w := range Weights {
		if rng.Float32() < w {
			p |= trait
		}
	}
	return p
}

// UtilityBias returns the multiplicative bias a personality applies to a
// named action's utility score. Unknown actions get 1 (no bias). This is
// the seam the Decision Core's scorer calls for every action so adding a
// new personality trait only means adding cases here.
func UtilityBias(p components.Personality, action string) float32 {
	bias := float32(1.0)
	switch action {
	case "work":
		if p.Has(components.Industrious) {
			bias *= 1.3
		}
	case "rest":
		if p.Has(components.Cautious) {
			bias *= 1.2
		}
		if p.Has(components.Industrious) {
			bias *= 0.85
		}
	case "flee":
		if p.Has(components.Cautious) {
			bias *= 1.4
		}
		if p.Has(components.Bold) || p.Has(components.Aggressive) {
			bias *= 0.6
		}
	case "raid", "fight":
		if p.Has(components.Aggressive) {
			bias *= 1.35
		}
		if p.Has(components.Greedy) && action == "raid" {
			bias *= 1.25
		}
		if p.Has(components.Cautious) {
			bias *= 0.75
		}
	case "wander":
		if p.Has(components.Bold) {
			bias *= 1.15
		}
	}
	return bias
}
