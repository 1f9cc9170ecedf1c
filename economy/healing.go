package economy

import "github.com/ironhold/endless/components"

// HealAtFountain regenerates HP toward Max at the town's heal rate,
// capping at starvationHPCapFraction of max while the NPC is starving,
// per §4H.
func HealAtFountain(h *components.Health, e components.Energy, dt, healRatePerSecond, starvationHPCapFraction float64) {
	cap := h.Max
	if e.Starving() {
		cap = h.Max * float32(starvationHPCapFraction)
	}
	h.Current += float32(healRatePerSecond * dt)
	if h.Current > cap {
		h.Current = cap
	}
}

// WithinFountainRadius reports whether pos is close enough to fountain to
// receive passive healing, and whether separation physics has pushed it
// far enough away (>100px) that the CPU should retarget to the fountain
// center.
func WithinFountainRadius(pos, fountain components.Position, radius float32) (inRange, shouldRetarget bool) {
	dx, dy := pos.X-fountain.X, pos.Y-fountain.Y
	d2 := dx*dx + dy*dy
	inRange = d2 <= radius*radius
	shouldRetarget = d2 > 100*100
	return
}
