package game

import (
	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/squad"
)

// rallyRadius is how close a member must be to a squad's Rally point to
// count as "present" for TryActivate's gather check and for judging a
// retreating squad has finished pulling back, per spec §4L's wave cycle.
const rallyRadius = 80

// tickSquads drives every squad's gather->active->retreat wave cycle,
// something squad.Squad itself only tracks state for: TryActivate and
// CheckRetreat are pure transition checks a caller must feed live
// alive-member counts into every frame.
func (g *Game) tickSquads() {
	for _, sq := range g.Squads {
		sq.ClearTargetIfDead(func(slot int32) bool {
			_, alive := g.Manager.EntityForSlot(slot)
			return alive
		})

		aliveSlots := g.aliveSquadMembers(sq)

		switch sq.Phase {
		case squad.PhaseGathering:
			atRally := g.countWithinRally(aliveSlots, sq.Rally)
			sq.TryActivate(atRally)
		case squad.PhaseActive:
			sq.CheckRetreat(len(aliveSlots))
		case squad.PhaseRetreating:
			if len(aliveSlots) == 0 || g.countWithinRally(aliveSlots, sq.Rally) == len(aliveSlots) {
				sq.Phase = squad.PhaseGathering
				sq.WaveStartCount = 0
				g.Stats.RecordRaidCompleted()
			}
		}
	}
}

// aliveSquadMembers returns sq.Members filtered to slots with a live entity.
func (g *Game) aliveSquadMembers(sq *squad.Squad) []int32 {
	alive := make([]int32, 0, len(sq.Members))
	for _, slot := range sq.Members {
		if _, ok := g.Manager.EntityForSlot(slot); ok {
			alive = append(alive, slot)
		}
	}
	return alive
}

// countWithinRally counts how many of slots sit within rallyRadius of pos.
func (g *Game) countWithinRally(slots []int32, pos components.Position) int {
	count := 0
	for _, slot := range slots {
		if slot < 0 || int(slot) >= len(g.Buf.Position) {
			continue
		}
		p := g.Buf.Position[slot]
		dx, dy := p.X-pos.X, p.Y-pos.Y
		if dx*dx+dy*dy <= rallyRadius*rallyRadius {
			count++
		}
	}
	return count
}
