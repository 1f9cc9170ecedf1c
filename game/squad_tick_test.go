package game

import (
	"math/rand"
	"testing"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/lifecycle"
	"github.com/ironhold/endless/squad"
	"github.com/ironhold/endless/worldgen"
)

func TestTickSquadsActivatesOnceGatheredAtRally(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	rally := g.Towns[0].FountainPos
	g.SeedPopulation(rand.New(rand.NewSource(1)), 0, components.JobFighter, rally, 3)

	sq := squad.NewSquad(1, 0, rally, 3, 0.5)
	collectSquadMembers(g, sq)
	g.Squads[sq.ID] = sq

	g.tickSquads()

	if sq.Phase != squad.PhaseActive {
		t.Fatalf("Phase = %v, want Active once all members are at rally", sq.Phase)
	}
}

func TestTickSquadsRetreatsBelowThresholdThenRegroups(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	rally := g.Towns[0].FountainPos
	g.SeedPopulation(rand.New(rand.NewSource(1)), 0, components.JobFighter, rally, 4)

	sq := squad.NewSquad(1, 0, rally, 4, 0.5)
	collectSquadMembers(g, sq)
	g.Squads[sq.ID] = sq

	g.tickSquads()
	if sq.Phase != squad.PhaseActive {
		t.Fatalf("Phase = %v, want Active", sq.Phase)
	}

	// Kill all but one member: 1/4 alive is below the 50% retreat threshold.
	for _, slot := range sq.Members[1:] {
		g.Manager.Despawn(slot)
	}
	g.tickSquads()
	if sq.Phase != squad.PhaseRetreating {
		t.Fatalf("Phase = %v, want Retreating with only 1/4 alive", sq.Phase)
	}

	before := raidsCompletedSoFar(g)
	g.tickSquads()
	if sq.Phase != squad.PhaseGathering {
		t.Fatalf("Phase = %v, want Gathering once the lone survivor is back at rally", sq.Phase)
	}
	if got := raidsCompletedSoFar(g); got != before+1 {
		t.Errorf("RaidsCompleted = %d, want %d", got, before+1)
	}
}

// collectSquadMembers enrolls every currently-live NPC slot into sq,
// standing in for handleAssignSquad's one-at-a-time enrollment.
func collectSquadMembers(g *Game, sq *squad.Squad) {
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		sq.AddMember(v.Slot.Index)
	})
}

// raidsCompletedSoFar force-flushes the telemetry window (a huge dtSec
// guarantees Tick's window-elapsed check passes) to read the
// RaidsCompleted count tickSquads just recorded.
func raidsCompletedSoFar(g *Game) int {
	ws, _ := g.Stats.Tick(1e6, 1)
	return ws.RaidsCompleted
}
