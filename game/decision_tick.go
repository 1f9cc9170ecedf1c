package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/decision"
	"github.com/ironhold/endless/economy"
	"github.com/ironhold/endless/gpufabric"
	"github.com/ironhold/endless/lifecycle"
)

// decisionTick runs the throttled Decision Core over every live NPC:
// arrival resolution every frame, flee/leash checks and utility scoring
// on their respective tiers, per spec §4G.
func (g *Game) decisionTick(gameHours float64) {
	frame := g.Time.Frame
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		slot := v.Slot.Index
		if slot < 0 || int(slot) >= len(g.Buf.Arrived) {
			return
		}

		g.resolveArrival(v, slot)

		if g.Tiers.ShouldFleeCheck(slot, frame) {
			g.checkFlee(v)
		}

		if g.Tiers.ShouldUtilityScore(slot, frame) {
			g.scoreUtility(v, slot)
		}
	})
}

// townOf resolves the Town owning an NPC's faction. Towns share the slot
// buffer's faction id as their key, set once at spawn and never
// reassigned, so this lookup stays valid across the NPC's lifetime.
func (g *Game) townOf(slot int32) *lifecycle.Town {
	if int(slot) >= len(g.Buf.Faction) {
		return nil
	}
	faction := g.Buf.Faction[slot]
	for _, t := range g.Towns {
		if t.Faction == faction {
			return t
		}
	}
	return nil
}

func (g *Game) townFood(slot int32) *economy.Storage {
	if t := g.townOf(slot); t != nil {
		return t.Food
	}
	return &economy.Storage{}
}

func (g *Game) townGold(slot int32) *economy.Storage {
	if t := g.townOf(slot); t != nil {
		return t.Gold
	}
	return &economy.Storage{}
}

// resolveArrival converts a GPU-reported arrival at the current Target
// into the activity-specific follow-on state, per spec §4H.
func (g *Game) resolveArrival(v lifecycle.NpcView, slot int32) {
	if !g.Buf.Arrived[slot] {
		return
	}
	switch *v.Activity {
	case components.ActivityGoingToWork:
		if v.Assignment.WorkTarget == (ecs.Entity{}) {
			if target, _, ok := g.nearestFreeWork(v, slot); ok {
				g.claimWorkTarget(v, target)
			}
		}
		claimed := v.Assignment.WorkTarget != (ecs.Entity{})
		if *v.Job == components.JobRaider && claimed {
			*v.Activity = components.ActivityRaiding
		} else {
			*v.Activity = economy.ArriveGoingToWork(claimed)
		}
	case components.ActivityRaiding:
		// Arrived latches again every frame an already-raiding NPC sits
		// parked at its target (physics re-evaluates arrival each tick);
		// economyTick's advanceRaiding is what actually resolves the
		// raid and moves this NPC to Returning, so there's nothing to do
		// here beyond consuming the flag below.
	case components.ActivityReturning:
		loot := components.Loot{}
		if l := g.Manager.Loot(v.Entity); l != nil {
			loot = *l
		}
		next, cleared := economy.ArriveReturning(true, loot, g.townFood(slot), g.townGold(slot))
		*v.Activity = next
		if l := g.Manager.Loot(v.Entity); l != nil {
			*l = cleared
		}
	case components.ActivityGoingToHeal:
		*v.Activity = economy.ArriveGoingToHeal()
	case components.ActivityGoingToRest:
		*v.Activity = economy.ArriveGoingToRest()
	}
	g.Buf.Arrived[slot] = false
}

// checkFlee drops an NPC into Fleeing combat state when badly outnumbered
// or critically wounded, independent of its current Activity.
func (g *Game) checkFlee(v lifecycle.NpcView) {
	slot := v.Slot.Index
	if int(slot) >= len(g.Buf.Health) {
		return
	}
	health := g.Buf.Health[slot]
	outnumbered := g.Buf.ThreatEnemies[slot] > g.Buf.ThreatAllies[slot]+1
	wounded := health > 0 && health < 0.25*g.statsMaxHealth(v.Entity)
	state := decision.State{Activity: *v.Activity, Combat: v.Combat.State}
	if outnumbered && wounded {
		state.EnterFlee()
	} else if state.Combat == components.CombatFleeing && !outnumbered {
		state.Disengage()
	}
	*v.Activity = state.Activity
	v.Combat.State = state.Combat
}

// claimWorkTarget assigns target as v's work building and, for a mine,
// reserves one of its occupant slots; a farmer's claim is purely
// positional (claimedWorkTargets reads it back from Activity==Working,
// not from any occupant count, since FarmState carries no capacity).
func (g *Game) claimWorkTarget(v lifecycle.NpcView, target ecs.Entity) {
	v.Assignment.WorkTarget = target
	if *v.Job == components.JobMiner {
		if mine := g.Buildings.Mine(target); mine != nil {
			economy.ClaimOccupant(mine)
		}
	}
	if b := g.Buildings.Building(target); b != nil {
		g.Buf.WriteTarget(v.Slot.Index, gpufabric.Vec2{X: b.Pos.X, Y: b.Pos.Y})
	}
}

// releaseWorkTarget frees a miner's reserved occupant slot on reassignment
// or death; a farmer's claim needs no release since it was never counted.
func (g *Game) releaseWorkTarget(v lifecycle.NpcView) {
	if *v.Job != components.JobMiner || v.Assignment.WorkTarget == (ecs.Entity{}) {
		return
	}
	if mine := g.Buildings.Mine(v.Assignment.WorkTarget); mine != nil {
		economy.ReleaseOccupant(mine)
	}
}

func (g *Game) statsMaxHealth(e ecs.Entity) float32 {
	if st := g.Manager.Stats(e); st != nil {
		return st.MaxHealth
	}
	return 1
}

// scoreUtility picks this NPC's next idle-time action when it has no
// pressing arrival or combat state to resolve.
func (g *Game) scoreUtility(v lifecycle.NpcView, slot int32) {
	if v.Combat.State != components.CombatNone {
		return
	}
	if *v.Activity != components.ActivityIdle && *v.Activity != components.ActivityWandering {
		return
	}

	workTarget, workDist, workOk := g.nearestFreeWork(v, slot)
	if !workOk {
		workDist = -1
	}

	in := decision.Input{
		Energy:              *v.Energy,
		TownHasFood:         g.townFood(slot).HasFood(),
		Personality:         *v.Personality,
		NearestFreeWorkDist: workDist,
		IsRaider:            *v.Job == components.JobRaider,
	}
	candidates := decision.Score(in)
	action, ok := decision.Select(candidates, slot, g.Time.Frame)
	if !ok {
		return
	}
	switch action {
	case decision.ActionWork, decision.ActionRaid:
		if workOk {
			g.claimWorkTarget(v, workTarget)
		}
		*v.Activity = components.ActivityGoingToWork
	case decision.ActionRest:
		*v.Activity = components.ActivityGoingToRest
	case decision.ActionHeal:
		*v.Activity = components.ActivityGoingToHeal
	default:
		*v.Activity = components.ActivityWandering
	}
}
