package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/economy"
	"github.com/ironhold/endless/gpufabric"
	"github.com/ironhold/endless/lifecycle"
)

// townByIndex resolves a building's owning town by its stable index,
// unlike townOf (used for NPCs), which matches by faction.
func (g *Game) townByIndex(idx int32) *lifecycle.Town {
	if idx < 0 || int(idx) >= len(g.Towns) {
		return nil
	}
	return g.Towns[idx]
}

// economyTick advances every farm/mine's growth, drains or rests NPC
// energy by activity, heals at the fountain, and applies the starvation
// speed penalty, per spec §4H. Growth/energy scale with gameHours; the
// fountain's heal rate is specified per real second, so it uses dtSeconds.
func (g *Game) economyTick(gameHours, dtSeconds float64) {
	g.advanceBuildings(gameHours)
	g.advanceNpcEconomy(gameHours, dtSeconds)
}

// claimedWorkTargets collects every building a Working NPC currently
// occupies, so a farm gets AdvanceFarm's tended bonus only while someone
// is actually working it.
func (g *Game) claimedWorkTargets() map[ecs.Entity]bool {
	claimed := make(map[ecs.Entity]bool)
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		if *v.Activity == components.ActivityWorking {
			claimed[v.Assignment.WorkTarget] = true
		}
	})
	return claimed
}

func (g *Game) advanceBuildings(gameHours float64) {
	claimed := g.claimedWorkTargets()
	g.Buildings.ForEach(func(e ecs.Entity, b *components.Building) {
		town := g.townByIndex(b.TownIndex)
		if town == nil {
			return
		}
		if farm := g.Buildings.Farm(e); farm != nil {
			economy.AdvanceFarm(farm, gameHours,
				g.cfg.Economy.FarmPassiveRate, g.cfg.Economy.FarmTendedBonus,
				town.FarmUpgradeMultiplier(), claimed[e])
		}
		if mine := g.Buildings.Mine(e); mine != nil {
			gold := economy.AdvanceMine(mine, gameHours,
				g.cfg.Economy.MineWorkHours, g.cfg.Economy.MineExtractPerCycle,
				town.GoldYieldMultiplier())
			if gold > 0 {
				town.Gold.Credit(gold)
				g.Stats.RecordGoldMined(gold)
			}
		}
	})
}

func (g *Game) advanceNpcEconomy(gameHours, dtSeconds float64) {
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		slot := v.Slot.Index
		if slot < 0 || int(slot) >= len(g.Buf.Health) {
			return
		}

		switch *v.Activity {
		case components.ActivityResting:
			economy.RestEnergy(v.Energy, gameHours, g.cfg.Energy.RestPerGameHour)
		case components.ActivityHealingAtFountain:
			health := components.Health{Current: g.Buf.Health[slot], Max: g.statsMaxHealth(v.Entity)}
			economy.HealAtFountain(&health, *v.Energy, dtSeconds,
				g.cfg.Economy.HealRatePerSecond, g.cfg.Energy.StarvationHPCap)
			g.Buf.WriteHealth(slot, health.Current)
		default:
			economy.DrainEnergy(v.Energy, gameHours, g.cfg.Energy.DrainPerGameHour)
		}
		if *v.Activity == components.ActivityWorking {
			g.advanceWorking(v, slot)
		}
		if *v.Activity == components.ActivityRaiding {
			g.advanceRaiding(v)
		}

		mult := economy.StarvationSpeedMultiplier(*v.Energy, g.cfg.Energy.StarvationSpeedMul)
		if stats := g.Manager.Stats(v.Entity); stats != nil {
			g.Buf.Speed[slot] = stats.MaxSpeed * mult
		}
	})
}

// advanceWorking resolves a farmer's harvest once its claimed farm hits
// Ready(): harvest resets growth, the farmer picks up loot.Food, and
// releases the farm by heading home Returning, per spec §4H's "harvest()
// is the single transition back to Growing(0)". Miners don't need this:
// AdvanceMine credits the town directly each cycle without the miner
// ever leaving ActivityWorking.
func (g *Game) advanceWorking(v lifecycle.NpcView, slot int32) {
	if *v.Job != components.JobFarmer {
		return
	}
	farm := g.Buildings.Farm(v.Assignment.WorkTarget)
	if farm == nil || !farm.Ready() {
		return
	}
	economy.Harvest(farm)
	if loot := g.Manager.Loot(v.Entity); loot != nil {
		loot.Food += float32(g.cfg.Economy.FoodPerWorkHour)
	}
	g.Stats.RecordFoodHarvested(g.cfg.Economy.FoodPerWorkHour)
	v.Assignment.WorkTarget = ecs.Entity{}
	*v.Activity = components.ActivityReturning
}

// advanceRaiding resolves a raider's single-tick raid the moment it
// arrives at its target: economy.ArriveRaiding always sends it home
// Returning, with stolen food in loot only if the farm was ready, per
// spec §4G/§4H's "Raiding -> harvest ready farm... then Returning{loot}".
// Unlike a farmer's Working, Raiding never waits out a growth cycle.
func (g *Game) advanceRaiding(v lifecycle.NpcView) {
	farm := g.Buildings.Farm(v.Assignment.WorkTarget)
	v.Assignment.WorkTarget = ecs.Entity{}
	if farm == nil {
		*v.Activity = components.ActivityReturning
		return
	}
	next, stolen := economy.ArriveRaiding(farm, float32(g.cfg.Economy.RaidStealAmount))
	if loot := g.Manager.Loot(v.Entity); loot != nil {
		loot.Food += stolen.Food
		loot.Gold += stolen.Gold
	}
	*v.Activity = next
}

// nearestFreeWork finds the closest building v can claim for its job: an
// unclaimed farm for a farmer, a mine with open capacity for a miner, or
// the nearest enemy-faction farm to raid for a raider. Other jobs have no
// economy work target and always report ok=false.
func (g *Game) nearestFreeWork(v lifecycle.NpcView, slot int32) (target ecs.Entity, dist float32, ok bool) {
	if *v.Job == components.JobRaider {
		return g.nearestRaidTarget(v, slot)
	}

	var kind components.BuildingKind
	switch *v.Job {
	case components.JobFarmer:
		kind = components.BuildingFarm
	case components.JobMiner:
		kind = components.BuildingGoldMine
	default:
		return ecs.Entity{}, -1, false
	}

	from := g.Buf.Position[slot]
	claimed := g.claimedWorkTargets()
	best := float32(-1)
	g.Buildings.ForEach(func(e ecs.Entity, b *components.Building) {
		if b.Kind != kind || b.TownIndex != g.npcTownIndex(v) {
			return
		}
		if kind == components.BuildingFarm && claimed[e] {
			return
		}
		if kind == components.BuildingGoldMine {
			if mine := g.Buildings.Mine(e); mine == nil || mine.Full() {
				return
			}
		}
		d := distVec2(from, gpufabric.Vec2{X: b.Pos.X, Y: b.Pos.Y})
		if best < 0 || d < best {
			best, target, ok = d, e, true
		}
	})
	return target, best, ok
}

// nearestRaidTarget finds the closest farm belonging to another faction's
// town, per spec §4D/§4G's "raider picks enemy farm/camp target". Unlike
// a farmer's claim, a raid target isn't exclusive: several raiders may
// converge on the same undefended farm.
func (g *Game) nearestRaidTarget(v lifecycle.NpcView, slot int32) (target ecs.Entity, dist float32, ok bool) {
	myTown := g.npcTownIndex(v)
	from := g.Buf.Position[slot]
	best := float32(-1)
	g.Buildings.ForEach(func(e ecs.Entity, b *components.Building) {
		if b.Kind != components.BuildingFarm || b.TownIndex == myTown {
			return
		}
		d := distVec2(from, gpufabric.Vec2{X: b.Pos.X, Y: b.Pos.Y})
		if best < 0 || d < best {
			best, target, ok = d, e, true
		}
	})
	return target, best, ok
}

// npcTownIndex resolves the town index an NPC belongs to from its faction,
// mirroring townOf but returning the index nearestFreeWork needs to match
// against Building.TownIndex.
func (g *Game) npcTownIndex(v lifecycle.NpcView) int32 {
	if t := g.townOf(v.Slot.Index); t != nil {
		return t.Index
	}
	return -1
}
