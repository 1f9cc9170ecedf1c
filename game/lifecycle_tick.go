package game

import (
	"log/slog"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/lifecycle"
)

// advanceLifecycle ticks every home building's respawn timer and every
// in-flight migration boat, per spec §4J. It runs after applyPendingDespawns
// so a spawner whose occupant died this frame unlinks before its timer
// starts counting down the same tick.
func (g *Game) advanceLifecycle(gameHours, dtSeconds float64) {
	g.tickSpawners(gameHours)
	g.tickMigrations(dtSeconds)
	g.tickPendingSpawns(gameHours)
}

// tickPendingSpawns counts down each queued PendingAiSpawn's cooldown and,
// once it reaches zero, launches a boat migration toward the spawn's
// faction's town (falling back to the map center if that faction has no
// town yet, e.g. its first ever migration).
func (g *Game) tickPendingSpawns(gameHours float64) {
	var remaining []lifecycle.PendingAiSpawn
	for _, spawn := range g.PendingSpawns {
		spawn.CooldownHours -= gameHours
		if spawn.CooldownHours > 0 {
			remaining = append(remaining, spawn)
			continue
		}
		settleTarget := g.settleTargetForFaction(spawn.Faction)
		mapEdge := components.Position{X: 0, Y: float32(g.cfg.Simulation.WorldHeight) / 2}
		g.Migrations = append(g.Migrations, lifecycle.NewMigration(spawn, mapEdge, settleTarget))
	}
	g.PendingSpawns = remaining
}

func (g *Game) settleTargetForFaction(faction int32) components.Position {
	if t := g.townForFaction(faction); t != nil {
		return t.FountainPos
	}
	return components.Position{
		X: float32(g.cfg.Simulation.WorldWidth) / 2,
		Y: float32(g.cfg.Simulation.WorldHeight) / 2,
	}
}

// townForFaction finds a faction's town by value, unlike townOf (keyed off
// an NPC's slot) and townByIndex (keyed off a building's stable index).
func (g *Game) townForFaction(faction int32) *lifecycle.Town {
	for _, t := range g.Towns {
		if t.Faction == faction {
			return t
		}
	}
	return nil
}

// migrationMemberCount derives the settling population from a migration's
// strength factor: base scales linearly, floored at 1 so even a weak
// migration (e.g. an endless-mode replacement at reduced strength) always
// brings someone ashore.
func migrationMemberCount(strength float32, base int) int {
	n := int(strength*float32(base) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

// settleMigration runs place_buildings plus population materialization the
// instant a migration's boat disembarks, per spec §4J/§8 scenario 4: the
// settling faction gets a town-center building (a fountain for the player
// faction, a tent for everyone else, mirroring playerTownBuildings and
// raiderCampBuildings) plus one home building per arriving member, each
// home immediately occupied by a live NPC rather than left for a spawner
// to fill later — these NPCs are the migration's own disembarking members,
// not a respawn. A brand-new faction (no existing town) gets one founded
// at the settle target; an understrength existing faction (the "insufficient
// raider towns" trigger) reinforces its town in place.
func (g *Game) settleMigration(m *lifecycle.Migration) {
	town := g.townForFaction(m.Spawn.Faction)
	if town == nil {
		town = lifecycle.NewTown(int32(len(g.Towns)), m.Spawn.Faction, m.SettleTarget)
		g.Towns = append(g.Towns, town)
	}

	centerKind := components.BuildingTent
	if m.Spawn.Faction == components.PlayerFaction {
		centerKind = components.BuildingFountain
	}
	g.placeBuilding(centerKind, m.SettleTarget, town.Index)

	job := lifecycle.JobForHomeKind(m.Spawn.Kind)
	// Migrant stats scale with the player's upgrade levels, not the
	// settling town's own.
	var playerUpgrades map[string]int
	if pt := g.townForFaction(components.PlayerFaction); pt != nil {
		playerUpgrades = pt.Upgrades
	}
	stats := lifecycle.ResolveStats(job, components.LevelXP{Level: 1}, playerUpgrades)
	stats.MaxHealth *= m.Spawn.Strength
	stats.DamageMult *= m.Spawn.Strength

	n := migrationMemberCount(m.Spawn.Strength, g.cfg.Lifecycle.MigrationBaseMembers)
	for i := 0; i < n; i++ {
		homePos := components.Position{
			X: m.SettleTarget.X + float32(g.rng.Intn(81)-40),
			Y: m.SettleTarget.Y + float32(g.rng.Intn(81)-40),
		}
		home, homeIdx := g.placeBuilding(m.Spawn.Kind, homePos, town.Index)
		_, slot, err := g.SpawnNpc(lifecycle.SpawnRequest{
			Pos:       homePos,
			Faction:   m.Spawn.Faction,
			Job:       job,
			Kind:      components.KindMobile,
			HomePos:   homePos,
			Home:      home,
			Stats:     stats,
			Overrides: &lifecycle.NpcSpawnOverrides{Personality: &m.Spawn.Personality},
		})
		if err != nil {
			continue
		}
		m.Members = append(m.Members, slot)
		// Link the spawner to the member disembarking into this home now,
		// same as tickSpawners links a fresh respawn: otherwise the home's
		// unlinked respawn timer would materialize a second occupant later.
		if sp := g.Spawners[homeIdx]; sp != nil {
			sp.LinkSlot(slot)
		}
	}
}

func (g *Game) tickSpawners(gameHours float64) {
	respawnHours := g.cfg.Lifecycle.SpawnerRespawnHours
	for idx, sp := range g.Spawners {
		if sp.LinkedSlot >= 0 {
			if _, alive := g.Manager.EntityForSlot(sp.LinkedSlot); !alive {
				sp.Unlink(respawnHours)
			}
		}
		if !sp.Tick(gameHours, respawnHours) {
			continue
		}
		job := lifecycle.JobForHomeKind(sp.Kind)
		if job == components.JobNone {
			continue
		}
		town := g.townByIndex(sp.TownIndex)
		faction := components.NeutralFaction
		var upgrades map[string]int
		if town != nil {
			faction = town.Faction
			upgrades = town.Upgrades
		}
		homeEntity, _ := g.Buildings.EntityForIndex(idx)
		stats := lifecycle.ResolveStats(job, components.LevelXP{Level: 1}, upgrades)
		_, slot, err := g.SpawnNpc(lifecycle.SpawnRequest{
			Pos:     sp.Building.Pos,
			Faction: faction,
			Job:     job,
			Kind:    components.KindMobile,
			HomePos: sp.Building.Pos,
			Home:    homeEntity,
			Stats:   stats,
		})
		if err != nil {
			continue
		}
		sp.LinkSlot(slot)
	}
}

func (g *Game) tickMigrations(dtSeconds float64) {
	boatSpeed := g.cfg.Lifecycle.BoatSpeed
	live := g.Migrations[:0]
	for _, m := range g.Migrations {
		if m.AdvanceBoat(dtSeconds, boatSpeed) {
			g.settleMigration(m)
			m.Settle()
			g.Stats.RecordMigrationSettled()
			continue // settled: members are live NPCs now, nothing left to tick here
		}
		if m.AllMembersDead(func(slot int32) bool {
			_, alive := g.Manager.EntityForSlot(slot)
			return alive
		}) {
			replacement := lifecycle.ReplacementSpawn(m.Spawn, g.cfg.Lifecycle.MigrationReplaceDelayHours)
			g.PendingSpawns = append(g.PendingSpawns, replacement)
			slog.Warn("migration_lost_at_sea",
				"faction", m.Spawn.Faction,
				"kind", m.Spawn.Kind,
				"replacement_delay_hours", g.cfg.Lifecycle.MigrationReplaceDelayHours,
			)
			continue
		}
		live = append(live, m)
	}
	g.Migrations = live
}

// RegisterSpawner attaches a respawn timer to a freshly placed home
// building. No-op for building kinds that don't correspond to a job (see
// lifecycle.JobForHomeKind).
func (g *Game) RegisterSpawner(idx int32, b components.Building) {
	if lifecycle.JobForHomeKind(b.Kind) == components.JobNone {
		return
	}
	g.Spawners[idx] = lifecycle.NewSpawner(b, b.Kind, b.TownIndex, g.cfg.Lifecycle.SpawnerRespawnHours)
}
