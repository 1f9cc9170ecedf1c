package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/external"
	"github.com/ironhold/endless/lifecycle"
	"github.com/ironhold/endless/squad"
)

// ToDocument snapshots the full game state into a lifecycle.Document, per
// spec §6/§7. NpcSave.RecoverUntil is always written as 0: rest/heal
// completion in this implementation is driven by Energy/Health thresholds,
// not a wall-clock timer, so there is nothing to persist there.
func (g *Game) ToDocument() *lifecycle.Document {
	doc := &lifecycle.Document{}

	width, height, cells := g.Grid.ToSave()
	doc.WorldGrid = lifecycle.WorldGridSave{Width: width, Height: height, Cells: cells}

	doc.Buildings = g.buildingsToSave()
	doc.Spawners = g.spawnersToSave()
	doc.Towns = g.townsToSave()
	doc.Squads = g.squadsToSave()
	doc.PendingSpawns = g.pendingSpawnsToSave()
	doc.Npcs = g.npcsToSave()
	return doc
}

func (g *Game) buildingsToSave() map[string][]lifecycle.BuildingSave {
	out := make(map[string][]lifecycle.BuildingSave)
	g.Buildings.ForEach(func(e ecs.Entity, b *components.Building) {
		idx, _ := g.Buildings.IndexOf(e)
		key := buildingSaveKey(b.Kind)
		out[key] = append(out[key], lifecycle.BuildingSave{
			Index:     idx,
			Kind:      b.Kind,
			X:         b.Pos.X,
			Y:         b.Pos.Y,
			TownIndex: b.TownIndex,
			HP:        b.HP.Current,
			MaxHP:     b.HP.Max,
		})
	})
	return out
}

// buildingSaveKey names a building kind's save-document bucket; adding a
// new kind means adding one row here, same as building_registry.go.
func buildingSaveKey(kind components.BuildingKind) string {
	switch kind {
	case components.BuildingFountain:
		return "fountain"
	case components.BuildingFarm:
		return "farm"
	case components.BuildingBed:
		return "bed"
	case components.BuildingFarmerHome:
		return "farmer_home"
	case components.BuildingArcherHome:
		return "archer_home"
	case components.BuildingCrossbowHome:
		return "crossbow_home"
	case components.BuildingFighterHome:
		return "fighter_home"
	case components.BuildingMinerHome:
		return "miner_home"
	case components.BuildingGoldMine:
		return "gold_mine"
	case components.BuildingWaypoint:
		return "waypoint"
	case components.BuildingTent:
		return "tent"
	case components.BuildingRoad:
		return "road"
	case components.BuildingTower:
		return "tower"
	default:
		return "unknown"
	}
}

func (g *Game) spawnersToSave() []lifecycle.SpawnerSave {
	out := make([]lifecycle.SpawnerSave, 0, len(g.Spawners))
	for idx, sp := range g.Spawners {
		out = append(out, lifecycle.SpawnerSave{
			BuildingIndex: int(idx),
			TownIndex:     sp.TownIndex,
			LinkedSlot:    sp.LinkedSlot,
			RespawnTimer:  sp.RespawnTimer,
		})
	}
	return out
}

func (g *Game) townsToSave() []lifecycle.TownSave {
	out := make([]lifecycle.TownSave, 0, len(g.Towns))
	for _, t := range g.Towns {
		out = append(out, lifecycle.TownSave{
			Index:     t.Index,
			Faction:   t.Faction,
			FountainX: t.FountainPos.X,
			FountainY: t.FountainPos.Y,
			Food:      t.Food.Amount(),
			Gold:      t.Gold.Amount(),
			Upgrades:  t.Upgrades,
			Policies:  t.Policies,
			AIActive:  t.AIActive,
		})
	}
	return out
}

func (g *Game) squadsToSave() []lifecycle.SquadSave {
	out := make([]lifecycle.SquadSave, 0, len(g.Squads))
	for _, sq := range g.Squads {
		save := lifecycle.SquadSave{
			ID:         sq.ID,
			Owner:      sq.Owner,
			Members:    append([]int32(nil), sq.Members...),
			WaveActive: sq.Phase == squad.PhaseActive,
		}
		switch sq.Target.Kind {
		case squad.TargetNpc:
			save.TargetKind = "npc"
			save.TargetSlot = sq.Target.Slot
		case squad.TargetBuilding:
			save.TargetKind = "building"
			save.TargetX, save.TargetY = sq.Target.Pos.X, sq.Target.Pos.Y
		case squad.TargetPosition:
			save.TargetKind = "position"
			save.TargetX, save.TargetY = sq.Target.Pos.X, sq.Target.Pos.Y
		default:
			save.TargetKind = "none"
		}
		out = append(out, save)
	}
	return out
}

func (g *Game) pendingSpawnsToSave() []lifecycle.PendingSpawnSave {
	out := make([]lifecycle.PendingSpawnSave, 0, len(g.PendingSpawns))
	for _, p := range g.PendingSpawns {
		out = append(out, lifecycle.PendingSpawnSave{
			Strength:      p.Strength,
			Faction:       p.Faction,
			Personality:   p.Personality,
			Kind:          p.Kind,
			CooldownHours: p.CooldownHours,
		})
	}
	return out
}

func (g *Game) npcsToSave() []lifecycle.NpcSave {
	var out []lifecycle.NpcSave
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		slot := v.Slot.Index
		if slot < 0 || int(slot) >= len(g.Buf.Health) {
			return
		}
		townIndex := int32(-1)
		if t := g.townOf(slot); t != nil {
			townIndex = t.Index
		}
		loot := components.Loot{}
		if l := g.Manager.Loot(v.Entity); l != nil {
			loot = *l
		}
		equip := components.Equipment{}
		if e := g.Manager.Equipment(v.Entity); e != nil {
			equip = *e
		}
		level := components.LevelXP{Level: 1}
		if l := g.Manager.Level(v.Entity); l != nil {
			level = *l
		}
		workX, workY := float32(0), float32(0)
		if b := g.Buildings.Building(v.Assignment.WorkTarget); b != nil {
			workX, workY = b.Pos.X, b.Pos.Y
		}

		out = append(out, lifecycle.NpcSave{
			Slot:        slot,
			X:           g.Buf.Position[slot].X,
			Y:           g.Buf.Position[slot].Y,
			Health:      g.Buf.Health[slot],
			MaxHealth:   g.statsMaxHealth(v.Entity),
			Energy:      v.Energy.Current,
			Activity:    *v.Activity,
			Combat:      v.Combat.State,
			Job:         *v.Job,
			Faction:     g.Buf.Faction[slot],
			TownIndex:   townIndex,
			HomeX:       v.Assignment.Home.X,
			HomeY:       v.Assignment.Home.Y,
			WorkX:       workX,
			WorkY:       workY,
			SquadID:     v.Assignment.SquadID,
			PatrolRoute: v.Assignment.PatrolRoute,
			Personality: *v.Personality,
			Level:       level.Level,
			XP:          level.XP,
			Weapon:      equip.WeaponID,
			Helmet:      equip.HelmetID,
			Armor:       equip.ArmorID,
			LootFood:    loot.Food,
			LootGold:    loot.Gold,
		})
	})
	return out
}

// SaveGame snapshots the game and writes it to store under key.
func (g *Game) SaveGame(store external.SaveStore, key string) error {
	data, err := lifecycle.Marshal(g.ToDocument())
	if err != nil {
		slog.Error("failed to save game", "key", key, "error", err)
		return fmt.Errorf("game: save %q: %w", key, err)
	}
	if err := store.Put(key, data); err != nil {
		slog.Error("failed to save game", "key", key, "error", err)
		return fmt.Errorf("game: save %q: %w", key, err)
	}
	slog.Info("game saved", "key", key, "bytes", len(data))
	return nil
}

// buildingKindForSaveKey inverts buildingSaveKey. An unrecognized key (a
// save written by a future build) is skipped by the caller rather than
// materializing a wrong building kind.
func buildingKindForSaveKey(key string) (components.BuildingKind, bool) {
	switch key {
	case "fountain":
		return components.BuildingFountain, true
	case "farm":
		return components.BuildingFarm, true
	case "bed":
		return components.BuildingBed, true
	case "farmer_home":
		return components.BuildingFarmerHome, true
	case "archer_home":
		return components.BuildingArcherHome, true
	case "crossbow_home":
		return components.BuildingCrossbowHome, true
	case "fighter_home":
		return components.BuildingFighterHome, true
	case "miner_home":
		return components.BuildingMinerHome, true
	case "gold_mine":
		return components.BuildingGoldMine, true
	case "waypoint":
		return components.BuildingWaypoint, true
	case "tent":
		return components.BuildingTent, true
	case "road":
		return components.BuildingRoad, true
	case "tower":
		return components.BuildingTower, true
	default:
		return 0, false
	}
}

// LoadDocument replays doc onto g, materializing every building, spawner,
// town, squad, pending spawn, and NPC through the same paths a live game
// uses (BuildingManager.PlaceAt, SpawnNpc), per spec §6/§7. It is meant to
// run once on a freshly constructed Game (game.New): it never clears
// already-live entities, only adds to empty maps/filters.
func (g *Game) LoadDocument(doc *lifecycle.Document) error {
	g.Grid.LoadFromSave(doc.WorldGrid.Width, doc.WorldGrid.Height, doc.WorldGrid.Cells)

	g.Towns = g.Towns[:0]
	for _, ts := range doc.Towns {
		town := lifecycle.NewTown(ts.Index, ts.Faction, components.Position{X: ts.FountainX, Y: ts.FountainY})
		town.Food.Credit(ts.Food)
		town.Gold.Credit(ts.Gold)
		if ts.Upgrades != nil {
			town.Upgrades = ts.Upgrades
		}
		if ts.Policies != nil {
			town.Policies = ts.Policies
		}
		town.AIActive = ts.AIActive
		g.Towns = append(g.Towns, town)
	}

	g.loadBuildings(doc.Buildings)
	g.loadSpawners(doc.Spawners)

	oldToNewSlot := g.loadNpcs(doc.Npcs)
	g.loadSquads(doc.Squads, oldToNewSlot)

	g.PendingSpawns = g.PendingSpawns[:0]
	for _, p := range doc.PendingSpawns {
		g.PendingSpawns = append(g.PendingSpawns, lifecycle.PendingAiSpawn{
			Strength:      p.Strength,
			Faction:       p.Faction,
			Personality:   p.Personality,
			Kind:          p.Kind,
			CooldownHours: p.CooldownHours,
		})
	}
	return nil
}

// loadBuildings restores every building at its saved index via PlaceAt,
// and re-materializes its BUILDING_PROXY slot the same way a fresh
// placement would (proxy slot assignment is runtime GPU state, never
// itself persisted).
func (g *Game) loadBuildings(saved map[string][]lifecycle.BuildingSave) {
	for key, list := range saved {
		kind, ok := buildingKindForSaveKey(key)
		if !ok {
			continue
		}
		for _, b := range list {
			pos := components.Position{X: b.X, Y: b.Y}
			entity := g.Buildings.PlaceAt(b.Index, kind, pos, b.TownIndex, b.HP, b.MaxHP)
			g.materializeBuildingProxy(entity, kind, pos, b.TownIndex, b.HP)
		}
	}
}

// loadSpawners re-creates each restored building's respawn timer, keeping
// the saved (old-numbering) LinkedSlot: loadNpcs runs next, finds each
// restored NPC's home spawner by position and town, and re-links it to the
// NPC's new slot when its LinkedSlot equals that NPC's saved slot. A
// spawner whose BuildingIndex no
// longer resolves (a building kind with no spawner, or an orphaned save) is
// skipped.
func (g *Game) loadSpawners(saved []lifecycle.SpawnerSave) {
	for _, sp := range saved {
		entity, ok := g.Buildings.EntityForIndex(int32(sp.BuildingIndex))
		if !ok {
			continue
		}
		b := g.Buildings.Building(entity)
		if b == nil {
			continue
		}
		spawner := lifecycle.NewSpawner(*b, b.Kind, sp.TownIndex, sp.RespawnTimer)
		spawner.LinkedSlot = sp.LinkedSlot
		g.Spawners[int32(sp.BuildingIndex)] = spawner
	}
}

// loadNpcs materializes every saved NPC through SpawnNpc, restoring every
// field MaterializeNpc's overrides don't already cover by writing directly
// to the NPC's components/GPU buffer afterward. It returns the old->new
// slot mapping: SpawnNpc's allocator hands out slots in call order, which
// only reproduces the original numbering when nothing else has raced it,
// so spawner links and squad references must be remapped through this
// rather than assumed identical.
func (g *Game) loadNpcs(saved []lifecycle.NpcSave) map[int32]int32 {
	oldToNew := make(map[int32]int32, len(saved))
	for _, n := range saved {
		var homeEntity ecs.Entity
		var homeSpawnerIdx int32 = -1
		for idx, sp := range g.Spawners {
			if sp.Building.Pos.X == n.HomeX && sp.Building.Pos.Y == n.HomeY && sp.TownIndex == n.TownIndex {
				if e, ok := g.Buildings.EntityForIndex(idx); ok {
					homeEntity = e
					homeSpawnerIdx = idx
				}
				break
			}
		}

		stats := lifecycle.ResolveStats(n.Job, components.LevelXP{Level: n.Level, XP: n.XP}, g.upgradesForTown(n.TownIndex))
		personality := n.Personality
		level := components.LevelXP{Level: n.Level, XP: n.XP}
		equip := components.Equipment{WeaponID: n.Weapon, HelmetID: n.Helmet, ArmorID: n.Armor}
		loot := components.Loot{Food: n.LootFood, Gold: n.LootGold}
		energy := n.Energy
		health := n.Health

		entity, newSlot, err := g.SpawnNpc(lifecycle.SpawnRequest{
			Pos:     components.Position{X: n.X, Y: n.Y},
			Faction: n.Faction,
			Job:     n.Job,
			Kind:    components.KindMobile,
			HomePos: components.Position{X: n.HomeX, Y: n.HomeY},
			Home:    homeEntity,
			Stats:   stats,
			Overrides: &lifecycle.NpcSpawnOverrides{
				Personality: &personality,
				Level:       &level,
				Equipment:   &equip,
				Loot:        &loot,
				Energy:      &energy,
				Health:      &health,
			},
		})
		if err != nil {
			continue
		}
		oldToNew[n.Slot] = newSlot

		if a := g.Manager.Activity(entity); a != nil {
			*a = n.Activity
		}
		if c := g.Manager.Combat(entity); c != nil {
			c.State = n.Combat
		}
		if as := g.Manager.Assignment(entity); as != nil {
			as.SquadID = n.SquadID
			as.PatrolRoute = n.PatrolRoute
		}

		if homeSpawnerIdx >= 0 {
			if sp, ok := g.Spawners[homeSpawnerIdx]; ok && sp.LinkedSlot == n.Slot {
				sp.LinkSlot(newSlot)
			}
		}
	}
	return oldToNew
}

// upgradesForTown returns a town's upgrade levels by index, nil if the
// town can't be found (a neutral-faction NPC has none).
func (g *Game) upgradesForTown(townIndex int32) map[string]int {
	if t := g.townByIndex(townIndex); t != nil {
		return t.Upgrades
	}
	return nil
}

// loadSquads rebuilds every saved squad, remapping member and NPC-target
// slots through oldToNewSlot. Rally isn't part of SquadSave, so restored
// squads rally at the zero position; nothing re-derives or reassigns a
// squad's rally point after creation.
func (g *Game) loadSquads(saved []lifecycle.SquadSave, oldToNewSlot map[int32]int32) {
	g.Squads = make(map[int32]*squad.Squad, len(saved))
	for _, ss := range saved {
		sq := squad.NewSquad(ss.ID, ss.Owner, components.Position{},
			g.cfg.Squad.DefaultWaveMinStart, g.cfg.Squad.DefaultRetreatBelowPct)
		for _, oldSlot := range ss.Members {
			if newSlot, ok := oldToNewSlot[oldSlot]; ok {
				sq.AddMember(newSlot)
			}
		}
		switch ss.TargetKind {
		case "npc":
			if newSlot, ok := oldToNewSlot[ss.TargetSlot]; ok {
				sq.SetManualTarget(squad.Target{Kind: squad.TargetNpc, Slot: newSlot})
			}
		case "building":
			sq.SetManualTarget(squad.Target{Kind: squad.TargetBuilding, Pos: components.Position{X: ss.TargetX, Y: ss.TargetY}})
		case "position":
			sq.SetManualTarget(squad.Target{Kind: squad.TargetPosition, Pos: components.Position{X: ss.TargetX, Y: ss.TargetY}})
		}
		if ss.WaveActive {
			sq.Phase = squad.PhaseActive
			sq.WaveStartCount = len(sq.Members)
		}
		g.Squads[sq.ID] = sq
	}
}

// LoadGame reads key from store and replays it onto a freshly constructed
// Game via LoadDocument.
func (g *Game) LoadGame(store external.SaveStore, key string) error {
	data, err := store.Get(key)
	if err != nil {
		slog.Error("failed to load game", "key", key, "error", err)
		return fmt.Errorf("game: load %q: %w", key, err)
	}
	doc, err := lifecycle.Unmarshal(data)
	if err != nil {
		slog.Error("failed to load game", "key", key, "error", err)
		return fmt.Errorf("game: load %q: %w", key, err)
	}
	if err := g.LoadDocument(doc); err != nil {
		slog.Error("failed to load game", "key", key, "error", err)
		return err
	}
	slog.Info("game loaded", "key", key, "npcs", len(doc.Npcs))
	return nil
}
