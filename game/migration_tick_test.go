package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/lifecycle"
	"github.com/ironhold/endless/worldgen"
)

func TestTickMigrationsSettlesExistingTownAndMaterializesMembers(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())

	camp := g.Towns[1]

	spawn := lifecycle.PendingAiSpawn{Strength: 1, Faction: camp.Faction, Kind: components.BuildingFighterHome}
	m := lifecycle.NewMigration(spawn, components.Position{X: 0, Y: 0}, camp.FountainPos)
	g.Migrations = append(g.Migrations, m)

	// boatSpeed*dt comfortably exceeds the distance from (0,0) to the camp
	// fountain in one call, so AdvanceBoat arrives immediately.
	g.tickMigrations(1e6)

	if len(g.Migrations) != 0 {
		t.Fatalf("len(g.Migrations) = %d, want 0 once the migration has settled", len(g.Migrations))
	}
	if m.Phase != lifecycle.PhaseSettled {
		t.Fatalf("Phase = %v, want PhaseSettled", m.Phase)
	}
	wantMembers := migrationMemberCount(spawn.Strength, g.cfg.Lifecycle.MigrationBaseMembers)
	if len(m.Members) != wantMembers {
		t.Fatalf("len(Members) = %d, want %d", len(m.Members), wantMembers)
	}

	for _, slot := range m.Members {
		if _, alive := g.Manager.EntityForSlot(slot); !alive {
			t.Errorf("member slot %d is not a live NPC", slot)
		}
	}

	foundFighterHome := false
	g.Buildings.ForEach(func(_ ecs.Entity, b *components.Building) {
		if b.Kind == components.BuildingFighterHome && b.TownIndex == camp.Index {
			foundFighterHome = true
		}
	})
	if !foundFighterHome {
		t.Errorf("settleMigration did not place a BuildingFighterHome for the migration's job kind")
	}
}

func TestTickMigrationsFoundsNewTownForUnknownFaction(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	before := len(g.Towns)

	newFaction := int32(before + 50)
	spawn := lifecycle.PendingAiSpawn{Strength: 0.5, Faction: newFaction, Kind: components.BuildingFighterHome}
	target := components.Position{X: 500, Y: 500}
	m := lifecycle.NewMigration(spawn, target, target)
	g.Migrations = append(g.Migrations, m)

	g.tickMigrations(1e6)

	if len(g.Towns) != before+1 {
		t.Fatalf("len(g.Towns) = %d, want %d after founding a town for a new faction", len(g.Towns), before+1)
	}
	town := g.Towns[len(g.Towns)-1]
	if town.Faction != newFaction {
		t.Errorf("new town Faction = %d, want %d", town.Faction, newFaction)
	}
	wantMembers := migrationMemberCount(spawn.Strength, g.cfg.Lifecycle.MigrationBaseMembers)
	if len(m.Members) != wantMembers {
		t.Errorf("len(Members) = %d, want %d at strength 0.5", len(m.Members), wantMembers)
	}
}

func TestTickMigrationsRequeuesReplacementWhenAllMembersDieAtSea(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	camp := g.Towns[1]

	spawn := lifecycle.PendingAiSpawn{Strength: 1, Faction: camp.Faction, Kind: components.BuildingFighterHome}
	// Placed far enough away that one small-dt AdvanceBoat call doesn't
	// arrive, leaving the migration in PhaseBoat with Members hand-set to a
	// slot nothing will ever allocate: the "lost at sea before disembark" case.
	m := lifecycle.NewMigration(spawn, components.Position{X: -100000, Y: -100000}, camp.FountainPos)
	m.Members = []int32{999999}
	g.Migrations = append(g.Migrations, m)

	g.tickMigrations(0.01)

	if len(g.Migrations) != 0 {
		t.Fatalf("len(g.Migrations) = %d, want 0 once all members are dead", len(g.Migrations))
	}
	if len(g.PendingSpawns) != 1 {
		t.Fatalf("len(g.PendingSpawns) = %d, want 1 replacement spawn queued", len(g.PendingSpawns))
	}
	if g.PendingSpawns[0].CooldownHours != g.cfg.Lifecycle.MigrationReplaceDelayHours {
		t.Errorf("replacement CooldownHours = %v, want %v", g.PendingSpawns[0].CooldownHours, g.cfg.Lifecycle.MigrationReplaceDelayHours)
	}
}
