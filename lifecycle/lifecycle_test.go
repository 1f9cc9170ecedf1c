package lifecycle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ironhold/endless/components"
)

func TestSpawnerTickRespawnsAfterTimerExpires(t *testing.T) {
	s := NewSpawner(components.Building{}, components.BuildingFarmerHome, 0, 12)
	if s.Tick(11, 12) {
		t.Fatal("should not fire before the timer expires")
	}
	if !s.Tick(2, 12) {
		t.Fatal("should fire once the timer runs out")
	}
	if s.RespawnTimer != 12 {
		t.Fatal("timer should reset to the default window after firing")
	}
}

func TestSpawnerTickIgnoredWhileLinked(t *testing.T) {
	s := NewSpawner(components.Building{}, components.BuildingFarmerHome, 0, 12)
	s.LinkSlot(5)
	if s.Tick(100, 12) {
		t.Fatal("a linked spawner should never fire")
	}
}

func TestMigrationBoatArrivesAndDisembarks(t *testing.T) {
	m := NewMigration(PendingAiSpawn{Strength: 1}, components.Position{X: 0, Y: 0}, components.Position{X: 100, Y: 0})
	for i := 0; i < 20; i++ {
		if m.AdvanceBoat(1, 40) {
			break
		}
	}
	if m.Phase != PhaseDisembarked {
		t.Fatalf("phase = %v, want PhaseDisembarked after reaching target", m.Phase)
	}
}

func TestMigrationAllMembersDeadTriggersReplacement(t *testing.T) {
	m := NewMigration(PendingAiSpawn{Strength: 1}, components.Position{}, components.Position{})
	m.Members = []int32{1, 2, 3}
	dead := func(slot int32) bool { return false }
	if !m.AllMembersDead(dead) {
		t.Fatal("all-dead members should report true")
	}

	replacement := ReplacementSpawn(m.Spawn, 4)
	if replacement.CooldownHours != 4 {
		t.Fatal("replacement spawn should carry the 4h delay")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")

	doc := &Document{
		Towns: []TownSave{{Index: 0, Faction: 0, Food: 12, Gold: 3}},
		Npcs: []NpcSave{
			{Slot: 0, X: 10, Y: 20, Health: 80, MaxHealth: 100, Faction: 0, Job: components.JobFarmer},
		},
	}
	if err := Save(doc, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Version != SaveVersion {
		t.Fatalf("version = %d, want %d", loaded.Version, SaveVersion)
	}
	if len(loaded.Npcs) != 1 || loaded.Npcs[0].Slot != 0 || loaded.Npcs[0].Health != 80 {
		t.Fatal("round-tripped npc data should match what was saved")
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "future.json")
	os.WriteFile(path, []byte(`{"Version": 999}`), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("loading a future version should fail")
	}
}

func TestTownUpgradeMultipliers(t *testing.T) {
	town := NewTown(0, components.PlayerFaction, components.Position{})
	town.Upgrades["gold_yield"] = 2
	if mult := town.GoldYieldMultiplier(); mult != 1.3 {
		t.Fatalf("gold yield mult = %v, want 1.3", mult)
	}
}
