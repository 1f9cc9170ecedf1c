package game

import (
	"math/rand"
	"testing"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/external"
	"github.com/ironhold/endless/lifecycle"
	"github.com/ironhold/endless/worldgen"
)

func TestSaveGameLoadGameRoundTrip(t *testing.T) {
	store, err := external.NewFileSaveStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSaveStore: %v", err)
	}

	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	rng := rand.New(rand.NewSource(1))
	g.SeedPopulation(rng, 0, components.JobFarmer, g.Towns[0].FountainPos, 3)
	g.Towns[0].Food.Credit(50)
	g.Towns[0].Gold.Credit(10)

	for i := 0; i < 30; i++ {
		g.Step(1.0 / 60.0)
	}

	wantNpcs := 0
	g.Manager.ForEachNpc(func(lifecycle.NpcView) { wantNpcs++ })

	if err := g.SaveGame(store, "slot1"); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	loaded := newTestGame(t)
	if err := loaded.LoadGame(store, "slot1"); err != nil {
		t.Fatalf("LoadGame: %v", err)
	}

	if len(loaded.Towns) != len(g.Towns) {
		t.Fatalf("loaded Towns count = %d, want %d", len(loaded.Towns), len(g.Towns))
	}
	if loaded.Towns[0].Food.Amount() != g.Towns[0].Food.Amount() {
		t.Errorf("loaded Food = %v, want %v", loaded.Towns[0].Food.Amount(), g.Towns[0].Food.Amount())
	}
	if loaded.Towns[0].Gold.Amount() != g.Towns[0].Gold.Amount() {
		t.Errorf("loaded Gold = %v, want %v", loaded.Towns[0].Gold.Amount(), g.Towns[0].Gold.Amount())
	}

	gotNpcs := 0
	loaded.Manager.ForEachNpc(func(lifecycle.NpcView) { gotNpcs++ })
	if gotNpcs != wantNpcs {
		t.Errorf("loaded npc count = %d, want %d", gotNpcs, wantNpcs)
	}

	if len(loaded.Spawners) != len(g.Spawners) {
		t.Errorf("loaded Spawners count = %d, want %d", len(loaded.Spawners), len(g.Spawners))
	}
}

func TestLoadGameMissingKeyReturnsError(t *testing.T) {
	store, err := external.NewFileSaveStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSaveStore: %v", err)
	}
	g := newTestGame(t)
	if err := g.LoadGame(store, "does-not-exist"); err == nil {
		t.Fatalf("LoadGame with a missing key should return an error")
	}
}
