package game

import (
	"math/rand"
	"testing"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/config"
	"github.com/ironhold/endless/worldgen"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return New(cfg, rand.New(rand.NewSource(1)))
}

func TestPopulateFreshCreatesTownsAndBuildings(t *testing.T) {
	g := newTestGame(t)
	gen := worldgen.NewGenerator()
	g.PopulateFresh(7, gen)

	if len(g.Towns) == 0 {
		t.Fatalf("PopulateFresh produced no towns")
	}
	if len(g.Spawners) == 0 {
		t.Fatalf("PopulateFresh produced no spawners; every placed building should register one")
	}
}

func TestStepAdvancesFrameAndIsStable(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	g.SeedPopulation(rand.New(rand.NewSource(1)), 0, components.JobFarmer, g.Towns[0].FountainPos, 3)

	for i := 0; i < 120; i++ {
		g.Step(1.0 / 60.0)
	}

	if g.Time.Frame != 120 {
		t.Fatalf("Time.Frame = %d, want 120", g.Time.Frame)
	}
}

func TestStepPausedDoesNotAdvanceGameHours(t *testing.T) {
	g := newTestGame(t)
	g.PopulateFresh(7, worldgen.NewGenerator())
	g.Time.Paused = true

	before := g.Time.ElapsedHours
	for i := 0; i < 10; i++ {
		g.Step(1.0 / 60.0)
	}
	if g.Time.ElapsedHours != before {
		t.Fatalf("ElapsedHours advanced while paused: %v -> %v", before, g.Time.ElapsedHours)
	}
	if g.Time.Frame != 10 {
		t.Fatalf("Frame should still advance while paused, got %d", g.Time.Frame)
	}
}
