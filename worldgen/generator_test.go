package worldgen

import (
	"math/rand"
	"testing"
)

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	gen := NewGenerator()
	a := gen.Generate(42, 1000, 1000)
	b := gen.Generate(42, 1000, 1000)

	if len(a.TownSeeds) != len(b.TownSeeds) {
		t.Fatalf("TownSeeds lengths differ: %d vs %d", len(a.TownSeeds), len(b.TownSeeds))
	}
	for i := range a.TownSeeds {
		if a.TownSeeds[i] != b.TownSeeds[i] {
			t.Fatalf("TownSeeds[%d] = %v, want %v (same seed must reproduce)", i, a.TownSeeds[i], b.TownSeeds[i])
		}
	}
	for i := range a.BiomeGrid {
		if a.BiomeGrid[i] != b.BiomeGrid[i] {
			t.Fatalf("BiomeGrid[%d] = %d, want %d (same seed must reproduce)", i, a.BiomeGrid[i], b.BiomeGrid[i])
		}
	}
}

func TestGeneratePlacesExpectedSeedCounts(t *testing.T) {
	gen := NewGenerator()
	result := gen.Generate(7, 2000, 2000)

	if got, want := len(result.TownSeeds), gen.NumTowns; got != want {
		t.Fatalf("len(TownSeeds) = %d, want %d", got, want)
	}
	if got, want := len(result.CampSeeds), gen.NumCamps; got != want {
		t.Fatalf("len(CampSeeds) = %d, want %d", got, want)
	}
	if len(result.InitialBuildings) == 0 {
		t.Fatalf("InitialBuildings is empty, want at least one building per seed")
	}
	if want := gen.CellsX * gen.CellsY; len(result.BiomeGrid) != want {
		t.Fatalf("len(BiomeGrid) = %d, want %d", len(result.BiomeGrid), want)
	}
	if result.Width != gen.CellsX || result.Height != gen.CellsY {
		t.Fatalf("result.Width/Height = %d/%d, want %d/%d (biome grid resolution, not pixel extent)", result.Width, result.Height, gen.CellsX, gen.CellsY)
	}
}

func TestScatterSeedsRespectsMinSpacing(t *testing.T) {
	gen := NewGenerator()
	rng := rand.New(rand.NewSource(1))
	seeds := gen.scatterSeeds(rng, 5, 2000, 2000)

	for i := range seeds {
		for j := i + 1; j < len(seeds); j++ {
			dx, dy := seeds[i].X-seeds[j].X, seeds[i].Y-seeds[j].Y
			distSq := dx*dx + dy*dy
			if distSq < 200*200 {
				t.Fatalf("seeds[%d] and seeds[%d] are %v apart, want >= 200", i, j, distSq)
			}
		}
	}
}
