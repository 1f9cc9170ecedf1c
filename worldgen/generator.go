// Package worldgen is the CPU reference external.WorldGen implementation:
// a single seeded random-walk biome painter plus deterministic town/camp
// seed placement, standing in for the sprite/terrain-gen tooling the
// distilled scope excludes. It supplies only what a fresh game needs
// before the first frame runs; everything after that (new towns via
// migration, building growth, upgrades) is the simulation's own job.
package worldgen

import (
	"math"
	"math/rand"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/external"
)

// Biome ids written into WorldGenResult.BiomeGrid, matching
// game.biomeTerrainBits' key space.
const (
	BiomeGrass byte = iota
	BiomeForest
	BiomeWater
	BiomeRock
	BiomeDirt
)

// Generator produces a fresh world's biome grid and faction seed layout
// from a single RNG seed, grounded on the teacher's seed-then-scatter
// population pattern (game.go's spawnInitialPopulation): every placement
// decision below draws from one rand.Rand seeded by Generate's seed
// argument, so the same seed always reproduces the same world.
//
// Generate's width/height parameters are the world's extent in pixels —
// the same units components.Position and every InitialBuilding.Pos use.
// The biome grid is a separate, coarser raster: CellsX x CellsY samples
// covering that same pixel extent. This must match the WorldGrid cell
// resolution the caller paints it onto (game.PopulateFresh walks
// cfg.GPU.GridCols x GridRows and indexes BiomeGrid with that stride), so
// CellsX/CellsY default to 256 to match config/defaults.yaml's
// grid_cols/grid_rows; a build that changes those must set matching
// CellsX/CellsY here too.
type Generator struct {
	// NumTowns is how many player-aligned town seeds to place. The first
	// seed is always the player's starting town.
	NumTowns int
	// NumCamps is how many raider camp seeds to place alongside the towns.
	NumCamps int
	// PatchCount and PatchRadius control how many circular biome patches
	// (forest/water/rock/dirt) are stamped onto the otherwise-grass grid,
	// in biome-cell units.
	PatchCount  int
	PatchRadius int
	// CellsX/CellsY size the returned BiomeGrid, independent of the
	// Generate call's pixel width/height.
	CellsX, CellsY int
}

// NewGenerator builds a generator with the spec's single-player-town,
// few-raider-camps default shape.
func NewGenerator() *Generator {
	return &Generator{
		NumTowns:    1,
		NumCamps:    2,
		PatchCount:  24,
		PatchRadius: 6,
		CellsX:      256,
		CellsY:      256,
	}
}

// Generate implements external.WorldGen.
func (gen *Generator) Generate(seed int64, width, height int) external.WorldGenResult {
	rng := rand.New(rand.NewSource(seed))

	cellsX, cellsY := gen.CellsX, gen.CellsY
	if cellsX <= 0 {
		cellsX = 1
	}
	if cellsY <= 0 {
		cellsY = 1
	}
	grid := make([]byte, cellsX*cellsY)
	gen.paintPatches(rng, grid, cellsX, cellsY, BiomeForest)
	gen.paintPatches(rng, grid, cellsX, cellsY, BiomeWater)
	gen.paintPatches(rng, grid, cellsX, cellsY, BiomeRock)
	gen.paintPatches(rng, grid, cellsX, cellsY, BiomeDirt)

	result := external.WorldGenResult{
		BiomeGrid: grid,
		Width:     cellsX,
		Height:    cellsY,
	}

	seeds := gen.scatterSeeds(rng, gen.NumTowns+gen.NumCamps, float32(width), float32(height))

	for i := 0; i < gen.NumTowns; i++ {
		pos := seeds[i]
		result.TownSeeds = append(result.TownSeeds, pos)
		result.InitialBuildings = append(result.InitialBuildings, playerTownBuildings(pos, int32(i))...)
	}
	for i := 0; i < gen.NumCamps; i++ {
		pos := seeds[gen.NumTowns+i]
		result.CampSeeds = append(result.CampSeeds, pos)
		result.InitialBuildings = append(result.InitialBuildings, raiderCampBuildings(pos, int32(gen.NumTowns+i))...)
	}

	result.InitialRoads = gen.roadBetween(seeds)
	return result
}

// paintPatches stamps PatchCount/len(biomes) circular regions of biome
// onto grid, overwriting whatever was already there (later calls paint
// over earlier ones, so forest is laid before water, water before rock).
func (gen *Generator) paintPatches(rng *rand.Rand, grid []byte, width, height int, biome byte) {
	patches := gen.PatchCount / 4
	if patches < 1 {
		patches = 1
	}
	for p := 0; p < patches; p++ {
		cx := rng.Intn(width)
		cy := rng.Intn(height)
		r := 1 + rng.Intn(gen.PatchRadius)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				gx, gy := cx+dx, cy+dy
				if gx < 0 || gx >= width || gy < 0 || gy >= height {
					continue
				}
				grid[gy*width+gx] = biome
			}
		}
	}
}

// scatterSeeds places n positions with a minimum pairwise spacing so
// towns/camps never land on top of each other, falling back to a plain
// random draw after too many rejected attempts (a pathologically small
// map is the only way that happens, and a close-but-not-identical seed
// is harmless there).
func (gen *Generator) scatterSeeds(rng *rand.Rand, n int, width, height float32) []components.Position {
	const minSpacing = 200
	const maxAttempts = 64

	seeds := make([]components.Position, 0, n)
	for len(seeds) < n {
		var candidate components.Position
		ok := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			candidate = components.Position{
				X: rng.Float32() * width,
				Y: rng.Float32() * height,
			}
			ok = true
			for _, s := range seeds {
				dx, dy := candidate.X-s.X, candidate.Y-s.Y
				if dx*dx+dy*dy < minSpacing*minSpacing {
					ok = false
					break
				}
			}
			if ok {
				break
			}
		}
		seeds = append(seeds, candidate)
	}
	return seeds
}

// playerTownBuildings lays out a town's starting fountain, bed, farmer
// home, and farm around its seed position.
func playerTownBuildings(center components.Position, townIndex int32) []external.InitialBuilding {
	return []external.InitialBuilding{
		{Kind: components.BuildingFountain, Pos: center, TownIndex: townIndex},
		{Kind: components.BuildingBed, Pos: offset(center, -60, 0), TownIndex: townIndex},
		{Kind: components.BuildingFarmerHome, Pos: offset(center, 60, 0), TownIndex: townIndex},
		{Kind: components.BuildingFarm, Pos: offset(center, 100, 0), TownIndex: townIndex},
	}
}

// raiderCampBuildings lays out a raider camp's tent and fighter home
// around its seed position.
func raiderCampBuildings(center components.Position, townIndex int32) []external.InitialBuilding {
	return []external.InitialBuilding{
		{Kind: components.BuildingTent, Pos: center, TownIndex: townIndex},
		{Kind: components.BuildingFighterHome, Pos: offset(center, 60, 0), TownIndex: townIndex},
	}
}

func offset(p components.Position, dx, dy float32) components.Position {
	return components.Position{X: p.X + dx, Y: p.Y + dy}
}

// roadBetween returns a straight-line sampling of road cells connecting
// each seed to the first (the player town), giving the NPC shader's
// road-attraction raycast something to find from the start.
func (gen *Generator) roadBetween(seeds []components.Position) []components.Position {
	if len(seeds) < 2 {
		return nil
	}
	hub := seeds[0]
	var roads []components.Position
	const step = 40
	for _, s := range seeds[1:] {
		dx, dy := s.X-hub.X, s.Y-hub.Y
		dist := dx*dx + dy*dy
		if dist == 0 {
			continue
		}
		steps := int(float32(math.Sqrt(float64(dist))) / step)
		if steps < 1 {
			steps = 1
		}
		for i := 0; i <= steps; i++ {
			t := float32(i) / float32(steps)
			roads = append(roads, components.Position{
				X: hub.X + dx*t,
				Y: hub.Y + dy*t,
			})
		}
	}
	return roads
}
