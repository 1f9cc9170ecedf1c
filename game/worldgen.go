package game

import (
	"math/rand"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/external"
	"github.com/ironhold/endless/lifecycle"
	"github.com/ironhold/endless/systems"
)

// biomeTerrainBits maps a WorldGenResult.BiomeGrid byte (a small biome id,
// not a bitmask) onto the WorldGrid's terrain bitmask. Unknown ids fall
// back to grass.
var biomeTerrainBits = map[byte]byte{
	0: 1 << 0, // grass
	1: 1 << 1, // forest
	2: 1 << 2, // water
	3: 1 << 3, // rock
	4: 1 << 4, // dirt
}

// PopulateFresh seeds a brand-new game from wg: paints the terrain grid,
// lays initial roads, places each town's starting buildings (wiring a
// spawner for every home), and creates one Town per seed, per spec §4A/§6.
func (g *Game) PopulateFresh(seed int64, wg external.WorldGen) {
	result := wg.Generate(seed, int(g.cfg.Simulation.WorldWidth), int(g.cfg.Simulation.WorldHeight))

	cols, rows := g.cfg.GPU.GridCols, g.cfg.GPU.GridRows
	for gy := 0; gy < rows; gy++ {
		for gx := 0; gx < cols; gx++ {
			i := gy*result.Width + gx
			if i < 0 || i >= len(result.BiomeGrid) {
				continue
			}
			g.Grid.SetTerrain(gx, gy, biomeTerrainBits[result.BiomeGrid[i]])
		}
	}
	for _, road := range result.InitialRoads {
		gx, gy := g.Grid.WorldToGrid(road.X, road.Y)
		g.Grid.SetBuildingBit(gx, gy, systems.Road, true)
	}

	g.Towns = g.Towns[:0]
	for i, seedPos := range result.TownSeeds {
		faction := int32(i)
		town := lifecycle.NewTown(int32(i), faction, seedPos)
		g.Towns = append(g.Towns, town)
	}
	for i, seedPos := range result.CampSeeds {
		faction := int32(len(result.TownSeeds) + i)
		g.Towns = append(g.Towns, lifecycle.NewTown(int32(len(result.TownSeeds)+i), faction, seedPos))
	}

	for _, b := range result.InitialBuildings {
		g.placeBuilding(b.Kind, b.Pos, b.TownIndex)
	}
}

// SeedPopulation materializes n NPCs of job into town at scattered
// positions around pos, used for a fresh game's starting workforce (a
// WorldGen only places buildings; the initial occupants come from here).
func (g *Game) SeedPopulation(rng *rand.Rand, townIndex int32, job components.Job, pos components.Position, n int) {
	town := g.townByIndex(townIndex)
	faction := components.NeutralFaction
	var upgrades map[string]int
	if town != nil {
		faction = town.Faction
		upgrades = town.Upgrades
	}
	stats := lifecycle.ResolveStats(job, components.LevelXP{Level: 1}, upgrades)
	for i := 0; i < n; i++ {
		spawnPos := components.Position{
			X: pos.X + float32(rng.Intn(41)-20),
			Y: pos.Y + float32(rng.Intn(41)-20),
		}
		g.SpawnNpc(lifecycle.SpawnRequest{
			Pos:     spawnPos,
			Faction: faction,
			Job:     job,
			Kind:    components.KindMobile,
			HomePos: pos,
			Stats:   stats,
		})
	}
}
