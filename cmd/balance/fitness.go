package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/config"
	"github.com/ironhold/endless/game"
	"github.com/ironhold/endless/telemetry"
	"github.com/ironhold/endless/worldgen"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Minimum viable population: the player town's population dropping below
// this for extinctionGraceSec consecutive seconds counts as a collapsed
// economy.
const (
	minViablePop       = 2
	extinctionGraceSec = 120.0 // seconds of grace below minViablePop

	initialFarmers = 3
	initialMiners  = 2
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32
	windowStats   []telemetry.WindowStats
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality := fe.computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: fe.computeFitness(result),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run: a fresh world
// from worldgen.Generator, seeded with a starting workforce, stepped until
// the player town's population collapses or maxTicks is reached.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	rng := rand.New(rand.NewSource(seed))
	g := game.New(cfg, rng)
	gen := worldgen.NewGenerator()
	g.PopulateFresh(seed, gen)

	if len(g.Towns) > 0 {
		home := g.Towns[0].FountainPos
		g.SeedPopulation(rng, 0, components.JobFarmer, home, initialFarmers)
		g.SeedPopulation(rng, 0, components.JobMiner, home, initialMiners)
	}

	result := &runResult{}
	dt := cfg.Simulation.DT
	graceTicks := int32(extinctionGraceSec / dt)
	warmupTicks := int32(60.0 / dt)

	var belowSec float64
	var tick int32
	for ; tick < fe.maxTicks; tick++ {
		g.Step(dt)

		if ws, ok := g.Stats.Tick(dt, tick); ok {
			result.windowStats = append(result.windowStats, ws)
		}

		if tick < warmupTicks {
			continue
		}

		alive := 0
		for _, fs := range g.FactionSummaries() {
			if fs.Faction == components.PlayerFaction {
				alive = fs.NpcCount
				break
			}
		}
		if alive < minViablePop {
			belowSec += dt
		} else {
			belowSec = 0
		}
		if belowSec > 0 && int32(belowSec/dt) >= graceTicks {
			break
		}
	}

	result.survivalTicks = tick
	return result
}

// copyConfig creates a deep-enough copy of the base config for one
// evaluation: a fresh embedded-defaults load, then every sub-struct that
// ApplyToConfig doesn't itself overwrite is copied verbatim from the base.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg, _ := config.Load("")

	cfg.Simulation = fe.baseConfig.Simulation
	cfg.GPU = fe.baseConfig.GPU
	cfg.Population = fe.baseConfig.Population
	cfg.Combat = fe.baseConfig.Combat
	cfg.Decision = fe.baseConfig.Decision
	cfg.Telemetry = fe.baseConfig.Telemetry
	cfg.Squad = fe.baseConfig.Squad

	return cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks x (1.0 + 0.2 x quality)) — survival dominates;
// quality adds up to a 20% bonus to differentiate configs that all
// survive the full run.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	quality := fe.computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightEconomy = 0.35
	qualityWeightCombat  = 0.25
	qualityWeightLosses  = 0.20
	qualityWeightPacing  = 0.20

	qualityWarmupWindows = 2
)

// computeQuality computes an engagement-quality score in [0,1] from a
// run's window stats: is the economy actually growing, is combat
// happening and landing at a reasonable rate, are buildings surviving,
// and are spawns/migrations/raids actually occurring (an empty world
// that merely doesn't crash scores zero here).
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]
	n := float64(len(valid))

	var foodSum, goldSum float64
	var hitRateSum float64
	var hitRateCount int
	var buildingsLost int
	var spawns, raids, migrations int

	for _, w := range valid {
		foodSum += w.FoodHarvested
		goldSum += w.GoldMined
		buildingsLost += w.BuildingsLost
		spawns += w.NpcSpawns
		raids += w.RaidsCompleted
		migrations += w.MigrationsSettled
		if w.AttacksFired > 0 {
			hitRateSum += w.HitRate()
			hitRateCount++
		}
	}

	economyScore := clamp01((foodSum + goldSum) / n / 5.0)

	combatScore := 0.0
	if hitRateCount > 0 {
		avgHitRate := hitRateSum / float64(hitRateCount)
		combatScore = math.Exp(-math.Pow((avgHitRate-0.5)/0.3, 2))
	}

	lossScore := math.Exp(-float64(buildingsLost) / 4.0)

	pacingScore := clamp01(float64(spawns+raids+migrations) / n / 2.0)

	quality := qualityWeightEconomy*economyScore +
		qualityWeightCombat*combatScore +
		qualityWeightLosses*lossScore +
		qualityWeightPacing*pacingScore

	return clamp01(quality)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
