package telemetry

// Collector accumulates combat/economy events within a fixed-duration
// window and flushes them into a WindowStats record, mirroring the
// teacher's event-counting Collector but keyed to Endless's own event
// vocabulary (spawns, kills, harvests, raids) instead of bites/births.
type Collector struct {
	windowDurationSec float64
	windowElapsedSec  float64

	npcSpawns, npcDeaths           int
	attacksFired, hits, misses     int
	kills, buildingsLost           int
	foodHarvested, goldMined       float64
	raidsCompleted, migrationsSettled int
}

// NewCollector creates a collector whose window lasts windowDurationSec
// simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 60
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

func (c *Collector) RecordSpawn()            { c.npcSpawns++ }
func (c *Collector) RecordDeath()             { c.npcDeaths++ }
func (c *Collector) RecordAttackFired()       { c.attacksFired++ }
func (c *Collector) RecordHit()               { c.hits++ }
func (c *Collector) RecordMiss()              { c.misses++ }
func (c *Collector) RecordKill()              { c.kills++ }
func (c *Collector) RecordBuildingLost()      { c.buildingsLost++ }
func (c *Collector) RecordFoodHarvested(f float64) { c.foodHarvested += f }
func (c *Collector) RecordGoldMined(g float64)     { c.goldMined += g }
func (c *Collector) RecordRaidCompleted()     { c.raidsCompleted++ }
func (c *Collector) RecordMigrationSettled()  { c.migrationsSettled++ }

// Tick advances elapsed time by dtSec, returning a flushed WindowStats
// (and resetting counters) once the window duration elapses.
func (c *Collector) Tick(dtSec float64, windowEnd int32) (WindowStats, bool) {
	c.windowElapsedSec += dtSec
	if c.windowElapsedSec < c.windowDurationSec {
		return WindowStats{}, false
	}
	c.windowElapsedSec = 0
	stats := WindowStats{
		WindowEnd:         windowEnd,
		NpcSpawns:         c.npcSpawns,
		NpcDeaths:         c.npcDeaths,
		AttacksFired:      c.attacksFired,
		Hits:              c.hits,
		Misses:            c.misses,
		Kills:             c.kills,
		BuildingsLost:     c.buildingsLost,
		FoodHarvested:     c.foodHarvested,
		GoldMined:         c.goldMined,
		RaidsCompleted:    c.raidsCompleted,
		MigrationsSettled: c.migrationsSettled,
	}
	c.npcSpawns, c.npcDeaths = 0, 0
	c.attacksFired, c.hits, c.misses = 0, 0, 0
	c.kills, c.buildingsLost = 0, 0
	c.foodHarvested, c.goldMined = 0, 0
	c.raidsCompleted, c.migrationsSettled = 0, 0
	return stats, true
}
