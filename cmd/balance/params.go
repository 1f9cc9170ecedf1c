// Command balance runs CMA-ES optimization to find config values that
// produce a stable, engaging kingdom economy, grounded on the teacher's
// cmd/optimize.
package main

import (
	"github.com/ironhold/endless/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters:
// fatigue/starvation economics, farm/mine/heal yields, and the
// lifecycle/squad timings that govern respawn and wave pacing.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// --- Energy ---
			{Name: "eat_threshold", Path: "energy.eat_threshold", Min: 20, Max: 50, Default: 35.0},
			{Name: "drain_per_game_hour", Path: "energy.drain_per_game_hour", Min: 4, Max: 16, Default: 8.3333},
			{Name: "rest_per_game_hour", Path: "energy.rest_per_game_hour", Min: 10, Max: 50, Default: 25.0},
			{Name: "starvation_hp_cap", Path: "energy.starvation_hp_cap", Min: 0.2, Max: 0.8, Default: 0.5},
			{Name: "starvation_speed_mul", Path: "energy.starvation_speed_mul", Min: 0.2, Max: 0.9, Default: 0.5},

			// --- Economy ---
			{Name: "food_per_work_hour", Path: "economy.food_per_work_hour", Min: 0.5, Max: 3.0, Default: 1.0},
			{Name: "farm_passive_rate", Path: "economy.farm_passive_rate", Min: 0.02, Max: 0.3, Default: 0.08},
			{Name: "farm_tended_bonus", Path: "economy.farm_tended_bonus", Min: 0.02, Max: 0.3, Default: 0.12},
			{Name: "mine_work_hours", Path: "economy.mine_work_hours", Min: 0.5, Max: 6.0, Default: 2.0},
			{Name: "mine_extract_per_cycle", Path: "economy.mine_extract_per_cycle", Min: 2, Max: 30, Default: 10.0},
			{Name: "heal_rate_per_second", Path: "economy.heal_rate_per_second", Min: 0.5, Max: 8.0, Default: 2.0},
			{Name: "fountain_radius", Path: "economy.fountain_radius", Min: 40, Max: 250, Default: 100.0},

			// --- Lifecycle ---
			{Name: "spawner_respawn_hours", Path: "lifecycle.spawner_respawn_hours", Min: 2, Max: 36, Default: 12.0},
			{Name: "migration_replace_delay_hours", Path: "lifecycle.migration_replace_delay_hours", Min: 1, Max: 16, Default: 4.0},
			{Name: "boat_speed", Path: "lifecycle.boat_speed", Min: 10, Max: 120, Default: 40.0},

			// --- Squad ---
			{Name: "default_retreat_below_pct", Path: "squad.default_retreat_below_pct", Min: 0.1, Max: 0.6, Default: 0.3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0

	cfg.Energy.EatThreshold = clamped[i]
	i++
	cfg.Energy.DrainPerGameHour = clamped[i]
	i++
	cfg.Energy.RestPerGameHour = clamped[i]
	i++
	cfg.Energy.StarvationHPCap = clamped[i]
	i++
	cfg.Energy.StarvationSpeedMul = clamped[i]
	i++

	cfg.Economy.FoodPerWorkHour = clamped[i]
	i++
	cfg.Economy.FarmPassiveRate = clamped[i]
	i++
	cfg.Economy.FarmTendedBonus = clamped[i]
	i++
	cfg.Economy.MineWorkHours = clamped[i]
	i++
	cfg.Economy.MineExtractPerCycle = clamped[i]
	i++
	cfg.Economy.HealRatePerSecond = clamped[i]
	i++
	cfg.Economy.FountainRadius = clamped[i]
	i++

	cfg.Lifecycle.SpawnerRespawnHours = clamped[i]
	i++
	cfg.Lifecycle.MigrationReplaceDelayHours = clamped[i]
	i++
	cfg.Lifecycle.BoatSpeed = clamped[i]
	i++

	cfg.Squad.DefaultRetreatBelowPct = clamped[i]
}
