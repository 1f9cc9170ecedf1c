// Package config provides YAML configuration loading and access for the
// simulation, with embedded defaults merged under any user-supplied file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	GPU        GPUConfig        `yaml:"gpu"`
	Population PopulationConfig `yaml:"population"`
	Energy     EnergyConfig     `yaml:"energy"`
	Economy    EconomyConfig    `yaml:"economy"`
	Combat     CombatConfig     `yaml:"combat"`
	Decision   DecisionConfig   `yaml:"decision"`
	Lifecycle  LifecycleConfig  `yaml:"lifecycle"`
	Squad      SquadConfig      `yaml:"squad"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds frame-pipeline timing.
type SimulationConfig struct {
	DT              float64 `yaml:"dt"`               // seconds per tick
	GameHourSeconds float64 `yaml:"game_hour_seconds"` // real seconds per in-game hour at 1x
	GridCellSize    float64 `yaml:"grid_cell_size"`
	WorldWidth      float64 `yaml:"world_width"`
	WorldHeight     float64 `yaml:"world_height"`
}

// GPUConfig holds GPU buffer fabric and spatial grid sizing.
type GPUConfig struct {
	MaxSlots          int     `yaml:"max_slots"`
	MaxProjectiles    int     `yaml:"max_projectiles"`
	GridCols          int     `yaml:"grid_cols"`
	GridRows          int     `yaml:"grid_rows"`
	GridCellCapacity  int     `yaml:"grid_cell_capacity"`
	CombatScanCells   int     `yaml:"combat_scan_cells"` // e.g. 9 -> 9x9
	ThreatScanCells   int     `yaml:"threat_scan_cells"` // e.g. 7 -> 7x7
	ProjectileHitRadius float64 `yaml:"projectile_hit_radius"`
}

// PopulationConfig bounds spawn counts.
type PopulationConfig struct {
	MaxSlotsPerTown int `yaml:"max_slots_per_town"`
}

// EnergyConfig holds fatigue economics.
type EnergyConfig struct {
	EatThreshold      float64 `yaml:"eat_threshold"`
	DrainPerGameHour  float64 `yaml:"drain_per_game_hour"`
	RestPerGameHour   float64 `yaml:"rest_per_game_hour"`
	StarvationHPCap   float64 `yaml:"starvation_hp_cap"`
	StarvationSpeedMul float64 `yaml:"starvation_speed_mul"`
}

// EconomyConfig holds farm/mine/heal economics.
type EconomyConfig struct {
	FoodPerWorkHour     float64 `yaml:"food_per_work_hour"`
	FarmPassiveRate     float64 `yaml:"farm_passive_rate"`
	FarmTendedBonus     float64 `yaml:"farm_tended_bonus"`
	MineWorkHours       float64 `yaml:"mine_work_hours"`
	MineExtractPerCycle float64 `yaml:"mine_extract_per_cycle"`
	HealRatePerSecond   float64 `yaml:"heal_rate_per_second"`
	FountainRadius      float64 `yaml:"fountain_radius"`
	DeliveryRadius      float64 `yaml:"delivery_radius"`
	RaidStealAmount     float64 `yaml:"raid_steal_amount"`
}

// CombatConfig holds attack/damage tuning.
type CombatConfig struct {
	FlashDecayPerSecond float64 `yaml:"flash_decay_per_second"`
}

// DecisionConfig holds the decision-core throttling tiers.
type DecisionConfig struct {
	FleeCheckFrames    int     `yaml:"flee_check_frames"`    // default 8
	UtilityPeriodSec   float64 `yaml:"utility_period_sec"`   // default 2
	FrameRateHint      int     `yaml:"frame_rate_hint"`      // for bucket sizing, default 60
}

// LifecycleConfig holds spawner/migration timing.
type LifecycleConfig struct {
	SpawnerRespawnHours    float64 `yaml:"spawner_respawn_hours"`
	MigrationReplaceDelayHours float64 `yaml:"migration_replace_delay_hours"`
	EndlessReplaceDelayHours   float64 `yaml:"endless_replace_delay_hours"`
	BoatSpeed              float64 `yaml:"boat_speed"`
	// MigrationBaseMembers scales by PendingAiSpawn.Strength to get the
	// settling population size: n = max(1, round(Strength*MigrationBaseMembers)).
	MigrationBaseMembers int `yaml:"migration_base_members"`
}

// SquadConfig holds wave gather/dispatch/retreat thresholds.
type SquadConfig struct {
	DefaultWaveMinStart     int     `yaml:"default_wave_min_start"`
	DefaultRetreatBelowPct  float64 `yaml:"default_retreat_below_pct"`
}

// TelemetryConfig holds stats-window and combat-log sizing.
type TelemetryConfig struct {
	StatsWindowSec  float64 `yaml:"stats_window_sec"`
	CombatLogLimit  int     `yaml:"combat_log_limit"`
	PerfWindowTicks int     `yaml:"perf_window_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32           float32
	TicksPerHour   float32
}

var global *Config

// Init loads configuration from path, or embedded defaults if path is
// empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error; used by tools where there is
// no sensible recovery (CLI startup).
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// WriteYAML writes the configuration to path, used by the telemetry output
// manager to snapshot the effective config alongside a run's CSV output.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Simulation.DT)
	c.Derived.TicksPerHour = float32(c.Simulation.GameHourSeconds / c.Simulation.DT)
}
