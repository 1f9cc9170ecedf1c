package lifecycle

import "github.com/ironhold/endless/components"

// jobBaseStats is the registry-driven per-job stat table: adding a new job
// means adding one row here, mirroring building_registry.go's pattern.
var jobBaseStats = map[components.Job]components.CachedStats{
	components.JobNone: {
		MaxSpeed: 60, MaxHealth: 80, AttackSpeed: 1, DamageMult: 1, ArmorMult: 1,
		VisionRange: 150, ArrivalRadius: 8,
	},
	components.JobFarmer: {
		MaxSpeed: 55, MaxHealth: 80, AttackSpeed: 1, DamageMult: 1, ArmorMult: 1,
		VisionRange: 140, ArrivalRadius: 8,
	},
	components.JobMiner: {
		MaxSpeed: 55, MaxHealth: 90, AttackSpeed: 1, DamageMult: 1, ArmorMult: 1,
		VisionRange: 140, ArrivalRadius: 8,
	},
	components.JobArcher: {
		MaxSpeed: 65, MaxHealth: 70, AttackSpeed: 1, DamageMult: 1, ArmorMult: 1,
		VisionRange: 260, ArrivalRadius: 8,
	},
	components.JobCrossbow: {
		MaxSpeed: 58, MaxHealth: 85, AttackSpeed: 1, DamageMult: 1, ArmorMult: 1,
		VisionRange: 220, ArrivalRadius: 8,
	},
	components.JobFighter: {
		MaxSpeed: 70, MaxHealth: 120, AttackSpeed: 1, DamageMult: 1, ArmorMult: 1,
		VisionRange: 180, ArrivalRadius: 8,
	},
	components.JobRaider: {
		MaxSpeed: 75, MaxHealth: 110, AttackSpeed: 1, DamageMult: 1, ArmorMult: 1,
		VisionRange: 200, ArrivalRadius: 8,
	},
}

// jobForHomeKind maps a home building kind to the job it spawns, the
// inverse of the registry relationship building_registry.go's HP table
// documents informally in its comments.
var jobForHomeKind = map[components.BuildingKind]components.Job{
	components.BuildingFarmerHome:   components.JobFarmer,
	components.BuildingArcherHome:   components.JobArcher,
	components.BuildingCrossbowHome: components.JobCrossbow,
	components.BuildingFighterHome:  components.JobFighter,
	components.BuildingMinerHome:    components.JobMiner,
}

// JobForHomeKind resolves the job a spawner attached to kind should
// materialize, JobNone if kind isn't a home building.
func JobForHomeKind(kind components.BuildingKind) components.Job {
	return jobForHomeKind[kind]
}

// perLevelHealthBonus/perLevelDamageBonus scale stats with combat level;
// levels are earned via XPForKill, per components.LevelXP.
const (
	perLevelHealthBonus = 0.05
	perLevelDamageBonus = 0.04
)

// ResolveStats derives a fresh CachedStats bundle from job, level, and a
// town's combat-upgrade levels, the single seam every stat-affecting system
// (spawn, level-up, upgrade purchase) recomputes through rather than
// mutating stats incrementally.
func ResolveStats(job components.Job, level components.LevelXP, townUpgrades map[string]int) components.CachedStats {
	stats := jobBaseStats[job]

	levelMult := float32(1) + float32(level.Level-1)*perLevelHealthBonus
	stats.MaxHealth *= levelMult
	stats.DamageMult *= float32(1) + float32(level.Level-1)*perLevelDamageBonus

	if townUpgrades != nil {
		stats.DamageMult *= float32(1) + 0.1*float32(townUpgrades["attack_damage"])
		stats.ArmorMult *= float32(1) - 0.08*float32(townUpgrades["armor"])
		stats.MaxHealth *= float32(1) + 0.1*float32(townUpgrades["max_health"])
	}
	return stats
}
