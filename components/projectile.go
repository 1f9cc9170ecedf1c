package components

// Projectile is one row of the projectile arena (a plain slice-backed
// pool, not an ECS entity: projectiles are pure data mirrored to/from the
// GPU projectile buffers and never queried relationally). Lifetime ends on
// hit or expiry, encoded by the two sentinel values in Hit.
type Projectile struct {
	Pos, Vel     Position
	Damage       float32
	ShooterFaction int32
	Shooter      int32 // slot of the NPC/tower that fired this
	Lifetime     float32
	Active       bool
	Attack       BaseAttackType
}

// HitSentinelNone means no hit/expiry has been recorded yet this frame.
const HitSentinelNone int32 = -3

// HitSentinelExpired is written when a projectile's lifetime runs out
// before it hits anything.
const HitSentinelExpired int32 = -2

// HitSentinelMiss is the resting value once a projectile has been fully
// drained and deactivated with no target.
const HitSentinelMiss int32 = -1

// ProjHit is one row of the proj_hits readback the CPU drains each frame:
// a non-negative HitSlot is a damage event, HitSentinelExpired frees the
// projectile slot with no damage, HitSentinelNone/HitSentinelMiss mean
// nothing happened this frame.
type ProjHit struct {
	HitSlot int32
}
