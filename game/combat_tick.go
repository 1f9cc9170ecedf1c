package game

import (
	"math"

	"github.com/ironhold/endless/combat"
	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/gpufabric"
	"github.com/ironhold/endless/lifecycle"
)

// attackTypeForJob resolves the BaseAttackType a job fires with. Jobs
// with no combat role resolve to AttackNone and never reach CanFire.
func attackTypeForJob(job components.Job) components.BaseAttackType {
	switch job {
	case components.JobArcher:
		return components.AttackArrow
	case components.JobCrossbow:
		return components.AttackCrossbowBolt
	case components.JobFighter, components.JobRaider:
		return components.AttackMelee
	default:
		return components.AttackNone
	}
}

// combatTick drains the previous tick's resolved projectile hits, then
// fires new shots for every NPC whose cooldown has elapsed and whose
// GPU-resolved CombatTarget is within its attack's range, per spec §4F.
func (g *Game) combatTick(dt float32) {
	g.resolveProjectileHits()

	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		slot := v.Slot.Index
		if slot < 0 || int(slot) >= len(g.Buf.Position) {
			return
		}

		attack := attackTypeForJob(*v.Job)
		if attack == components.AttackNone {
			return
		}
		profile, ok := combat.AttackProfiles[attack]
		if !ok {
			return
		}

		stats := g.Manager.Stats(v.Entity)
		attackSpeedMult, damageMult := float32(1.0), float32(1.0)
		if stats != nil {
			attackSpeedMult = stats.AttackSpeed
			damageMult = stats.DamageMult
		}
		combat.TickCooldown(&v.Combat.AttackCooldown, dt, attackSpeedMult)
		combat.DecayFlash(&v.Combat.FlashIntensity, dt, float32(g.cfg.Combat.FlashDecayPerSecond))

		target := g.Buf.CombatTarget[slot]
		// The readback target is a frame old: drop it if that slot has
		// since been tombstoned, killed, or reused by a friendly entity.
		if target >= 0 && (int(target) >= len(g.Buf.Position) ||
			!components.IsAlivePos(g.Buf.Position[target]) ||
			g.Buf.Health[target] <= 0 ||
			g.Buf.Faction[target] == g.Buf.Faction[slot]) {
			target = -1
		}
		v.Combat.Target = target
		if target < 0 {
			if v.Combat.State == components.CombatFighting {
				v.Combat.State = components.CombatNone
			}
			return
		}

		pos, targetPos := g.Buf.Position[slot], g.Buf.Position[target]
		if distVec2(pos, targetPos) > profile.Range {
			return
		}
		v.Combat.State = components.CombatFighting

		if !combat.CanFire(v.Combat.AttackCooldown, target) {
			return
		}

		damage := combat.ResolveFireDamage(profile, damageMult)
		dir := normalizeDir(targetPos, pos)
		vel := gpufabric.Vec2{X: dir.X * profile.ProjSpeed, Y: dir.Y * profile.ProjSpeed}
		if _, spawned := g.Proj.Spawn(pos, vel, damage, slot, g.Buf.Faction[slot], attack); !spawned {
			return
		}
		v.Combat.AttackCooldown = profile.Cooldown
		g.Stats.RecordAttackFired()
	})
}

// resolveProjectileHits drains every projectile the previous fabric
// dispatch deactivated, applying damage for real hits and logging
// misses/expiries, then resets HitSlot so a reused pool index isn't
// reprocessed.
func (g *Game) resolveProjectileHits() {
	for i := range g.Proj.Active {
		if g.Proj.Active[i] {
			continue
		}
		hit := g.Proj.HitSlot[i]
		if hit == gpufabric.HitNone {
			continue
		}
		if hit >= 0 {
			g.applyProjectileHit(int32(i), hit)
		} else {
			g.Stats.RecordMiss()
			g.CombatLog.Append(combat.Event{
				Kind:            combat.EventMiss,
				AttackerSlot:    g.Proj.Shooter[i],
				DefenderSlot:    -1,
				AttackerFaction: g.Proj.ShooterFaction[i],
				Frame:           g.Time.Frame,
			})
		}
		g.Proj.HitSlot[i] = gpufabric.HitNone
	}
}

// applyProjectileHit resolves one projectile's connection against its
// defender: armor-adjusted damage, flash, last-hitter bookkeeping for the
// XP grant applyPendingDespawns makes on death, and a combat-log entry.
func (g *Game) applyProjectileHit(projIdx, targetSlot int32) {
	if int(targetSlot) >= len(g.Buf.Health) {
		return
	}
	entity, ok := g.Manager.EntityForSlot(targetSlot)
	if !ok {
		return
	}
	defender := g.Manager.Combat(entity)
	if defender == nil {
		return
	}

	armorMult := float32(1.0)
	if stats := g.Manager.Stats(entity); stats != nil {
		armorMult = stats.ArmorMult
	}

	health := components.Health{Current: g.Buf.Health[targetSlot]}
	shooter := g.Proj.Shooter[projIdx]
	damage := g.Proj.Damage[projIdx]
	combat.ApplyDamage(&health, &defender.FlashIntensity, damage, armorMult)
	g.Buf.WriteHealth(targetSlot, health.Current)
	defender.LastHitBy = shooter

	g.CombatLog.Append(combat.Event{
		Kind:            combat.EventHit,
		AttackerSlot:    shooter,
		DefenderSlot:    targetSlot,
		AttackerFaction: g.Proj.ShooterFaction[projIdx],
		Damage:          damage,
		Frame:           g.Time.Frame,
	})
	g.Stats.RecordHit()
}

func distVec2(a, b gpufabric.Vec2) float32 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

func normalizeDir(to, from gpufabric.Vec2) gpufabric.Vec2 {
	d := gpufabric.Vec2{X: to.X - from.X, Y: to.Y - from.Y}
	l := distVec2(to, from)
	if l < 1e-4 {
		return gpufabric.Vec2{}
	}
	return gpufabric.Vec2{X: d.X / l, Y: d.Y / l}
}
