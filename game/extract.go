package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/external"
	"github.com/ironhold/endless/lifecycle"
)

// Extract builds the render-facing frame payload from the GPU-synchronized
// buffers and building registry, per spec §6's Renderer boundary. It runs
// after readback (stage (g)) so Position/Target reflect this frame's
// dispatch rather than last frame's.
func (g *Game) Extract() external.FrameExtract {
	return external.FrameExtract{
		Npcs:        g.extractNpcs(),
		Projectiles: g.extractProjectiles(),
		Overlays:    g.extractBuildingOverlays(),
	}
}

func (g *Game) extractNpcs() []external.NpcExtract {
	var out []external.NpcExtract
	g.Manager.ForEachNpc(func(v lifecycle.NpcView) {
		slot := v.Slot.Index
		if slot < 0 || int(slot) >= len(g.Buf.Health) {
			return
		}
		maxHealth := g.statsMaxHealth(v.Entity)
		var healthFrac float32
		if maxHealth > 0 {
			healthFrac = g.Buf.Health[slot] / maxHealth
		}
		out = append(out, external.NpcExtract{
			Slot:           slot,
			Pos:            components.Position{X: g.Buf.Position[slot].X, Y: g.Buf.Position[slot].Y},
			Faction:        g.Buf.Faction[slot],
			HealthFrac:     healthFrac,
			FlashIntensity: g.Buf.Flash[slot],
			VisualLayer:    uint16(g.Buf.VisualLayer[slot]),
		})
	})
	return out
}

func (g *Game) extractProjectiles() []external.ProjectileExtract {
	var out []external.ProjectileExtract
	for i, active := range g.Proj.Active {
		if !active {
			continue
		}
		out = append(out, external.ProjectileExtract{
			Pos:     components.Position{X: g.Proj.Position[i].X, Y: g.Proj.Position[i].Y},
			Faction: g.Proj.ShooterFaction[i],
		})
	}
	return out
}

func (g *Game) extractBuildingOverlays() []external.BuildingOverlay {
	var out []external.BuildingOverlay
	g.Buildings.ForEach(func(e ecs.Entity, b *components.Building) {
		var healthFrac float32
		if b.HP.Max > 0 {
			healthFrac = b.HP.Current / b.HP.Max
		}
		var growthFrac float32
		if farm := g.Buildings.Farm(e); farm != nil {
			growthFrac = farm.Progress
		}
		out = append(out, external.BuildingOverlay{
			Pos:        b.Pos,
			HealthFrac: healthFrac,
			GrowthFrac: growthFrac,
		})
	})
	return out
}
