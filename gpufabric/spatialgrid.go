package gpufabric

import (
	"github.com/ironhold/endless/components"
	"github.com/ironhold/endless/config"
)

// Neighbor is one hit from a spatial-grid radius query.
type Neighbor struct {
	Slot    int32
	DX, DY  float32
	DistSq  float32
}

// MaxQueryResults bounds a single QueryRadiusInto call, grounded on the
// teacher's fixed-capacity neighbor scan (systems/spatial.go) to avoid
// unbounded allocation in the hot combat/threat scan path.
const MaxQueryResults = 128

// SpatialGrid buckets slots into a uniform grid over the bounded world,
// rebuilt from scratch every tick (clear/insert/query, the same three
// passes the GPU backend issues as shader dispatches). The world is
// bounded, not toroidal: Endless has hard map edges, unlike the teacher's
// wrapping petri dish.
type SpatialGrid struct {
	cols, rows   int
	cellW, cellH float32
	capacity     int
	cells        [][]int32 // flattened cols*rows, each up to capacity slots
}

// NewSpatialGrid builds a grid sized from config.
func NewSpatialGrid(cfg *config.Config) *SpatialGrid {
	g := &SpatialGrid{
		cols:     cfg.GPU.GridCols,
		rows:     cfg.GPU.GridRows,
		cellW:    float32(cfg.Simulation.WorldWidth) / float32(cfg.GPU.GridCols),
		cellH:    float32(cfg.Simulation.WorldHeight) / float32(cfg.GPU.GridRows),
		capacity: cfg.GPU.GridCellCapacity,
	}
	g.cells = make([][]int32, g.cols*g.rows)
	for i := range g.cells {
		g.cells[i] = make([]int32, 0, g.capacity)
	}
	return g
}

func (g *SpatialGrid) cellIndex(p Vec2) (int, int, bool) {
	cx := int(p.X / g.cellW)
	cy := int(p.Y / g.cellH)
	if cx < 0 || cy < 0 || cx >= g.cols || cy >= g.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// Clear empties every cell bucket, keeping backing arrays.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert buckets a live slot by position. Slots beyond the world bounds
// (including tombstoned slots, whose sentinel position is off-map) are
// silently dropped, and a full cell drops overflow rather than growing,
// mirroring the GPU backend's fixed-capacity render target.
func (g *SpatialGrid) Insert(slot int32, p Vec2) {
	cx, cy, ok := g.cellIndex(p)
	if !ok {
		return
	}
	idx := cy*g.cols + cx
	if len(g.cells[idx]) >= g.capacity {
		return
	}
	g.cells[idx] = append(g.cells[idx], slot)
}

// Rebuild clears and reinserts every position in buffers up to highWater,
// skipping tombstoned slots (those whose position is the sentinel written
// by SlotBuffers.Tombstone, see components.IsAlivePos).
func (g *SpatialGrid) Rebuild(buf *SlotBuffers, highWater int32) {
	g.Clear()
	for slot := int32(0); slot < highWater; slot++ {
		p := buf.Position[slot]
		if !components.IsAlivePos(components.Position{X: p.X, Y: p.Y}) {
			continue
		}
		g.Insert(slot, p)
	}
}

// QueryRadiusInto appends up to MaxQueryResults neighbors within radius of
// center into out (which the caller should reuse across calls to avoid
// per-query allocation), scanning a span-cell window sized to cover the
// radius.
func (g *SpatialGrid) QueryRadiusInto(center Vec2, radius float32, buf *SlotBuffers, out []Neighbor) []Neighbor {
	out = out[:0]
	r2 := radius * radius
	spanX := int(radius/g.cellW) + 1
	spanY := int(radius/g.cellH) + 1
	ccx, ccy, ok := g.cellIndex(center)
	if !ok {
		return out
	}
	for dy := -spanY; dy <= spanY; dy++ {
		cy := ccy + dy
		if cy < 0 || cy >= g.rows {
			continue
		}
		for dx := -spanX; dx <= spanX; dx++ {
			cx := ccx + dx
			if cx < 0 || cx >= g.cols {
				continue
			}
			for _, slot := range g.cells[cy*g.cols+cx] {
				p := buf.Position[slot]
				ddx := p.X - center.X
				ddy := p.Y - center.Y
				d2 := ddx*ddx + ddy*ddy
				if d2 > r2 {
					continue
				}
				out = append(out, Neighbor{Slot: slot, DX: ddx, DY: ddy, DistSq: d2})
				if len(out) >= MaxQueryResults {
					return out
				}
			}
		}
	}
	return out
}
