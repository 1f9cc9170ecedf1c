// Package systems holds the CPU reference world representations the GPU
// shaders sample read-only: the tile-flag grid (terrain + building bits,
// consumed by the road-attraction raycast) and the A* patrol planner that
// runs over it.
package systems

// Terrain bits occupy 0..4; building bits start at 5. Road is called out
// by spec §6 as bit 5 (value 32) since the NPC shader's road-attraction
// raycast and road-speed-bonus check only ever test that single bit.
const (
	TerrainGrass byte = 1 << 0
	TerrainForest byte = 1 << 1
	TerrainWater  byte = 1 << 2
	TerrainRock   byte = 1 << 3
	TerrainDirt   byte = 1 << 4
	Road          byte = 1 << 5
)

const terrainMask byte = TerrainGrass | TerrainForest | TerrainWater | TerrainRock | TerrainDirt

// WorldGrid is the per-cell tile-flag byte buffer, updated lazily on
// biome/building change. NPC physics (gpufabric.PhysicsCPU) does not
// sample it: road attraction, the road speed bonus and the road-road
// separation skip are not driven by this grid.
type WorldGrid struct {
	cells         []byte
	width, height int
	cellSize      float32
}

// NewWorldGrid allocates a width x height cell grid, all terrain cleared.
func NewWorldGrid(width, height int, cellSize float32) *WorldGrid {
	return &WorldGrid{
		cells:    make([]byte, width*height),
		width:    width,
		height:   height,
		cellSize: cellSize,
	}
}

func (g *WorldGrid) index(gx, gy int) (int, bool) {
	if gx < 0 || gx >= g.width || gy < 0 || gy >= g.height {
		return 0, false
	}
	return gy*g.width + gx, true
}

// SetTerrain overwrites the terrain bits of a cell, leaving building bits
// (including Road) untouched.
func (g *WorldGrid) SetTerrain(gx, gy int, terrain byte) {
	i, ok := g.index(gx, gy)
	if !ok {
		return
	}
	g.cells[i] = (g.cells[i] &^ terrainMask) | (terrain & terrainMask)
}

// SetBuildingBit sets or clears a single building bit (e.g. Road) without
// disturbing terrain or other building bits.
func (g *WorldGrid) SetBuildingBit(gx, gy int, bit byte, set bool) {
	i, ok := g.index(gx, gy)
	if !ok {
		return
	}
	if set {
		g.cells[i] |= bit
	} else {
		g.cells[i] &^= bit
	}
}

// Flags returns the raw tile-flag byte at a grid cell, or 0 out of bounds.
func (g *WorldGrid) Flags(gx, gy int) byte {
	i, ok := g.index(gx, gy)
	if !ok {
		return 0
	}
	return g.cells[i]
}

// IsRoad reports whether the grid cell at world position (x,y) has the
// Road bit set.
func (g *WorldGrid) IsRoad(x, y float32) bool {
	gx, gy := g.WorldToGrid(x, y)
	return g.Flags(gx, gy)&Road != 0
}

// WorldToGrid converts a world position to grid cell coordinates.
func (g *WorldGrid) WorldToGrid(x, y float32) (gx, gy int) {
	return int(x / g.cellSize), int(y / g.cellSize)
}

// IsBlocked reports whether a cell is impassable (Water or Rock terrain),
// the predicate the patrol planner's navigation grid is built from.
func (g *WorldGrid) IsBlocked(gx, gy int) bool {
	f := g.Flags(gx, gy)
	if gx < 0 || gx >= g.width || gy < 0 || gy >= g.height {
		return true
	}
	return f&(TerrainWater|TerrainRock) != 0
}

// RaycastRoad samples the first numRays of the four cardinal directions
// (+X, -X, +Y, -Y; at most four) out to rangeTiles
// cells, returning the nearest distance (in pixels) at which a Road cell
// was found, or ok=false if none of the rays hit a road cell. This
// realizes spec §4D's "4-direction raycast (3 tiles each) against a
// tile-flag buffer" road-attraction probe.
func (g *WorldGrid) RaycastRoad(x, y float32, numRays, rangeTiles int) (dist float32, ok bool) {
	gx0, gy0 := g.WorldToGrid(x, y)
	best := float32(-1)
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	if numRays < len(dirs) {
		dirs = dirs[:numRays]
	}
	for _, d := range dirs {
		for step := 1; step <= rangeTiles; step++ {
			gx := gx0 + d[0]*step
			gy := gy0 + d[1]*step
			if g.Flags(gx, gy)&Road != 0 {
				cellDist := float32(step) * g.cellSize
				if best < 0 || cellDist < best {
					best = cellDist
				}
				break
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// ToSave flattens the grid into the save document's byte layout.
func (g *WorldGrid) ToSave() (width, height int, cells []byte) {
	out := make([]byte, len(g.cells))
	copy(out, g.cells)
	return g.width, g.height, out
}

// LoadFromSave restores a grid's cell bytes from a save document, keeping
// the grid's existing cellSize (save documents don't carry it; it is a
// config-derived constant, not per-world state).
func (g *WorldGrid) LoadFromSave(width, height int, cells []byte) {
	if width != g.width || height != g.height {
		g.width, g.height = width, height
	}
	g.cells = make([]byte, len(cells))
	copy(g.cells, cells)
}

// FromSave rebuilds a grid from the persisted byte layout.
func FromSave(width, height int, cells []byte, cellSize float32) *WorldGrid {
	g := &WorldGrid{width: width, height: height, cellSize: cellSize, cells: make([]byte, len(cells))}
	copy(g.cells, cells)
	return g
}
