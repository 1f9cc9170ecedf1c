package gpufabric

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ironhold/endless/config"
)

// GPUFabric runs the compute pipeline as three fragment-shader-to-
// render-texture passes, generalizing the teacher's single
// GPUResourceField to N typed slot buffers packed one value per texel
// into a square texture sized ceil(sqrt(MaxSlots)) per side. Every pass
// follows the same shape as GPUResourceField.Regenerate: bind input
// textures as uniform samplers, BeginTextureMode/BeginShaderMode, draw a
// fullscreen quad, EndShaderMode/EndTextureMode, then read the output
// back with rl.LoadImageFromTexture + rl.LoadImageColors.
//
// raylib-go does not expose OpenGL's glDispatchCompute bindings, so
// "dispatch" here means one render pass per tier, matching spec's
// dispatch-per-tier framing without assuming compute-shader support that
// may not be present on every backend raylib targets.
//
// GPUFabric is unfinished and not wired into the running game: game.New
// always constructs gpufabric.NewCPUFabric, nothing else in this repo
// calls NewGPUFabric, and its shader family (shaders/grid_insert.fs,
// shaders/physics.fs, shaders/projectiles.fs) are pass-through
// placeholders missing the uniform bindings their math would need (no
// target/speed/flags/velocity textures, no CPU->texture upload path for
// seeding positions at all). It's kept as the documented extension
// point for a future real GPU compute path, not as a second,
// cross-validated implementation of PhysicsCPU/ProjectileEngine.
type GPUFabric struct {
	cfg  *config.Config
	grid *SpatialGrid // unused CPU mirror; see the unfinished-backend note above

	texSide int

	gridClearShader  rl.Shader
	gridInsertShader rl.Shader
	physicsShader    rl.Shader
	projectileShader rl.Shader

	posTexA, posTexB rl.RenderTexture2D
	gridCounts       rl.RenderTexture2D
	gridContents     rl.RenderTexture2D
	projTex          rl.RenderTexture2D

	frontIsA bool

	// one-frame-latency readback caches: swapped at the top of Step so
	// consumers always see the PREVIOUS dispatch's results, deliberately
	// reproducing spec §4F/§9's one-frame staleness even though raylib's
	// texture readback call is itself synchronous.
	pendingPos  []Vec2
	pendingTgt  []int32
	pendingHits []int32
	readyPos    []Vec2
	readyTgt    []int32
	readyHits   []int32
}

// NewGPUFabric loads the shader family from shaderDir and allocates the
// render targets. Must be called after raylib's window/GL context is
// initialized.
func NewGPUFabric(cfg *config.Config, shaderDir string) (*GPUFabric, error) {
	side := texSideFor(cfg.GPU.MaxSlots)
	f := &GPUFabric{cfg: cfg, grid: NewSpatialGrid(cfg), texSide: side}

	f.gridClearShader = rl.LoadShader("", shaderDir+"/grid_clear.fs")
	f.gridInsertShader = rl.LoadShader("", shaderDir+"/grid_insert.fs")
	f.physicsShader = rl.LoadShader("", shaderDir+"/physics.fs")
	f.projectileShader = rl.LoadShader("", shaderDir+"/projectiles.fs")

	f.posTexA = rl.LoadRenderTexture(int32(side), int32(side))
	f.posTexB = rl.LoadRenderTexture(int32(side), int32(side))
	gridSide := int32(cfg.GPU.GridCols * cfg.GPU.GridRows)
	f.gridCounts = rl.LoadRenderTexture(gridSide, 1)
	f.gridContents = rl.LoadRenderTexture(gridSide, int32(cfg.GPU.GridCellCapacity))
	projSide := texSideFor(cfg.GPU.MaxProjectiles)
	f.projTex = rl.LoadRenderTexture(int32(projSide), int32(projSide))

	f.frontIsA = true
	return f, nil
}

func texSideFor(n int) int {
	side := 1
	for side*side < n {
		side++
	}
	return side
}

// Step implements Fabric: grid clear+insert, physics/targeting, then
// projectile integration, each one textured render pass, followed by a
// readback that populates the NEXT frame's ready cache.
func (f *GPUFabric) Step(dt float32, buf *SlotBuffers, proj *ProjectileBuffers, highWater int32, frame uint64) {
	f.readyPos, f.pendingPos = f.pendingPos, f.readyPos
	f.readyTgt, f.pendingTgt = f.pendingTgt, f.readyTgt
	f.readyHits, f.pendingHits = f.pendingHits, f.readyHits

	front, back := f.posTexA, f.posTexB
	if !f.frontIsA {
		front, back = f.posTexB, f.posTexA
	}

	f.dispatchGridClear()
	f.dispatchGridInsert(front)
	f.dispatchPhysics(front, back, dt, highWater)
	if proj != nil {
		f.dispatchProjectiles(back, proj, dt)
	}

	f.frontIsA = !f.frontIsA
	f.readbackInto(back, buf, highWater, proj)
}

func (f *GPUFabric) dispatchGridClear() {
	rl.BeginTextureMode(f.gridCounts)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(f.gridClearShader)
	rl.DrawRectangle(0, 0, f.gridCounts.Texture.Width, f.gridCounts.Texture.Height, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

func (f *GPUFabric) dispatchGridInsert(posTex rl.RenderTexture2D) {
	rl.BeginTextureMode(f.gridContents)
	rl.BeginShaderMode(f.gridInsertShader)
	loc := rl.GetShaderLocation(f.gridInsertShader, "positions")
	rl.SetShaderValueTexture(f.gridInsertShader, loc, posTex.Texture)
	rl.DrawRectangle(0, 0, f.gridContents.Texture.Width, f.gridContents.Texture.Height, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

func (f *GPUFabric) dispatchPhysics(front, back rl.RenderTexture2D, dt float32, highWater int32) {
	rl.BeginTextureMode(back)
	rl.BeginShaderMode(f.physicsShader)
	posLoc := rl.GetShaderLocation(f.physicsShader, "positions")
	gridLoc := rl.GetShaderLocation(f.physicsShader, "gridContents")
	dtLoc := rl.GetShaderLocation(f.physicsShader, "dt")
	rl.SetShaderValueTexture(f.physicsShader, posLoc, front.Texture)
	rl.SetShaderValueTexture(f.physicsShader, gridLoc, f.gridContents.Texture)
	rl.SetShaderValue(f.physicsShader, dtLoc, []float32{dt}, rl.ShaderUniformFloat)
	rl.DrawRectangle(0, 0, back.Texture.Width, back.Texture.Height, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

func (f *GPUFabric) dispatchProjectiles(posTex rl.RenderTexture2D, proj *ProjectileBuffers, dt float32) {
	rl.BeginTextureMode(f.projTex)
	rl.BeginShaderMode(f.projectileShader)
	posLoc := rl.GetShaderLocation(f.projectileShader, "npcPositions")
	dtLoc := rl.GetShaderLocation(f.projectileShader, "dt")
	rl.SetShaderValueTexture(f.projectileShader, posLoc, posTex.Texture)
	rl.SetShaderValue(f.projectileShader, dtLoc, []float32{dt}, rl.ShaderUniformFloat)
	rl.DrawRectangle(0, 0, f.projTex.Texture.Width, f.projTex.Texture.Height, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

// readbackInto decodes the output texture back into buf/proj, mirroring
// GPUResourceField.readbackData generalized from a single R-channel float
// to an RGBA-packed position (X across R/G, Y across B/A). Combat targets
// are not encoded in the texture; they are copied from buf.CombatTarget.
func (f *GPUFabric) readbackInto(posTex rl.RenderTexture2D, buf *SlotBuffers, highWater int32, proj *ProjectileBuffers) {
	img := rl.LoadImageFromTexture(posTex.Texture)
	defer rl.UnloadImage(img)
	colors := rl.LoadImageColors(img)
	defer rl.UnloadImageColors(colors)

	if cap(f.pendingPos) < int(highWater) {
		f.pendingPos = make([]Vec2, highWater)
		f.pendingTgt = make([]int32, highWater)
	}
	f.pendingPos = f.pendingPos[:highWater]
	f.pendingTgt = f.pendingTgt[:highWater]

	for slot := int32(0); slot < highWater; slot++ {
		c := colors[slot]
		buf.Position[slot] = Vec2{
			X: decodeCoord(c.R, c.G, f.cfg.Simulation.WorldWidth),
			Y: decodeCoord(c.B, c.A, f.cfg.Simulation.WorldHeight),
		}
		f.pendingPos[slot] = buf.Position[slot]
		f.pendingTgt[slot] = buf.CombatTarget[slot]
	}

	if proj != nil {
		if cap(f.pendingHits) < len(proj.HitSlot) {
			f.pendingHits = make([]int32, len(proj.HitSlot))
		}
		f.pendingHits = f.pendingHits[:len(proj.HitSlot)]
		copy(f.pendingHits, proj.HitSlot)
	}
}

// decodeCoord reconstructs a float32 world coordinate from two 8-bit
// channels (hi/lo byte of a [0,1] fixed-point encoding), the same trick
// the teacher's shaders use to pack more than 8 bits of precision into a
// single-channel texture.
func decodeCoord(hi, lo uint8, worldExtent float64) float32 {
	frac := (float64(hi)*256 + float64(lo)) / 65535.0
	return float32(frac * worldExtent)
}

// Readback implements Fabric, returning the cache populated by the
// PREVIOUS Step call.
func (f *GPUFabric) Readback() ([]Vec2, []int32, []int32) {
	return f.readyPos, f.readyTgt, f.readyHits
}

// Close releases GPU resources. Must be called before the raylib window
// closes.
func (f *GPUFabric) Close() {
	rl.UnloadShader(f.gridClearShader)
	rl.UnloadShader(f.gridInsertShader)
	rl.UnloadShader(f.physicsShader)
	rl.UnloadShader(f.projectileShader)
	rl.UnloadRenderTexture(f.posTexA)
	rl.UnloadRenderTexture(f.posTexB)
	rl.UnloadRenderTexture(f.gridCounts)
	rl.UnloadRenderTexture(f.gridContents)
	rl.UnloadRenderTexture(f.projTex)
}
