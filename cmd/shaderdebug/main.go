// Shader debug tool - renders one pass of the gpufabric shader family to
// a PNG for inspection, standing in for glDispatchCompute readback since
// raylib-go exposes no compute-shader bindings.
//
// Usage: go run ./cmd/shaderdebug -shader shaders/physics.fs -out debug.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	shaderPath := flag.String("shader", "shaders/physics.fs", "Path to fragment shader")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 256, "Render width (texels)")
	height := flag.Int("height", 256, "Render height (texels)")
	dt := flag.Float64("dt", 1.0/60.0, "Value bound to the dt uniform, where present")
	flag.Parse()

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	shader := rl.LoadShader("", *shaderPath)
	if shader.ID == 0 {
		fmt.Fprintf(os.Stderr, "Failed to load shader: %s\n", *shaderPath)
		os.Exit(1)
	}
	defer rl.UnloadShader(shader)

	// Every fragment pass in shaders/ takes its own sampler set (positions,
	// gridContents, targets, ...); bind a flat mid-gray texture to any
	// uniform name that resolves, so a pass renders something legible
	// without needing a live GPUFabric to supply real slot data.
	stub := rl.GenImageColor(*width, *height, rl.Gray)
	stubTex := rl.LoadTextureFromImage(stub)
	rl.UnloadImage(stub)
	defer rl.UnloadTexture(stubTex)

	for _, name := range []string{"positions", "gridContents", "gridCounts", "npcPositions", "targets"} {
		if loc := rl.GetShaderLocation(shader, name); loc != -1 {
			rl.SetShaderValueTexture(shader, loc, stubTex)
		}
	}
	if loc := rl.GetShaderLocation(shader, "dt"); loc != -1 {
		rl.SetShaderValue(shader, loc, []float32{float32(*dt)}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "resolution"); loc != -1 {
		rl.SetShaderValue(shader, loc, []float32{float32(*width), float32(*height)}, rl.ShaderUniformVec2)
	}

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(shader)
	rl.DrawRectangle(0, 0, int32(*width), int32(*height), rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()

	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Shader rendered to: %s (%dx%d)\n", *outPath, *width, *height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
