// Command endless runs the kingdom simulation headless, grounded on the
// teacher's root main.go runHeadless path: no Renderer/UiCommands
// concrete implementation ships in this module (spec §6 names them as
// interfaces only), so this is the one driver loop available, suited to
// logging/benchmarking/save-load exercise rather than interactive play.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/ironhold/endless/config"
	"github.com/ironhold/endless/external"
	"github.com/ironhold/endless/game"
	"github.com/ironhold/endless/worldgen"
)

var (
	configPath = flag.String("config", "", "Config YAML file (empty = embedded defaults)")
	saveDir    = flag.String("save-dir", "saves", "Directory for save files")
	loadKey    = flag.String("load", "", "Save key to load on startup (empty = fresh world)")
	seed       = flag.Int64("seed", 1, "World-generation seed, used only when -load is empty")
	maxTicks   = flag.Int("max-ticks", 0, "Stop after N ticks (0 = run forever)")
	logFile    = flag.String("logfile", "", "Write progress logs to file instead of stdout")
	logWriter  *os.File
)

func logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

func main() {
	flag.Parse()

	if *logFile != "" {
		var err error
		logWriter, err = os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
			os.Exit(1)
		}
		defer logWriter.Close()
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	store, err := external.NewFileSaveStore(*saveDir)
	if err != nil {
		slog.Error("failed to open save store", "dir", *saveDir, "error", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	g := game.New(cfg, rng)

	if *loadKey != "" {
		if err := g.LoadGame(store, *loadKey); err != nil {
			slog.Error("failed to load save, falling back to a fresh world", "key", *loadKey, "error", err)
			seedFreshWorld(g, rng)
		} else {
			logf("Loaded save %q", *loadKey)
		}
	} else {
		seedFreshWorld(g, rng)
	}

	logf("Starting headless simulation...")
	logf("  Max ticks: %d (0 = run forever)", *maxTicks)
	logf("")

	dt := cfg.Simulation.DT
	startTime := time.Now()
	lastReport := startTime
	reportInterval := 10 * time.Second

	for {
		if *maxTicks > 0 && int(g.Time.Frame) >= *maxTicks {
			logf("Reached max ticks (%d), stopping.", *maxTicks)
			break
		}

		g.Step(dt)
		drainSaveLoad(g, store)

		if ws, ok := g.Stats.Tick(dt, int32(g.Time.Frame)); ok {
			ws.LogStats()
		}

		if time.Since(lastReport) >= reportInterval {
			elapsed := time.Since(startTime)
			ticksPerSec := float64(g.Time.Frame) / elapsed.Seconds()
			logf("[PROGRESS] Tick %d | %.0f ticks/sec | Elapsed: %s",
				g.Time.Frame, ticksPerSec, elapsed.Round(time.Second))
			lastReport = time.Now()
		}
	}

	elapsed := time.Since(startTime)
	logf("")
	logf("Simulation complete.")
	logf("  Total ticks: %d", g.Time.Frame)
	logf("  Elapsed time: %s", elapsed.Round(time.Millisecond))
	logf("  Average: %.0f ticks/sec", float64(g.Time.Frame)/elapsed.Seconds())
}

// seedFreshWorld stands up a brand-new kingdom using the CPU reference
// world generator, grounded on game.PopulateFresh's documented contract.
func seedFreshWorld(g *game.Game, rng *rand.Rand) {
	gen := worldgen.NewGenerator()
	g.PopulateFresh(*seed, gen)
	logf("Generated fresh world from seed %d", *seed)
}

// drainSaveLoad resolves CmdRequestSave/CmdRequestLoad commands Step
// deferred past stage (d), against this process's SaveStore — the one
// piece of UiCommands handling a headless driver still owns, since no
// concrete Renderer/UiCommands ships to do it for us.
func drainSaveLoad(g *game.Game, store external.SaveStore) {
	for _, cmd := range g.PendingSaveLoad {
		switch cmd.Kind {
		case external.CmdRequestSave:
			if err := g.SaveGame(store, cmd.SavePath); err != nil {
				slog.Error("save request failed", "key", cmd.SavePath, "error", err)
			}
		case external.CmdRequestLoad:
			if err := g.LoadGame(store, cmd.SavePath); err != nil {
				slog.Error("load request failed", "key", cmd.SavePath, "error", err)
			}
		}
	}
}
