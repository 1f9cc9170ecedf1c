package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/ironhold/endless/combat"
	"github.com/ironhold/endless/config"
)

// CombatEventCSV is the CSV row shape for one combat.Log event, exported
// alongside telemetry.csv/perf.csv for offline balance analysis.
type CombatEventCSV struct {
	Frame           uint64  `csv:"frame"`
	Kind            string  `csv:"kind"`
	AttackerSlot    int32   `csv:"attacker_slot"`
	DefenderSlot    int32   `csv:"defender_slot"`
	AttackerFaction int32   `csv:"attacker_faction"`
	Damage          float32 `csv:"damage"`
}

func eventKindName(k combat.EventKind) string {
	switch k {
	case combat.EventHit:
		return "hit"
	case combat.EventMiss:
		return "miss"
	case combat.EventKill:
		return "kill"
	case combat.EventBuildingDamaged:
		return "building_damaged"
	default:
		return "unknown"
	}
}

// OutputManager handles structured run output: telemetry.csv, perf.csv,
// combat.csv, and a copy of the run's resolved config.yaml.
type OutputManager struct {
	dir          string
	telemetryFile *os.File
	perfFile      *os.File
	combatFile    *os.File

	telemetryHeaderWritten bool
	perfHeaderWritten      bool
	combatHeaderWritten    bool
}

// NewOutputManager creates the output directory and opens its CSV files.
// Returns a nil manager (not an error) when dir is empty, disabling output.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, "combat.csv"))
	if err != nil {
		om.telemetryFile.Close()
		om.perfFile.Close()
		return nil, fmt.Errorf("creating combat.csv: %w", err)
	}
	om.combatFile = f

	return om, nil
}

// WriteConfig saves the run's resolved configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends one window's stats to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	rows := []WindowStats{stats}
	if !om.telemetryHeaderWritten {
		om.telemetryHeaderWritten = true
		return gocsv.MarshalFile(&rows, om.telemetryFile)
	}
	return gocsv.MarshalWithoutHeaders(&rows, om.telemetryFile)
}

// WritePerf appends one window's frame-timing stats to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStatsCSV) error {
	if om == nil {
		return nil
	}
	rows := []PerfStatsCSV{stats}
	if !om.perfHeaderWritten {
		om.perfHeaderWritten = true
		return gocsv.MarshalFile(&rows, om.perfFile)
	}
	return gocsv.MarshalWithoutHeaders(&rows, om.perfFile)
}

// WriteCombatEvents appends a batch of combat.Log events to combat.csv.
func (om *OutputManager) WriteCombatEvents(events []combat.Event) error {
	if om == nil || len(events) == 0 {
		return nil
	}
	rows := make([]CombatEventCSV, len(events))
	for i, e := range events {
		rows[i] = CombatEventCSV{
			Frame:           e.Frame,
			Kind:            eventKindName(e.Kind),
			AttackerSlot:    e.AttackerSlot,
			DefenderSlot:    e.DefenderSlot,
			AttackerFaction: e.AttackerFaction,
			Damage:          e.Damage,
		}
	}
	if !om.combatHeaderWritten {
		om.combatHeaderWritten = true
		return gocsv.MarshalFile(&rows, om.combatFile)
	}
	return gocsv.MarshalWithoutHeaders(&rows, om.combatFile)
}

// Close flushes and closes all open output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{om.telemetryFile, om.perfFile, om.combatFile} {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
