package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorAggregatesWindow(t *testing.T) {
	p := NewPerfCollector(4)
	for i := 0; i < 4; i++ {
		p.StartFrame()
		p.StartPhase(PhaseDecisionCombat)
		time.Sleep(time.Millisecond)
		p.StartPhase(PhaseGPUDispatch)
		time.Sleep(time.Millisecond)
		p.EndFrame()
	}
	stats := p.Stats()
	if stats.AvgFrameDuration <= 0 {
		t.Fatal("average frame duration should be positive after samples")
	}
	if stats.PhasePct[PhaseDecisionCombat] <= 0 {
		t.Fatal("decision_combat phase should have a nonzero share")
	}
}

func TestPerfCollectorEmptyWindow(t *testing.T) {
	p := NewPerfCollector(10)
	stats := p.Stats()
	if stats.AvgFrameDuration != 0 {
		t.Fatal("empty window should report zero average")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	p := NewPerfCollector(1)
	p.StartFrame()
	p.StartPhase(PhaseExtract)
	time.Sleep(time.Millisecond)
	p.EndFrame()
	csvRow := p.Stats().ToCSV(42)
	if csvRow.WindowEnd != 42 {
		t.Fatal("window end should carry through to the CSV row")
	}
}
