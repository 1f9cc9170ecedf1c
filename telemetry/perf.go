// Package telemetry collects per-window simulation statistics, per-phase
// frame timing, and CSV/YAML experiment output, grounded on the teacher's
// telemetry package.
package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the fixed frame pipeline, per spec §5: (a) input+UI,
// (b) game-time advance, (c) decision/arrival/combat, (d) CPU command
// application, (e) sparse GPU writes, (f) GPU dispatches, (g) schedule
// async readbacks, (h) extract for render.
const (
	PhaseInput           = "input"
	PhaseTimeAdvance     = "time_advance"
	PhaseDecisionCombat  = "decision_combat"
	PhaseCommandApply    = "command_apply"
	PhaseGPUWrites       = "gpu_writes"
	PhaseGPUDispatch     = "gpu_dispatch"
	PhaseReadbackSchedule = "readback_schedule"
	PhaseExtract         = "extract"
)

var allPhases = []string{
	PhaseInput, PhaseTimeAdvance, PhaseDecisionCombat, PhaseCommandApply,
	PhaseGPUWrites, PhaseGPUDispatch, PhaseReadbackSchedule, PhaseExtract,
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a collector averaging over windowSize frames
// (e.g. 60 for a 1-second window at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a pipeline stage, closing out the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame closes the final phase and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.samples[p.writeIndex] = PerfSample{FrameDuration: now.Sub(p.frameStart), Phases: p.currentPhases}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated frame-timing statistics over the window.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration
	PhaseAvg         map[string]time.Duration
	PhasePct         map[string]float64
	FPS              float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{PhaseAvg: make(map[string]time.Duration), PhasePct: make(map[string]float64)}
	}

	var total, min, max time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		if i == 0 || s.FrameDuration < min {
			min = s.FrameDuration
		}
		if s.FrameDuration > max {
			max = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)
	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var fps float64
	if avg > 0 {
		fps = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: min,
		MaxFrameDuration: max,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		FPS:              fps,
	}
}

// LogStats emits the window's aggregated stats as a structured log line.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"fps", int(s.FPS),
	}
	for _, phase := range allPhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of frame-timing stats.
type PerfStatsCSV struct {
	WindowEnd           int32   `csv:"window_end"`
	AvgFrameUS          int64   `csv:"avg_frame_us"`
	MinFrameUS          int64   `csv:"min_frame_us"`
	MaxFrameUS          int64   `csv:"max_frame_us"`
	FPS                 float64 `csv:"fps"`
	InputPct            float64 `csv:"input_pct"`
	TimeAdvancePct      float64 `csv:"time_advance_pct"`
	DecisionCombatPct   float64 `csv:"decision_combat_pct"`
	CommandApplyPct     float64 `csv:"command_apply_pct"`
	GPUWritesPct        float64 `csv:"gpu_writes_pct"`
	GPUDispatchPct      float64 `csv:"gpu_dispatch_pct"`
	ReadbackSchedulePct float64 `csv:"readback_schedule_pct"`
	ExtractPct          float64 `csv:"extract_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:           windowEnd,
		AvgFrameUS:          s.AvgFrameDuration.Microseconds(),
		MinFrameUS:          s.MinFrameDuration.Microseconds(),
		MaxFrameUS:          s.MaxFrameDuration.Microseconds(),
		FPS:                 s.FPS,
		InputPct:            s.PhasePct[PhaseInput],
		TimeAdvancePct:      s.PhasePct[PhaseTimeAdvance],
		DecisionCombatPct:   s.PhasePct[PhaseDecisionCombat],
		CommandApplyPct:     s.PhasePct[PhaseCommandApply],
		GPUWritesPct:        s.PhasePct[PhaseGPUWrites],
		GPUDispatchPct:      s.PhasePct[PhaseGPUDispatch],
		ReadbackSchedulePct: s.PhasePct[PhaseReadbackSchedule],
		ExtractPct:          s.PhasePct[PhaseExtract],
	}
}
