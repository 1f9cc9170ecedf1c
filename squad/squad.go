// Package squad implements squad/patrol coordination: member gathering,
// wave gather->threshold->dispatch->retreat cycling, and manual/AI
// targeting, per spec §4L.
package squad

import "github.com/ironhold/endless/components"

// TargetKind discriminates a squad's ManualTarget variant.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetNpc
	TargetBuilding
	TargetPosition
)

// Target is the squad's current objective. For TargetNpc, Slot is the
// tracked enemy; it clears automatically when that NPC dies (see Clear).
type Target struct {
	Kind TargetKind
	Slot int32
	Pos  components.Position
}

// WavePhase tracks the gather -> threshold -> dispatch -> retreat cycle.
type WavePhase uint8

const (
	PhaseGathering WavePhase = iota
	PhaseActive
	PhaseRetreating
)

// Squad holds a set of member slots, a rally point, and an optional
// manual target. Commander logic (player UiCommands or AI) drives phase
// transitions; Squad itself only tracks state and enforces the
// threshold/retreat math.
type Squad struct {
	ID              int32
	Owner           int32 // faction
	Members         []int32
	Rally           components.Position
	Target          Target
	Phase           WavePhase
	WaveStartCount  int
	WaveMinStart    int
	RetreatBelowPct float64
}

// NewSquad builds an empty squad rallying at rally.
func NewSquad(id, owner int32, rally components.Position, waveMinStart int, retreatBelowPct float64) *Squad {
	return &Squad{
		ID:              id,
		Owner:           owner,
		Rally:           rally,
		Phase:           PhaseGathering,
		WaveMinStart:    waveMinStart,
		RetreatBelowPct: retreatBelowPct,
	}
}

// AddMember enrolls a slot, no-op if already a member.
func (s *Squad) AddMember(slot int32) {
	for _, m := range s.Members {
		if m == slot {
			return
		}
	}
	s.Members = append(s.Members, slot)
}

// RemoveMember drops a slot (death, dismissal, reassignment). If the
// squad's target was this NPC... handled by ClearTargetIfDead instead,
// since a target can also be an enemy not in this squad.
func (s *Squad) RemoveMember(slot int32) {
	for i, m := range s.Members {
		if m == slot {
			s.Members = append(s.Members[:i], s.Members[i+1:]...)
			return
		}
	}
}

// ClearTargetIfDead clears a TargetNpc target once the tracked NPC dies,
// per spec §4L: "When a member dies or the target NPC dies, the target
// clears."
func (s *Squad) ClearTargetIfDead(isAlive func(slot int32) bool) {
	if s.Target.Kind == TargetNpc && !isAlive(s.Target.Slot) {
		s.Target = Target{}
	}
}

// SetManualTarget assigns a new target and resets to the gathering phase
// so the wave regathers before moving on it.
func (s *Squad) SetManualTarget(t Target) {
	s.Target = t
	s.Phase = PhaseGathering
}

// TryActivate transitions Gathering -> Active once the member count
// present at rally reaches WaveStartCount and alive members are at least
// WaveMinStart.
func (s *Squad) TryActivate(aliveAtRally int) bool {
	if s.Phase != PhaseGathering {
		return false
	}
	if aliveAtRally < s.WaveStartCount || len(s.Members) < s.WaveMinStart {
		return false
	}
	s.Phase = PhaseActive
	s.WaveStartCount = len(s.Members)
	return true
}

// CheckRetreat transitions Active -> Retreating once the alive fraction
// drops below RetreatBelowPct of the count present when the wave went
// active.
func (s *Squad) CheckRetreat(aliveNow int) bool {
	if s.Phase != PhaseActive || s.WaveStartCount == 0 {
		return false
	}
	if float64(aliveNow)/float64(s.WaveStartCount) < s.RetreatBelowPct {
		s.Phase = PhaseRetreating
		return true
	}
	return false
}
