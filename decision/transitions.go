package decision

import "github.com/ironhold/endless/components"

// State bundles the two concurrent per-NPC axes so transition helpers can
// enforce the spec's invariant that a change on one axis never erases the
// other (e.g. a squad sync preserves ActivityReturning rather than
// overwriting it with ActivityPatrolling).
type State struct {
	Activity components.Activity
	Combat   components.CombatState
}

// SetActivity replaces only the Activity axis. Applying the same value
// twice is a no-op in effect (callers compare before emitting a
// transition event), matching the idempotence property in spec §8.
func (s *State) SetActivity(a components.Activity) {
	s.Activity = a
}

// SetCombat replaces only the CombatState axis.
func (s *State) SetCombat(c components.CombatState) {
	s.Combat = c
}

// Disengage clears CombatState back to None without touching Activity, so
// a raider who wins a fight returns to Raiding rather than Idle.
func (s *State) Disengage() {
	s.Combat = components.CombatNone
}

// EnterFlee sets CombatState to Fleeing, independent of whatever Activity
// the NPC was pursuing; the flee/leash check tier calls this, and the
// NPC resumes its prior Activity once CombatState clears.
func (s *State) EnterFlee() {
	s.Combat = components.CombatFleeing
}
