// Package sched provides the dirty-flag scheduler that gates expensive
// per-frame rebuild work (patrol routes, building spatial grid, mining
// policy, healing zones) behind the specific mutating call sites that
// invalidate them.
package sched

// DirtyFlags is the process-wide record of which expensive subsystems
// need a rebuild this frame. All flags default true so the first frame
// after startup or load rebuilds everything. Setters are intentionally
// narrow: only the mutating call sites named in each comment may call
// them, so provenance stays auditable.
type DirtyFlags struct {
	BuildingGrid         bool // build, destroy
	Patrols              bool // build, destroy, assign route
	HealingZones         bool // build, destroy fountain
	PatrolSwap           bool // assign, dismiss squad member
	Squads               bool // assign-squad, set-squad-target, dismiss
	Mining               bool // build, destroy mine, set-mining-policy
	PatrolPerimeter      bool // build, destroy on perimeter tiles
	BuildingsNeedHealing bool // damage, heal-tick, build, destroy
	GuardPostSlots       bool // build, destroy tower, assign guard
}

// NewDirtyFlags returns a DirtyFlags with every flag set, matching the
// state right after startup or a load.
func NewDirtyFlags() *DirtyFlags {
	return &DirtyFlags{
		BuildingGrid:         true,
		Patrols:              true,
		HealingZones:         true,
		PatrolSwap:           true,
		Squads:               true,
		Mining:               true,
		PatrolPerimeter:      true,
		BuildingsNeedHealing: true,
		GuardPostSlots:       true,
	}
}

// ClearAll marks every flag clean, called once by each frame's rebuild
// stage after it has consulted and acted on the flags it owns.
func (d *DirtyFlags) ClearAll() {
	*d = DirtyFlags{}
}

// MarkBuild flags every subsystem a new building placement can affect.
func (d *DirtyFlags) MarkBuild() {
	d.BuildingGrid = true
	d.Patrols = true
	d.HealingZones = true
	d.Mining = true
	d.PatrolPerimeter = true
	d.BuildingsNeedHealing = true
	d.GuardPostSlots = true
}

// MarkDestroy flags the same subsystems as MarkBuild: removal perturbs
// the same set a placement does.
func (d *DirtyFlags) MarkDestroy() {
	d.MarkBuild()
}

// MarkSquadAssign flags squad and patrol-swap rebuilds after an
// assign-squad, set-squad-target, or dismiss command.
func (d *DirtyFlags) MarkSquadAssign() {
	d.Squads = true
	d.PatrolSwap = true
}

// MarkMiningPolicy flags a mining-policy rebuild after set-mining-policy.
func (d *DirtyFlags) MarkMiningPolicy() {
	d.Mining = true
}
