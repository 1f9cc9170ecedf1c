// Package external defines the boundary contracts spec §6 names —
// UiCommands, UiQueries, WorldGen, Renderer, SaveStore — as Go
// interfaces. No concrete sprite/HUD renderer or menu UI ships here
// (the spec's Non-goals exclude them); external.FileSaveStore is the
// one concrete implementation, covering the file-system key/value
// contract Save/Load actually needs.
package external

import (
	"github.com/ironhold/endless/combat"
	"github.com/ironhold/endless/components"
)

// UiCommandKind enumerates the inbound command vocabulary spec §6 lists.
type UiCommandKind uint8

const (
	CmdBuildAt UiCommandKind = iota
	CmdDestroyBuilding
	CmdUnlockSlot
	CmdAssignSquad
	CmdSetSquadTarget
	CmdPurchaseUpgrade
	CmdToggleTower
	CmdRenameNpc
	CmdSetMiningPolicy
	CmdRequestSave
	CmdRequestLoad
	CmdSetTimeScale
	CmdSetPaused
)

// UiCommand is one inbound player action. Only the fields relevant to
// Kind are meaningful; the rest are zero.
type UiCommand struct {
	Kind        UiCommandKind
	BuildingKind components.BuildingKind
	Pos         components.Position
	TownIndex   int32
	SquadID     int32
	TargetSlot  int32
	TargetPos   components.Position
	UpgradeKey  string
	NpcSlot     int32
	NewName     string
	MiningPolicy string
	SavePath    string
	TimeScale   float64
	Paused      bool
}

// UiCommands accepts the player's inbound command stream, applied during
// frame stage (d) CPU command application per spec §5.
type UiCommands interface {
	Enqueue(cmd UiCommand)
	Drain() []UiCommand
}

// FactionSummary is one per-faction aggregate count row.
type FactionSummary struct {
	Faction   int32
	NpcCount  int
	Food, Gold float64
}

// NpcInspectorView is the per-NPC read-only bundle a UI inspector panel
// displays, per spec §6.
type NpcInspectorView struct {
	Slot        int32
	Pos         components.Position
	Health, MaxHealth float32
	Energy      float32
	Activity    components.Activity
	Combat      components.CombatState
	Personality components.Personality
	Equipment   components.Equipment
	SquadID     int32
	Home        components.Position
	Level       uint16
	XP          uint32
}

// RosterRow is one line of a town's NPC roster view.
type RosterRow struct {
	Slot int32
	Job  components.Job
	Activity components.Activity
}

// MiningAssignmentView reports one mine's occupancy for the UI.
type MiningAssignmentView struct {
	BuildingIndex int
	Occupants, MaxOccupants uint8
}

// FarmAssignmentView reports one farm's growth progress for the UI.
type FarmAssignmentView struct {
	BuildingIndex int
	Progress      float32
}

// UiQueries serves outbound read-only snapshots for the UI, per spec §6.
type UiQueries interface {
	FactionSummaries() []FactionSummary
	NpcInspector(slot int32) (NpcInspectorView, bool)
	CombatLogTail(n int) []combat.Event
	Roster(townIndex int32) []RosterRow
	MiningAssignments() []MiningAssignmentView
	FarmAssignments() []FarmAssignmentView
}

// WorldGenResult is a freshly generated world's seed layout.
type WorldGenResult struct {
	BiomeGrid    []byte
	Width, Height int
	TownSeeds    []components.Position
	CampSeeds    []components.Position
	InitialRoads []components.Position
	InitialBuildings []InitialBuilding
}

// InitialBuilding is one building WorldGen wants placed before the first
// frame runs.
type InitialBuilding struct {
	Kind      components.BuildingKind
	Pos       components.Position
	TownIndex int32
}

// WorldGen supplies the biome grid, town/camp seed positions, and initial
// road/building placement for a fresh game, per spec §6.
type WorldGen interface {
	Generate(seed int64, width, height int) WorldGenResult
}

// NpcExtract is one NPC's per-frame render payload.
type NpcExtract struct {
	Slot          int32
	Pos           components.Position
	Faction       int32
	HealthFrac    float32
	FlashIntensity float32
	VisualLayer   uint16
}

// ProjectileExtract is one projectile's per-frame render payload.
type ProjectileExtract struct {
	Pos     components.Position
	Faction int32
}

// BuildingOverlay is one building's HUD overlay (HP bar, growth bar).
type BuildingOverlay struct {
	Pos          components.Position
	HealthFrac   float32
	GrowthFrac   float32 // meaningful only for farms; 0 otherwise
}

// FrameExtract is the complete per-frame render payload, per spec §6.
type FrameExtract struct {
	Npcs        []NpcExtract
	Projectiles []ProjectileExtract
	Overlays    []BuildingOverlay
}

// Renderer receives the per-frame extraction. No concrete implementation
// ships; a graphics frontend is out of scope per the spec's Non-goals.
type Renderer interface {
	Render(extract FrameExtract)
}
