package lifecycle

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ironhold/endless/components"
)

// SaveVersion is incremented when the persisted schema changes. Loading
// decodes with encoding/json: a field missing from the file takes its Go
// zero value, and no aliased field names are recognized, so a renamed
// field loads as missing.
const SaveVersion = 1

// WorldGridSave mirrors the per-cell tile-flag byte grid.
type WorldGridSave struct {
	Width, Height int
	Cells         []byte
}

// BuildingSave is one placed building's persisted fields, keyed in the
// save document by its kind's registry save_key. Index is the building's
// stable placement index (lifecycle.BuildingManager.IndexOf), carried so a
// reloaded SpawnerSave.BuildingIndex still resolves to the right building.
type BuildingSave struct {
	Index     int32
	Kind      components.BuildingKind
	X, Y      float32
	TownIndex int32
	HP        float32
	MaxHP     float32
}

// SpawnerSave persists a spawner's link/timer state.
type SpawnerSave struct {
	BuildingIndex int
	TownIndex     int32
	LinkedSlot    int32
	RespawnTimer  float64
}

// SquadSave persists a squad's membership and target. TargetKind is one
// of "none", "npc", "building", "position"; TargetSlot is meaningful only
// for "npc", TargetX/TargetY for "building"/"position".
type SquadSave struct {
	ID         int32
	Owner      int32
	Members    []int32
	TargetKind string
	TargetSlot int32
	TargetX    float32
	TargetY    float32
	WaveActive bool
}

// TownSave persists one town's upgrade levels, policies, and storages.
type TownSave struct {
	Index     int32
	Faction   int32
	FountainX float32
	FountainY float32
	Food      float64
	Gold      float64
	Upgrades  map[string]int
	Policies  map[string]string
	AIActive  bool
}

// PendingSpawnSave persists a queued PendingAiSpawn.
type PendingSpawnSave struct {
	Strength      float32
	Faction       int32
	Personality   components.Personality
	Kind          components.BuildingKind
	CooldownHours float64
}

// NpcSave is one NPC's complete persisted identity, per spec §6's
// NpcSave layout: slot, position, health, energy, activity (with
// payload), combat state, job, faction, town, home/work positions, squad,
// patrol route, personality, level, XP, equipment, carried loot.
type NpcSave struct {
	Slot        int32
	X, Y        float32
	Health      float32
	MaxHealth   float32
	Energy      float32
	Activity    components.Activity
	RecoverUntil float64 // meaningful iff Activity is Resting/HealingAtFountain
	Combat      components.CombatState
	Job         components.Job
	Faction     int32
	TownIndex   int32
	HomeX, HomeY float32
	WorkX, WorkY float32
	SquadID     int32
	PatrolRoute int32
	Personality components.Personality
	Level       uint16
	XP          uint32
	Weapon      uint16
	Helmet      uint16
	Armor       uint16
	LootFood    float32
	LootGold    float32
}

// Document is the single authoritative JSON save blob, per spec §6.
type Document struct {
	Version          int
	WorldGrid        WorldGridSave
	Buildings        map[string][]BuildingSave
	Spawners         []SpawnerSave
	Towns            []TownSave
	Squads           []SquadSave
	PendingSpawns    []PendingSpawnSave
	Npcs             []NpcSave
}

// Marshal encodes doc as indented JSON, stamping the current SaveVersion.
// Shared by Save (file path) and any caller persisting through a byte-
// oriented store (external.SaveStore) instead.
func Marshal(doc *Document) ([]byte, error) {
	doc.Version = SaveVersion
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal save document: %w", err)
	}
	return data, nil
}

// Unmarshal parses and validates a save document's bytes, rejecting a
// version newer than this build supports, per spec §7.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load: parse error: %w", err)
	}
	if doc.Version > SaveVersion {
		return nil, fmt.Errorf("load: unsupported save version %d (max supported %d)", doc.Version, SaveVersion)
	}
	return &doc, nil
}

// Save writes doc to path as indented JSON. Write failure is retried
// once before surfacing, per spec §7.
func Save(doc *Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		err = os.WriteFile(path, data, 0644) // one retry, per spec §7
	}
	if err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	return nil
}

// Load reads and validates a save document. A parse error, missing file,
// or unsupported version is surfaced with a specific reason and no
// partial document is returned, per spec §7.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: missing or unreadable save file: %w", err)
	}
	return Unmarshal(data)
}
