package components

// FieldDescriptor describes one inspector-bundle field for the UiQueries
// boundary: enough metadata for an external inspector panel to render the
// field generically instead of every caller hardcoding layout.
type FieldDescriptor struct {
	ID    string
	Label string
	Group string
}

// NpcFieldDescriptors lists the fields an external inspector should expect
// in a per-NPC UiQueries bundle.
func NpcFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "position", Label: "Position", Group: "transform"},
		{ID: "health", Label: "Health", Group: "vitals"},
		{ID: "energy", Label: "Energy", Group: "vitals"},
		{ID: "activity", Label: "Activity", Group: "state"},
		{ID: "combat_state", Label: "Combat State", Group: "state"},
		{ID: "job", Label: "Job", Group: "identity"},
		{ID: "personality", Label: "Personality", Group: "identity"},
		{ID: "equipment", Label: "Equipment", Group: "identity"},
		{ID: "squad", Label: "Squad", Group: "identity"},
		{ID: "home", Label: "Home", Group: "identity"},
		{ID: "level", Label: "Level", Group: "progression"},
		{ID: "xp", Label: "XP", Group: "progression"},
	}
}
