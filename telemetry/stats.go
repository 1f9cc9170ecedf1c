package telemetry

import "log/slog"

// WindowStats summarizes combat and economy events accumulated over one
// telemetry window, the CSV-exportable counterpart to combat.Log's raw
// event ring buffer.
type WindowStats struct {
	WindowEnd       int32   `csv:"window_end"`
	NpcSpawns       int     `csv:"npc_spawns"`
	NpcDeaths       int     `csv:"npc_deaths"`
	AttacksFired    int     `csv:"attacks_fired"`
	Hits            int     `csv:"hits"`
	Misses          int     `csv:"misses"`
	Kills           int     `csv:"kills"`
	BuildingsLost   int     `csv:"buildings_lost"`
	FoodHarvested   float64 `csv:"food_harvested"`
	GoldMined       float64 `csv:"gold_mined"`
	RaidsCompleted  int     `csv:"raids_completed"`
	MigrationsSettled int   `csv:"migrations_settled"`
}

// HitRate returns Hits / AttacksFired, or 0 if nothing was fired.
func (w WindowStats) HitRate() float64 {
	if w.AttacksFired == 0 {
		return 0
	}
	return float64(w.Hits) / float64(w.AttacksFired)
}

// LogValue implements slog.LogValuer for structured logging.
func (w WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(w.WindowEnd)),
		slog.Int("npc_spawns", w.NpcSpawns),
		slog.Int("npc_deaths", w.NpcDeaths),
		slog.Int("attacks_fired", w.AttacksFired),
		slog.Int("hits", w.Hits),
		slog.Int("misses", w.Misses),
		slog.Int("kills", w.Kills),
		slog.Int("buildings_lost", w.BuildingsLost),
		slog.Float64("food_harvested", w.FoodHarvested),
		slog.Float64("gold_mined", w.GoldMined),
		slog.Int("raids_completed", w.RaidsCompleted),
		slog.Int("migrations_settled", w.MigrationsSettled),
		slog.Float64("hit_rate", w.HitRate()),
	)
}

// LogStats logs the window stats using slog.
func (w WindowStats) LogStats() {
	slog.Info("stats", "window", w)
}
