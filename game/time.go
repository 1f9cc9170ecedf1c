package game

import "github.com/ironhold/endless/config"

// GameTime advances simulation time at TimeScale, converted to in-game
// hours via the config's GameHourSeconds constant. Paused zeroes delta in
// both the NPC and projectile compute uniforms, stopping motion on GPU as
// well as CPU, per spec §5.
type GameTime struct {
	Paused       bool
	TimeScale    float64
	ElapsedHours float64
	Frame        uint64
	gameHourSeconds float64
}

// NewGameTime builds a GameTime from config, running at 1x.
func NewGameTime(cfg *config.Config) *GameTime {
	return &GameTime{TimeScale: 1, gameHourSeconds: cfg.Simulation.GameHourSeconds}
}

// Advance steps the clock by dtSeconds of real time, returning the
// (possibly zeroed) delta to feed into this frame's compute dispatches
// and the game-hours elapsed this frame.
func (t *GameTime) Advance(dtSeconds float64) (delta float64, gameHours float64) {
	t.Frame++
	if t.Paused {
		return 0, 0
	}
	scaled := dtSeconds * t.TimeScale
	hours := scaled / t.gameHourSeconds
	t.ElapsedHours += hours
	return scaled, hours
}
