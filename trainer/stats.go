package trainer

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ThroughputStats tracks generation speed for one orchestrator instance.
// Purely observational: nothing reads it back into behavior.
type ThroughputStats struct {
	games   int
	samples int
	since   time.Time
}

// Reset zeroes the counters and restarts the clock. Called at an explicit
// boundary such as the start of a run.
func (s *ThroughputStats) Reset() {
	s.games = 0
	s.samples = 0
	s.since = time.Now()
}

func (s *ThroughputStats) AddGame(samples int) {
	s.games++
	s.samples += samples
}

func (s *ThroughputStats) Games() int   { return s.games }
func (s *ThroughputStats) Samples() int { return s.samples }

func (s *ThroughputStats) GamesPerMin() float64 {
	return perMinute(s.games, time.Since(s.since))
}

func (s *ThroughputStats) SamplesPerMin() float64 {
	return perMinute(s.samples, time.Since(s.since))
}

// Report logs a throughput summary line.
func (s *ThroughputStats) Report() {
	log.Info().
		Int("games", s.games).
		Int("samples", s.samples).
		Float64("games_per_min", s.GamesPerMin()).
		Float64("samples_per_min", s.SamplesPerMin()).
		Msg("generation throughput")
}

func perMinute(count int, elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return float64(count) / minutes
}
