// Package trainer drives self-play game generation: randomized openings,
// quick-search/full-search scheduling, per-position sample export and
// throughput bookkeeping. One Trainer owns one game at a time; horizontal
// scaling means running several independent Trainers.
package trainer

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"selfplay/export"
	"selfplay/game"
	"selfplay/oracle"
)

type Trainer struct {
	cfg         Config
	full        oracle.Oracle
	provider    game.StateProvider
	exporter    export.Exporter
	transcripts game.TranscriptWriter

	opening *openingGenerator
	sched   *budgetScheduler
	backup  BackupPolicy
	record  *game.Record
	stats   ThroughputStats
}

type Option func(*Trainer)

// WithTranscripts writes every finished game to w.
func WithTranscripts(w game.TranscriptWriter) Option {
	return func(t *Trainer) { t.transcripts = w }
}

// WithBackupPolicy replaces the default blended value-target backup.
func WithBackupPolicy(p BackupPolicy) Option {
	return func(t *Trainer) {
		if p != nil {
			t.backup = p
		}
	}
}

// New creates a self-play orchestrator. The raw oracle may be nil, which
// disables randomized openings.
func New(cfg Config, full oracle.Oracle, raw oracle.RawOracle, provider game.StateProvider, exporter export.Exporter, options ...Option) *Trainer {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	t := &Trainer{
		cfg:      cfg,
		full:     full,
		provider: provider,
		exporter: exporter,
		opening:  newOpeningGenerator(raw, cfg, rng),
		sched:    newBudgetScheduler(cfg, rng),
		backup:   BlendedBackup(cfg.BackupWindow, cfg.BackupValueWeight),
		record:   game.NewRecord(game.Variant(cfg.Variant)),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Go generates numberOfGames self-play games synchronously. A failed game is
// logged and dropped, never retried, so the count is a best-effort target.
// Go returns once the exporter has finalized its last shard.
func (t *Trainer) Go(numberOfGames int) error {
	t.stats.Reset()
	log.Info().Int("games", numberOfGames).Str("variant", t.cfg.Variant).Msg("starting self-play generation")

	for i := 0; i < numberOfGames; i++ {
		samples, err := t.generateGame()
		if err != nil {
			log.Warn().Err(err).Int("game", i).Msg("dropping failed game")
			continue
		}
		t.stats.AddGame(samples)
		t.stats.Report()
	}

	log.Info().Int("generated", t.stats.Games()).Int("samples", t.stats.Samples()).Msg("self-play generation finished")
	return t.exporter.Close()
}

// Stats exposes the throughput counters of the current run.
func (t *Trainer) Stats() *ThroughputStats {
	return &t.stats
}
