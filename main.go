package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"selfplay/arena"
	"selfplay/chessenv"
	"selfplay/export"
	"selfplay/oracle"
	"selfplay/trainer"
)

func main() {
	configPath := flag.String("config", "", "path to the yaml run configuration")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	switch cfg.Mode {
	case "selfplay":
		err = runSelfplay(cfg)
	case "arena":
		err = runArena(cfg)
	default:
		err = fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// runSelfplay fans the game budget out across fully independent workers:
// each gets its own provider, oracles, exporter and counters, so no state is
// shared between them.
func runSelfplay(cfg runConfig) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	var group errgroup.Group
	for w := 0; w < cfg.Workers; w++ {
		games := cfg.Games / cfg.Workers
		if w < cfg.Games%cfg.Workers {
			games++
		}
		workerSeed := seed + uint64(w)*7919
		workerID := w

		group.Go(func() error {
			writer, err := export.NewWriter(cfg.Export.Dir, cfg.Export.ShardSize)
			if err != nil {
				return fmt.Errorf("worker %d: %w", workerID, err)
			}
			pgnPath := filepath.Join(cfg.Export.Dir, fmt.Sprintf("selfplay_%d.pgn", workerID))
			pgn, err := chessenv.NewPGNWriter(pgnPath, "selfplay")
			if err != nil {
				return fmt.Errorf("worker %d: %w", workerID, err)
			}
			defer pgn.Close()

			full := chessenv.NewHeuristic(workerSeed)
			raw := chessenv.NewHeuristic(workerSeed + 1)
			t := trainer.New(trainerConfig(cfg, workerSeed), full, raw, chessenv.NewProvider(), writer,
				trainer.WithTranscripts(pgn))

			log.Info().Int("worker", workerID).Int("games", games).Msg("worker starting")
			return t.Go(games)
		})
	}
	return group.Wait()
}

func runArena(cfg runConfig) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	pgnPath := filepath.Join(cfg.Export.Dir, "arena.pgn")
	if err := os.MkdirAll(cfg.Export.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	pgn, err := chessenv.NewPGNWriter(pgnPath, "arena")
	if err != nil {
		return err
	}
	defer pgn.Close()

	// Both sides search under the same limits; a real deployment would load
	// different network weights into the contender.
	incumbent := chessenv.NewHeuristic(seed)
	contender := chessenv.NewHeuristic(seed + 1)

	evaluator := arena.New(incumbent, chessenv.NewProvider(), arena.Config{
		Variant:       cfg.Variant,
		Search:        oracle.SearchConfig{Nodes: cfg.Search.Nodes},
		MaxGameLength: cfg.Arena.MaxGameLength,
	}, arena.WithTranscripts(pgn))

	result, err := evaluator.Run(contender, cfg.Games)
	if err != nil {
		return err
	}
	log.Info().Stringer("result", result).Float64("score", result.Score()).Msg("arena verdict")
	return nil
}

func trainerConfig(cfg runConfig, seed uint64) trainer.Config {
	return trainer.Config{
		Variant: cfg.Variant,
		Search: oracle.SearchConfig{
			Nodes:        cfg.Search.Nodes,
			NoiseEpsilon: cfg.Search.NoiseEpsilon,
			Temperature:  cfg.Search.Temperature,
		},
		MeanOpeningPlies:    cfg.Selfplay.MeanOpeningPlies,
		MaxOpeningPlies:     cfg.Selfplay.MaxOpeningPlies,
		MaxGameLength:       cfg.Selfplay.MaxGameLength,
		QuickSearchProb:     cfg.Selfplay.QuickSearchProb,
		QuickSearchNodes:    cfg.Selfplay.QuickSearchNodes,
		QuickNoiseEpsilon:   cfg.Selfplay.QuickNoiseEpsilon,
		NodeRandomFactor:    cfg.Selfplay.NodeRandomFactor,
		MinNodes:            cfg.Selfplay.MinNodes,
		PolicyClipThreshold: cfg.Selfplay.PolicyClipThreshold,
		BackupWindow:        cfg.Selfplay.BackupWindow,
		BackupValueWeight:   cfg.Selfplay.BackupValueWeight,
		Seed:                seed,
	}
}
