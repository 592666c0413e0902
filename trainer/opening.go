package trainer

import (
	"fmt"

	"golang.org/x/exp/rand"

	"selfplay/game"
	"selfplay/oracle"
)

// openingGenerator diversifies game starts by sampling early plies from the
// raw oracle's policy at temperature 1. It never leaves the state in a
// terminal position: a move that would end the game stops the opening early.
type openingGenerator struct {
	raw  oracle.RawOracle
	mean int
	max  int
	rng  *rand.Rand
}

func newOpeningGenerator(raw oracle.RawOracle, cfg Config, rng *rand.Rand) *openingGenerator {
	return &openingGenerator{raw: raw, mean: cfg.MeanOpeningPlies, max: cfg.MaxOpeningPlies, rng: rng}
}

// play applies between 0 and the drawn number of random plies to state,
// recording them. The state is guaranteed non-terminal on return.
func (o *openingGenerator) play(state game.State, rec *game.Record) error {
	if o.raw == nil || o.mean <= 0 {
		return nil
	}
	plies := clipPly(o.rng.Intn(2*o.mean+1), o.max, o.rng)
	for i := 0; i < plies; i++ {
		policy, err := o.raw.RawPolicy(state, 1.0)
		if err != nil {
			return fmt.Errorf("raw policy at opening ply %d: %w", i, err)
		}
		move := policy.Sample(o.rng)

		// Probe on a copy first: the move must not end the game.
		probe := state.Clone()
		if err := probe.Apply(move); err != nil {
			return fmt.Errorf("probe opening move %q: %w", move, err)
		}
		if probe.Terminal() {
			break
		}
		if err := state.Apply(move); err != nil {
			return fmt.Errorf("apply opening move %q: %w", move, err)
		}
		rec.Append(move)
	}
	return nil
}

// clipPly bounds an opening length at maxPly. Draws above the cap are
// resampled uniformly from [0, maxPly] so the worst-case variance stays
// bounded even when the target keeps growing.
func clipPly(ply, maxPly int, rng *rand.Rand) int {
	if ply <= maxPly {
		return ply
	}
	return rng.Intn(maxPly + 1)
}
