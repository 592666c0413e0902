package trainer

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"selfplay/game"
	"selfplay/oracle"
)

// generateGame plays one self-play game end to end and returns the number of
// samples it committed. On error the game's pending samples are discarded;
// cleanup runs on every path.
func (t *Trainer) generateGame() (int, error) {
	samples, err := t.playGame()
	if err != nil {
		t.exporter.Abort()
		return 0, err
	}
	return samples, nil
}

func (t *Trainer) playGame() (int, error) {
	state, err := t.provider.NewState(game.Variant(t.cfg.Variant))
	if err != nil {
		return 0, fmt.Errorf("create state: %w", err)
	}
	defer t.cleanup(state)

	if err := t.opening.play(state, t.record); err != nil {
		return 0, fmt.Errorf("randomized opening: %w", err)
	}

	var plies []PlyInfo
	for {
		move, policy, value, applied, err := t.searchMove(state)
		if err != nil {
			return 0, fmt.Errorf("select move at ply %d: %w", t.record.PlyCount(), err)
		}

		label := policy
		if t.cfg.PolicyClipThreshold > 0 {
			label = policy.Sharpen(t.cfg.PolicyClipThreshold)
		}
		if err := t.exporter.Submit(state, label, value); err != nil {
			return 0, fmt.Errorf("submit sample: %w", err)
		}
		plies = append(plies, PlyInfo{Value: value, Noise: applied.NoiseEpsilon, Side: state.SideToMove()})

		if err := state.Apply(move); err != nil {
			return 0, fmt.Errorf("apply move %q: %w", move, err)
		}
		t.record.Append(move)

		if done := t.checkTermination(state); done {
			break
		}
	}

	targets := t.backup(t.record.Result, plies)
	if err := t.exporter.Commit(targets); err != nil {
		return 0, fmt.Errorf("commit samples: %w", err)
	}
	if t.transcripts != nil {
		if err := t.transcripts.WriteGame(t.record); err != nil {
			// The samples are already committed; losing a transcript is
			// not worth dropping the game over.
			log.Warn().Err(err).Msg("failed to write transcript")
		}
	}
	return len(plies), nil
}

// searchMove runs one scheduled full search. The scheduler's restore is
// deferred so the nominal configuration is back even when the search fails or
// the move ends the game.
func (t *Trainer) searchMove(state game.State) (game.Move, oracle.Policy, float64, oracle.SearchConfig, error) {
	applied, restore := t.sched.apply(t.full)
	defer restore()
	move, policy, value, err := t.full.SelectMove(state)
	return move, policy, value, applied, err
}

// checkTermination finalizes the record if the game is over: a terminal
// position, a repetition draw from the provider, or the ply cap (scored as a
// draw).
func (t *Trainer) checkTermination(state game.State) bool {
	switch {
	case state.Terminal():
		t.record.Finalize(state.Result())
	case t.provider.RepetitionDraw(state):
		t.record.Finalize(game.Draw)
	case t.cfg.MaxGameLength > 0 && t.record.PlyCount() >= t.cfg.MaxGameLength:
		t.record.Finalize(game.Draw)
	default:
		return false
	}
	return true
}

// cleanup retires the game state, clears the oracle's per-game history and
// resets the record. Runs after every game on every exit path; skipping it
// would leak repetition or search-tree state into the next game.
func (t *Trainer) cleanup(state game.State) {
	t.provider.Retire(state)
	t.full.ResetHistory()
	t.record.Reset()
}
