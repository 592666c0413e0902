// Package chessenv is the reference environment: a chess state provider,
// heuristic oracles and a PGN transcript writer built on notnil/chess. It
// exists so the generation core can run and be exercised end to end without a
// neural network behind the oracle interfaces.
package chessenv

import (
	"fmt"

	"github.com/notnil/chess"

	"selfplay/game"
)

// Provider creates and retires chess game states.
type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) NewState(variant game.Variant) (game.State, error) {
	if variant != game.Standard {
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	return &chessState{game: chess.NewGame()}, nil
}

// Retire releases a state. The chess game carries no external resources, so
// this only severs the provider's interest in it.
func (p *Provider) Retire(s game.State) {}

// RepetitionDraw reports whether the position may be claimed drawn by
// threefold repetition. Automatic draws (fivefold, 75-move rule) terminate
// the state on their own.
func (p *Provider) RepetitionDraw(s game.State) bool {
	cs, ok := s.(*chessState)
	if !ok {
		return false
	}
	for _, method := range cs.game.EligibleDraws() {
		if method == chess.ThreefoldRepetition {
			return true
		}
	}
	return false
}

// chessState adapts a notnil/chess game, which tracks the full move history
// needed for repetition detection.
type chessState struct {
	game *chess.Game
}

func (s *chessState) Apply(m game.Move) error {
	move, err := chess.UCINotation{}.Decode(s.game.Position(), string(m))
	if err != nil {
		return fmt.Errorf("decode move %q: %w", m, err)
	}
	if err := s.game.Move(move); err != nil {
		return fmt.Errorf("illegal move %q: %w", m, err)
	}
	return nil
}

func (s *chessState) Terminal() bool {
	return s.game.Outcome() != chess.NoOutcome
}

func (s *chessState) Result() game.Result {
	switch s.game.Outcome() {
	case chess.WhiteWon:
		return game.WhiteWin
	case chess.BlackWon:
		return game.BlackWin
	case chess.Draw:
		return game.Draw
	default:
		return game.NoResult
	}
}

func (s *chessState) SideToMove() game.Color {
	if s.game.Position().Turn() == chess.White {
		return game.White
	}
	return game.Black
}

func (s *chessState) Clone() game.State {
	return &chessState{game: s.game.Clone()}
}

// String returns the position in FEN, which is what gets exported alongside
// policy and value targets.
func (s *chessState) String() string {
	return s.game.Position().String()
}
