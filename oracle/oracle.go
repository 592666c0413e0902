// Package oracle defines the move-selection collaborators of the self-play
// core: a full-search oracle that returns a move with policy and value
// estimates, and a cheap raw oracle used for opening diversification.
package oracle

import (
	"sort"

	"golang.org/x/exp/rand"

	"selfplay/game"
)

// Policy is a probability distribution over legal moves.
type Policy map[game.Move]float64

// Oracle is a long-lived full-search move selector. Its internal search state
// survives across moves within a game and must be cleared between games via
// ResetHistory.
type Oracle interface {
	// Configure replaces the oracle's search configuration. The new
	// configuration applies to every subsequent SelectMove call.
	Configure(SearchConfig)
	// SelectMove searches the position and returns the chosen move, the
	// root policy distribution, and a value estimate in [-1, 1] from the
	// side to move's perspective.
	SelectMove(game.State) (game.Move, Policy, float64, error)
	// ResetHistory clears per-game internal state (search tree, position
	// history). Called during cleanup after every game.
	ResetHistory()
}

// RawOracle evaluates a position without search, returning the raw network
// policy adjusted by a sampling temperature.
type RawOracle interface {
	RawPolicy(s game.State, temperature float64) (Policy, error)
}

// Normalize rescales the distribution to sum to 1 in place.
func (p Policy) Normalize() {
	sum := 0.0
	for _, prob := range p {
		sum += prob
	}
	if sum == 0 {
		return
	}
	for move := range p {
		p[move] /= sum
	}
}

// Best returns the highest-probability move.
func (p Policy) Best() game.Move {
	var maxMove game.Move
	maxProb := -1.0
	for move, prob := range p {
		if prob > maxProb {
			maxProb = prob
			maxMove = move
		}
	}
	return maxMove
}

// Sample draws a move proportionally to its probability.
func (p Policy) Sample(rng *rand.Rand) game.Move {
	sampled := rng.Float64()
	cumulative := 0.0
	var lastMove game.Move
	for _, move := range p.sortedMoves() {
		lastMove = move
		cumulative += p[move]
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}

// Sharpen zeroes all probability mass below threshold and renormalizes,
// removing residual exploration noise from an exported label. The receiver is
// left untouched; sharpening never affects the move actually played.
func (p Policy) Sharpen(threshold float64) Policy {
	sharpened := make(Policy, len(p))
	for move, prob := range p {
		if prob >= threshold {
			sharpened[move] = prob
		}
	}
	if len(sharpened) == 0 {
		// Everything fell below the threshold; keep the single best move.
		sharpened[p.Best()] = 1
		return sharpened
	}
	sharpened.Normalize()
	return sharpened
}

// sortedMoves fixes an iteration order so sampling is reproducible for a
// seeded generator.
func (p Policy) sortedMoves() []game.Move {
	moves := make([]game.Move, 0, len(p))
	for move := range p {
		moves = append(moves, move)
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i] < moves[j] })
	return moves
}
