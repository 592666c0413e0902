package chessenv

import (
	"fmt"
	"math"

	"github.com/notnil/chess"
	"golang.org/x/exp/rand"

	"selfplay/game"
	"selfplay/oracle"
)

// Material values in centipawns.
var pieceValues = map[chess.PieceType]float64{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
}

const (
	// softmaxScale converts a centipawn edge into policy probability mass.
	softmaxScale = 200.0
	// valueScale squashes a centipawn score into the [-1, 1] value range.
	valueScale = 300.0
	mateScore  = 10000.0
)

// Heuristic is a cheap material-based oracle implementing both the full and
// raw oracle interfaces. Its node budget controls how many opponent replies
// it samples per candidate move, so a bigger budget genuinely searches more.
type Heuristic struct {
	cfg oracle.SearchConfig
	rng *rand.Rand
}

func NewHeuristic(seed uint64) *Heuristic {
	return &Heuristic{
		cfg: oracle.SearchConfig{Nodes: 100, Temperature: 1},
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (h *Heuristic) Configure(cfg oracle.SearchConfig) {
	h.cfg = cfg
}

// ResetHistory is a no-op: the heuristic keeps no tree or position history
// between moves.
func (h *Heuristic) ResetHistory() {}

func (h *Heuristic) SelectMove(s game.State) (game.Move, oracle.Policy, float64, error) {
	pos, err := position(s)
	if err != nil {
		return "", nil, 0, err
	}
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return "", nil, 0, game.ErrNoLegalMove
	}

	perMove := 1
	if h.cfg.Nodes > len(moves) {
		perMove = h.cfg.Nodes / len(moves)
	}

	scores := make([]float64, len(moves))
	best := math.Inf(-1)
	for i, move := range moves {
		scores[i] = h.scoreMove(pos, move, perMove)
		if scores[i] > best {
			best = scores[i]
		}
	}

	policy := h.policyFromScores(pos, moves, scores)
	if h.cfg.NoiseEpsilon > 0 {
		mixUniformNoise(policy, h.cfg.NoiseEpsilon)
	}

	var chosen game.Move
	if h.cfg.Temperature <= 0 {
		chosen = policy.Best()
	} else {
		chosen = policy.Sample(h.rng)
	}
	return chosen, policy, math.Tanh(best / valueScale), nil
}

func (h *Heuristic) RawPolicy(s game.State, temperature float64) (oracle.Policy, error) {
	pos, err := position(s)
	if err != nil {
		return nil, err
	}
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, game.ErrNoLegalMove
	}

	scores := make([]float64, len(moves))
	for i, move := range moves {
		scores[i] = h.scoreMove(pos, move, 1)
	}
	policy := h.policyFromScores(pos, moves, scores)

	if temperature > 0 && temperature != 1 {
		exponent := 1.0 / temperature
		for move, prob := range policy {
			policy[move] = math.Pow(prob, exponent)
		}
		policy.Normalize()
	}
	return policy, nil
}

// scoreMove evaluates a candidate in centipawns from the mover's perspective,
// pessimistically assuming the strongest of the sampled opponent replies.
func (h *Heuristic) scoreMove(pos *chess.Position, move *chess.Move, replies int) float64 {
	after := pos.Update(move)
	switch after.Status() {
	case chess.Checkmate:
		return mateScore
	case chess.Stalemate:
		return 0
	}

	counters := after.ValidMoves()
	if len(counters) == 0 {
		return -material(after)
	}
	if replies > len(counters) {
		replies = len(counters)
	}

	worst := math.Inf(1)
	for i := 0; i < replies; i++ {
		reply := counters[h.rng.Intn(len(counters))]
		final := after.Update(reply)
		if final.Status() == chess.Checkmate {
			return -mateScore
		}
		// material is relative to the side to move, which is the mover
		// again after the reply.
		if score := material(final); score < worst {
			worst = score
		}
	}
	return worst
}

func (h *Heuristic) policyFromScores(pos *chess.Position, moves []*chess.Move, scores []float64) oracle.Policy {
	maxScore := math.Inf(-1)
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}

	policy := make(oracle.Policy, len(moves))
	notation := chess.UCINotation{}
	for i, move := range moves {
		weight := math.Exp((scores[i] - maxScore) / softmaxScale)
		policy[game.Move(notation.Encode(pos, move))] = weight
	}
	policy.Normalize()
	return policy
}

// material scores the position in centipawns from the side to move's
// perspective.
func material(pos *chess.Position) float64 {
	score := 0.0
	for _, piece := range pos.Board().SquareMap() {
		value := pieceValues[piece.Type()]
		if piece.Color() == chess.White {
			score += value
		} else {
			score -= value
		}
	}
	if pos.Turn() == chess.Black {
		score = -score
	}
	return score
}

// mixUniformNoise blends a uniform distribution into the policy with weight
// epsilon, the reference stand-in for root exploration noise.
func mixUniformNoise(policy oracle.Policy, epsilon float64) {
	uniform := 1.0 / float64(len(policy))
	for move, prob := range policy {
		policy[move] = (1-epsilon)*prob + epsilon*uniform
	}
}

func position(s game.State) (*chess.Position, error) {
	cs, ok := s.(*chessState)
	if !ok {
		return nil, fmt.Errorf("state %T is not a chess state", s)
	}
	return cs.game.Position(), nil
}
