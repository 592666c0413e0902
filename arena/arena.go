// Package arena plays evaluation matches between the incumbent oracle and a
// contender to produce a promotion signal. Arena games run without any
// exploration: fixed colors, no noise, greedy move selection, standard
// openings — the outcome should reflect relative strength, not sampling
// variance.
package arena

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"selfplay/game"
	"selfplay/oracle"
)

// TournamentResult tallies a match from the contender's perspective.
// Immutable once returned.
type TournamentResult struct {
	ContenderWins   int
	ContenderLosses int
	Draws           int
}

// NumberOfGames counts only games that actually finished; failed games are
// dropped from the tally.
func (r TournamentResult) NumberOfGames() int {
	return r.ContenderWins + r.ContenderLosses + r.Draws
}

// Score is the contender's match score: 1 per win, 0.5 per draw.
func (r TournamentResult) Score() float64 {
	return float64(r.ContenderWins) + 0.5*float64(r.Draws)
}

func (r TournamentResult) String() string {
	return fmt.Sprintf("+%d -%d =%d (%.1f/%d)",
		r.ContenderWins, r.ContenderLosses, r.Draws, r.Score(), r.NumberOfGames())
}

// Config holds the fixed, exploration-free settings of an arena match.
type Config struct {
	Variant string
	// Search is the per-move budget used by both sides. Its noise and
	// temperature settings are forced to zero for arena play.
	Search oracle.SearchConfig
	// MaxGameLength caps a game at this many plies, scoring it as a draw.
	// Zero means no cap.
	MaxGameLength int
}

// Evaluator runs matches of the incumbent oracle against contenders.
type Evaluator struct {
	incumbent   oracle.Oracle
	provider    game.StateProvider
	cfg         Config
	transcripts game.TranscriptWriter
}

type Option func(*Evaluator)

// WithTranscripts writes every finished arena game to w.
func WithTranscripts(w game.TranscriptWriter) Option {
	return func(e *Evaluator) { e.transcripts = w }
}

func New(incumbent oracle.Oracle, provider game.StateProvider, cfg Config, options ...Option) *Evaluator {
	e := &Evaluator{incumbent: incumbent, provider: provider, cfg: cfg}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays numberOfGames between the contender and the incumbent,
// deterministically alternating who takes white to cancel the first-move
// advantage: the contender is white on even game indices. A failed game is
// logged and skipped without touching the tally of completed games.
func (e *Evaluator) Run(contender oracle.Oracle, numberOfGames int) (TournamentResult, error) {
	var result TournamentResult
	log.Info().Int("games", numberOfGames).Msg("starting arena match")

	for i := 0; i < numberOfGames; i++ {
		contenderIsWhite := i%2 == 0
		white, black := contender, e.incumbent
		if !contenderIsWhite {
			white, black = e.incumbent, contender
		}

		res, err := e.playGame(white, black)
		if err != nil {
			log.Warn().Err(err).Int("game", i).Msg("dropping failed arena game")
			continue
		}

		switch {
		case res == game.Draw:
			result.Draws++
		case (res == game.WhiteWin) == contenderIsWhite:
			result.ContenderWins++
		default:
			result.ContenderLosses++
		}
		log.Info().Int("game", i).Stringer("result", res).Bool("contender_white", contenderIsWhite).Msg("arena game finished")
	}

	log.Info().Stringer("score", result).Msg("arena match finished")
	return result, nil
}

// playGame runs one fixed-color game between two oracles.
func (e *Evaluator) playGame(white, black oracle.Oracle) (game.Result, error) {
	cfg := e.cfg.Search
	cfg.NoiseEpsilon = 0
	cfg.Temperature = 0
	white.Configure(cfg)
	black.Configure(cfg)

	state, err := e.provider.NewState(game.Variant(e.cfg.Variant))
	if err != nil {
		return game.NoResult, fmt.Errorf("create state: %w", err)
	}
	record := game.NewRecord(game.Variant(e.cfg.Variant))
	defer e.cleanup(state, white, black)

	for {
		side := white
		if state.SideToMove() == game.Black {
			side = black
		}
		move, _, _, err := side.SelectMove(state)
		if err != nil {
			return game.NoResult, fmt.Errorf("select move at ply %d: %w", record.PlyCount(), err)
		}
		if err := state.Apply(move); err != nil {
			return game.NoResult, fmt.Errorf("apply move %q: %w", move, err)
		}
		record.Append(move)

		switch {
		case state.Terminal():
			record.Finalize(state.Result())
		case e.provider.RepetitionDraw(state):
			record.Finalize(game.Draw)
		case e.cfg.MaxGameLength > 0 && record.PlyCount() >= e.cfg.MaxGameLength:
			record.Finalize(game.Draw)
		default:
			continue
		}
		break
	}

	if e.transcripts != nil {
		if err := e.transcripts.WriteGame(record); err != nil {
			log.Warn().Err(err).Msg("failed to write arena transcript")
		}
	}
	return record.Result, nil
}

func (e *Evaluator) cleanup(state game.State, white, black oracle.Oracle) {
	e.provider.Retire(state)
	white.ResetHistory()
	black.ResetHistory()
}
