package game

import "errors"

type Color int

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Result is the outcome of a finished game. NoResult marks a game that is
// still in progress or was aborted before termination.
type Result int

const (
	NoResult Result = iota
	WhiteWin
	BlackWin
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWin:
		return "1-0"
	case BlackWin:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Reward maps a result to the training reward from one side's perspective:
// +1 for a win, -1 for a loss, 0 for a draw or an unfinished game.
func (r Result) Reward(c Color) float64 {
	switch {
	case r == Draw || r == NoResult:
		return 0
	case (r == WhiteWin) == (c == White):
		return 1
	default:
		return -1
	}
}

// Move is an engine-agnostic move encoding. The reference environment uses
// UCI notation ("e2e4") but the core only passes moves through.
type Move string

type Variant string

const Standard Variant = "standard"

// State is one live game position. It is owned by the StateProvider that
// created it and mutated only through Apply.
type State interface {
	// Apply plays a move in place.
	Apply(Move) error
	// Terminal reports whether the position ends the game on its own
	// (checkmate, stalemate, or a forced draw rule).
	Terminal() bool
	// Result is the game outcome, NoResult while the game is running.
	Result() Result
	SideToMove() Color
	// Clone returns an independent copy, used to probe candidate moves.
	Clone() State
	// String identifies the position for export and logging.
	String() string
}

// StateProvider creates and retires game states and answers the repetition
// question the position alone cannot (it needs the game history).
type StateProvider interface {
	NewState(Variant) (State, error)
	Retire(State)
	RepetitionDraw(State) bool
}

// TranscriptWriter persists one finished game record. The format is owned by
// the implementation.
type TranscriptWriter interface {
	WriteGame(*Record) error
}

// ErrNoLegalMove is returned by oracles facing a position without moves;
// callers treat it like any other oracle failure and drop the game.
var ErrNoLegalMove = errors.New("no legal move")
