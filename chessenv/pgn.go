package chessenv

import (
	"fmt"
	"os"
	"strings"

	"github.com/notnil/chess"

	"selfplay/game"
)

// PGNWriter appends finished games to a single PGN file, one game per
//WriteGame call.
type PGNWriter struct {
	file  *os.File
	event string
	count int
}

func NewPGNWriter(path, event string) (*PGNWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open pgn file: %w", err)
	}
	return &PGNWriter{file: f, event: event}, nil
}

func (w *PGNWriter) WriteGame(rec *game.Record) error {
	text, err := encodePGN(rec, w.event, w.count+1)
	if err != nil {
		return err
	}
	if _, err := w.file.WriteString(text); err != nil {
		return fmt.Errorf("failed to append game: %w", err)
	}
	w.count++
	return nil
}

func (w *PGNWriter) Close() error {
	return w.file.Close()
}

// encodePGN replays the recorded moves to render standard algebraic movetext.
// The result tag comes from the record, not the replayed game, so draws by
// ply cap keep their score.
func encodePGN(rec *game.Record, event string, round int) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[Event %q]\n[Round \"%d\"]\n[Variant %q]\n[Result %q]\n\n",
		event, round, string(rec.Variant), rec.Result.String())

	g := chess.NewGame()
	uci := chess.UCINotation{}
	san := chess.AlgebraicNotation{}
	for i, m := range rec.Moves {
		move, err := uci.Decode(g.Position(), string(m))
		if err != nil {
			return "", fmt.Errorf("replay move %d (%q): %w", i, m, err)
		}
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d. ", i/2+1)
		}
		sb.WriteString(san.Encode(g.Position(), move))
		sb.WriteString(" ")
		if err := g.Move(move); err != nil {
			return "", fmt.Errorf("replay move %d (%q): %w", i, m, err)
		}
	}
	sb.WriteString(rec.Result.String())
	sb.WriteString("\n\n")
	return sb.String(), nil
}
