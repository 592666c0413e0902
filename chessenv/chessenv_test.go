package chessenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"selfplay/game"
	"selfplay/oracle"
)

// Scholar's mate, white delivers checkmate on the seventh ply.
var scholarsMate = []game.Move{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"}

func TestProvider(t *testing.T) {
	provider := NewProvider()

	t.Run("creates a standard starting position", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)
		require.False(t, state.Terminal())
		require.Equal(t, game.White, state.SideToMove())
		require.Contains(t, state.String(), "rnbqkbnr", "String should render FEN")
	})

	t.Run("rejects unknown variants", func(t *testing.T) {
		_, err := provider.NewState("crazyhouse")
		require.Error(t, err)
	})

	t.Run("applies legal moves and flips the side to move", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)

		require.NoError(t, state.Apply("e2e4"))
		require.Equal(t, game.Black, state.SideToMove())
	})

	t.Run("rejects illegal moves", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)
		require.Error(t, state.Apply("e2e5"))
	})

	t.Run("detects checkmate", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)
		for _, move := range scholarsMate {
			require.NoError(t, state.Apply(move))
		}
		require.True(t, state.Terminal())
		require.Equal(t, game.WhiteWin, state.Result())
	})

	t.Run("detects threefold repetition", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)

		// Shuffle the knights back and forth until the start position
		// occurs three times.
		shuffle := []game.Move{"g1f3", "g8f6", "f3g1", "f6g8"}
		for i := 0; i < 2; i++ {
			for _, move := range shuffle {
				require.NoError(t, state.Apply(move))
			}
		}
		require.True(t, provider.RepetitionDraw(state))
	})

	t.Run("clones are independent", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)

		clone := state.Clone()
		require.NoError(t, clone.Apply("e2e4"))
		require.Equal(t, game.White, state.SideToMove())
		require.Equal(t, game.Black, clone.SideToMove())
	})
}

func TestHeuristic(t *testing.T) {
	provider := NewProvider()

	t.Run("raw policy covers the legal moves", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)

		h := NewHeuristic(1)
		policy, err := h.RawPolicy(state, 1.0)
		require.NoError(t, err)
		require.Len(t, policy, 20, "Twenty legal moves in the start position")

		sum := 0.0
		for _, prob := range policy {
			sum += prob
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("select move returns a legal move with a bounded value", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)

		h := NewHeuristic(1)
		h.Configure(oracle.SearchConfig{Nodes: 200, Temperature: 1})
		move, policy, value, err := h.SelectMove(state)
		require.NoError(t, err)
		require.Contains(t, policy, move, "The chosen move must carry policy mass")
		require.GreaterOrEqual(t, value, -1.0)
		require.LessOrEqual(t, value, 1.0)
		require.NoError(t, state.Apply(move), "The chosen move must be legal")
	})

	t.Run("greedy selection prefers material", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)
		// Hang the black queen: 1. e4 d5 2. exd5 Qxd5 3. Nc3 and the
		// queen stands attacked; from here white capturing is best.
		for _, move := range []game.Move{"e2e4", "d7d5", "e4d5"} {
			require.NoError(t, state.Apply(move))
		}

		h := NewHeuristic(1)
		h.Configure(oracle.SearchConfig{Nodes: 400, Temperature: 0})
		move, _, _, err := h.SelectMove(state)
		require.NoError(t, err)
		require.Equal(t, game.Move("d8d5"), move, "Recapturing the pawn wins material")
	})

	t.Run("noise flattens the policy", func(t *testing.T) {
		state, err := provider.NewState(game.Standard)
		require.NoError(t, err)

		h := NewHeuristic(1)
		h.Configure(oracle.SearchConfig{Nodes: 100, NoiseEpsilon: 1.0, Temperature: 1})
		_, noisy, _, err := h.SelectMove(state)
		require.NoError(t, err)

		uniform := 1.0 / 20
		for _, prob := range noisy {
			require.InDelta(t, uniform, prob, 1e-9, "Full noise means a uniform policy")
		}
	})
}

func TestPGNWriter(t *testing.T) {
	t.Run("renders algebraic movetext with the recorded result", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "games.pgn")
		w, err := NewPGNWriter(path, "selfplay")
		require.NoError(t, err)

		rec := game.NewRecord(game.Standard)
		rec.Append("e2e4")
		rec.Append("e7e5")
		rec.Finalize(game.Draw)
		require.NoError(t, w.WriteGame(rec))
		require.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		text := string(data)
		require.Contains(t, text, "1. e4 e5")
		require.Contains(t, text, `[Result "1/2-1/2"]`)
		require.Contains(t, text, "1/2-1/2\n")
	})

	t.Run("appends games with increasing round numbers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "games.pgn")
		w, err := NewPGNWriter(path, "arena")
		require.NoError(t, err)

		rec := game.NewRecord(game.Standard)
		rec.Append("e2e4")
		rec.Finalize(game.WhiteWin)
		require.NoError(t, w.WriteGame(rec))
		require.NoError(t, w.WriteGame(rec))
		require.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), `[Round "1"]`)
		require.Contains(t, string(data), `[Round "2"]`)
	})

	t.Run("rejects a record with corrupt moves", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "games.pgn")
		w, err := NewPGNWriter(path, "selfplay")
		require.NoError(t, err)
		defer w.Close()

		rec := game.NewRecord(game.Standard)
		rec.Append("zz9zz")
		require.Error(t, w.WriteGame(rec))
	})
}
