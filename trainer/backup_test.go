package trainer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"selfplay/game"
)

func alternatingPlies(n int, value, noise float64) []PlyInfo {
	plies := make([]PlyInfo, n)
	for i := range plies {
		side := game.White
		if i%2 == 1 {
			side = game.Black
		}
		plies[i] = PlyInfo{Value: value, Noise: noise, Side: side}
	}
	return plies
}

func TestResultBackup(t *testing.T) {
	t.Run("labels every ply from its side's perspective", func(t *testing.T) {
		targets := ResultBackup(game.WhiteWin, alternatingPlies(4, 0.3, 0))
		require.Equal(t, []float64{1, -1, 1, -1}, targets)
	})

	t.Run("draw labels everything zero", func(t *testing.T) {
		targets := ResultBackup(game.Draw, alternatingPlies(3, 0.8, 0))
		require.Equal(t, []float64{0, 0, 0}, targets)
	})
}

func TestBlendedBackup(t *testing.T) {
	t.Run("blends search values inside the trailing window only", func(t *testing.T) {
		backup := BlendedBackup(2, 0.5)
		targets := backup(game.WhiteWin, alternatingPlies(4, 0.4, 0))

		require.Equal(t, 1.0, targets[0], "Outside the window the result alone is the target")
		require.Equal(t, -1.0, targets[1])
		require.InDelta(t, 0.5*1.0+0.5*0.4, targets[2], 1e-9)
		require.InDelta(t, 0.5*-1.0+0.5*0.4, targets[3], 1e-9)
	})

	t.Run("exploration noise shifts trust back to the result", func(t *testing.T) {
		backup := BlendedBackup(2, 0.5)
		noisy := backup(game.WhiteWin, alternatingPlies(2, 0.4, 1.0))

		require.Equal(t, []float64{1, -1}, noisy,
			"Full noise means the search value is ignored")
	})

	t.Run("blend weight is clamped to one", func(t *testing.T) {
		backup := BlendedBackup(1, 2.0)
		targets := backup(game.WhiteWin, alternatingPlies(1, 0.4, 0))

		require.InDelta(t, 0.4, targets[0], 1e-9)
	})

	t.Run("window larger than the game covers every ply", func(t *testing.T) {
		backup := BlendedBackup(100, 0.5)
		targets := backup(game.Draw, alternatingPlies(3, 0.6, 0))

		for _, target := range targets {
			require.InDelta(t, 0.3, target, 1e-9)
		}
	})

	t.Run("zero window degrades to the plain result", func(t *testing.T) {
		backup := BlendedBackup(0, 0.5)
		targets := backup(game.BlackWin, alternatingPlies(2, 0.6, 0))
		require.Equal(t, []float64{-1, 1}, targets)
	})
}
