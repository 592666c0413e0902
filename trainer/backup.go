package trainer

import "selfplay/game"

// PlyInfo is what the value-backup policy may observe per generated ply.
type PlyInfo struct {
	// Value is the search value estimate at this ply, from the side to
	// move's perspective.
	Value float64
	// Noise is the exploration noise weight that was active at this ply.
	Noise float64
	// Side is the color to move at this ply.
	Side game.Color
}

// BackupPolicy resolves the per-ply value targets of one finished game from
// its final result. The exact blending formula is a tunable training choice,
// so it is swappable rather than fixed.
type BackupPolicy func(result game.Result, plies []PlyInfo) []float64

// ResultBackup labels every ply with the final result alone.
func ResultBackup(result game.Result, plies []PlyInfo) []float64 {
	targets := make([]float64, len(plies))
	for i, ply := range plies {
		targets[i] = result.Reward(ply.Side)
	}
	return targets
}

// BlendedBackup backs the final result up across a trailing window of plies,
// blending each windowed ply's own search value into its target with weight
// valueWeight. The blend is scaled down by the exploration noise present at
// that ply: the noisier the search, the more the target leans on the game
// outcome.
func BlendedBackup(window int, valueWeight float64) BackupPolicy {
	return func(result game.Result, plies []PlyInfo) []float64 {
		targets := ResultBackup(result, plies)
		if window <= 0 || valueWeight <= 0 {
			return targets
		}
		start := len(plies) - window
		if start < 0 {
			start = 0
		}
		for i := start; i < len(plies); i++ {
			w := valueWeight * (1 - plies[i].Noise)
			if w < 0 {
				w = 0
			} else if w > 1 {
				w = 1
			}
			targets[i] = (1-w)*targets[i] + w*plies[i].Value
		}
		return targets
	}
}
