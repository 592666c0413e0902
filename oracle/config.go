package oracle

import "time"

// SearchConfig is the per-move search budget and exploration setting of one
// oracle side. Exactly one nominal instance exists per side; temporary
// overrides (quick search, budget randomization) are restored before the next
// ply.
type SearchConfig struct {
	// Nodes is the search budget in node expansions per move.
	Nodes int
	// MoveTime caps wall-clock time per move; zero means no time cap.
	MoveTime time.Duration
	// NoiseEpsilon weights the exploration noise mixed into the root
	// policy. Zero disables exploration, as used in arena play.
	NoiseEpsilon float64
	// Temperature controls move sampling from the root policy: 1 samples
	// proportionally, 0 picks greedily.
	Temperature float64
}
