package trainer

import "selfplay/oracle"

// Config holds the self-play generation settings of one orchestrator
// instance.
type Config struct {
	Variant string

	// Search is the nominal full-search configuration. The scheduler
	// restores it after every ply, so overrides never leak between moves.
	Search oracle.SearchConfig

	// MeanOpeningPlies is the expected number of random opening plies per
	// game; each game draws uniformly from [0, 2*mean]. Zero disables
	// randomized openings.
	MeanOpeningPlies int
	// MaxOpeningPlies caps the drawn opening length; draws above the cap
	// are resampled uniformly from [0, max].
	MaxOpeningPlies int

	// MaxGameLength caps a game at this many plies; reaching the cap
	// scores the game as a draw. Zero means no cap.
	MaxGameLength int

	// QuickSearchProb is the probability of replacing a ply's full search
	// with a reduced-budget quick search.
	QuickSearchProb float64
	// QuickSearchNodes is the node budget of a quick search.
	QuickSearchNodes int
	// QuickNoiseEpsilon is the reduced exploration noise used during a
	// quick search.
	QuickNoiseEpsilon float64

	// NodeRandomFactor perturbs the full-search node budget within
	// +-(Nodes*factor)/2 to decorrelate search strength from game index.
	NodeRandomFactor float64
	// MinNodes is the safety floor below which no perturbation may push
	// the budget; violations are clamped silently.
	MinNodes int

	// PolicyClipThreshold sharpens exported policy labels by dropping
	// probability mass below the threshold. Zero disables sharpening.
	PolicyClipThreshold float64

	// BackupWindow and BackupValueWeight parametrize the default value
	// target blend, see BlendedBackup.
	BackupWindow      int
	BackupValueWeight float64

	// Seed initializes this instance's random stream. Zero seeds from the
	// clock.
	Seed uint64
}
