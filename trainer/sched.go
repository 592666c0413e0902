package trainer

import (
	"golang.org/x/exp/rand"

	"selfplay/oracle"
)

// budgetScheduler decides per ply whether to quick-search and how much to
// perturb the node budget. Overrides are applied as a scoped transaction: the
// caller defers the returned restore so the nominal configuration is back in
// place on every exit path, including a game-ending move or an abort.
type budgetScheduler struct {
	base         oracle.SearchConfig
	quickProb    float64
	quickNodes   int
	quickNoise   float64
	randomFactor float64
	minNodes     int
	rng          *rand.Rand
}

func newBudgetScheduler(cfg Config, rng *rand.Rand) *budgetScheduler {
	return &budgetScheduler{
		base:         cfg.Search,
		quickProb:    cfg.QuickSearchProb,
		quickNodes:   cfg.QuickSearchNodes,
		quickNoise:   cfg.QuickNoiseEpsilon,
		randomFactor: cfg.NodeRandomFactor,
		minNodes:     cfg.MinNodes,
		rng:          rng,
	}
}

// apply configures the oracle for this ply and returns the applied
// configuration plus the restore of the nominal one.
func (s *budgetScheduler) apply(o oracle.Oracle) (oracle.SearchConfig, func()) {
	cfg := s.base
	if s.quickProb > 0 && s.rng.Float64() < s.quickProb {
		cfg.Nodes = s.quickNodes
		cfg.NoiseEpsilon = s.quickNoise
	} else if s.randomFactor > 0 {
		cfg.Nodes = perturbNodes(cfg.Nodes, s.randomFactor, s.rng.Int())
	}
	if cfg.Nodes < s.minNodes {
		cfg.Nodes = s.minNodes
	}
	o.Configure(cfg)
	return cfg, func() { o.Configure(s.base) }
}

// perturbNodes shifts the budget by (draw mod span) - span/2 where
// span = nodes*factor, keeping the result within a bounded band around the
// nominal budget.
func perturbNodes(nodes int, factor float64, draw int) int {
	span := int(float64(nodes) * factor)
	if span <= 0 {
		return nodes
	}
	return nodes + draw%span - span/2
}
