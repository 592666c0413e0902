package trainer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"selfplay/oracle"
)

func schedulerConfig() Config {
	return Config{
		Search:            oracle.SearchConfig{Nodes: 800, NoiseEpsilon: 0.25, Temperature: 1},
		QuickSearchProb:   0,
		QuickSearchNodes:  100,
		QuickNoiseEpsilon: 0.1,
		NodeRandomFactor:  0,
		MinNodes:          50,
	}
}

func TestBudgetScheduler(t *testing.T) {
	t.Run("quick search overrides budget and noise", func(t *testing.T) {
		cfg := schedulerConfig()
		cfg.QuickSearchProb = 1.0
		sched := newBudgetScheduler(cfg, rand.New(rand.NewSource(1)))
		o := &fakeOracle{}

		applied, restore := sched.apply(o)
		restore()

		require.Equal(t, 100, applied.Nodes, "Quick search should use the quick node budget")
		require.Equal(t, 0.1, applied.NoiseEpsilon, "Quick search should use the reduced noise")
	})

	t.Run("restore reinstates the nominal configuration", func(t *testing.T) {
		cfg := schedulerConfig()
		cfg.QuickSearchProb = 0.5
		cfg.NodeRandomFactor = 0.5
		sched := newBudgetScheduler(cfg, rand.New(rand.NewSource(7)))
		o := &fakeOracle{}

		// Exercise the quick, randomized and plain branches.
		for i := 0; i < 200; i++ {
			_, restore := sched.apply(o)
			restore()
			require.Equal(t, cfg.Search, o.lastConfig(),
				"Nominal configuration should be back after every restore")
		}
	})

	t.Run("perturbed budget never drops below the floor", func(t *testing.T) {
		cfg := schedulerConfig()
		cfg.Search.Nodes = 60
		cfg.NodeRandomFactor = 3.0 // Wild perturbation to force floor hits
		sched := newBudgetScheduler(cfg, rand.New(rand.NewSource(42)))
		o := &fakeOracle{}

		for i := 0; i < 5000; i++ {
			applied, restore := sched.apply(o)
			restore()
			require.GreaterOrEqual(t, applied.Nodes, cfg.MinNodes,
				"Budget must be clamped to the safety floor")
		}
	})

	t.Run("perturbation stays within the configured band", func(t *testing.T) {
		for draw := 0; draw < 1000; draw++ {
			got := perturbNodes(800, 0.25, draw)
			require.GreaterOrEqual(t, got, 800-100, "Perturbation below the band")
			require.LessOrEqual(t, got, 800+100, "Perturbation above the band")
		}
	})

	t.Run("zero factor leaves the budget alone", func(t *testing.T) {
		require.Equal(t, 800, perturbNodes(800, 0, 12345))
	})
}
