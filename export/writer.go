package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"selfplay/game"
	"selfplay/oracle"
)

// shardMeta is the companion metadata record written next to each finalized
// shard so downstream consumers can validate completeness.
type shardMeta struct {
	Run     string `yaml:"run"`
	Shard   int    `yaml:"shard"`
	Games   int    `yaml:"games"`
	Samples int    `yaml:"samples"`
}

type row struct {
	position string
	policy   string
	value    float64
}

// Writer is a CSV shard exporter. Samples accumulate into numbered shard
// files; once a shard reaches shardSize samples it is finalized together with
// a metadata record holding the number of games it contains.
type Writer struct {
	dir       string
	run       string
	shardSize int

	file   *os.File
	csv    *csv.Writer
	shard  int
	opened bool

	pending      []row
	shardGames   int
	shardSamples int
	totalSamples int
}

// NewWriter creates a shard writer rooted at dir. Each writer gets a unique
// run identifier so parallel workers never collide on shard names.
func NewWriter(dir string, shardSize int) (*Writer, error) {
	if shardSize <= 0 {
		return nil, fmt.Errorf("shard size must be positive, got %d", shardSize)
	}
	run := uuid.NewString()[:8]
	base := filepath.Join(dir, run)
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Writer{dir: base, run: run, shardSize: shardSize}, nil
}

func (w *Writer) Submit(s game.State, policy oracle.Policy, searchValue float64) error {
	w.pending = append(w.pending, row{
		position: s.String(),
		policy:   encodePolicy(policy),
		value:    searchValue,
	})
	return nil
}

func (w *Writer) Commit(targets []float64) error {
	if len(targets) != len(w.pending) {
		return fmt.Errorf("got %d value targets for %d pending samples", len(targets), len(w.pending))
	}
	if err := w.ensureShard(); err != nil {
		return err
	}
	for i, r := range w.pending {
		record := []string{
			r.position,
			r.policy,
			strconv.FormatFloat(targets[i], 'g', -1, 64),
		}
		if err := w.csv.Write(record); err != nil {
			return fmt.Errorf("failed to write sample row: %w", err)
		}
	}
	w.shardGames++
	w.shardSamples += len(w.pending)
	w.totalSamples += len(w.pending)
	w.pending = w.pending[:0]

	if w.shardSamples >= w.shardSize {
		return w.finalizeShard()
	}
	return nil
}

func (w *Writer) Abort() {
	w.pending = w.pending[:0]
}

func (w *Writer) SampleCount() int {
	return w.totalSamples
}

func (w *Writer) Close() error {
	if !w.opened {
		return nil
	}
	return w.finalizeShard()
}

func (w *Writer) ensureShard() error {
	if w.opened {
		return nil
	}
	path := filepath.Join(w.dir, w.shardName()+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create shard file: %w", err)
	}
	w.file = f
	w.csv = csv.NewWriter(f)
	w.opened = true
	if err := w.csv.Write([]string{"position", "policy", "value"}); err != nil {
		return fmt.Errorf("failed to write shard header: %w", err)
	}
	return nil
}

func (w *Writer) finalizeShard() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush shard: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close shard: %w", err)
	}

	meta := shardMeta{
		Run:     w.run,
		Shard:   w.shard,
		Games:   w.shardGames,
		Samples: w.shardSamples,
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal shard metadata: %w", err)
	}
	path := filepath.Join(w.dir, w.shardName()+".meta.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write shard metadata: %w", err)
	}

	w.shard++
	w.shardGames = 0
	w.shardSamples = 0
	w.opened = false
	return nil
}

func (w *Writer) shardName() string {
	return fmt.Sprintf("samples_%03d", w.shard)
}

// encodePolicy renders a policy as "move:prob" pairs, sorted by move for a
// stable column value.
func encodePolicy(policy oracle.Policy) string {
	moves := make([]string, 0, len(policy))
	for move := range policy {
		moves = append(moves, string(move))
	}
	sort.Strings(moves)

	parts := make([]string, len(moves))
	for i, move := range moves {
		parts[i] = move + ":" + strconv.FormatFloat(policy[game.Move(move)], 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
