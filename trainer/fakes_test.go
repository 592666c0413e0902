package trainer

import (
	"errors"
	"fmt"

	"selfplay/game"
	"selfplay/oracle"
)

// fakeState terminates after a fixed number of plies.
type fakeState struct {
	plies      int
	terminalAt int
	result     game.Result
	retired    bool
}

func (s *fakeState) Apply(game.Move) error {
	s.plies++
	return nil
}

func (s *fakeState) Terminal() bool {
	return s.plies >= s.terminalAt
}

func (s *fakeState) Result() game.Result {
	if s.Terminal() {
		return s.result
	}
	return game.NoResult
}

func (s *fakeState) SideToMove() game.Color {
	if s.plies%2 == 0 {
		return game.White
	}
	return game.Black
}

func (s *fakeState) Clone() game.State {
	clone := *s
	return &clone
}

func (s *fakeState) String() string {
	return fmt.Sprintf("pos-%d", s.plies)
}

type fakeProvider struct {
	terminalAt   int
	result       game.Result
	repetitionAt int // 0 = never
	failCreate   bool
	created      []*fakeState
}

func (p *fakeProvider) NewState(game.Variant) (game.State, error) {
	if p.failCreate {
		return nil, errors.New("provider down")
	}
	s := &fakeState{terminalAt: p.terminalAt, result: p.result}
	p.created = append(p.created, s)
	return s, nil
}

func (p *fakeProvider) Retire(s game.State) {
	s.(*fakeState).retired = true
}

func (p *fakeProvider) RepetitionDraw(s game.State) bool {
	return p.repetitionAt > 0 && s.(*fakeState).plies >= p.repetitionAt
}

type fakeOracle struct {
	configs    []oracle.SearchConfig // every Configure call in order
	resets     int
	calls      int
	failAtCall int // 1-based call index that fails; 0 = never
	value      float64
	policy     oracle.Policy
}

func (o *fakeOracle) Configure(cfg oracle.SearchConfig) {
	o.configs = append(o.configs, cfg)
}

func (o *fakeOracle) ResetHistory() {
	o.resets++
}

func (o *fakeOracle) SelectMove(game.State) (game.Move, oracle.Policy, float64, error) {
	o.calls++
	if o.failAtCall > 0 && o.calls == o.failAtCall {
		return "", nil, 0, errors.New("search blew up")
	}
	policy := o.policy
	if policy == nil {
		policy = oracle.Policy{"a2a3": 0.9, "b2b3": 0.1}
	}
	return "a2a3", policy, o.value, nil
}

func (o *fakeOracle) lastConfig() oracle.SearchConfig {
	return o.configs[len(o.configs)-1]
}

type fakeRawOracle struct {
	policy oracle.Policy
	err    error
}

func (o *fakeRawOracle) RawPolicy(game.State, float64) (oracle.Policy, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.policy, nil
}

type fakeExporter struct {
	pending   int
	policies  []oracle.Policy
	committed [][]float64
	aborted   int
	total     int
	closed    bool
}

func (e *fakeExporter) Submit(s game.State, policy oracle.Policy, searchValue float64) error {
	e.pending++
	e.policies = append(e.policies, policy)
	return nil
}

func (e *fakeExporter) Commit(targets []float64) error {
	if len(targets) != e.pending {
		return fmt.Errorf("got %d targets for %d pending", len(targets), e.pending)
	}
	e.committed = append(e.committed, targets)
	e.total += len(targets)
	e.pending = 0
	return nil
}

func (e *fakeExporter) Abort() {
	e.pending = 0
	e.aborted++
}

func (e *fakeExporter) SampleCount() int {
	return e.total
}

func (e *fakeExporter) Close() error {
	e.closed = true
	return nil
}

type fakeTranscripts struct {
	results []game.Result
	plies   []int
}

func (w *fakeTranscripts) WriteGame(rec *game.Record) error {
	w.results = append(w.results, rec.Result)
	w.plies = append(w.plies, rec.PlyCount())
	return nil
}
