package game

// Record accumulates one game ply by ply. A single Record is reused across
// games by resetting it during cleanup.
type Record struct {
	Variant Variant
	Moves   []Move
	Result  Result
}

func NewRecord(variant Variant) *Record {
	return &Record{Variant: variant, Result: NoResult}
}

func (r *Record) Append(m Move) {
	r.Moves = append(r.Moves, m)
}

// Finalize stamps the game outcome. Appending after Finalize is a programmer
// error but is not guarded; the generator never does it.
func (r *Record) Finalize(res Result) {
	r.Result = res
}

func (r *Record) PlyCount() int {
	return len(r.Moves)
}

// Reset clears the record for the next game, keeping the variant.
func (r *Record) Reset() {
	r.Moves = r.Moves[:0]
	r.Result = NoResult
}
