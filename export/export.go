// Package export turns generated positions into training-sample shards.
package export

import (
	"selfplay/game"
	"selfplay/oracle"
)

// Exporter collects (position, policy target, value target) tuples. Positions
// are submitted while a game runs with their value targets still pending;
// the generator resolves the targets at game end and commits, or aborts and
// the pending positions are dropped.
type Exporter interface {
	// Submit buffers one pending position of the current game. The state
	// is encoded immediately; callers may mutate it afterwards.
	Submit(s game.State, policy oracle.Policy, searchValue float64) error
	// Commit resolves the pending positions with their final value
	// targets, targets[i] belonging to the i-th submitted position, and
	// makes them part of the current shard.
	Commit(targets []float64) error
	// Abort drops all pending positions of the current game.
	Abort()
	// SampleCount is the number of committed samples since creation.
	SampleCount() int
	// Close finalizes the open shard and its metadata.
	Close() error
}
