package search

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/dpojoga/chessflow/internal/chess"
)

// NodeType classifies how a stored score relates to the search window
// that produced it.
type NodeType uint8

const (
	Exact NodeType = iota
	LowerBound
	UpperBound
)

// Entry is a transposition-table value: score, the depth at which it
// was stored, its node type, and the best move found (if any), all
// relative to the side to move at the stored position (negamax
// convention — see DESIGN.md).
type Entry struct {
	Score    int32
	Depth    int
	Type     NodeType
	BestMove chess.Move
}

// TranspositionTable caches search results keyed by Zobrist hash. Two
// backends are provided: mapTT (deterministic, used by tests and
// perft-adjacent work) and ristrettoTT (bounded, concurrent-safe,
// the production default — spec.md §5 explicitly allows substituting
// a fixed-size table for the conceptually-unbounded map).
type TranspositionTable interface {
	Probe(hash uint64) (Entry, bool)
	Store(hash uint64, e Entry)
	Clear()
}

// mapTT is an unbounded, deterministic transposition table backed by a
// plain Go map. The search worker is its only accessor (spec.md §5),
// so no locking is required.
type mapTT struct {
	table map[uint64]Entry
}

// NewMapTranspositionTable returns the deterministic map-backed TT.
func NewMapTranspositionTable() TranspositionTable {
	return &mapTT{table: make(map[uint64]Entry, 1<<16)}
}

func (t *mapTT) Probe(hash uint64) (Entry, bool) {
	e, ok := t.table[hash]
	return e, ok
}

func (t *mapTT) Store(hash uint64, e Entry) {
	t.table[hash] = e
}

func (t *mapTT) Clear() {
	t.table = make(map[uint64]Entry, 1<<16)
}

// ristrettoTT is the bounded, "always admit, evict by estimated value"
// production backend.
type ristrettoTT struct {
	cache *ristretto.Cache[uint64, Entry]
}

// NewRistrettoTranspositionTable builds a bounded in-memory TT sized
// for roughly maxCostBytes worth of entries. This is a cache, not
// persistent storage — it holds no state across process restarts,
// consistent with spec.md's "no persistent storage" non-goal.
func NewRistrettoTranspositionTable(maxCostBytes int64) (TranspositionTable, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, Entry]{
		NumCounters: maxCostBytes / ristrettoEntryCost * 10, // ~10x the number of entries we expect to hold
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &ristrettoTT{cache: cache}, nil
}

const ristrettoEntryCost = 32 // rough size of one Entry plus bookkeeping

func (t *ristrettoTT) Probe(hash uint64) (Entry, bool) {
	return t.cache.Get(hash)
}

func (t *ristrettoTT) Store(hash uint64, e Entry) {
	t.cache.Set(hash, e, ristrettoEntryCost)
}

func (t *ristrettoTT) Clear() {
	t.cache.Clear()
}
