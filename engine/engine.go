// Package engine implements exact k-nearest-neighbor search over the record
// store.
//
// Search is a brute-force scan over a point-in-time store snapshot. Scoring
// is chunked across goroutines for large stores; the result is identical to
// a serial scan, so exact top-k correctness is preserved.
package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vexdb/vexdb/distance"
	"github.com/vexdb/vexdb/model"
	"github.com/vexdb/vexdb/store"
)

// parallelThreshold is the snapshot size below which scoring stays serial;
// goroutine fan-out costs more than it saves on small stores.
const parallelThreshold = 2048

// Engine performs exact similarity search over a Store.
type Engine struct {
	store    *store.Store
	maxProcs int
}

// New creates a search engine bound to the given store.
func New(s *store.Store) *Engine {
	return &Engine{
		store:    s,
		maxProcs: runtime.GOMAXPROCS(0),
	}
}

// Search returns the top-k records ranked by the chosen metric.
//
// The query is validated against the configured dimensionality and the
// metric against the known set before any work happens. k <= 0 yields an
// empty result; k greater than the live record count returns all records,
// fully ranked. Ties are broken by insertion order (earlier record first).
func (e *Engine) Search(ctx context.Context, query []float32, k int, m distance.Metric) ([]model.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fn, err := distance.Provider(m)
	if err != nil {
		return nil, err
	}
	if dim := e.store.Dimension(); len(query) != dim {
		return nil, &store.ErrDimensionMismatch{Expected: dim, Actual: len(query)}
	}

	if k <= 0 {
		return []model.SearchResult{}, nil
	}

	snap := e.store.Snapshot()
	n := len(snap)
	if n == 0 {
		return []model.SearchResult{}, nil
	}

	scores := make([]float32, n)
	if n >= parallelThreshold && e.maxProcs > 1 {
		e.scoreParallel(ctx, fn, query, snap, scores)
	} else {
		for i := range snap {
			scores[i] = fn(query, snap[i].Data)
		}
	}

	actualK := k
	if actualK > n {
		actualK = n
	}
	top := newTopK(actualK, m.HigherIsCloser())
	for i := range snap {
		top.push(candidate{id: snap[i].ID, seq: snap[i].Seq, score: scores[i]})
	}

	ranked := top.drain()
	results := make([]model.SearchResult, len(ranked))
	for i, c := range ranked {
		results[i] = model.SearchResult{ID: c.id, Score: c.score}
	}
	return results, nil
}

// scoreParallel fans scoring out over disjoint chunks of the snapshot.
// Workers write to disjoint regions of scores, so no synchronization beyond
// the group wait is needed. Workers run to completion even if ctx is
// cancelled mid-scan; cancellation is a transport concern.
func (e *Engine) scoreParallel(ctx context.Context, fn distance.Func, query []float32, snap []store.SnapshotEntry, scores []float32) {
	g, _ := errgroup.WithContext(ctx)
	n := len(snap)
	chunk := (n + e.maxProcs - 1) / e.maxProcs

	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				scores[i] = fn(query, snap[i].Data)
			}
			return nil
		})
	}

	// Workers never return errors; Wait is used for structured join only.
	_ = g.Wait()
}
