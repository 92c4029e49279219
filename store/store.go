// Package store implements the canonical vector record store for vexdb.
//
// The store owns the id -> (data, metadata, sequence) mapping. It is safe
// for concurrent use: writes are serialized, reads proceed concurrently, and
// every read copies data out so callers never alias live store memory.
package store

import (
	"slices"
	"sort"
	"sync"

	"github.com/vexdb/vexdb/metadata"
	"github.com/vexdb/vexdb/model"
)

// record is the internal representation of a stored vector.
//
// A record is immutable once published: upserts install a fresh record value
// instead of mutating in place, so snapshots handed to in-flight searches
// stay consistent without copying vector data.
type record struct {
	id   string
	seq  model.Seq
	data []float32
	meta metadata.Document
}

// Store is an in-memory vector record store with upsert semantics.
type Store struct {
	mu        sync.RWMutex
	dimension int
	byID      map[string]*record
	order     []*record // live records ordered by seq ascending
	nextSeq   model.Seq
}

// New creates a Store for vectors of the given dimensionality.
func New(dimension int) (*Store, error) {
	if dimension <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dimension}
	}
	return &Store{
		dimension: dimension,
		byID:      make(map[string]*record),
	}, nil
}

// Dimension returns the configured vector dimensionality.
func (s *Store) Dimension() int {
	return s.dimension
}

// Insert stores a vector under id, replacing data and metadata atomically if
// the id already exists. The record keeps its original insertion sequence on
// replace. The incoming slice and document are copied; the returned Record is
// an independent copy as well.
func (s *Store) Insert(id string, data []float32, meta metadata.Document) (model.Record, error) {
	if len(data) != s.dimension {
		return model.Record{}, &ErrDimensionMismatch{Expected: s.dimension, Actual: len(data)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &record{
		id:   id,
		data: slices.Clone(data),
		meta: meta.Clone(),
	}

	if prev, ok := s.byID[id]; ok {
		rec.seq = prev.seq
		s.order[s.orderIndex(prev.seq)] = rec
	} else {
		rec.seq = s.nextSeq
		s.nextSeq++
		s.order = append(s.order, rec)
	}
	s.byID[id] = rec

	return rec.materialize(), nil
}

// Get returns a copy of the record stored under id.
func (s *Store) Get(id string) (model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return model.Record{}, ErrNotFound
	}
	return rec.materialize(), nil
}

// Delete removes the record stored under id. Subsequent reads and searches
// never observe it again.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.byID, id)

	i := s.orderIndex(rec.seq)
	s.order = append(s.order[:i], s.order[i+1:]...)
	return nil
}

// List returns up to limit records starting at offset, in insertion order,
// together with the total live record count. Negative bounds are clamped to
// zero; an offset past the end yields an empty slice, not an error.
func (s *Store) List(offset, limit int) ([]model.Record, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.order)
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= total {
		return []model.Record{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]model.Record, 0, end-offset)
	for _, rec := range s.order[offset:end] {
		out = append(out, rec.materialize())
	}
	return out, total
}

// Count returns the current live record count.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// SnapshotEntry is a point-in-time view of a live record used by the search
// engine. Data aliases store memory and must be treated as read-only; this
// is safe because records are immutable once published.
type SnapshotEntry struct {
	ID   string
	Seq  model.Seq
	Data []float32
}

// Snapshot returns a consistent point-in-time view of all live records in
// insertion order. Later inserts, upserts and deletes do not affect the
// returned slice.
func (s *Store) Snapshot() []SnapshotEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make([]SnapshotEntry, len(s.order))
	for i, rec := range s.order {
		snap[i] = SnapshotEntry{ID: rec.id, Seq: rec.seq, Data: rec.data}
	}
	return snap
}

// orderIndex locates the position of seq in the order slice.
// Must be called with the lock held; seq must belong to a live record.
func (s *Store) orderIndex(seq model.Seq) int {
	return sort.Search(len(s.order), func(i int) bool {
		return s.order[i].seq >= seq
	})
}

func (r *record) materialize() model.Record {
	return model.Record{
		ID:       r.id,
		Data:     slices.Clone(r.data),
		Metadata: r.meta.Clone(),
		Seq:      r.seq,
	}
}
