// Package vexdb provides an embedded in-memory vector database for Go.
//
// Vexdb stores fixed-dimensionality float32 vectors with opaque metadata and
// serves exact k-nearest-neighbor search under four selectable metrics:
//
//   - Cosine similarity (higher is closer)
//   - Euclidean distance (lower is closer)
//   - Dot product (higher is closer)
//   - Manhattan distance (lower is closer)
//
// # Quick Start
//
//	ctx := context.Background()
//	db, err := vexdb.New(4)
//	if err != nil {
//	    panic(err)
//	}
//
//	_, err = db.Insert(ctx, "a", []float32{1, 0, 0, 0}, metadata.Document{
//	    "category": metadata.String("tech"),
//	})
//
//	results, err := db.Search(ctx, []float32{1, 0, 0, 0}, 2, distance.MetricCosine)
//
// # Semantics
//
// Insert upserts: re-inserting an existing id replaces its data and metadata
// atomically while keeping the record's original position in listings.
// Deletes take effect immediately. Searches rank against a consistent
// point-in-time snapshot; ties are broken by insertion order. Insert and
// search requests are counted in Stats; deletes are not.
//
// All operations are safe for concurrent use.
package vexdb

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vexdb/vexdb/distance"
	"github.com/vexdb/vexdb/engine"
	"github.com/vexdb/vexdb/metadata"
	"github.com/vexdb/vexdb/model"
	"github.com/vexdb/vexdb/store"
)

// recordOverheadBytes is the rough per-record bookkeeping cost (map entry,
// record header, metadata) used by the memory usage estimate.
const recordOverheadBytes = 100

// DB is an in-memory vector database.
type DB struct {
	opts      options
	dimension int
	store     *store.Store
	engine    *engine.Engine

	insertRequests atomic.Int64
	searchRequests atomic.Int64
}

// New creates a database for vectors of the given dimensionality.
func New(dimension int, optFns ...Option) (*DB, error) {
	opts := applyOptions(optFns)

	s, err := store.New(dimension)
	if err != nil {
		return nil, translateError(err)
	}

	return &DB{
		opts:      opts,
		dimension: dimension,
		store:     s,
		engine:    engine.New(s),
	}, nil
}

// Insert stores a vector under id with the given metadata, replacing any
// existing record with that id (upsert). The insert counter is incremented
// exactly once on success and not at all on validation failure.
func (db *DB) Insert(ctx context.Context, id string, data []float32, meta metadata.Document) (model.Record, error) {
	if err := ctx.Err(); err != nil {
		return model.Record{}, err
	}
	if id == "" {
		return model.Record{}, ErrEmptyID
	}

	start := time.Now()
	rec, err := db.store.Insert(id, data, meta)
	db.opts.metricsCollector.RecordInsert(time.Since(start), err)
	db.opts.logger.LogInsert(ctx, id, len(data), err)
	if err != nil {
		return model.Record{}, translateError(err)
	}

	db.insertRequests.Add(1)
	return rec, nil
}

// Get returns a copy of the record stored under id.
func (db *DB) Get(ctx context.Context, id string) (model.Record, error) {
	if err := ctx.Err(); err != nil {
		return model.Record{}, err
	}

	rec, err := db.store.Get(id)
	if err != nil {
		return model.Record{}, translateError(err)
	}
	return rec, nil
}

// Delete removes the record stored under id. No request counter changes.
func (db *DB) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := db.store.Delete(id)
	db.opts.metricsCollector.RecordDelete(time.Since(start), err)
	db.opts.logger.LogDelete(ctx, id, err)
	return translateError(err)
}

// List returns records in insertion order together with the total live
// count. A non-positive limit falls back to the configured maximum; limits
// above the maximum are clamped. An offset past the end yields an empty
// slice.
func (db *DB) List(ctx context.Context, offset, limit int) ([]model.Record, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > db.opts.maxListLimit {
		limit = db.opts.maxListLimit
	}
	records, total := db.store.List(offset, limit)
	return records, total, nil
}

// Search returns the top-k records ranked by the chosen metric. The search
// counter is incremented exactly once per accepted call, after validation.
func (db *DB) Search(ctx context.Context, query []float32, k int, m distance.Metric) ([]model.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := db.engine.Search(ctx, query, k, m)
	db.opts.metricsCollector.RecordSearch(k, time.Since(start), err)
	db.opts.logger.LogSearch(ctx, k, len(results), err)
	if err != nil {
		return nil, translateError(err)
	}

	db.searchRequests.Add(1)
	return results, nil
}

// Count returns the current live record count.
func (db *DB) Count() int {
	return db.store.Count()
}

// Stats returns a point-in-time statistics snapshot.
func (db *DB) Stats() model.Stats {
	count := int64(db.store.Count())
	return model.Stats{
		VectorCount:      count,
		Dimensions:       db.dimension,
		MemoryUsageBytes: count * (int64(db.dimension)*4 + recordOverheadBytes),
		InsertRequests:   db.insertRequests.Load(),
		SearchRequests:   db.searchRequests.Load(),
	}
}

// Config returns the read-only database configuration.
func (db *DB) Config() model.Config {
	return model.Config{Dimensions: db.dimension}
}
