package model

import (
	"github.com/vexdb/vexdb/metadata"
)

// Seq is the monotonically increasing insertion sequence assigned to a
// record when its identifier is first seen. It provides the stable ordering
// used by listings and search tie-breaks.
type Seq uint64

// Record is a stored vector together with its caller-supplied metadata.
//
// Instances returned by the database are copies; mutating them has no effect
// on stored state.
type Record struct {
	ID       string            `json:"id"`
	Data     []float32         `json:"data"`
	Metadata metadata.Document `json:"metadata,omitempty"`
	Seq      Seq               `json:"inserted_at"`
}

// SearchResult is a single ranked match from a similarity search.
type SearchResult struct {
	ID    string  `json:"id"`
	Score float32 `json:"score"`
}

// Stats is a point-in-time snapshot of database statistics.
//
// InsertRequests and SearchRequests count accepted requests only; calls that
// fail validation are not counted. Deletes touch no counter.
type Stats struct {
	VectorCount      int64 `json:"vector_count"`
	Dimensions       int   `json:"dimensions"`
	MemoryUsageBytes int64 `json:"memory_usage_bytes"`
	InsertRequests   int64 `json:"insert_requests"`
	SearchRequests   int64 `json:"search_requests"`
}

// Config is the read-only database configuration.
type Config struct {
	Dimensions int `json:"dimensions"`
}
