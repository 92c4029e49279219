// Package distance provides the vector score calculations used by vexdb.
//
// # Supported Metrics
//
//   - MetricCosine (0): cosine similarity, higher is closer
//   - MetricEuclidean (1): L2 distance, lower is closer
//   - MetricDotProduct (2): inner product, higher is closer
//   - MetricManhattan (3): L1 distance, lower is closer
//
// The metric set is a closed enumeration; Provider dispatches exhaustively
// and rejects unknown selectors.
//
// # Usage
//
//	fn, err := distance.Provider(distance.MetricCosine)
//	score := fn(a, b)
package distance
