package distance

import (
	"fmt"
	"math"
)

// Metric represents the distance metric used for vector comparison.
//
// The numeric values are part of the wire contract and must not change:
// clients select a metric by integer id.
type Metric int

const (
	MetricCosine Metric = iota
	MetricEuclidean
	MetricDotProduct
	MetricManhattan
)

func (m Metric) String() string {
	switch m {
	case MetricCosine:
		return "cosine"
	case MetricEuclidean:
		return "euclidean"
	case MetricDotProduct:
		return "dot_product"
	case MetricManhattan:
		return "manhattan"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricCosine, MetricEuclidean, MetricDotProduct, MetricManhattan:
		return true
	default:
		return false
	}
}

// HigherIsCloser reports the ranking direction of the metric: true when a
// larger score means a better match (similarity metrics), false when a
// smaller score does (distance metrics).
func (m Metric) HigherIsCloser() bool {
	switch m {
	case MetricCosine, MetricDotProduct:
		return true
	default:
		return false
	}
}

// ErrInvalidMetric indicates an unrecognized metric selector.
type ErrInvalidMetric struct {
	Metric int
}

func (e *ErrInvalidMetric) Error() string {
	return fmt.Sprintf("invalid distance metric: %d", e.Metric)
}

// Func is a function type for score calculation between two vectors.
// Implementations assume equal-length inputs (caller's responsibility);
// use Score for validated dispatch.
type Func func(a, b []float32) float32

// Provider returns the score function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricCosine:
		return CosineSimilarity, nil
	case MetricEuclidean:
		return EuclideanDistance, nil
	case MetricDotProduct:
		return Dot, nil
	case MetricManhattan:
		return ManhattanDistance, nil
	default:
		return nil, &ErrInvalidMetric{Metric: int(m)}
	}
}

// Score validates that a and b have equal length and computes the metric's
// score. It fails with ErrInvalidMetric for an unknown metric and with an
// error for mismatched lengths.
func Score(m Metric, a, b []float32) (float32, error) {
	fn, err := Provider(m)
	if err != nil {
		return 0, err
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("distance: vector lengths differ: %d != %d", len(a), len(b))
	}
	return fn(a, b), nil
}

// Dot calculates the dot product of two vectors.
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// CosineSimilarity calculates the cosine of the angle between two vectors.
// If either vector has zero norm the score is defined as 0.
func CosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (sqrt(normA) * sqrt(normB))
}

// EuclideanDistance calculates the L2 distance between two vectors.
func EuclideanDistance(a, b []float32) float32 {
	return sqrt(SquaredL2(a, b))
}

// SquaredL2 calculates the squared L2 distance between two vectors.
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// ManhattanDistance calculates the L1 distance between two vectors.
func ManhattanDistance(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	return sqrt(sum)
}

func sqrt(f float32) float32 {
	return float32(math.Sqrt(float64(f)))
}
