package vexdb

import (
	"errors"
	"fmt"

	"github.com/vexdb/vexdb/distance"
	"github.com/vexdb/vexdb/store"
)

var (
	// ErrNotFound is returned when an operation references an unknown
	// vector id.
	ErrNotFound = errors.New("vector not found")

	// ErrEmptyID is returned when an insert is attempted with an empty id.
	ErrEmptyID = errors.New("vector id must not be empty")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates an invalid configured dimensionality.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrInvalidMetric indicates an unrecognized distance metric selector.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidMetric struct {
	Metric int
	cause  error
}

func (e *ErrInvalidMetric) Error() string {
	return fmt.Sprintf("invalid distance metric: %d", e.Metric)
}

func (e *ErrInvalidMetric) Unwrap() error { return e.cause }

// translateError maps internal package errors onto the public error surface.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var dm *store.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var id *store.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrInvalidDimension{Dimension: id.Dimension, cause: err}
	}
	var im *distance.ErrInvalidMetric
	if errors.As(err, &im) {
		return &ErrInvalidMetric{Metric: im.Metric, cause: err}
	}

	return err
}
