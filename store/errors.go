package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references an unknown record id.
var ErrNotFound = errors.New("record not found")

// ErrDimensionMismatch indicates a vector whose length does not match the
// store's configured dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimensionality.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}
