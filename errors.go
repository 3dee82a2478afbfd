package hcluster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every table validation failure.
	ErrInvalidInput = errors.New("hcluster: invalid input")

	// ErrDimensionMismatch is returned when two vectors (or two table rows)
	// have different lengths.
	ErrDimensionMismatch = errors.New("hcluster: dimension mismatch")

	// ErrEmptyVector is returned for zero-length vectors.
	ErrEmptyVector = errors.New("hcluster: empty vector")

	// ErrZeroVector is returned by metrics that divide by a vector norm or
	// count when that quantity is zero.
	ErrZeroVector = errors.New("hcluster: zero vector")

	// ErrNilMetric is returned when no distance metric is configured.
	ErrNilMetric = errors.New("hcluster: nil distance metric")
)

// InputError describes a malformed cell or row in an input table.
// Col is -1 when the problem concerns the whole row.
type InputError struct {
	Row int
	Col int
	Err error
}

func (e *InputError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("hcluster: invalid input at row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("hcluster: invalid input at row %d, column %d: %v", e.Row, e.Col, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Is makes every InputError match ErrInvalidInput in addition to its cause.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// DistanceError carries a failure returned by a DistanceMetric together with
// the ids of the two nodes being compared. The metric's error is kept as-is
// and is reachable through errors.Is and errors.As.
type DistanceError struct {
	A, B int
	Err  error
}

func (e *DistanceError) Error() string {
	return fmt.Sprintf("hcluster: distance(%d, %d): %v", e.A, e.B, e.Err)
}

func (e *DistanceError) Unwrap() error { return e.Err }
