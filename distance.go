package hcluster

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric measures the dissimilarity of two equal-length vectors.
//
// Implementations must be symmetric: Distance(a, b) == Distance(b, a).
// The clustering cache stores one value per unordered pair of nodes, so an
// asymmetric metric silently gets whichever ordering was evaluated first.
// Results should be non-negative.
type DistanceMetric interface {
	Distance(a, b []float64) (float64, error)
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) (float64, error)

func (f DistanceFunc) Distance(a, b []float64) (float64, error) { return f(a, b) }

// checkDims is the shared precondition of every built-in metric.
func checkDims(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return ErrEmptyVector
	}
	return nil
}

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, 2), nil
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, 1), nil
}

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, math.Inf(1)), nil
}

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) (float64, error) {
	if m.P < 1 {
		return 0, fmt.Errorf("hcluster: MinkowskiMetric P must be >= 1, got %v", m.P)
	}
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, m.P), nil
}

// CosineMetric computes the cosine distance: 1 - cosine_similarity.
// A vector with zero norm yields ErrZeroVector.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}
	return 1.0 - floats.Dot(a, b)/(normA*normB), nil
}

// PearsonMetric computes 1 - r, where r is the Pearson correlation of the
// two vectors. Perfectly correlated vectors are at distance 0 and perfectly
// anti-correlated ones at distance 2.
//
// If either vector has zero variance the correlation is undefined and the
// distance is reported as 0.
type PearsonMetric struct{}

func (PearsonMetric) Distance(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	n := float64(len(a))
	sumA := floats.Sum(a)
	sumB := floats.Sum(b)

	// co-variation terms, unnormalized
	varA := floats.Dot(a, a) - sumA*sumA/n
	varB := floats.Dot(b, b) - sumB*sumB/n
	denom := varA * varB
	if denom <= 0 {
		return 0, nil
	}
	cross := floats.Dot(a, b) - sumA*sumB/n
	return 1.0 - cross/math.Sqrt(denom), nil
}

// TanimotoMetric treats vectors as sets of their non-zero positions and
// computes 1 - |a ∩ b| / |a ∪ b|. Two all-zero vectors yield ErrZeroVector.
type TanimotoMetric struct{}

func (TanimotoMetric) Distance(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	var countA, countB, shared int
	for i := range a {
		if a[i] != 0 {
			countA++
		}
		if b[i] != 0 {
			countB++
		}
		if a[i] != 0 && b[i] != 0 {
			shared++
		}
	}
	union := countA + countB - shared
	if union == 0 {
		return 0, ErrZeroVector
	}
	return 1.0 - float64(shared)/float64(union), nil
}

var namedMetrics = map[string]DistanceMetric{
	"euclidean": EuclideanMetric{},
	"manhattan": ManhattanMetric{},
	"chebyshev": ChebyshevMetric{},
	"cosine":    CosineMetric{},
	"pearson":   PearsonMetric{},
	"tanimoto":  TanimotoMetric{},
}

// MetricNames lists the names accepted by MetricByName, sorted.
func MetricNames() []string {
	names := make([]string, 0, len(namedMetrics))
	for name := range namedMetrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MetricByName returns the built-in metric registered under name.
func MetricByName(name string) (DistanceMetric, error) {
	m, ok := namedMetrics[name]
	if !ok {
		return nil, fmt.Errorf("hcluster: unknown metric %q (want one of %v)", name, MetricNames())
	}
	return m, nil
}
