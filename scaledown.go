package hcluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// scaleRate is the gradient descent step size used by Scaledown.
const scaleRate = 0.01

var errIterations = errors.New("hcluster: iterations must be positive")

// Scaledown lays the rows of table out as points in the plane, placing them
// so that the Euclidean distance between two points approximates metric's
// distance between the corresponding rows (multidimensional scaling).
//
// Points start at random positions in the unit square drawn from rng and are
// moved by gradient descent on the relative distance error for at most
// iterations rounds. Descent stops early once the error no longer shrinks,
// and the lowest-error layout seen is returned. A nil rng uses a source
// seeded with 1. An empty table yields nil.
//
// Pairs of rows at distance 0 have no relative error and do not move each
// other.
func Scaledown(table [][]float64, metric DistanceMetric, iterations int, rng *rand.Rand) ([][2]float64, error) {
	if metric == nil {
		return nil, ErrNilMetric
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("%w, got %d", errIterations, iterations)
	}
	if len(table) == 0 {
		return nil, nil
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	target, err := pairDistances(table, metric)
	if err != nil {
		return nil, err
	}

	points := make([][2]float64, len(table))
	for i := range points {
		points[i] = [2]float64{rng.Float64(), rng.Float64()}
	}
	return descend(points, target, iterations), nil
}

// pairDistances evaluates metric on every pair of rows. The result is
// symmetric with a zero diagonal.
func pairDistances(table [][]float64, metric DistanceMetric) ([][]float64, error) {
	n := len(table)
	target := make([][]float64, n)
	for i := range target {
		target[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d, err := metric.Distance(table[i], table[j])
			if err != nil {
				return nil, &DistanceError{A: i, B: j, Err: err}
			}
			target[i][j] = d
			target[j][i] = d
		}
	}
	return target, nil
}

// stress is the summed relative error of the layout against target, over
// every ordered pair with a non-zero target distance.
func stress(points [][2]float64, target [][]float64) float64 {
	var total float64
	for i := range points {
		for j := range points {
			if i == j || target[i][j] == 0 {
				continue
			}
			fake := floats.Distance(points[i][:], points[j][:], 2)
			total += math.Abs(fake-target[i][j]) / target[i][j]
		}
	}
	return total
}

// descend moves points in place and returns the best layout it reached.
func descend(points [][2]float64, target [][]float64, iterations int) [][2]float64 {
	n := len(points)
	best := make([][2]float64, n)
	copy(best, points)
	bestStress := stress(points, target)

	grad := make([][2]float64, n)
	diff := make([]float64, 2)
	for iter := 0; iter < iterations; iter++ {
		for k := range grad {
			grad[k] = [2]float64{}
		}
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				if j == k || target[j][k] == 0 {
					continue
				}
				fake := floats.Distance(points[k][:], points[j][:], 2)
				if fake == 0 {
					continue
				}
				rel := (fake - target[j][k]) / target[j][k]
				floats.SubTo(diff, points[k][:], points[j][:])
				floats.AddScaled(grad[k][:], rel/fake, diff)
			}
		}
		for k := range points {
			floats.AddScaled(points[k][:], -scaleRate, grad[k][:])
		}

		s := stress(points, target)
		if s >= bestStress {
			break
		}
		bestStress = s
		copy(best, points)
	}
	return best
}
