package hcluster

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Config controls agglomerative clustering.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Metric measures the distance between two node vectors. It must be
	// symmetric. Default: PearsonMetric.
	Metric DistanceMetric

	// Workers is the number of goroutines used to evaluate the distances of
	// each round. Values <= 1 run everything on the calling goroutine. With
	// more than one worker, Metric must be safe for concurrent use. The
	// resulting tree does not depend on Workers. Default: 1.
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Metric:  PearsonMetric{},
		Workers: 1,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.Metric == nil {
		return ErrNilMetric
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("hcluster: Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

var errNonFinite = errors.New("value is not a finite number")

// validateTable checks that every row is non-empty, finite, and as long as
// the first row.
func validateTable(table [][]float64) error {
	dims := len(table[0])
	for i, row := range table {
		if len(row) == 0 {
			return &InputError{Row: i, Col: -1, Err: ErrEmptyVector}
		}
		if len(row) != dims {
			return &InputError{Row: i, Col: -1,
				Err: fmt.Errorf("%w: row has %d values, want %d", ErrDimensionMismatch, len(row), dims)}
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &InputError{Row: i, Col: j, Err: errNonFinite}
			}
		}
	}
	return nil
}

// Cluster builds the agglomerative dendrogram of table using metric, with
// every other setting at its default. See [ClusterWithConfig].
func Cluster(table [][]float64, metric DistanceMetric) (*Node, error) {
	cfg := DefaultConfig()
	cfg.Metric = metric
	return ClusterWithConfig(table, cfg)
}

// ClusterWithConfig builds the agglomerative dendrogram of table.
//
// Each input row becomes a leaf whose id is the row index. Then, until one
// node is left, the two closest live nodes are replaced by a merge node whose
// vector is the mean of theirs. Pairs are scanned with i ascending and j > i
// ascending, and a pair only displaces the current best when its distance is
// strictly smaller, so ties go to the first pair scanned.
//
// An empty table yields a nil root and a nil error. Any validation or metric
// failure aborts the run; no partial tree is returned.
func ClusterWithConfig(table [][]float64, cfg Config) (*Node, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	if len(table) == 0 {
		return nil, nil
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}

	live := make([]*Node, len(table))
	for i, row := range table {
		live[i] = NewLeaf(i, row)
	}

	cache := newDistanceCache(cfg.Metric)
	merges := 0

	for len(live) > 1 {
		if cfg.Workers > 1 {
			if err := fillDistancesParallel(cache, live, cfg.Workers); err != nil {
				return nil, err
			}
		}

		i0, j0, dmin, err := closestPair(cache, live)
		if err != nil {
			return nil, err
		}

		merges++
		merged := newMerge(-merges, live[i0], live[j0], dmin)

		// j0 > i0, so removing j0 first keeps i0 valid.
		live = slices.Delete(live, j0, j0+1)
		live = slices.Delete(live, i0, i0+1)
		live = append(live, merged)
	}

	return live[0], nil
}

// closestPair returns the indices (i < j) of the closest pair of live nodes
// and their distance. live must hold at least two nodes.
func closestPair(cache *distanceCache, live []*Node) (int, int, float64, error) {
	i0, j0 := 0, 1
	dmin, err := cache.get(live[0], live[1])
	if err != nil {
		return 0, 0, 0, err
	}

	for i := 0; i < len(live); i++ {
		for j := i + 1; j < len(live); j++ {
			d, err := cache.get(live[i], live[j])
			if err != nil {
				return 0, 0, 0, err
			}
			if d < dmin {
				i0, j0, dmin = i, j, d
			}
		}
	}

	return i0, j0, dmin, nil
}
