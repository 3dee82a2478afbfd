package hcluster

import (
	"math"
	"testing"
)

func TestEdgeCase_TwoRows(t *testing.T) {
	root, err := Cluster([][]float64{{0, 0}, {3, 4}}, EuclideanMetric{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.ID() != -1 || root.Left().ID() != 0 || root.Right().ID() != 1 {
		t.Errorf("unexpected tree: root %d children (%d, %d)", root.ID(), root.Left().ID(), root.Right().ID())
	}
	if d, _ := root.MergeDistance(); d != 5 {
		t.Errorf("merge distance = %v, want 5", d)
	}
}

func TestEdgeCase_AllIdenticalRows(t *testing.T) {
	table := make([][]float64, 10)
	for i := range table {
		table[i] = []float64{5.0, 5.0}
	}

	root, err := Cluster(table, EuclideanMetric{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Size() != 10 {
		t.Fatalf("expected 10 leaves, got %d", root.Size())
	}
	root.Walk(func(n *Node, _ int) bool {
		if d, ok := n.MergeDistance(); ok && d != 0 {
			t.Errorf("node %d merged at %v, want 0", n.ID(), d)
		}
		return true
	})
	if root.Depth() != 0 {
		t.Errorf("depth = %v, want 0", root.Depth())
	}
}

func TestEdgeCase_PearsonConstantRows(t *testing.T) {
	// Constant rows have zero variance, so every Pearson distance
	// involving them is 0 and the tree still completes.
	table := [][]float64{{1, 1, 1}, {2, 2, 2}, {1, 2, 3}}
	root, err := Cluster(table, PearsonMetric{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Size() != 3 {
		t.Errorf("expected 3 leaves, got %d", root.Size())
	}
}

func TestEdgeCase_NaNDistanceStillTerminates(t *testing.T) {
	// NaN never compares less than the incumbent, so the first pair wins
	// every round.
	nan := DistanceFunc(func(a, b []float64) (float64, error) { return math.NaN(), nil })
	root, err := Cluster([][]float64{{1}, {2}, {3}}, nan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Size() != 3 {
		t.Errorf("expected 3 leaves, got %d", root.Size())
	}
	first := root.Right()
	if first.Left().ID() != 0 || first.Right().ID() != 1 {
		t.Errorf("first merge = (%d, %d), want (0, 1)", first.Left().ID(), first.Right().ID())
	}
}

func TestEdgeCase_HighDimensional(t *testing.T) {
	table := [][]float64{make([]float64, 500), make([]float64, 500), make([]float64, 500)}
	table[1][499] = 1
	table[2][0] = 10

	root, err := Cluster(table, EuclideanMetric{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := root.Right()
	if first.Left().ID() != 0 || first.Right().ID() != 1 {
		t.Errorf("first merge = (%d, %d), want (0, 1)", first.Left().ID(), first.Right().ID())
	}
}
