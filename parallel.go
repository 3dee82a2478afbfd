package hcluster

import "sync"

// pendingPair is a pair of live nodes whose distance is not cached yet.
type pendingPair struct {
	a, b *Node
}

// fillDistancesParallel evaluates every uncached pair of live nodes using
// numWorkers goroutines and stores the results in cache.
//
// Pairs are collected in the same i-then-j order closestPair scans them, and
// results are written back in that order, so the cache contents and the
// reported error are the same as for a sequential scan. Only the calling
// goroutine touches the cache.
func fillDistancesParallel(cache *distanceCache, live []*Node, numWorkers int) error {
	var pending []pendingPair
	for i := 0; i < len(live); i++ {
		for j := i + 1; j < len(live); j++ {
			if _, ok := cache.lookup(live[i], live[j]); !ok {
				pending = append(pending, pendingPair{a: live[i], b: live[j]})
			}
		}
	}
	if len(pending) == 0 {
		return nil
	}

	dists := make([]float64, len(pending))
	errs := make([]error, len(pending))

	// Each worker owns a contiguous range of pending pairs, so writes to
	// dists and errs never overlap.
	var wg sync.WaitGroup
	pairsPerWorker := (len(pending) + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * pairsPerWorker
		end := min(start+pairsPerWorker, len(pending))
		if start >= len(pending) {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for k := start; k < end; k++ {
				p := pending[k]
				dists[k], errs[k] = cache.metric.Distance(p.a.vec, p.b.vec)
			}
		}(start, end)
	}

	wg.Wait()
	cache.evaluations += len(pending)

	for k, p := range pending {
		if errs[k] != nil {
			return &DistanceError{A: p.a.id, B: p.b.id, Err: errs[k]}
		}
		cache.store(p.a, p.b, dists[k])
	}
	return nil
}
