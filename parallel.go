package pulsecluster

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ClosestPairsParallel computes the closest pair of every cluster using
// multiple goroutines. numWorkers controls the degree of parallelism; if
// <= 1, it falls back to a sequential scan.
//
// Clusters are chunked across workers and results[i] corresponds to
// clusters[i]. Since chunk ranges don't overlap, no synchronization is needed
// for writes, and the result is identical to the sequential scan.
func ClosestPairsParallel(clusters [][]string, series map[string][]float64, metric DistanceMetric, numWorkers int) []*ClosestPairResult {
	results := make([]*ClosestPairResult, len(clusters))

	if numWorkers <= 1 || len(clusters) <= 1 {
		for i, c := range clusters {
			results[i] = ClosestPair(c, series, metric)
		}
		return results
	}

	var wg sync.WaitGroup
	perWorker := (len(clusters) + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * perWorker
		end := min(start+perWorker, len(clusters))
		if start >= len(clusters) {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				results[i] = ClosestPair(clusters[i], series, metric)
			}
		}(start, end)
	}

	wg.Wait()
	return results
}

// ActivityIntervalsParallel scans every series for its most active interval
// using numWorkers goroutines. Ids are processed in sorted order and each
// worker writes a disjoint index range, so the result is identical to a
// sequential scan. The first series failing validation aborts the scan.
func ActivityIntervalsParallel(series map[string][]float64, transform Transform, numWorkers int) (map[string]ActivityInterval, error) {
	ids := make([]string, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	intervals := make([]ActivityInterval, len(ids))

	if numWorkers <= 1 || len(ids) <= 1 {
		for i, id := range ids {
			iv, err := MostActiveInterval(series[id], transform)
			if err != nil {
				return nil, fmt.Errorf("series %q: %w", id, err)
			}
			intervals[i] = iv
		}
	} else {
		var g errgroup.Group
		perWorker := (len(ids) + numWorkers - 1) / numWorkers

		for w := 0; w < numWorkers; w++ {
			start := w * perWorker
			end := min(start+perWorker, len(ids))
			if start >= len(ids) {
				break
			}

			g.Go(func() error {
				for i := start; i < end; i++ {
					iv, err := MostActiveInterval(series[ids[i]], transform)
					if err != nil {
						return fmt.Errorf("series %q: %w", ids[i], err)
					}
					intervals[i] = iv
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	out := make(map[string]ActivityInterval, len(ids))
	for i, id := range ids {
		out[id] = intervals[i]
	}
	return out, nil
}
