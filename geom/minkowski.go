package geom

import (
	"runtime"
	"sort"
	"sync"
)

// MinkowskiSum returns the swept body of a convex kernel polygon translated
// along an oriented edge: the convex hull of (kernel+e.P1) ∪ (kernel+e.P2).
// This identity holds because the Minkowski sum of a convex set with a
// segment equals the convex hull of the set translated to each endpoint.
func MinkowskiSum(kernel Polygon, e Edge) Polygon {
	pts := make([]Point, 0, 2*len(kernel.Points))
	for _, p := range kernel.Points {
		pts = append(pts, p.Add(e.P1))
	}
	for _, p := range kernel.Points {
		pts = append(pts, p.Add(e.P2))
	}
	return Polygon{Points: convexHull(pts)}
}

// convexHull returns the convex hull of pts in CCW order (Andrew's
// monotone chain).
func convexHull(pts []Point) []Point {
	uniq := dedupSort(pts)
	n := len(uniq)
	if n < 3 {
		return uniq
	}

	lower := make([]Point, 0, n)
	for _, p := range uniq {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := uniq[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	return append(lower, upper...)
}

func dedupSort(pts []Point) []Point {
	sorted := make([]Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	out := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			out = append(out, p)
		}
	}
	return out
}

// MinkowskiSumAll unions the Minkowski sum of kernel with every edge in es,
// merging every batchSize inserts to cap intermediate polygon count
// (spec.md §4.4 step 7).
func MinkowskiSumAll(kernel Polygon, es []Edge, batchSize int) []Polygon {
	if batchSize <= 0 {
		batchSize = 10
	}
	var acc []Polygon
	var batch []Polygon
	flush := func() {
		if len(batch) == 0 {
			return
		}
		acc = Merge(append(acc, batch...))
		batch = batch[:0]
	}
	for _, e := range es {
		batch = append(batch, MinkowskiSum(kernel, e))
		if len(batch) >= batchSize {
			flush()
		}
	}
	flush()
	return acc
}

// ParallelMinkowskiSumAll computes the per-edge Minkowski sums concurrently
// across a worker pool, then unions every batchSize results — a parallel
// analogue of MinkowskiSumAll, safe because union is commutative and
// associative (spec.md §5). Modeled on the teacher's evalProcessCh worker
// pool in render/march3.go: a fixed set of goroutines drain a work channel
// while the caller streams batches in.
func ParallelMinkowskiSumAll(kernel Polygon, es []Edge, batchSize int) []Polygon {
	if batchSize <= 0 {
		batchSize = 10
	}
	if len(es) == 0 {
		return nil
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(es) {
		workers = len(es)
	}

	type job struct {
		idx int
		e   Edge
	}
	jobs := make(chan job)
	results := make([]Polygon, len(es))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = MinkowskiSum(kernel, j.e)
			}
		}()
	}
	for i, e := range es {
		jobs <- job{i, e}
	}
	close(jobs)
	wg.Wait()

	var acc []Polygon
	for i := 0; i < len(results); i += batchSize {
		end := i + batchSize
		if end > len(results) {
			end = len(results)
		}
		acc = Merge(append(acc, results[i:end]...))
	}
	return acc
}
