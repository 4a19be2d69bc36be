// Package passes implements the fixed ordered pass pipeline (C9, spec
// §4.5): anonymous-type lowering, the soundness gate, numeric proof,
// numeric coercion, yield lowering, attribute collection, and the
// specialization-request collection pass that runs after the pipeline
// proper. Grounded on the teacher's internal/pipeline/pipeline.go
// (fixed ordered phases with timings) and internal/elaborate/scc.go
// (deterministic dependency ordering, reused here for specialization
// dedupe).
package passes

import (
	"sort"
	"sync"

	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// Pass is a total function over the whole module set, matching spec
// §4.5's "(modules, collector) -> (modules, collector)" contract.
type Pass func(modules []*ir.Module, collector *diag.Collector) ([]*ir.Module, *diag.Collector)

// PerModulePass is a pass expressible as an independent function over
// one module; RunParallel fans these out across modules 1,2,4,5,6 are
// eligible for (spec §5); pass 3 (numeric proof) is excluded because it
// consults cross-module inferred types through the universe/checker.
type PerModulePass func(m *ir.Module, collector *diag.Collector) (*ir.Module, *diag.Collector)

// AsPass adapts a PerModulePass into a whole-pipeline Pass by running it
// sequentially over modules in their existing (already sorted-by-path)
// order, merging diagnostics in that same order — used for passes whose
// correctness doesn't require parallelism, and as the sequential
// reference implementation RunParallel is checked against.
func AsPass(p PerModulePass) Pass {
	return func(modules []*ir.Module, collector *diag.Collector) ([]*ir.Module, *diag.Collector) {
		out := make([]*ir.Module, len(modules))
		for i, m := range modules {
			var updated *ir.Module
			updated, collector = p(m, collector)
			out[i] = updated
			if collector.HasFatal() {
				return out, collector
			}
		}
		return out, collector
	}
}

// RunParallel runs a PerModulePass across all modules concurrently,
// bounded by a worker pool, then joins results in module order (sort by
// relative path beforehand is the caller's responsibility — modules
// arriving here are assumed already sorted, per spec §4.1 step 7) so
// later phases and emission remain bit-identical regardless of
// scheduling order (spec §5).
func RunParallel(modules []*ir.Module, collector *diag.Collector, workers int, p PerModulePass) ([]*ir.Module, *diag.Collector) {
	if workers <= 0 {
		workers = 1
	}
	n := len(modules)
	results := make([]*ir.Module, n)
	collectors := make([]*diag.Collector, n)

	type job struct{ idx int }
	jobs := make(chan job, n)
	for i := 0; i < n; i++ {
		jobs <- job{idx: i}
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				updated, c := p(modules[j.idx], diag.New())
				results[j.idx] = updated
				collectors[j.idx] = c
			}
		}()
	}
	wg.Wait()

	merged := diag.MergeSorted(collectors, func(i int) string { return modules[i].Path })
	merged = diag.Merge(collector, merged)
	return results, merged
}

// SortModulesByPath sorts modules in place by relative path, the
// determinism anchor spec §4.1 step 7 and §5 both require at join
// points.
func SortModulesByPath(modules []*ir.Module) {
	sort.Slice(modules, func(i, j int) bool { return modules[i].Path < modules[j].Path })
}
