// Package pipeline wires the compiler's fixed-order phases into a single
// entry point, grounded on the teacher's internal/pipeline/pipeline.go
// (a Config-driven sequence of named stages, each one stoppable on
// failure, with timing hooks) — repurposed from "lex/parse/elaborate/
// typecheck/link AILANG source" to "validate, lower, and emit a set of
// already-IR-built modules."
//
// Parsing and IR construction from raw source are explicitly the
// external front end's job (spec §6, Non-goals): this package starts
// from modules already produced by that front end (graph-ordered by
// internal/graph, built into ir.Module by whatever IR builder sits
// between the frontend.Checker and this package) and runs everything
// from source-level validation through emission.
package pipeline

import (
	"github.com/tsoniclang/tsonic-sub006/internal/binding"
	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/emit"
	"github.com/tsoniclang/tsonic-sub006/internal/frontend"
	"github.com/tsoniclang/tsonic-sub006/internal/hostast"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/passes"
	"github.com/tsoniclang/tsonic-sub006/internal/universe"
	"github.com/tsoniclang/tsonic-sub006/internal/validate"
)

// ValidationFindings carries extra located findings a caller's front end
// already has on hand beyond what Compile detects itself — in practice
// only the six generic-constraint kinds DetectGenericConstraints cannot
// see from IR (recursive mapped types, conditional infer, this-typing,
// symbol index signatures, variadic generic interfaces, struct/class
// constraints combined with a structural shape; see DESIGN.md). Compile
// merges these in after running its own detectors, it never relies on
// them alone.
type ValidationFindings struct {
	Unsupported []validate.UnsupportedFeature
	Generics    []validate.GenericConstraintViolation
	StaticSafety []validate.StaticSafetyFinding
}

// Config bundles everything Compile needs beyond the module set itself.
type Config struct {
	Catalog  *universe.UnifiedTypeCatalog
	Registry *binding.Registry
	Oracle   passes.ProofOracle

	// Files is the pre-IR source file set, used only to detect
	// unsupported dynamic-feature syntax (spec §4.2's first validator) —
	// the one C7 concern that needs raw syntax rather than built IR.
	// Optional: a caller that has already filtered these out upstream
	// can leave it nil.
	Files []frontend.SourceFile

	// Findings carries extra located findings beyond what Compile's own
	// detectors produce from Files and modules (see ValidationFindings).
	Findings ValidationFindings

	// Workers bounds the worker pool RunParallel uses for the
	// parallel-eligible passes (spec §5). Zero means sequential.
	Workers int
}

// Result is the outcome of one full Compile call.
type Result struct {
	Modules        []*ir.Module
	Specializations []*passes.SpecializationRequest
	Files          map[string]*hostast.File // keyed by module path
	Diags          *diag.Collector
}

// Compile runs the fixed sequence: sort modules
// deterministically (spec §4.1 step 7), run the three source-level
// validators (C7, spec §4.2), then the six-pass pipeline in its
// mandated order (C9, spec §4.5) — passes 1, 2, 4, 5, 6 fanned out via
// RunParallel, pass 3 run sequentially because it alone consults
// cross-module inferred types — then the post-pipeline
// specialization-request collection, then emission (C10, spec §4.6)
// for every module plus every collected specialization. A fatal
// diagnostic at any step aborts immediately and Result.Files is nil.
func Compile(modules []*ir.Module, cfg Config) Result {
	passes.SortModulesByPath(modules)
	collector := diag.New()

	unsupported := append(validate.DetectUnsupportedFeatures(cfg.Files), cfg.Findings.Unsupported...)
	var generics []validate.GenericConstraintViolation
	var staticSafety []validate.StaticSafetyFinding
	for _, m := range modules {
		generics = append(generics, validate.DetectGenericConstraints(m)...)
		staticSafety = append(staticSafety, validate.DetectStaticSafety(m)...)
	}
	generics = append(generics, cfg.Findings.Generics...)
	staticSafety = append(staticSafety, cfg.Findings.StaticSafety...)

	collector = validate.RunAll(unsupported, generics, staticSafety, cfg.Catalog, collector)
	if collector.HasFatal() {
		return Result{Modules: modules, Diags: collector}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	modules, collector = passes.RunParallel(modules, collector, workers, passes.AnonymousTypeLowering(cfg.Catalog))
	if collector.HasFatal() {
		return Result{Modules: modules, Diags: collector}
	}

	modules, collector = passes.RunParallel(modules, collector, workers, passes.SoundnessGate)
	if collector.HasFatal() {
		return Result{Modules: modules, Diags: collector}
	}

	// Pass 3 is deliberately sequential (spec §5): it consults
	// cross-module inferred types through cfg.Oracle.
	for i, m := range modules {
		var updated *ir.Module
		updated, collector = passes.NumericProofForModule(m, cfg.Oracle, collector)
		modules[i] = updated
		if collector.HasFatal() {
			return Result{Modules: modules, Diags: collector}
		}
	}

	modules, collector = passes.RunParallel(modules, collector, workers, passes.NumericCoercion)
	if collector.HasFatal() {
		return Result{Modules: modules, Diags: collector}
	}

	modules, collector = passes.RunParallel(modules, collector, workers, passes.YieldLowering)
	if collector.HasFatal() {
		return Result{Modules: modules, Diags: collector}
	}

	modules, collector = passes.RunParallel(modules, collector, workers, passes.AttributeCollection)
	if collector.HasFatal() {
		return Result{Modules: modules, Diags: collector}
	}

	if collector.HasErrors() {
		// Errors (not fatals) block emission but don't abort the pipeline
		// early (spec §4.5 preamble): the pass sequence above has already
		// run to completion, so every diagnostic the source would produce
		// has been collected. Stop short of specialization/emission.
		return Result{Modules: modules, Diags: collector}
	}

	var requests []*passes.SpecializationRequest
	requests, collector = passes.CollectSpecializationRequests(modules, collector)

	files := make(map[string]*hostast.File, len(modules))
	for _, m := range modules {
		files[m.Path] = emit.EmitModule(m, cfg.Catalog)
	}

	if len(requests) > 0 {
		lookup, owner := makeFuncIndex(modules)
		ctx := emit.NewContext(modules[0], cfg.Catalog)
		for _, r := range requests {
			specialized := emit.EmitSpecializations(ctx, []*passes.SpecializationRequest{r}, lookup, cfg.Catalog)
			if len(specialized) == 0 {
				continue
			}
			modPath, ok := owner[r.DeclName]
			if !ok {
				continue
			}
			f := files[modPath]
			if f == nil || len(f.Types) == 0 {
				continue
			}
			f.Types[0].Members = append(f.Types[0].Members, specialized[0])
		}
	}

	return Result{Modules: modules, Specializations: requests, Files: files, Diags: collector}
}

// makeFuncIndex returns a lookup of generic declaration name -> *ir.FuncDecl
// (what EmitSpecializations needs to monomorphize a request) alongside the
// declaration name -> owning module path, so a specialized method can be
// appended to the same container its generic source was declared in.
func makeFuncIndex(modules []*ir.Module) (func(name string) *ir.FuncDecl, map[string]string) {
	byName := map[string]*ir.FuncDecl{}
	owner := map[string]string{}
	for _, m := range modules {
		for _, s := range m.Body {
			if fn, ok := s.(*ir.FuncDecl); ok {
				if _, exists := byName[fn.Name]; !exists {
					byName[fn.Name] = fn
					owner[fn.Name] = m.Path
				}
			}
		}
	}
	return func(name string) *ir.FuncDecl { return byName[name] }, owner
}
