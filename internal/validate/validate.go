// Package validate implements the three source-level validators (C7,
// spec §4.2): unsupported features, generic constraints, and static
// safety. Each is a pure function (located findings, collector) ->
// collector (GenericConstraints also takes the catalog), grounded on the teacher's internal/elaborate/verify.go and
// exhaustiveness.go (one validator function per concern, threading a
// diagnostic sink rather than returning early on the first problem).
package validate

import (
	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/universe"
)

// UnsupportedFeature names one construct this compiler refuses to lower,
// reported against a source position.
type UnsupportedFeature struct {
	Name string
	Pos  ir.Pos
}

// UnsupportedFeatures emits TSN2001-range diagnostics for every
// unsupported construct a caller has already located in sourceFile
// (decorators, symbols, proxies, weak collections, eval, with,
// prototype mutation, stray generator-return-value access). Detection
// of these constructs is a front-end concern; this validator's job is
// solely to turn a located list into diagnostics deterministically.
func UnsupportedFeatures(found []UnsupportedFeature, collector *diag.Collector) *diag.Collector {
	for _, f := range found {
		collector = collector.Addf(errors.TSN2001, diag.Error, f.Pos, "unsupported feature: %s", f.Name)
	}
	return collector
}

// GenericConstraintViolation is one located violation of the generic
// constraint rules in spec §4.2 (recursive mapped types, conditional
// infer, this-typing, recursive structural aliases, symbol index
// signatures, variadic generic interfaces, struct/class constraints
// combined with structural shapes).
type GenericConstraintViolation struct {
	Code string // one of the TSN71xx/TSN72xx/TSN73xx codes
	What string
	Pos  ir.Pos
}

// GenericConstraints emits one diagnostic per located violation, using
// the violation's own Code and What; catalog is not consulted.
func GenericConstraints(found []GenericConstraintViolation, catalog *universe.UnifiedTypeCatalog, collector *diag.Collector) *diag.Collector {
	for _, v := range found {
		collector = collector.Addf(v.Code, diag.Error, v.Pos, "%s", v.What)
	}
	return collector
}

// LambdaContext describes the expected-type context around a lambda
// literal, used to decide whether its parameters may go unannotated
// (spec §4.2's "unless the lambda sits in a position whose expected
// type the AST makes deterministic").
type LambdaContext int

const (
	LambdaContextNone LambdaContext = iota
	LambdaContextCallArgument
	LambdaContextTypedVariable
	LambdaContextArrayElement
	LambdaContextObjectProperty
	LambdaContextFunctionReturn
	LambdaContextAsOrSatisfies
)

// HasDeterministicExpectedType reports whether ctx gives a lambda or
// object literal enough contextual information to skip an explicit
// annotation requirement.
func HasDeterministicExpectedType(ctx LambdaContext) bool {
	return ctx != LambdaContextNone
}

// IsSimpleArrow reports whether an arrow function is "simple" per spec
// §4.2: not async, expression-bodied, identifier-only parameters, no
// defaults, no rest. Non-simple arrows always require explicit parameter
// and return types regardless of context.
func IsSimpleArrow(fn *ir.ArrowFunction) bool {
	if fn.IsAsync || fn.BlockBody != nil {
		return false
	}
	for _, p := range fn.Parameters {
		if _, ok := p.Pattern.(*ir.IdentifierPattern); !ok {
			return false
		}
		if p.Initializer != nil || p.IsRest {
			return false
		}
	}
	return true
}

// StaticSafetyFinding is one located static-safety violation.
type StaticSafetyFinding struct {
	Code string // TSN7401-TSN7430
	What string
	Pos  ir.Pos
}

// StaticSafety emits TSN74xx diagnostics for explicit any/as-any usage,
// untyped non-lambda parameters, disallowed Record<K,V> key types, empty
// array literals without an annotation, and bare `new Array()`. The
// caller supplies the located findings; this function's contract is
// purely "turn findings into diagnostics, deterministically ordered by
// input order" so it composes with UnsupportedFeatures/GenericConstraints
// in a single validator pipeline.
func StaticSafety(found []StaticSafetyFinding, collector *diag.Collector) *diag.Collector {
	for _, f := range found {
		collector = collector.Addf(f.Code, diag.Error, f.Pos, "%s", f.What)
	}
	return collector
}

// RunAll runs the three validators in the fixed order required before IR
// construction (spec §4.2 preamble).
func RunAll(
	unsupported []UnsupportedFeature,
	generics []GenericConstraintViolation,
	staticSafety []StaticSafetyFinding,
	catalog *universe.UnifiedTypeCatalog,
	collector *diag.Collector,
) *diag.Collector {
	collector = UnsupportedFeatures(unsupported, collector)
	collector = GenericConstraints(generics, catalog, collector)
	collector = StaticSafety(staticSafety, collector)
	return collector
}

