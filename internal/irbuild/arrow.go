package irbuild

import (
	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// InferArrowParameters fills in an untyped arrow function's parameter and
// return types from the expected function type resolved for its context
// (spec §4.4 "Arrow parameter inference" — a call argument position, a
// typed variable's declared type, an array element type, an object
// property type, an enclosing function's return type, or an as/satisfies
// assertion target; see frontend.LambdaContext). expected is nil when the
// caller could not determine one from the surrounding context at all. An
// arrow whose parameters and return type are already fully annotated
// never needs this and is returned untouched.
//
// TSN5201 fires when the arrow has an untyped parameter but the context
// supplies no expected type to infer it from. TSN5202 fires when an
// expected type was found but its arity doesn't match the arrow's own
// parameter count, so per-parameter inference can't proceed.
func InferArrowParameters(arrow *ir.ArrowFunction, expected *ir.FunctionType, pos ir.Pos, collector *diag.Collector) *diag.Collector {
	if !arrowNeedsInference(arrow) {
		return collector
	}
	if expected == nil {
		return collector.Addf(errors.TSN5201, diag.Error, pos,
			"arrow function's expected type could not be determined; annotate its parameters explicitly")
	}
	if len(expected.Parameters) != len(arrow.Parameters) {
		return collector.Addf(errors.TSN5202, diag.Error, pos,
			"arrow function has %d parameters, expected type supplies %d", len(arrow.Parameters), len(expected.Parameters))
	}
	for i, p := range arrow.Parameters {
		if p.DeclaredType == nil {
			p.DeclaredType = expected.Parameters[i]
		}
	}
	if arrow.ReturnType == nil {
		arrow.ReturnType = expected.Return
	}
	return collector
}

func arrowNeedsInference(arrow *ir.ArrowFunction) bool {
	if arrow.ReturnType == nil {
		return true
	}
	for _, p := range arrow.Parameters {
		if p.DeclaredType == nil {
			return true
		}
	}
	return false
}
