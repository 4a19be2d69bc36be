package passes

import (
	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// NumericCoercion is pass 4 (spec §4.5): flag an Int32-intent value used
// where Double is required and no numericNarrowing wraps it. Two positions
// are checked: the initializer of a variable declared Double, and the
// default value of a parameter declared Double; only a bare Int32-intent
// literal there is flagged. Call arguments, return values, assignment
// values, arithmetic operands and array elements are not checked, and
// statements are visited only at module level and inside function, block,
// if and while bodies. This pass never inserts a narrowing itself —
// invariant I-4 requires the proof to have been attached explicitly by the
// IR builder or an earlier source transform, so a flagged mismatch is
// always an error (TSN5110), never a silent widen.
func NumericCoercion(m *ir.Module, collector *diag.Collector) (*ir.Module, *diag.Collector) {
	for _, s := range m.Body {
		collector = coerceStmt(s, collector, m.Path)
	}
	return m, collector
}

func coerceStmt(s ir.Statement, collector *diag.Collector, path string) *diag.Collector {
	switch n := s.(type) {
	case *ir.VarDecl:
		collector = checkAssignmentSite(n.Declared, n.Initializer, collector, path)
	case *ir.ExprStatement:
		collector = coerceExpr(n.Expr, collector, path)
	case *ir.Return:
		collector = coerceExpr(n.Argument, collector, path)
	case *ir.If:
		collector = coerceExpr(n.Cond, collector, path)
		collector = coerceStmt(n.Then, collector, path)
		if n.Else != nil {
			collector = coerceStmt(n.Else, collector, path)
		}
	case *ir.Block:
		for _, b := range n.Statements {
			collector = coerceStmt(b, collector, path)
		}
	case *ir.FuncDecl:
		for _, p := range n.Parameters {
			if p.Initializer != nil {
				collector = checkAssignmentSite(p.DeclaredType, p.Initializer, collector, path)
			}
		}
		for _, b := range n.Body {
			collector = coerceStmt(b, collector, path)
		}
	case *ir.While:
		collector = coerceExpr(n.Cond, collector, path)
		collector = coerceStmt(n.Body, collector, path)
	}
	return collector
}

func coerceExpr(e ir.Expression, collector *diag.Collector, path string) *diag.Collector {
	if e == nil {
		return collector
	}
	switch n := e.(type) {
	case *ir.Assignment:
		collector = coerceExpr(n.Value, collector, path)
	case *ir.Binary:
		collector = coerceExpr(n.Left, collector, path)
		collector = coerceExpr(n.Right, collector, path)
	case *ir.Call:
		for _, a := range n.Args {
			collector = coerceExpr(a, collector, path)
		}
	}
	return collector
}

// checkAssignmentSite flags target = value when target demands Double,
// value is a bare Int32-intent literal, and no numericNarrowing mediates
// between them.
func checkAssignmentSite(target ir.Type, value ir.Expression, collector *diag.Collector, path string) *diag.Collector {
	if target == nil || value == nil {
		return collector
	}
	prim, ok := target.(ir.PrimitiveType)
	if !ok || prim.Kind != ir.PrimDouble {
		return collector
	}
	lit, ok := value.(*ir.Literal)
	if !ok {
		return collector
	}
	if lit.Intent == ir.IntentInt32 {
		return collector.Addf(errors.TSN5110, diag.Error, ir.Pos{File: path},
			"Int32-intent literal %q used where Double is required without a numeric narrowing", lit.Lexeme)
	}
	return collector
}
