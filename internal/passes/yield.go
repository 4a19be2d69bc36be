package passes

import (
	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// YieldLowering is pass 5 (spec §4.5): rewrite every `yield e` expression
// that appears directly as a statement or as the right-hand side of a
// variable declarator into a YieldStatement. A yield appearing anywhere
// else (e.g. nested inside a binary expression) is TSN6101: the
// statement-or-declarator-RHS position is the only one the emitter's
// generator lowering (spec §4.6) knows how to place a C# yield return in.
func YieldLowering(m *ir.Module, collector *diag.Collector) (*ir.Module, *diag.Collector) {
	out := make([]ir.Statement, 0, len(m.Body))
	for _, s := range m.Body {
		var lowered ir.Statement
		lowered, collector = lowerYieldStmt(s, collector, m.Path)
		out = append(out, lowered)
	}
	m.Body = out
	return m, collector
}

func lowerYieldStmt(s ir.Statement, collector *diag.Collector, path string) (ir.Statement, *diag.Collector) {
	switch n := s.(type) {
	case *ir.ExprStatement:
		if y, ok := n.Expr.(*ir.Yield); ok {
			var arg ir.Expression
			arg, collector = rejectNestedYield(y.Argument, collector, path)
			return &ir.YieldStatement{Node: n.Node, Output: arg, IsDelegated: y.IsDelegated}, collector
		}
		var expr ir.Expression
		expr, collector = rejectNestedYield(n.Expr, collector, path)
		n.Expr = expr
		return n, collector
	case *ir.VarDecl:
		if y, ok := n.Initializer.(*ir.Yield); ok {
			var arg ir.Expression
			arg, collector = rejectNestedYield(y.Argument, collector, path)
			decl := &ir.VarDecl{Node: n.Node, Kind: n.Kind, Pattern: n.Pattern, Declared: n.Declared}
			yieldStmt := &ir.YieldStatement{Node: n.Node, Output: arg, ReceiveTarget: n.Pattern, IsDelegated: y.IsDelegated}
			return &ir.Block{Statements: []ir.Statement{yieldStmt, decl}}, collector
		}
		var init ir.Expression
		init, collector = rejectNestedYield(n.Initializer, collector, path)
		n.Initializer = init
		return n, collector
	case *ir.Block:
		out := make([]ir.Statement, 0, len(n.Statements))
		for _, b := range n.Statements {
			var lowered ir.Statement
			lowered, collector = lowerYieldStmt(b, collector, path)
			out = append(out, lowered)
		}
		n.Statements = out
		return n, collector
	case *ir.If:
		var then, els ir.Statement
		then, collector = lowerYieldStmt(n.Then, collector, path)
		n.Then = then
		if n.Else != nil {
			els, collector = lowerYieldStmt(n.Else, collector, path)
			n.Else = els
		}
		return n, collector
	case *ir.While:
		var body ir.Statement
		body, collector = lowerYieldStmt(n.Body, collector, path)
		n.Body = body
		return n, collector
	case *ir.FuncDecl:
		out := make([]ir.Statement, 0, len(n.Body))
		for _, b := range n.Body {
			var lowered ir.Statement
			lowered, collector = lowerYieldStmt(b, collector, path)
			out = append(out, lowered)
		}
		n.Body = out
		return n, collector
	}
	return s, collector
}

// rejectNestedYield walks e looking for a Yield that is not in statement
// or declarator-RHS position (the caller already peeled off that case),
// emitting TSN6101 for any it finds, and returns e unchanged otherwise.
func rejectNestedYield(e ir.Expression, collector *diag.Collector, path string) (ir.Expression, *diag.Collector) {
	if e == nil {
		return e, collector
	}
	switch n := e.(type) {
	case *ir.Yield:
		return e, collector.Addf(errors.TSN6101, diag.Error, ir.Pos{File: path}, "yield used outside a valid position")
	case *ir.Binary:
		_, collector = rejectNestedYield(n.Left, collector, path)
		_, collector = rejectNestedYield(n.Right, collector, path)
	case *ir.Call:
		for _, a := range n.Args {
			_, collector = rejectNestedYield(a, collector, path)
		}
	}
	return e, collector
}
