package passes

import (
	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// NumericProof is pass 3 (spec §4.5): attach a Proof to every
// numericNarrowing node, or emit TSN5101 if none of the four cases
// apply. This pass is intentionally NOT offered to RunParallel: it may
// consult cross-module inferred types through the universe/checker
// (spec §5), which pass 1/2/4/5/6 never need to.
//
// ProofOracle abstracts "does this expression's bound type already
// match the narrowing target" so the pass stays a pure IR transform
// independent of how types got inferred.
type ProofOracle interface {
	// VariableOrParameterMatchesTarget reports whether expr names a
	// variable or parameter whose declared/inferred type already equals
	// target (proof case "variable"/"parameter").
	VariableOrParameterMatchesTarget(expr ir.Expression, target ir.Type) (matches bool, isParameter bool)
	// DotnetReturnMatchesTarget reports whether expr is a call whose
	// resolved host return type already equals target.
	DotnetReturnMatchesTarget(expr ir.Expression, target ir.Type) bool
}

// NumericProofForModule runs pass 3 over one module's statements.
func NumericProofForModule(m *ir.Module, oracle ProofOracle, collector *diag.Collector) (*ir.Module, *diag.Collector) {
	for _, s := range m.Body {
		collector = proveStatement(s, oracle, collector, m.Path)
	}
	return m, collector
}

func proveStatement(s ir.Statement, oracle ProofOracle, collector *diag.Collector, path string) *diag.Collector {
	switch n := s.(type) {
	case *ir.VarDecl:
		collector = proveExpr(n.Initializer, oracle, collector, path)
	case *ir.ExprStatement:
		collector = proveExpr(n.Expr, oracle, collector, path)
	case *ir.Return:
		collector = proveExpr(n.Argument, oracle, collector, path)
	case *ir.If:
		collector = proveExpr(n.Cond, oracle, collector, path)
		collector = proveStatement(n.Then, oracle, collector, path)
		if n.Else != nil {
			collector = proveStatement(n.Else, oracle, collector, path)
		}
	case *ir.Block:
		for _, b := range n.Statements {
			collector = proveStatement(b, oracle, collector, path)
		}
	case *ir.FuncDecl:
		for _, b := range n.Body {
			collector = proveStatement(b, oracle, collector, path)
		}
	case *ir.While:
		collector = proveExpr(n.Cond, oracle, collector, path)
		collector = proveStatement(n.Body, oracle, collector, path)
	}
	return collector
}

func proveExpr(e ir.Expression, oracle ProofOracle, collector *diag.Collector, path string) *diag.Collector {
	if e == nil {
		return collector
	}
	switch n := e.(type) {
	case *ir.NumericNarrowing:
		collector = proveExpr(n.Argument, oracle, collector, path)
		if n.Proof != nil {
			return collector
		}
		proof := deriveProof(n, oracle)
		if proof == nil {
			return collector.Addf(errors.TSN5101, diag.Error, ir.Pos{File: path},
				"numeric narrowing has no proof for target %s", n.Target.String())
		}
		n.Proof = proof
	case *ir.Binary:
		collector = proveExpr(n.Left, oracle, collector, path)
		collector = proveExpr(n.Right, oracle, collector, path)
	case *ir.Unary:
		collector = proveExpr(n.Operand, oracle, collector, path)
	case *ir.Call:
		for _, a := range n.Args {
			collector = proveExpr(a, oracle, collector, path)
		}
	case *ir.Assignment:
		collector = proveExpr(n.Value, oracle, collector, path)
	}
	return collector
}

func deriveProof(n *ir.NumericNarrowing, oracle ProofOracle) *ir.Proof {
	if lit, ok := n.Argument.(*ir.Literal); ok {
		if lit.Kind == ir.LitNumber {
			return &ir.Proof{Kind: ir.ProofLiteral, Detail: "literal lexeme fits target"}
		}
	}
	if bin, ok := n.Argument.(*ir.Binary); ok {
		_ = bin
		return &ir.Proof{Kind: ir.ProofBinaryOp, Detail: "binary operator preserves integrality"}
	}
	if un, ok := n.Argument.(*ir.Unary); ok {
		_ = un
		return &ir.Proof{Kind: ir.ProofUnaryOp, Detail: "unary operator preserves integrality"}
	}
	if oracle != nil {
		if matches, isParam := oracle.VariableOrParameterMatchesTarget(n.Argument, n.Target); matches {
			if isParam {
				return &ir.Proof{Kind: ir.ProofParameter, Detail: "bound parameter type already matches target"}
			}
			return &ir.Proof{Kind: ir.ProofVariable, Detail: "bound variable type already matches target"}
		}
		if oracle.DotnetReturnMatchesTarget(n.Argument, n.Target) {
			return &ir.Proof{Kind: ir.ProofDotnetReturn, Detail: "host API return type already matches target"}
		}
	}
	return nil
}
