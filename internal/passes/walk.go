package passes

import "github.com/tsoniclang/tsonic-sub006/internal/ir"

// walkModuleTypes visits every Type-typed field reachable from m's
// declarations, statements, and the expressions nested inside them,
// calling visit on each. unknown is called with a description of any
// statement or expression kind the walker does not recognize, rather than
// the walker silently skipping it — both switches below are meant to be
// exhaustive over the closed Statement/Expression sums (spec §3.1), so an
// unmatched kind is always a compiler bug, never a no-op. Used by the
// soundness gate (pass 2, AnyType); anonymous-type lowering (pass 1)
// rewrites types with its own walker in anonymous.go.
func walkModuleTypes(m *ir.Module, visit func(t ir.Type), unknown func(kind string)) {
	for _, s := range m.Body {
		walkStmtTypes(s, visit, unknown)
	}
	for _, td := range m.Synthesized {
		walkStmtTypes(td, visit, unknown)
	}
}

func walkStmtTypes(s ir.Statement, visit func(t ir.Type), unknown func(kind string)) {
	if s == nil {
		return
	}
	switch n := s.(type) {
	case *ir.VarDecl:
		if n.Declared != nil {
			visit(n.Declared)
		}
		walkExprTypes(n.Initializer, visit, unknown)
	case *ir.FuncDecl:
		if n.ReturnType != nil {
			visit(n.ReturnType)
		}
		if n.YieldType != nil {
			visit(n.YieldType)
		}
		if n.SentType != nil {
			visit(n.SentType)
		}
		if n.NextType != nil {
			visit(n.NextType)
		}
		for _, p := range n.Parameters {
			walkParamTypes(p, visit, unknown)
		}
		for _, b := range n.Body {
			walkStmtTypes(b, visit, unknown)
		}
	case *ir.ClassDecl:
		for _, f := range n.Fields {
			if f.Declared != nil {
				visit(f.Declared)
			}
			walkExprTypes(f.Initializer, visit, unknown)
		}
		for _, meth := range n.Methods {
			walkStmtTypes(meth, visit, unknown)
		}
	case *ir.InterfaceDecl:
		for _, mem := range n.Members {
			if mem.Declared != nil {
				visit(mem.Declared)
			}
		}
	case *ir.EnumDecl:
		for _, mem := range n.Members {
			walkExprTypes(mem.Value, visit, unknown)
		}
	case *ir.TypeAliasDecl:
		if n.Aliased != nil {
			visit(n.Aliased)
		}
	case *ir.Block:
		for _, b := range n.Statements {
			walkStmtTypes(b, visit, unknown)
		}
	case *ir.If:
		walkExprTypes(n.Cond, visit, unknown)
		walkStmtTypes(n.Then, visit, unknown)
		if n.Else != nil {
			walkStmtTypes(n.Else, visit, unknown)
		}
	case *ir.While:
		walkExprTypes(n.Cond, visit, unknown)
		walkStmtTypes(n.Body, visit, unknown)
	case *ir.For:
		if n.Init != nil {
			if n.Init.Decl != nil {
				walkStmtTypes(n.Init.Decl, visit, unknown)
			}
			walkExprTypes(n.Init.Expr, visit, unknown)
		}
		walkExprTypes(n.Cond, visit, unknown)
		walkExprTypes(n.Update, visit, unknown)
		walkStmtTypes(n.Body, visit, unknown)
	case *ir.ForOf:
		walkExprTypes(n.Iterable, visit, unknown)
		walkStmtTypes(n.Body, visit, unknown)
	case *ir.Switch:
		walkExprTypes(n.Discriminant, visit, unknown)
		for _, c := range n.Cases {
			walkExprTypes(c.Test, visit, unknown)
			for _, b := range c.Statements {
				walkStmtTypes(b, visit, unknown)
			}
		}
	case *ir.Try:
		if n.Body != nil {
			walkStmtTypes(n.Body, visit, unknown)
		}
		if n.Catch != nil && n.Catch.Body != nil {
			walkStmtTypes(n.Catch.Body, visit, unknown)
		}
		if n.Finally != nil {
			walkStmtTypes(n.Finally, visit, unknown)
		}
	case *ir.Throw:
		walkExprTypes(n.Argument, visit, unknown)
	case *ir.Return:
		walkExprTypes(n.Argument, visit, unknown)
	case *ir.GeneratorReturn:
		walkExprTypes(n.Argument, visit, unknown)
	case *ir.Break:
	case *ir.Continue:
	case *ir.ExprStatement:
		walkExprTypes(n.Expr, visit, unknown)
	case *ir.Empty:
	case *ir.YieldStatement:
		if n.ReceivedType != nil {
			visit(n.ReceivedType)
		}
		walkExprTypes(n.Output, visit, unknown)
	default:
		unknown("statement")
	}
}

func walkParamTypes(p *ir.Parameter, visit func(t ir.Type), unknown func(kind string)) {
	if p.DeclaredType != nil {
		visit(p.DeclaredType)
	}
	walkExprTypes(p.Initializer, visit, unknown)
}

func walkExprTypes(e ir.Expression, visit func(t ir.Type), unknown func(kind string)) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ir.Literal:
	case *ir.Identifier:
		if n.NarrowedType != nil {
			visit(n.NarrowedType)
		}
	case *ir.ArrayExpr:
		for _, el := range n.Elements {
			walkExprTypes(el, visit, unknown)
		}
	case *ir.ObjectExpr:
		for _, p := range n.Properties {
			walkExprTypes(p.Value, visit, unknown)
		}
		for _, sp := range n.Spreads {
			walkExprTypes(sp, visit, unknown)
		}
	case *ir.MemberAccess:
		walkExprTypes(n.Object, visit, unknown)
	case *ir.Call:
		walkExprTypes(n.Callee, visit, unknown)
		for _, a := range n.Args {
			walkExprTypes(a, visit, unknown)
		}
		for _, t := range n.TypeArguments {
			visit(t)
		}
	case *ir.New:
		walkExprTypes(n.Callee, visit, unknown)
		for _, a := range n.Args {
			walkExprTypes(a, visit, unknown)
		}
		for _, t := range n.TypeArguments {
			visit(t)
		}
	case *ir.Binary:
		walkExprTypes(n.Left, visit, unknown)
		walkExprTypes(n.Right, visit, unknown)
	case *ir.Logical:
		walkExprTypes(n.Left, visit, unknown)
		walkExprTypes(n.Right, visit, unknown)
	case *ir.Unary:
		walkExprTypes(n.Operand, visit, unknown)
	case *ir.Update:
		walkExprTypes(n.Operand, visit, unknown)
	case *ir.Assignment:
		walkExprTypes(n.Target, visit, unknown)
		walkExprTypes(n.Value, visit, unknown)
	case *ir.Conditional:
		walkExprTypes(n.Test, visit, unknown)
		walkExprTypes(n.Then, visit, unknown)
		walkExprTypes(n.Else, visit, unknown)
	case *ir.FunctionExpr:
		if n.ReturnType != nil {
			visit(n.ReturnType)
		}
		for _, p := range n.Parameters {
			walkParamTypes(p, visit, unknown)
		}
		for _, b := range n.Body {
			walkStmtTypes(b, visit, unknown)
		}
	case *ir.ArrowFunction:
		if n.ReturnType != nil {
			visit(n.ReturnType)
		}
		for _, p := range n.Parameters {
			walkParamTypes(p, visit, unknown)
		}
		walkExprTypes(n.ExprBody, visit, unknown)
		for _, b := range n.BlockBody {
			walkStmtTypes(b, visit, unknown)
		}
	case *ir.TemplateLiteral:
		for _, ex := range n.Expressions {
			walkExprTypes(ex, visit, unknown)
		}
	case *ir.Spread:
		walkExprTypes(n.Argument, visit, unknown)
	case *ir.Await:
		walkExprTypes(n.Argument, visit, unknown)
	case *ir.Yield:
		walkExprTypes(n.Argument, visit, unknown)
	case *ir.This:
	case *ir.NumericNarrowing:
		if n.Target != nil {
			visit(n.Target)
		}
		walkExprTypes(n.Argument, visit, unknown)
	case *ir.TypeAssertion:
		if n.Target != nil {
			visit(n.Target)
		}
		walkExprTypes(n.Expr, visit, unknown)
	case *ir.AsInterface:
		if n.Target != nil {
			visit(n.Target)
		}
		walkExprTypes(n.Expr, visit, unknown)
	case *ir.Trycast:
		if n.Target != nil {
			visit(n.Target)
		}
		walkExprTypes(n.Expr, visit, unknown)
	case *ir.Stackalloc:
		if n.Element != nil {
			visit(n.Element)
		}
		walkExprTypes(n.Length, visit, unknown)
	case *ir.Defaultof:
		if n.Target != nil {
			visit(n.Target)
		}
	default:
		unknown("expression")
	}
}
