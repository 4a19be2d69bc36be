package emit

import (
	"fmt"

	"github.com/tsoniclang/tsonic-sub006/internal/hostast"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// emitStatement renders s as a host statement, the statement half of the
// mutually recursive pair with emitExpression (spec §4.6).
func emitStatement(ctx Context, s ir.Statement) hostast.Stmt {
	switch n := s.(type) {
	case *ir.VarDecl:
		return &hostast.VarStmt{
			Type: "var",
			Name: patternName(n.Pattern),
			Init: emitExpression(ctx, n.Initializer),
		}
	case *ir.ExprStatement:
		return &hostast.ExprStmt{Expr: emitExpression(ctx, n.Expr)}
	case *ir.Return:
		if n.Argument == nil {
			return &hostast.ReturnStmt{}
		}
		return &hostast.ReturnStmt{Value: emitExpression(ctx, n.Argument)}
	case *ir.GeneratorReturn:
		return &hostast.BlockStmt{Body: []hostast.Stmt{
			&hostast.ExprStmt{Expr: hostast.Expr(fmt.Sprintf("__returnValue = %s", emitExpression(ctx, n.Argument)))},
			&hostast.YieldBreakStmt{},
		}}
	case *ir.Throw:
		return &hostast.ThrowStmt{Value: emitExpression(ctx, n.Argument)}
	case *ir.Break:
		return &hostast.BreakStmt{Label: n.Label}
	case *ir.Continue:
		return &hostast.ContinueStmt{Label: n.Label}
	case *ir.Block:
		return &hostast.BlockStmt{Body: emitStatements(ctx, n.Statements)}
	case *ir.If:
		return emitIf(ctx, n)
	case *ir.While:
		return &hostast.WhileStmt{Cond: emitExpression(ctx, n.Cond), Body: emitBody(ctx, n.Body)}
	case *ir.For:
		return emitFor(ctx, n)
	case *ir.ForOf:
		return &hostast.ForEachStmt{
			ElementType: "var",
			Binding:     patternName(n.Binding),
			Iterable:    emitExpression(ctx, n.Iterable),
			IsAwait:     n.IsAwait,
			Body:        emitBody(ctx, n.Body),
		}
	case *ir.Switch:
		return emitSwitch(ctx, n)
	case *ir.Try:
		return emitTry(ctx, n)
	case *ir.YieldStatement:
		if n.IsDelegated {
			return &hostast.RawStmt{Text: fmt.Sprintf("foreach (var __y in %s) yield return __y;", emitExpression(ctx, n.Output))}
		}
		return &hostast.YieldReturnStmt{Value: emitExpression(ctx, n.Output)}
	case *ir.Empty:
		return &hostast.BlockStmt{}
	case *ir.FuncDecl:
		return &hostast.RawStmt{Text: fmt.Sprintf("%s %s(%s) { %s }",
			HostTypeName(n.ReturnType), n.Name, joinParams(n.Parameters), inlineBody(ctx, n.Body))}
	case *ir.ClassDecl:
		return &hostast.RawStmt{Text: fmt.Sprintf("/* nested class %s emitted at module scope */", n.Name)}
	}
	return &hostast.RawStmt{Text: fmt.Sprintf("/* unrecognized statement %T */", s)}
}

func emitStatements(ctx Context, stmts []ir.Statement) []hostast.Stmt {
	out := make([]hostast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = emitStatement(ctx, s)
	}
	return out
}

func emitBody(ctx Context, s ir.Statement) []hostast.Stmt {
	if block, ok := s.(*ir.Block); ok {
		return emitStatements(ctx, block.Statements)
	}
	return []hostast.Stmt{emitStatement(ctx, s)}
}

func patternName(p ir.Pattern) string {
	switch n := p.(type) {
	case *ir.IdentifierPattern:
		return n.Name
	default:
		return "__destructured"
	}
}

// emitIf is where narrowing (spec §4.6 "Narrowing") is realized: when the
// condition is a guard on an identifier carrying narrowing metadata (set
// by the IR builder, C8), the branch body is emitted with the fresh
// narrowed local bound via a rename-table entry instead of the original
// name, exactly as spec.md §4.6 describes for union narrowing.
func emitIf(ctx Context, n *ir.If) hostast.Stmt {
	if guard, ok := n.Cond.(*ir.Identifier); ok && guard.NarrowedType != nil {
		targetName := HostTypeName(guard.NarrowedType)
		fresh := ctx.freshNarrowedName(guard.Name, targetName)
		thenCtx := ctx.withRename(guard.Name, fresh)
		then := []hostast.Stmt{
			&hostast.VarStmt{Type: "var", Name: fresh, Init: hostast.Expr(fmt.Sprintf("%s.As%s()", guard.Name, targetName))},
		}
		then = append(then, emitBody(thenCtx, n.Then)...)
		cond := hostast.Expr(fmt.Sprintf("%s.Is%s()", guard.Name, targetName))
		var els []hostast.Stmt
		if n.Else != nil {
			els = emitBody(ctx, n.Else)
		}
		return &hostast.IfStmt{Cond: cond, Then: then, Else: els}
	}
	var els []hostast.Stmt
	if n.Else != nil {
		els = emitBody(ctx, n.Else)
	}
	return &hostast.IfStmt{Cond: emitExpression(ctx, n.Cond), Then: emitBody(ctx, n.Then), Else: els}
}

func emitFor(ctx Context, n *ir.For) hostast.Stmt {
	init := ""
	if n.Init != nil {
		if n.Init.Decl != nil {
			init = fmt.Sprintf("var %s = %s", patternName(n.Init.Decl.Pattern), emitExpression(ctx, n.Init.Decl.Initializer))
		} else if n.Init.Expr != nil {
			init = string(emitExpression(ctx, n.Init.Expr))
		}
	}
	cond := ""
	if n.Cond != nil {
		cond = string(emitExpression(ctx, n.Cond))
	}
	update := ""
	if n.Update != nil {
		update = string(emitExpression(ctx, n.Update))
	}
	header := fmt.Sprintf("for (%s; %s; %s)", init, cond, update)
	return &hostast.RawStmt{Text: header + "\n{\n" + inlineBody(ctx, bodyStatements(n.Body)) + "}\n"}
}

func bodyStatements(s ir.Statement) []ir.Statement {
	if block, ok := s.(*ir.Block); ok {
		return block.Statements
	}
	return []ir.Statement{s}
}

func inlineBody(ctx Context, stmts []ir.Statement) string {
	out := ""
	for _, s := range stmts {
		out += "  " + hostast.PrintStmt(emitStatement(ctx, s)) + "\n"
	}
	return out
}

func joinParams(params []*ir.Parameter) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += HostTypeName(p.DeclaredType) + " " + patternName(p.Pattern)
	}
	return out
}

func emitSwitch(ctx Context, n *ir.Switch) hostast.Stmt {
	var b string
	b += fmt.Sprintf("switch (%s)\n{\n", emitExpression(ctx, n.Discriminant))
	for _, c := range n.Cases {
		if c.Test == nil {
			b += "  default:\n"
		} else {
			b += fmt.Sprintf("  case %s:\n", emitExpression(ctx, c.Test))
		}
		for _, st := range c.Statements {
			b += "    " + hostast.PrintStmt(emitStatement(ctx, st)) + "\n"
		}
		b += "    break;\n"
	}
	b += "}\n"
	return &hostast.RawStmt{Text: b}
}

func emitTry(ctx Context, n *ir.Try) hostast.Stmt {
	out := &hostast.TryStmt{Body: emitBody(ctx, n.Body)}
	if n.Catch != nil {
		out.CatchBody = emitBody(ctx, n.Catch.Body)
		if n.Catch.Param != nil {
			out.CatchType = "Exception"
			out.CatchBind = patternName(n.Catch.Param)
		}
	}
	if n.Finally != nil {
		out.FinallyBody = emitBody(ctx, n.Finally)
	}
	return out
}
