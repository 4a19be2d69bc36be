package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsoniclang/tsonic-sub006/internal/hostast"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// emitExpression renders e as a host-language expression fragment. This
// is the expression half of the mutually recursive pair with
// emitStatement (spec §4.6).
func emitExpression(ctx Context, e ir.Expression) hostast.Expr {
	if e == nil {
		return ""
	}
	switch n := e.(type) {
	case *ir.Literal:
		return emitLiteral(n)
	case *ir.Identifier:
		name := ctx.resolve(n.Name)
		if n.NarrowedName != "" {
			name = n.NarrowedName
		}
		return hostast.Expr(name)
	case *ir.ArrayExpr:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = string(emitExpression(ctx, el))
		}
		return hostast.Expr(fmt.Sprintf("new[] { %s }", strings.Join(parts, ", ")))
	case *ir.ObjectExpr:
		var parts []string
		for _, p := range n.Properties {
			parts = append(parts, fmt.Sprintf("%s = %s", p.Key, emitExpression(ctx, p.Value)))
		}
		return hostast.Expr(fmt.Sprintf("new { %s }", strings.Join(parts, ", ")))
	case *ir.MemberAccess:
		obj := emitExpression(ctx, n.Object)
		op := "."
		if n.Optional {
			op = "?."
		}
		if n.Computed {
			return hostast.Expr(fmt.Sprintf("%s[%s]", obj, n.Property))
		}
		return hostast.Expr(fmt.Sprintf("%s%s%s", obj, op, n.Property))
	case *ir.Call:
		return emitCall(ctx, n)
	case *ir.New:
		return emitNew(ctx, n)
	case *ir.Binary:
		return hostast.Expr(fmt.Sprintf("(%s %s %s)", emitExpression(ctx, n.Left), string(n.Op), emitExpression(ctx, n.Right)))
	case *ir.Logical:
		return hostast.Expr(fmt.Sprintf("(%s %s %s)", emitExpression(ctx, n.Left), string(n.Op), emitExpression(ctx, n.Right)))
	case *ir.Unary:
		op := string(n.Op)
		if op == "typeof" {
			return hostast.Expr(fmt.Sprintf("%s.GetType()", emitExpression(ctx, n.Operand)))
		}
		return hostast.Expr(fmt.Sprintf("%s%s", op, emitExpression(ctx, n.Operand)))
	case *ir.Update:
		if n.Prefix {
			return hostast.Expr(fmt.Sprintf("%s%s", string(n.Op), emitExpression(ctx, n.Operand)))
		}
		return hostast.Expr(fmt.Sprintf("%s%s", emitExpression(ctx, n.Operand), string(n.Op)))
	case *ir.Assignment:
		return hostast.Expr(fmt.Sprintf("%s %s %s", emitExpression(ctx, n.Target), string(n.Op), emitExpression(ctx, n.Value)))
	case *ir.Conditional:
		return hostast.Expr(fmt.Sprintf("(%s ? %s : %s)", emitExpression(ctx, n.Test), emitExpression(ctx, n.Then), emitExpression(ctx, n.Else)))
	case *ir.FunctionExpr:
		return emitFunctionLiteral(ctx, n.Parameters, n.Body)
	case *ir.ArrowFunction:
		if n.ExprBody != nil {
			params := paramNames(n.Parameters)
			return hostast.Expr(fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), emitExpression(ctx, n.ExprBody)))
		}
		return emitFunctionLiteral(ctx, n.Parameters, n.BlockBody)
	case *ir.TemplateLiteral:
		return emitTemplateLiteral(ctx, n)
	case *ir.Spread:
		return hostast.Expr(fmt.Sprintf("%s", emitExpression(ctx, n.Argument)))
	case *ir.Await:
		return hostast.Expr(fmt.Sprintf("(await %s)", emitExpression(ctx, n.Argument)))
	case *ir.Yield:
		// only reached if yield-lowering (pass 5) didn't run; still render
		// something rather than crash the emitter.
		return hostast.Expr(fmt.Sprintf("/* unlowered yield */ %s", emitExpression(ctx, n.Argument)))
	case *ir.This:
		return "this"
	case *ir.NumericNarrowing:
		return emitNumericNarrowing(ctx, n)
	case *ir.TypeAssertion:
		return hostast.Expr(fmt.Sprintf("((%s)%s)", HostTypeName(n.Target), emitExpression(ctx, n.Expr)))
	case *ir.AsInterface:
		return hostast.Expr(fmt.Sprintf("((%s)(object)%s)", HostTypeName(n.Target), emitExpression(ctx, n.Expr)))
	case *ir.Trycast:
		return hostast.Expr(fmt.Sprintf("(%s as %s)", emitExpression(ctx, n.Expr), HostTypeName(n.Target)))
	case *ir.Stackalloc:
		return hostast.Expr(fmt.Sprintf("stackalloc %s[%s]", HostTypeName(n.Element), emitExpression(ctx, n.Length)))
	case *ir.Defaultof:
		return hostast.Expr(fmt.Sprintf("default(%s)", HostTypeName(n.Target)))
	}
	return hostast.Expr(fmt.Sprintf("/* unrecognized expression %T */", e))
}

func emitLiteral(lit *ir.Literal) hostast.Expr {
	switch lit.Kind {
	case ir.LitString:
		return hostast.Expr(strconv.Quote(fmt.Sprintf("%v", lit.Value)))
	case ir.LitNumber:
		switch lit.Intent {
		case ir.IntentInt32:
			return hostast.Expr(lit.Lexeme)
		case ir.IntentDouble:
			if !strings.ContainsAny(lit.Lexeme, ".eE") {
				return hostast.Expr(lit.Lexeme + ".0")
			}
			return hostast.Expr(lit.Lexeme)
		}
		return hostast.Expr(lit.Lexeme)
	case ir.LitBool:
		if b, ok := lit.Value.(bool); ok && b {
			return "true"
		}
		return "false"
	case ir.LitNull:
		return "null"
	case ir.LitUndefined:
		return "null"
	}
	return ""
}

func emitCall(ctx Context, n *ir.Call) hostast.Expr {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = string(emitExpression(ctx, a))
	}
	if n.Resolved != nil {
		return hostast.Expr(fmt.Sprintf("%s.%s(%s)", n.Resolved.ClrType, n.Resolved.Member, strings.Join(args, ", ")))
	}
	callee := emitExpression(ctx, n.Callee)
	return hostast.Expr(fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", ")))
}

func emitNew(ctx Context, n *ir.New) hostast.Expr {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = string(emitExpression(ctx, a))
	}
	if n.Resolved != nil {
		return hostast.Expr(fmt.Sprintf("new %s(%s)", n.Resolved.ClrType, strings.Join(args, ", ")))
	}
	callee := emitExpression(ctx, n.Callee)
	return hostast.Expr(fmt.Sprintf("new %s(%s)", callee, strings.Join(args, ", ")))
}

func emitTemplateLiteral(ctx Context, n *ir.TemplateLiteral) hostast.Expr {
	var b strings.Builder
	b.WriteString("$\"")
	for i, q := range n.Quasis {
		b.WriteString(strings.ReplaceAll(q, `"`, `\"`))
		if i < len(n.Expressions) {
			b.WriteString("{")
			b.WriteString(string(emitExpression(ctx, n.Expressions[i])))
			b.WriteString("}")
		}
	}
	b.WriteString("\"")
	return hostast.Expr(b.String())
}

// emitNumericNarrowing renders a proven numericNarrowing as a cast (spec
// §4.6's narrowing concern covers union guards; a numeric narrowing is
// simpler: it just needs the proof to exist, the cast is always emitted).
func emitNumericNarrowing(ctx Context, n *ir.NumericNarrowing) hostast.Expr {
	arg := emitExpression(ctx, n.Argument)
	return hostast.Expr(fmt.Sprintf("((%s)%s)", HostTypeName(n.Target), arg))
}

func paramNames(params []*ir.Parameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		if ip, ok := p.Pattern.(*ir.IdentifierPattern); ok {
			names[i] = ip.Name
		} else {
			names[i] = fmt.Sprintf("arg%d", i)
		}
	}
	return names
}

func emitFunctionLiteral(ctx Context, params []*ir.Parameter, body []ir.Statement) hostast.Expr {
	names := paramNames(params)
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(") => {\n")
	for _, s := range body {
		stmt := emitStatement(ctx, s)
		b.WriteString("  ")
		b.WriteString(hostast.PrintStmt(stmt))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return hostast.Expr(b.String())
}
