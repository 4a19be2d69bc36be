package irbuild

import "github.com/tsoniclang/tsonic-sub006/internal/ir"

// ComputeNarrowing walks a function body and rewrites every `if` whose
// guard is a recognized narrowing shape into a bare *ir.Identifier
// carrying NarrowedName/NarrowedType — the contract
// internal/emit/stmt.go's emitIf reads to realize a narrowed reference
// inside the guarded branch (spec §4.4 "Narrowing metadata on guards").
// The only shape recognized so far is a typeof comparison against a
// string literal (`typeof x === "string"`, `"number" == typeof x`, ...),
// in either operand order and with either equality operator. Every other
// statement kind's nested statement lists are walked too, so a guard
// nested arbitrarily deep in the body is still found.
func ComputeNarrowing(body []ir.Statement) []ir.Statement {
	for _, s := range body {
		narrowStmt(s)
	}
	return body
}

func narrowStmt(s ir.Statement) {
	switch n := s.(type) {
	case nil:
		return
	case *ir.Block:
		for _, c := range n.Statements {
			narrowStmt(c)
		}
	case *ir.If:
		if guard, ok := recognizeTypeofGuard(n.Cond); ok {
			n.Cond = guard
		}
		narrowStmt(n.Then)
		narrowStmt(n.Else)
	case *ir.While:
		narrowStmt(n.Body)
	case *ir.For:
		narrowStmt(n.Body)
	case *ir.ForOf:
		narrowStmt(n.Body)
	case *ir.Switch:
		for i := range n.Cases {
			for _, c := range n.Cases[i].Statements {
				narrowStmt(c)
			}
		}
	case *ir.Try:
		if n.Body != nil {
			narrowStmt(n.Body)
		}
		if n.Catch != nil && n.Catch.Body != nil {
			narrowStmt(n.Catch.Body)
		}
		if n.Finally != nil {
			narrowStmt(n.Finally)
		}
	}
}

// recognizeTypeofGuard recognizes `typeof x === "<kind>"`, in either
// operand order and with either `==`/`===`, returning the identifier to
// substitute for the guard expression.
func recognizeTypeofGuard(cond ir.Expression) (*ir.Identifier, bool) {
	bin, ok := cond.(*ir.Binary)
	if !ok || (bin.Op != ir.OpStrictEq && bin.Op != ir.OpEq) {
		return nil, false
	}
	if id, kind, ok := typeofOperand(bin.Left, bin.Right); ok {
		return narrowedIdentifier(id, kind), true
	}
	if id, kind, ok := typeofOperand(bin.Right, bin.Left); ok {
		return narrowedIdentifier(id, kind), true
	}
	return nil, false
}

func typeofOperand(typeofSide, literalSide ir.Expression) (*ir.Identifier, string, bool) {
	unary, ok := typeofSide.(*ir.Unary)
	if !ok || unary.Op != ir.UnaryTypeof {
		return nil, "", false
	}
	id, ok := unary.Operand.(*ir.Identifier)
	if !ok {
		return nil, "", false
	}
	lit, ok := literalSide.(*ir.Literal)
	if !ok || lit.Kind != ir.LitString {
		return nil, "", false
	}
	kind, ok := lit.Value.(string)
	if !ok {
		return nil, "", false
	}
	return id, kind, true
}

func narrowedIdentifier(id *ir.Identifier, typeofKind string) *ir.Identifier {
	return &ir.Identifier{
		Node:         id.Node,
		Name:         id.Name,
		NarrowedName: id.Name,
		NarrowedType: narrowedTypeFor(typeofKind),
	}
}

func narrowedTypeFor(typeofKind string) ir.Type {
	switch typeofKind {
	case "string":
		return ir.PrimitiveType{Kind: ir.PrimString}
	case "number":
		return ir.PrimitiveType{Kind: ir.PrimNumber}
	case "boolean":
		return ir.PrimitiveType{Kind: ir.PrimBool}
	default:
		return ir.UnknownType{}
	}
}
