package irbuild

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

func TestComputeNarrowingRewritesTypeofGuard(t *testing.T) {
	guard := &ir.Binary{
		Op:    ir.OpStrictEq,
		Left:  &ir.Unary{Op: ir.UnaryTypeof, Operand: &ir.Identifier{Name: "x"}},
		Right: &ir.Literal{Kind: ir.LitString, Value: "string"},
	}
	ifStmt := &ir.If{Cond: guard, Then: &ir.Block{}}
	ComputeNarrowing([]ir.Statement{ifStmt})

	narrowed, ok := ifStmt.Cond.(*ir.Identifier)
	if !ok {
		t.Fatalf("expected guard to be rewritten to *ir.Identifier, got %T", ifStmt.Cond)
	}
	if narrowed.NarrowedName != "x" {
		t.Errorf("expected NarrowedName x, got %q", narrowed.NarrowedName)
	}
	prim, ok := narrowed.NarrowedType.(ir.PrimitiveType)
	if !ok || prim.Kind != ir.PrimString {
		t.Errorf("expected narrowed type string, got %v", narrowed.NarrowedType)
	}
}

func TestComputeNarrowingRecognizesReversedOperandOrder(t *testing.T) {
	guard := &ir.Binary{
		Op:    ir.OpEq,
		Left:  &ir.Literal{Kind: ir.LitString, Value: "number"},
		Right: &ir.Unary{Op: ir.UnaryTypeof, Operand: &ir.Identifier{Name: "n"}},
	}
	ifStmt := &ir.If{Cond: guard, Then: &ir.Block{}}
	ComputeNarrowing([]ir.Statement{ifStmt})

	narrowed, ok := ifStmt.Cond.(*ir.Identifier)
	if !ok || narrowed.NarrowedName != "n" {
		t.Fatalf("expected reversed-order guard on n to be recognized, got %+v", ifStmt.Cond)
	}
}

func TestComputeNarrowingLeavesOrdinaryGuardsAlone(t *testing.T) {
	guard := &ir.Binary{Op: ir.OpLt, Left: &ir.Identifier{Name: "n"}, Right: &ir.Literal{Kind: ir.LitNumber, Value: 3.0}}
	ifStmt := &ir.If{Cond: guard, Then: &ir.Block{}}
	ComputeNarrowing([]ir.Statement{ifStmt})

	if ifStmt.Cond != guard {
		t.Errorf("expected non-narrowing guard to be left untouched")
	}
}

func TestComputeNarrowingRecursesIntoNestedBlocks(t *testing.T) {
	innerGuard := &ir.Binary{
		Op:    ir.OpStrictEq,
		Left:  &ir.Unary{Op: ir.UnaryTypeof, Operand: &ir.Identifier{Name: "y"}},
		Right: &ir.Literal{Kind: ir.LitString, Value: "boolean"},
	}
	innerIf := &ir.If{Cond: innerGuard, Then: &ir.Block{}}
	outer := &ir.While{Cond: &ir.Literal{Kind: ir.LitBool, Value: true}, Body: &ir.Block{Statements: []ir.Statement{innerIf}}}

	ComputeNarrowing([]ir.Statement{outer})

	narrowed, ok := innerIf.Cond.(*ir.Identifier)
	if !ok || narrowed.NarrowedName != "y" {
		t.Fatalf("expected narrowing inside a nested while body, got %+v", innerIf.Cond)
	}
}
