package emit

import (
	"strings"
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/hostast"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

func testContext() Context {
	return NewContext(&ir.Module{Path: "widget.tsn", ContainerName: "Widget"}, nil)
}

func TestEmitIfNarrowingGuardRendersIsAsAndRename(t *testing.T) {
	ctx := testContext()
	guard := &ir.Identifier{
		Name:         "x",
		NarrowedName: "",
		NarrowedType: ir.ReferenceType{Name: "Cat", ResolvedHostName: "Cat"},
	}
	n := &ir.If{
		Cond: guard,
		Then: &ir.Block{Statements: []ir.Statement{
			&ir.ExprStatement{Expr: &ir.Identifier{Name: "x"}},
		}},
	}
	stmt := emitIf(ctx, n)
	ifStmt, ok := stmt.(*hostast.IfStmt)
	if !ok {
		t.Fatalf("expected *hostast.IfStmt, got %T", stmt)
	}
	if !strings.Contains(string(ifStmt.Cond), "x.IsCat()") {
		t.Fatalf("expected guard condition to call IsCat(), got %q", ifStmt.Cond)
	}
	if len(ifStmt.Then) < 2 {
		t.Fatalf("expected narrowed local decl + original body, got %d stmts", len(ifStmt.Then))
	}
	varStmt, ok := ifStmt.Then[0].(*hostast.VarStmt)
	if !ok {
		t.Fatalf("expected first then-statement to be a VarStmt, got %T", ifStmt.Then[0])
	}
	if !strings.Contains(string(varStmt.Init), "x.AsCat()") {
		t.Fatalf("expected narrowed local init to call AsCat(), got %q", varStmt.Init)
	}
	body, ok := ifStmt.Then[1].(*hostast.ExprStmt)
	if !ok {
		t.Fatalf("expected second then-statement to be an ExprStmt, got %T", ifStmt.Then[1])
	}
	if string(body.Expr) != varStmt.Name {
		t.Fatalf("expected guarded body to reference the fresh narrowed name %q, got %q", varStmt.Name, body.Expr)
	}
}

func TestEmitIfNarrowingDoesNotLeakOutsideBranch(t *testing.T) {
	ctx := testContext()
	guard := &ir.Identifier{Name: "x", NarrowedType: ir.ReferenceType{Name: "Dog", ResolvedHostName: "Dog"}}
	n := &ir.If{
		Cond: guard,
		Then: &ir.Block{Statements: []ir.Statement{&ir.ExprStatement{Expr: &ir.Identifier{Name: "x"}}}},
		Else: &ir.Block{Statements: []ir.Statement{&ir.ExprStatement{Expr: &ir.Identifier{Name: "x"}}}},
	}
	stmt := emitIf(ctx, n).(*hostast.IfStmt)
	elseBody := stmt.Else[0].(*hostast.ExprStmt)
	if string(elseBody.Expr) != "x" {
		t.Fatalf("expected else-branch identifier to remain unrenamed, got %q", elseBody.Expr)
	}
}

func TestEmitIfOrdinaryConditionUnaffected(t *testing.T) {
	ctx := testContext()
	n := &ir.If{
		Cond: &ir.Literal{Kind: ir.LitBool, Value: true},
		Then: &ir.Block{Statements: []ir.Statement{&ir.Return{}}},
	}
	stmt := emitIf(ctx, n).(*hostast.IfStmt)
	if stmt.Cond != "true" {
		t.Fatalf("expected cond 'true', got %q", stmt.Cond)
	}
	if len(stmt.Then) != 1 {
		t.Fatalf("expected single return statement in then, got %d", len(stmt.Then))
	}
}

func TestEmitTryCatchFinally(t *testing.T) {
	ctx := testContext()
	n := &ir.Try{
		Body: &ir.Block{Statements: []ir.Statement{&ir.ExprStatement{Expr: &ir.Literal{Kind: ir.LitNumber, Lexeme: "1", Intent: ir.IntentInt32}}}},
		Catch: &ir.Catch{
			Param: &ir.IdentifierPattern{Name: "err"},
			Body:  &ir.Block{Statements: []ir.Statement{&ir.Throw{Argument: &ir.Identifier{Name: "err"}}}},
		},
		Finally: &ir.Block{Statements: []ir.Statement{&ir.ExprStatement{Expr: &ir.Identifier{Name: "cleanup"}}}},
	}
	stmt := emitStatement(ctx, n)
	tryStmt, ok := stmt.(*hostast.TryStmt)
	if !ok {
		t.Fatalf("expected *hostast.TryStmt, got %T", stmt)
	}
	if tryStmt.CatchType != "Exception" {
		t.Fatalf("expected CatchType Exception, got %q", tryStmt.CatchType)
	}
	if tryStmt.CatchBind != "err" {
		t.Fatalf("expected CatchBind err, got %q", tryStmt.CatchBind)
	}
	if len(tryStmt.FinallyBody) != 1 {
		t.Fatalf("expected one finally statement, got %d", len(tryStmt.FinallyBody))
	}
}

func TestEmitForOf(t *testing.T) {
	ctx := testContext()
	n := &ir.ForOf{
		Binding:  &ir.IdentifierPattern{Name: "item"},
		Iterable: &ir.Identifier{Name: "items"},
		Body:     &ir.Block{Statements: []ir.Statement{&ir.Break{}}},
	}
	stmt := emitStatement(ctx, n).(*hostast.ForEachStmt)
	if stmt.Binding != "item" {
		t.Fatalf("expected binding item, got %q", stmt.Binding)
	}
	if string(stmt.Iterable) != "items" {
		t.Fatalf("expected iterable items, got %q", stmt.Iterable)
	}
}

func TestEmitYieldStatementPlainAndDelegated(t *testing.T) {
	ctx := testContext()
	plain := &ir.YieldStatement{Output: &ir.Literal{Kind: ir.LitNumber, Lexeme: "1", Intent: ir.IntentInt32}}
	stmt := emitStatement(ctx, plain)
	if _, ok := stmt.(*hostast.YieldReturnStmt); !ok {
		t.Fatalf("expected *hostast.YieldReturnStmt, got %T", stmt)
	}

	delegated := &ir.YieldStatement{Output: &ir.Identifier{Name: "source"}, IsDelegated: true}
	stmt2 := emitStatement(ctx, delegated)
	raw, ok := stmt2.(*hostast.RawStmt)
	if !ok {
		t.Fatalf("expected *hostast.RawStmt for delegated yield, got %T", stmt2)
	}
	if !strings.Contains(raw.Text, "foreach") || !strings.Contains(raw.Text, "yield return") {
		t.Fatalf("expected delegated yield to lower to a foreach/yield-return loop, got %q", raw.Text)
	}
}

func TestEmitGeneratorReturnSetsReturnValueThenYieldBreak(t *testing.T) {
	ctx := testContext()
	n := &ir.GeneratorReturn{Argument: &ir.Literal{Kind: ir.LitNumber, Lexeme: "1", Intent: ir.IntentInt32}}
	stmt := emitStatement(ctx, n).(*hostast.BlockStmt)
	if len(stmt.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmt.Body))
	}
	if _, ok := stmt.Body[1].(*hostast.YieldBreakStmt); !ok {
		t.Fatalf("expected second statement to be a YieldBreakStmt, got %T", stmt.Body[1])
	}
}
