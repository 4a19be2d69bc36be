package passes

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

type stubOracle struct {
	matches     bool
	isParameter bool
	dotnet      bool
}

func (s stubOracle) VariableOrParameterMatchesTarget(ir.Expression, ir.Type) (bool, bool) {
	return s.matches, s.isParameter
}

func (s stubOracle) DotnetReturnMatchesTarget(ir.Expression, ir.Type) bool {
	return s.dotnet
}

func int32Target() ir.Type { return ir.PrimitiveType{Kind: ir.PrimInt32} }

func TestNumericProofLiteralArgument(t *testing.T) {
	narrowing := &ir.NumericNarrowing{
		Argument: &ir.Literal{Kind: ir.LitNumber, Lexeme: "3"},
		Target:   int32Target(),
	}
	m := &ir.Module{Path: "w.tsn", Body: []ir.Statement{
		&ir.ExprStatement{Expr: narrowing},
	}}
	_, c := NumericProofForModule(m, nil, diag.New())
	if c.HasErrors() {
		t.Fatalf("expected no errors, got %v", c.Codes())
	}
	if narrowing.Proof == nil || narrowing.Proof.Kind != ir.ProofLiteral {
		t.Fatalf("expected ProofLiteral attached, got %+v", narrowing.Proof)
	}
}

func TestNumericProofVariableViaOracle(t *testing.T) {
	narrowing := &ir.NumericNarrowing{
		Argument: &ir.Identifier{Name: "x"},
		Target:   int32Target(),
	}
	m := &ir.Module{Path: "w.tsn", Body: []ir.Statement{
		&ir.VarDecl{Initializer: narrowing},
	}}
	oracle := stubOracle{matches: true, isParameter: false}
	_, c := NumericProofForModule(m, oracle, diag.New())
	if c.HasErrors() {
		t.Fatalf("expected no errors, got %v", c.Codes())
	}
	if narrowing.Proof == nil || narrowing.Proof.Kind != ir.ProofVariable {
		t.Fatalf("expected ProofVariable attached, got %+v", narrowing.Proof)
	}
}

func TestNumericProofParameterViaOracle(t *testing.T) {
	narrowing := &ir.NumericNarrowing{
		Argument: &ir.Identifier{Name: "p"},
		Target:   int32Target(),
	}
	m := &ir.Module{Path: "w.tsn", Body: []ir.Statement{
		&ir.Return{Argument: narrowing},
	}}
	oracle := stubOracle{matches: true, isParameter: true}
	_, c := NumericProofForModule(m, oracle, diag.New())
	if c.HasErrors() {
		t.Fatalf("expected no errors, got %v", c.Codes())
	}
	if narrowing.Proof == nil || narrowing.Proof.Kind != ir.ProofParameter {
		t.Fatalf("expected ProofParameter attached, got %+v", narrowing.Proof)
	}
}

func TestNumericProofDotnetReturnViaOracle(t *testing.T) {
	narrowing := &ir.NumericNarrowing{
		Argument: &ir.Call{Callee: &ir.Identifier{Name: "f"}},
		Target:   int32Target(),
	}
	m := &ir.Module{Path: "w.tsn", Body: []ir.Statement{
		&ir.ExprStatement{Expr: narrowing},
	}}
	oracle := stubOracle{matches: false, dotnet: true}
	_, c := NumericProofForModule(m, oracle, diag.New())
	if c.HasErrors() {
		t.Fatalf("expected no errors, got %v", c.Codes())
	}
	if narrowing.Proof == nil || narrowing.Proof.Kind != ir.ProofDotnetReturn {
		t.Fatalf("expected ProofDotnetReturn attached, got %+v", narrowing.Proof)
	}
}

func TestNumericProofMissingEmitsTSN5101(t *testing.T) {
	narrowing := &ir.NumericNarrowing{
		Argument: &ir.Identifier{Name: "mystery"},
		Target:   int32Target(),
	}
	m := &ir.Module{Path: "w.tsn", Body: []ir.Statement{
		&ir.ExprStatement{Expr: narrowing},
	}}
	oracle := stubOracle{}
	_, c := NumericProofForModule(m, oracle, diag.New())
	codes := c.Codes()
	if len(codes) != 1 || codes[0] != "TSN5101" {
		t.Fatalf("expected exactly one TSN5101, got %v", codes)
	}
	if narrowing.Proof != nil {
		t.Fatal("expected no proof attached when none of the cases apply")
	}
}

func TestNumericProofSkipsAlreadyProven(t *testing.T) {
	existing := &ir.Proof{Kind: ir.ProofVariable, Detail: "already done"}
	narrowing := &ir.NumericNarrowing{
		Argument: &ir.Identifier{Name: "x"},
		Target:   int32Target(),
		Proof:    existing,
	}
	m := &ir.Module{Path: "w.tsn", Body: []ir.Statement{
		&ir.ExprStatement{Expr: narrowing},
	}}
	_, c := NumericProofForModule(m, nil, diag.New())
	if c.HasErrors() {
		t.Fatalf("expected no errors, got %v", c.Codes())
	}
	if narrowing.Proof != existing {
		t.Fatal("expected pre-existing proof to be left untouched")
	}
}

func TestNumericProofDescendsIntoNestedExpressions(t *testing.T) {
	inner := &ir.NumericNarrowing{
		Argument: &ir.Literal{Kind: ir.LitNumber, Lexeme: "1"},
		Target:   int32Target(),
	}
	outer := &ir.Binary{Op: ir.OpAdd, Left: inner, Right: &ir.Literal{Kind: ir.LitNumber, Lexeme: "2"}}
	m := &ir.Module{Path: "w.tsn", Body: []ir.Statement{
		&ir.ExprStatement{Expr: outer},
	}}
	_, c := NumericProofForModule(m, nil, diag.New())
	if c.HasErrors() {
		t.Fatalf("expected no errors, got %v", c.Codes())
	}
	if inner.Proof == nil {
		t.Fatal("expected nested narrowing inside a binary operand to be proven")
	}
}
