package passes

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

func TestSoundnessGateNoAnyIsClean(t *testing.T) {
	m := &ir.Module{
		Path: "widget.tsn",
		Body: []ir.Statement{
			&ir.VarDecl{Declared: ir.PrimitiveType{Kind: ir.PrimString}},
		},
	}
	_, c := SoundnessGate(m, diag.New())
	if c.HasFatal() {
		t.Fatalf("expected no fatal diagnostics, got %v", c.Codes())
	}
}

func TestSoundnessGateCatchesAnyInVarDecl(t *testing.T) {
	m := &ir.Module{
		Path: "widget.tsn",
		Body: []ir.Statement{
			&ir.VarDecl{Declared: ir.AnyType{}},
		},
	}
	_, c := SoundnessGate(m, diag.New())
	if !c.HasFatal() {
		t.Fatal("expected a fatal diagnostic for anyType in VarDecl.Declared")
	}
}

func TestSoundnessGateCatchesAnyInReturnType(t *testing.T) {
	m := &ir.Module{
		Path: "widget.tsn",
		Body: []ir.Statement{
			&ir.FuncDecl{Name: "f", ReturnType: ir.ArrayType{Element: ir.AnyType{}}},
		},
	}
	_, c := SoundnessGate(m, diag.New())
	if !c.HasFatal() {
		t.Fatal("expected a fatal diagnostic for anyType nested in an array return type")
	}
}

func TestSoundnessGateCatchesAnyInParameter(t *testing.T) {
	m := &ir.Module{
		Path: "widget.tsn",
		Body: []ir.Statement{
			&ir.FuncDecl{
				Name:       "f",
				Parameters: []*ir.Parameter{{DeclaredType: ir.AnyType{}}},
			},
		},
	}
	_, c := SoundnessGate(m, diag.New())
	if !c.HasFatal() {
		t.Fatal("expected a fatal diagnostic for anyType in a parameter's declared type")
	}
}

func TestSoundnessGatePreservesPriorDiagnostics(t *testing.T) {
	m := &ir.Module{Path: "widget.tsn"}
	prior := diag.New().Addf("TSN1001", diag.Error, ir.Pos{File: "other.tsn"}, "unrelated")
	_, c := SoundnessGate(m, prior)
	if len(c.Codes()) != 1 || c.Codes()[0] != "TSN1001" {
		t.Fatalf("expected prior diagnostic preserved, got %v", c.Codes())
	}
}
