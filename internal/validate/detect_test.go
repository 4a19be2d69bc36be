package validate

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/frontend"
	"github.com/tsoniclang/tsonic-sub006/internal/frontend/fixture"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

func TestDetectUnsupportedFeaturesReadsFrontendFiles(t *testing.T) {
	f := &fixture.File{
		FilePath: "a.tsn",
		Unsupported: []frontend.UnsupportedSyntax{
			{Construct: "decorator", Pos: ir.Pos{File: "a.tsn", Line: 1}},
			{Construct: "eval", Pos: ir.Pos{File: "a.tsn", Line: 2}},
		},
	}
	found := DetectUnsupportedFeatures([]frontend.SourceFile{f})
	if len(found) != 2 || found[0].Name != "decorator" || found[1].Name != "eval" {
		t.Fatalf("expected decorator and eval findings, got %v", found)
	}
}

func TestDetectGenericConstraintsFindsRecursiveAlias(t *testing.T) {
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.TypeAliasDecl{
				Name: "Tree",
				Aliased: ir.ObjectType{Properties: []ir.ObjectTypeProperty{
					{Name: "child", Type: ir.ReferenceType{Name: "Tree"}},
				}},
			},
		},
	}
	found := DetectGenericConstraints(m)
	if len(found) != 1 || found[0].Code != errors.TSN7104 {
		t.Fatalf("expected one TSN7104 finding, got %v", found)
	}
}

func TestDetectGenericConstraintsIgnoresNonRecursiveAlias(t *testing.T) {
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.TypeAliasDecl{Name: "Pair", Aliased: ir.ObjectType{Properties: []ir.ObjectTypeProperty{
				{Name: "a", Type: ir.PrimitiveType{Kind: ir.PrimString}},
			}}},
		},
	}
	if found := DetectGenericConstraints(m); len(found) != 0 {
		t.Fatalf("expected no findings, got %v", found)
	}
}

func TestDetectStaticSafetyFindsExplicitAny(t *testing.T) {
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.VarDecl{Declared: ir.AnyType{}},
		},
	}
	found := DetectStaticSafety(m)
	if len(found) != 1 || found[0].Code != errors.TSN7401 {
		t.Fatalf("expected one TSN7401 finding, got %v", found)
	}
}

func TestDetectStaticSafetyFindsUntypedParameter(t *testing.T) {
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.FuncDecl{
				Name:       "f",
				Parameters: []*ir.Parameter{{Pattern: &ir.IdentifierPattern{Name: "x"}}},
			},
		},
	}
	found := DetectStaticSafety(m)
	if len(found) != 1 || found[0].Code != errors.TSN7403 {
		t.Fatalf("expected one TSN7403 finding, got %v", found)
	}
}

func TestDetectStaticSafetyAllowsUntypedLambdaParamInCallArgument(t *testing.T) {
	arrow := &ir.ArrowFunction{
		Parameters: []*ir.Parameter{{Pattern: &ir.IdentifierPattern{Name: "x"}}},
		ExprBody:   &ir.Identifier{Name: "x"},
	}
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.ExprStatement{Expr: &ir.Call{
				Callee: &ir.Identifier{Name: "map"},
				Args:   []ir.Expression{arrow},
			}},
		},
	}
	if found := DetectStaticSafety(m); len(found) != 0 {
		t.Fatalf("expected no findings for a simple arrow in a call-argument context, got %v", found)
	}
}

func TestDetectStaticSafetyFlagsUntypedLambdaParamOutsideContext(t *testing.T) {
	arrow := &ir.ArrowFunction{
		Parameters: []*ir.Parameter{{Pattern: &ir.IdentifierPattern{Name: "x"}}},
		ExprBody:   &ir.Identifier{Name: "x"},
	}
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.VarDecl{Initializer: arrow},
		},
	}
	found := DetectStaticSafety(m)
	if len(found) != 1 || found[0].Code != errors.TSN7404 {
		t.Fatalf("expected one TSN7404 finding, got %v", found)
	}
}

func TestDetectStaticSafetyFlagsNonSimpleArrowMissingTypes(t *testing.T) {
	arrow := &ir.ArrowFunction{
		IsAsync:    true,
		Parameters: []*ir.Parameter{{Pattern: &ir.IdentifierPattern{Name: "x"}}},
		ExprBody:   &ir.Identifier{Name: "x"},
	}
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.ExprStatement{Expr: &ir.Call{
				Callee: &ir.Identifier{Name: "map"},
				Args:   []ir.Expression{arrow},
			}},
		},
	}
	found := DetectStaticSafety(m)
	if len(found) != 2 {
		t.Fatalf("expected TSN7406 and TSN7407 for a non-simple arrow, got %v", found)
	}
}

func TestDetectStaticSafetyFindsIllegalRecordKey(t *testing.T) {
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.VarDecl{Declared: ir.DictionaryType{
				Key:   ir.ReferenceType{Name: "Widget"},
				Value: ir.PrimitiveType{Kind: ir.PrimString},
			}},
		},
	}
	found := DetectStaticSafety(m)
	if len(found) != 1 || found[0].Code != errors.TSN7410 {
		t.Fatalf("expected one TSN7410 finding, got %v", found)
	}
}

func TestDetectStaticSafetyFindsEmptyArrayLiteral(t *testing.T) {
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.VarDecl{Initializer: &ir.ArrayExpr{}},
		},
	}
	found := DetectStaticSafety(m)
	if len(found) != 1 || found[0].Code != errors.TSN7417 {
		t.Fatalf("expected one TSN7417 finding, got %v", found)
	}
}

func TestDetectStaticSafetyFindsBareNewArray(t *testing.T) {
	m := &ir.Module{
		Path: "a.tsn",
		Body: []ir.Statement{
			&ir.ExprStatement{Expr: &ir.New{Callee: &ir.Identifier{Name: "Array"}}},
		},
	}
	found := DetectStaticSafety(m)
	if len(found) != 1 || found[0].Code != errors.TSN7420 {
		t.Fatalf("expected one TSN7420 finding, got %v", found)
	}
}
