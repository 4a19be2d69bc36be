package emit

import (
	"strings"
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/passes"
)

func TestSubstituteTypeReplacesTypeParameter(t *testing.T) {
	subst := map[string]ir.Type{"T": ir.PrimitiveType{Kind: ir.PrimInt32}}
	got := substituteType(ir.TypeParameterType{Name: "T"}, subst)
	if HostTypeName(got) != "int" {
		t.Errorf("expected T to substitute to int, got %s", HostTypeName(got))
	}
}

func TestSubstituteTypeLeavesUnmappedParameterAlone(t *testing.T) {
	subst := map[string]ir.Type{"T": ir.PrimitiveType{Kind: ir.PrimInt32}}
	got := substituteType(ir.TypeParameterType{Name: "U"}, subst)
	if HostTypeName(got) != "U" {
		t.Errorf("expected U to pass through unchanged, got %s", HostTypeName(got))
	}
}

func TestSubstituteTypeDescendsIntoArrayAndDictionary(t *testing.T) {
	subst := map[string]ir.Type{"T": ir.PrimitiveType{Kind: ir.PrimString}}
	arr := substituteType(ir.ArrayType{Element: ir.TypeParameterType{Name: "T"}}, subst)
	if HostTypeName(arr) != "string[]" {
		t.Errorf("expected string[], got %s", HostTypeName(arr))
	}
	dict := substituteType(ir.DictionaryType{Key: ir.PrimitiveType{Kind: ir.PrimInt32}, Value: ir.TypeParameterType{Name: "T"}}, subst)
	if HostTypeName(dict) != "Dictionary<int, string>" {
		t.Errorf("expected Dictionary<int, string>, got %s", HostTypeName(dict))
	}
}

func TestEmitSpecializationsRendersRenamedSpecializedMethod(t *testing.T) {
	decl := &ir.FuncDecl{
		Name:           "identity",
		TypeParameters: []ir.TypeParameter{{Name: "T"}},
		Parameters: []*ir.Parameter{
			{Pattern: &ir.IdentifierPattern{Name: "x"}, DeclaredType: ir.TypeParameterType{Name: "T"}},
		},
		ReturnType: ir.TypeParameterType{Name: "T"},
		Body: []ir.Statement{
			&ir.Return{Argument: &ir.Identifier{Name: "x"}},
		},
	}
	lookup := func(name string) *ir.FuncDecl {
		if name == "identity" {
			return decl
		}
		return nil
	}
	req := &passes.SpecializationRequest{
		DeclName: "identity",
		TypeArgs: []ir.Type{ir.PrimitiveType{Kind: ir.PrimInt32}},
		Key:      "identity<Int32>",
	}
	methods := EmitSpecializations(testContext(), []*passes.SpecializationRequest{req}, lookup, nil)
	if len(methods) != 1 {
		t.Fatalf("expected 1 specialized method, got %d", len(methods))
	}
	m := methods[0]
	if !strings.HasPrefix(m.Name, "identity__") {
		t.Errorf("expected hash-suffixed name starting with identity__, got %q", m.Name)
	}
	if m.ReturnType != "int" {
		t.Errorf("expected specialized return type int, got %q", m.ReturnType)
	}
	if len(m.Parameters) != 1 || m.Parameters[0].Type != "int" {
		t.Errorf("expected specialized parameter type int, got %+v", m.Parameters)
	}
}

func TestEmitSpecializationsSkipsUnknownDecl(t *testing.T) {
	lookup := func(name string) *ir.FuncDecl { return nil }
	req := &passes.SpecializationRequest{DeclName: "missing", Key: "missing<>"}
	methods := EmitSpecializations(testContext(), []*passes.SpecializationRequest{req}, lookup, nil)
	if len(methods) != 0 {
		t.Fatalf("expected no methods for an unresolvable declaration, got %d", len(methods))
	}
}
