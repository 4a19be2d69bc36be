package emit

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

func TestHostTypeNamePrimitives(t *testing.T) {
	cases := []struct {
		in   ir.Type
		want string
	}{
		{ir.PrimitiveType{Kind: ir.PrimString}, "string"},
		{ir.PrimitiveType{Kind: ir.PrimInt32}, "int"},
		{ir.PrimitiveType{Kind: ir.PrimDouble}, "double"},
		{ir.PrimitiveType{Kind: ir.PrimBool}, "bool"},
		{ir.VoidType{}, "void"},
		{ir.NeverType{}, "void"},
		{ir.UnknownType{}, "object"},
		{ir.AnyType{}, "object"},
		{nil, "var"},
	}
	for _, c := range cases {
		if got := HostTypeName(c.in); got != c.want {
			t.Errorf("HostTypeName(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHostTypeNameReferencePrefersResolvedHostName(t *testing.T) {
	t1 := ir.ReferenceType{Name: "Widget", ResolvedHostName: "Acme.Widget"}
	if got := HostTypeName(t1); got != "Acme.Widget" {
		t.Errorf("expected resolved host name, got %q", got)
	}
	t2 := ir.ReferenceType{Name: "Widget"}
	if got := HostTypeName(t2); got != "Widget" {
		t.Errorf("expected fallback to surface name, got %q", got)
	}
}

func TestHostTypeNameArrayAndTuple(t *testing.T) {
	arr := ir.ArrayType{Element: ir.PrimitiveType{Kind: ir.PrimInt32}}
	if got := HostTypeName(arr); got != "int[]" {
		t.Errorf("expected int[], got %q", got)
	}
	tup := ir.TupleType{Elements: []ir.Type{ir.PrimitiveType{Kind: ir.PrimString}, ir.PrimitiveType{Kind: ir.PrimBool}}}
	if got := HostTypeName(tup); got != "(string, bool)" {
		t.Errorf("expected (string, bool), got %q", got)
	}
}

func TestHostTypeNameUnionCollapsesToObject(t *testing.T) {
	u := ir.UnionType{Members: []ir.Type{ir.ReferenceType{Name: "Cat"}, ir.ReferenceType{Name: "Dog"}}}
	if got := HostTypeName(u); got != "object" {
		t.Errorf("expected object for a union, got %q", got)
	}
}

func TestHostTypeNameFunctionVoidIsAction(t *testing.T) {
	f := ir.FunctionType{Parameters: []ir.Type{ir.PrimitiveType{Kind: ir.PrimString}}, Return: ir.VoidType{}}
	if got := HostTypeName(f); got != "Action<string>" {
		t.Errorf("expected Action<string>, got %q", got)
	}
}

func TestHostTypeNameFunctionNonVoidIsFunc(t *testing.T) {
	f := ir.FunctionType{Parameters: []ir.Type{ir.PrimitiveType{Kind: ir.PrimInt32}}, Return: ir.PrimitiveType{Kind: ir.PrimBool}}
	if got := HostTypeName(f); got != "Func<int, bool>" {
		t.Errorf("expected Func<int, bool>, got %q", got)
	}
}

func TestHostTypeNameDictionary(t *testing.T) {
	d := ir.DictionaryType{Key: ir.PrimitiveType{Kind: ir.PrimString}, Value: ir.PrimitiveType{Kind: ir.PrimInt32}}
	if got := HostTypeName(d); got != "Dictionary<string, int>" {
		t.Errorf("expected Dictionary<string, int>, got %q", got)
	}
}

func TestHostTypeNameTypeParameter(t *testing.T) {
	tp := ir.TypeParameterType{Name: "T"}
	if got := HostTypeName(tp); got != "T" {
		t.Errorf("expected T, got %q", got)
	}
}
