package binding

import "testing"

func TestParseSignatureBasic(t *testing.T) {
	sig, err := ParseSignature("Add|(Int32,Int32):Int32|static=true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Name != "Add" {
		t.Errorf("expected Name=Add, got %s", sig.Name)
	}
	if sig.Arity() != 2 {
		t.Errorf("expected arity 2, got %d", sig.Arity())
	}
	if sig.ReturnType != "Int32" {
		t.Errorf("expected ReturnType=Int32, got %s", sig.ReturnType)
	}
	if !sig.IsStatic {
		t.Error("expected IsStatic=true")
	}
}

func TestParseSignatureByRef(t *testing.T) {
	sig, err := ParseSignature("TryParse|(String,Int32&):Boolean|static=true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sig.ParamByRef) != 2 || sig.ParamByRef[0] || !sig.ParamByRef[1] {
		t.Errorf("expected byref flags [false,true], got %v", sig.ParamByRef)
	}
	if sig.ParamTypes[1] != "Int32" {
		t.Errorf("expected stripped param type Int32, got %s", sig.ParamTypes[1])
	}
}

func TestParseSignatureNoParams(t *testing.T) {
	sig, err := ParseSignature("Count|():Int32|static=false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Arity() != 0 {
		t.Errorf("expected arity 0, got %d", sig.Arity())
	}
}

func TestParseSignatureMalformed(t *testing.T) {
	cases := []string{
		"Add(Int32):Int32|static=true",
		"Add|Int32):Int32|static=true",
		"Add|(Int32:Int32|static=true",
		"Add|(Int32):Int32",
	}
	for _, c := range cases {
		if _, err := ParseSignature(c); err == nil {
			t.Errorf("expected error for malformed signature %q", c)
		}
	}
}
