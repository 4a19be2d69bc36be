package binding

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/universe"
)

func mustSig(t *testing.T, raw string) Signature {
	t.Helper()
	s, err := ParseSignature(raw)
	if err != nil {
		t.Fatalf("ParseSignature(%q): %v", raw, err)
	}
	return s
}

func TestResolveExtensionExactArity(t *testing.T) {
	cat := universe.New()
	listID := cat.DeclareCLR("List", "System.Collections.Generic.List`1", nil)
	r := NewRegistry(cat)
	r.Index(ExtensionMethod{
		Namespace:     "Linq",
		ReceiverType:  listID,
		Signature:     mustSig(t, "FirstOrDefault|(List):Object|static=true"),
		DeclaringType: "Enumerable",
	})

	res := r.ResolveExtension("Linq", "FirstOrDefault", listID, 0)
	if !res.Resolved {
		t.Fatalf("expected resolution, got %+v", res)
	}
}

func TestResolveExtensionViaSupertypeBFS(t *testing.T) {
	cat := universe.New()
	base := cat.DeclareSource("Enumerable", nil)
	derived := cat.DeclareSource("MyList", []universe.TypeID{base})
	r := NewRegistry(cat)
	r.Index(ExtensionMethod{
		Namespace:    "Linq",
		ReceiverType: base,
		Signature:    mustSig(t, "Count|(Enumerable):Int32|static=true"),
		DeclaringType: "Enumerable",
	})

	res := r.ResolveExtension("Linq", "Count", derived, 0)
	if !res.Resolved {
		t.Fatalf("expected BFS-resolved match on supertype, got %+v", res)
	}
}

func TestResolveExtensionDisagreeingTargetsAmbiguous(t *testing.T) {
	cat := universe.New()
	recv := cat.DeclareSource("Thing", nil)
	r := NewRegistry(cat)
	r.Index(ExtensionMethod{Namespace: "N", ReceiverType: recv, Signature: mustSig(t, "Go|(Thing):Void|static=true"), DeclaringType: "A"})
	r.Index(ExtensionMethod{Namespace: "N", ReceiverType: recv, Signature: mustSig(t, "Go|(Thing):Void|static=true"), DeclaringType: "B"})

	res := r.ResolveExtension("N", "Go", recv, 0)
	if !res.Ambiguous {
		t.Fatalf("expected ambiguous resolution, got %+v", res)
	}
}

func TestResolveExtensionSmallestLargerArity(t *testing.T) {
	cat := universe.New()
	recv := cat.DeclareSource("Thing", nil)
	r := NewRegistry(cat)
	r.Index(ExtensionMethod{Namespace: "N", ReceiverType: recv, Signature: mustSig(t, "Go|(Thing,Int32,Int32):Void|static=true"), DeclaringType: "A"})
	r.Index(ExtensionMethod{Namespace: "N", ReceiverType: recv, Signature: mustSig(t, "Go|(Thing,Int32):Void|static=true"), DeclaringType: "A"})

	// Call arity 0 (plus implicit receiver = 1); no exact match at arity
	// 1, smallest arity > 1 is 2.
	res := r.ResolveExtension("N", "Go", recv, 0)
	if !res.Resolved || res.Method.Signature.Arity() != 2 {
		t.Fatalf("expected resolution to the 2-arity overload, got %+v", res)
	}
}

func TestMarkLoadedOnlyOnce(t *testing.T) {
	cat := universe.New()
	r := NewRegistry(cat)
	if !r.MarkLoaded("bindings.json") {
		t.Fatal("expected first MarkLoaded to succeed")
	}
	if r.MarkLoaded("bindings.json") {
		t.Fatal("expected second MarkLoaded of the same path to fail")
	}
}
