package universe

import "testing"

func TestPrimitivesPreseeded(t *testing.T) {
	c := New()
	id, ok := c.BySurfaceName("int32")
	if !ok {
		t.Fatal("expected int32 primitive to be preseeded")
	}
	entry, ok := c.Lookup(id)
	if !ok || entry.HostName != "System.Int32" {
		t.Fatalf("expected System.Int32 host name, got %+v", entry)
	}
}

func TestDeclareSourceIsIdempotent(t *testing.T) {
	c := New()
	a := c.DeclareSource("Widget", nil)
	b := c.DeclareSource("Widget", nil)
	if a != b {
		t.Errorf("expected same TypeID for repeated DeclareSource, got %s and %s", a, b)
	}
}

func TestDeclareCLRKeyedByHostName(t *testing.T) {
	c := New()
	id := c.DeclareCLR("List", "System.Collections.Generic.List`1", nil)
	got, ok := c.ByHostName("System.Collections.Generic.List`1")
	if !ok || got != id {
		t.Fatalf("expected lookup by host name to find %s, got %s ok=%v", id, got, ok)
	}
}

func TestSynthesizeAnonymousCollapsesStructurallyIdentical(t *testing.T) {
	c := New()
	id1, name1 := c.SynthesizeAnonymous("mod", "age:int32,name:string")
	id2, name2 := c.SynthesizeAnonymous("mod", "age:int32,name:string")
	if id1 != id2 || name1 != name2 {
		t.Errorf("expected structurally identical anonymous shapes to collapse, got (%s,%s) and (%s,%s)", id1, name1, id2, name2)
	}
	id3, _ := c.SynthesizeAnonymous("mod", "age:int32")
	if id3 == id1 {
		t.Error("expected distinct member signature to get a distinct id")
	}
}

func TestMembersWithInheritedBFS(t *testing.T) {
	c := New()
	base := c.DeclareSource("Base", nil)
	mid := c.DeclareSource("Mid", []TypeID{base})
	leaf := c.DeclareSource("Leaf", []TypeID{mid})

	c.AddMember(MemberEntry{Owner: base, Name: "baseMethod"})
	c.AddMember(MemberEntry{Owner: mid, Name: "midMethod"})
	c.AddMember(MemberEntry{Owner: leaf, Name: "leafMethod"})
	c.AddMember(MemberEntry{Owner: base, Name: "overridden"})
	c.AddMember(MemberEntry{Owner: mid, Name: "overridden"})

	members := c.MembersWithInherited(leaf)
	names := map[string]bool{}
	for _, m := range members {
		names[m.Name] = true
	}
	for _, want := range []string{"baseMethod", "midMethod", "leafMethod", "overridden"} {
		if !names[want] {
			t.Errorf("expected member %q to be visible on Leaf", want)
		}
	}
}

func TestSupertypesBFSOrdersByDepth(t *testing.T) {
	c := New()
	base := c.DeclareSource("Base", nil)
	mid := c.DeclareSource("Mid", []TypeID{base})
	leaf := c.DeclareSource("Leaf", []TypeID{mid})

	levels := c.SupertypesBFS(leaf)
	if len(levels) != 2 {
		t.Fatalf("expected 2 BFS levels, got %d: %v", len(levels), levels)
	}
	if levels[0][0] != mid {
		t.Errorf("expected first level to be Mid, got %v", levels[0])
	}
	if levels[1][0] != base {
		t.Errorf("expected second level to be Base, got %v", levels[1])
	}
}
