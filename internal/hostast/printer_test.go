package hostast

import (
	"strings"
	"testing"
)

func TestPrintSimpleClass(t *testing.T) {
	f := &File{
		Usings:    []string{"System"},
		Namespace: "Widgets",
		Types: []*TypeDecl{{
			Modifiers: []string{"public", "static"},
			Kind:      "class",
			Name:      "Program",
			Members: []Member{
				&MethodMember{
					Modifiers:  []string{"public", "static"},
					ReturnType: "void",
					Name:       "Main",
					Body: []Stmt{
						&ExprStmt{Expr: `Console.WriteLine("hi")`},
						&ReturnStmt{},
					},
				},
			},
		}},
	}
	out := Print(f)
	for _, want := range []string{
		"using System;",
		"namespace Widgets",
		"public static class Program",
		"public static void Main()",
		`Console.WriteLine("hi");`,
		"return;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintIsStableAcrossCalls(t *testing.T) {
	f := &File{Namespace: "N", Types: []*TypeDecl{{Kind: "class", Name: "C"}}}
	first := Print(f)
	second := Print(f)
	if first != second {
		t.Fatal("expected identical output for identical input on repeated calls")
	}
}

func TestPrintPreservesMemberOrder(t *testing.T) {
	f := &File{Types: []*TypeDecl{{
		Kind: "class",
		Name: "Ordered",
		Members: []Member{
			&FieldMember{Type: "int", Name: "b"},
			&FieldMember{Type: "int", Name: "a"},
		},
	}}}
	out := Print(f)
	bIdx := strings.Index(out, "int b;")
	aIdx := strings.Index(out, "int a;")
	if bIdx == -1 || aIdx == -1 || bIdx > aIdx {
		t.Fatalf("expected field b to print before field a (emission order preserved), got:\n%s", out)
	}
}

func TestPrintIfElseAndTryCatchFinally(t *testing.T) {
	f := &File{Types: []*TypeDecl{{
		Kind: "class",
		Name: "C",
		Members: []Member{&MethodMember{
			ReturnType: "void",
			Name:       "M",
			Body: []Stmt{
				&IfStmt{Cond: "x > 0", Then: []Stmt{&ReturnStmt{Value: "x"}}, Else: []Stmt{&ReturnStmt{Value: "0"}}},
				&TryStmt{
					Body:        []Stmt{&ThrowStmt{Value: `new Exception("e")`}},
					CatchType:   "Exception",
					CatchBind:   "ex",
					CatchBody:   []Stmt{&ExprStmt{Expr: "Log(ex)"}},
					FinallyBody: []Stmt{&ExprStmt{Expr: "Cleanup()"}},
				},
			},
		}},
	}}}
	out := Print(f)
	for _, want := range []string{"if (x > 0)", "else", "catch (Exception ex)", "finally"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
