package passes

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

func TestCollectSpecializationRequestsDedupesAcrossModules(t *testing.T) {
	call1 := &ir.Call{
		Callee:                 &ir.Identifier{Name: "Box"},
		RequiresSpecialization: true,
		TypeArguments:          []ir.Type{ir.PrimitiveType{Kind: ir.PrimInt32}},
	}
	call2 := &ir.Call{
		Callee:                 &ir.Identifier{Name: "Box"},
		RequiresSpecialization: true,
		TypeArguments:          []ir.Type{ir.PrimitiveType{Kind: ir.PrimInt32}},
	}
	m1 := &ir.Module{Path: "a.tsn", Body: []ir.Statement{&ir.ExprStatement{Expr: call1}}}
	m2 := &ir.Module{Path: "b.tsn", Body: []ir.Statement{&ir.ExprStatement{Expr: call2}}}

	requests, c := CollectSpecializationRequests([]*ir.Module{m1, m2}, diag.New())
	if c.HasErrors() {
		t.Fatalf("expected no errors, got %v", c.Codes())
	}
	if len(requests) != 1 {
		t.Fatalf("expected one deduplicated request, got %d: %+v", len(requests), requests)
	}
	if requests[0].DeclName != "Box" {
		t.Fatalf("expected DeclName Box, got %s", requests[0].DeclName)
	}
}

func TestCollectSpecializationRequestsDistinctTypeArgsAreDistinctRequests(t *testing.T) {
	call1 := &ir.Call{
		Callee:                 &ir.Identifier{Name: "Box"},
		RequiresSpecialization: true,
		TypeArguments:          []ir.Type{ir.PrimitiveType{Kind: ir.PrimInt32}},
	}
	call2 := &ir.Call{
		Callee:                 &ir.Identifier{Name: "Box"},
		RequiresSpecialization: true,
		TypeArguments:          []ir.Type{ir.PrimitiveType{Kind: ir.PrimString}},
	}
	m := &ir.Module{Path: "a.tsn", Body: []ir.Statement{
		&ir.ExprStatement{Expr: call1},
		&ir.ExprStatement{Expr: call2},
	}}

	requests, _ := CollectSpecializationRequests([]*ir.Module{m}, diag.New())
	if len(requests) != 2 {
		t.Fatalf("expected two distinct requests, got %d: %+v", len(requests), requests)
	}
}

func TestCollectSpecializationRequestsSortedByKey(t *testing.T) {
	callZ := &ir.Call{Callee: &ir.Identifier{Name: "Zeta"}, RequiresSpecialization: true, TypeArguments: []ir.Type{ir.PrimitiveType{Kind: ir.PrimInt32}}}
	callA := &ir.Call{Callee: &ir.Identifier{Name: "Alpha"}, RequiresSpecialization: true, TypeArguments: []ir.Type{ir.PrimitiveType{Kind: ir.PrimInt32}}}
	m := &ir.Module{Path: "a.tsn", Body: []ir.Statement{
		&ir.ExprStatement{Expr: callZ},
		&ir.ExprStatement{Expr: callA},
	}}
	requests, _ := CollectSpecializationRequests([]*ir.Module{m}, diag.New())
	if len(requests) != 2 || requests[0].DeclName != "Alpha" || requests[1].DeclName != "Zeta" {
		t.Fatalf("expected sorted [Alpha, Zeta], got %+v", requests)
	}
}

func TestHashSuffixIsDeterministic(t *testing.T) {
	r := &SpecializationRequest{DeclName: "Box", Key: "Box<Int32>"}
	first := HashSuffix(r)
	second := HashSuffix(r)
	if first != second {
		t.Fatalf("expected deterministic hash suffix, got %s vs %s", first, second)
	}
}
