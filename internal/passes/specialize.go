package passes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// SpecializationRequest names one concrete monomorphization a generic
// declaration needs: the declaration's name plus a deterministic
// serialization of its type arguments.
type SpecializationRequest struct {
	DeclName string
	TypeArgs []ir.Type
	Key      string // DeclName + "<" + serialized type args + ">", used for dedup and naming
}

// CollectSpecializationRequests runs after the pass pipeline proper (spec
// §4.5, final paragraph): it walks every module for calls/constructions
// flagged RequiresSpecialization, dedupes by (name, type-argument
// serialization), and returns the sorted, deduplicated request list the
// emitter's specialization-emission step (spec §4.6) monomorphizes from.
func CollectSpecializationRequests(modules []*ir.Module, collector *diag.Collector) ([]*SpecializationRequest, *diag.Collector) {
	seen := map[string]*SpecializationRequest{}
	for _, m := range modules {
		for _, s := range m.Body {
			collectSpecializationsFromStmt(s, seen)
		}
	}
	requests := make([]*SpecializationRequest, 0, len(seen))
	for _, r := range seen {
		requests = append(requests, r)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].Key < requests[j].Key })
	return requests, collector
}

func collectSpecializationsFromStmt(s ir.Statement, seen map[string]*SpecializationRequest) {
	switch n := s.(type) {
	case *ir.ExprStatement:
		collectSpecializationsFromExpr(n.Expr, seen)
	case *ir.VarDecl:
		collectSpecializationsFromExpr(n.Initializer, seen)
	case *ir.Return:
		collectSpecializationsFromExpr(n.Argument, seen)
	case *ir.Block:
		for _, b := range n.Statements {
			collectSpecializationsFromStmt(b, seen)
		}
	case *ir.If:
		collectSpecializationsFromStmt(n.Then, seen)
		if n.Else != nil {
			collectSpecializationsFromStmt(n.Else, seen)
		}
	case *ir.While:
		collectSpecializationsFromStmt(n.Body, seen)
	case *ir.FuncDecl:
		for _, b := range n.Body {
			collectSpecializationsFromStmt(b, seen)
		}
	}
}

func collectSpecializationsFromExpr(e ir.Expression, seen map[string]*SpecializationRequest) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ir.Call:
		if n.RequiresSpecialization {
			recordSpecialization(calleeNameOf(n.Callee), n.TypeArguments, seen)
		}
		for _, a := range n.Args {
			collectSpecializationsFromExpr(a, seen)
		}
	case *ir.New:
		if n.RequiresSpecialization {
			recordSpecialization(calleeNameOf(n.Callee), n.TypeArguments, seen)
		}
		for _, a := range n.Args {
			collectSpecializationsFromExpr(a, seen)
		}
	case *ir.Binary:
		collectSpecializationsFromExpr(n.Left, seen)
		collectSpecializationsFromExpr(n.Right, seen)
	case *ir.Assignment:
		collectSpecializationsFromExpr(n.Value, seen)
	}
}

func calleeNameOf(e ir.Expression) string {
	switch n := e.(type) {
	case *ir.Identifier:
		return n.Name
	case *ir.MemberAccess:
		return n.Property
	default:
		return "<anonymous>"
	}
}

func recordSpecialization(name string, typeArgs []ir.Type, seen map[string]*SpecializationRequest) {
	parts := make([]string, len(typeArgs))
	for i, t := range typeArgs {
		parts[i] = t.String()
	}
	sig := strings.Join(parts, ",")
	key := fmt.Sprintf("%s<%s>", name, sig)
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = &SpecializationRequest{DeclName: name, TypeArgs: typeArgs, Key: key}
}

// HashSuffix derives the emitter's deterministic hash-suffixed specialized
// name for a request (spec §4.6 "Specialization emission").
func HashSuffix(r *SpecializationRequest) string {
	var h uint32 = 2166136261
	for _, c := range []byte(r.Key) {
		h ^= uint32(c)
		h *= 16777619
	}
	return fmt.Sprintf("%s__%08x", r.DeclName, h)
}
