package irbuild

import (
	"fmt"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// TempAllocator mints fresh temporary variable names for destructuring
// lowering (the emitter mints its own names through emit.Context). A
// single counter per builder invocation keeps names stable
// across a run without needing global state (I-6).
type TempAllocator struct {
	next int
}

// Next returns a fresh temp name.
func (a *TempAllocator) Next() string {
	a.next++
	return fmt.Sprintf("__tmp%d", a.next)
}

// LowerDestructuring expands an array or object pattern bound to init
// into a temporary plus one VarDecl per retained binding, per spec
// §4.4: "a temporary holds the initializer, each binding is assigned to
// temp[i] or temp.prop; rest patterns produce calls to a runtime slice
// helper or a synthesized object shape."
func LowerDestructuring(pat ir.Pattern, init ir.Expression, kind ir.VarKind, temps *TempAllocator) []ir.Statement {
	switch p := pat.(type) {
	case *ir.IdentifierPattern:
		return []ir.Statement{&ir.VarDecl{Kind: kind, Pattern: p, Initializer: init}}
	case *ir.ArrayPattern:
		return lowerArrayPattern(p, init, kind, temps)
	case *ir.ObjectPattern:
		return lowerObjectPattern(p, init, kind, temps)
	default:
		return []ir.Statement{&ir.VarDecl{Kind: kind, Pattern: pat, Initializer: init}}
	}
}

func lowerArrayPattern(p *ir.ArrayPattern, init ir.Expression, kind ir.VarKind, temps *TempAllocator) []ir.Statement {
	tempName := temps.Next()
	out := []ir.Statement{
		&ir.VarDecl{Kind: kind, Pattern: &ir.IdentifierPattern{Name: tempName}, Initializer: init},
	}
	for i, el := range p.Elements {
		if el == nil {
			continue // hole: skip this slot entirely
		}
		idxAccess := &ir.MemberAccess{
			Object:   &ir.Identifier{Name: tempName},
			Property: fmt.Sprintf("%d", i),
			Computed: true,
		}
		out = append(out, LowerDestructuring(el, idxAccess, kind, temps)...)
	}
	if p.Rest != nil {
		restCall := &ir.Call{
			Callee: &ir.Identifier{Name: "__sliceFrom"},
			Args:   []ir.Expression{&ir.Identifier{Name: tempName}, &ir.Literal{Kind: ir.LitNumber, Value: float64(len(p.Elements)), Lexeme: fmt.Sprintf("%d", len(p.Elements)), Intent: ir.IntentInt32}},
		}
		out = append(out, &ir.VarDecl{Kind: kind, Pattern: p.Rest, Initializer: restCall})
	}
	return out
}

func lowerObjectPattern(p *ir.ObjectPattern, init ir.Expression, kind ir.VarKind, temps *TempAllocator) []ir.Statement {
	tempName := temps.Next()
	out := []ir.Statement{
		&ir.VarDecl{Kind: kind, Pattern: &ir.IdentifierPattern{Name: tempName}, Initializer: init},
	}
	claimed := map[string]bool{}
	for _, prop := range p.Properties {
		access := &ir.MemberAccess{Object: &ir.Identifier{Name: tempName}, Property: prop.Key}
		out = append(out, LowerDestructuring(prop.Value, access, kind, temps)...)
		claimed[prop.Key] = true
	}
	if p.Rest != nil {
		// Synthesize an object shape carrying every property not
		// claimed by an explicit binding above: __restOf receives the
		// temporary followed by each claimed key once, as a string
		// literal, naming the properties to leave out.
		args := []ir.Expression{&ir.Identifier{Name: tempName}}
		for _, prop := range p.Properties {
			if claimed[prop.Key] {
				args = append(args, &ir.Literal{Kind: ir.LitString, Value: prop.Key, Lexeme: fmt.Sprintf("%q", prop.Key)})
				claimed[prop.Key] = false
			}
		}
		restExpr := &ir.Call{
			Callee: &ir.Identifier{Name: "__restOf"},
			Args:   args,
		}
		out = append(out, &ir.VarDecl{Kind: kind, Pattern: p.Rest, Initializer: restExpr})
	}
	return out
}
