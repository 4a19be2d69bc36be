package passes

import (
	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// AttributeCollection is pass 6 (spec §4.5): recognize attribute-marker
// call chains of the shape `A.on(X).type(Y)` used as a statement and
// attach them as ir.Attribute entries on the declaration they precede,
// rather than leaving them as ordinary (and emittable) call expressions.
//
// Grounded on the teacher's internal/elaborate/decorators.go pattern of
// scanning a block for a fixed marker-call shape before the declaration it
// modifies.
func AttributeCollection(m *ir.Module, collector *diag.Collector) (*ir.Module, *diag.Collector) {
	m.Body = collectFromBlock(m.Body)
	return m, collector
}

func collectFromBlock(stmts []ir.Statement) []ir.Statement {
	out := make([]ir.Statement, 0, len(stmts))
	var pending []ir.Attribute
	for _, s := range stmts {
		if attr, ok := attributeOf(s); ok {
			pending = append(pending, attr)
			continue
		}
		switch n := s.(type) {
		case *ir.FuncDecl:
			n.Attributes = append(n.Attributes, pending...)
			n.Body = collectFromBlock(n.Body)
			pending = nil
		case *ir.ClassDecl:
			n.Attributes = append(n.Attributes, pending...)
			for _, meth := range n.Methods {
				meth.Body = collectFromBlock(meth.Body)
			}
			pending = nil
		case *ir.Block:
			n.Statements = collectFromBlock(n.Statements)
		case *ir.If:
			if then, ok := n.Then.(*ir.Block); ok {
				then.Statements = collectFromBlock(then.Statements)
			}
			if els, ok := n.Else.(*ir.Block); ok {
				els.Statements = collectFromBlock(els.Statements)
			}
		}
		if len(pending) > 0 {
			// a non-declaration statement followed a marker call: the
			// markers don't attach to anything, so they fall through to
			// the emitter unconsumed (a later phase rejects them as an
			// unresolved call, which is the correct diagnosis).
			out = append(out, markerCallsAsStatements(pending)...)
			pending = nil
		}
		out = append(out, s)
	}
	out = append(out, markerCallsAsStatements(pending)...)
	return out
}

// attributeOf recognizes `A.on(X).type(Y)`-shaped call chains: nested
// MemberAccess/Call pairs rooted at the identifier `A`, used as a bare
// expression statement.
func attributeOf(s ir.Statement) (ir.Attribute, bool) {
	es, ok := s.(*ir.ExprStatement)
	if !ok {
		return ir.Attribute{}, false
	}
	call, ok := es.Expr.(*ir.Call)
	if !ok {
		return ir.Attribute{}, false
	}
	member, ok := call.Callee.(*ir.MemberAccess)
	if !ok {
		return ir.Attribute{}, false
	}
	if _, ok := rootMarkerIdentifier(member.Object); !ok {
		return ir.Attribute{}, false
	}
	return ir.Attribute{Name: member.Property, Arguments: call.Args}, true
}

func rootMarkerIdentifier(e ir.Expression) (string, bool) {
	switch n := e.(type) {
	case *ir.Identifier:
		if n.Name == "A" {
			return n.Name, true
		}
	case *ir.Call:
		if member, ok := n.Callee.(*ir.MemberAccess); ok {
			return rootMarkerIdentifier(member.Object)
		}
	}
	return "", false
}

func markerCallsAsStatements(attrs []ir.Attribute) []ir.Statement {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]ir.Statement, len(attrs))
	for i, a := range attrs {
		out[i] = &ir.ExprStatement{Expr: &ir.Call{
			Callee: &ir.MemberAccess{Object: &ir.Identifier{Name: "A"}, Property: a.Name},
			Args:   a.Arguments,
		}}
	}
	return out
}
