package passes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/universe"
)

// AnonymousTypeLowering is pass 1 (spec §4.5): replace every reachable
// objectType with a reference to a freshly synthesized sealed class,
// appended to Module.Synthesized. Invariant I-5 requires no objectType
// survive this pass.
func AnonymousTypeLowering(catalog *universe.UnifiedTypeCatalog) PerModulePass {
	return func(m *ir.Module, collector *diag.Collector) (*ir.Module, *diag.Collector) {
		low := &anonLowerer{module: m, catalog: catalog, collector: collector}
		for _, s := range m.Body {
			low.lowerStmt(s)
		}
		return m, low.collector
	}
}

type anonLowerer struct {
	module    *ir.Module
	catalog   *universe.UnifiedTypeCatalog
	collector *diag.Collector
}

// unknown records an internal-invariant violation for a statement or
// expression kind the lowerer does not recognize (invariant I-5 requires
// every reachable objectType be visited, which is impossible to guarantee
// if a node kind can silently pass through unexamined).
func (l *anonLowerer) unknown(kind string) {
	l.collector = l.collector.Addf(errors.TSN6001, diag.Fatal, ir.Pos{File: l.module.Path},
		"anonymous-type lowering: unrecognized %s kind", kind)
}

func (l *anonLowerer) lowerStmt(s ir.Statement) {
	if s == nil {
		return
	}
	switch n := s.(type) {
	case *ir.VarDecl:
		n.Declared = l.lowerType(n.Declared)
		l.lowerExpr(n.Initializer)
	case *ir.FuncDecl:
		n.ReturnType = l.lowerType(n.ReturnType)
		n.YieldType = l.lowerType(n.YieldType)
		n.SentType = l.lowerType(n.SentType)
		n.NextType = l.lowerType(n.NextType)
		for _, p := range n.Parameters {
			p.DeclaredType = l.lowerType(p.DeclaredType)
			l.lowerExpr(p.Initializer)
		}
		for _, b := range n.Body {
			l.lowerStmt(b)
		}
	case *ir.ClassDecl:
		for _, f := range n.Fields {
			f.Declared = l.lowerType(f.Declared)
			l.lowerExpr(f.Initializer)
		}
		for _, meth := range n.Methods {
			l.lowerStmt(meth)
		}
	case *ir.InterfaceDecl:
		for _, mem := range n.Members {
			mem.Declared = l.lowerType(mem.Declared)
		}
	case *ir.EnumDecl:
		for _, mem := range n.Members {
			l.lowerExpr(mem.Value)
		}
	case *ir.TypeAliasDecl:
		n.Aliased = l.lowerType(n.Aliased)
	case *ir.Block:
		for _, b := range n.Statements {
			l.lowerStmt(b)
		}
	case *ir.If:
		l.lowerExpr(n.Cond)
		l.lowerStmt(n.Then)
		if n.Else != nil {
			l.lowerStmt(n.Else)
		}
	case *ir.While:
		l.lowerExpr(n.Cond)
		l.lowerStmt(n.Body)
	case *ir.For:
		if n.Init != nil {
			if n.Init.Decl != nil {
				l.lowerStmt(n.Init.Decl)
			}
			l.lowerExpr(n.Init.Expr)
		}
		l.lowerExpr(n.Cond)
		l.lowerExpr(n.Update)
		l.lowerStmt(n.Body)
	case *ir.ForOf:
		l.lowerExpr(n.Iterable)
		l.lowerStmt(n.Body)
	case *ir.Switch:
		l.lowerExpr(n.Discriminant)
		for _, c := range n.Cases {
			l.lowerExpr(c.Test)
			for _, b := range c.Statements {
				l.lowerStmt(b)
			}
		}
	case *ir.Try:
		if n.Body != nil {
			l.lowerStmt(n.Body)
		}
		if n.Catch != nil && n.Catch.Body != nil {
			l.lowerStmt(n.Catch.Body)
		}
		if n.Finally != nil {
			l.lowerStmt(n.Finally)
		}
	case *ir.Throw:
		l.lowerExpr(n.Argument)
	case *ir.Return:
		l.lowerExpr(n.Argument)
	case *ir.GeneratorReturn:
		l.lowerExpr(n.Argument)
	case *ir.Break:
	case *ir.Continue:
	case *ir.ExprStatement:
		l.lowerExpr(n.Expr)
	case *ir.Empty:
	case *ir.YieldStatement:
		n.ReceivedType = l.lowerType(n.ReceivedType)
		l.lowerExpr(n.Output)
	default:
		l.unknown("statement")
	}
}

// lowerExpr descends into every Type-typed position nested inside an
// expression, rewriting reachable objectTypes in place. Safe to mutate
// through e because every Expression-implementing type uses a pointer
// receiver.
func (l *anonLowerer) lowerExpr(e ir.Expression) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ir.Literal:
	case *ir.Identifier:
		n.NarrowedType = l.lowerType(n.NarrowedType)
	case *ir.ArrayExpr:
		for _, el := range n.Elements {
			l.lowerExpr(el)
		}
	case *ir.ObjectExpr:
		for _, p := range n.Properties {
			l.lowerExpr(p.Value)
		}
		for _, sp := range n.Spreads {
			l.lowerExpr(sp)
		}
	case *ir.MemberAccess:
		l.lowerExpr(n.Object)
	case *ir.Call:
		l.lowerExpr(n.Callee)
		for _, a := range n.Args {
			l.lowerExpr(a)
		}
		n.TypeArguments = l.lowerTypeSlice(n.TypeArguments)
	case *ir.New:
		l.lowerExpr(n.Callee)
		for _, a := range n.Args {
			l.lowerExpr(a)
		}
		n.TypeArguments = l.lowerTypeSlice(n.TypeArguments)
	case *ir.Binary:
		l.lowerExpr(n.Left)
		l.lowerExpr(n.Right)
	case *ir.Logical:
		l.lowerExpr(n.Left)
		l.lowerExpr(n.Right)
	case *ir.Unary:
		l.lowerExpr(n.Operand)
	case *ir.Update:
		l.lowerExpr(n.Operand)
	case *ir.Assignment:
		l.lowerExpr(n.Target)
		l.lowerExpr(n.Value)
	case *ir.Conditional:
		l.lowerExpr(n.Test)
		l.lowerExpr(n.Then)
		l.lowerExpr(n.Else)
	case *ir.FunctionExpr:
		n.ReturnType = l.lowerType(n.ReturnType)
		for _, p := range n.Parameters {
			p.DeclaredType = l.lowerType(p.DeclaredType)
			l.lowerExpr(p.Initializer)
		}
		for _, b := range n.Body {
			l.lowerStmt(b)
		}
	case *ir.ArrowFunction:
		n.ReturnType = l.lowerType(n.ReturnType)
		for _, p := range n.Parameters {
			p.DeclaredType = l.lowerType(p.DeclaredType)
			l.lowerExpr(p.Initializer)
		}
		l.lowerExpr(n.ExprBody)
		for _, b := range n.BlockBody {
			l.lowerStmt(b)
		}
	case *ir.TemplateLiteral:
		for _, ex := range n.Expressions {
			l.lowerExpr(ex)
		}
	case *ir.Spread:
		l.lowerExpr(n.Argument)
	case *ir.Await:
		l.lowerExpr(n.Argument)
	case *ir.Yield:
		l.lowerExpr(n.Argument)
	case *ir.This:
	case *ir.NumericNarrowing:
		n.Target = l.lowerType(n.Target)
		l.lowerExpr(n.Argument)
	case *ir.TypeAssertion:
		n.Target = l.lowerType(n.Target)
		l.lowerExpr(n.Expr)
	case *ir.AsInterface:
		n.Target = l.lowerType(n.Target)
		l.lowerExpr(n.Expr)
	case *ir.Trycast:
		n.Target = l.lowerType(n.Target)
		l.lowerExpr(n.Expr)
	case *ir.Stackalloc:
		n.Element = l.lowerType(n.Element)
		l.lowerExpr(n.Length)
	case *ir.Defaultof:
		n.Target = l.lowerType(n.Target)
	default:
		l.unknown("expression")
	}
}

// lowerType rewrites t, recursively lowering any reachable objectType to a
// referenceType naming a freshly synthesized class. Returns t unchanged
// (including nil) when it carries no objectType. Type is a closed sum too,
// but every unmatched case here is a scalar/primitive type with nothing to
// lower, so returning t as-is is correct rather than a silent skip.
func (l *anonLowerer) lowerType(t ir.Type) ir.Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case ir.ObjectType:
		return l.synthesize(v)
	case ir.ArrayType:
		return ir.ArrayType{Element: l.lowerType(v.Element)}
	case ir.TupleType:
		return ir.TupleType{Elements: l.lowerTypeSlice(v.Elements)}
	case ir.UnionType:
		return ir.UnionType{Members: l.lowerTypeSlice(v.Members)}
	case ir.IntersectionType:
		return ir.IntersectionType{Members: l.lowerTypeSlice(v.Members)}
	case ir.FunctionType:
		return ir.FunctionType{Parameters: l.lowerTypeSlice(v.Parameters), Return: l.lowerType(v.Return)}
	case ir.DictionaryType:
		return ir.DictionaryType{Key: l.lowerType(v.Key), Value: l.lowerType(v.Value)}
	case ir.ReferenceType:
		v.TypeArguments = l.lowerTypeSlice(v.TypeArguments)
		return v
	default:
		return t
	}
}

func (l *anonLowerer) lowerTypeSlice(ts []ir.Type) []ir.Type {
	if ts == nil {
		return nil
	}
	out := make([]ir.Type, len(ts))
	for i, t := range ts {
		out[i] = l.lowerType(t)
	}
	return out
}

// synthesize turns one objectType into a sealed class declaration, naming
// it deterministically from its member signature so structurally
// identical anonymous shapes across the same module collapse to one
// class (I-5, grounded on universe.SynthesizeAnonymous's idempotence).
func (l *anonLowerer) synthesize(obj ir.ObjectType) ir.ReferenceType {
	props := append([]ir.ObjectTypeProperty(nil), obj.Properties...)
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })

	sig := signatureOf(props)
	_, name := l.catalog.SynthesizeAnonymous(l.module.Path, sig)

	if !l.alreadySynthesized(name) {
		fields := make([]*ir.FieldDecl, len(obj.Properties))
		for i, p := range obj.Properties {
			fields[i] = &ir.FieldDecl{
				Name:       p.Name,
				Declared:   l.lowerType(p.Type),
				IsAutoProp: true,
			}
		}
		l.module.Synthesized = append(l.module.Synthesized, &ir.ClassDecl{
			Name:     name,
			Fields:   fields,
			IsSealed: true,
		})
	}

	l.catalog.DeclareSource(name, nil)
	return ir.ReferenceType{Name: name, ResolvedHostName: name}
}

func (l *anonLowerer) alreadySynthesized(name string) bool {
	for _, td := range l.module.Synthesized {
		if td.Name == name {
			return true
		}
	}
	return false
}

func signatureOf(sortedProps []ir.ObjectTypeProperty) string {
	parts := make([]string, len(sortedProps))
	for i, p := range sortedProps {
		opt := ""
		if p.Optional {
			opt = "?"
		}
		parts[i] = fmt.Sprintf("%s%s:%s", p.Name, opt, p.Type.String())
	}
	return strings.Join(parts, ",")
}
