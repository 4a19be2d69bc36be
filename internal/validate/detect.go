package validate

import (
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/frontend"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// DetectUnsupportedFeatures walks every file's UnsupportedSyntax report
// and turns each occurrence into an UnsupportedFeature finding. This is
// the only one of the three C7 concerns detectable from frontend.SourceFile
// directly: decorators, symbols, proxies, weak collections, eval, with, and
// prototype mutation are rejected before IR construction ever runs, so
// they never appear anywhere in the closed ir.Statement/Expression sum for
// a module-level walk to find.
func DetectUnsupportedFeatures(files []frontend.SourceFile) []UnsupportedFeature {
	var found []UnsupportedFeature
	for _, f := range files {
		for _, u := range f.UnsupportedSyntax() {
			found = append(found, UnsupportedFeature{Name: u.Construct, Pos: u.Pos})
		}
	}
	return found
}

// DetectGenericConstraints walks m's type-alias declarations for recursive
// structural aliases (TSN7104) — the one generic-constraint violation
// representable in the closed ir.Type sum. The other six kinds spec §4.2
// names (recursive mapped types, conditional infer, this-typing, symbol
// index signatures, variadic generic interfaces, struct/class constraints
// combined with a structural shape) have no corresponding constructs
// anywhere in internal/ir/types.go's closed Type sum — there is no
// MappedType, no conditional/infer marker, no ThisType, no symbol-keyed
// index signature, and TypeParameter carries no variadic flag — so they
// cannot be detected from IR and are not implemented here; a front end
// that tracked them on the syntax tree would report them the same way
// DetectUnsupportedFeatures does.
func DetectGenericConstraints(m *ir.Module) []GenericConstraintViolation {
	var found []GenericConstraintViolation
	for _, s := range m.Body {
		alias, ok := s.(*ir.TypeAliasDecl)
		if !ok {
			continue
		}
		if alias.Aliased != nil && referencesName(alias.Aliased, alias.Name) {
			found = append(found, GenericConstraintViolation{
				Code: errors.TSN7104,
				What: "recursive structural type alias: " + alias.Name,
				Pos:  alias.OrigSpan,
			})
		}
	}
	return found
}

func referencesName(t ir.Type, name string) bool {
	switch v := t.(type) {
	case ir.ReferenceType:
		if v.Name == name {
			return true
		}
		return anyReferencesName(v.TypeArguments, name)
	case ir.ArrayType:
		return referencesName(v.Element, name)
	case ir.TupleType:
		return anyReferencesName(v.Elements, name)
	case ir.UnionType:
		return anyReferencesName(v.Members, name)
	case ir.IntersectionType:
		return anyReferencesName(v.Members, name)
	case ir.FunctionType:
		if referencesName(v.Return, name) {
			return true
		}
		return anyReferencesName(v.Parameters, name)
	case ir.ObjectType:
		for _, p := range v.Properties {
			if referencesName(p.Type, name) {
				return true
			}
		}
		return false
	case ir.DictionaryType:
		return referencesName(v.Key, name) || referencesName(v.Value, name)
	default:
		return false
	}
}

func anyReferencesName(ts []ir.Type, name string) bool {
	for _, t := range ts {
		if referencesName(t, name) {
			return true
		}
	}
	return false
}

// DetectStaticSafety walks m's declarations and expressions for every
// static-safety violation representable directly on the built IR: explicit
// any (TSN7401), as-any (TSN7402), untyped non-lambda parameters (TSN7403),
// untyped lambda parameters outside a deterministic expected-type context
// (TSN7404), non-simple arrows missing an explicit parameter or return
// type (TSN7406/TSN7407), illegal Record<K,V> key types (TSN7410), untyped
// empty array literals (TSN7417), and bare `new Array()` (TSN7420).
func DetectStaticSafety(m *ir.Module) []StaticSafetyFinding {
	d := &safetyDetector{}
	for _, s := range m.Body {
		d.stmt(s)
	}
	for _, s := range m.Synthesized {
		d.stmt(s)
	}
	return d.found
}

type safetyDetector struct {
	found []StaticSafetyFinding
}

func (d *safetyDetector) add(code, what string, pos ir.Pos) {
	d.found = append(d.found, StaticSafetyFinding{Code: code, What: what, Pos: pos})
}

func (d *safetyDetector) declaredType(t ir.Type, pos ir.Pos) {
	if t == nil {
		return
	}
	if _, ok := t.(ir.AnyType); ok {
		d.add(errors.TSN7401, "explicit any type annotation", pos)
	}
	if dict, ok := t.(ir.DictionaryType); ok {
		if !isValidRecordKey(dict.Key) {
			d.add(errors.TSN7410, "Record key type must be string or number", pos)
		}
	}
}

func isValidRecordKey(t ir.Type) bool {
	p, ok := t.(ir.PrimitiveType)
	if !ok {
		return false
	}
	return p.Kind == ir.PrimString || p.Kind == ir.PrimNumber || p.Kind == ir.PrimInt32 || p.Kind == ir.PrimDouble
}

func (d *safetyDetector) params(params []*ir.Parameter, lambda bool) {
	for _, p := range params {
		d.declaredType(p.DeclaredType, p.OrigSpan)
		if !lambda && p.DeclaredType == nil {
			d.add(errors.TSN7403, "untyped parameter", p.OrigSpan)
		}
	}
}

func (d *safetyDetector) stmt(s ir.Statement) {
	if s == nil {
		return
	}
	switch n := s.(type) {
	case *ir.VarDecl:
		d.declaredType(n.Declared, n.OrigSpan)
		d.expr(n.Initializer, lambdaContextFor(n))
	case *ir.FuncDecl:
		d.declaredType(n.ReturnType, n.OrigSpan)
		d.params(n.Parameters, false)
		for _, b := range n.Body {
			d.stmt(b)
		}
	case *ir.ClassDecl:
		for _, f := range n.Fields {
			d.declaredType(f.Declared, f.OrigSpan)
			d.expr(f.Initializer, LambdaContextTypedVariable)
		}
		for _, meth := range n.Methods {
			d.stmt(meth)
		}
	case *ir.Block:
		for _, b := range n.Statements {
			d.stmt(b)
		}
	case *ir.If:
		d.expr(n.Cond, LambdaContextNone)
		d.stmt(n.Then)
		if n.Else != nil {
			d.stmt(n.Else)
		}
	case *ir.While:
		d.expr(n.Cond, LambdaContextNone)
		d.stmt(n.Body)
	case *ir.For:
		if n.Init != nil {
			if n.Init.Decl != nil {
				d.stmt(n.Init.Decl)
			}
			d.expr(n.Init.Expr, LambdaContextNone)
		}
		d.expr(n.Cond, LambdaContextNone)
		d.expr(n.Update, LambdaContextNone)
		d.stmt(n.Body)
	case *ir.ForOf:
		d.expr(n.Iterable, LambdaContextNone)
		d.stmt(n.Body)
	case *ir.Switch:
		d.expr(n.Discriminant, LambdaContextNone)
		for _, c := range n.Cases {
			d.expr(c.Test, LambdaContextNone)
			for _, b := range c.Statements {
				d.stmt(b)
			}
		}
	case *ir.Try:
		if n.Body != nil {
			d.stmt(n.Body)
		}
		if n.Catch != nil && n.Catch.Body != nil {
			d.stmt(n.Catch.Body)
		}
		if n.Finally != nil {
			d.stmt(n.Finally)
		}
	case *ir.Throw:
		d.expr(n.Argument, LambdaContextNone)
	case *ir.Return:
		d.expr(n.Argument, LambdaContextFunctionReturn)
	case *ir.GeneratorReturn:
		d.expr(n.Argument, LambdaContextFunctionReturn)
	case *ir.ExprStatement:
		d.expr(n.Expr, LambdaContextNone)
	case *ir.YieldStatement:
		d.expr(n.Output, LambdaContextNone)
	}
}

// lambdaContextFor reports the expected-type context a VarDecl's
// initializer sits in: typed when the declaration carries an explicit
// type, none when it's left to be inferred.
func lambdaContextFor(n *ir.VarDecl) LambdaContext {
	if n.Declared != nil {
		return LambdaContextTypedVariable
	}
	return LambdaContextNone
}

func (d *safetyDetector) expr(e ir.Expression, ctx LambdaContext) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ir.ArrayExpr:
		if len(n.Elements) == 0 && ctx == LambdaContextNone {
			d.add(errors.TSN7417, "empty array literal without a type annotation", n.OrigSpan)
		}
		for _, el := range n.Elements {
			d.expr(el, LambdaContextArrayElement)
		}
	case *ir.ObjectExpr:
		for _, p := range n.Properties {
			d.expr(p.Value, LambdaContextObjectProperty)
		}
		for _, sp := range n.Spreads {
			d.expr(sp, LambdaContextNone)
		}
	case *ir.MemberAccess:
		d.expr(n.Object, LambdaContextNone)
	case *ir.Call:
		d.expr(n.Callee, LambdaContextNone)
		for _, a := range n.Args {
			d.expr(a, LambdaContextCallArgument)
		}
	case *ir.New:
		if id, ok := n.Callee.(*ir.Identifier); ok && id.Name == "Array" && len(n.TypeArguments) == 0 {
			d.add(errors.TSN7420, "new Array() requires an explicit type argument", n.OrigSpan)
		}
		d.expr(n.Callee, LambdaContextNone)
		for _, a := range n.Args {
			d.expr(a, LambdaContextCallArgument)
		}
	case *ir.Binary:
		d.expr(n.Left, LambdaContextNone)
		d.expr(n.Right, LambdaContextNone)
	case *ir.Logical:
		d.expr(n.Left, LambdaContextNone)
		d.expr(n.Right, LambdaContextNone)
	case *ir.Unary:
		d.expr(n.Operand, LambdaContextNone)
	case *ir.Update:
		d.expr(n.Operand, LambdaContextNone)
	case *ir.Assignment:
		d.expr(n.Target, LambdaContextNone)
		d.expr(n.Value, LambdaContextNone)
	case *ir.Conditional:
		d.expr(n.Test, LambdaContextNone)
		d.expr(n.Then, ctx)
		d.expr(n.Else, ctx)
	case *ir.FunctionExpr:
		d.declaredType(n.ReturnType, n.OrigSpan)
		d.params(n.Parameters, false)
		for _, b := range n.Body {
			d.stmt(b)
		}
	case *ir.ArrowFunction:
		d.arrow(n, ctx)
	case *ir.TemplateLiteral:
		for _, ex := range n.Expressions {
			d.expr(ex, LambdaContextNone)
		}
	case *ir.Spread:
		d.expr(n.Argument, LambdaContextNone)
	case *ir.Await:
		d.expr(n.Argument, LambdaContextNone)
	case *ir.Yield:
		d.expr(n.Argument, LambdaContextNone)
	case *ir.NumericNarrowing:
		d.expr(n.Argument, LambdaContextNone)
	case *ir.TypeAssertion:
		if _, ok := n.Target.(ir.AnyType); ok {
			d.add(errors.TSN7402, "as any assertion", n.OrigSpan)
		}
		d.expr(n.Expr, LambdaContextAsOrSatisfies)
	case *ir.AsInterface:
		d.expr(n.Expr, LambdaContextAsOrSatisfies)
	case *ir.Trycast:
		d.expr(n.Expr, LambdaContextAsOrSatisfies)
	case *ir.Stackalloc:
		d.expr(n.Length, LambdaContextNone)
	}
}

// arrow applies spec §4.2's lambda-parameter rule: a non-simple arrow
// always needs explicit parameter and return types; a simple arrow can
// skip them only inside a deterministic expected-type context.
func (d *safetyDetector) arrow(n *ir.ArrowFunction, ctx LambdaContext) {
	if !IsSimpleArrow(n) {
		for _, p := range n.Parameters {
			if p.DeclaredType == nil {
				d.add(errors.TSN7406, "non-simple arrow missing an explicit parameter type", p.OrigSpan)
			}
			d.declaredType(p.DeclaredType, p.OrigSpan)
		}
		if n.ReturnType == nil {
			d.add(errors.TSN7407, "non-simple arrow missing an explicit return type", n.OrigSpan)
		}
	} else if !HasDeterministicExpectedType(ctx) {
		for _, p := range n.Parameters {
			if p.DeclaredType == nil {
				d.add(errors.TSN7404, "untyped lambda parameter outside a deterministic expected-type context", p.OrigSpan)
			}
		}
	}
	d.declaredType(n.ReturnType, n.OrigSpan)
	d.expr(n.ExprBody, LambdaContextFunctionReturn)
	for _, b := range n.BlockBody {
		d.stmt(b)
	}
}
