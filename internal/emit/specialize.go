package emit

import (
	"github.com/tsoniclang/tsonic-sub006/internal/hostast"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/passes"
	"github.com/tsoniclang/tsonic-sub006/internal/universe"
)

// EmitSpecializations monomorphizes each collected specialization request
// (spec §4.5's post-pipeline pass, spec §4.6 "Specialization emission")
// against the generic ir.FuncDecl it targets, substituting type
// parameters with the request's concrete type arguments and naming the
// result with the hash-suffixed name the specialization pass assigned.
func EmitSpecializations(ctx Context, requests []*passes.SpecializationRequest, lookup func(name string) *ir.FuncDecl, catalog *universe.UnifiedTypeCatalog) []*hostast.MethodMember {
	var out []*hostast.MethodMember
	for _, r := range requests {
		decl := lookup(r.DeclName)
		if decl == nil {
			continue
		}
		subst := substitutionMap(decl.TypeParameters, r.TypeArgs)
		specialized := specializeFuncDecl(decl, subst, passes.HashSuffix(r))
		out = append(out, emitMethod(ctx, specialized, true))
	}
	return out
}

func substitutionMap(params []ir.TypeParameter, args []ir.Type) map[string]ir.Type {
	m := make(map[string]ir.Type, len(params))
	for i, p := range params {
		if i < len(args) {
			m[p.Name] = args[i]
		}
	}
	return m
}

// specializeFuncDecl returns a copy of decl with every TypeParameterType
// reference in its parameter/return types substituted from subst, and
// its name replaced with hashName. The body is copied by reference: it
// contains no type-parameter-typed nodes of its own once the IR builder
// has flowed inferred types through (generic bodies only reference type
// parameters through their declared parameter/return types, never as a
// literal type expression), so no deep rewrite is needed there.
func specializeFuncDecl(decl *ir.FuncDecl, subst map[string]ir.Type, hashName string) *ir.FuncDecl {
	params := make([]*ir.Parameter, len(decl.Parameters))
	for i, p := range decl.Parameters {
		cp := *p
		cp.DeclaredType = substituteType(p.DeclaredType, subst)
		params[i] = &cp
	}
	return &ir.FuncDecl{
		Node:        decl.Node,
		Name:        hashName,
		Parameters:  params,
		ReturnType:  substituteType(decl.ReturnType, subst),
		Body:        decl.Body,
		IsAsync:     decl.IsAsync,
		IsGenerator: decl.IsGenerator,
		YieldType:   substituteType(decl.YieldType, subst),
		SentType:    substituteType(decl.SentType, subst),
		NextType:    substituteType(decl.NextType, subst),
		Attributes:  decl.Attributes,
	}
}

func substituteType(t ir.Type, subst map[string]ir.Type) ir.Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case ir.TypeParameterType:
		if repl, ok := subst[v.Name]; ok {
			return repl
		}
		return t
	case ir.ArrayType:
		return ir.ArrayType{Element: substituteType(v.Element, subst)}
	case ir.TupleType:
		return ir.TupleType{Elements: substituteTypeSlice(v.Elements, subst)}
	case ir.UnionType:
		return ir.UnionType{Members: substituteTypeSlice(v.Members, subst)}
	case ir.IntersectionType:
		return ir.IntersectionType{Members: substituteTypeSlice(v.Members, subst)}
	case ir.FunctionType:
		return ir.FunctionType{Parameters: substituteTypeSlice(v.Parameters, subst), Return: substituteType(v.Return, subst)}
	case ir.DictionaryType:
		return ir.DictionaryType{Key: substituteType(v.Key, subst), Value: substituteType(v.Value, subst)}
	case ir.ReferenceType:
		v.TypeArguments = substituteTypeSlice(v.TypeArguments, subst)
		return v
	default:
		return t
	}
}

func substituteTypeSlice(ts []ir.Type, subst map[string]ir.Type) []ir.Type {
	if ts == nil {
		return nil
	}
	out := make([]ir.Type, len(ts))
	for i, t := range ts {
		out[i] = substituteType(t, subst)
	}
	return out
}
