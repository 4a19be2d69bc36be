package emit

import (
	"fmt"

	"github.com/tsoniclang/tsonic-sub006/internal/hostast"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/universe"
)

// EmitModule walks m and produces the host-language compilation unit
// (spec §4.6). Top-level function/class/enum declarations become
// container members or sibling types; type-alias and interface
// declarations are skipped (they are lowered before the pass pipeline);
// any remaining top-level
// executable statement is collected into a synthesized __TopLevel
// method (spec §4.6 "Static container") unless there are none, in which
// case the module is a pure static class (ir.Module.IsStaticContainer).
func EmitModule(m *ir.Module, catalog *universe.UnifiedTypeCatalog) *hostast.File {
	ctx := NewContext(m, catalog)

	var containerMembers []hostast.Member
	var siblingTypes []*hostast.TypeDecl
	var topLevel []ir.Statement

	for _, s := range m.Body {
		switch n := s.(type) {
		case *ir.FuncDecl:
			containerMembers = append(containerMembers, emitMethod(ctx, n, true))
			if n.IsGenerator && n.NextType != nil {
				exchange, wrapper := BidirectionalGeneratorSupport(n.Name, HostTypeName(n.YieldType), HostTypeName(n.NextType))
				siblingTypes = append(siblingTypes, exchange, wrapper)
			}
		case *ir.ClassDecl:
			siblingTypes = append(siblingTypes, emitClass(ctx, n))
		case *ir.EnumDecl:
			siblingTypes = append(siblingTypes, emitEnum(n))
		case *ir.TypeAliasDecl, *ir.InterfaceDecl:
			// lowered away before the IR reaches the pass pipeline (spec §4.4);
			// defensively skip if one slipped through unlowered.
		default:
			topLevel = append(topLevel, s)
		}
	}

	m.IsStaticContainer = len(topLevel) == 0
	if !m.IsStaticContainer {
		body := emitStatements(ctx, topLevel)
		containerMembers = append([]hostast.Member{&hostast.MethodMember{
			Modifiers:  []string{"public", "static"},
			ReturnType: "void",
			Name:       "__TopLevel",
			Body:       body,
		}}, containerMembers...)
	}

	for _, td := range m.Synthesized {
		siblingTypes = append(siblingTypes, emitClass(ctx, td))
	}

	container := &hostast.TypeDecl{
		Modifiers: []string{"public", "static"},
		Kind:      "class",
		Name:      m.ContainerName,
		Members:   containerMembers,
	}

	types := append([]*hostast.TypeDecl{container}, siblingTypes...)
	return &hostast.File{
		Usings:    []string{"System", "System.Collections.Generic", "System.Linq"},
		Namespace: m.Namespace,
		Types:     types,
	}
}

func emitMethod(ctx Context, n *ir.FuncDecl, static bool) *hostast.MethodMember {
	mods := []string{"public"}
	if static {
		mods = append(mods, "static")
	}
	mctx := ctx
	retType := HostTypeName(n.ReturnType)
	if n.IsGenerator {
		retType = fmt.Sprintf("IEnumerable<%s>", HostTypeName(n.YieldType))
		mctx = ctx.enterGenerator(HostTypeName(n.YieldType))
	}

	attrs := make([]string, len(n.Attributes))
	for i, a := range n.Attributes {
		attrs[i] = renderAttribute(mctx, a)
	}

	return &hostast.MethodMember{
		Attributes: attrs,
		Modifiers:  mods,
		ReturnType: retType,
		Name:       n.Name,
		Parameters: emitParams(n.Parameters),
		Body:       emitStatements(mctx, n.Body),
	}
}

func emitParams(params []*ir.Parameter) []hostast.Param {
	out := make([]hostast.Param, len(params))
	for i, p := range params {
		mod := ""
		switch p.Passing {
		case ir.PassByRef:
			mod = "ref"
		case ir.PassOut:
			mod = "out"
		case ir.PassIn:
			mod = "in"
		}
		out[i] = hostast.Param{Modifier: mod, Type: HostTypeName(p.DeclaredType), Name: patternName(p.Pattern)}
	}
	return out
}

func emitClass(ctx Context, n *ir.ClassDecl) *hostast.TypeDecl {
	cctx := ctx.withClassName(n.Name)
	mods := []string{"public"}
	if n.IsSealed {
		mods = append(mods, "sealed")
	}
	var base []string
	for _, h := range n.Heritage {
		base = append(base, h.Target)
	}
	var members []hostast.Member
	for _, f := range n.Fields {
		members = append(members, emitField(cctx, f))
	}
	for _, meth := range n.Methods {
		members = append(members, emitMethod(cctx, meth, false))
	}
	attrs := make([]string, len(n.Attributes))
	for i, a := range n.Attributes {
		attrs[i] = renderAttribute(cctx, a)
	}
	return &hostast.TypeDecl{
		Attributes: attrs,
		Modifiers:  mods,
		Kind:       "class",
		Name:       n.Name,
		BaseList:   base,
		Members:    members,
	}
}

func emitField(ctx Context, f *ir.FieldDecl) hostast.Member {
	mods := []string{"public"}
	if f.IsStatic {
		mods = append(mods, "static")
	}
	if f.IsAutoProp {
		return &hostast.PropertyMember{Modifiers: mods, Type: HostTypeName(f.Declared), Name: f.Name, AutoGet: true, AutoSet: !f.IsReadonly}
	}
	if f.IsReadonly {
		mods = append(mods, "readonly")
	}
	return &hostast.FieldMember{Modifiers: mods, Type: HostTypeName(f.Declared), Name: f.Name, Init: emitExpression(ctx, f.Initializer)}
}

func emitEnum(n *ir.EnumDecl) *hostast.TypeDecl {
	var members []hostast.Member
	for _, m := range n.Members {
		init := hostast.Expr("")
		if m.Value != nil {
			init = emitExpression(Context{}, m.Value)
		}
		members = append(members, &hostast.FieldMember{Type: "", Name: m.Name, Init: init})
	}
	return &hostast.TypeDecl{Modifiers: []string{"public"}, Kind: "enum", Name: n.Name, Members: members}
}

func renderAttribute(ctx Context, a ir.Attribute) string {
	args := make([]string, len(a.Arguments))
	for i, e := range a.Arguments {
		args[i] = string(emitExpression(ctx, e))
	}
	if len(args) == 0 {
		return a.Name
	}
	out := a.Name + "("
	for i, arg := range args {
		if i > 0 {
			out += ", "
		}
		out += arg
	}
	return out + ")"
}
