package irbuild

import (
	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/frontend"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// BuildModule converts one frontend.SourceFile into an *ir.Module (spec
// §4.4): imports are reclassified via ReclassifyImport, and each top-level
// Declaration is dispatched on Kind() to the matching Detail interface
// (frontend.VariableDetail, frontend.FunctionDetail, ...) and converted to
// the corresponding ir.Statement. An interface declaration is lowered
// immediately into a nominal ClassDecl (auto-property style) and a
// structural type alias into a sealed "__Alias" ClassDecl, so neither
// ir.InterfaceDecl nor a structural ir.TypeAliasDecl ever reaches
// Module.Body (spec §4.4, ir.InterfaceDecl's and ir.TypeAliasDecl's own doc
// comments). Grounded on the teacher's internal/elaborate/elaborate.go,
// which walks one parsed file's top-level forms into one elaborated
// module in a single pass.
func BuildModule(path string, file frontend.SourceFile, checker frontend.Checker, collector *diag.Collector) (*ir.Module, *diag.Collector) {
	m := &ir.Module{Path: path}

	for _, spec := range file.ImportSpecifiers() {
		m.Imports = append(m.Imports, ReclassifyImport(spec))
	}

	for _, decl := range file.TopLevelDeclarations() {
		var stmt ir.Statement
		stmt, collector = buildDeclaration(m, decl, checker, collector)
		if stmt != nil {
			m.Body = append(m.Body, stmt)
		}
	}

	return m, collector
}

func buildDeclaration(m *ir.Module, decl frontend.Declaration, checker frontend.Checker, collector *diag.Collector) (ir.Statement, *diag.Collector) {
	switch decl.Kind() {
	case frontend.DeclVariable:
		detail, ok := decl.(frontend.VariableDetail)
		if !ok {
			return nil, unknownDeclaration(m, decl, collector)
		}
		var out ir.Statement
		out, collector = buildVariable(decl, detail, checker, collector)
		return out, collector
	case frontend.DeclFunction:
		detail, ok := decl.(frontend.FunctionDetail)
		if !ok {
			return nil, unknownDeclaration(m, decl, collector)
		}
		var out ir.Statement
		out, collector = buildFunction(decl, detail, collector)
		return out, collector
	case frontend.DeclClass:
		detail, ok := decl.(frontend.ClassDetail)
		if !ok {
			return nil, unknownDeclaration(m, decl, collector)
		}
		return buildClass(decl, detail), collector
	case frontend.DeclInterface:
		detail, ok := decl.(frontend.InterfaceDetail)
		if !ok {
			return nil, unknownDeclaration(m, decl, collector)
		}
		return lowerInterface(decl, detail), collector
	case frontend.DeclEnum:
		detail, ok := decl.(frontend.EnumDetail)
		if !ok {
			return nil, unknownDeclaration(m, decl, collector)
		}
		return buildEnum(decl, detail), collector
	case frontend.DeclTypeAlias:
		detail, ok := decl.(frontend.TypeAliasDetail)
		if !ok {
			return nil, unknownDeclaration(m, decl, collector)
		}
		return lowerTypeAlias(m, decl, detail), collector
	default:
		return nil, unknownDeclaration(m, decl, collector)
	}
}

// unknownDeclaration reports a front end Declaration whose Kind() does not
// match any of the six kinds the IR builder recognizes, or whose Detail
// interface it fails to implement despite the Kind — an internal
// invariant violation (TSN6001), never a silent skip, matching the
// treatment the pass-level walkers in internal/passes give an unmatched
// Statement/Expression kind.
func unknownDeclaration(m *ir.Module, decl frontend.Declaration, collector *diag.Collector) *diag.Collector {
	return collector.Addf(errors.TSN6001, diag.Fatal, ir.Pos{File: m.Path},
		"ir builder: declaration %q has unrecognized kind %d", decl.Name(), decl.Kind())
}

func buildVariable(decl frontend.Declaration, detail frontend.VariableDetail, checker frontend.Checker, collector *diag.Collector) (ir.Statement, *diag.Collector) {
	v := &ir.VarDecl{
		Kind:        detail.VarKind(),
		Pattern:     detail.Pattern(),
		Declared:    detail.Declared(),
		Initializer: detail.Initializer(),
	}
	if v.Declared == nil {
		if t := checker.InferredType(decl); t != nil {
			v.Declared = t
		}
	}
	if arrow, ok := v.Initializer.(*ir.ArrowFunction); ok {
		var expected *ir.FunctionType
		if fnType, ok := v.Declared.(ir.FunctionType); ok {
			expected = &fnType
		}
		collector = InferArrowParameters(arrow, expected, arrow.OrigSpan, collector)
	}
	return v, collector
}

func buildFunction(decl frontend.Declaration, detail frontend.FunctionDetail, collector *diag.Collector) (ir.Statement, *diag.Collector) {
	fn := &ir.FuncDecl{
		Name:           decl.Name(),
		TypeParameters: detail.TypeParameters(),
		Parameters:     detail.Parameters(),
		ReturnType:     detail.ReturnType(),
		Body:           ComputeNarrowing(detail.Body()),
		IsAsync:        detail.IsAsync(),
		IsGenerator:    detail.IsGenerator(),
	}
	return fn, collector
}

func buildClass(decl frontend.Declaration, detail frontend.ClassDetail) ir.Statement {
	return &ir.ClassDecl{
		Name:           decl.Name(),
		TypeParameters: detail.TypeParameters(),
		Heritage:       detail.Heritage(),
		Fields:         detail.Fields(),
		Methods:        detail.Methods(),
	}
}

func buildEnum(decl frontend.Declaration, detail frontend.EnumDetail) ir.Statement {
	return &ir.EnumDecl{
		Name:    decl.Name(),
		Members: detail.Members(),
	}
}

// lowerInterface converts an interface declaration straight into a nominal
// ClassDecl, auto-property style: each interface member becomes a field
// with IsAutoProp set, the same shape anonymous-type lowering gives a
// synthesized object type (spec §4.4; grounded on
// internal/passes/anonymous.go's synthesize).
func lowerInterface(decl frontend.Declaration, detail frontend.InterfaceDetail) ir.Statement {
	fields := make([]*ir.FieldDecl, len(detail.Members()))
	for i, member := range detail.Members() {
		f := *member
		f.IsAutoProp = true
		fields[i] = &f
	}
	return &ir.ClassDecl{
		Name:           decl.Name(),
		TypeParameters: detail.TypeParameters(),
		Heritage:       detail.Heritage(),
		Fields:         fields,
	}
}

// lowerTypeAlias lowers a structural type alias (Aliased is an
// ir.ObjectType) into a sealed "__Alias"-suffixed ClassDecl, recorded in
// m.Synthesized alongside anonymous-type lowering's own synthesized types
// (spec §4.4). A non-structural alias (aliasing a reference, union,
// primitive, etc.) carries no runtime shape of its own to seal, so it is
// dropped from Module.Body entirely — every reference to its name
// resolves, post-build, directly to the aliased type.
func lowerTypeAlias(m *ir.Module, decl frontend.Declaration, detail frontend.TypeAliasDetail) ir.Statement {
	obj, ok := detail.Aliased().(ir.ObjectType)
	if !ok {
		return nil
	}
	fields := make([]*ir.FieldDecl, len(obj.Properties))
	for i, p := range obj.Properties {
		fields[i] = &ir.FieldDecl{Name: p.Name, Declared: p.Type, IsAutoProp: true}
	}
	sealed := &ir.ClassDecl{
		Name:           decl.Name() + "__Alias",
		TypeParameters: detail.TypeParameters(),
		Fields:         fields,
		IsSealed:       true,
	}
	m.Synthesized = append(m.Synthesized, sealed)
	return nil
}
