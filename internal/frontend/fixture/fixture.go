// Package fixture provides an in-memory frontend.SourceFile/Checker pair
// for tests, grounded on the teacher's internal/parser/testutil.go style
// of hand-built fixture ASTs rather than running a real parser.
package fixture

import (
	"github.com/tsoniclang/tsonic-sub006/internal/frontend"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// Decl is a fixture declaration.
type Decl struct {
	DeclName string
	DeclKind frontend.DeclarationKind
	Type     ir.Type
}

func (d *Decl) Name() string                       { return d.DeclName }
func (d *Decl) Kind() frontend.DeclarationKind      { return d.DeclKind }

// File is a fixture source file: a fixed path, specifier list, and
// declaration set, built directly by a test rather than parsed.
type File struct {
	FilePath    string
	Specifiers  []string
	Decls       []frontend.Declaration
	Unsupported []frontend.UnsupportedSyntax
}

func (f *File) Path() string                               { return f.FilePath }
func (f *File) ImportSpecifiers() []string                  { return f.Specifiers }
func (f *File) TopLevelDeclarations() []frontend.Declaration { return f.Decls }
func (f *File) UnsupportedSyntax() []frontend.UnsupportedSyntax { return f.Unsupported }

// VarDecl is a fixture frontend.Declaration+frontend.VariableDetail.
type VarDecl struct {
	DeclName       string
	VKind          ir.VarKind
	DeclaredType   ir.Type
	InitializerExp ir.Expression
	Pat            ir.Pattern
}

func (d *VarDecl) Name() string                       { return d.DeclName }
func (d *VarDecl) Kind() frontend.DeclarationKind      { return frontend.DeclVariable }
func (d *VarDecl) VarKind() ir.VarKind                 { return d.VKind }
func (d *VarDecl) Pattern() ir.Pattern                 { return d.Pat }
func (d *VarDecl) Declared() ir.Type                   { return d.DeclaredType }
func (d *VarDecl) Initializer() ir.Expression          { return d.InitializerExp }

// FuncDecl is a fixture frontend.Declaration+frontend.FunctionDetail.
type FuncDecl struct {
	DeclName   string
	TypeParams []ir.TypeParameter
	Params     []*ir.Parameter
	Return     ir.Type
	Statements []ir.Statement
	Async      bool
	Generator  bool
}

func (d *FuncDecl) Name() string                       { return d.DeclName }
func (d *FuncDecl) Kind() frontend.DeclarationKind      { return frontend.DeclFunction }
func (d *FuncDecl) TypeParameters() []ir.TypeParameter { return d.TypeParams }
func (d *FuncDecl) Parameters() []*ir.Parameter        { return d.Params }
func (d *FuncDecl) ReturnType() ir.Type                { return d.Return }
func (d *FuncDecl) Body() []ir.Statement               { return d.Statements }
func (d *FuncDecl) IsAsync() bool                      { return d.Async }
func (d *FuncDecl) IsGenerator() bool                  { return d.Generator }

// ClassDecl is a fixture frontend.Declaration+frontend.ClassDetail.
type ClassDecl struct {
	DeclName      string
	TypeParams    []ir.TypeParameter
	HeritageEdges []ir.HeritageEdge
	FieldDecls    []*ir.FieldDecl
	MethodDecls   []*ir.FuncDecl
}

func (d *ClassDecl) Name() string                       { return d.DeclName }
func (d *ClassDecl) Kind() frontend.DeclarationKind      { return frontend.DeclClass }
func (d *ClassDecl) TypeParameters() []ir.TypeParameter { return d.TypeParams }
func (d *ClassDecl) Heritage() []ir.HeritageEdge        { return d.HeritageEdges }
func (d *ClassDecl) Fields() []*ir.FieldDecl            { return d.FieldDecls }
func (d *ClassDecl) Methods() []*ir.FuncDecl            { return d.MethodDecls }

// InterfaceDecl is a fixture frontend.Declaration+frontend.InterfaceDetail.
type InterfaceDecl struct {
	DeclName      string
	TypeParams    []ir.TypeParameter
	HeritageEdges []ir.HeritageEdge
	MemberDecls   []*ir.FieldDecl
}

func (d *InterfaceDecl) Name() string                       { return d.DeclName }
func (d *InterfaceDecl) Kind() frontend.DeclarationKind      { return frontend.DeclInterface }
func (d *InterfaceDecl) TypeParameters() []ir.TypeParameter { return d.TypeParams }
func (d *InterfaceDecl) Heritage() []ir.HeritageEdge        { return d.HeritageEdges }
func (d *InterfaceDecl) Members() []*ir.FieldDecl           { return d.MemberDecls }

// EnumDecl is a fixture frontend.Declaration+frontend.EnumDetail.
type EnumDecl struct {
	DeclName    string
	MemberDecls []ir.EnumMember
}

func (d *EnumDecl) Name() string                  { return d.DeclName }
func (d *EnumDecl) Kind() frontend.DeclarationKind { return frontend.DeclEnum }
func (d *EnumDecl) Members() []ir.EnumMember       { return d.MemberDecls }

// TypeAliasDecl is a fixture frontend.Declaration+frontend.TypeAliasDetail.
type TypeAliasDecl struct {
	DeclName    string
	TypeParams  []ir.TypeParameter
	AliasedType ir.Type
}

func (d *TypeAliasDecl) Name() string                       { return d.DeclName }
func (d *TypeAliasDecl) Kind() frontend.DeclarationKind      { return frontend.DeclTypeAlias }
func (d *TypeAliasDecl) TypeParameters() []ir.TypeParameter { return d.TypeParams }
func (d *TypeAliasDecl) Aliased() ir.Type                    { return d.AliasedType }

// Checker is a fixture Checker backed by simple maps populated by the
// test that constructs it.
type Checker struct {
	DeclsByName map[string]frontend.Declaration
	Types       map[frontend.Declaration]ir.Type
	ExprTypes   map[interface{}]ir.Type
}

// NewChecker returns an empty fixture checker ready to be populated.
func NewChecker() *Checker {
	return &Checker{
		DeclsByName: make(map[string]frontend.Declaration),
		Types:       make(map[frontend.Declaration]ir.Type),
		ExprTypes:   make(map[interface{}]ir.Type),
	}
}

func (c *Checker) ResolveIdentifier(file frontend.SourceFile, name string, atNode interface{}) (frontend.Declaration, bool) {
	d, ok := c.DeclsByName[name]
	return d, ok
}

func (c *Checker) InferredType(decl frontend.Declaration) ir.Type {
	return c.Types[decl]
}

func (c *Checker) InferredExprType(file frontend.SourceFile, exprNode interface{}) (ir.Type, bool) {
	t, ok := c.ExprTypes[exprNode]
	return t, ok
}

func (c *Checker) SymbolOf(decl frontend.Declaration) string {
	return decl.Name()
}
