// Package frontend declares the contract the core consumes from the
// external syntactic front end (§6): parsing and pretty-printing are
// explicitly out of scope for this module, but everything downstream
// (validators, IR builder, passes) is written against these interfaces
// so a real front end can be substituted without touching core code.
// Grounded on the teacher's internal/parser/testutil.go fixture style for
// the in-memory test double in the fixture subpackage.
package frontend

import "github.com/tsoniclang/tsonic-sub006/internal/ir"

// SourceFile is one parsed source file as the front end presents it. The
// core never inspects fields of the underlying syntax tree directly; it
// only calls methods on SourceFile and Checker.
type SourceFile interface {
	// Path is the file's resolved absolute path.
	Path() string
	// ImportSpecifiers returns every module specifier named by an import
	// declaration or a from-bearing re-export (spec §4.1 step 3).
	ImportSpecifiers() []string
	// TopLevelDeclarations returns the file's top-level declaration
	// nodes in source order, opaque to the core beyond what Checker can
	// tell it about them.
	TopLevelDeclarations() []Declaration
	// UnsupportedSyntax returns every occurrence of a dynamic-feature
	// construct the front end recognized while scanning the file
	// (decorators, symbols, proxies, weak collections, eval, with,
	// prototype mutation — spec §4.2's first validator). None of these
	// are representable in the closed IR sum, since they are rejected
	// before IR construction ever runs, so this is the only point at
	// which the core can see them at all.
	UnsupportedSyntax() []UnsupportedSyntax
}

// UnsupportedSyntax names one occurrence of a construct spec §4.2's first
// validator rejects outright.
type UnsupportedSyntax struct {
	Construct string
	Pos       ir.Pos
}

// Declaration is an opaque handle to a top-level declaration node, only
// usable through Checker.
type Declaration interface {
	Name() string
	Kind() DeclarationKind
}

// DeclarationKind enumerates the declaration shapes the IR builder cares
// about.
type DeclarationKind int

const (
	DeclVariable DeclarationKind = iota
	DeclFunction
	DeclClass
	DeclInterface
	DeclEnum
	DeclTypeAlias
)

// The Detail interfaces below are the per-Kind extension of Declaration
// (mirroring SourceFile.UnsupportedSyntax's approach): expression and
// statement-bodied syntax is already out of this module's scope, so a
// Declaration of a given Kind additionally implements the matching Detail
// interface, handing irbuild already-built ir.Statement/ir.Expression/
// ir.Type pieces for everything beneath the declaration header that
// internal/ir's closed sum already models. irbuild.BuildModule type-
// asserts each Declaration to its Kind's Detail interface.

// VariableDetail is implemented by a Declaration of DeclVariable kind.
type VariableDetail interface {
	VarKind() ir.VarKind
	Pattern() ir.Pattern
	Declared() ir.Type // nil if not explicitly annotated
	Initializer() ir.Expression
}

// FunctionDetail is implemented by a Declaration of DeclFunction kind.
type FunctionDetail interface {
	TypeParameters() []ir.TypeParameter
	Parameters() []*ir.Parameter
	ReturnType() ir.Type
	Body() []ir.Statement
	IsAsync() bool
	IsGenerator() bool
}

// ClassDetail is implemented by a Declaration of DeclClass kind.
type ClassDetail interface {
	TypeParameters() []ir.TypeParameter
	Heritage() []ir.HeritageEdge
	Fields() []*ir.FieldDecl
	Methods() []*ir.FuncDecl
}

// InterfaceDetail is implemented by a Declaration of DeclInterface kind.
type InterfaceDetail interface {
	TypeParameters() []ir.TypeParameter
	Heritage() []ir.HeritageEdge
	Members() []*ir.FieldDecl
}

// EnumDetail is implemented by a Declaration of DeclEnum kind.
type EnumDetail interface {
	Members() []ir.EnumMember
}

// TypeAliasDetail is implemented by a Declaration of DeclTypeAlias kind.
type TypeAliasDetail interface {
	TypeParameters() []ir.TypeParameter
	Aliased() ir.Type
}

// Checker is the typed front end's query surface (§6): resolve
// identifier to declaration, inferred type of a declaration, inferred
// type of an expression (only where the spec explicitly permits
// expression-type queries), and symbol-of-declaration.
type Checker interface {
	ResolveIdentifier(file SourceFile, name string, atNode interface{}) (Declaration, bool)
	InferredType(decl Declaration) ir.Type
	InferredExprType(file SourceFile, exprNode interface{}) (ir.Type, bool)
	SymbolOf(decl Declaration) string
}

// Program is the typed program over every discovered file, built in one
// invocation with a single shared Checker (spec §4.1 step 6).
type Program struct {
	Files   []SourceFile
	Checker Checker
}
