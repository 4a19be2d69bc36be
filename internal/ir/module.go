package ir

// Module is a single compiled file (spec §3.1).
type Module struct {
	Node

	// Path is the file path, relative to the source root and normalized to
	// forward slashes (never absolute, never carrying an extension other
	// than the source extension).
	Path string

	// Namespace is the resolved host-language namespace for this module.
	Namespace string

	// ContainerName is the host-language static class name synthesized for
	// this module's top-level members (spec §4.6 "Static container").
	ContainerName string

	// IsStaticContainer is true once the emitter has decided this module has
	// no top-level executable statement and therefore becomes a pure static
	// class with no __TopLevel method.
	IsStaticContainer bool

	Imports []*Import
	Body    []Statement
	Exports []Export

	// Synthesized holds nominal types generated by the anonymous-type
	// lowering pass (spec §4.5 step 1), owned by the module that needed them.
	Synthesized []*TypeDecl
}

// ImportFlags classifies an import edge.
type ImportFlags struct {
	IsLocal bool
	IsCLR   bool
}

// Import is one import declaration (spec §3.1).
type Import struct {
	Node

	Specifier string // as written in source, before resolution
	Flags     ImportFlags

	ResolvedNamespace string // set for CLR imports
	ResolvedHostType  string // set when the import targets a single type
	ResolvedAssembly  string // set for CLR imports

	// TargetContainer is the host container class name a local import
	// resolves to (file basename, capitalized — spec §4.4 "Imports").
	TargetContainer string

	Specifiers []ImportSpecifier
}

// ImportSpecifierKind discriminates the three specifier shapes.
type ImportSpecifierKind int

const (
	SpecDefault ImportSpecifierKind = iota
	SpecNamespace
	SpecNamed
)

// ImportSpecifier is one bound name within an import declaration.
type ImportSpecifier struct {
	Kind ImportSpecifierKind

	LocalName    string
	ImportedName string // only meaningful for SpecNamed

	// IsTypeOnly marks a specifier imported purely for its type, never a
	// runtime value (elided from emission).
	IsTypeOnly bool

	// ResolvedClrValue is set when a CLR-named import is flattened against a
	// value the manifest lists directly (spec §4.4 "Imports").
	ResolvedClrValue string
}

// ExportKind discriminates the four export shapes in spec §3.1.
type ExportKind int

const (
	ExportNamed ExportKind = iota
	ExportDefaultExpr
	ExportDeclaration
	ExportReexport
)

// Export is one export edge out of a module.
type Export struct {
	Node
	Kind ExportKind

	Name string // local binding name, for ExportNamed/ExportDeclaration

	DefaultExpr Expression // for ExportDefaultExpr
	Declaration Statement  // for ExportDeclaration

	// Reexport fields (ExportReexport): re-export Name as ExportedAs, the
	// binding originates in SourceModule under OriginalName.
	ExportedAs     string
	OriginalName   string
	SourceModule   string
}
