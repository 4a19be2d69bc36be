// Package emit is the emitter control core (C10): a pair of mutually
// recursive dispatchers, emitStatement and emitExpression, that walk an
// ir.Module and produce a hostast.File. Grounded on
// internal/eval/eval_core.go's evalCore/evalCoreExpr dispatch shape
// (closed type switch over a sum type, one private method per case),
// repurposed from "evaluate to a runtime Value" to "emit a host AST
// node" — same dispatch idiom, different destination.
package emit

import (
	"fmt"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/universe"
)

// Context is the emitter's thread-through state (spec §4.6): passed by
// value to every dispatcher call, so leaving a nested scope is simply
// "the caller's copy is unaffected by what the callee did to its own."
// Module/Catalog/tempCounter are pointers shared across the whole
// emission of one module. The narrowing rename table is a map, which a
// struct copy alone would share, so withRename gives each guarded branch
// its own copy of it.
type Context struct {
	Module    *ir.Module
	Catalog   *universe.UnifiedTypeCatalog
	ClassName string

	renames     map[string]string // narrowed-binding map: original name -> fresh local
	tempCounter *int              // shared across the whole module's emission

	InGenerator  bool
	GeneratorRet string // host type of values yielded, set while emitting a generator body
}

// NewContext builds the root context for emitting one module.
func NewContext(m *ir.Module, catalog *universe.UnifiedTypeCatalog) Context {
	n := 0
	return Context{
		Module:      m,
		Catalog:     catalog,
		ClassName:   m.ContainerName,
		renames:     map[string]string{},
		tempCounter: &n,
	}
}

// withRename returns a copy of c with one additional narrowed-binding
// entry. The copy's renames map is fresh (never aliases c's), so
// bindings introduced inside a guarded branch never leak to the branch
// that follows it once that branch's Context value is dropped.
func (c Context) withRename(original, renamed string) Context {
	out := c
	out.renames = make(map[string]string, len(c.renames)+1)
	for k, v := range c.renames {
		out.renames[k] = v
	}
	out.renames[original] = renamed
	return out
}

// resolve returns the narrowed local name for ident if one is bound in
// this scope, or ident unchanged otherwise.
func (c Context) resolve(ident string) string {
	if r, ok := c.renames[ident]; ok {
		return r
	}
	return ident
}

// freshNarrowedName mints x__N_k for narrowing original under targetType
// (spec §4.6 "Narrowing").
func (c Context) freshNarrowedName(original, targetType string) string {
	*c.tempCounter++
	return fmt.Sprintf("%s__%s_%d", original, targetType, *c.tempCounter)
}

// freshTemp mints a scratch local not tied to any narrowing, used by
// destructuring/generator lowering that needs a throwaway name.
func (c Context) freshTemp(prefix string) string {
	*c.tempCounter++
	return fmt.Sprintf("__%s%d", prefix, *c.tempCounter)
}

func (c Context) withClassName(name string) Context {
	out := c
	out.ClassName = name
	return out
}

func (c Context) enterGenerator(retType string) Context {
	out := c
	out.InGenerator = true
	out.GeneratorRet = retType
	return out
}
