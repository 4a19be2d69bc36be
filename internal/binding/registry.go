package binding

import (
	"sort"
	"sync"

	"github.com/tsoniclang/tsonic-sub006/internal/universe"
)

// ExtensionMethod is one candidate indexed by (namespace, method name);
// ReceiverType is matched during resolution. DeclaringAssembly/DeclaringType back HostTarget equality
// checks during resolution.
type ExtensionMethod struct {
	Namespace         string
	ReceiverType      universe.TypeID
	Signature         Signature
	DeclaringAssembly string
	DeclaringType     string
}

func (m ExtensionMethod) target() HostTarget {
	return HostTarget{Type: m.DeclaringType, Member: m.Signature.Name}
}

// Registry indexes extension methods for BFS-over-supertypes overload
// resolution (spec §4.3). Built once during CLR-binding discovery, then
// read-only for the rest of the pipeline (§5).
type Registry struct {
	mu        sync.RWMutex
	catalog   *universe.UnifiedTypeCatalog
	byKey     map[string][]ExtensionMethod // key: namespace + "\x00" + methodName
	loadedSet map[string]bool              // manifests already loaded, by path
}

// NewRegistry builds an empty registry backed by catalog for supertype
// BFS lookups.
func NewRegistry(catalog *universe.UnifiedTypeCatalog) *Registry {
	return &Registry{
		catalog:   catalog,
		byKey:     make(map[string][]ExtensionMethod),
		loadedSet: make(map[string]bool),
	}
}

func key(namespace, methodName string) string {
	return namespace + "\x00" + methodName
}

// MarkLoaded records that a manifest path has been loaded, enforcing
// the "each manifest loaded exactly once" rule from §4.3. Returns false
// if it was already loaded.
func (r *Registry) MarkLoaded(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadedSet[path] {
		return false
	}
	r.loadedSet[path] = true
	return true
}

// Index registers one extension method candidate under its
// (namespace, method name) key; ResolveExtension filters the candidates
// by receiver type.
func (r *Registry) Index(m ExtensionMethod) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(m.Namespace, m.Signature.Name)
	r.byKey[k] = append(r.byKey[k], m)
}

// Resolution is the outcome of ResolveExtension: either a single
// unambiguous candidate, or Unresolved with a reason.
type Resolution struct {
	Method     ExtensionMethod
	Resolved   bool
	Ambiguous  bool
	Reason     string
}

// ResolveExtension implements the four-step algorithm of spec §4.3 for a
// call of arity n (not counting the receiver) against methodName in
// namespace, with receiver type recv.
func (r *Registry) ResolveExtension(namespace, methodName string, recv universe.TypeID, n int) Resolution {
	r.mu.RLock()
	candidates := append([]ExtensionMethod(nil), r.byKey[key(namespace, methodName)]...)
	r.mu.RUnlock()
	if len(candidates) == 0 {
		return Resolution{Reason: "no candidates for " + namespace + "." + methodName}
	}

	want := n + 1

	// Step 4: BFS over supertypes of recv (including recv itself at depth 0).
	levels := [][]universe.TypeID{{recv}}
	levels = append(levels, r.catalog.SupertypesBFS(recv)...)

	for _, level := range levels {
		byType := filterByReceiverTypes(candidates, level)
		if len(byType) == 0 {
			continue
		}
		res := resolveArity(byType, want)
		if res.Resolved || res.Ambiguous {
			return res
		}
		// No arity match at this depth but candidates existed: per spec,
		// BFS continues to the next depth only if this depth produced no
		// type match at all; an arity miss at a matching depth is final.
		return res
	}
	return Resolution{Reason: "no receiver-type match in supertype chain"}
}

func filterByReceiverTypes(candidates []ExtensionMethod, types []universe.TypeID) []ExtensionMethod {
	set := make(map[universe.TypeID]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	var out []ExtensionMethod
	for _, c := range candidates {
		if set[c.ReceiverType] {
			out = append(out, c)
		}
	}
	return out
}

// resolveArity applies steps 1-3 of §4.3 to a receiver-type-filtered
// candidate list.
func resolveArity(candidates []ExtensionMethod, want int) Resolution {
	exact := filterByArity(candidates, want)
	pool := exact
	if len(pool) == 0 {
		// Step 2: smallest arity strictly larger than want.
		best := -1
		for _, c := range candidates {
			a := c.Signature.Arity()
			if a > want && (best == -1 || a < best) {
				best = a
			}
		}
		if best == -1 {
			return Resolution{Reason: "no candidate arity matches"}
		}
		pool = filterByArity(candidates, best)
	}

	// Step 3: disagreement on host target or parameter-modifier set is
	// unresolved.
	first := pool[0]
	for _, c := range pool[1:] {
		if c.target() != first.target() {
			return Resolution{Ambiguous: true, Reason: "candidates disagree on host target"}
		}
		if !sameModifiers(c.Signature.ParamByRef, first.Signature.ParamByRef) {
			return Resolution{Ambiguous: true, Reason: "candidates disagree on parameter-modifier set"}
		}
	}
	return Resolution{Method: first, Resolved: true}
}

func filterByArity(candidates []ExtensionMethod, arity int) []ExtensionMethod {
	var out []ExtensionMethod
	for _, c := range candidates {
		if c.Signature.Arity() == arity {
			out = append(out, c)
		}
	}
	return out
}

func sameModifiers(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AllMethods returns every indexed method, sorted deterministically by
// (namespace, method name, declaring type) for snapshot-stable output.
func (r *Registry) AllMethods() []ExtensionMethod {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ExtensionMethod
	for _, ms := range r.byKey {
		out = append(out, ms...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		if out[i].Signature.Name != out[j].Signature.Name {
			return out[i].Signature.Name < out[j].Signature.Name
		}
		return out[i].DeclaringType < out[j].DeclaringType
	})
	return out
}
