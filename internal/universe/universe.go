// Package universe implements the unified binding/type universe (C4):
// the merge of every source-declared type with every CLR type catalogued
// from a loaded bindings.json manifest, addressed by a single stable id
// space so resolution never needs to ask "is this name a source type or
// a host type?"
//
// Grounded on the teacher's internal/types/types.go constructor-tagged
// Type interface and internal/types/instances.go's canonical-key lookup
// tables, generalized from a Hindley-Milner type system to a nominal
// catalog keyed by stable id.
package universe

import (
	"fmt"
	"sort"
	"sync"
)

// TypeID is a stable identifier for an entry in the universe. Two types
// that denote the same nominal entity always share a TypeID, regardless
// of whether one was declared in source and the other catalogued from a
// CLR manifest.
type TypeID string

// Origin distinguishes where a catalog entry came from.
type Origin int

const (
	OriginSource Origin = iota
	OriginCLR
)

func (o Origin) String() string {
	if o == OriginCLR {
		return "clr"
	}
	return "source"
}

// NominalEntry is one nominal type known to the universe.
type NominalEntry struct {
	ID         TypeID
	SurfaceName string
	HostName   string // fully qualified host-language name, e.g. "System.String"
	Origin     Origin
	Supertypes []TypeID // direct supertypes only; BFS walks the rest
}

// MemberEntry is a member (method, property, field) attached to a
// nominal entry.
type MemberEntry struct {
	Owner      TypeID
	Name       string
	IsStatic   bool
	IsMethod   bool
	ParamTypes []TypeID
	ReturnType TypeID
}

// UnifiedTypeCatalog is the merged universe. All mutation happens during
// an initialization phase (module discovery + manifest loading); the
// pass pipeline and emitter only read it, consistent with §5's
// single-threaded/read-only-after-init resource model.
type UnifiedTypeCatalog struct {
	mu sync.RWMutex

	byID     map[TypeID]*NominalEntry
	bySurface map[string]TypeID
	byHost    map[string]TypeID
	members   map[TypeID][]MemberEntry

	nextSynthetic int
}

// New returns an empty catalog pre-seeded with the primitive types every
// pass in the pipeline assumes exist.
func New() *UnifiedTypeCatalog {
	c := &UnifiedTypeCatalog{
		byID:      make(map[TypeID]*NominalEntry),
		bySurface: make(map[string]TypeID),
		byHost:    make(map[string]TypeID),
		members:   make(map[TypeID][]MemberEntry),
	}
	for _, name := range []string{"string", "boolean", "int32", "double", "void", "object", "never"} {
		c.mustDeclare(&NominalEntry{ID: TypeID("prim:" + name), SurfaceName: name, HostName: primitiveHostName(name), Origin: OriginSource})
	}
	return c
}

func primitiveHostName(surface string) string {
	switch surface {
	case "string":
		return "System.String"
	case "boolean":
		return "System.Boolean"
	case "int32":
		return "System.Int32"
	case "double":
		return "System.Double"
	case "void":
		return "System.Void"
	case "object":
		return "System.Object"
	case "never":
		return "System.Void"
	}
	return surface
}

func (c *UnifiedTypeCatalog) mustDeclare(e *NominalEntry) {
	c.byID[e.ID] = e
	if e.SurfaceName != "" {
		c.bySurface[e.SurfaceName] = e.ID
	}
	if e.HostName != "" {
		c.byHost[e.HostName] = e.ID
	}
}

// DeclareSource registers a source-declared nominal type (class, lowered
// interface, enum, or type alias). Returns the assigned TypeID.
func (c *UnifiedTypeCatalog) DeclareSource(surfaceName string, supertypes []TypeID) TypeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.bySurface[surfaceName]; ok {
		return id
	}
	id := TypeID("src:" + surfaceName)
	c.mustDeclare(&NominalEntry{ID: id, SurfaceName: surfaceName, Origin: OriginSource, Supertypes: supertypes})
	return id
}

// DeclareCLR registers a CLR type catalogued from a bindings.json
// manifest. HostName is the fully qualified CLR name; it is the primary
// key CLR entries are looked up by.
func (c *UnifiedTypeCatalog) DeclareCLR(surfaceName, hostName string, supertypes []TypeID) TypeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.byHost[hostName]; ok {
		return id
	}
	id := TypeID(fmt.Sprintf("clr:%s", hostName))
	e := &NominalEntry{ID: id, SurfaceName: surfaceName, HostName: hostName, Origin: OriginCLR, Supertypes: supertypes}
	c.mustDeclare(e)
	return id
}

// SynthesizeAnonymous allocates a fresh TypeID for a lowered anonymous
// object type, keyed by module and member signature and named AnonN in
// first-seen order, so structurally identical shapes collapse to one id
// and one name (I-5's anonymous-type lowering pass depends on this being
// idempotent per member-signature).
func (c *UnifiedTypeCatalog) SynthesizeAnonymous(module string, memberSignature string) (TypeID, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := module + "#" + memberSignature
	if id, ok := c.bySurface[key]; ok {
		entry := c.byID[id]
		return id, entry.HostName
	}
	c.nextSynthetic++
	name := fmt.Sprintf("Anon%d", c.nextSynthetic)
	id := TypeID("anon:" + module + ":" + name)
	c.mustDeclare(&NominalEntry{ID: id, SurfaceName: key, HostName: name, Origin: OriginSource})
	return id, name
}

// Lookup resolves a TypeID to its entry, or false if unknown.
func (c *UnifiedTypeCatalog) Lookup(id TypeID) (*NominalEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byID[id]
	return e, ok
}

// BySurfaceName resolves a source-visible name to a TypeID.
func (c *UnifiedTypeCatalog) BySurfaceName(name string) (TypeID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.bySurface[name]
	return id, ok
}

// ByHostName resolves a fully qualified CLR name to a TypeID.
func (c *UnifiedTypeCatalog) ByHostName(name string) (TypeID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byHost[name]
	return id, ok
}

// AddMember attaches a member to an owning nominal type.
func (c *UnifiedTypeCatalog) AddMember(m MemberEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.members[m.Owner] = append(c.members[m.Owner], m)
}

// Members returns the direct (non-inherited) members of id, sorted by
// name for deterministic iteration (I-6).
func (c *UnifiedTypeCatalog) Members(id TypeID) []MemberEntry {
	c.mu.RLock()
	ms := append([]MemberEntry(nil), c.members[id]...)
	c.mu.RUnlock()
	sort.Slice(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name })
	return ms
}

// MembersWithInherited walks id and its supertype chain breadth-first,
// returning every member visible on id, nearest-declaration-wins on name
// collision. Used by binding resolution's "BFS over supertypes" rule
// (spec §4.3 step 4).
func (c *UnifiedTypeCatalog) MembersWithInherited(id TypeID) []MemberEntry {
	seen := map[string]bool{}
	var out []MemberEntry
	queue := []TypeID{id}
	visited := map[TypeID]bool{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		for _, m := range c.Members(cur) {
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			out = append(out, m)
		}
		if e, ok := c.Lookup(cur); ok {
			queue = append(queue, e.Supertypes...)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SupertypesBFS returns the BFS frontier of cur's supertypes, depth by
// depth, for callers that need the "first depth with any match" rule
// (spec §4.3 step 4) rather than a flattened member list.
func (c *UnifiedTypeCatalog) SupertypesBFS(id TypeID) [][]TypeID {
	var levels [][]TypeID
	frontier := []TypeID{id}
	visited := map[TypeID]bool{id: true}
	for len(frontier) > 0 {
		var next []TypeID
		for _, id := range frontier {
			e, ok := c.Lookup(id)
			if !ok {
				continue
			}
			for _, sup := range e.Supertypes {
				if !visited[sup] {
					visited[sup] = true
					next = append(next, sup)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
		levels = append(levels, next)
		frontier = next
	}
	return levels
}
