// Package diag implements the diagnostic collector threaded through every
// pass, validator, and resolver (spec §2 C2, §7). The collector is an
// immutable, append-only accumulator: every method that "adds" a diagnostic
// returns a new *Collector rather than mutating the receiver, so that a pass
// function retains the shape `(IR, *Collector) -> (IR, *Collector)` (spec
// §3.4, §4.5) without callers needing to worry about aliasing.
package diag

import (
	"fmt"
	"sort"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// Diagnostic is one reported condition.
type Diagnostic struct {
	Code     string // TSNxxxx, see internal/errors
	Severity Severity
	Message  string
	Pos      ir.Pos
}

// Collector accumulates diagnostics. The zero value is a valid, empty
// collector.
type Collector struct {
	entries []Diagnostic
	fatal   bool
}

// New returns an empty collector.
func New() *Collector { return &Collector{} }

// clone returns a new collector sharing no backing array with the receiver,
// preserving append-only/immutable semantics under concurrent passes.
func (c *Collector) clone() *Collector {
	out := &Collector{fatal: c.fatal}
	out.entries = make([]Diagnostic, len(c.entries))
	copy(out.entries, c.entries)
	return out
}

// Add reports a diagnostic and returns the updated collector. A Fatal
// diagnostic is recorded but does not itself stop anything — callers that
// want to abort must check HasFatal/HasErrors after calling Add, matching
// the propagation policy in spec §7 ("fatal triggers immediate return").
func (c *Collector) Add(d Diagnostic) *Collector {
	out := c.clone()
	out.entries = append(out.entries, d)
	if d.Severity == Fatal {
		out.fatal = true
	}
	return out
}

// Addf is a convenience wrapper around Add for formatted messages.
func (c *Collector) Addf(code string, sev Severity, pos ir.Pos, format string, args ...interface{}) *Collector {
	return c.Add(Diagnostic{Code: code, Severity: sev, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// Merge combines two collectors deterministically: entries from a are
// emitted before entries from b, preserving within-collector order
// (invariant I-6 — no pass may observe iteration order of a hash container,
// and merges of parallel pass results must not introduce nondeterminism).
func Merge(a, b *Collector) *Collector {
	out := &Collector{fatal: a.fatal || b.fatal}
	out.entries = make([]Diagnostic, 0, len(a.entries)+len(b.entries))
	out.entries = append(out.entries, a.entries...)
	out.entries = append(out.entries, b.entries...)
	return out
}

// MergeSorted combines collectors whose relative order must be pinned by a
// caller-supplied stable key (e.g. module relative path) rather than call
// order — used when passes ran in parallel across modules (spec §5).
func MergeSorted(cs []*Collector, keyOf func(int) string) *Collector {
	type keyed struct {
		key string
		idx int
	}
	keys := make([]keyed, len(cs))
	for i := range cs {
		keys[i] = keyed{key: keyOf(i), idx: i}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].key < keys[j].key })

	out := &Collector{}
	for _, k := range keys {
		c := cs[k.idx]
		out.entries = append(out.entries, c.entries...)
		out.fatal = out.fatal || c.fatal
	}
	return out
}

// Diagnostics returns a defensive copy of all recorded diagnostics, in
// report order.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.entries))
	copy(out, c.entries)
	return out
}

// HasFatal reports whether any Fatal diagnostic has been recorded.
func (c *Collector) HasFatal() bool { return c.fatal }

// HasErrors reports whether emission must be skipped: any Fatal or Error
// diagnostic blocks emission (spec §7, "Emission checks collector.hasErrors
// and skips if set").
func (c *Collector) HasErrors() bool {
	for _, d := range c.entries {
		if d.Severity == Fatal || d.Severity == Error {
			return true
		}
	}
	return false
}

// Codes returns the ordered list of diagnostic codes, for property P-9
// (diagnostic determinism) assertions in tests.
func (c *Collector) Codes() []string {
	out := make([]string, len(c.entries))
	for i, d := range c.entries {
		out[i] = d.Code
	}
	return out
}
