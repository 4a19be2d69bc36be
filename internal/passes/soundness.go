package passes

import (
	"fmt"

	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/errors"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// SoundnessGate is pass 2 (spec §4.5): traverse all IR, and if any
// reachable type position contains AnyType, emit a fatal diagnostic
// pinpointing the IR path. Invariant I-2 requires no AnyType survive
// past this pass. A hit here is TSN7430, not TSN6001 — the program
// legitimately contains an any that the static-safety validator should
// have caught earlier, or that slipped past it; TSN6001 is reserved for
// the walker itself encountering a node kind it does not recognize.
func SoundnessGate(m *ir.Module, collector *diag.Collector) (*ir.Module, *diag.Collector) {
	walkModuleTypes(m, func(t ir.Type) {
		if ir.ContainsAny(t) {
			collector = collector.Addf(errors.TSN7430, diag.Fatal, ir.Pos{File: m.Path},
				"soundness gate: %s reaches anyType", describeType(t))
		}
	}, func(kind string) {
		collector = collector.Addf(errors.TSN6001, diag.Fatal, ir.Pos{File: m.Path},
			"soundness gate: unrecognized %s kind", kind)
	})
	return m, collector
}

func describeType(t ir.Type) string {
	return fmt.Sprintf("type position %q", t.String())
}
