package irbuild

import (
	"strings"

	"github.com/tsoniclang/tsonic-sub006/internal/clralias"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/manifest"
)

// ContainerNameFor derives a local import's target container class name
// from a file basename: capitalized, per spec §4.4 ("Resolve local
// imports to a target container class (file basename, capitalized)").
func ContainerNameFor(fileBasename string) string {
	name := strings.TrimSuffix(fileBasename, extOf(fileBasename))
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

// ReclassifyImport turns a raw specifier into an *ir.Import with its
// Flags populated, dispatching on clralias.Classify.
func ReclassifyImport(specifier string) *ir.Import {
	imp := &ir.Import{Specifier: specifier}
	switch clralias.Classify(specifier) {
	case clralias.ClassLocal:
		imp.Flags = ir.ImportFlags{IsLocal: true}
	case clralias.ClassCLR:
		imp.Flags = ir.ImportFlags{IsCLR: true}
	default:
		imp.Flags = ir.ImportFlags{}
	}
	return imp
}

// AttachFlattenedCLRValue consults the bindings manifest for a flattened
// export matching the given identifier and, if found, attaches
// ResolvedClrValue to spec (spec §4.4: "For CLR value imports, consult
// the binding registry to attach resolvedClrValue when the manifest
// lists a flattened export").
func AttachFlattenedCLRValue(spec *ir.ImportSpecifier, m *manifest.Manifest) {
	for _, b := range m.Bindings {
		if b.Identifier == spec.ImportedName {
			spec.ResolvedClrValue = b.Assembly + "::" + b.Type + "::" + b.Member
			return
		}
	}
}
