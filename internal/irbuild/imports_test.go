package irbuild

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/manifest"
)

func TestContainerNameForCapitalizes(t *testing.T) {
	if got := ContainerNameFor("widget.tsn"); got != "Widget" {
		t.Errorf("expected Widget, got %s", got)
	}
}

func TestReclassifyImportLocal(t *testing.T) {
	imp := ReclassifyImport("./util")
	if !imp.Flags.IsLocal {
		t.Error("expected local import to be flagged IsLocal")
	}
}

func TestReclassifyImportCLR(t *testing.T) {
	imp := ReclassifyImport("System.Console")
	if !imp.Flags.IsCLR {
		t.Error("expected CLR-looking import to be flagged IsCLR")
	}
}

func TestAttachFlattenedCLRValue(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"bindings":{"max":{"assembly":"mscorlib","type":"System.Math","member":"Max"}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spec := &ir.ImportSpecifier{ImportedName: "max"}
	AttachFlattenedCLRValue(spec, m)
	if spec.ResolvedClrValue != "mscorlib::System.Math::Max" {
		t.Errorf("expected flattened CLR value to be attached, got %q", spec.ResolvedClrValue)
	}
}
