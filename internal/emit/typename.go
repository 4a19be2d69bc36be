package emit

import (
	"fmt"
	"strings"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// HostTypeName renders t as host-language source text. A ReferenceType
// prefers its resolved host name (set by the unified universe, C4) and
// falls back to its surface name when resolution hasn't happened yet —
// callers that need a guaranteed-resolved name should check
// ResolvedHostName themselves first.
func HostTypeName(t ir.Type) string {
	if t == nil {
		return "var"
	}
	switch v := t.(type) {
	case ir.PrimitiveType:
		switch v.Kind {
		case ir.PrimString:
			return "string"
		case ir.PrimNumber:
			return "double"
		case ir.PrimInt32:
			return "int"
		case ir.PrimDouble:
			return "double"
		case ir.PrimBool:
			return "bool"
		}
	case ir.ReferenceType:
		if v.ResolvedHostName != "" {
			return v.ResolvedHostName
		}
		return v.Name
	case ir.ArrayType:
		return HostTypeName(v.Element) + "[]"
	case ir.TupleType:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = HostTypeName(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case ir.UnionType:
		// a closed-IR union with no further lowering is emitted as
		// object; narrowing (spec §4.6) is what recovers precision.
		return "object"
	case ir.IntersectionType:
		if len(v.Members) > 0 {
			return HostTypeName(v.Members[0])
		}
		return "object"
	case ir.FunctionType:
		parts := make([]string, len(v.Parameters))
		for i, p := range v.Parameters {
			parts[i] = HostTypeName(p)
		}
		if _, ok := v.Return.(ir.VoidType); ok {
			return fmt.Sprintf("Action<%s>", strings.Join(parts, ", "))
		}
		return fmt.Sprintf("Func<%s, %s>", strings.Join(parts, ", "), HostTypeName(v.Return))
	case ir.DictionaryType:
		return fmt.Sprintf("Dictionary<%s, %s>", HostTypeName(v.Key), HostTypeName(v.Value))
	case ir.VoidType:
		return "void"
	case ir.NeverType:
		return "void"
	case ir.UnknownType:
		return "object"
	case ir.AnyType:
		return "object" // never reached in a module that passed the soundness gate
	case ir.TypeParameterType:
		return v.Name
	}
	return "object"
}
