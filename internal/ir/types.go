package ir

// Type is the closed sum of IR type nodes (spec §3.1). objectType is a
// transient kind that must never survive past the anonymous-type lowering
// pass (invariant I-5); anyType must never survive past the soundness gate
// (invariant I-2).
type Type interface {
	typ()
	String() string
}

type PrimitiveKind int

const (
	PrimString PrimitiveKind = iota
	PrimNumber
	PrimInt32
	PrimDouble
	PrimBool
)

type PrimitiveType struct{ Kind PrimitiveKind }

func (PrimitiveType) typ() {}

type LiteralType struct{ Value interface{} }

func (LiteralType) typ() {}

// ReferenceType names a nominal type, optionally instantiated with type
// arguments. ResolvedHostName is filled in once the unified universe (C4)
// has resolved the surface name.
type ReferenceType struct {
	Name              string
	TypeArguments     []Type
	ResolvedHostName  string
}

func (ReferenceType) typ() {}

type ArrayType struct{ Element Type }

func (ArrayType) typ() {}

type TupleType struct{ Elements []Type }

func (TupleType) typ() {}

type UnionType struct{ Members []Type }

func (UnionType) typ() {}

type IntersectionType struct{ Members []Type }

func (IntersectionType) typ() {}

type FunctionType struct {
	Parameters []Type
	Return     Type
}

func (FunctionType) typ() {}

// ObjectType is a transient structural (anonymous record) type. Must be gone
// by the time pass 1 (anonymous-type lowering) has run (invariant I-5).
type ObjectType struct {
	Properties []ObjectTypeProperty
}

type ObjectTypeProperty struct {
	Name     string
	Type     Type
	Optional bool
}

func (ObjectType) typ() {}

type TypeParameterType struct{ Name string }

func (TypeParameterType) typ() {}

type DictionaryType struct {
	Key   Type
	Value Type
}

func (DictionaryType) typ() {}

type VoidType struct{}

func (VoidType) typ() {}

type NeverType struct{}

func (NeverType) typ() {}

type UnknownType struct{}

func (UnknownType) typ() {}

// AnyType is a parser artefact only. Any occurrence reachable after the
// soundness gate (pass 2) is a fatal diagnostic (invariant I-2, code
// TSN7430).
type AnyType struct{}

func (AnyType) typ() {}

func (t PrimitiveType) String() string {
	switch t.Kind {
	case PrimString:
		return "string"
	case PrimNumber:
		return "number"
	case PrimInt32:
		return "Int32"
	case PrimDouble:
		return "Double"
	case PrimBool:
		return "bool"
	default:
		return "<primitive?>"
	}
}

func (t LiteralType) String() string      { return "literal" }
func (t ReferenceType) String() string    { return t.Name }
func (t ArrayType) String() string        { return t.Element.String() + "[]" }
func (t TupleType) String() string        { return "tuple" }
func (t UnionType) String() string        { return "union" }
func (t IntersectionType) String() string { return "intersection" }
func (t FunctionType) String() string     { return "function" }
func (t ObjectType) String() string       { return "object" }
func (t TypeParameterType) String() string { return t.Name }
func (t DictionaryType) String() string   { return "dictionary" }
func (t VoidType) String() string         { return "void" }
func (t NeverType) String() string        { return "never" }
func (t UnknownType) String() string      { return "unknown" }
func (t AnyType) String() string          { return "any" }

// ContainsAny reports whether t or any reachable subterm is AnyType. Used by
// the soundness gate (pass 2, invariant I-2).
func ContainsAny(t Type) bool {
	switch v := t.(type) {
	case AnyType:
		return true
	case ArrayType:
		return ContainsAny(v.Element)
	case TupleType:
		return anySliceContainsAny(v.Elements)
	case UnionType:
		return anySliceContainsAny(v.Members)
	case IntersectionType:
		return anySliceContainsAny(v.Members)
	case FunctionType:
		if ContainsAny(v.Return) {
			return true
		}
		return anySliceContainsAny(v.Parameters)
	case ObjectType:
		for _, p := range v.Properties {
			if ContainsAny(p.Type) {
				return true
			}
		}
		return false
	case DictionaryType:
		return ContainsAny(v.Key) || ContainsAny(v.Value)
	case ReferenceType:
		return anySliceContainsAny(v.TypeArguments)
	default:
		return false
	}
}

func anySliceContainsAny(ts []Type) bool {
	for _, t := range ts {
		if ContainsAny(t) {
			return true
		}
	}
	return false
}

// ContainsObjectType reports whether t or any reachable subterm is
// ObjectType. Used to check invariant I-5 after pass 1.
func ContainsObjectType(t Type) bool {
	switch v := t.(type) {
	case ObjectType:
		return true
	case ArrayType:
		return ContainsObjectType(v.Element)
	case TupleType:
		return anySliceContainsObject(v.Elements)
	case UnionType:
		return anySliceContainsObject(v.Members)
	case IntersectionType:
		return anySliceContainsObject(v.Members)
	case FunctionType:
		if ContainsObjectType(v.Return) {
			return true
		}
		return anySliceContainsObject(v.Parameters)
	case DictionaryType:
		return ContainsObjectType(v.Key) || ContainsObjectType(v.Value)
	case ReferenceType:
		return anySliceContainsObject(v.TypeArguments)
	default:
		return false
	}
}

func anySliceContainsObject(ts []Type) bool {
	for _, t := range ts {
		if ContainsObjectType(t) {
			return true
		}
	}
	return false
}
