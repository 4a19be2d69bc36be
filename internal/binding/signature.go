// Package binding implements the binding registry and extension-method
// overload resolver (C3), grounded on the teacher's internal/link/resolver.go
// memoized map-of-maps resolution and internal/types/instances.go's
// coherence-checked instance lookup — both "index candidates under a key,
// then disambiguate deterministically or refuse" shapes, repurposed here
// from typeclass dictionaries to CLR extension methods.
package binding

import (
	"fmt"
	"strings"
)

// Signature is a parsed normalized-signature string:
// "Name|(ParamType,ParamType,…):ReturnType|static=bool", with a trailing
// "&" on a ParamType marking a byref parameter (spec §6).
type Signature struct {
	Name       string
	ParamTypes []string
	ParamByRef []bool
	ReturnType string
	IsStatic   bool
	Raw        string
}

// ParseSignature parses one normalized-signature string. The grammar is
// deliberately small and ASCII-only, so a hand-rolled parser is
// appropriate rather than a general parsing library.
func ParseSignature(raw string) (Signature, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 3 {
		return Signature{}, fmt.Errorf("malformed signature %q: expected 3 pipe-separated fields, got %d", raw, len(parts))
	}
	name := parts[0]

	paramsAndReturn := parts[1]
	if !strings.HasPrefix(paramsAndReturn, "(") {
		return Signature{}, fmt.Errorf("malformed signature %q: expected '(' after name", raw)
	}
	closeIdx := strings.LastIndex(paramsAndReturn, ")")
	if closeIdx < 0 {
		return Signature{}, fmt.Errorf("malformed signature %q: missing ')'", raw)
	}
	paramList := paramsAndReturn[1:closeIdx]
	rest := paramsAndReturn[closeIdx+1:]
	if !strings.HasPrefix(rest, ":") {
		return Signature{}, fmt.Errorf("malformed signature %q: expected ':' before return type", raw)
	}
	returnType := rest[1:]

	var paramTypes []string
	var byRef []bool
	if strings.TrimSpace(paramList) != "" {
		for _, p := range strings.Split(paramList, ",") {
			p = strings.TrimSpace(p)
			if strings.HasSuffix(p, "&") {
				byRef = append(byRef, true)
				paramTypes = append(paramTypes, strings.TrimSuffix(p, "&"))
			} else {
				byRef = append(byRef, false)
				paramTypes = append(paramTypes, p)
			}
		}
	}

	staticField := parts[2]
	if !strings.HasPrefix(staticField, "static=") {
		return Signature{}, fmt.Errorf("malformed signature %q: expected 'static=' field", raw)
	}
	isStatic := strings.TrimPrefix(staticField, "static=") == "true"

	return Signature{
		Name:       name,
		ParamTypes: paramTypes,
		ParamByRef: byRef,
		ReturnType: returnType,
		IsStatic:   isStatic,
		Raw:        raw,
	}, nil
}

// Arity is the host-language parameter count, including the extension
// receiver at position 0.
func (s Signature) Arity() int {
	return len(s.ParamTypes)
}

// HostTarget identifies the declaring type and member for target-match
// comparisons in overload resolution step 3.
type HostTarget struct {
	Type   string
	Member string
}

func (h HostTarget) String() string {
	return h.Type + "::" + h.Member
}
