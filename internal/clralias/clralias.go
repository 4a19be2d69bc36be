// Package clralias resolves import specifiers against both the CLR
// binding registry and the host's local module resolution rules (C5),
// and normalizes file paths/specifiers the way the lexer boundary
// normalizes source text. Grounded on the teacher's
// internal/module/loader.go (path resolution, canonical-path caching)
// and internal/lexer/normalize.go (BOM strip + NFC via golang.org/x/text,
// reused verbatim here for case-insensitive-filesystem canonicalization).
package clralias

import (
	"bytes"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// NormalizeSpecifier strips a BOM and applies NFC normalization to a raw
// module specifier or file path, so two textually-equivalent specifiers
// encoded differently resolve to the same canonical string (spec §4.1's
// case-insensitive-filesystem edge case starts from a normalized input).
func NormalizeSpecifier(raw []byte) string {
	raw = bytes.TrimPrefix(raw, bomUTF8)
	if !norm.NFC.IsNormal(raw) {
		raw = norm.NFC.Bytes(raw)
	}
	return string(raw)
}

// Classification is the result of classifying an import specifier.
type Classification int

const (
	ClassLocal Classification = iota
	ClassCLR
	ClassModuleBinding
)

// ModuleResolver is the host tool's module resolution rule, per §6:
// (specifier, containingFile) -> resolvedPath | unresolved.
type ModuleResolver interface {
	Resolve(specifier, containingFile string) (resolvedPath string, ok bool)
}

// Alias resolves a surface CLR type/namespace name (e.g. "object",
// "System.Collections.Generic.List") against the loaded manifests'
// catalog of known host names.
type Alias struct {
	// surfaceToHost maps a surface alias seen in import specifiers to
	// its fully qualified CLR host name.
	surfaceToHost map[string]string
}

// NewAlias returns an Alias pre-seeded with the handful of surface names
// every binding namespace implicitly carries.
func NewAlias() *Alias {
	a := &Alias{surfaceToHost: make(map[string]string)}
	a.surfaceToHost["object"] = "System.Object"
	return a
}

// Register records that surfaceName resolves to hostName. Alias itself
// has no notion of "any" and Register accepts it like any other name;
// IsAnyRejected is the separate check for that marker (Open Question 2,
// DESIGN.md).
func (a *Alias) Register(surfaceName, hostName string) {
	a.surfaceToHost[surfaceName] = hostName
}

// Resolve returns the host name for a surface alias, or false if
// unknown.
func (a *Alias) Resolve(surfaceName string) (string, bool) {
	host, ok := a.surfaceToHost[surfaceName]
	return host, ok
}

// IsAnyRejected reports whether surfaceName is the literal "any" marker,
// which manifests must never use in place of "object" (Open Question 2).
func IsAnyRejected(surfaceName string) bool {
	return surfaceName == "any"
}

// Classify determines whether specifier is a local relative/absolute
// import, a CLR import (recognized by convention only — PascalCase
// namespace-looking specifiers with no leading dot/slash; the Alias
// catalog is not consulted), or a module-binding import (a bare
// package-style specifier that is neither).
func Classify(specifier string) Classification {
	if strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") {
		return ClassLocal
	}
	if looksLikeCLRNamespace(specifier) {
		return ClassCLR
	}
	return ClassModuleBinding
}

func looksLikeCLRNamespace(specifier string) bool {
	parts := strings.Split(specifier, ".")
	for _, p := range parts {
		if p == "" || !isUpperInitial(p) {
			return false
		}
	}
	return len(parts) > 0
}

func isUpperInitial(s string) bool {
	c := s[0]
	return c >= 'A' && c <= 'Z'
}

// CanonicalizeCase resolves a resolved path to its on-disk canonical
// case as reported by the actualCase callback, returning the canonical path
// and whether a case mismatch was detected (triggers TSN1003).
func CanonicalizeCase(resolvedPath string, actualCase func(string) (string, bool)) (canonical string, mismatch bool) {
	actual, ok := actualCase(resolvedPath)
	if !ok {
		return resolvedPath, false
	}
	clean := filepath.Clean(resolvedPath)
	cleanActual := filepath.Clean(actual)
	if clean == cleanActual {
		return cleanActual, false
	}
	if strings.EqualFold(clean, cleanActual) {
		return cleanActual, true
	}
	return cleanActual, false
}
