// Package manifest loads bindings.json CLR-binding manifests (§6) in any
// of the three recognized schemas and normalizes them into a single
// shape the binding registry indexes. Grounded on the teacher's
// internal/manifest/manifest.go JSON-loading-and-validating style
// (encoding/json, deterministic sort before use), rehomed from
// "validate an example manifest" to "load a bindings manifest."
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Kind identifies which of the three bindings.json schemas a document
// matched.
type Kind int

const (
	KindSimple Kind = iota
	KindFull
	KindSignatureExtractor
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindFull:
		return "full"
	case KindSignatureExtractor:
		return "signature-extractor"
	default:
		return "unknown"
	}
}

// simpleDoc is the `{ bindings: { identifier: {...} } }` schema.
type simpleDoc struct {
	Bindings map[string]struct {
		Assembly string `json:"assembly"`
		Type     string `json:"type"`
		Member   string `json:"member"`
	} `json:"bindings"`
}

// fullDoc is the `{ namespaces: [...] }` schema.
type fullDoc struct {
	Namespaces []struct {
		Alias string `json:"alias"`
		Types []struct {
			Alias   string   `json:"alias"`
			Kind    string   `json:"kind"`
			Members []string `json:"members"`
		} `json:"types"`
	} `json:"namespaces"`
}

// extractorDoc is the signature-extractor-generated schema.
type extractorDoc struct {
	Namespace string `json:"namespace"`
	Types     []struct {
		ClrName    string   `json:"clrName"`
		Kind       string   `json:"kind"`
		Properties []string `json:"properties"`
		Fields     []string `json:"fields"`
		Methods    []struct {
			ClrName               string `json:"clrName"`
			NormalizedSignature   string `json:"normalizedSignature"`
			ParameterCount        int    `json:"parameterCount"`
			ParameterModifiers    []string `json:"parameterModifiers"`
			IsExtensionMethod     bool   `json:"isExtensionMethod"`
			DeclaringClrType      string `json:"declaringClrType"`
			DeclaringAssemblyName string `json:"declaringAssemblyName"`
		} `json:"methods"`
	} `json:"types"`
	Exports []string `json:"exports,omitempty"`
}

// Binding is one normalized global binding (from the Simple schema, or a
// flattened export of the other two).
type Binding struct {
	Identifier string
	Assembly   string
	Type       string
	Member     string
}

// Method is one normalized method entry, ready to feed
// binding.ParseSignature and index into the registry.
type Method struct {
	Namespace             string
	DeclaringType         string
	DeclaringAssembly     string
	ClrName               string
	NormalizedSignature   string
	IsExtensionMethod     bool
}

// TypeEntry is one normalized type entry (class/struct/interface) the
// manifest catalogued, independent of schema.
type TypeEntry struct {
	Namespace  string
	ClrName    string
	Kind       string
	Properties []string
	Fields     []string
	Methods    []Method
}

// Manifest is the schema-independent normalized result of loading a
// bindings.json file.
type Manifest struct {
	SourceKind Kind
	Bindings   []Binding
	Types      []TypeEntry
}

// Load reads and normalizes a bindings.json file at path, detecting
// which of the three schemas it matches. Detection order: Simple (has
// "bindings"), Signature-extractor (has "namespace" + "types[].methods"),
// Full (has "namespaces").
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse normalizes raw bindings.json bytes without touching the
// filesystem, so tests can exercise schema detection directly.
func Parse(data []byte) (*Manifest, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("manifest is not a JSON object: %w", err)
	}

	if _, ok := probe["bindings"]; ok {
		return parseSimple(data)
	}
	if _, hasNS := probe["namespace"]; hasNS {
		if _, hasTypes := probe["types"]; hasTypes {
			return parseExtractor(data)
		}
	}
	if _, ok := probe["namespaces"]; ok {
		return parseFull(data)
	}
	return nil, fmt.Errorf("manifest matches none of the recognized schemas (simple/full/signature-extractor)")
}

func parseSimple(data []byte) (*Manifest, error) {
	var doc simpleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing simple manifest: %w", err)
	}
	m := &Manifest{SourceKind: KindSimple}
	for id, b := range doc.Bindings {
		m.Bindings = append(m.Bindings, Binding{Identifier: id, Assembly: b.Assembly, Type: b.Type, Member: b.Member})
	}
	sort.Slice(m.Bindings, func(i, j int) bool { return m.Bindings[i].Identifier < m.Bindings[j].Identifier })
	return m, nil
}

func parseFull(data []byte) (*Manifest, error) {
	var doc fullDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing full manifest: %w", err)
	}
	m := &Manifest{SourceKind: KindFull}
	for _, ns := range doc.Namespaces {
		for _, ty := range ns.Types {
			entry := TypeEntry{Namespace: ns.Alias, ClrName: ty.Alias, Kind: ty.Kind}
			for _, member := range ty.Members {
				entry.Properties = append(entry.Properties, member)
			}
			m.Types = append(m.Types, entry)
		}
	}
	sort.Slice(m.Types, func(i, j int) bool {
		if m.Types[i].Namespace != m.Types[j].Namespace {
			return m.Types[i].Namespace < m.Types[j].Namespace
		}
		return m.Types[i].ClrName < m.Types[j].ClrName
	})
	return m, nil
}

func parseExtractor(data []byte) (*Manifest, error) {
	var doc extractorDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing signature-extractor manifest: %w", err)
	}
	m := &Manifest{SourceKind: KindSignatureExtractor}
	for _, ty := range doc.Types {
		entry := TypeEntry{
			Namespace:  doc.Namespace,
			ClrName:    ty.ClrName,
			Kind:       ty.Kind,
			Properties: ty.Properties,
			Fields:     ty.Fields,
		}
		for _, meth := range ty.Methods {
			entry.Methods = append(entry.Methods, Method{
				Namespace:           doc.Namespace,
				DeclaringType:       meth.DeclaringClrType,
				DeclaringAssembly:   meth.DeclaringAssemblyName,
				ClrName:             meth.ClrName,
				NormalizedSignature: meth.NormalizedSignature,
				IsExtensionMethod:   meth.IsExtensionMethod,
			})
		}
		m.Types = append(m.Types, entry)
	}
	for _, id := range doc.Exports {
		m.Bindings = append(m.Bindings, Binding{Identifier: id})
	}
	sort.Slice(m.Types, func(i, j int) bool { return m.Types[i].ClrName < m.Types[j].ClrName })
	sort.Slice(m.Bindings, func(i, j int) bool { return m.Bindings[i].Identifier < m.Bindings[j].Identifier })
	return m, nil
}

// ExtensionMethods returns every method flagged IsExtensionMethod across
// all types in the manifest, sorted by (namespace, clrName, declaring
// type) for deterministic indexing order.
func (m *Manifest) ExtensionMethods() []Method {
	var out []Method
	for _, ty := range m.Types {
		for _, meth := range ty.Methods {
			if meth.IsExtensionMethod {
				out = append(out, meth)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		if out[i].ClrName != out[j].ClrName {
			return out[i].ClrName < out[j].ClrName
		}
		return out[i].DeclaringType < out[j].DeclaringType
	})
	return out
}
