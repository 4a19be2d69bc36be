// Package errors also provides structured JSON encoding of diagnostics, so
// tooling consuming compiler output can key on `code` rather than parsing
// `message` (spec §7's "Tools consuming the compiler key on the code").
package errors

import (
	"fmt"

	"github.com/tsoniclang/tsonic-sub006/internal/schema"
)

// Fix represents a suggested fix, when one is known.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Encoded is a structured diagnostic in JSON-serializable form. Severity and
// Phase are derived from Code via errors.Phase / the caller's severity
// decision, not duplicated by hand at each call site — this is what keeps
// P-9 (diagnostic determinism) a property of the code table rather than of
// every individual error-construction call site.
type Encoded struct {
	Schema     string      `json:"schema"`
	Code       string      `json:"code"`
	Phase      string      `json:"phase"`
	Severity   string      `json:"severity"`
	Message    string      `json:"message"`
	Fix        Fix         `json:"fix"`
	Context    interface{} `json:"context,omitempty"`
	SourceSpan string      `json:"source_span,omitempty"`
	Meta       interface{} `json:"meta,omitempty"`
}

// New builds an Encoded diagnostic for the given code, looking up its phase
// from the CodeRegistry so callers can't drift the two apart.
func New(code string, severity string, msg string, ctx interface{}) Encoded {
	return Encoded{
		Schema:   schema.ErrorV1,
		Code:     code,
		Phase:    Phase(code),
		Severity: severity,
		Message:  msg,
		Fix:      Fix{Suggestion: "", Confidence: 0.0},
		Context:  ctx,
	}
}

// WithFix adds a fix suggestion to the diagnostic.
func (e Encoded) WithFix(suggestion string, confidence float64) Encoded {
	e.Fix = Fix{Suggestion: suggestion, Confidence: confidence}
	return e
}

// WithSourceSpan adds a formatted source location.
func (e Encoded) WithSourceSpan(span string) Encoded {
	e.SourceSpan = span
	return e
}

// WithMeta attaches arbitrary structured metadata.
func (e Encoded) WithMeta(meta interface{}) Encoded {
	e.Meta = meta
	return e
}

// ToJSON converts the diagnostic to deterministic JSON (sorted keys), so two
// runs over identical input produce byte-identical diagnostic JSON (P-8, P-9).
func (e Encoded) ToJSON() ([]byte, error) {
	data, err := schema.MarshalDeterministic(e)
	if err != nil {
		fallback := Encoded{
			Schema:  schema.ErrorV1,
			Message: "encoding failed",
			Meta:    map[string]string{"original_error": err.Error()},
		}
		return schema.MarshalDeterministic(fallback)
	}
	return schema.FormatJSON(data)
}

// SafeEncodeError encodes any Go error as a best-effort diagnostic, never
// panicking, for use at process boundaries (e.g. a file read failure before
// any Collector exists).
func SafeEncodeError(err error, code string) []byte {
	if err == nil {
		return nil
	}
	encoded := New(code, "error", err.Error(), nil)
	data, _ := encoded.ToJSON()
	return data
}

// FormatSourceSpan formats a file position as "file:line:col".
func FormatSourceSpan(file string, line, col int) string {
	return fmt.Sprintf("%s:%d:%d", file, line, col)
}
