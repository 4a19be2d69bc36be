package errors

import (
	"encoding/json"
	"errors"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/schema"
)

// Report is the canonical structured error type threaded through the
// compiler's Go-level error returns (as opposed to Collector diagnostics,
// which accumulate without aborting a pass). Report is for the handful of
// call sites that must fail a pass outright — manifest load, module
// discovery I/O — and still want the same TSNxxxx/JSON shape as a
// Collector diagnostic.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *ir.Pos        `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// ReportError wraps a Report as an error, so structured reports survive
// errors.As() unwrapping across call-site boundaries.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if one is present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error. Call sites return WrapReport(r)
// to preserve structure through ordinary Go error-returning functions.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to JSON, sorted-key deterministic when compact
// is false, matching the Collector's diagnostic JSON shape (P-9).
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}

	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewReport builds a Report for the given code, deriving Phase from the
// code registry the same way Encoded does.
func NewReport(code, message string, span *ir.Pos) *Report {
	return &Report{
		Schema:  schema.ErrorV1,
		Code:    code,
		Phase:   Phase(code),
		Message: message,
		Span:    span,
		Data:    map[string]any{},
	}
}

// NewGeneric creates a Report for an internal-invariant failure that has
// no more specific TSNxxxx code assigned to it.
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  schema.ErrorV1,
		Code:    TSN6001,
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}
