// Package irbuild constructs per-file IrModules from the typed front end
// (C8, spec §4.4): import classification, declaration lowering,
// destructuring lowering, numeric-literal-intent derivation, arrow
// parameter inference, and narrowing metadata. Grounded on the teacher's
// internal/elaborate/elaborate.go (per-file elaboration entry point),
// elaborate/expressions.go, elaborate/patterns.go, and
// elaborate/dictionaries.go.
package irbuild

import (
	"strconv"
	"strings"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

// NumericLiteralError reports a malformed numeric separator, per spec
// §4.4 ("no leading, trailing, doubled, or post-prefix underscore").
type NumericLiteralError struct {
	Lexeme string
	Reason string
}

func (e *NumericLiteralError) Error() string {
	return "malformed numeric literal " + strconv.Quote(e.Lexeme) + ": " + e.Reason
}

// DeriveNumericIntent computes value and intent from a numeric lexeme,
// per spec I-3: intent is derived from the lexeme, not the value.
// Integer lexemes that fit int32's range get IntentInt32; everything
// else (including any lexeme with a decimal point or exponent) gets
// IntentDouble.
func DeriveNumericIntent(lexeme string) (value float64, intent ir.NumericIntent, err error) {
	if err := validateSeparators(lexeme); err != nil {
		return 0, ir.IntentNone, err
	}
	clean := strings.ReplaceAll(lexeme, "_", "")

	isFloatSyntax := strings.ContainsAny(clean, ".eE") && !strings.HasPrefix(clean, "0x") && !strings.HasPrefix(clean, "0X")

	if !isFloatSyntax {
		if iv, convErr := strconv.ParseInt(clean, 0, 64); convErr == nil {
			if iv >= -2147483648 && iv <= 2147483647 {
				return float64(iv), ir.IntentInt32, nil
			}
			return float64(iv), ir.IntentDouble, nil
		}
	}

	fv, convErr := strconv.ParseFloat(clean, 64)
	if convErr != nil {
		return 0, ir.IntentNone, &NumericLiteralError{Lexeme: lexeme, Reason: "not a valid numeric literal"}
	}
	return fv, ir.IntentDouble, nil
}

// validateSeparators enforces spec §4.4's numeric-separator rule: a `_`
// is rejected if leading, trailing, doubled, or immediately following a
// base prefix (0x/0b/0o).
func validateSeparators(lexeme string) error {
	if !strings.Contains(lexeme, "_") {
		return nil
	}
	if strings.HasPrefix(lexeme, "_") || strings.HasSuffix(lexeme, "_") {
		return &NumericLiteralError{Lexeme: lexeme, Reason: "leading or trailing underscore"}
	}
	if strings.Contains(lexeme, "__") {
		return &NumericLiteralError{Lexeme: lexeme, Reason: "doubled underscore"}
	}
	for _, prefix := range []string{"0x", "0X", "0b", "0B", "0o", "0O"} {
		if strings.HasPrefix(lexeme, prefix) && strings.HasPrefix(lexeme[len(prefix):], "_") {
			return &NumericLiteralError{Lexeme: lexeme, Reason: "underscore immediately after base prefix"}
		}
	}
	return nil
}

// BuildLiteral constructs an ir.Literal for a numeric lexeme, attaching
// NumericIntent per DeriveNumericIntent.
func BuildLiteral(lexeme string) (*ir.Literal, error) {
	value, intent, err := DeriveNumericIntent(lexeme)
	if err != nil {
		return nil, err
	}
	return &ir.Literal{Kind: ir.LitNumber, Value: value, Lexeme: lexeme, Intent: intent}, nil
}
