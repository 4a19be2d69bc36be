package irbuild

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/ir"
)

func TestDeriveNumericIntentInt32(t *testing.T) {
	v, intent, err := DeriveNumericIntent("42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent != ir.IntentInt32 || v != 42 {
		t.Errorf("expected (42, Int32), got (%v, %v)", v, intent)
	}
}

func TestDeriveNumericIntentDoubleFromDecimalLexeme(t *testing.T) {
	_, intent, err := DeriveNumericIntent("42.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent != ir.IntentDouble {
		t.Errorf("expected IntentDouble for decimal lexeme even though value is integral, got %v", intent)
	}
}

func TestDeriveNumericIntentOverflowsToDouble(t *testing.T) {
	_, intent, err := DeriveNumericIntent("99999999999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent != ir.IntentDouble {
		t.Errorf("expected out-of-int32-range lexeme to get IntentDouble, got %v", intent)
	}
}

func TestDeriveNumericIntentWithSeparators(t *testing.T) {
	v, intent, err := DeriveNumericIntent("1_000_000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1000000 || intent != ir.IntentInt32 {
		t.Errorf("expected (1000000, Int32), got (%v, %v)", v, intent)
	}
}

func TestDeriveNumericIntentRejectsLeadingUnderscore(t *testing.T) {
	if _, _, err := DeriveNumericIntent("_100"); err == nil {
		t.Error("expected error for leading underscore")
	}
}

func TestDeriveNumericIntentRejectsTrailingUnderscore(t *testing.T) {
	if _, _, err := DeriveNumericIntent("100_"); err == nil {
		t.Error("expected error for trailing underscore")
	}
}

func TestDeriveNumericIntentRejectsDoubledUnderscore(t *testing.T) {
	if _, _, err := DeriveNumericIntent("1__000"); err == nil {
		t.Error("expected error for doubled underscore")
	}
}

func TestDeriveNumericIntentRejectsUnderscoreAfterPrefix(t *testing.T) {
	if _, _, err := DeriveNumericIntent("0x_FF"); err == nil {
		t.Error("expected error for underscore immediately after base prefix")
	}
}

func TestBuildLiteralAttachesIntent(t *testing.T) {
	lit, err := BuildLiteral("3.14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lit.Intent != ir.IntentDouble {
		t.Errorf("expected IntentDouble, got %v", lit.Intent)
	}
	if lit.Lexeme != "3.14" {
		t.Errorf("expected lexeme preserved, got %s", lit.Lexeme)
	}
}
