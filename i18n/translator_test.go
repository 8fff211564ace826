package i18n_test

import (
	"testing"

	"github.com/reoring/skema/i18n"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := i18n.T("invalid_type", nil); msg != "invalid type" {
		t.Fatalf("expected english message, got %q", msg)
	}

	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	if msg := i18n.T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}
	if msg := i18n.T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code fallback, got %q", msg)
	}
}

func TestSetLanguage_UnknownFallsBackToEnglish(t *testing.T) {
	i18n.SetLanguage("fr")
	defer i18n.SetLanguage("en")
	if msg := i18n.T("required", nil); msg != "required property missing" {
		t.Fatalf("expected english message, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	i18n.SetTranslator(upper{})
	defer i18n.SetTranslator(nil)
	if msg := i18n.T("nan", nil); msg != "X:nan" {
		t.Fatalf("expected custom translator, got %q", msg)
	}
}
