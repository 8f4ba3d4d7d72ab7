package dialog

import (
	"testing"

	"finbot/core/ledger"
)

func TestBundleFor(t *testing.T) {
	for _, tag := range []string{"", "en", "EN", " en "} {
		b, err := BundleFor(tag)
		if err != nil {
			t.Fatalf("BundleFor(%q): %v", tag, err)
		}
		if b.Tag != "en" {
			t.Errorf("BundleFor(%q).Tag = %q, want en", tag, b.Tag)
		}
	}
	for _, tag := range []string{"pt", "pt-br", "PT-BR"} {
		b, err := BundleFor(tag)
		if err != nil {
			t.Fatalf("BundleFor(%q): %v", tag, err)
		}
		if b.Tag != "pt-br" {
			t.Errorf("BundleFor(%q).Tag = %q, want pt-br", tag, b.Tag)
		}
	}
	if _, err := BundleFor("fr"); err == nil {
		t.Error("BundleFor(fr): expected error")
	}
}

func TestIsCancelWord(t *testing.T) {
	b := EnglishBundle()
	for _, w := range []string{"cancel", "Cancel", "CANCELAR", " exit "} {
		if !b.IsCancelWord(w) {
			t.Errorf("IsCancelWord(%q) = false", w)
		}
	}
	for _, w := range []string{"cancellation", "stop", ""} {
		if b.IsCancelWord(w) {
			t.Errorf("IsCancelWord(%q) = true", w)
		}
	}
}

// Display names differ per locale but the stored enum values never do.
func TestPortugueseDisplayNames(t *testing.T) {
	b := PortugueseBundle()
	if got := b.TypeName(ledger.Income); got != "RECEITA" {
		t.Errorf("TypeName(INCOME) = %q", got)
	}
	if got := b.CategoryName(ledger.CatFood); got != "ALIMENTAÇÃO" {
		t.Errorf("CategoryName(FOOD) = %q", got)
	}

	en := EnglishBundle()
	if got := en.CategoryName(ledger.CatGifts); got != "GIFTS AND DONATIONS" {
		t.Errorf("english CategoryName(GIFTS) = %q", got)
	}
	// Unknown values fall through to the raw enum string.
	if got := en.CategoryName(ledger.Category("BOGUS")); got != "BOGUS" {
		t.Errorf("CategoryName fallback = %q", got)
	}
}
