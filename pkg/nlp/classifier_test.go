package nlp

import (
	"RomiioBot/pkg/catalog"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Hello!!", "hello"},
		{"  HeLLo,   World  ", "hello world"},
		{"Café Déjà-vu", "cafe deja vu"},
		{"15/01/2027", "15 01 2027"},
		{"1hr 💖", "1hr"},
		{"book\tnow\n please", "book now please"},
		{"नमस्ते", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsGreeting(t *testing.T) {
	c := New()

	for _, tok := range greetingTokens {
		if !c.IsGreeting(Normalize(tok)) {
			t.Errorf("IsGreeting(%q) = false, want true", tok)
		}
		if !c.IsGreeting(Normalize("well " + tok + " there")) {
			t.Errorf("IsGreeting with embedded %q = false, want true", tok)
		}
	}

	negatives := []string{"", "history", "shield", "youth", "supper", "menus", "starting", "this is it", "1hr"}
	for _, s := range negatives {
		if c.IsGreeting(Normalize(s)) {
			t.Errorf("IsGreeting(%q) = true, want false", s)
		}
	}
}

func TestDetectCommand(t *testing.T) {
	c := New()
	tests := []struct {
		in     string
		want   Intent
		wantOK bool
	}{
		{"show me the menu", IntentMenu, true},
		{"need help", IntentMenu, true},
		{"contact", IntentContact, true},
		{"your phone number", IntentContact, true},
		{"tell me about you", IntentAbout, true},
		{"information please", IntentAbout, true},
		{"i want to book", IntentBook, true},
		{"make an appointment", IntentBook, true},
		{"help me book", IntentMenu, true},
		{"contact info", IntentContact, true},
		{"random words", IntentNone, false},
	}

	for _, tt := range tests {
		got, ok := c.DetectCommand(Normalize(tt.in))
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("DetectCommand(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDetectCategory(t *testing.T) {
	c := New()
	tests := []struct {
		in     string
		want   catalog.Category
		wantOK bool
	}{
		{"1", catalog.CategoryRegular, true},
		{"regular please", catalog.CategoryRegular, true},
		{"2", catalog.CategoryEvent, true},
		{"events", catalog.CategoryEvent, true},
		{"3", catalog.CategorySpecial, true},
		{"specialized", catalog.CategorySpecial, true},
		{"4", catalog.CategoryAdditional, true},
		{"extra", catalog.CategoryAdditional, true},
		{"text", catalog.CategoryAdditional, true},
		{"call me", catalog.CategoryAdditional, true},
		{"1 and 2", catalog.CategoryRegular, true},
		{"bike", "", false},
		{"movie", "", false},
		{"travel", "", false},
		{"weekend", "", false},
		{"1hr", "", false},
		{"10", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := c.DetectCategory(Normalize(tt.in))
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("DetectCategory(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMapPackageKey(t *testing.T) {
	c := New()
	tests := []struct {
		in       string
		category catalog.Category
		want     catalog.PackageKey
	}{
		{"1hr", catalog.CategoryRegular, catalog.Package1Hr},
		{"1 hour", catalog.CategoryRegular, catalog.Package1Hr},
		{"1", catalog.CategoryEvent, catalog.Package1Hr},
		{"3 hours", catalog.CategoryRegular, catalog.Package3Hr},
		{"6hr", catalog.CategoryEvent, catalog.Package6Hr},
		{"12", catalog.CategoryRegular, catalog.PackageKey("12")},
		{"bike ride", catalog.CategorySpecial, catalog.PackageBike},
		{"cinema", catalog.CategorySpecial, catalog.PackageMovie},
		{"a trip", catalog.CategorySpecial, catalog.PackageTravel},
		{"sunday", catalog.CategorySpecial, catalog.PackageWeekend},
		{"text8", catalog.CategoryAdditional, catalog.PackageText8},
		{"text 8", catalog.CategoryAdditional, catalog.PackageText8},
		{"8 hr text", catalog.CategoryAdditional, catalog.PackageText8},
		{"text", catalog.CategoryAdditional, catalog.PackageText},
		{"chat", catalog.CategoryAdditional, catalog.PackageText},
		{"late call", catalog.CategoryAdditional, catalog.PackageLateCall},
		{"night call", catalog.CategoryAdditional, catalog.PackageLateCall},
		{"latecall", catalog.CategoryAdditional, catalog.PackageLateCall},
		{"voice", catalog.CategoryAdditional, catalog.PackageCall},
		{"bike", catalog.CategoryRegular, catalog.PackageKey("bike")},
		{"1hr", catalog.CategorySpecial, catalog.PackageKey("1hr")},
	}

	for _, tt := range tests {
		if got := c.MapPackageKey(Normalize(tt.in), tt.category); got != tt.want {
			t.Errorf("MapPackageKey(%q, %s) = %q, want %q", tt.in, tt.category, got, tt.want)
		}
	}
}

func TestHasWordAndPaymentMention(t *testing.T) {
	c := New()

	if !c.HasWord("payment done", "done") {
		t.Error("HasWord should find a standalone token")
	}
	if c.HasWord("undone", "done") || c.HasWord("doneness", "done") {
		t.Error("HasWord must not match inside a token")
	}
	if c.HasWord("", "") {
		t.Error("HasWord with empty word must be false")
	}

	for _, s := range []string{"paid", "sent via upi", "scanned qr", "payment sent", "done"} {
		if !c.IsPaymentMention(Normalize(s)) {
			t.Errorf("IsPaymentMention(%q) = false, want true", s)
		}
	}
	if c.IsPaymentMention("hello there") {
		t.Error("IsPaymentMention matched unrelated text")
	}
}
