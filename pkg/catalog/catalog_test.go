package catalog

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		category Category
		key      PackageKey
		want     string
		found    bool
	}{
		{CategoryRegular, Package1Hr, "₹1,499", true},
		{CategoryEvent, Package6Hr, "₹8,999", true},
		{CategorySpecial, PackageMovie, "₹2,999/session", true},
		{CategorySpecial, PackageWeekend, "Price on request", true},
		{CategoryAdditional, PackageText8, "₹699", true},
		{CategoryAdditional, Package1Hr, "", false},
		{CategoryRegular, PackageKey("2hr"), "", false},
		{Category("vip"), Package1Hr, "", false},
	}

	for _, tt := range tests {
		got, ok := Lookup(tt.category, tt.key)
		if ok != tt.found {
			t.Errorf("Lookup(%s, %s) found = %v, want %v", tt.category, tt.key, ok, tt.found)
			continue
		}
		if got.Price != tt.want {
			t.Errorf("Lookup(%s, %s) price = %q, want %q", tt.category, tt.key, got.Price, tt.want)
		}
	}
}

func TestPackagesReturnsCopy(t *testing.T) {
	list := Packages(CategoryRegular)
	list[0].Price = "free"

	got, _ := Lookup(CategoryRegular, Package1Hr)
	if got.Price != "₹1,499" {
		t.Fatalf("catalog mutated through Packages: %q", got.Price)
	}
}

func TestCategoryFlags(t *testing.T) {
	if !IsSpecialized(CategorySpecial) || IsSpecialized(CategoryRegular) {
		t.Error("only the special category uses specialized flows")
	}
	if !SkipsCity(CategoryAdditional) || SkipsCity(CategoryEvent) {
		t.Error("only the additional category skips the city step")
	}
	for _, c := range Categories {
		if !c.Valid() || c.DisplayName() == "" {
			t.Errorf("category %s missing from catalog", c)
		}
	}
}
