package domain

import "testing"

func TestParseCategory_KnownNames(t *testing.T) {
	for _, c := range Categories {
		got, ok := ParseCategory(c.DirName())
		if !ok {
			t.Errorf("Expected %s to parse", c.DirName())
		}
		if got != c {
			t.Errorf("Expected %v, got %v", c, got)
		}
	}
}

func TestParseCategory_CaseSensitive(t *testing.T) {
	if _, ok := ParseCategory("documents"); ok {
		t.Errorf("Expected lowercase name not to match")
	}
	if _, ok := ParseCategory("DOCUMENTS"); ok {
		t.Errorf("Expected uppercase name not to match")
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	if _, ok := ParseCategory("Projects"); ok {
		t.Errorf("Expected unknown name not to match")
	}
	if _, ok := ParseCategory(""); ok {
		t.Errorf("Expected empty name not to match")
	}
}

func TestCategories_CoversAllEight(t *testing.T) {
	if len(Categories) != 8 {
		t.Fatalf("Expected 8 categories, got %d", len(Categories))
	}
	seen := make(map[string]bool)
	for _, c := range Categories {
		name := c.DirName()
		if seen[name] {
			t.Errorf("Duplicate category name %s", name)
		}
		seen[name] = true
	}
}
