package service

import (
	"strings"
	"testing"
)

func TestGenerateSlugFoldsTurkishLetters(t *testing.T) {
	slug := generateSlug("Çilek Şekeri")
	if !strings.HasPrefix(slug, "cilek-sekeri-") {
		t.Fatalf("expected prefix cilek-sekeri-, got %s", slug)
	}
	suffix := strings.TrimPrefix(slug, "cilek-sekeri-")
	if len(suffix) != 8 {
		t.Fatalf("expected 8-char suffix, got %q", suffix)
	}
}

func TestGenerateSlugCollapsesSeparators(t *testing.T) {
	slug := generateSlug("  Akıllı -- Saat__Pro  ")
	if !strings.HasPrefix(slug, "akilli-saat-pro-") {
		t.Fatalf("unexpected slug: %s", slug)
	}
}

func TestGenerateSlugDropsNonASCII(t *testing.T) {
	slug := generateSlug("Kahve %50 İndirim!")
	if !strings.HasPrefix(slug, "kahve-50-indirim-") {
		t.Fatalf("unexpected slug: %s", slug)
	}
}

func TestGenerateSlugEmptyBase(t *testing.T) {
	slug := generateSlug("!!! ???")
	if len(slug) != 8 {
		t.Fatalf("expected bare 8-char suffix for empty base, got %q", slug)
	}
	if strings.Contains(slug, "-") {
		t.Fatalf("expected no hyphen in bare suffix, got %q", slug)
	}
}

func TestGenerateSlugUnique(t *testing.T) {
	a := generateSlug("Same Name")
	b := generateSlug("Same Name")
	if a == b {
		t.Fatalf("expected different suffixes, got %s twice", a)
	}
}
