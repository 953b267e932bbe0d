package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()

	if kw := r.CategoryKeywords["walls"]; kw != "wall" {
		t.Errorf("CategoryKeywords[walls] = %q, want %q", kw, "wall")
	}
	if len(r.PrefixRules) == 0 {
		t.Fatal("expected default prefix rules")
	}
	// The bare "Pr" catch-all must come after the specific prefixes or it
	// would shadow them.
	last := r.PrefixRules[len(r.PrefixRules)-1]
	if last.Prefix != "Pr" {
		t.Errorf("last prefix rule = %q, want bare %q", last.Prefix, "Pr")
	}
	if len(r.Antonyms) == 0 || len(r.StopWords) == 0 {
		t.Error("expected default antonyms and stop words")
	}
}

func TestLoadRulesEmptyPath(t *testing.T) {
	r, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules(\"\") error: %v", err)
	}
	if len(r.CategoryKeywords) == 0 {
		t.Error("expected defaults for empty path")
	}
}

func TestLoadRulesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := []byte("category_keywords:\n  walls: partition\nantonyms:\n  - \"wet|dry\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error: %v", err)
	}
	if kw := r.CategoryKeywords["walls"]; kw != "partition" {
		t.Errorf("overlay CategoryKeywords[walls] = %q, want %q", kw, "partition")
	}
	if len(r.Antonyms) != 1 || r.Antonyms[0] != "wet|dry" {
		t.Errorf("overlay Antonyms = %v, want [wet|dry]", r.Antonyms)
	}
	// Sections absent from the file keep their defaults.
	if len(r.StopWords) == 0 {
		t.Error("expected default stop words to survive overlay")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing rules file")
	}
}

func TestLoadRulesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("category_keywords: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Error("expected error for malformed rules file")
	}
}
