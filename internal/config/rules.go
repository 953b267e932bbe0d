package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PrefixRule maps a taxonomy code prefix to a coarse category. Rules are
// ordered; the first matching prefix wins.
type PrefixRule struct {
	Prefix   string `yaml:"prefix"`
	Category string `yaml:"category"`
}

// Rules carries the text-matching knowledge base: how host categories map
// to catalog keywords, which code prefixes belong to which category,
// antonym pairs, stop words, and abbreviation expansions.
type Rules struct {
	// CategoryKeywords maps a host category name (lower-cased) to the
	// single catalog keyword used for candidate retrieval.
	CategoryKeywords map[string]string `yaml:"category_keywords"`
	PrefixRules      []PrefixRule      `yaml:"prefix_rules"`
	// Antonyms lists opposite-meaning word pairs as "left|right" strings.
	Antonyms        []string          `yaml:"antonyms"`
	StopWords       []string          `yaml:"stop_words"`
	Abbreviations   map[string]string `yaml:"abbreviations"`
	GenericSuffixes []string          `yaml:"generic_suffixes"`
	// CatchAllCategories names the category buckets used by the
	// second retrieval tier.
	CatchAllCategories []string `yaml:"catch_all_categories"`
}

// LoadRules reads a rules file, overlaying it on the defaults. An empty
// path returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	r := DefaultRules()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("config: read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("config: parse rules: %w", err)
	}
	return r, nil
}

// DefaultRules returns the built-in knowledge base, tuned for Uniclass
// product tables and common building-model category names.
func DefaultRules() Rules {
	return Rules{
		CategoryKeywords: map[string]string{
			"walls":                  "wall",
			"floors":                 "floor",
			"ceilings":               "ceiling",
			"roofs":                  "roof",
			"doors":                  "door",
			"windows":                "window",
			"stairs":                 "stair",
			"railings":               "railing",
			"columns":                "column",
			"structural columns":     "column",
			"structural framing":     "beam",
			"structural foundations": "foundation",
			"pipes":                  "pipe",
			"ducts":                  "duct",
			"cable trays":            "cable",
			"conduits":               "conduit",
			"lighting fixtures":      "luminaire",
			"plumbing fixtures":      "sanitary",
			"furniture":              "furniture",
			"curtain panels":         "panel",
			"casework":               "cabinet",
		},
		PrefixRules: []PrefixRule{
			{Prefix: "Pr_15", Category: "Preparatory"},
			{Prefix: "Pr_20", Category: "Structural"},
			{Prefix: "Pr_25", Category: "Walls and barriers"},
			{Prefix: "Pr_30", Category: "Openings"},
			{Prefix: "Pr_35", Category: "Coverings"},
			{Prefix: "Pr_40", Category: "Fittings"},
			{Prefix: "Pr_45", Category: "Flora"},
			{Prefix: "Pr_60", Category: "Services"},
			{Prefix: "Pr_65", Category: "Services"},
			{Prefix: "Pr_70", Category: "Services"},
			{Prefix: "Pr_75", Category: "Process"},
			{Prefix: "Pr_80", Category: "Ancillary"},
			{Prefix: "Pr", Category: "Products"},
		},
		Antonyms: []string{
			"interior|exterior", "internal|external", "inside|outside",
			"upper|lower", "top|bottom", "left|right",
			"front|back", "north|south", "east|west",
		},
		StopWords: []string{
			"and", "the", "for", "with", "from", "into",
			"are", "was", "were", "been",
		},
		Abbreviations: map[string]string{
			"ext": "exterior", "int": "interior", "apt": "apartment",
			"rm": "room", "br": "bedroom", "lvl": "level",
			"fl": "floor", "clg": "ceiling", "pkg": "parking",
			"mech": "mechanical", "elec": "electrical", "struct": "structural",
			"vert": "vertical", "horiz": "horizontal", "temp": "temporary",
			"perm": "permanent", "res": "residential", "comm": "commercial",
		},
		GenericSuffixes:    []string{"equipment", "service", "services", "products", "systems"},
		CatchAllCategories: []string{"Products", "Other"},
	}
}
