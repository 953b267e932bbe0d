// Package catalog loads and stores the hierarchical taxonomy reference
// set. The store is built once at engine initialization and read-only
// thereafter.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/crimson-sun/taxon/internal/config"
	"github.com/crimson-sun/taxon/internal/model"
)

// document is the catalog wire format: entries keyed by an internal
// identifier under a single top-level "items" collection.
type document struct {
	Items map[string]rawItem `json:"items"`
}

type rawItem struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Parent   string `json:"parent"`
}

// Store holds the loaded taxonomy entries with lookup by code.
type Store struct {
	entries []model.Entry
	byCode  map[string]int
}

// Load parses a catalog document. Entries missing code or title are
// silently skipped; a source without the "items" collection, or one that
// yields zero entries, is a load failure.
func Load(source []byte, rules config.Rules) (*Store, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("catalog: empty source")
	}

	var doc document
	if err := json.Unmarshal(source, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if doc.Items == nil {
		return nil, fmt.Errorf("catalog: source has no items collection")
	}

	stops := make(map[string]struct{}, len(rules.StopWords))
	for _, w := range rules.StopWords {
		stops[strings.ToLower(w)] = struct{}{}
	}

	s := &Store{byCode: make(map[string]int, len(doc.Items))}
	skipped := 0
	for _, item := range doc.Items {
		if item.Code == "" || item.Title == "" {
			skipped++
			continue
		}

		level := item.Level
		if level == 0 {
			level = model.LevelOf(item.Code)
		}
		parent := item.Parent
		if parent == "" && level > 1 {
			parent = model.ParentOf(item.Code)
		}
		category := item.Category
		if category == "" {
			category = deriveCategory(item.Code, rules.PrefixRules)
		}

		s.entries = append(s.entries, model.Entry{
			Code:     item.Code,
			Title:    item.Title,
			Level:    level,
			Parent:   parent,
			Category: category,
			Keywords: ExtractKeywords(item.Title, stops),
		})
	}

	if len(s.entries) == 0 {
		return nil, fmt.Errorf("catalog: no usable entries in source")
	}

	// The items collection is a JSON object, so parse order is undefined.
	// Sort by code to keep tie-breaking and scoring deterministic.
	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].Code < s.entries[j].Code
	})

	for i, e := range s.entries {
		s.byCode[e.Code] = i
	}

	slog.Debug("catalog loaded", "entries", len(s.entries), "skipped", skipped)
	return s, nil
}

// Entries returns the loaded entries in catalog order. Callers must not
// mutate the returned slice.
func (s *Store) Entries() []model.Entry {
	return s.entries
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Get returns the entry at index i.
func (s *Store) Get(i int) model.Entry {
	return s.entries[i]
}

// ByCode looks up an entry by its taxonomy code.
func (s *Store) ByCode(code string) (model.Entry, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return model.Entry{}, false
	}
	return s.entries[i], true
}

// Ancestor truncates code to the first maxLevel segments and looks the
// result up. Returns false when the hierarchy has a gap at that level.
func (s *Store) Ancestor(code string, maxLevel int) (model.Entry, bool) {
	return s.ByCode(model.TruncateCode(code, maxLevel))
}

// deriveCategory maps a code prefix through the ordered prefix rules,
// falling back to "Other".
func deriveCategory(code string, rules []config.PrefixRule) string {
	for _, r := range rules {
		if strings.HasPrefix(code, r.Prefix) {
			return r.Category
		}
	}
	return "Other"
}

// keywordSeparators are the punctuation characters a title is split on.
const keywordSeparators = " -,/()&.;"

// ExtractKeywords tokenizes a title into lower-cased keywords, dropping
// tokens of length <= 2, stop words, and duplicates. Order follows first
// appearance in the title.
func ExtractKeywords(title string, stops map[string]struct{}) []string {
	if title == "" {
		return nil
	}

	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return strings.ContainsRune(keywordSeparators, r)
	})

	seen := make(map[string]struct{}, len(fields))
	var out []string
	for _, w := range fields {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stops[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
