// Package normalize turns an element descriptor into the canonical search
// string shared by both matching strategies.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/taxon/internal/config"
	"github.com/crimson-sun/taxon/internal/model"
)

// Normalizer builds search strings from descriptors using the configured
// category mappings and abbreviation expansions.
type Normalizer struct {
	categoryKeywords map[string]string
	abbreviations    map[string]string
	genericSuffixes  map[string]struct{}
}

// New creates a Normalizer from the rules knowledge base.
func New(rules config.Rules) *Normalizer {
	suffixes := make(map[string]struct{}, len(rules.GenericSuffixes))
	for _, s := range rules.GenericSuffixes {
		suffixes[strings.ToLower(s)] = struct{}{}
	}
	return &Normalizer{
		categoryKeywords: rules.CategoryKeywords,
		abbreviations:    rules.Abbreviations,
		genericSuffixes:  suffixes,
	}
}

// stripMarks builds the diacritic-stripping transformer. Transformers
// carry state, so each call gets a fresh chain; Clean must stay safe for
// concurrent use.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// CategoryKeyword maps a host category name to the single catalog keyword
// used for retrieval. Returns false when no mapping exists.
func (n *Normalizer) CategoryKeyword(category string) (string, bool) {
	kw, ok := n.categoryKeywords[strings.ToLower(strings.TrimSpace(category))]
	return kw, ok
}

// SearchString builds the canonical search string for a descriptor:
// Category first (mapped through the category table when possible, else
// the raw value minus generic suffix words), then Family, Type, and the
// secondary attributes in their fixed order. Returns "" when the
// descriptor has no usable attributes.
func (n *Normalizer) SearchString(d model.Descriptor) string {
	var parts []string

	if cat, ok := d[model.AttrCategory]; ok {
		if kw, mapped := n.CategoryKeyword(cat); mapped {
			parts = append(parts, kw)
		} else if stripped := n.stripGenericSuffixes(cat); stripped != "" {
			parts = append(parts, stripped)
		}
	}
	if v, ok := d[model.AttrFamily]; ok {
		parts = append(parts, v)
	}
	if v, ok := d[model.AttrType]; ok {
		parts = append(parts, v)
	}
	for _, name := range model.SecondaryAttrs {
		if v, ok := d[name]; ok && v != "" {
			parts = append(parts, v)
		}
	}

	return n.Clean(strings.Join(parts, " "))
}

// Clean canonicalizes free text for matching: lower-case, abbreviation
// expansion, diacritic stripping, non-word characters replaced with
// spaces, whitespace collapsed.
func (n *Normalizer) Clean(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	if folded, _, err := transform.String(stripMarks(), text); err == nil {
		text = folded
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		if exp, ok := n.abbreviations[w]; ok {
			words[i] = exp
		}
	}
	return strings.Join(words, " ")
}

// stripGenericSuffixes removes words like "equipment" or "services" from
// an unmapped category name.
func (n *Normalizer) stripGenericSuffixes(category string) string {
	words := strings.Fields(strings.ToLower(category))
	kept := words[:0]
	for _, w := range words {
		if _, generic := n.genericSuffixes[w]; generic {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
