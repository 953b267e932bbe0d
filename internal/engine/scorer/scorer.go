// Package scorer holds the interchangeable similarity strategies. Both
// strategies rank a bounded candidate set against the canonical search
// string and report integer scores in [0,100].
package scorer

import (
	"sort"
	"strings"

	"github.com/crimson-sun/taxon/internal/model"
)

// Match pairs a candidate entry id with its similarity score.
type Match struct {
	ID    int
	Score int // [0,100]
}

// Scorer ranks candidates against a query string. Implementations return
// matches best-first, already filtered by their own floor or cutoff, and
// at most three deep (the winner plus two alternates). An empty slice
// means no match.
type Scorer interface {
	Source() model.Source
	Score(query string, candidates []int) []Match
}

// antonymPair is one opposite-meaning word pair.
type antonymPair struct {
	a, b string
}

// parseAntonyms converts "left|right" rule strings into pairs, skipping
// malformed entries.
func parseAntonyms(rules []string) []antonymPair {
	var pairs []antonymPair
	for _, r := range rules {
		parts := strings.SplitN(r, "|", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		pairs = append(pairs, antonymPair{
			a: strings.ToLower(parts[0]),
			b: strings.ToLower(parts[1]),
		})
	}
	return pairs
}

// antonymConflict reports whether the two texts sit on opposite sides of
// any antonym pair, e.g. an "exterior wall" query against an "interior
// wall" title. Both texts must already be lower-cased.
func antonymConflict(text1, text2 string, pairs []antonymPair) bool {
	for _, p := range pairs {
		if (strings.Contains(text1, p.a) && strings.Contains(text2, p.b)) ||
			(strings.Contains(text1, p.b) && strings.Contains(text2, p.a)) {
			return true
		}
	}
	return false
}

// rank sorts matches best-first with catalog order breaking ties, and
// truncates to the winner plus two alternates.
func rank(matches []Match) []Match {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if len(matches) > 3 {
		matches = matches[:3]
	}
	return matches
}
