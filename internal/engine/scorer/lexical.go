package scorer

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/crimson-sun/taxon/internal/model"
)

// Lexical scores candidates by token-set ratio between the search string
// and each candidate's normalized index string.
type Lexical struct {
	entries    []model.Entry
	normalized []string
	antonyms   []antonymPair
	cutoff     int
}

// NewLexical creates the lexical strategy. normalized must be the index's
// per-entry comparison strings; cutoff discards weak matches (0-100).
func NewLexical(entries []model.Entry, normalized []string, antonyms []string, cutoff int) *Lexical {
	return &Lexical{
		entries:    entries,
		normalized: normalized,
		antonyms:   parseAntonyms(antonyms),
		cutoff:     cutoff,
	}
}

// Source identifies results produced by this strategy.
func (l *Lexical) Source() model.Source {
	return model.SourceLexical
}

// Score ranks the candidates. Antonym conflicts halve a candidate's score
// before the cutoff applies, so a directionally wrong match cannot ride a
// high token overlap past it.
func (l *Lexical) Score(query string, candidates []int) []Match {
	var matches []Match
	for _, id := range candidates {
		s := fuzzy.TokenSetRatio(query, l.normalized[id])
		if antonymConflict(query, strings.ToLower(l.entries[id].Title), l.antonyms) {
			s /= 2
		}
		if s < l.cutoff {
			continue
		}
		matches = append(matches, Match{ID: id, Score: s})
	}
	return rank(matches)
}
