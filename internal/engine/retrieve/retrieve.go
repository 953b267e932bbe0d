// Package retrieve narrows the catalog to a bounded candidate set before
// scoring. Tiers of decreasing precision engage only while the candidate
// set stays below the configured threshold; the cap keeps per-call scoring
// cost predictable.
package retrieve

import (
	"strings"

	"github.com/crimson-sun/taxon/internal/engine/index"
	"github.com/crimson-sun/taxon/internal/engine/normalize"
	"github.com/crimson-sun/taxon/internal/model"
)

// Retriever selects scoring candidates from the lexical index.
type Retriever struct {
	idx       *index.Index
	norm      *normalize.Normalizer
	entries   []model.Entry
	catchAll  []string
	cap       int
	threshold int
}

// New creates a Retriever. cap bounds the candidate set size; threshold is
// the minimum set size below which the next fallback tier engages.
func New(idx *index.Index, norm *normalize.Normalizer, entries []model.Entry, catchAll []string, cap, threshold int) *Retriever {
	return &Retriever{
		idx:       idx,
		norm:      norm,
		entries:   entries,
		catchAll:  catchAll,
		cap:       cap,
		threshold: threshold,
	}
}

// Retrieve returns candidate entry ids for the descriptor, filtered to
// level <= maxLevel and capped. An empty result is a legitimate
// no-candidates outcome, not an error.
func (r *Retriever) Retrieve(d model.Descriptor, maxLevel int) []int {
	set := newCandidateSet(r.cap)

	// Tier 1: the category's mapped keyword bucket.
	if cat, ok := d[model.AttrCategory]; ok {
		if kw, mapped := r.norm.CategoryKeyword(cat); mapped {
			r.addAll(set, r.idx.Keyword[kw], maxLevel)
		}
	}

	// Tier 2: the catch-all category buckets.
	if set.len() < r.threshold {
		for _, cat := range r.catchAll {
			r.addAll(set, r.idx.Category[cat], maxLevel)
		}
	}

	// Tier 3: keyword buckets for the first significant Family words.
	if set.len() < r.threshold {
		for _, word := range familyWords(d[model.AttrFamily]) {
			r.addAll(set, r.idx.Keyword[word], maxLevel)
		}
	}

	// Tier 4, last resort: level-filtered scan of the full catalog.
	if set.len() < r.threshold {
		for i := range r.entries {
			if set.full() {
				break
			}
			if r.entries[i].Level <= maxLevel {
				set.add(i)
			}
		}
	}

	return set.ids
}

func (r *Retriever) addAll(set *candidateSet, ids []int, maxLevel int) {
	for _, id := range ids {
		if set.full() {
			return
		}
		if r.entries[id].Level <= maxLevel {
			set.add(id)
		}
	}
}

// familyWords tokenizes a Family value into up to 3 significant words
// (length > 3).
func familyWords(family string) []string {
	if family == "" {
		return nil
	}
	var out []string
	for _, w := range strings.Fields(strings.ToLower(family)) {
		if len(w) <= 3 {
			continue
		}
		out = append(out, w)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// candidateSet is an insertion-ordered id set with a hard size cap.
type candidateSet struct {
	ids  []int
	seen map[int]struct{}
	cap  int
}

func newCandidateSet(cap int) *candidateSet {
	return &candidateSet{seen: make(map[int]struct{}), cap: cap}
}

func (s *candidateSet) add(id int) {
	if _, dup := s.seen[id]; dup {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *candidateSet) len() int   { return len(s.ids) }
func (s *candidateSet) full() bool { return len(s.ids) >= s.cap }
