// Package index builds the inverted indices the candidate retriever and
// lexical scorer work from. The index is built once, in a single parallel
// pass over the catalog, and is immutable afterwards.
package index

import (
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/taxon/internal/model"
)

// Index holds the per-entry normalized comparison strings and the
// category and keyword inverted indices. Entry ids are positions in the
// catalog's entry slice.
type Index struct {
	// Normalized[i] is the lower-cased "{title} {joined keywords}" string
	// for entry i, the lexical scorer's comparison target.
	Normalized []string
	Category   map[string][]int
	Keyword    map[string][]int
}

// shard is one worker's partial result; merged after the join.
type shard struct {
	category map[string][]int
	keyword  map[string][]int
}

// Build scans every entry once. The per-entry work is independent, so it
// is split across NumCPU workers with a join before the merged index is
// returned.
func Build(entries []model.Entry) *Index {
	n := len(entries)
	idx := &Index{
		Normalized: make([]string, n),
		Category:   make(map[string][]int),
		Keyword:    make(map[string][]int),
	}
	if n == 0 {
		return idx
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	nshards := (n + chunk - 1) / chunk
	shards := make([]shard, nshards)
	var g errgroup.Group
	for si := 0; si < nshards; si++ {
		lo := si * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		shards[si] = shard{
			category: make(map[string][]int),
			keyword:  make(map[string][]int),
		}
		s := &shards[si]
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				e := entries[i]
				idx.Normalized[i] = normalizedString(e)
				s.category[e.Category] = append(s.category[e.Category], i)
				for _, kw := range e.Keywords {
					s.keyword[kw] = append(s.keyword[kw], i)
				}
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail; Wait is the join barrier

	// Merge shards in entry order so every posting list stays sorted by
	// catalog position.
	for i := range shards {
		for cat, ids := range shards[i].category {
			idx.Category[cat] = append(idx.Category[cat], ids...)
		}
		for kw, ids := range shards[i].keyword {
			idx.Keyword[kw] = append(idx.Keyword[kw], ids...)
		}
	}
	return idx
}

// Size returns the number of distinct keyword postings, the figure
// reported by engine statistics.
func (x *Index) Size() int {
	return len(x.Keyword)
}

func normalizedString(e model.Entry) string {
	if len(e.Keywords) == 0 {
		return strings.ToLower(e.Title)
	}
	return strings.ToLower(e.Title) + " " + strings.Join(e.Keywords, " ")
}
