// Package engine composes the catalog store, lexical index, candidate
// retriever, similarity scorers, and result cache into the classification
// entry point.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/crimson-sun/taxon/internal/engine/cache"
	"github.com/crimson-sun/taxon/internal/engine/catalog"
	"github.com/crimson-sun/taxon/internal/engine/index"
	"github.com/crimson-sun/taxon/internal/engine/normalize"
	"github.com/crimson-sun/taxon/internal/engine/retrieve"
	"github.com/crimson-sun/taxon/internal/engine/scorer"
	"github.com/crimson-sun/taxon/internal/model"
)

// MaxLevel is the deepest hierarchy level a caller may request.
const MaxLevel = 4

// Engine owns the classification state explicitly: the immutable store
// and indices built at initialization, the scorers, and the one mutable
// shared structure, the result cache. Multiple independently configured
// engines can coexist.
type Engine struct {
	store          *catalog.Store
	idx            *index.Index
	norm           *normalize.Normalizer
	retriever      *retrieve.Retriever
	scorers        []scorer.Scorer
	results        *cache.Results
	highConfidence int
}

// Stats reports engine state sizes.
type Stats struct {
	EntryCount int `json:"entry_count"`
	CacheSize  int `json:"cache_size"`
	IndexSize  int `json:"index_size"`
}

// New assembles an engine. At least one scorer is required; with more
// than one, every classification runs all of them and keeps the
// higher-confidence result.
func New(store *catalog.Store, idx *index.Index, norm *normalize.Normalizer, retriever *retrieve.Retriever, scorers []scorer.Scorer, results *cache.Results, highConfidence int) (*Engine, error) {
	if store == nil || store.Len() == 0 {
		return nil, fmt.Errorf("engine: empty catalog store")
	}
	if len(scorers) == 0 {
		return nil, fmt.Errorf("engine: at least one scorer is required")
	}
	return &Engine{
		store:          store,
		idx:            idx,
		norm:           norm,
		retriever:      retriever,
		scorers:        scorers,
		results:        results,
		highConfidence: highConfidence,
	}, nil
}

// Classify finds the best taxonomy entry for the descriptor, clamped to
// maxLevel. All failures are returned as data; Classify never panics and
// has no error return.
func (e *Engine) Classify(d model.Descriptor, maxLevel int) model.Result {
	d = d.Normalize()
	if len(d) == 0 {
		return model.ErrorResult("empty descriptor")
	}
	if maxLevel < 1 || maxLevel > MaxLevel {
		maxLevel = MaxLevel
	}

	key := d.CacheKey()
	if key != "" {
		if code, ok := e.results.Get(key); ok {
			// A cached code deeper than the requested level is skipped,
			// not served: the caller may have lowered maxLevel since it
			// was stored.
			if model.LevelOf(code) <= maxLevel {
				res := model.Result{
					Code:       code,
					Confidence: 100,
					Source:     model.SourceCache,
				}
				if entry, found := e.store.ByCode(code); found {
					res.Title = entry.Title
				}
				return res
			}
		}
	}

	candidates := e.retriever.Retrieve(d, maxLevel)
	if len(candidates) == 0 {
		return model.NoMatchResult()
	}

	query := e.norm.SearchString(d)
	if query == "" {
		return model.ErrorResult("no usable attributes")
	}

	matches, source := e.scoreAll(query, candidates)
	if len(matches) == 0 {
		return model.NoMatchResult()
	}

	best := e.adjustToLevel(e.store.Get(matches[0].ID), maxLevel)

	res := model.Result{
		Code:       best.Code,
		Title:      best.Title,
		Confidence: matches[0].Score,
		Source:     source,
	}
	for _, alt := range matches[1:] {
		res.Alternatives = append(res.Alternatives,
			fmt.Sprintf("%s (%d%%)", e.store.Get(alt.ID).Code, alt.Score))
	}

	if key != "" && res.Confidence > e.highConfidence {
		e.results.Put(key, res.Code)
	}

	slog.Debug("classified",
		"query", query, "code", res.Code,
		"confidence", res.Confidence, "source", res.Source,
		"candidates", len(candidates))
	return res
}

// scoreAll runs every configured scorer and keeps the best-scoring
// outcome. Ties go to the earlier scorer, which keeps results
// deterministic in ensemble mode.
func (e *Engine) scoreAll(query string, candidates []int) ([]scorer.Match, model.Source) {
	var (
		best   []scorer.Match
		source model.Source
	)
	for _, sc := range e.scorers {
		matches := sc.Score(query, candidates)
		if len(matches) == 0 {
			continue
		}
		if best == nil || matches[0].Score > best[0].Score {
			best = matches
			source = sc.Source()
		}
	}
	return best, source
}

// adjustToLevel clamps an entry to the requested hierarchy depth by
// walking up to the ancestor at maxLevel. A gap in the hierarchy returns
// the original entry unchanged; a missing ancestor never fails the
// classification.
func (e *Engine) adjustToLevel(entry model.Entry, maxLevel int) model.Entry {
	if entry.Level <= maxLevel {
		return entry
	}
	if anc, ok := e.store.Ancestor(entry.Code, maxLevel); ok {
		return anc
	}
	return entry
}

// ClearCache wipes the result cache.
func (e *Engine) ClearCache() {
	e.results.Clear()
}

// Stats reports current engine sizes.
func (e *Engine) Stats() Stats {
	return Stats{
		EntryCount: e.store.Len(),
		CacheSize:  e.results.Len(),
		IndexSize:  e.idx.Size(),
	}
}
