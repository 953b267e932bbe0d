package taxon

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/taxon/internal/engine"
	"github.com/crimson-sun/taxon/internal/engine/cache"
	"github.com/crimson-sun/taxon/internal/engine/catalog"
	"github.com/crimson-sun/taxon/internal/engine/index"
	"github.com/crimson-sun/taxon/internal/engine/normalize"
	"github.com/crimson-sun/taxon/internal/engine/retrieve"
	"github.com/crimson-sun/taxon/internal/engine/scorer"
	"github.com/crimson-sun/taxon/internal/model"
)

// Taxon is a taxonomy classification engine. It matches free-text entity
// descriptors against a hierarchical reference catalog using lexical
// and/or semantic similarity. Safe for concurrent use once constructed.
type Taxon struct {
	engine   *engine.Engine
	embedder Embedder
}

// Descriptor maps attribute names (Category, Family, Type, plus optional
// secondary names) to free-text values describing the entity to classify.
type Descriptor map[string]string

// Result is the outcome of one classification call.
type Result struct {
	Code         string   // resolved taxonomy code, or "NC - ..." payload
	Title        string   // title of the resolved entry, when known
	Confidence   int      // [0,100]
	Source       string   // Cache, LexicalMatch, SemanticMatch, NoMatch, Error
	Alternatives []string // up to 2 runner-ups, "code (score%)", second-best first
}

// Stats reports engine state sizes.
type Stats struct {
	EntryCount int
	CacheSize  int
	IndexSize  int
}

// New builds an engine from a raw catalog document. This is the expensive
// step: the catalog is parsed, indices are built, and (for the semantic
// strategy) every entry is pre-embedded. Create once, reuse across calls.
// A catalog that is missing, structurally invalid, or empty is an error;
// the caller gets no half-initialized engine.
func New(catalogSource []byte, opts ...Option) (*Taxon, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	store, err := catalog.Load(catalogSource, o.rules)
	if err != nil {
		return nil, fmt.Errorf("taxon: %w", err)
	}

	idx := index.Build(store.Entries())
	norm := normalize.New(o.rules)
	retriever := retrieve.New(idx, norm, store.Entries(),
		o.rules.CatchAllCategories, o.candidateCap, o.retrievalThreshold)

	scorers, err := buildScorers(o, store, idx, norm)
	if err != nil {
		return nil, fmt.Errorf("taxon: %w", err)
	}

	eng, err := engine.New(store, idx, norm, retriever, scorers,
		cache.New(), o.highConfidence)
	if err != nil {
		return nil, fmt.Errorf("taxon: %w", err)
	}

	return &Taxon{engine: eng, embedder: o.embedder}, nil
}

// buildScorers assembles the strategy set for the configured mode.
func buildScorers(o options, store *catalog.Store, idx *index.Index, norm *normalize.Normalizer) ([]scorer.Scorer, error) {
	lexical := scorer.NewLexical(store.Entries(), idx.Normalized,
		o.rules.Antonyms, o.lexicalCutoff)

	switch o.scorer {
	case ScorerLexical:
		return []scorer.Scorer{lexical}, nil
	case ScorerSemantic, ScorerEnsemble:
		texts := make([]string, len(idx.Normalized))
		for i, s := range idx.Normalized {
			texts[i] = norm.Clean(s)
		}
		semantic, err := scorer.NewSemantic(o.embedder, store.Entries(), texts,
			o.rules.Antonyms, o.semanticFloor, o.queryCacheSize)
		if err != nil {
			return nil, err
		}
		if o.scorer == ScorerSemantic {
			return []scorer.Scorer{semantic}, nil
		}
		return []scorer.Scorer{lexical, semantic}, nil
	default:
		return nil, fmt.Errorf("unknown scorer mode %q", o.scorer)
	}
}

// Classify finds the best-matching catalog entry for the descriptor.
// maxLevel clamps the returned code's hierarchy depth to [1,4]; pass
// DefaultMaxLevel when in doubt. Failures are returned as data in the
// Result, never as an error.
func (t *Taxon) Classify(d Descriptor, maxLevel int) Result {
	return fromModel(t.engine.Classify(model.Descriptor(d), maxLevel))
}

// DefaultMaxLevel requests the full hierarchy depth.
const DefaultMaxLevel = engine.MaxLevel

// ClassifyBatch classifies many descriptors with bounded concurrency.
// Results are positionally aligned with the input.
func (t *Taxon) ClassifyBatch(ds []Descriptor, maxLevel int) []Result {
	results := make([]Result, len(ds))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range ds {
		i := i
		g.Go(func() error {
			results[i] = t.Classify(ds[i], maxLevel)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// ClearCache wipes the result cache. Catalog and indices are unaffected.
func (t *Taxon) ClearCache() {
	t.engine.ClearCache()
}

// Stats reports current engine sizes.
func (t *Taxon) Stats() Stats {
	s := t.engine.Stats()
	return Stats{EntryCount: s.EntryCount, CacheSize: s.CacheSize, IndexSize: s.IndexSize}
}

// Close releases the embedding provider, when one was supplied.
func (t *Taxon) Close() error {
	if t.embedder != nil {
		return t.embedder.Close()
	}
	return nil
}

func fromModel(r model.Result) Result {
	return Result{
		Code:         r.Code,
		Title:        r.Title,
		Confidence:   r.Confidence,
		Source:       string(r.Source),
		Alternatives: r.Alternatives,
	}
}
