package taxon

import (
	"github.com/crimson-sun/taxon/internal/config"
	"github.com/crimson-sun/taxon/internal/engine/embedder"
)

// Embedder produces fixed-length vector embeddings from text. Required by
// the semantic and ensemble scorer modes; the engine treats it as an
// opaque deterministic function.
type Embedder = embedder.Embedder

// Scorer modes.
const (
	// ScorerLexical uses token-set-ratio fuzzy matching only. No model
	// files needed. The default.
	ScorerLexical = "lexical"
	// ScorerSemantic uses embedding cosine similarity only.
	ScorerSemantic = "semantic"
	// ScorerEnsemble runs both strategies and keeps the
	// higher-confidence result.
	ScorerEnsemble = "ensemble"
)

type options struct {
	rules              config.Rules
	scorer             string
	embedder           Embedder
	candidateCap       int
	retrievalThreshold int
	lexicalCutoff      int
	semanticFloor      float64
	highConfidence     int
	queryCacheSize     int
}

// Option configures a Taxon instance.
type Option func(*options)

// WithRules replaces the built-in matching knowledge base (category
// mappings, code prefix rules, antonyms, stop words, abbreviations).
func WithRules(r config.Rules) Option {
	return func(o *options) { o.rules = r }
}

// WithScorer selects the matching strategy: ScorerLexical,
// ScorerSemantic, or ScorerEnsemble.
func WithScorer(mode string) Option {
	return func(o *options) { o.scorer = mode }
}

// WithEmbedder supplies the text-to-vector provider for the semantic
// strategy. The Taxon takes ownership and releases it on Close.
func WithEmbedder(e Embedder) Option {
	return func(o *options) { o.embedder = e }
}

// WithCandidateCap bounds the candidate set handed to a scorer per call.
// Default: 250.
func WithCandidateCap(n int) Option {
	return func(o *options) { o.candidateCap = n }
}

// WithRetrievalThreshold sets the candidate count below which the next
// retrieval fallback tier engages. Default: 20.
func WithRetrievalThreshold(n int) Option {
	return func(o *options) { o.retrievalThreshold = n }
}

// WithLexicalCutoff discards lexical matches scoring below n (0-100).
// Default: 35.
func WithLexicalCutoff(n int) Option {
	return func(o *options) { o.lexicalCutoff = n }
}

// WithSemanticFloor discards semantic matches whose cosine similarity is
// below f regardless of relative ranking. Default: 0.30.
func WithSemanticFloor(f float64) Option {
	return func(o *options) { o.semanticFloor = f }
}

// WithHighConfidence sets the confidence above which results enter the
// cache. Default: 80.
func WithHighConfidence(n int) Option {
	return func(o *options) { o.highConfidence = n }
}

// WithQueryCacheSize bounds the semantic scorer's query-embedding memo.
// Default: 256.
func WithQueryCacheSize(n int) Option {
	return func(o *options) { o.queryCacheSize = n }
}

// WithEngineConfig applies a full tunables block, e.g. one loaded from
// the environment by internal/config.
func WithEngineConfig(c config.EngineConfig) Option {
	return func(o *options) {
		o.scorer = c.Scorer
		o.candidateCap = c.CandidateCap
		o.retrievalThreshold = c.RetrievalThreshold
		o.lexicalCutoff = c.LexicalCutoff
		o.semanticFloor = c.SemanticFloor
		o.highConfidence = c.HighConfidence
		o.queryCacheSize = c.QueryCacheSize
	}
}

func defaultOptions() options {
	return options{
		rules:              config.DefaultRules(),
		scorer:             ScorerLexical,
		candidateCap:       250,
		retrievalThreshold: 20,
		lexicalCutoff:      35,
		semanticFloor:      0.30,
		highConfidence:     80,
		queryCacheSize:     256,
	}
}
