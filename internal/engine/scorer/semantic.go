package scorer

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/taxon/internal/engine/embedder"
	"github.com/crimson-sun/taxon/internal/model"
)

// Semantic scores candidates by cosine similarity between the query
// embedding and precomputed candidate embeddings. Candidate vectors are
// built once at construction; query embeddings are memoized in a bounded
// LRU since descriptors repeat heavily within a batch.
type Semantic struct {
	emb      embedder.Embedder
	entries  []model.Entry
	vectors  [][]float32
	antonyms []antonymPair
	floor    float64
	queries  *lru.Cache[string, []float32]
}

// NewSemantic precomputes an embedding for every entry's "{title}
// {keywords}" text, in parallel across entries with a join before return.
// Per-entry embedding failures degrade that entry to a zero vector; they
// do not abort construction.
func NewSemantic(emb embedder.Embedder, entries []model.Entry, texts []string, antonyms []string, floor float64, queryCacheSize int) (*Semantic, error) {
	if emb == nil {
		return nil, fmt.Errorf("scorer: semantic strategy requires an embedder")
	}
	if queryCacheSize <= 0 {
		queryCacheSize = 256
	}
	queries, err := lru.New[string, []float32](queryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("scorer: query cache: %w", err)
	}

	s := &Semantic{
		emb:      emb,
		entries:  entries,
		vectors:  make([][]float32, len(entries)),
		antonyms: parseAntonyms(antonyms),
		floor:    floor,
		queries:  queries,
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range entries {
		i := i
		g.Go(func() error {
			vec, err := emb.Embed(texts[i])
			if err != nil {
				slog.Warn("embedding failed, using zero vector",
					"code", entries[i].Code, "err", err)
				return nil
			}
			s.vectors[i] = vec
			return nil
		})
	}
	_ = g.Wait()

	return s, nil
}

// Source identifies results produced by this strategy.
func (s *Semantic) Source() model.Source {
	return model.SourceSemantic
}

// Score ranks the candidates. Similarity is scaled to [0,100]; an antonym
// conflict halves it first, and anything under the absolute floor is
// discarded regardless of relative ranking.
func (s *Semantic) Score(query string, candidates []int) []Match {
	qv := s.queryVector(query)

	var matches []Match
	for _, id := range candidates {
		cv := s.vectors[id]
		if cv == nil {
			continue
		}
		sim := cosine(qv, cv)
		if antonymConflict(query, strings.ToLower(s.entries[id].Title), s.antonyms) {
			sim *= 0.5
		}
		if sim < s.floor {
			continue
		}
		matches = append(matches, Match{ID: id, Score: int(sim * 100)})
	}
	return rank(matches)
}

// queryVector embeds the query text, memoizing results. Provider failure
// degrades to a zero vector so the call lands on NoMatch instead of
// failing the batch.
func (s *Semantic) queryVector(query string) []float32 {
	if vec, ok := s.queries.Get(query); ok {
		return vec
	}
	vec, err := s.emb.Embed(query)
	if err != nil {
		slog.Warn("query embedding failed, using zero vector", "err", err)
		vec = nil
	}
	s.queries.Add(query, vec)
	return vec
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
