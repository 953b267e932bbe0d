package taxon

import (
	"fmt"
	"strings"
	"testing"
)

const testCatalog = `{
	"items": {
		"1": {"code": "Pr_20", "title": "Structural and space division products"},
		"2": {"code": "Pr_20_93", "title": "Wall and barrier panel products"},
		"3": {"code": "Pr_20_93_58", "title": "Wall panel products"},
		"4": {"code": "Pr_30_59", "title": "Doorsets"},
		"5": {"code": "Pr_30_59_24", "title": "Door panels"},
		"6": {"code": "Pr_60_60_08", "title": "Boiler plant items"}
	}
}`

// wordEmbedder maps each known word to its own axis; enough structure for
// cosine ranking without a model file.
type wordEmbedder struct {
	axes map[string]int
}

func newWordEmbedder(words ...string) *wordEmbedder {
	axes := make(map[string]int, len(words))
	for i, w := range words {
		axes[w] = i
	}
	return &wordEmbedder{axes: axes}
}

func (e *wordEmbedder) Embed(text string) ([]float32, error) {
	vec := make([]float32, len(e.axes))
	for _, w := range strings.Fields(text) {
		if i, ok := e.axes[w]; ok {
			vec[i] = 1
		}
	}
	return vec, nil
}

func (e *wordEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := e.Embed(t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *wordEmbedder) Close() error { return nil }

func TestNewRejectsBadCatalog(t *testing.T) {
	tests := []struct {
		name   string
		source []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"not json", []byte("not a catalog")},
		{"wrong shape", []byte(`{"entries": []}`)},
		{"no items", []byte(`{"items": {}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.source); err == nil {
				t.Error("New() succeeded, want error")
			}
		})
	}
}

func TestNewRejectsUnknownScorer(t *testing.T) {
	if _, err := New([]byte(testCatalog), WithScorer("magic")); err == nil {
		t.Error("New() succeeded with unknown scorer mode")
	}
}

func TestNewSemanticRequiresEmbedder(t *testing.T) {
	if _, err := New([]byte(testCatalog), WithScorer(ScorerSemantic)); err == nil {
		t.Error("New() succeeded without an embedder in semantic mode")
	}
}

func TestClassifyLexical(t *testing.T) {
	tx, err := New([]byte(testCatalog))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tx.Close()

	res := tx.Classify(Descriptor{
		"Category": "Walls",
		"Type":     "Generic - 200mm",
	}, DefaultMaxLevel)

	if res.Source == "Error" {
		t.Fatalf("unexpected error result: %+v", res)
	}
	if res.Code != "Pr_20_93_58" {
		t.Errorf("code = %q, want Pr_20_93_58", res.Code)
	}
	if res.Title != "Wall panel products" {
		t.Errorf("title = %q, want Wall panel products", res.Title)
	}
	if res.Confidence <= 0 || res.Confidence > 100 {
		t.Errorf("confidence = %d, want (0,100]", res.Confidence)
	}
}

func TestClassifySemantic(t *testing.T) {
	emb := newWordEmbedder("wall", "door", "boiler", "panel", "panels",
		"products", "plant", "items", "barrier", "doorsets",
		"structural", "space", "division")
	tx, err := New([]byte(testCatalog),
		WithScorer(ScorerSemantic),
		WithEmbedder(emb),
		WithSemanticFloor(0.2))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tx.Close()

	res := tx.Classify(Descriptor{"Family": "Boiler plant"}, DefaultMaxLevel)
	if res.Source != "SemanticMatch" {
		t.Fatalf("source = %q, want SemanticMatch (%+v)", res.Source, res)
	}
	if res.Code != "Pr_60_60_08" {
		t.Errorf("code = %q, want Pr_60_60_08", res.Code)
	}
}

func TestClassifyEnsemble(t *testing.T) {
	emb := newWordEmbedder("wall", "door", "boiler", "panel", "products",
		"plant", "items", "barrier", "doorsets")
	tx, err := New([]byte(testCatalog),
		WithScorer(ScorerEnsemble),
		WithEmbedder(emb))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tx.Close()

	res := tx.Classify(Descriptor{
		"Category": "Walls",
		"Type":     "Generic - 200mm",
	}, DefaultMaxLevel)

	if res.Source == "Error" || res.Source == "NoMatch" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.HasPrefix(res.Code, "Pr_20") {
		t.Errorf("code = %q, want a wall-family code", res.Code)
	}
}

func TestClassifyCacheRoundTrip(t *testing.T) {
	tx, err := New([]byte(testCatalog), WithHighConfidence(10))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tx.Close()

	d := Descriptor{"Category": "Walls", "Type": "Generic - 200mm"}

	first := tx.Classify(d, DefaultMaxLevel)
	if first.Source == "Error" || first.Source == "NoMatch" {
		t.Fatalf("first call: %+v", first)
	}
	second := tx.Classify(d, DefaultMaxLevel)
	if second.Source != "Cache" {
		t.Errorf("second call source = %q, want Cache", second.Source)
	}
	if second.Code != first.Code {
		t.Errorf("cache returned %q, first call returned %q", second.Code, first.Code)
	}
	if second.Confidence != 100 {
		t.Errorf("cache hit confidence = %d, want 100", second.Confidence)
	}

	tx.ClearCache()
	if tx.Stats().CacheSize != 0 {
		t.Error("cache not cleared")
	}
	third := tx.Classify(d, DefaultMaxLevel)
	if third.Source == "Cache" {
		t.Error("expected a fresh classification after ClearCache")
	}
}

func TestClassifyMaxLevelClamp(t *testing.T) {
	tx, err := New([]byte(testCatalog))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tx.Close()

	d := Descriptor{"Category": "Walls", "Type": "Generic - 200mm"}
	res := tx.Classify(d, 3)
	if res.Source == "Error" {
		t.Fatalf("unexpected error: %+v", res)
	}
	if got := strings.Count(res.Code, "_") + 1; res.Source != "NoMatch" && got > 3 {
		t.Errorf("maxLevel=3 returned level %d code %q", got, res.Code)
	}

	// Out-of-range values fall back to the full depth.
	for _, lvl := range []int{0, -1, 99} {
		res := tx.Classify(d, lvl)
		if res.Source == "Error" {
			t.Errorf("maxLevel=%d: %+v", lvl, res)
		}
	}
}

func TestClassifyBatch(t *testing.T) {
	tx, err := New([]byte(testCatalog))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tx.Close()

	ds := []Descriptor{
		{"Category": "Walls", "Type": "Generic - 200mm"},
		{},
		{"Category": "Doors", "Type": "Single-Flush"},
	}
	for i := 0; i < 30; i++ {
		ds = append(ds, Descriptor{"Family": fmt.Sprintf("Wall panel %d", i)})
	}

	results := tx.ClassifyBatch(ds, DefaultMaxLevel)
	if len(results) != len(ds) {
		t.Fatalf("got %d results for %d descriptors", len(results), len(ds))
	}
	if results[0].Code != "Pr_20_93_58" {
		t.Errorf("results[0].Code = %q, want Pr_20_93_58", results[0].Code)
	}
	if results[1].Source != "Error" {
		t.Errorf("results[1].Source = %q, want Error for the empty descriptor", results[1].Source)
	}
	if results[2].Source == "Error" {
		t.Errorf("results[2] = %+v", results[2])
	}
}

func TestClassifyBatchEmpty(t *testing.T) {
	tx, err := New([]byte(testCatalog))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tx.Close()

	if got := tx.ClassifyBatch(nil, DefaultMaxLevel); len(got) != 0 {
		t.Errorf("ClassifyBatch(nil) = %v, want empty", got)
	}
}

func TestStats(t *testing.T) {
	tx, err := New([]byte(testCatalog))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tx.Close()

	s := tx.Stats()
	if s.EntryCount != 6 {
		t.Errorf("EntryCount = %d, want 6", s.EntryCount)
	}
	if s.IndexSize == 0 {
		t.Error("IndexSize = 0, want > 0")
	}
}

func TestCloseWithoutEmbedder(t *testing.T) {
	tx, err := New([]byte(testCatalog))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := tx.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
