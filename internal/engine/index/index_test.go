package index

import (
	"fmt"
	"sort"
	"testing"

	"github.com/crimson-sun/taxon/internal/model"
)

func sampleEntries() []model.Entry {
	return []model.Entry{
		{Code: "Pr_20", Title: "Structural products", Level: 2, Category: "Structural",
			Keywords: []string{"structural", "products"}},
		{Code: "Pr_20_93", Title: "Wall panels", Level: 3, Category: "Structural",
			Keywords: []string{"wall", "panels"}},
		{Code: "Pr_30_59", Title: "Doorsets", Level: 3, Category: "Openings",
			Keywords: []string{"doorsets"}},
	}
}

func TestBuildNormalizedStrings(t *testing.T) {
	idx := Build(sampleEntries())

	want := []string{
		"structural products structural products",
		"wall panels wall panels",
		"doorsets doorsets",
	}
	for i, w := range want {
		if idx.Normalized[i] != w {
			t.Errorf("Normalized[%d] = %q, want %q", i, idx.Normalized[i], w)
		}
	}
}

func TestBuildCategoryIndex(t *testing.T) {
	idx := Build(sampleEntries())

	if got := idx.Category["Structural"]; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("Category[Structural] = %v, want [0 1]", got)
	}
	if got := idx.Category["Openings"]; len(got) != 1 || got[0] != 2 {
		t.Errorf("Category[Openings] = %v, want [2]", got)
	}
}

func TestBuildKeywordIndex(t *testing.T) {
	idx := Build(sampleEntries())

	if got := idx.Keyword["wall"]; len(got) != 1 || got[0] != 1 {
		t.Errorf("Keyword[wall] = %v, want [1]", got)
	}
	if got := idx.Keyword["products"]; len(got) != 1 || got[0] != 0 {
		t.Errorf("Keyword[products] = %v, want [0]", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	idx := Build(nil)
	if len(idx.Normalized) != 0 || len(idx.Category) != 0 || len(idx.Keyword) != 0 {
		t.Error("expected empty index")
	}
	if idx.Size() != 0 {
		t.Errorf("Size() = %d, want 0", idx.Size())
	}
}

// Posting lists must stay sorted by catalog position regardless of how the
// parallel build shards the entries.
func TestBuildPostingsSortedLarge(t *testing.T) {
	var entries []model.Entry
	for i := 0; i < 1000; i++ {
		entries = append(entries, model.Entry{
			Code:     fmt.Sprintf("Pr_%04d", i),
			Title:    "Common widget",
			Level:    2,
			Category: "Products",
			Keywords: []string{"common", "widget"},
		})
	}

	idx := Build(entries)

	ids := idx.Keyword["widget"]
	if len(ids) != 1000 {
		t.Fatalf("Keyword[widget] has %d ids, want 1000", len(ids))
	}
	if !sort.IntsAreSorted(ids) {
		t.Error("posting list not sorted by catalog position")
	}
	if got := idx.Category["Products"]; !sort.IntsAreSorted(got) {
		t.Error("category posting list not sorted by catalog position")
	}
}
