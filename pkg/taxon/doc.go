// Package taxon provides a taxonomy classification engine that matches
// free-text entity descriptors against a large hierarchical reference
// catalog.
//
// Quick start:
//
//	data, _ := os.ReadFile("catalog.json")
//	t, err := taxon.New(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Close()
//
//	res := t.Classify(taxon.Descriptor{
//	    "Category": "Walls",
//	    "Type":     "Generic - 200mm",
//	}, taxon.DefaultMaxLevel)
//	fmt.Println(res.Code, res.Confidence) // Pr_20_93_58 87
//
// The Taxon instance is safe for concurrent use. Create once, reuse
// across calls; construction parses the catalog and builds the search
// indices.
package taxon
