// Command taxon classifies element descriptors read as NDJSON from stdin
// against a taxonomy catalog, writing NDJSON results to stdout.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/crimson-sun/taxon/internal/config"
	"github.com/crimson-sun/taxon/internal/engine/embedder"
	"github.com/crimson-sun/taxon/internal/logging"
	"github.com/crimson-sun/taxon/pkg/taxon"
)

func main() {
	// Optional .env overlay; missing files are fine.
	_ = godotenv.Load()

	maxLevel := flag.Int("max-level", taxon.DefaultMaxLevel, "deepest hierarchy level to return (1-4)")
	flag.Parse()

	cfg := config.Load()
	logging.Setup(true, logging.ParseLevel(cfg.LogLevel))

	catalogData, err := os.ReadFile(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("failed to read catalog: %v", err)
	}

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatalf("failed to load rules: %v", err)
	}

	opts := []taxon.Option{
		taxon.WithRules(rules),
		taxon.WithEngineConfig(cfg.Engine),
	}

	if cfg.Engine.Scorer == taxon.ScorerSemantic || cfg.Engine.Scorer == taxon.ScorerEnsemble {
		emb, err := embedder.NewONNX(cfg.Embedder.ModelPath, cfg.Embedder.LibraryPath, cfg.Embedder.MaxTokens)
		if err != nil {
			log.Fatalf("failed to create embedder: %v", err)
		}
		opts = append(opts, taxon.WithEmbedder(emb))
	}

	t, err := taxon.New(catalogData, opts...)
	if err != nil {
		log.Fatalf("failed to initialize engine: %v", err)
	}
	defer t.Close()

	stats := t.Stats()
	slog.Info("engine ready",
		"entries", stats.EntryCount, "keywords", stats.IndexSize,
		"scorer", cfg.Engine.Scorer)

	enc := json.NewEncoder(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var d taxon.Descriptor
		if err := json.Unmarshal(scanner.Bytes(), &d); err != nil {
			slog.Warn("skipping malformed descriptor", "line", line, "err", err)
			continue
		}

		res := t.Classify(d, *maxLevel)
		if err := enc.Encode(result{
			Code:         res.Code,
			Title:        res.Title,
			Confidence:   res.Confidence,
			Source:       res.Source,
			Alternatives: res.Alternatives,
		}); err != nil {
			log.Fatalf("failed to write result: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	stats = t.Stats()
	fmt.Fprintf(os.Stderr, "taxon: classified %d descriptors, cache size %d\n", line, stats.CacheSize)
}

// result is the NDJSON output row.
type result struct {
	Code         string   `json:"code"`
	Title        string   `json:"title,omitempty"`
	Confidence   int      `json:"confidence"`
	Source       string   `json:"source"`
	Alternatives []string `json:"alternatives,omitempty"`
}
