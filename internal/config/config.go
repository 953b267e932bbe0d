package config

import (
	"os"
	"strconv"
)

// Config holds all taxon configuration.
type Config struct {
	CatalogPath string
	RulesPath   string
	Engine      EngineConfig
	Embedder    EmbedderConfig
	LogLevel    string
}

// EngineConfig holds the classification tunables. Reasonable values vary
// by catalog size and descriptor quality, so these are configuration
// rather than code.
type EngineConfig struct {
	Scorer             string // "lexical", "semantic", "ensemble"
	CandidateCap       int    // max candidates handed to a scorer
	RetrievalThreshold int    // min candidates before the next tier engages
	LexicalCutoff      int    // [0,100]; lexical scores below are discarded
	SemanticFloor      float64
	HighConfidence     int // [0,100]; results above are cached
	QueryCacheSize     int // LRU size for query-embedding memoization
}

// EmbedderConfig holds paths for the ONNX embedding model. Only consulted
// when the semantic scorer is enabled.
type EmbedderConfig struct {
	ModelPath   string
	LibraryPath string
	MaxTokens   int
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() Config {
	return Config{
		CatalogPath: getenv("TAXON_CATALOG_PATH", "catalog.json"),
		RulesPath:   os.Getenv("TAXON_RULES_PATH"),
		Engine: EngineConfig{
			Scorer:             getenv("TAXON_SCORER", "lexical"),
			CandidateCap:       getenvInt("TAXON_CANDIDATE_CAP", 250),
			RetrievalThreshold: getenvInt("TAXON_RETRIEVAL_THRESHOLD", 20),
			LexicalCutoff:      getenvInt("TAXON_LEXICAL_CUTOFF", 35),
			SemanticFloor:      getenvFloat("TAXON_SEMANTIC_FLOOR", 0.30),
			HighConfidence:     getenvInt("TAXON_HIGH_CONFIDENCE", 80),
			QueryCacheSize:     getenvInt("TAXON_QUERY_CACHE_SIZE", 256),
		},
		Embedder: EmbedderConfig{
			ModelPath:   getenv("TAXON_MODEL_PATH", "models/model.onnx"),
			LibraryPath: os.Getenv("TAXON_ONNX_LIBRARY"),
			MaxTokens:   getenvInt("TAXON_MAX_TOKENS", 128),
		},
		LogLevel: getenv("TAXON_LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
