// Package embedder defines the opaque text-to-vector provider used by the
// semantic scorer, plus an ONNX-backed implementation.
package embedder

// Embedder produces fixed-length vector embeddings from text. It is
// assumed deterministic for a given input and model.
type Embedder interface {
	Embed(text string) ([]float32, error)
	EmbedBatch(texts []string) ([][]float32, error)
	Close() error
}
