package embedder

import (
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv manages global ONNX Runtime initialization (process-wide
// singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// ONNXEmbedder runs a sentence-embedding model that takes a single
// fixed-length "input_ids" tensor and emits one vector per input. The
// tokenization is byte-level: codepoints for letters and digits, 0 for
// whitespace, framed by CLS/SEP markers and padded to maxTokens.
type ONNXEmbedder struct {
	mu        sync.Mutex
	session   *ort.DynamicAdvancedSession
	inputName string
	outName   string
	dim       int64
	maxTokens int
}

const (
	clsToken = 101
	sepToken = 102
	padToken = 0
)

// NewONNX loads the model and creates an inference session. libPath
// optionally points at the ONNX Runtime shared library; when empty the
// library is expected next to the model file.
func NewONNX(modelPath, libPath string, maxTokens int) (*ONNXEmbedder, error) {
	if libPath == "" {
		libPath = filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	}
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("embedder: initialize runtime: %w", err)
	}
	if maxTokens <= 2 {
		maxTokens = 128
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("embedder: read model info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("embedder: model has no inputs or outputs")
	}
	inputName := inputs[0].Name

	// Expect [batch, dim]; the last dimension is the embedding size.
	outDims := outputs[0].Dimensions
	if len(outDims) < 2 {
		return nil, fmt.Errorf("embedder: expected at least 2D output, got %v", outDims)
	}
	dim := outDims[len(outDims)-1]
	if dim <= 0 {
		return nil, fmt.Errorf("embedder: model output dimension is dynamic (%v)", outDims)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("embedder: session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(2)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{outputs[0].Name},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("embedder: create session: %w", err)
	}

	return &ONNXEmbedder{
		session:   session,
		inputName: inputName,
		outName:   outputs[0].Name,
		dim:       dim,
		maxTokens: maxTokens,
	}, nil
}

// Dim returns the embedding dimensionality.
func (e *ONNXEmbedder) Dim() int {
	return int(e.dim)
}

// Embed produces a single embedding vector.
func (e *ONNXEmbedder) Embed(text string) ([]float32, error) {
	vecs, err := e.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch produces embedding vectors for multiple texts in one
// inference call.
func (e *ONNXEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	batch := int64(len(texts))
	seq := int64(e.maxTokens)
	ids := make([]int64, batch*seq)
	for i, t := range texts {
		e.tokenize(t, ids[int64(i)*seq:(int64(i)+1)*seq])
	}

	shape := ort.NewShape(batch, seq)
	tIn, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("embedder: input tensor: %w", err)
	}
	defer tIn.Destroy()

	tOut, err := ort.NewEmptyTensor[float32](ort.NewShape(batch, e.dim))
	if err != nil {
		return nil, fmt.Errorf("embedder: output tensor: %w", err)
	}
	defer tOut.Destroy()

	// Session runs are serialized; the ORT session is not documented as
	// safe for concurrent Run calls with shared output tensors.
	e.mu.Lock()
	err = e.session.Run([]ort.Value{tIn}, []ort.Value{tOut})
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("embedder: inference: %w", err)
	}

	src := tOut.GetData()
	out := make([][]float32, batch)
	for i := int64(0); i < batch; i++ {
		vec := make([]float32, e.dim)
		copy(vec, src[i*e.dim:(i+1)*e.dim])
		out[i] = vec
	}
	return out, nil
}

// tokenize writes the fixed-length id sequence for text into dst:
// CLS, then letter/digit codepoints (whitespace as pad), then SEP,
// truncated or padded to len(dst).
func (e *ONNXEmbedder) tokenize(text string, dst []int64) {
	pos := 0
	dst[pos] = clsToken
	pos++
	for _, r := range text {
		if pos >= len(dst)-1 {
			break
		}
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			dst[pos] = int64(r)
			pos++
		case r == ' ' || r == '\t' || r == '\n':
			dst[pos] = padToken
			pos++
		}
	}
	if pos < len(dst) {
		dst[pos] = sepToken
		pos++
	}
	for ; pos < len(dst); pos++ {
		dst[pos] = padToken
	}
}

// Close releases the ONNX session resources.
func (e *ONNXEmbedder) Close() error {
	if e.session != nil {
		return e.session.Destroy()
	}
	return nil
}
