package ingestion

import (
	"context"
	"math"
	"time"

	"github.com/cloudwego/eino-ext/components/embedding/ollama"
	"github.com/cloudwego/eino/components/embedding"

	"lexstyle/vars"
)

// NewEmbedder builds the ollama embedder used for chunk splitting and the
// clause vector index, wrapped so NaN/Inf dimensions never reach Milvus.
func NewEmbedder(ctx context.Context) (embedding.Embedder, error) {
	inner, err := ollama.NewEmbedder(ctx, &ollama.EmbeddingConfig{
		BaseURL: vars.OLLAMA_PATH,
		Model:   vars.GetEnv("EMBED_MODEL", vars.NOMIC),
		Timeout: 60 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &sanitizingEmbedder{inner: inner}, nil
}

// sanitizingEmbedder replaces NaN/Inf values with 0; some embedding backends
// emit them on degenerate input and Milvus rejects the whole batch.
type sanitizingEmbedder struct {
	inner embedding.Embedder
}

func (e *sanitizingEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	vectors, err := e.inner.EmbedStrings(ctx, texts, opts...)
	if err != nil {
		return nil, err
	}
	for _, vec := range vectors {
		for j, val := range vec {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				vec[j] = 0.0
			}
		}
	}
	return vectors, nil
}
