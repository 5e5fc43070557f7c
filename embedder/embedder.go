package embedder

import (
	"context"
	"errors"
)

var ErrEmbedding = errors.New("embedding failed")

// Embedder maps text to a vector of fixed dimension.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
