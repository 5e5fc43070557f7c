package vector

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/medrag/embedder"
	"github.com/w-h-a/medrag/retriever"
	"github.com/w-h-a/medrag/storer"
	"github.com/w-h-a/medrag/storer/memory"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

type brokenStorer struct {
	storer.Storer
}

func (brokenStorer) Search(ctx context.Context, collection string, vector []float32, limit int) ([]storer.Record, error) {
	return nil, fmt.Errorf("%w: connection reset", storer.ErrStore)
}

func seeded(t *testing.T, n int) storer.Storer {
	t.Helper()
	s := memory.NewStorer()
	require.NoError(t, s.CreateCollection(t.Context(), "docs", 3, storer.Cosine))
	for i := range n {
		_, err := s.Insert(t.Context(), "docs", storer.Record{
			Vector: []float32{1, float32(i), 0},
			Text:   fmt.Sprintf("chunk-%d", i),
		})
		require.NoError(t, err)
	}
	return s
}

func TestRetrieveNearestFirst(t *testing.T) {
	e := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 2, 0}}}
	r := NewRetriever(
		retriever.WithEmbedder(e),
		retriever.WithStorer(seeded(t, 5)),
		retriever.WithCollection("docs"),
	)

	texts, err := r.Retrieve(t.Context(), "q", retriever.WithRetrieveLimit(2))
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "chunk-2", texts[0])
}

func TestRetrieveDefaultLimit(t *testing.T) {
	e := &fakeEmbedder{}
	r := NewRetriever(
		retriever.WithEmbedder(e),
		retriever.WithStorer(seeded(t, 15)),
		retriever.WithCollection("docs"),
	)

	texts, err := r.Retrieve(t.Context(), "anything")
	require.NoError(t, err)
	assert.Len(t, texts, retriever.DefaultLimit)
}

func TestRetrieveEmptyCollection(t *testing.T) {
	r := NewRetriever(
		retriever.WithEmbedder(&fakeEmbedder{}),
		retriever.WithStorer(seeded(t, 0)),
		retriever.WithCollection("docs"),
	)

	texts, err := r.Retrieve(t.Context(), "q")
	require.NoError(t, err)
	assert.Empty(t, texts)
}

func TestRetrieveSearchFailureDegrades(t *testing.T) {
	r := NewRetriever(
		retriever.WithEmbedder(&fakeEmbedder{}),
		retriever.WithStorer(brokenStorer{}),
		retriever.WithCollection("docs"),
	)

	texts, err := r.Retrieve(t.Context(), "q")
	require.NoError(t, err)
	assert.NotNil(t, texts)
	assert.Empty(t, texts)
}

func TestRetrieveMissingCollectionDegrades(t *testing.T) {
	r := NewRetriever(
		retriever.WithEmbedder(&fakeEmbedder{}),
		retriever.WithStorer(memory.NewStorer()),
		retriever.WithCollection("docs"),
	)

	texts, err := r.Retrieve(t.Context(), "q")
	require.NoError(t, err)
	assert.Empty(t, texts)
}

func TestRetrieveEmbeddingFailurePropagates(t *testing.T) {
	r := NewRetriever(
		retriever.WithEmbedder(&fakeEmbedder{err: fmt.Errorf("%w: quota", embedder.ErrEmbedding)}),
		retriever.WithStorer(seeded(t, 1)),
		retriever.WithCollection("docs"),
	)

	_, err := r.Retrieve(t.Context(), "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, embedder.ErrEmbedding))
}
