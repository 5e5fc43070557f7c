package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/medrag/storer"
)

type closer struct {
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return errors.New("ignored")
}

func TestProvidersNewStorer(t *testing.T) {
	s, err := Providers{Store: "memory"}.NewStorer(t.Context())
	require.NoError(t, err)
	require.NoError(t, s.CreateCollection(t.Context(), "medical", 3, storer.Cosine))

	_, err = Providers{Store: "astra"}.NewStorer(t.Context())
	require.Error(t, err)
}

func TestProvidersNewEmbedder(t *testing.T) {
	e, err := Providers{Embedder: "openai", OpenaiApiKey: "sk-test", Dimension: 768}.NewEmbedder(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, e)

	_, err = Providers{Embedder: "cohere"}.NewEmbedder(t.Context())
	require.Error(t, err)
}

func TestGenerationNewGenerator(t *testing.T) {
	for _, name := range []string{"openai", "anthropic"} {
		g, err := Generation{Generator: name}.NewGenerator(t.Context(), Providers{})
		require.NoError(t, err, name)
		assert.NotNil(t, g)
	}

	_, err := Generation{Generator: "mistral"}.NewGenerator(t.Context(), Providers{})
	require.Error(t, err)
}

func TestProvidersParseMetric(t *testing.T) {
	m, err := Providers{Metric: "dot_product"}.ParseMetric()
	require.NoError(t, err)
	assert.Equal(t, storer.DotProduct, m)

	_, err = Providers{Metric: "manhattan"}.ParseMetric()
	require.Error(t, err)
}

func TestClose(t *testing.T) {
	c := &closer{}
	Close(c, "not a closer", nil)
	assert.True(t, c.closed)
}

func TestProvidersNewBoltStorer(t *testing.T) {
	s, err := Providers{Store: "bolt", StoreLocation: filepath.Join(t.TempDir(), "medrag.db")}.NewStorer(t.Context())
	require.NoError(t, err)
	defer Close(s)

	require.NoError(t, s.CreateCollection(t.Context(), "medical", 3, storer.Cosine))
}
