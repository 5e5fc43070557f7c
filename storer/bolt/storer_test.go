package bolt

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/medrag/storer"
)

func open(t *testing.T, path string) storer.Storer {
	t.Helper()
	s := NewStorer(storer.WithLocation(path))
	t.Cleanup(func() { _ = s.(io.Closer).Close() })
	return s
}

func TestRecordsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medrag.db")

	s := NewStorer(storer.WithLocation(path))
	require.NoError(t, s.CreateCollection(t.Context(), "docs", 3, storer.Cosine))
	id, err := s.Insert(t.Context(), "docs", storer.Record{
		Vector:   []float32{1, 0, 0},
		Text:     "influenza",
		Source:   "https://example.org",
		Metadata: map[string]any{"key": "abc"},
	})
	require.NoError(t, err)
	require.NoError(t, s.(io.Closer).Close())

	s = open(t, path)
	require.NoError(t, s.CreateCollection(t.Context(), "docs", 3, storer.Cosine))

	res, err := s.Search(t.Context(), "docs", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, id, res[0].Id)
	assert.Equal(t, "influenza", res[0].Text)
	assert.Equal(t, "https://example.org", res[0].Source)
	assert.Equal(t, "abc", res[0].Metadata["key"])
	assert.False(t, res[0].Timestamp.IsZero())
	assert.InDelta(t, 0, res[0].Distance, 1e-9)
}

func TestSearchNearestFirstWithInsertionOrderTies(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "medrag.db"))
	require.NoError(t, s.CreateCollection(t.Context(), "docs", 2, storer.Euclidean))

	for _, rec := range []storer.Record{
		{Vector: []float32{5, 5}, Text: "far"},
		{Vector: []float32{1, 0}, Text: "tie-first"},
		{Vector: []float32{0, 1}, Text: "tie-second"},
		{Vector: []float32{0, 0}, Text: "exact"},
	} {
		_, err := s.Insert(t.Context(), "docs", rec)
		require.NoError(t, err)
	}

	res, err := s.Search(t.Context(), "docs", []float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, []string{"exact", "tie-first", "tie-second"}, []string{res[0].Text, res[1].Text, res[2].Text})
}

func TestDimensionAndCollectionErrors(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "medrag.db"))
	require.NoError(t, s.CreateCollection(t.Context(), "docs", 3, storer.DotProduct))

	_, err := s.Insert(t.Context(), "docs", storer.Record{Vector: []float32{1, 2}})
	require.ErrorIs(t, err, storer.ErrDimensionMismatch)
	require.ErrorIs(t, err, storer.ErrStore)

	_, err = s.Search(t.Context(), "docs", []float32{1}, 5)
	require.ErrorIs(t, err, storer.ErrDimensionMismatch)

	_, err = s.Search(t.Context(), "missing", []float32{1, 2, 3}, 5)
	require.ErrorIs(t, err, storer.ErrCollectionNotFound)

	_, err = s.Insert(t.Context(), "missing", storer.Record{Vector: []float32{1, 2, 3}})
	require.ErrorIs(t, err, storer.ErrCollectionNotFound)
}

func TestSearchEmptyAndZeroLimit(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "medrag.db"))
	require.NoError(t, s.CreateCollection(t.Context(), "docs", 2, storer.Cosine))

	res, err := s.Search(t.Context(), "docs", []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)

	_, err = s.Insert(t.Context(), "docs", storer.Record{Vector: []float32{1, 0}})
	require.NoError(t, err)

	res, err = s.Search(t.Context(), "docs", []float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestCreateKeepsOriginalConfig(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "medrag.db"))
	require.NoError(t, s.CreateCollection(t.Context(), "docs", 2, storer.Cosine))
	require.NoError(t, s.CreateCollection(t.Context(), "docs", 4, storer.Euclidean))

	_, err := s.Insert(t.Context(), "docs", storer.Record{Vector: []float32{1, 0, 0, 0}})
	require.ErrorIs(t, err, storer.ErrDimensionMismatch)
}
