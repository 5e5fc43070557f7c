package storer

import "context"

// Storer is a vector store made of named collections. Implementations are
// safe for concurrent Insert and Search.
type Storer interface {
	// CreateCollection is idempotent. An existing collection is not an error.
	CreateCollection(ctx context.Context, name string, dimension int, metric Metric) error
	// Insert appends rec and returns its generated id.
	Insert(ctx context.Context, collection string, rec Record) (string, error)
	// Search returns up to limit records nearest to vector, nearest first.
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]Record, error)
}
