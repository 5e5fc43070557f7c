package retriever

import "context"

// Retriever returns the texts most relevant to a query, nearest first.
type Retriever interface {
	Retrieve(ctx context.Context, query string, opts ...RetrieveOption) ([]string, error)
}
