package vector

import (
	"context"

	"github.com/w-h-a/medrag/internal/policy"
	"github.com/w-h-a/medrag/retriever"
)

type vectorRetriever struct {
	options retriever.Options
}

// Retrieve embeds query and searches the collection. An embedding failure is
// returned to the caller; a search failure yields an empty context.
func (r *vectorRetriever) Retrieve(ctx context.Context, query string, opts ...retriever.RetrieveOption) ([]string, error) {
	options := retriever.NewRetrieveOptions(opts...)

	limit := r.options.Limit
	if options.Limit > 0 {
		limit = options.Limit
	}

	vec, err := r.options.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	records, err := r.options.Storer.Search(ctx, r.options.Collection, vec, limit)
	if err != nil {
		if policy.Apply(ctx, policy.Search, err, "collection", r.options.Collection) == policy.Fail {
			return nil, err
		}
		return []string{}, nil
	}

	texts := make([]string, 0, len(records))
	for _, rec := range records {
		texts = append(texts, rec.Text)
	}

	return texts, nil
}

func NewRetriever(opts ...retriever.Option) retriever.Retriever {
	options := retriever.NewOptions(opts...)

	if options.Embedder == nil || options.Storer == nil {
		panic("embedder and storer are required for vector retriever")
	}

	if len(options.Collection) == 0 {
		panic("collection is required for vector retriever")
	}

	if options.Limit <= 0 {
		options.Limit = retriever.DefaultLimit
	}

	return &vectorRetriever{
		options: options,
	}
}
