package medrag

import (
	"context"

	"github.com/w-h-a/medrag/chunker"
	"github.com/w-h-a/medrag/conversation"
	"github.com/w-h-a/medrag/embedder"
	"github.com/w-h-a/medrag/fetcher"
	"github.com/w-h-a/medrag/generator"
	"github.com/w-h-a/medrag/internal/service/ingest"
	"github.com/w-h-a/medrag/internal/service/query"
	"github.com/w-h-a/medrag/prompt"
	"github.com/w-h-a/medrag/retriever"
	"github.com/w-h-a/medrag/retriever/vector"
	"github.com/w-h-a/medrag/storer"
)

type Report = ingest.Report

type SourceReport = ingest.SourceReport

type State = query.State

var ErrInvalidConversation = query.ErrInvalidConversation

// RAG pairs an ingestion pipeline and a query pipeline over one collection.
type RAG struct {
	ingest *ingest.Service
	query  *query.Service
}

// Ingest loads every source into the collection, skipping what fails.
func (r *RAG) Ingest(ctx context.Context, sources []string) Report {
	return r.ingest.Run(ctx, sources)
}

// Respond answers the last message of conv grounded on retrieved context.
func (r *RAG) Respond(ctx context.Context, conv []conversation.Message) (string, error) {
	return r.query.Respond(ctx, conv)
}

func New(
	fetcher fetcher.Fetcher,
	chunker chunker.Chunker,
	embedder embedder.Embedder,
	storer storer.Storer,
	generator generator.Generator,
	opts ...Option,
) *RAG {
	options := NewOptions(opts...)

	ingestSvc := ingest.New(
		fetcher,
		chunker,
		embedder,
		storer,
		ingest.WithCollection(options.Collection),
		ingest.WithDimension(options.Dimension),
		ingest.WithMetric(options.Metric),
		ingest.WithWorkers(options.Workers),
		ingest.WithDelay(options.Delay),
	)

	re := vector.NewRetriever(
		retriever.WithEmbedder(embedder),
		retriever.WithStorer(storer),
		retriever.WithCollection(options.Collection),
		retriever.WithLimit(options.Limit),
	)

	queryOpts := []query.Option{query.WithLimit(options.Limit)}
	if options.Observer != nil {
		queryOpts = append(queryOpts, query.WithObserver(options.Observer))
	}

	querySvc := query.New(
		re,
		prompt.New(options.Prompt...),
		generator,
		queryOpts...,
	)

	return &RAG{
		ingest: ingestSvc,
		query:  querySvc,
	}
}
