package query

import (
	"context"
	"errors"
	"log/slog"

	"github.com/w-h-a/medrag/conversation"
	"github.com/w-h-a/medrag/generator"
	"github.com/w-h-a/medrag/internal/policy"
	"github.com/w-h-a/medrag/prompt"
	"github.com/w-h-a/medrag/retriever"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrInvalidConversation = errors.New("conversation must contain at least one message")

var tracer = otel.Tracer("github.com/w-h-a/medrag/internal/service/query")

// Service answers one conversation per call. It keeps no state between calls.
type Service struct {
	retriever retriever.Retriever
	assembler *prompt.Assembler
	generator generator.Generator
	options   Options
}

func (s *Service) Respond(ctx context.Context, conv []conversation.Message) (string, error) {
	ctx, span := tracer.Start(ctx, "query.Respond")
	defer span.End()

	s.transition(ctx, span, Received)

	last, ok := conversation.Last(conv)
	if !ok {
		s.transition(ctx, span, Failed)
		return "", ErrInvalidConversation
	}

	docs, err := s.retrieve(ctx, span, last.Content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "retrieval failed")
		s.transition(ctx, span, Failed)
		return "", err
	}

	s.transition(ctx, span, Assembling)
	msgs := s.assembler.Assemble(docs, conv)

	s.transition(ctx, span, Generating)
	text, err := s.generator.Generate(ctx, msgs)
	if err != nil {
		policy.Apply(ctx, policy.Generate, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		s.transition(ctx, span, Failed)
		return "", err
	}

	s.transition(ctx, span, Responded)

	return text, nil
}

// retrieve degrades an unembeddable query to an empty context. The retriever
// handles search failures itself.
func (s *Service) retrieve(ctx context.Context, span trace.Span, query string) ([]string, error) {
	s.transition(ctx, span, EmbeddingQuery)

	ctx, child := tracer.Start(ctx, "query.Retrieve")
	defer child.End()

	docs, err := s.retriever.Retrieve(ctx, query, retriever.WithRetrieveLimit(s.options.Limit))
	if err != nil {
		child.RecordError(err)
		if policy.Apply(ctx, policy.EmbedQuery, err) == policy.Fail {
			return nil, err
		}
		docs = []string{}
	}

	s.transition(ctx, span, Retrieving)

	child.SetAttributes(attribute.Int("retrieved", len(docs)))

	return docs, nil
}

func (s *Service) transition(ctx context.Context, span trace.Span, state State) {
	span.AddEvent(state.String())
	slog.DebugContext(ctx, "query state", "state", state.String())
	if s.options.Observer != nil {
		s.options.Observer(state)
	}
}

func New(
	retriever retriever.Retriever,
	assembler *prompt.Assembler,
	generator generator.Generator,
	opts ...Option,
) *Service {
	if retriever == nil {
		panic("retriever is required")
	}

	if assembler == nil {
		panic("assembler is required")
	}

	if generator == nil {
		panic("generator is required")
	}

	options := NewOptions(opts...)

	if options.Limit <= 0 {
		options.Limit = 10
	}

	return &Service{
		retriever: retriever,
		assembler: assembler,
		generator: generator,
		options:   options,
	}
}
