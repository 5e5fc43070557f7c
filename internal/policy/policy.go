package policy

import (
	"context"
	"log/slog"
)

// Stage names a step of the ingestion or query pipeline that can fail.
type Stage string

const (
	CreateCollection Stage = "create_collection"
	Fetch            Stage = "fetch"
	EmbedChunk       Stage = "embed_chunk"
	Insert           Stage = "insert"
	EmbedQuery       Stage = "embed_query"
	Search           Stage = "search"
	Generate         Stage = "generate"
)

// Action is what the caller does with a failure at a stage.
type Action int

const (
	// Skip drops the unit of work (a source or a chunk) and moves on.
	Skip Action = iota
	// Degrade replaces the result with its empty value and moves on.
	Degrade
	// Fail ends the request.
	Fail
)

func (a Action) String() string {
	switch a {
	case Skip:
		return "skip"
	case Degrade:
		return "degrade"
	default:
		return "fail"
	}
}

// table is the only place failure handling is decided. Nothing is retried.
var table = map[Stage]Action{
	CreateCollection: Skip,
	Fetch:            Skip,
	EmbedChunk:       Skip,
	Insert:           Skip,
	EmbedQuery:       Degrade,
	Search:           Degrade,
	Generate:         Fail,
}

// For returns the action for stage. Unknown stages fail.
func For(stage Stage) Action {
	if a, ok := table[stage]; ok {
		return a
	}
	return Fail
}

// Apply logs err for stage and returns the action the caller must take.
func Apply(ctx context.Context, stage Stage, err error, attrs ...any) Action {
	action := For(stage)

	args := append([]any{"stage", string(stage), "action", action.String(), "error", err}, attrs...)

	switch action {
	case Fail:
		slog.ErrorContext(ctx, "pipeline stage failed", args...)
	default:
		slog.WarnContext(ctx, "pipeline stage failed", args...)
	}

	return action
}
