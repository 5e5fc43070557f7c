package generator

import (
	"context"
	"errors"

	"github.com/w-h-a/medrag/conversation"
)

var ErrGeneration = errors.New("generation failed")

// Generator produces the next assistant turn for an ordered message sequence.
type Generator interface {
	Generate(ctx context.Context, msgs []conversation.Message) (string, error)
}
