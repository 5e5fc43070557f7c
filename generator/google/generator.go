package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/w-h-a/medrag/conversation"
	"github.com/w-h-a/medrag/generator"
	genaiopt "google.golang.org/api/option"
)

const defaultModel = "gemini-2.5-flash"

type googleGenerator struct {
	options generator.Options
	client  *genai.Client
}

func (g *googleGenerator) Generate(ctx context.Context, msgs []conversation.Message) (string, error) {
	history, last, err := toContents(msgs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", generator.ErrGeneration, err)
	}

	if g.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.options.Timeout)
		defer cancel()
	}

	model := g.client.GenerativeModel(g.options.Model)
	model.SetTemperature(g.options.Config.Temperature)
	model.SetTopP(g.options.Config.TopP)
	model.SetTopK(g.options.Config.TopK)
	model.SetMaxOutputTokens(g.options.Config.MaxOutputTokens)

	cs := model.StartChat()
	cs.History = history

	rsp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", generator.ErrGeneration, err)
	}

	if len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil || len(rsp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no response from Google", generator.ErrGeneration)
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String(), nil
}

func (g *googleGenerator) Close() error {
	return g.client.Close()
}

// toContents splits msgs into chat history and the final user turn, mapping
// Assistant to Gemini's "model" role.
func toContents(msgs []conversation.Message) ([]*genai.Content, *genai.Content, error) {
	if len(msgs) == 0 {
		return nil, nil, errors.New("no messages")
	}

	contents := make([]*genai.Content, 0, len(msgs))
	for _, msg := range msgs {
		contents = append(contents, &genai.Content{
			Role:  toRole(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	last := contents[len(contents)-1]
	if last.Role != "user" {
		return nil, nil, errors.New("conversation must end with a user turn")
	}

	return contents[:len(contents)-1], last, nil
}

func toRole(r conversation.Role) string {
	if r == conversation.Assistant {
		return "model"
	}
	return "user"
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if len(options.Model) == 0 {
		options.Model = defaultModel
	}

	g := &googleGenerator{
		options: options,
	}

	clientOpts := []genaiopt.ClientOption{genaiopt.WithAPIKey(options.ApiKey)}
	if len(options.BaseURL) > 0 {
		clientOpts = append(clientOpts, genaiopt.WithEndpoint(options.BaseURL))
	}

	client, err := genai.NewClient(options.Context, clientOpts...)
	if err != nil {
		detail := "failed to initialize google generator"
		slog.ErrorContext(options.Context, detail, "error", err)
		panic(detail)
	}

	g.client = client

	return g
}
