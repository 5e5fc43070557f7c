package config

import (
	"context"
	"fmt"

	"github.com/w-h-a/medrag/generator"
	"github.com/w-h-a/medrag/generator/anthropic"
	"github.com/w-h-a/medrag/generator/google"
	"github.com/w-h-a/medrag/generator/openai"
)

// Generation holds the flags selecting the generative model.
type Generation struct {
	Generator        string `help:"Generative model provider" enum:"google,openai,anthropic" default:"google" env:"GENERATOR"`
	GeneratorModel   string `help:"Model identifier for responses (provider default when empty)" default:"" env:"GENERATOR_MODEL"`
	GeneratorBaseURL string `name:"generator-base-url" help:"Override the generative model endpoint" default:"" env:"GENERATOR_BASE_URL"`
	AnthropicApiKey  string `help:"API key for Anthropic models" default:"" env:"ANTHROPIC_API_KEY"`
}

func (g Generation) NewGenerator(ctx context.Context, p Providers) (generator.Generator, error) {
	opts := []generator.Option{
		generator.WithContext(ctx),
		generator.WithModel(g.GeneratorModel),
		generator.WithBaseURL(g.GeneratorBaseURL),
	}

	switch g.Generator {
	case "google":
		return google.NewGenerator(append(opts, generator.WithApiKey(p.GeminiApiKey))...), nil
	case "openai":
		return openai.NewGenerator(append(opts, generator.WithApiKey(p.OpenaiApiKey))...), nil
	case "anthropic":
		return anthropic.NewGenerator(append(opts, generator.WithApiKey(g.AnthropicApiKey))...), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", g.Generator)
	}
}
