package services

import (
	"context"
	"fmt"
	"log"
)

// ProviderSettings selects and configures the generation backend.
type ProviderSettings struct {
	Provider      string
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

// NewGenerator builds the configured provider. A missing API key yields a nil
// Generator and no error so the service can answer with a configuration
// error per request instead of refusing to start. The returned close
// function is never nil.
func NewGenerator(ctx context.Context, s ProviderSettings) (Generator, func(), error) {
	noop := func() {}

	switch s.Provider {
	case "mock":
		return MockGenerator{}, noop, nil
	case "openai":
		if s.OpenAIAPIKey == "" {
			log.Println("OPENAI_API_KEY is not set; generation requests will fail")
			return nil, noop, nil
		}
		gen, err := NewOpenAIGenerator(s.OpenAIAPIKey, s.OpenAIBaseURL, s.OpenAIModel)
		if err != nil {
			return nil, noop, err
		}
		return gen, noop, nil
	case "gemini", "":
		if s.GeminiAPIKey == "" {
			log.Println("GEMINI_API_KEY is not set; generation requests will fail")
			return nil, noop, nil
		}
		gen, err := NewGeminiGenerator(ctx, s.GeminiAPIKey, s.GeminiModel)
		if err != nil {
			return nil, noop, err
		}
		return gen, gen.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown generation provider %q", s.Provider)
	}
}
