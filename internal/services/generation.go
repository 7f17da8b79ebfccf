package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"roaster-backend/internal/models"
)

type GenerationService struct {
	generator Generator
	rateChan  chan struct{} // Token bucket
}

// NewGenerationService accepts a nil generator: every call then fails with a
// ConfigurationError instead of reaching a provider.
func NewGenerationService(generator Generator, concurrentReqs int) *GenerationService {
	if concurrentReqs < 1 {
		concurrentReqs = 1
	}

	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GenerationService{
		generator: generator,
		rateChan:  rateChan,
	}
}

// acquireRate blocks until a rate slot is available
func (s *GenerationService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Minute):
		return fmt.Errorf("timeout waiting for generation slot")
	}
}

func (s *GenerationService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Generate produces the roast or praise text for one subject.
func (s *GenerationService) Generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	if s.generator == nil {
		log.Println("generation requested but no provider credentials are configured")
		return "", &ConfigurationError{Message: "AI service is not configured. Missing API key."}
	}

	name := strings.TrimSpace(req.Name)
	career := strings.TrimSpace(req.Career)
	if name == "" || career == "" {
		return "", &ValidationError{Message: "Name and career cannot be empty."}
	}
	if !req.Mode.Valid() {
		return "", &ValidationError{Message: "Mode must be roast or positive."}
	}

	messages := make([]models.ChatMessage, 0, len(req.History)+1)
	messages = append(messages, req.History...)
	messages = append(messages, models.ChatMessage{Role: "user", Content: buildUserPrompt(name, career, req.Mode)})

	prompt := Prompt{
		System:      buildSystemPrompt(name, career, req.Mode),
		Messages:    messages,
		Temperature: temperatureFor(req.Mode),
		MaxTokens:   maxOutputTokens,
	}

	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	completion, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generation provider error: %w", err)
	}

	if completion.FinishReason.Failed() {
		log.Printf("AI generation failed with reason: %s", completion.FinishReason)
		return "", &GenerationError{
			Message:      "The AI couldn't generate a response. Please try again.",
			FinishReason: completion.FinishReason,
		}
	}

	text := cleanResponse(completion.Text)
	if text == "" {
		return "", &EmptyResultError{
			Message: fmt.Sprintf("The AI didn't provide any content for the %s. Maybe try a different name or career?", req.Mode),
		}
	}

	return text, nil
}
