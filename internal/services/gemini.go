package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"roaster-backend/internal/models"
)

type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, modelName: modelName}, nil
}

func (g *GeminiGenerator) Close() {
	g.client.Close()
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt Prompt) (Completion, error) {
	if len(prompt.Messages) == 0 {
		return Completion{}, errors.New("gemini: prompt has no messages")
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(prompt.Temperature)
	model.SetMaxOutputTokens(prompt.MaxTokens)
	model.SystemInstruction = genai.NewUserContent(genai.Text(prompt.System))

	last := prompt.Messages[len(prompt.Messages)-1]
	cs := model.StartChat()
	cs.History = toGeminiHistory(prompt.Messages[:len(prompt.Messages)-1])

	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			log.Printf("Gemini blocked the request: %v", blocked)
			if blocked.Candidate != nil {
				return Completion{FinishReason: mapGeminiFinishReason(blocked.Candidate.FinishReason)}, nil
			}
			return Completion{FinishReason: FinishOther}, nil
		}
		return Completion{}, fmt.Errorf("Gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return Completion{FinishReason: FinishUnknown}, nil
	}

	cand := resp.Candidates[0]
	log.Printf("Gemini Candidate: FinishReason=%s, TokenCount=%d", cand.FinishReason, cand.TokenCount)

	return Completion{
		Text:         extractText(resp),
		FinishReason: mapGeminiFinishReason(cand.FinishReason),
	}, nil
}

func toGeminiHistory(messages []models.ChatMessage) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == "assistant" || m.Role == "model" {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history
}

func mapGeminiFinishReason(reason genai.FinishReason) FinishReason {
	switch reason {
	case genai.FinishReasonStop:
		return FinishStop
	case genai.FinishReasonMaxTokens:
		return FinishLength
	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return FinishContentFilter
	case genai.FinishReasonUnspecified:
		return FinishUnknown
	default:
		return FinishOther
	}
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}
