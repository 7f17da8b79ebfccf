package services

import (
	"context"

	"roaster-backend/internal/models"
)

// FinishReason is the provider-neutral completion tag.
type FinishReason string

const (
	FinishStop          FinishReason = "stop"
	FinishLength        FinishReason = "length"
	FinishContentFilter FinishReason = "content-filter"
	FinishToolCalls     FinishReason = "tool-calls"
	FinishError         FinishReason = "error"
	FinishOther         FinishReason = "other"
	FinishUnknown       FinishReason = "unknown"
)

// Failed reports whether the reason means the provider could not answer.
func (r FinishReason) Failed() bool {
	return r == FinishError || r == FinishUnknown || r == FinishOther
}

// Prompt is everything a provider needs for one completion.
type Prompt struct {
	System      string
	Messages    []models.ChatMessage
	Temperature float32
	MaxTokens   int32
}

type Completion struct {
	Text         string
	FinishReason FinishReason
}

// Generator is implemented by every LLM backend.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (Completion, error)
}
