package services

import (
	"context"
	"fmt"
	"strings"
)

// MockGenerator answers without calling any provider; handy for local runs.
type MockGenerator struct{}

func (MockGenerator) Generate(_ context.Context, prompt Prompt) (Completion, error) {
	last := ""
	if len(prompt.Messages) > 0 {
		last = prompt.Messages[len(prompt.Messages)-1].Content
	}
	subject := strings.TrimSuffix(strings.TrimPrefix(last, "Generate a "), ".")

	var text string
	if rest, ok := strings.CutPrefix(subject, "roast for "); ok {
		text = fmt.Sprintf("Roasting %s: your résumé says \"team player\" but your calendar says \"do not disturb\".", rest)
	} else {
		rest = strings.TrimPrefix(subject, "positive for ")
		text = fmt.Sprintf("Praise for %s: the care you put into your craft shows in every detail.", rest)
	}

	return Completion{Text: text, FinishReason: FinishStop}, nil
}
