package services

import (
	"fmt"
	"strings"

	"roaster-backend/internal/models"
)

const maxOutputTokens = 150

func temperatureFor(mode models.Mode) float32 {
	if mode == models.ModeRoast {
		return 0.9
	}
	return 0.7
}

func buildSystemPrompt(name, career string, mode models.Mode) string {
	var b strings.Builder

	if mode == models.ModeRoast {
		b.WriteString("You are a witty, sharp comedian who writes light-hearted roasts.\n")
		b.WriteString(fmt.Sprintf("Write a roast for a person named %q who works as a %q.\n", name, career))
		b.WriteString("Poke fun at habits, clichés and everyday struggles of that exact profession, and work the name in naturally.\n")
		b.WriteString("Be funny but never mean-spirited, offensive or harmful. Keep it suitable for a general audience.\n")
	} else {
		b.WriteString("You are a kind, genuine mentor who writes heartfelt praise.\n")
		b.WriteString(fmt.Sprintf("Write encouraging feedback for a person named %q who works as a %q.\n", name, career))
		b.WriteString("Highlight real strengths that profession demands and the impact it has, addressed to that person by name.\n")
		b.WriteString("Be warm and specific without sounding like a greeting card.\n")
	}

	b.WriteString("Do not use a generic template: every sentence must only make sense for this name and this profession.\n")
	b.WriteString("Use at most 3-4 sentences. Reply with the text only, no title, no quotes, no markdown.\n")

	return b.String()
}

func buildUserPrompt(name, career string, mode models.Mode) string {
	return fmt.Sprintf("Generate a %s for %s, the %s.", mode, name, career)
}

var quotePairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'“':  '”',
	'‘':  '’',
}

// cleanResponse trims the text and strips one surrounding pair of quotes.
func cleanResponse(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) < 2 {
		return text
	}
	closing, ok := quotePairs[runes[0]]
	if !ok || runes[len(runes)-1] != closing {
		return text
	}
	return strings.TrimSpace(string(runes[1 : len(runes)-1]))
}
