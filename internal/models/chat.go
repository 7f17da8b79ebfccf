package models

// Mode selects the generation persona.
type Mode string

const (
	ModeRoast    Mode = "roast"
	ModePositive Mode = "positive"
)

// Valid reports whether m is one of the two supported personas.
func (m Mode) Valid() bool {
	return m == ModeRoast || m == ModePositive
}

// Label is the short human name used in share titles ("Roast" / "Praise").
func (m Mode) Label() string {
	if m == ModeRoast {
		return "Roast"
	}
	return "Praise"
}

// ChatMessage represents a single prior turn passed to the generator.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// GenerationRequest is the validated input of one generation.
type GenerationRequest struct {
	Name    string
	Career  string
	Mode    Mode
	History []ChatMessage
}

// ChatRequest is the payload the client sends to the chat endpoint.
type ChatRequest struct {
	Name    string        `json:"name"`
	Career  string        `json:"career"`
	Mode    Mode          `json:"mode"`
	History []ChatMessage `json:"history"`
}

// ChatResponse is the successful reply of the chat endpoint.
type ChatResponse struct {
	Text string `json:"text"`
}

// CardRequest asks the server to render a share card.
type CardRequest struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Career string `json:"career"`
	Mode   Mode   `json:"mode"`
}
