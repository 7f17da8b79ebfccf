package handlers

import (
	"bytes"
	"encoding/json"
	"strings"

	"roaster-backend/internal/models"
)

// rawChatRequest keeps every field undecoded so that type mismatches are
// reported per field instead of failing the whole body.
type rawChatRequest struct {
	Name    json.RawMessage `json:"name"`
	Career  json.RawMessage `json:"career"`
	Mode    json.RawMessage `json:"mode"`
	History json.RawMessage `json:"history"`
}

type rawCardRequest struct {
	Text   json.RawMessage `json:"text"`
	Name   json.RawMessage `json:"name"`
	Career json.RawMessage `json:"career"`
	Mode   json.RawMessage `json:"mode"`
}

// parseCardRequest validates text, name, career and mode in that order and
// returns the message for the first field that fails.
func parseCardRequest(raw rawCardRequest) (models.CardRequest, string) {
	var req models.CardRequest
	var ok bool
	if req.Text, ok = requiredString(raw.Text); !ok {
		return req, "Valid 'text' is required"
	}
	if req.Name, ok = requiredString(raw.Name); !ok {
		return req, "Valid 'name' is required"
	}
	if req.Career, ok = requiredString(raw.Career); !ok {
		return req, "Valid 'career' is required"
	}
	mode, _ := stringField(raw.Mode)
	req.Mode = models.Mode(mode)
	if !req.Mode.Valid() {
		return req, "Valid 'mode' (roast/positive) is required"
	}
	return req, ""
}

// stringField decodes raw only when it is a JSON string.
func stringField(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// requiredString returns the trimmed value of a non-blank JSON string.
func requiredString(raw json.RawMessage) (string, bool) {
	s, ok := stringField(raw)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// parseHistory keeps only elements with string role and content. Anything
// that is not an array yields no history.
func parseHistory(raw json.RawMessage) []models.ChatMessage {
	var items []json.RawMessage
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}

	history := make([]models.ChatMessage, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		role, okRole := stringField(fields["role"])
		content, okContent := stringField(fields["content"])
		if !okRole || !okContent {
			continue
		}
		history = append(history, models.ChatMessage{Role: role, Content: content})
	}
	return history
}
