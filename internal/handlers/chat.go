package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"roaster-backend/internal/models"
)

type generationService interface {
	Generate(ctx context.Context, req models.GenerationRequest) (string, error)
}

type ChatHandler struct {
	generation generationService
	production bool
}

func NewChatHandler(generation generationService, production bool) *ChatHandler {
	return &ChatHandler{
		generation: generation,
		production: production,
	}
}

// Generate validates the request, asks the generation service for a roast or
// praise and relays the text.
func (h *ChatHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req rawChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", msgInvalidBody, r))
		return
	}

	name, ok := requiredString(req.Name)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Valid 'name' is required", r))
		return
	}
	career, ok := requiredString(req.Career)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Valid 'career' is required", r))
		return
	}
	modeStr, _ := stringField(req.Mode)
	mode := models.Mode(modeStr)
	if !mode.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Valid 'mode' (roast/positive) is required", r))
		return
	}

	text, err := h.generation.Generate(r.Context(), models.GenerationRequest{
		Name:    name,
		Career:  career,
		Mode:    mode,
		History: parseHistory(req.History),
	})
	if err != nil {
		log.Printf("AI Response Error for %s (%s, %s): %v", name, career, mode, err)
		handleServiceError(w, r, err, h.production)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Text: text})
}
