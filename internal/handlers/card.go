package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"roaster-backend/internal/card"
)

type CardHandler struct {
	renderer card.Renderer
}

func NewCardHandler(renderer card.Renderer) *CardHandler {
	return &CardHandler{renderer: renderer}
}

// Render draws the share card for a generated text and returns it as PNG.
func (h *CardHandler) Render(w http.ResponseWriter, r *http.Request) {
	var raw rawCardRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", msgInvalidBody, r))
		return
	}

	req, msg := parseCardRequest(raw)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", msg, r))
		return
	}

	c, err := h.renderer.Render(card.Input{
		Text:   req.Text,
		Name:   req.Name,
		Career: req.Career,
		Mode:   req.Mode,
	})
	if err != nil {
		log.Printf("Card render failed for %s: %v", req.Name, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("RENDER_ERROR", "Failed to render card", r))
		return
	}

	data, err := c.PNG()
	if err != nil {
		log.Printf("Card encode failed for %s: %v", req.Name, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("RENDER_ERROR", "Failed to create image", r))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", card.FileName(req.Name)))
	w.Header().Set("X-Card-Lines", strconv.Itoa(c.Layout.WrappedLineCount))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
