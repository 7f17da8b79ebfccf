package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"roaster-backend/internal/models"
	"roaster-backend/internal/services"
)

const (
	maxBodyBytes   = 64 << 10
	msgUnexpected  = "I'm having trouble responding right now. Please try again shortly."
	msgInvalidBody = "Invalid request body"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: r.Header.Get("X-Request-ID"),
	}
}

// handleServiceError maps the generation error taxonomy onto a status code.
// Details of unexpected errors are only exposed outside production.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, production bool) {
	var (
		validationErr *services.ValidationError
		configErr     *services.ConfigurationError
		generationErr *services.GenerationError
		emptyErr      *services.EmptyResultError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", validationErr.Message, r))
	case errors.As(err, &configErr):
		writeJSON(w, http.StatusInternalServerError, errorResp("CONFIGURATION_ERROR", "AI Error: "+configErr.Message, r))
	case errors.As(err, &generationErr):
		writeJSON(w, http.StatusInternalServerError, errorResp("GENERATION_ERROR", "AI Error: "+generationErr.Message, r))
	case errors.As(err, &emptyErr):
		writeJSON(w, http.StatusInternalServerError, errorResp("EMPTY_RESULT", "AI Error: "+emptyErr.Message, r))
	default:
		log.Printf("Unhandled error in %s %s: %v", r.Method, r.URL.Path, err)
		resp := errorResp("INTERNAL_ERROR", msgUnexpected, r)
		if !production {
			resp.Details = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}
