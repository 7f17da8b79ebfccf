package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roaster-backend/internal/models"
	"roaster-backend/internal/services"
)

type stubGenerator struct {
	completion services.Completion
	err        error
	calls      int
	lastPrompt services.Prompt
}

func (s *stubGenerator) Generate(ctx context.Context, prompt services.Prompt) (services.Completion, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.completion, s.err
}

type stubGenerationService struct {
	text    string
	err     error
	lastReq *models.GenerationRequest
}

func (s *stubGenerationService) Generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	s.lastReq = &req
	return s.text, s.err
}

func postChat(t *testing.T, h *ChatHandler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Generate(rr, req)

	var payload map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rr, payload
}

func assertExactlyOne(t *testing.T, payload map[string]interface{}) {
	t.Helper()
	_, hasText := payload["text"]
	_, hasError := payload["error"]
	if hasText == hasError {
		t.Fatalf("expected exactly one of text/error, got %v", payload)
	}
	if hasText && strings.TrimSpace(payload["text"].(string)) == "" {
		t.Fatalf("text must not be blank")
	}
}

func TestChatHandler_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing name", `{"career":"Chef","mode":"roast"}`, "Valid 'name' is required"},
		{"blank name", `{"name":"   ","career":"Chef","mode":"roast"}`, "Valid 'name' is required"},
		{"numeric name", `{"name":42,"career":"Chef","mode":"roast"}`, "Valid 'name' is required"},
		{"null name", `{"name":null,"career":"Chef","mode":"roast"}`, "Valid 'name' is required"},
		{"empty career", `{"name":"Ada","career":"","mode":"roast"}`, "Valid 'career' is required"},
		{"array career", `{"name":"Ada","career":["Chef"],"mode":"roast"}`, "Valid 'career' is required"},
		{"missing mode", `{"name":"Ada","career":"Chef"}`, "Valid 'mode' (roast/positive) is required"},
		{"praise is not a mode", `{"name":"Ada","career":"Chef","mode":"praise"}`, "Valid 'mode' (roast/positive) is required"},
		{"mode case matters", `{"name":"Ada","career":"Chef","mode":"Roast"}`, "Valid 'mode' (roast/positive) is required"},
		{"name checked first", `{"career":"","mode":"nope"}`, "Valid 'name' is required"},
		{"malformed json", `{"name":`, msgInvalidBody},
		{"not an object", `["Ada"]`, msgInvalidBody},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{}
			h := NewChatHandler(services.NewGenerationService(gen, 1), false)

			rr, payload := postChat(t, h, tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
			if payload["error"] != tc.message {
				t.Fatalf("expected error %q, got %v", tc.message, payload["error"])
			}
			if gen.calls != 0 {
				t.Fatalf("no external call expected, got %d", gen.calls)
			}
			assertExactlyOne(t, payload)
		})
	}
}

func TestChatHandler_ScenarioA_RoastSucceeds(t *testing.T) {
	gen := &stubGenerator{completion: services.Completion{
		Text:         `"Ada, your code compiles on the first try and nobody believes you."`,
		FinishReason: services.FinishStop,
	}}
	h := NewChatHandler(services.NewGenerationService(gen, 1), false)

	rr, payload := postChat(t, h, `{"name":" Ada Lovelace ","career":"Software Engineer","mode":"roast","history":[]}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d (%v)", http.StatusOK, rr.Code, payload)
	}
	assertExactlyOne(t, payload)
	if payload["text"] != "Ada, your code compiles on the first try and nobody believes you." {
		t.Fatalf("unexpected text %v", payload["text"])
	}
	if !strings.Contains(gen.lastPrompt.System, `"Ada Lovelace"`) {
		t.Fatalf("name should be trimmed before prompting: %q", gen.lastPrompt.System)
	}
}

func TestChatHandler_ScenarioC_FinishReasonError(t *testing.T) {
	gen := &stubGenerator{completion: services.Completion{FinishReason: services.FinishError}}
	h := NewChatHandler(services.NewGenerationService(gen, 1), false)

	rr, payload := postChat(t, h, `{"name":"Ada","career":"Chef","mode":"positive"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	assertExactlyOne(t, payload)
	if payload["code"] != "GENERATION_ERROR" {
		t.Fatalf("expected GENERATION_ERROR, got %v", payload["code"])
	}
	if !strings.HasPrefix(payload["error"].(string), "AI Error: ") {
		t.Fatalf("unexpected message %v", payload["error"])
	}
}

func TestChatHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &services.ValidationError{Message: "Name and career cannot be empty."}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"configuration", &services.ConfigurationError{Message: "missing key"}, http.StatusInternalServerError, "CONFIGURATION_ERROR"},
		{"empty", &services.EmptyResultError{Message: "nothing"}, http.StatusInternalServerError, "EMPTY_RESULT"},
		{"unexpected", errors.New("socket closed"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewChatHandler(&stubGenerationService{err: tc.err}, false)

			rr, payload := postChat(t, h, `{"name":"Ada","career":"Chef","mode":"roast"}`)

			if rr.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rr.Code)
			}
			if payload["code"] != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, payload["code"])
			}
			assertExactlyOne(t, payload)
		})
	}
}

func TestChatHandler_UnexpectedErrorDetailsOnlyOutsideProduction(t *testing.T) {
	body := `{"name":"Ada","career":"Chef","mode":"roast"}`
	boom := errors.New("dial tcp: connection refused")

	_, devPayload := postChat(t, NewChatHandler(&stubGenerationService{err: boom}, false), body)
	if devPayload["details"] != boom.Error() {
		t.Fatalf("expected details in development, got %v", devPayload["details"])
	}
	if devPayload["error"] != msgUnexpected {
		t.Fatalf("expected generic message, got %v", devPayload["error"])
	}

	_, prodPayload := postChat(t, NewChatHandler(&stubGenerationService{err: boom}, true), body)
	if _, ok := prodPayload["details"]; ok {
		t.Fatalf("details must be hidden in production, got %v", prodPayload["details"])
	}
}

func TestChatHandler_MissingCredentials(t *testing.T) {
	h := NewChatHandler(services.NewGenerationService(nil, 1), true)

	rr, payload := postChat(t, h, `{"name":"Ada","career":"Chef","mode":"roast"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if payload["code"] != "CONFIGURATION_ERROR" {
		t.Fatalf("expected CONFIGURATION_ERROR, got %v", payload["code"])
	}
}

func TestChatHandler_HistoryFiltering(t *testing.T) {
	svc := &stubGenerationService{text: "ok"}
	h := NewChatHandler(svc, false)

	body := `{"name":"Ada","career":"Chef","mode":"roast","history":[
		{"role":"user","content":"hi"},
		{"role":"assistant"},
		{"role":1,"content":"bad role"},
		"just a string",
		null,
		{"role":"assistant","content":"hello"}
	]}`
	rr, _ := postChat(t, h, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("malformed history items must not reject the request, got %d", rr.Code)
	}
	history := svc.lastReq.History
	if len(history) != 2 {
		t.Fatalf("expected 2 kept messages, got %+v", history)
	}
	if history[0].Content != "hi" || history[1].Content != "hello" {
		t.Fatalf("unexpected history order: %+v", history)
	}
}

func TestChatHandler_NonArrayHistoryIsIgnored(t *testing.T) {
	svc := &stubGenerationService{text: "ok"}
	h := NewChatHandler(svc, false)

	rr, _ := postChat(t, h, `{"name":"Ada","career":"Chef","mode":"positive","history":{"role":"user"}}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if len(svc.lastReq.History) != 0 {
		t.Fatalf("expected no history, got %+v", svc.lastReq.History)
	}
}

func TestChatHandler_RequestIDEchoed(t *testing.T) {
	h := NewChatHandler(&stubGenerationService{}, false)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	var payload models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.RequestID != "req-123" {
		t.Fatalf("expected request id to be echoed, got %q", payload.RequestID)
	}
}
