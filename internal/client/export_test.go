package client

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"roaster-backend/internal/models"
)

func TestExportHTML_KeepsResponseLiteral(t *testing.T) {
	history := []models.HistoryEntry{{
		ID:        uuid.New(),
		Name:      "Ada <Lovelace>",
		Career:    "C++ Engineer",
		Mode:      models.ModeRoast,
		Response:  "Ada estimates 2*3*4 weeks and thinks <br> is a personality trait.",
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	if err := ExportHTML(&buf, history); err != nil {
		t.Fatalf("ExportHTML failed: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<h2>Roast for Ada &lt;Lovelace&gt; (C++ Engineer)</h2>",
		"2*3*4 weeks",
		"thinks &lt;br&gt; is a personality trait.",
		"<em>2026-03-01 10:00 UTC</em>",
		"<blockquote>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<br>") {
		t.Errorf("generated text must not become markup:\n%s", html)
	}
}

func TestHistoryMarkdown_Empty(t *testing.T) {
	if got := HistoryMarkdown(nil); !strings.Contains(got, "No history yet.") {
		t.Fatalf("unexpected markdown %q", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct{ in, expected string }{
		{"plain", "plain"},
		{"2*3", `2\*3`},
		{"- item", `\- item`},
		{"café", "café"},
	}
	for _, tc := range tests {
		if got := escapeMarkdown(tc.in); got != tc.expected {
			t.Errorf("escapeMarkdown(%q): expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}
