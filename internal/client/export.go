package client

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"roaster-backend/internal/models"
)

var markdown = goldmark.New()

// HistoryMarkdown is the history as a markdown document, newest first.
// Generated text is escaped so it renders literally.
func HistoryMarkdown(history []models.HistoryEntry) string {
	var b strings.Builder
	b.WriteString("# AI Roaster & Praiser history\n\n")
	if len(history) == 0 {
		b.WriteString("No history yet.\n")
		return b.String()
	}
	for _, e := range history {
		fmt.Fprintf(&b, "## %s for %s (%s)\n\n", e.Mode.Label(), escapeMarkdown(e.Name), escapeMarkdown(e.Career))
		fmt.Fprintf(&b, "*%s*\n\n", e.Timestamp.UTC().Format("2006-01-02 15:04 MST"))
		fmt.Fprintf(&b, "> %s\n\n", escapeMarkdown(strings.Join(strings.Fields(e.Response), " ")))
	}
	return b.String()
}

// ExportHTML renders the history as an HTML fragment.
func ExportHTML(w io.Writer, history []models.HistoryEntry) error {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(HistoryMarkdown(history)), &buf); err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// escapeMarkdown backslash-escapes every ASCII punctuation character, which
// CommonMark always treats as a literal.
func escapeMarkdown(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 && strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
