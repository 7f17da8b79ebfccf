package cli

import (
	"bytes"
	"context"
	"image/png"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roaster-backend/internal/card"
	"roaster-backend/internal/handlers"
	"roaster-backend/internal/router"
	"roaster-backend/internal/services"
)

type memoryClipboard struct{ text string }

func (c *memoryClipboard) Copy(text string) error {
	c.text = text
	return nil
}

type harness struct {
	t         *testing.T
	dir       string
	base      []string
	clipboard *memoryClipboard
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := httptest.NewServer(router.New(
		handlers.NewChatHandler(services.NewGenerationService(services.MockGenerator{}, 2), false),
		handlers.NewCardHandler(card.NewRenderer()),
		nil,
		"http://localhost:3000",
	))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &harness{
		t:         t,
		dir:       dir,
		clipboard: &memoryClipboard{},
		base: []string{
			"--config", filepath.Join(dir, "config.yaml"),
			"--server", srv.URL,
			"--storage", "file",
			"--storage-dsn", filepath.Join(dir, "storage.json"),
		},
	}
}

func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(Options{Verbose: true, Clipboard: h.clipboard})
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(append([]string{}, h.base...), args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCLI_RoastThenHistory(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("roast", "Ada", "Chef")
	if err != nil {
		t.Fatalf("roast failed: %v", err)
	}
	if !strings.Contains(out, "Roasting Ada, the Chef") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, _, err := h.run("praise", "Grace", "Admiral"); err != nil {
		t.Fatalf("praise failed: %v", err)
	}

	out, _, err = h.run("history", "list")
	if err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two entries, got %q", out)
	}
	if !strings.Contains(lines[1], "Praise") || !strings.Contains(lines[1], "Grace") {
		t.Fatalf("expected newest entry first, got %q", lines[1])
	}

	if _, _, err := h.run("history", "clear"); err != nil {
		t.Fatalf("history clear failed: %v", err)
	}
	out, _, _ = h.run("history", "list")
	if !strings.Contains(out, msgNoHistory) {
		t.Fatalf("expected empty history, got %q", out)
	}
}

func TestCLI_MissingCareer(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("roast", "Ada", "  ")
	if err == nil || err.Error() != "Please enter both name and career." {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestCLI_ShareWritesCard(t *testing.T) {
	h := newHarness(t)
	outDir := filepath.Join(h.dir, "exports")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := h.run("roast", "Ada Lovelace", "Engineer"); err != nil {
		t.Fatalf("roast failed: %v", err)
	}
	out, stderr, err := h.run("share", "--out", outDir)
	if err != nil {
		t.Fatalf("share failed: %v (%s)", err, stderr)
	}
	if !strings.Contains(stderr, "share: shared-file") {
		t.Fatalf("expected file share, got %q", stderr)
	}
	if !strings.Contains(out, "AI Roast for Ada Lovelace") {
		t.Fatalf("expected share title in output, got %q", out)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "AI_Verdict_Ada_Lovelace.png"))
	if err != nil {
		t.Fatalf("expected exported card: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("exported card is not a PNG: %v", err)
	}
}

func TestCLI_CardCommand(t *testing.T) {
	h := newHarness(t)
	if _, _, err := h.run("praise", "Grace", "Admiral"); err != nil {
		t.Fatalf("praise failed: %v", err)
	}

	target := filepath.Join(h.dir, "card.png")
	out, _, err := h.run("card", "--out", target)
	if err != nil {
		t.Fatalf("card failed: %v", err)
	}
	if !strings.Contains(out, "1200x") {
		t.Fatalf("expected canvas size in output, got %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected card file: %v", err)
	}

	if _, _, err := h.run("card", "--index", "5", "--out", target); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestCLI_ShareWithoutHistory(t *testing.T) {
	h := newHarness(t)

	if _, _, err := h.run("share"); err == nil || !strings.Contains(err.Error(), msgNoHistory) {
		t.Fatalf("expected no history error, got %v", err)
	}
}

func TestCLI_PrintsResponseWhenHistoryCannotBeSaved(t *testing.T) {
	h := newHarness(t)
	blocker := filepath.Join(h.dir, "afile")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.base[len(h.base)-1] = filepath.Join(blocker, "storage.json")

	out, stderr, err := h.run("roast", "Ada", "Chef")
	if err != nil {
		t.Fatalf("a persist failure must not fail the command: %v", err)
	}
	if !strings.Contains(out, "Roasting Ada, the Chef") {
		t.Fatalf("expected the generated text on stdout, got %q", out)
	}
	if !strings.Contains(stderr, "warning: failed to persist history") {
		t.Fatalf("expected a persist warning, got %q", stderr)
	}
}

func TestCLI_CopyDoesNotShowUnsupportedNotice(t *testing.T) {
	h := newHarness(t)

	out, stderr, err := h.run("roast", "Ada", "Chef", "--copy")
	if err != nil {
		t.Fatalf("roast --copy failed: %v", err)
	}
	if !strings.Contains(stderr, "share: copied") {
		t.Fatalf("expected copied outcome, got %q", stderr)
	}
	if strings.Contains(stderr, "not supported") {
		t.Fatalf("copy must not report sharing as unsupported: %q", stderr)
	}
	want := "AI Roast for Ada (Chef):\n\n" + strings.TrimSpace(out)
	if h.clipboard.text != want {
		t.Fatalf("expected clipboard %q, got %q", want, h.clipboard.text)
	}

	h.clipboard.text = ""
	if _, stderr, err = h.run("share", "--copy"); err != nil {
		t.Fatalf("share --copy failed: %v", err)
	}
	if strings.Contains(stderr, "not supported") || h.clipboard.text != want {
		t.Fatalf("unexpected share --copy result: stderr %q clipboard %q", stderr, h.clipboard.text)
	}
}

func TestCLI_HistoryExport(t *testing.T) {
	h := newHarness(t)
	if _, _, err := h.run("praise", "Grace", "Admiral"); err != nil {
		t.Fatalf("praise failed: %v", err)
	}

	target := filepath.Join(h.dir, "history.html")
	if _, _, err := h.run("history", "export", "--out", target); err != nil {
		t.Fatalf("history export failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected export file: %v", err)
	}
	if !strings.Contains(string(data), "<h2>Praise for Grace (Admiral)</h2>") {
		t.Fatalf("unexpected export %s", data)
	}

	out, _, err := h.run("history", "export")
	if err != nil || !strings.Contains(out, "<h1>") {
		t.Fatalf("expected HTML on stdout, got %q (%v)", out, err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged, got %q", got)
	}
	if got := truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Errorf("Expected truncated, got %q", got)
	}
}
