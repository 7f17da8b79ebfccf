package card

import (
	"strings"
	"testing"

	"golang.org/x/image/math/fixed"
)

// runeWidth measures every rune as 10px wide.
func runeWidth(s string) fixed.Int26_6 {
	return fixed.I(10 * len([]rune(s)))
}

func TestWrapText_ShortTextIsOneLine(t *testing.T) {
	lines := WrapText(runeWidth, "hello world", fixed.I(1000), 0)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), lines)
	}
	if lines[0] != "hello world" {
		t.Fatalf("expected trailing space trimmed, got %q", lines[0])
	}
}

func TestWrapText_BreaksWhenCandidateOverflows(t *testing.T) {
	// "aaaa bbbb " is 100px, so a 95px line fits only one word plus its space.
	lines := WrapText(runeWidth, "aaaa bbbb cccc", fixed.I(95), 0)

	expected := []string{"aaaa", "bbbb", "cccc"}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %q", len(expected), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestWrapText_FirstWordNeverMovesEvenIfTooWide(t *testing.T) {
	lines := WrapText(runeWidth, "supercalifragilistic tiny", fixed.I(50), 0)
	if lines[0] != "supercalifragilistic" {
		t.Fatalf("first word must stay on the first line, got %q", lines)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}

func TestWrapText_EmptyTextStillHasOneLine(t *testing.T) {
	for _, text := range []string{"", "   "} {
		if n := CountLines(runeWidth, text, fixed.I(100)); n != 1 {
			t.Fatalf("text %q: expected 1 line, got %d", text, n)
		}
	}
}

func TestWrapText_LineCountGrowsWithWordCount(t *testing.T) {
	width := fixed.I(200)
	prev := 0
	for words := 10; words <= 80; words += 10 {
		text := strings.TrimSpace(strings.Repeat("word ", words))
		n := CountLines(runeWidth, text, width)
		if n <= prev {
			t.Fatalf("%d words: line count %d did not grow past %d", words, n, prev)
		}
		prev = n
	}
}

func TestWrapText_MaxLinesAddsEllipsis(t *testing.T) {
	text := "one two three four five six seven eight"
	lines := WrapText(runeWidth, text, fixed.I(100), 2)

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	last := lines[len(lines)-1]
	if !strings.HasSuffix(last, "...") {
		t.Fatalf("expected ellipsis on last line, got %q", last)
	}
	if runeWidth(last) > fixed.I(100) {
		t.Fatalf("ellipsis line overflows: %q", last)
	}
}

func TestWrapText_MaxLinesNotReachedLeavesTextAlone(t *testing.T) {
	lines := WrapText(runeWidth, "one two", fixed.I(1000), 3)
	if len(lines) != 1 || lines[0] != "one two" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestWrapText_EllipsisTruncatesFullLine(t *testing.T) {
	// Each word fills its line exactly, so "..." only fits after trimming.
	lines := WrapText(runeWidth, "aaaaaaaaa bbbbbbbbb ccccccccc", fixed.I(100), 1)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %q", lines)
	}
	if lines[0] != "aaaaaaa..." {
		t.Fatalf("expected truncated line, got %q", lines[0])
	}
}
