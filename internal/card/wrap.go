package card

import (
	"strings"

	"golang.org/x/image/math/fixed"
)

const ellipsis = "..."

// MeasureFunc returns the advance width of s in the target face.
type MeasureFunc func(s string) fixed.Int26_6

// WrapText greedily packs words into lines no wider than maxWidth. A word is
// moved to a new line when the candidate "line + word + space" overflows,
// except for the very first word, which always stays on the first line.
// With maxLines > 0 the output is capped and, when text had to be dropped,
// the last kept line ends with an ellipsis. At least one line is returned.
func WrapText(measure MeasureFunc, text string, maxWidth fixed.Int26_6, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for n, word := range words {
		if maxLines > 0 && len(lines) >= maxLines {
			lines[len(lines)-1] = withEllipsis(measure, lines[len(lines)-1], maxWidth)
			return lines
		}
		testLine := line + word + " "
		if measure(testLine) > maxWidth && n > 0 {
			lines = append(lines, strings.TrimRight(line, " "))
			line = word + " "
		} else {
			line = testLine
		}
	}

	if maxLines > 0 && len(lines) >= maxLines {
		lines[len(lines)-1] = withEllipsis(measure, lines[len(lines)-1], maxWidth)
		return lines
	}
	return append(lines, strings.TrimRight(line, " "))
}

// CountLines is the pre-measure pass used to size the canvas.
func CountLines(measure MeasureFunc, text string, maxWidth fixed.Int26_6) int {
	return len(WrapText(measure, text, maxWidth, 0))
}

func withEllipsis(measure MeasureFunc, line string, maxWidth fixed.Int26_6) string {
	runes := []rune(line)
	for len(runes) > 0 && measure(string(runes)+ellipsis) > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + ellipsis
}
