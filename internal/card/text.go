package card

import "strings"

// NormalizeText folds every whitespace run into one space. The card shows
// the response exactly as displayed otherwise.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
