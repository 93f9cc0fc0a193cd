package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

var reControl = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

// Sanitize strips control characters, collapses every whitespace run into a
// single space and caps the result at maxChars characters. A capped text
// ends with constants.TruncationMarker. maxChars <= 0 disables the cap.
func Sanitize(text string, maxChars int) (string, bool) {
	if text == "" {
		return "", false
	}
	text = strings.ToValidUTF8(text, "")
	text = reControl.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")

	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text, false
	}
	return truncateRunes(text, maxChars) + constants.TruncationMarker, true
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
