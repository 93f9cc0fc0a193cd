package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

func TestSanitize_StripsControlAndCollapsesWhitespace(t *testing.T) {
	got, truncated := Sanitize("  Lettre\x00 de\tmotivation\r\n\n\x0c  BUT\x1f R&T  ", 100)
	assert.Equal(t, "Lettre de motivation BUT R&T", got)
	assert.False(t, truncated)
}

func TestSanitize_FormFeedIsRemovedNotSpaced(t *testing.T) {
	// pdftotext separates pages with \f; the pages are glued together.
	got, _ := Sanitize("fin de page\fdébut de page", 100)
	assert.Equal(t, "fin de pagedébut de page", got)

	got, _ = Sanitize("Lycée\fJean", 100)
	assert.Equal(t, "LycéeJean", got)
}

func TestSanitize_Empty(t *testing.T) {
	got, truncated := Sanitize("", 10)
	assert.Empty(t, got)
	assert.False(t, truncated)

	got, _ = Sanitize(" \n\t\x01 ", 10)
	assert.Empty(t, got)
}

func TestSanitize_TruncatesOnceWithMarker(t *testing.T) {
	in := strings.Repeat("é", 30)
	got, truncated := Sanitize(in, 10)

	assert.True(t, truncated)
	assert.Equal(t, strings.Repeat("é", 10)+constants.TruncationMarker, got)
	assert.Equal(t, 1, strings.Count(got, "[TRONQUÉ]"))
	assert.Equal(t, 10+utf8.RuneCountInString(constants.TruncationMarker), utf8.RuneCountInString(got))
}

func TestSanitize_ExactlyAtLimitIsKept(t *testing.T) {
	in := strings.Repeat("a", 10)
	got, truncated := Sanitize(in, 10)
	assert.Equal(t, in, got)
	assert.False(t, truncated)
}
