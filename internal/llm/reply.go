package llm

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

// Reasons a reply is rejected as a whole.
var (
	ErrEmptyReply      = errors.New("empty reply")
	ErrNoDataLine      = errors.New("no line with a comma and a digit")
	ErrTooFewFields    = errors.New("fewer than 5 fields")
	ErrScoreNotNumeric = errors.New("score is not numeric")
)

const minFields = 5

// ParseReply extracts a Verdict from a free-form model reply.
//
// The first line holding both a comma and a digit is taken as the data line;
// any preamble the model adds is skipped. Fields are
// "case, score, category, flag, classification, justification...". Each one
// has a fallback, so only a missing data line, a short line or a
// non-numeric score reject the reply.
func ParseReply(reply string) (Verdict, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return Verdict{}, ErrEmptyReply
	}

	line, ok := dataLine(reply)
	if !ok {
		return Verdict{}, ErrNoDataLine
	}

	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < minFields {
		return Verdict{}, fmt.Errorf("%w: got %d", ErrTooFewFields, len(fields))
	}

	score, err := parseScore(fields[1])
	if err != nil {
		return Verdict{}, err
	}

	v := Verdict{
		CaseNumber:     orSentinel(fields[0], constants.CaseNotFound),
		Score:          score,
		Category:       orSentinel(fields[2], constants.CategoryUnspecified),
		Flag:           constants.ParseFlag(fields[3]),
		Classification: constants.ParseClassification(fields[4]),
		Justification:  constants.JustificationMissing.String(),
	}
	if len(fields) > minFields {
		v.Justification = capRunes(strings.Join(fields[minFields:], ", "), constants.JustificationMaxChars)
	}
	return v, nil
}

func dataLine(reply string) (string, bool) {
	for _, line := range strings.Split(reply, "\n") {
		if strings.Contains(line, ",") && strings.IndexFunc(line, unicode.IsDigit) >= 0 {
			return line, true
		}
	}
	return "", false
}

// parseScore accepts decimals, truncates toward zero and clamps to [0,100].
func parseScore(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrScoreNotNumeric, s)
	}
	f = math.Trunc(f)
	switch {
	case f < 0:
		return 0, nil
	case f > 100:
		return 100, nil
	default:
		return int(f), nil
	}
}

func orSentinel(s string, fallback constants.Sentinel) string {
	if s == "" {
		return fallback.String()
	}
	return s
}

func capRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
