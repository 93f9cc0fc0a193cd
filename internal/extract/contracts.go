package extract

import (
	"context"
	"time"
)

// TextExtractor is stage 1 of the pipeline: document -> sanitized text.
// ExtractText never fails; an empty string means the document could not be read.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) string
}

// Result is the detailed outcome of a single extraction.
type Result struct {
	Text      string
	Pages     int
	Truncated bool
	Duration  time.Duration
	Warnings  []string
}
