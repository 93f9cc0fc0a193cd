package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

type Config struct {
	Pdftotext string        // binary name or absolute path; if empty -> "pdftotext"
	MaxChars  int           // cap on sanitized text, default constants.DefaultMaxChars
	Timeout   time.Duration // per-document bound on pdftotext, 0 = none
}

// Extractor turns a PDF into sanitized text using pdftotext.
type Extractor struct {
	cfg       Config
	runner    Runner
	pageCount func(path string) (int, error)
	logger    *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = constants.DefaultMaxChars
	}
	return &Extractor{
		cfg:       cfg,
		runner:    execRunner{logger: logger},
		pageCount: api.PageCountFile,
		logger:    logger,
	}
}

// WithRunner swaps the command runner, mostly for tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// ExtractText implements TextExtractor. Every failure is logged and turned
// into an empty string so the batch can move on.
func (e *Extractor) ExtractText(ctx context.Context, path string) string {
	res, err := e.Extract(ctx, path)
	if err != nil {
		e.logger.Error(fmt.Sprintf("PDF %s: %v", path, err),
			"event", "extract.failed", "file", filepath.Base(path))
		return ""
	}
	e.logger.Info("extract.ok",
		"file", filepath.Base(path),
		"pages", res.Pages,
		"chars", len([]rune(res.Text)),
		"truncated", res.Truncated,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res.Text
}

// Extract runs pdftotext on path and sanitizes its output.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	res := Result{}

	if ext := constants.NormalizeExt(filepath.Ext(path)); ext != constants.DocumentExt {
		return res, fmt.Errorf("unsupported extension: %q", ext)
	}
	if _, err := os.Stat(path); err != nil {
		return res, fmt.Errorf("stat: %w", err)
	}

	// pdfcpu is stricter than poppler; a failure here is only a hint.
	if n, err := e.pageCount(path); err != nil {
		res.Warnings = append(res.Warnings, "page count: "+err.Error())
		e.logger.Warn("extract.page_count_failed", "file", filepath.Base(path), "error", err)
	} else {
		res.Pages = n
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	// pdftotext -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		if len(errb) > 0 {
			return res, fmt.Errorf("%s: %w: %s", e.cfg.Pdftotext, err, truncate(string(errb), 512))
		}
		return res, fmt.Errorf("%s: %w", e.cfg.Pdftotext, err)
	}

	text, truncated := Sanitize(string(out), e.cfg.MaxChars)
	if text == "" {
		return res, errors.New("no extractable text")
	}
	res.Text = text
	res.Truncated = truncated
	res.Duration = time.Since(start)
	return res, nil
}
