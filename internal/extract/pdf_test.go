package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

type fakeRunner struct {
	stdout string
	stderr string
	err    error
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDoc(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4 fake"), 0o644))
	return p
}

func newTestExtractor(r Runner, maxChars int) *Extractor {
	e := NewExtractor(Config{MaxChars: maxChars}, quietLogger()).WithRunner(r)
	e.pageCount = func(string) (int, error) { return 2, nil }
	return e
}

func TestExtractor_ExtractText_OK(t *testing.T) {
	r := &fakeRunner{stdout: "Dossier 123456P0\n\n  Lycée\fJean Moulin\n"}
	e := newTestExtractor(r, 100)
	path := writeDoc(t, "a.pdf")

	got := e.ExtractText(context.Background(), path)

	assert.Equal(t, "Dossier 123456P0 LycéeJean Moulin", got)
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"pdftotext", "-enc", "UTF-8", "-eol", "unix", path, "-"}, r.calls[0])
}

func TestExtractor_Extract_ReportsPagesAndTruncation(t *testing.T) {
	r := &fakeRunner{stdout: strings.Repeat("x", 50)}
	e := newTestExtractor(r, 20)

	res, err := e.Extract(context.Background(), writeDoc(t, "long.PDF"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.True(t, res.Truncated)
	assert.True(t, strings.HasSuffix(res.Text, constants.TruncationMarker))
}

func TestExtractor_ExtractText_FailuresBecomeEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    *fakeRunner
		path func(t *testing.T) string
	}{
		{
			name: "command fails",
			r:    &fakeRunner{err: errors.New("exit status 1"), stderr: "Syntax Error: Couldn't find trailer dictionary"},
			path: func(t *testing.T) string { return writeDoc(t, "corrupt.pdf") },
		},
		{
			name: "no text",
			r:    &fakeRunner{stdout: " \f \n"},
			path: func(t *testing.T) string { return writeDoc(t, "scan.pdf") },
		},
		{
			name: "missing file",
			r:    &fakeRunner{stdout: "never used"},
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "gone.pdf") },
		},
		{
			name: "wrong extension",
			r:    &fakeRunner{stdout: "never used"},
			path: func(t *testing.T) string { return writeDoc(t, "notes.txt") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(tt.r, 100)
			assert.Empty(t, e.ExtractText(context.Background(), tt.path(t)))
		})
	}
}

func TestExtractor_PageCountFailureIsNotFatal(t *testing.T) {
	e := newTestExtractor(&fakeRunner{stdout: "texte"}, 100)
	e.pageCount = func(string) (int, error) { return 0, errors.New("xref corrupted") }

	res, err := e.Extract(context.Background(), writeDoc(t, "odd.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "texte", res.Text)
	assert.Zero(t, res.Pages)
	assert.Len(t, res.Warnings, 1)
}
