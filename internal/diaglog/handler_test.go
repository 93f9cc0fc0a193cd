package diaglog

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineRe = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] `)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
}

func TestHandler_WritesTimestampedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	logger := slog.New(NewHandler(path, slog.LevelWarn))

	logger.Info("not written")
	logger.Error("PDF a.pdf: exit status 1", "event", "extract.failed")
	logger.With("run_id", "r1").Warn("ledger.row.incomplete", "line", 3)

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Regexp(t, lineRe, l)
	}
	assert.True(t, strings.HasSuffix(lines[0], "] PDF a.pdf: exit status 1 event=extract.failed"))
	assert.True(t, strings.HasSuffix(lines[1], "] ledger.row.incomplete run_id=r1 line=3"))
}

func TestHandler_AppendsAcrossHandlers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	slog.New(NewHandler(path, nil)).Error("first")
	slog.New(NewHandler(path, nil)).Error("second")

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "second")
}

func TestHandler_QuotesAndGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	logger := slog.New(NewHandler(path, slog.LevelInfo)).WithGroup("llm")
	logger.Info("IA: timeout", "error", "context deadline exceeded", slog.Group("http", "status", 0))

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `llm.error="context deadline exceeded"`)
	assert.Contains(t, lines[0], `llm.http.status=0`)
}

func TestHandler_WriteFailureIsSilent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "diag.log")
	h := NewHandler(path, slog.LevelInfo)
	assert.NotPanics(t, func() { slog.New(h).Error("dropped") })
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFanout_RoutesByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	var buf bytes.Buffer
	json := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(Fanout{json, NewHandler(path, slog.LevelError)})

	logger.Info("pipeline.item.recorded", "item", "a.pdf")
	logger.Error("IA: boom")

	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "IA: boom")
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	require.NoError(t, Remove(path))
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	require.NoError(t, Remove(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
