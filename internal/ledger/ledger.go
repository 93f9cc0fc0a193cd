// Package ledger persists evaluations in an append-only, semicolon-delimited
// CSV file. The set of file names already present is the resume frontier.
package ledger

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

const (
	delimiter    = ';'
	maxLineBytes = 1 << 20
)

// legacyIDColumn is the first header cell written by earlier versions of the tool.
const legacyIDColumn = "nom_fichier_pdf"

// Ledger is a single-writer store; it is never held open between calls.
type Ledger struct {
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{path: path, logger: logger}
}

func (l *Ledger) Path() string { return l.path }

// Exists reports whether the ledger file is present.
func (l *Ledger) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// KnownIDs returns the source file names already recorded. A missing or
// unreadable ledger yields an empty set. A row counts only if it parses as a
// full evaluation, the same rule Records applies, so a torn row never marks
// its document as done.
func (l *Ledger) KnownIDs() map[string]struct{} {
	known := make(map[string]struct{})
	err := l.scan(func(line int, row []string) {
		if rec, ok := l.parseRow(line, row); ok {
			known[rec.SourceID] = struct{}{}
		}
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.logger.Error(fmt.Sprintf("Checkpoint: %v", err), "event", "ledger.read.error", "path", l.path)
		return make(map[string]struct{})
	}
	return known
}

// Records returns every well-formed evaluation in file order. A missing
// ledger is not an error.
func (l *Ledger) Records() ([]entity.Evaluation, error) {
	var out []entity.Evaluation
	err := l.scan(func(line int, row []string) {
		if rec, ok := l.parseRow(line, row); ok {
			out = append(out, rec)
		}
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return out, nil
}

func (l *Ledger) parseRow(line int, row []string) (entity.Evaluation, bool) {
	rec, err := entity.EvaluationFromRow(row)
	if err != nil {
		l.logger.Warn("ledger.row.invalid", "path", l.path, "line", line, "error", err)
		return entity.Evaluation{}, false
	}
	return rec, true
}

// scan calls fn for every data row, skipping the header. Rows never span
// lines (Append guarantees it), so each physical line is decoded on its own
// and a torn line cannot swallow the rows after it.
func (l *Ledger) scan(fn func(line int, row []string)) error {
	f, err := os.Open(l.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.Warn("ledger.close_error", "path", l.path, "error", cerr)
		}
	}()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}
		row, err := decodeRow(text)
		if err != nil {
			l.logger.Warn("ledger.row.unparsable", "path", l.path, "line", line, "error", err)
			continue
		}
		if line == 1 && isHeader(row) {
			continue
		}
		fn(line, row)
	}
	return sc.Err()
}

func decodeRow(text string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	id := strings.TrimPrefix(row[0], "\ufeff")
	return id == entity.LedgerHeader[0] || id == legacyIDColumn
}

// singleLine keeps every row on one physical line.
var singleLine = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func encodeRow(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = singleLine.Replace(v)
	}
	return out
}

// Append durably writes one evaluation. The header is written when the file
// is new or empty. A torn last line left by a crash is terminated first so
// the new row starts on its own line. The file is synced before returning.
func (l *Ledger) Append(rec entity.Evaluation) (err error) {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close ledger: %w", cerr)
		}
	}()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat ledger: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter
	w.UseCRLF = true

	switch {
	case st.Size() == 0:
		if err := w.Write(entity.LedgerHeader); err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
	default:
		torn, err := endsWithoutNewline(f, st.Size())
		if err != nil {
			return fmt.Errorf("inspect ledger tail: %w", err)
		}
		if torn {
			l.logger.Warn("ledger.tail.repaired", "path", l.path, "size", st.Size())
			buf.WriteString("\r\n")
		}
	}

	if err := w.Write(encodeRow(rec.Row())); err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode row: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}
	return nil
}

func endsWithoutNewline(f *os.File, size int64) (bool, error) {
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

// Reset deletes the ledger, discarding all resume state.
func (l *Ledger) Reset() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove ledger: %w", err)
	}
	l.logger.Info("ledger.reset", "path", l.path)
	return nil
}
