package export

import (
	"bytes"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

type staticSource struct {
	recs []entity.Evaluation
	err  error
}

func (s staticSource) Records() ([]entity.Evaluation, error) { return s.recs, s.err }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var at = time.Date(2025, 2, 3, 4, 5, 6, 0, time.Local)

func sampleRecords() []entity.Evaluation {
	return []entity.Evaluation{
		{
			SourceID: "a.pdf", CaseNumber: "123456P0", Score: 87, Category: "Général",
			Flag: constants.FlagYes, Classification: constants.ClassHuman,
			Justification: "Bon dossier", Timestamp: at,
		},
		entity.FailedEvaluation("b.pdf", constants.OutcomeExtractionError, at),
		{
			SourceID: "a.pdf", CaseNumber: "123456P0", Score: 90, Category: "Général",
			Flag: constants.FlagYes, Classification: constants.ClassHuman,
			Justification: "Réévalué", Timestamp: at,
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestService_ExportXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")
	svc := NewService(staticSource{recs: sampleRecords()}, quietLogger())

	n, err := svc.Export(FormatXLSX, out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxSheet}, f.GetSheetList())
	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, entity.LedgerHeader, rows[0])
	assert.Equal(t, []string{"a.pdf", "123456P0", "87", "Général", "OUI", "HUMAIN", "Bon dossier", "2025-02-03 04:05:06"}, rows[1])
	assert.Equal(t, "ERREUR_EXTRACTION", rows[2][1])
}

func TestService_ExportSQLite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.db")
	svc := NewService(staticSource{recs: sampleRecords()}, quietLogger())

	n, err := svc.Export(FormatSQLite, out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	db, err := sql.Open("sqlite", out)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM evaluations`).Scan(&count))
	assert.Equal(t, 2, count)

	var score int
	var justification, outcome string
	require.NoError(t, db.QueryRow(
		`SELECT score, justification, outcome FROM evaluations WHERE source_filename = ?`, "a.pdf",
	).Scan(&score, &justification, &outcome))
	assert.Equal(t, 90, score)
	assert.Equal(t, "Réévalué", justification)
	assert.Equal(t, string(constants.OutcomeOK), outcome)

	require.NoError(t, db.QueryRow(
		`SELECT outcome FROM evaluations WHERE source_filename = ?`, "b.pdf",
	).Scan(&outcome))
	assert.Equal(t, string(constants.OutcomeExtractionError), outcome)

	// Exporting again is idempotent.
	_, err = svc.Export(FormatSQLite, out)
	require.NoError(t, err)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM evaluations`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestService_ExportSourceError(t *testing.T) {
	svc := NewService(staticSource{err: errors.New("boom")}, quietLogger())
	_, err := svc.Export(FormatXLSX, filepath.Join(t.TempDir(), "x.xlsx"))
	assert.Error(t, err)
}

func TestService_ExportSQLite_ClosesCleanly(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
	svc := NewService(staticSource{recs: sampleRecords()}, logger)

	_, err := svc.Export(FormatSQLite, filepath.Join(t.TempDir(), "report.db"))
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "close_error")
}
