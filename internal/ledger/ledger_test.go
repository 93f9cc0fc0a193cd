package ledger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "ledger.csv"), quietLogger())
}

var ts = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

func okRecord(id string, score int) entity.Evaluation {
	return entity.Evaluation{
		SourceID:       id,
		CaseNumber:     "123456P0",
		Score:          score,
		Category:       "Général",
		Flag:           constants.FlagYes,
		Classification: constants.ClassHuman,
		Justification:  "Bon dossier; projet cohérent",
		Timestamp:      ts,
	}
}

func TestLedger_MissingFileIsEmpty(t *testing.T) {
	l := newTestLedger(t)
	assert.False(t, l.Exists())
	assert.Empty(t, l.KnownIDs())

	recs, err := l.Records()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLedger_AppendWritesHeaderOnce(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Append(okRecord("a.pdf", 87)))
	require.NoError(t, l.Append(entity.FailedEvaluation("b.pdf", constants.OutcomeExtractionError, ts)))

	raw, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Equal(t,
		"source_filename;case_number;score;category;flag;classification;justification;timestamp\r\n"+
			"a.pdf;123456P0;87;Général;OUI;HUMAIN;\"Bon dossier; projet cohérent\";2025-03-14 09:26:53\r\n"+
			"b.pdf;ERREUR_EXTRACTION;0;INCONNU;NON;INCERTAIN;PDF illisible;2025-03-14 09:26:53\r\n",
		string(raw))
}

func TestLedger_KnownIDsAndRecordsRoundTrip(t *testing.T) {
	l := newTestLedger(t)
	want := []entity.Evaluation{
		okRecord("a.pdf", 87),
		entity.FailedEvaluation("b.pdf", constants.OutcomeInferenceError, ts),
		entity.FailedEvaluation("c.pdf", constants.OutcomeParseError, ts),
	}
	for _, r := range want {
		require.NoError(t, l.Append(r))
	}

	assert.Equal(t, map[string]struct{}{"a.pdf": {}, "b.pdf": {}, "c.pdf": {}}, l.KnownIDs())

	got, err := l.Records()
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].Row(), got[i].Row())
	}
	assert.Equal(t, constants.OutcomeInferenceError, got[1].Outcome())
	assert.Equal(t, constants.OutcomeParseError, got[2].Outcome())
}

func TestLedger_NewlinesInFieldsStayOnOneLine(t *testing.T) {
	l := newTestLedger(t)
	rec := okRecord("a.pdf", 50)
	rec.Justification = "ligne 1\r\nligne 2"
	require.NoError(t, l.Append(rec))
	require.NoError(t, l.Append(okRecord("b.pdf", 60)))

	got, err := l.Records()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ligne 1 ligne 2", got[0].Justification)
}

func TestLedger_TornTailIsIgnoredAndRepaired(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Append(okRecord("a.pdf", 87)))

	// Simulate a crash in the middle of writing the next row.
	f, err := os.OpenFile(l.Path(), os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`b.pdf;654321P1;"Bon do`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, map[string]struct{}{"a.pdf": {}}, l.KnownIDs())

	require.NoError(t, l.Append(okRecord("b.pdf", 70)))
	require.NoError(t, l.Append(okRecord("c.pdf", 71)))

	assert.Equal(t, map[string]struct{}{"a.pdf": {}, "b.pdf": {}, "c.pdf": {}}, l.KnownIDs())
	recs, err := l.Records()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 70, recs[1].Score)
}

func TestLedger_TornTimestampIsNotKnown(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Append(okRecord("a.pdf", 87)))

	// All eight columns made it to disk but the timestamp was cut short.
	f, err := os.OpenFile(l.Path(), os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("b.pdf;654321P1;70;Général;OUI;HUMAIN;Bon;2025-03-1")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, map[string]struct{}{"a.pdf": {}}, l.KnownIDs())
	recs, err := l.Records()
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	require.NoError(t, l.Append(okRecord("b.pdf", 70)))
	assert.Equal(t, map[string]struct{}{"a.pdf": {}, "b.pdf": {}}, l.KnownIDs())
	recs, err = l.Records()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "b.pdf", recs[1].SourceID)
}

func TestLedger_ReadsLegacyHeader(t *testing.T) {
	l := newTestLedger(t)
	content := "nom_fichier_pdf;numero_dossier;note_finale_100;type_baccalaureat;portes_ouvertes;detection_ia;justification_note;date_evaluation\r\n" +
		"x.pdf;1P0;12;STL;NON;HUMAIN;N/A;2024-01-02 03:04:05\r\n"
	require.NoError(t, os.WriteFile(l.Path(), []byte(content), 0o644))

	assert.Equal(t, map[string]struct{}{"x.pdf": {}}, l.KnownIDs())
}

func TestLedger_UnreadableDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	l := New(dir, quietLogger()) // a directory is not a readable ledger
	assert.Empty(t, l.KnownIDs())
}

func TestLedger_AppendFailureIsReported(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "missing-dir", "ledger.csv"), quietLogger())
	assert.Error(t, l.Append(okRecord("a.pdf", 1)))
}

func TestLedger_Reset(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Reset()) // nothing to delete

	require.NoError(t, l.Append(okRecord("a.pdf", 87)))
	require.True(t, l.Exists())

	require.NoError(t, l.Reset())
	assert.False(t, l.Exists())
	assert.Empty(t, l.KnownIDs())

	require.NoError(t, l.Append(okRecord("a.pdf", 87)))
	raw, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "source_filename;")
}
