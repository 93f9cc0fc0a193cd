package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

const createEvaluations = `
CREATE TABLE IF NOT EXISTS evaluations (
	source_filename TEXT PRIMARY KEY,
	case_number     TEXT NOT NULL,
	score           INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
	category        TEXT NOT NULL,
	flag            TEXT NOT NULL,
	classification  TEXT NOT NULL,
	justification   TEXT NOT NULL,
	timestamp       TEXT NOT NULL,
	outcome         TEXT NOT NULL
)`

// A later ledger row for the same file wins, mirroring the last-write view
// of the CSV.
const upsertEvaluation = `
INSERT INTO evaluations (source_filename, case_number, score, category, flag, classification, justification, timestamp, outcome)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source_filename) DO UPDATE SET
	case_number = excluded.case_number,
	score = excluded.score,
	category = excluded.category,
	flag = excluded.flag,
	classification = excluded.classification,
	justification = excluded.justification,
	timestamp = excluded.timestamp,
	outcome = excluded.outcome`

func (s *Service) writeSQLite(recs []entity.Evaluation, out string) (err error) {
	start := time.Now()
	ctx := context.Background()

	db, err := sql.Open("sqlite", out)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			s.logger.Warn("export.sqlite.close_error", "error", cerr)
		}
	}()

	if _, err := db.ExecContext(ctx, createEvaluations); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertEvaluation)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			s.logger.Warn("export.sqlite.stmt_close_error", "error", cerr)
		}
	}()

	for _, r := range recs {
		if _, err = stmt.ExecContext(ctx,
			r.SourceID, r.CaseNumber, r.Score, r.Category,
			string(r.Flag), string(r.Classification), r.Justification,
			r.Timestamp.Format(constants.TimestampLayout), string(r.Outcome()),
		); err != nil {
			return fmt.Errorf("insert %s: %w", r.SourceID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("export.sqlite.ok",
		"out", out,
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
