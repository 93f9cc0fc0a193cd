package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

// LedgerHeader is the fixed column order of a ledger row.
var LedgerHeader = []string{
	"source_filename",
	"case_number",
	"score",
	"category",
	"flag",
	"classification",
	"justification",
	"timestamp",
}

// Evaluation is one ledger row: the outcome of evaluating a single document.
// Every field is always populated; failures carry sentinel values.
type Evaluation struct {
	SourceID       string                   `json:"source_filename"`
	CaseNumber     string                   `json:"case_number"`
	Score          int                      `json:"score"`
	Category       string                   `json:"category"`
	Flag           constants.Flag           `json:"flag"`
	Classification constants.Classification `json:"classification"`
	Justification  string                   `json:"justification"`
	Timestamp      time.Time                `json:"timestamp"`
}

// FailedEvaluation builds the degraded record written when an item could not
// be scored.
func FailedEvaluation(sourceID string, outcome constants.Outcome, at time.Time) Evaluation {
	caseNumber, reason := constants.CaseInferenceError, constants.ReasonInvalidAIAnswer
	switch outcome {
	case constants.OutcomeExtractionError:
		caseNumber, reason = constants.CaseExtractionError, constants.ReasonUnreadablePDF
	case constants.OutcomeInferenceError:
		reason = constants.ReasonServiceDown
	}
	return Evaluation{
		SourceID:       sourceID,
		CaseNumber:     caseNumber.String(),
		Score:          0,
		Category:       constants.CategoryUnknown.String(),
		Flag:           constants.FlagNo,
		Classification: constants.ClassUncertain,
		Justification:  reason.String(),
		Timestamp:      at,
	}
}

// Outcome derives how the evaluation ended from its sentinel fields.
func (e Evaluation) Outcome() constants.Outcome {
	switch {
	case e.CaseNumber == constants.CaseExtractionError.String():
		return constants.OutcomeExtractionError
	case e.CaseNumber == constants.CaseInferenceError.String() &&
		e.Justification == constants.ReasonServiceDown.String():
		return constants.OutcomeInferenceError
	case e.CaseNumber == constants.CaseInferenceError.String():
		return constants.OutcomeParseError
	default:
		return constants.OutcomeOK
	}
}

// Failed reports whether the record is an error row.
func (e Evaluation) Failed() bool {
	return e.Outcome() != constants.OutcomeOK
}

// Row renders the evaluation in LedgerHeader order.
func (e Evaluation) Row() []string {
	return []string{
		e.SourceID,
		e.CaseNumber,
		strconv.Itoa(e.Score),
		e.Category,
		string(e.Flag),
		string(e.Classification),
		e.Justification,
		e.Timestamp.Format(constants.TimestampLayout),
	}
}

// EvaluationFromRow parses a ledger row. The row must have exactly the
// LedgerHeader arity.
func EvaluationFromRow(row []string) (Evaluation, error) {
	if len(row) != len(LedgerHeader) {
		return Evaluation{}, fmt.Errorf("ledger row: want %d columns, got %d", len(LedgerHeader), len(row))
	}
	score, err := strconv.Atoi(row[2])
	if err != nil {
		return Evaluation{}, fmt.Errorf("ledger row %q: score: %w", row[0], err)
	}
	ts, err := time.ParseInLocation(constants.TimestampLayout, row[7], time.Local)
	if err != nil {
		return Evaluation{}, fmt.Errorf("ledger row %q: timestamp: %w", row[0], err)
	}
	return Evaluation{
		SourceID:       row[0],
		CaseNumber:     row[1],
		Score:          score,
		Category:       row[3],
		Flag:           constants.Flag(row[4]),
		Classification: constants.Classification(row[5]),
		Justification:  row[6],
		Timestamp:      ts,
	}, nil
}
