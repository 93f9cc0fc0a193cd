// Package report computes the figures shown after a run and by the status
// command.
package report

import (
	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

// ScoreStats summarises successful scores. The zero value means "no scores".
type ScoreStats struct {
	Count int
	Mean  float64
	Min   int
	Max   int
}

func NewScoreStats(scores []int) ScoreStats {
	if len(scores) == 0 {
		return ScoreStats{}
	}
	s := ScoreStats{Count: len(scores), Min: scores[0], Max: scores[0]}
	sum := 0
	for _, v := range scores {
		sum += v
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	s.Mean = float64(sum) / float64(len(scores))
	return s
}

// Status is the state of a directory relative to a ledger.
type Status struct {
	Documents int // documents in the directory
	Processed int // distinct identifiers in the ledger
	Remaining int // documents not yet in the ledger
	Errors    int // ledger rows with an error outcome
	Outcomes  map[constants.Outcome]int
	Scores    ScoreStats
}

// ProcessedRatio is Processed/Documents, 0 when the directory is empty.
func (s Status) ProcessedRatio() float64 {
	if s.Documents == 0 {
		return 0
	}
	return float64(s.Processed) / float64(s.Documents)
}

// NewStatus combines the directory listing with the ledger content.
func NewStatus(documents []entity.WorkItem, records []entity.Evaluation) Status {
	st := Status{Documents: len(documents), Outcomes: make(map[constants.Outcome]int)}

	seen := make(map[string]struct{}, len(records))
	var scores []int
	for _, r := range records {
		seen[r.SourceID] = struct{}{}
		o := r.Outcome()
		st.Outcomes[o]++
		if o == constants.OutcomeOK {
			scores = append(scores, r.Score)
		} else {
			st.Errors++
		}
	}
	st.Processed = len(seen)
	for _, d := range documents {
		if _, ok := seen[d.ID]; !ok {
			st.Remaining++
		}
	}
	st.Scores = NewScoreStats(scores)
	return st
}
