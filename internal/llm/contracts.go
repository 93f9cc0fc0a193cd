package llm

import (
	"context"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

// Scorer is the boundary to the external scoring service. Score returns the
// raw reply text; ok is false on any failure (network, status, envelope).
type Scorer interface {
	Score(ctx context.Context, text string) (reply string, ok bool)
}

// Verdict is a validated reply from the scoring service.
type Verdict struct {
	CaseNumber     string
	Score          int // always within [0,100]
	Category       string
	Flag           constants.Flag
	Classification constants.Classification
	Justification  string
}
