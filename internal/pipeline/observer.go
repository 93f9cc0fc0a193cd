package pipeline

import (
	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

// Observer is notified around each item, e.g. to drive a progress bar.
// index is zero-based; total is the number of items planned for the run.
type Observer interface {
	ItemStarted(index, total int, item entity.WorkItem)
	ItemFinished(index, total int, rec entity.Evaluation, outcome constants.Outcome)
}

type nopObserver struct{}

func (nopObserver) ItemStarted(int, int, entity.WorkItem) {}

func (nopObserver) ItemFinished(int, int, entity.Evaluation, constants.Outcome) {}
