package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

// progressObserver drives a terminal progress bar from pipeline callbacks.
type progressObserver struct {
	bar     *pterm.ProgressbarPrinter
	verbose bool
}

func newProgressObserver(total int, verbose bool) *progressObserver {
	p := &progressObserver{verbose: verbose}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Evaluating").
		Start()
	if err == nil {
		p.bar = bar
	}
	return p
}

func (p *progressObserver) ItemStarted(index, total int, item entity.WorkItem) {
	if p.verbose {
		pterm.Printfln("%d/%d: %s", index+1, total, item.ID)
	}
	if p.bar != nil {
		p.bar.UpdateTitle(shorten(item.ID, 40))
	}
}

func (p *progressObserver) ItemFinished(_, _ int, rec entity.Evaluation, outcome constants.Outcome) {
	if p.verbose {
		if outcome == constants.OutcomeOK {
			pterm.Success.Printfln("%s: %d/100", rec.SourceID, rec.Score)
		} else {
			pterm.Warning.Printfln("%s: %s (%s)", rec.SourceID, rec.CaseNumber, rec.Justification)
		}
	}
	if p.bar != nil {
		p.bar.Increment()
	}
}

func (p *progressObserver) Stop() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
	}
}

func shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return fmt.Sprintf("%s...", string(r[:max-3]))
}
