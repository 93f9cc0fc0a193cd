package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/common"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
	"github.com/joseph-ayodele/dossier-eval/internal/extract"
	"github.com/joseph-ayodele/dossier-eval/internal/llm"
	"github.com/joseph-ayodele/dossier-eval/internal/report"
)

// Ledger is the checkpoint store: read once per run, appended once per item.
type Ledger interface {
	KnownIDs() map[string]struct{}
	Append(rec entity.Evaluation) error
}

// Processor coordinates extraction, scoring and persistence, one document at a time.
type Processor struct {
	logger    *slog.Logger
	extractor extract.TextExtractor
	scorer    llm.Scorer
	ledger    Ledger
	now       func() time.Time
}

func NewProcessor(logger *slog.Logger, extractor extract.TextExtractor, scorer llm.Scorer, ledger Ledger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, extractor: extractor, scorer: scorer, ledger: ledger, now: time.Now}
}

// WithClock overrides the timestamp source.
func (p *Processor) WithClock(now func() time.Time) *Processor {
	p.now = now
	return p
}

// Summary describes one Run.
type Summary struct {
	RunID         string
	Planned       int
	Processed     int // items evaluated, whether or not the append succeeded
	Recorded      int // successful appends
	WriteFailures int
	Errors        int // items recorded with an error outcome
	Outcomes      map[constants.Outcome]int
	Scores        report.ScoreStats
	Interrupted   bool
	Duration      time.Duration
}

// Plan enumerates dir and removes everything the ledger already holds.
func (p *Processor) Plan(dir string) (Plan, error) {
	items, err := Enumerate(dir)
	if err != nil {
		return Plan{}, err
	}
	known := p.ledger.KnownIDs()
	plan := Plan{Dir: dir, Items: items, Known: len(known), Remaining: Remaining(items, known)}
	p.logger.Info("pipeline.plan",
		"dir", dir,
		"documents", len(plan.Items),
		"known", plan.Known,
		"remaining", len(plan.Remaining),
	)
	return plan, nil
}

// Run processes plan.Remaining in order. Every dequeued item produces exactly
// one append. Cancelling ctx stops the run between items; the item in flight
// finishes with a detached context so its record is not an artefact of the
// interrupt.
func (p *Processor) Run(ctx context.Context, plan Plan, obs Observer) Summary {
	if obs == nil {
		obs = nopObserver{}
	}
	start := time.Now()
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	logger := p.logger.With("run_id", runID)

	total := len(plan.Remaining)
	sum := Summary{RunID: runID, Planned: total, Outcomes: make(map[constants.Outcome]int)}
	var scores []int

	logger.Info("pipeline.run.start", "dir", plan.Dir, "planned", total)
	for i, item := range plan.Remaining {
		if ctx.Err() != nil {
			sum.Interrupted = true
			logger.Warn("pipeline.run.interrupted", "done", i, "planned", total)
			break
		}
		obs.ItemStarted(i, total, item)

		itemCtx := common.WithItemID(context.WithoutCancel(ctx), item.ID)
		rec, outcome := p.evaluate(itemCtx, logger.With("item", item.ID), item)

		sum.Processed++
		sum.Outcomes[outcome]++
		if outcome == constants.OutcomeOK {
			scores = append(scores, rec.Score)
		} else {
			sum.Errors++
		}

		if err := p.ledger.Append(rec); err != nil {
			sum.WriteFailures++
			logger.Error(fmt.Sprintf("Sauvegarde %s: %v", item.ID, err), "event", "pipeline.item.write_failed", "item", item.ID)
		} else {
			sum.Recorded++
			logger.Info("pipeline.item.state", "item", item.ID, "state", constants.ItemRecorded, "outcome", outcome, "score", rec.Score)
		}
		obs.ItemFinished(i, total, rec, outcome)
	}

	sum.Scores = report.NewScoreStats(scores)
	sum.Duration = time.Since(start)
	logger.Info("pipeline.run.done",
		"processed", sum.Processed,
		"recorded", sum.Recorded,
		"errors", sum.Errors,
		"write_failures", sum.WriteFailures,
		"interrupted", sum.Interrupted,
		"elapsed_ms", sum.Duration.Milliseconds(),
	)
	return sum
}

// Evaluate runs one item through extraction, scoring and parsing without
// touching the ledger.
func (p *Processor) Evaluate(ctx context.Context, item entity.WorkItem) (entity.Evaluation, constants.Outcome) {
	return p.evaluate(ctx, p.logger.With("item", item.ID), item)
}

// evaluate never panics: whatever goes wrong becomes a degraded record.
func (p *Processor) evaluate(ctx context.Context, logger *slog.Logger, item entity.WorkItem) (rec entity.Evaluation, outcome constants.Outcome) {
	state := constants.ItemPending
	advance := func(s constants.ItemState) {
		state = s
		logger.Debug("pipeline.item.state", "state", s)
	}
	defer func() {
		if r := recover(); r != nil {
			outcome = constants.OutcomeInferenceError
			if state == constants.ItemPending || state == constants.ItemExtracting {
				outcome = constants.OutcomeExtractionError
			}
			logger.Error(fmt.Sprintf("panic while processing %s: %v", item.ID, r), "event", "pipeline.item.panic", "state", state)
			rec = entity.FailedEvaluation(item.ID, outcome, p.now())
		}
	}()

	advance(constants.ItemExtracting)
	text := p.extractor.ExtractText(ctx, item.Path)
	if strings.TrimSpace(text) == "" {
		advance(constants.ItemExtractionFailed)
		return entity.FailedEvaluation(item.ID, constants.OutcomeExtractionError, p.now()), constants.OutcomeExtractionError
	}
	advance(constants.ItemExtracted)

	advance(constants.ItemScoring)
	reply, ok := p.scorer.Score(ctx, text)
	if !ok {
		advance(constants.ItemScoreFailed)
		return entity.FailedEvaluation(item.ID, constants.OutcomeInferenceError, p.now()), constants.OutcomeInferenceError
	}

	v, err := llm.ParseReply(reply)
	if err != nil {
		advance(constants.ItemScoreFailed)
		logger.Error(fmt.Sprintf("Parser %s: %v", item.ID, err), "event", "pipeline.item.parse_failed", "reply", truncateReply(reply))
		return entity.FailedEvaluation(item.ID, constants.OutcomeParseError, p.now()), constants.OutcomeParseError
	}
	advance(constants.ItemParsed)

	return entity.Evaluation{
		SourceID:       item.ID,
		CaseNumber:     v.CaseNumber,
		Score:          v.Score,
		Category:       v.Category,
		Flag:           v.Flag,
		Classification: v.Classification,
		Justification:  v.Justification,
		Timestamp:      p.now(),
	}, constants.OutcomeOK
}

func truncateReply(s string) string {
	const max = 300
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
