package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/joseph-ayodele/dossier-eval/internal/entity"
	"github.com/joseph-ayodele/dossier-eval/internal/pipeline"
	"github.com/joseph-ayodele/dossier-eval/internal/report"
)

func renderTable(data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

func renderPlan(plan pipeline.Plan) error {
	return renderTable(pterm.TableData{
		{"Metric", "Value"},
		{"Total PDF", strconv.Itoa(len(plan.Items))},
		{"Already evaluated", strconv.Itoa(len(plan.Items) - len(plan.Remaining))},
		{"Remaining", strconv.Itoa(len(plan.Remaining))},
	})
}

func renderSummary(sum pipeline.Summary, ledgerPath string) error {
	data := pterm.TableData{
		{"Metric", "Value"},
		{"Processed", strconv.Itoa(sum.Processed)},
		{"Errors", strconv.Itoa(sum.Errors)},
	}
	if sum.WriteFailures > 0 {
		data = append(data, []string{"Ledger write failures", strconv.Itoa(sum.WriteFailures)})
	}
	data = append(data, scoreRows(sum.Scores)...)
	data = append(data,
		[]string{"Duration", sum.Duration.Round(time.Second).String()},
		[]string{"Ledger", ledgerPath},
	)
	return renderTable(data)
}

func renderStatus(dir, absDir string, st report.Status) error {
	data := pterm.TableData{
		{"Metric", "Value", "Details"},
		{"Directory", dir, absDir},
		{"Total PDF", strconv.Itoa(st.Documents), "found"},
		{"Evaluated", strconv.Itoa(st.Processed), fmt.Sprintf("%.1f%%", st.ProcessedRatio()*100)},
		{"Remaining", strconv.Itoa(st.Remaining), "to evaluate"},
		{"Errors", strconv.Itoa(st.Errors), "degraded rows"},
	}
	for i, row := range scoreRows(st.Scores) {
		detail := ""
		if i == 0 {
			detail = fmt.Sprintf("%d scores", st.Scores.Count)
		}
		data = append(data, append(row, detail))
	}
	return renderTable(data)
}

func scoreRows(s report.ScoreStats) [][]string {
	if s.Count == 0 {
		return nil
	}
	return [][]string{
		{"Mean", fmt.Sprintf("%.1f/100", s.Mean)},
		{"Max", fmt.Sprintf("%d/100", s.Max)},
		{"Min", fmt.Sprintf("%d/100", s.Min)},
	}
}

func renderRecord(rec entity.Evaluation) error {
	data := pterm.TableData{{"Column", "Value"}}
	for i, v := range rec.Row() {
		data = append(data, []string{entity.LedgerHeader[i], v})
	}
	return renderTable(data)
}
