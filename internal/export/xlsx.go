package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

const xlsxSheet = "Evaluations"

func (s *Service) writeXLSX(recs []entity.Evaluation, out string) error {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("export.xlsx.close_error", "error", err)
		}
	}()

	// Rename the default sheet instead of leaving an empty "Sheet1" behind.
	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range entity.LedgerHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(xlsxSheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(xlsxSheet, cell, v)
		}
		write(1, r.SourceID)
		write(2, r.CaseNumber)
		write(3, r.Score) // numeric so spreadsheets can sort and average
		write(4, r.Category)
		write(5, string(r.Flag))
		write(6, string(r.Classification))
		write(7, r.Justification)
		write(8, r.Timestamp.Format(constants.TimestampLayout))
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(xlsxSheet, "A", "A", 32) // file
	_ = f.SetColWidth(xlsxSheet, "B", "B", 20) // case number
	_ = f.SetColWidth(xlsxSheet, "C", "F", 14)
	_ = f.SetColWidth(xlsxSheet, "G", "G", 60) // justification
	_ = f.SetColWidth(xlsxSheet, "H", "H", 20) // timestamp
	_ = f.SetPanes(xlsxSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"out", out,
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
