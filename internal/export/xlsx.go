package export

import (
	"fmt"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names. The price sheet comes first so the workbook can be
// re-imported as a price table.
const (
	SheetPrices  = "Prices"
	SheetSummary = "Summary"
	SheetDP      = "DP Table"
	SheetSteps   = "Steps"
)

// ExportXLSX writes the price table, summary, final DP table and step log
// to an Excel workbook.
func ExportXLSX(path string, trace *model.Trace) error {
	if trace == nil || trace.Len() == 0 {
		return fmt.Errorf("no trace to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPrices); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetSummary, SheetDP, SheetSteps} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	problem := trace.Problem()
	pieces := trace.Pieces()
	summary := trace.Summary()
	dp, cut := trace.DP(), trace.Cuts()

	// Prices
	rows := [][]interface{}{{"Length", "Price"}}
	for i, price := range problem.Prices {
		rows = append(rows, []interface{}{i + 1, price})
	}
	if err := writeRows(f, SheetPrices, rows, header); err != nil {
		return err
	}

	// Summary
	rows = [][]interface{}{
		{"Metric", "Value"},
		{"Rod Length", problem.RodLength},
		{"Maximum Profit", summary.MaxProfit},
		{"Optimal Pieces", model.JoinInts(pieces, " + ")},
		{"Piece Count", summary.PieceCount},
		{"Total Steps", summary.TotalSteps},
		{"Comparisons", summary.TotalComparisons},
	}
	if err := writeRows(f, SheetSummary, rows, header); err != nil {
		return err
	}

	// DP table
	rows = [][]interface{}{{"Length i", "dp[i]", "cut[i]"}}
	for i := range dp {
		rows = append(rows, []interface{}{i, dp[i], cut[i]})
	}
	if err := writeRows(f, SheetDP, rows, header); err != nil {
		return err
	}

	// Steps
	rows = [][]interface{}{{"#", "Phase", "Row", "Candidate", "Comparisons", "Filled Up To", "Explanation"}}
	for i, s := range trace.Steps() {
		row, candidate := "", ""
		if s.ActiveRow != model.NoRow {
			row = fmt.Sprintf("%d", s.ActiveRow)
		}
		if s.Phase == model.PhaseComparing {
			candidate = fmt.Sprintf("%d", s.ComparingJ)
		}
		rows = append(rows, []interface{}{i, string(s.Phase), row, candidate, s.Comparisons, s.FilledUpTo, s.Explanation})
	}
	if err := writeRows(f, SheetSteps, rows, header); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSteps, "G", "G", 100); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

// writeRows fills a sheet from row 1 and styles the first row as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to create cell reference: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
