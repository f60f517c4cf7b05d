// Package export writes solved traces to PDF, spreadsheet, CAD and JSON
// files.
package export

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/RodCut/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	contentWidth = pageWidth - marginLeft - marginRight
	rodHeight    = 14.0
)

// pdfReplacer maps glyphs the core fonts lack onto ASCII.
var pdfReplacer = strings.NewReplacer(
	"→", "->",
	"←", "<-",
	"✓ ", "",
	"✓", "",
	"…", "...",
)

// ExportPDF generates a report for a solved trace: a summary page with the
// price table, DP table and rod diagram, followed by the full step log.
func ExportPDF(path string, trace *model.Trace, settings model.CutSettings) error {
	if trace == nil || trace.Len() == 0 {
		return fmt.Errorf("no trace to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(pdfReplacer.Replace(s)) }

	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()
	renderSummaryPage(pdf, trace, settings, text)

	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()
	renderStepLog(pdf, trace, text)

	return pdf.OutputFileAndClose(path)
}

func renderSummaryPage(pdf *fpdf.Fpdf, trace *model.Trace, settings model.CutSettings, text func(string) string) {
	problem := trace.Problem()
	summary := trace.Summary()
	pieces := trace.Pieces()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Rod Cutting Report", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight, pageWidth-marginRight, marginTop+headerHeight)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Rod Length", model.Units(problem.RodLength)},
		{"Maximum Profit", fmt.Sprintf("$%d", summary.MaxProfit)},
		{"Optimal Pieces", model.JoinInts(pieces, " + ")},
		{"Cuts Needed", fmt.Sprintf("%d", len(pieces)-1)},
		{"Total Steps", fmt.Sprintf("%d", summary.TotalSteps)},
		{"Comparisons", fmt.Sprintf("%d", summary.TotalComparisons)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(45, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 4
	lengths := make([]string, problem.RodLength)
	prices := make([]string, problem.RodLength)
	for i, price := range problem.Prices {
		lengths[i] = fmt.Sprintf("%d", i+1)
		prices[i] = fmt.Sprintf("$%d", price)
	}
	y = renderTable(pdf, y, "Price Table", []tableRow{
		{Label: "Length", Cells: lengths},
		{Label: "Price", Cells: prices},
	})

	dp, cut := trace.DP(), trace.Cuts()
	rows := []tableRow{{Label: "Length i"}, {Label: "dp[i]"}, {Label: "cut[i]"}}
	for i := range dp {
		rows[0].Cells = append(rows[0].Cells, fmt.Sprintf("%d", i))
		rows[1].Cells = append(rows[1].Cells, fmt.Sprintf("%d", dp[i]))
		rows[2].Cells = append(rows[2].Cells, fmt.Sprintf("%d", cut[i]))
	}
	y = renderTable(pdf, y+4, "DP Table", rows)

	renderRodDiagram(pdf, y+6, problem, pieces, settings, text)

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by RodCut - Rod Cutting DP Visualizer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

type tableRow struct {
	Label string
	Cells []string
}

// renderTable draws a horizontal table with a shaded label column.
func renderTable(pdf *fpdf.Fpdf, y float64, title string, rows []tableRow) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 8

	cols := 1
	for _, r := range rows {
		cols = max(cols, len(r.Cells))
	}
	labelW := 22.0
	colW := min((contentWidth-labelW)/float64(cols), 16)

	for _, r := range rows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(labelW, 6, r.Label, "1", 0, "C", true, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for i, value := range r.Cells {
			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.CellFormat(colW, 6, value, "1", 0, "C", true, 0, "")
		}
		y += 6
	}
	return y
}

// renderRodDiagram draws the rod split into its optimal pieces, coloured by
// piece length.
func renderRodDiagram(pdf *fpdf.Fpdf, y float64, problem model.Problem, pieces []int, settings model.CutSettings, text func(string) string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Optimal Cut", "", 0, "L", false, 0, "")
	y += 9

	scale := contentWidth / float64(problem.RodLength)
	x := marginLeft
	for _, piece := range pieces {
		w := float64(piece) * scale
		col := model.PieceColor(piece)

		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, rodHeight, "FD")

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetXY(x, y+rodHeight/2-3)
		pdf.CellFormat(w, 6, fmt.Sprintf("%d", piece), "", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(x, y+rodHeight+1)
		pdf.CellFormat(w, 5, fmt.Sprintf("$%d", problem.PriceOf(piece)), "", 0, "C", false, 0, "")
		x += w
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, y+rodHeight+7)
	note := fmt.Sprintf("Stock length %.0f mm at %.0f mm per unit, kerf %.1f mm",
		float64(problem.RodLength)*settings.UnitLength, settings.UnitLength, settings.KerfWidth)
	pdf.CellFormat(contentWidth, 4, text(note), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderStepLog lists every step with its explanation. Page breaks are
// automatic.
func renderStepLog(pdf *fpdf.Fpdf, trace *model.Trace, text func(string) string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Step Log", "", 1, "L", false, 0, "")

	colWidths := []float64{14, 26, 18, contentWidth - 58}
	headers := []string{"#", "Phase", "Compares", "Explanation"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 8)
	for i, step := range trace.Steps() {
		y := pdf.GetY()
		lines := pdf.SplitLines([]byte(text(step.Explanation)), colWidths[3]-2)
		h := float64(max(len(lines), 1)) * 4
		if y+h > pageHeight-marginBottom {
			pdf.AddPage()
			y = pdf.GetY()
		}

		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(colWidths[0], h, fmt.Sprintf("%d", i), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[1], h, string(step.Phase), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], h, fmt.Sprintf("%d", step.Comparisons), "1", 0, "C", false, 0, "")
		pdf.MultiCell(colWidths[3], 4, text(step.Explanation), "1", "L", false)
		pdf.SetY(y + h)
	}
}
