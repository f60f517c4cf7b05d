package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RodCut/internal/model"
)

// CellState is how one row of the DP table is highlighted.
type CellState int

const (
	CellEmpty     CellState = iota // not computed yet
	CellFilled                     // holds its final value
	CellActive                     // the row being computed or traced
	CellRemainder                  // the dp[i-j] being read by the current comparison
	CellTarget                     // the row the traceback moves to next
	CellOptimal                    // on the optimal path after completion
)

// RowState classifies row i of the table for step.
func RowState(step model.Step, i int) CellState {
	switch step.Phase {
	case model.PhaseInit:
		if i == 0 {
			return CellFilled
		}
		return CellEmpty
	case model.PhaseComparing:
		switch {
		case i == step.ActiveRow:
			return CellActive
		case i == step.ActiveRow-step.ComparingJ:
			return CellRemainder
		}
	case model.PhaseFilled:
		if i == step.ActiveRow {
			return CellActive
		}
	case model.PhaseTraceback:
		switch {
		case i == step.ActiveRow:
			return CellActive
		case i == step.TargetRow:
			return CellTarget
		}
	case model.PhaseComplete:
		if onPath(step, i) {
			return CellOptimal
		}
		return CellFilled
	default:
		return CellEmpty
	}
	if i <= step.FilledUpTo {
		return CellFilled
	}
	return CellEmpty
}

// onPath reports whether row i is visited by the traceback of a complete step.
func onPath(step model.Step, i int) bool {
	if len(step.DP) == 0 {
		return false
	}
	rest := len(step.DP) - 1
	if i == rest {
		return true
	}
	for _, piece := range step.Pieces {
		rest -= piece
		if i == rest && rest > 0 {
			return true
		}
	}
	return false
}

var cellColors = map[CellState]color.NRGBA{
	CellEmpty:     {R: 241, G: 245, B: 249, A: 255},
	CellFilled:    {R: 219, G: 234, B: 254, A: 255},
	CellActive:    {R: 253, G: 230, B: 138, A: 255},
	CellRemainder: {R: 191, G: 219, B: 254, A: 255},
	CellTarget:    {R: 187, G: 247, B: 208, A: 255},
	CellOptimal:   {R: 134, G: 239, B: 172, A: 255},
}

// DPTable draws the price, dp and cut columns for rod lengths 0..n.
type DPTable struct {
	widget.BaseWidget
	prices []int
	step   model.Step
}

func NewDPTable() *DPTable {
	t := &DPTable{}
	t.ExtendBaseWidget(t)
	return t
}

// SetPrices changes the table's row count and clears the step.
func (t *DPTable) SetPrices(prices []int) {
	t.prices = append([]int(nil), prices...)
	t.step = model.Step{}
	t.Refresh()
}

func (t *DPTable) SetStep(s model.Step) {
	t.step = s
	t.Refresh()
}

func (t *DPTable) CreateRenderer() fyne.WidgetRenderer {
	r := &dpTableRenderer{t: t}
	r.rebuild()
	return r
}

const (
	dpCellW = 54
	dpCellH = 24
)

var dpHeaders = []string{"i", "price", "dp[i]", "cut[i]"}

type dpTableRenderer struct {
	t       *DPTable
	objects []fyne.CanvasObject
}

func (r *dpTableRenderer) rebuild() {
	r.objects = nil
	text := color.NRGBA{R: 15, G: 23, B: 42, A: 255}

	for c, h := range dpHeaders {
		r.cell(c, 0, h, color.NRGBA{R: 203, G: 213, B: 225, A: 255}, text, true)
	}

	step := r.t.step
	for i := 0; i <= len(r.t.prices); i++ {
		state := CellEmpty
		if step.Phase != "" {
			state = RowState(step, i)
		}
		bg := cellColors[state]

		price := "–"
		if i > 0 {
			price = fmt.Sprintf("%d", r.t.prices[i-1])
		}
		dp, cut := "", ""
		if state != CellEmpty && i < len(step.DP) {
			dp = fmt.Sprintf("%d", step.DP[i])
			if i > 0 {
				cut = fmt.Sprintf("%d", step.Cut[i])
			}
		}
		if state == CellActive && step.Phase == model.PhaseComparing {
			dp = fmt.Sprintf("≥%d", step.BestSoFar)
			cut = ""
		}

		row := i + 1
		r.cell(0, row, fmt.Sprintf("%d", i), bg, text, true)
		r.cell(1, row, price, bg, text, false)
		r.cell(2, row, dp, bg, text, state == CellActive || state == CellOptimal)
		r.cell(3, row, cut, bg, text, false)
	}
}

func (r *dpTableRenderer) cell(col, row int, s string, bg, fg color.NRGBA, bold bool) {
	x, y := float32(col*dpCellW), float32(row*dpCellH)

	rect := canvas.NewRectangle(bg)
	rect.StrokeColor = color.NRGBA{R: 148, G: 163, B: 184, A: 255}
	rect.StrokeWidth = 1
	rect.Resize(fyne.NewSize(dpCellW, dpCellH))
	rect.Move(fyne.NewPos(x, y))
	r.objects = append(r.objects, rect)

	if s == "" {
		return
	}
	label := canvas.NewText(s, fg)
	label.TextSize = 12
	label.TextStyle = fyne.TextStyle{Bold: bold, Monospace: true}
	size := label.MinSize()
	label.Move(fyne.NewPos(x+(dpCellW-size.Width)/2, y+(dpCellH-size.Height)/2))
	r.objects = append(r.objects, label)
}

func (r *dpTableRenderer) Layout(size fyne.Size) {}

func (r *dpTableRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(len(dpHeaders)*dpCellW), float32((len(r.t.prices)+2)*dpCellH))
}

func (r *dpTableRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.t)
}

func (r *dpTableRenderer) Destroy() {}

func (r *dpTableRenderer) Objects() []fyne.CanvasObject { return r.objects }
