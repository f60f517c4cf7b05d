package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/playback"
)

// formulaPanel shows the recurrence for the row being filled.
type formulaPanel struct {
	container *fyne.Container
}

func newFormulaPanel() *formulaPanel {
	return &formulaPanel{container: container.NewVBox()}
}

func (f *formulaPanel) idle(text string) {
	f.container.RemoveAll()
	msg := widget.NewLabel(text)
	msg.Wrapping = fyne.TextWrapWord
	f.container.Add(msg)
	f.container.Refresh()
}

func (f *formulaPanel) show(step model.Step) {
	if !step.HasFormula() {
		if step.Phase == model.PhaseComplete || step.Phase == model.PhaseTraceback {
			f.idle("Algorithm complete. The DP table holds all optimal values.")
		} else {
			f.idle("Comparisons appear here once the first row is being filled.")
		}
		return
	}

	f.container.RemoveAll()
	f.container.Add(widget.NewLabelWithStyle(step.FormulaTarget(), fyne.TextAlignLeading,
		fyne.TextStyle{Bold: true, Monospace: true}))
	for _, row := range step.Formula {
		style := fyne.TextStyle{Monospace: true}
		label := widget.NewLabelWithStyle(row.String(), fyne.TextAlignLeading, style)
		if step.IsCurrent(row) {
			label.TextStyle.Bold = true
			label.Importance = widget.HighImportance
		} else if row.IsBest {
			label.Importance = widget.SuccessImportance
		}
		f.container.Add(label)
	}
	if res := step.FormulaResult(); res != "" {
		f.container.Add(widget.NewSeparator())
		f.container.Add(widget.NewLabelWithStyle(res, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	}
	f.container.Refresh()
}

// pseudocodePanel lists the algorithm and highlights the lines a step executes.
type pseudocodePanel struct {
	container *fyne.Container
	marks     []*canvas.Rectangle
}

func newPseudocodePanel(lines []string) *pseudocodePanel {
	p := &pseudocodePanel{container: container.NewVBox()}
	for i, line := range lines {
		mark := canvas.NewRectangle(color.Transparent)
		text := widget.NewLabelWithStyle(fmt.Sprintf("%d  %s", i+1, line), fyne.TextAlignLeading,
			fyne.TextStyle{Monospace: true})
		p.marks = append(p.marks, mark)
		p.container.Add(container.NewStack(mark, text))
	}
	return p
}

func (p *pseudocodePanel) highlight(lines []int) {
	on := make(map[int]bool, len(lines))
	for _, l := range lines {
		on[l] = true
	}
	hl := theme.Color(theme.ColorNameSelection)
	for i, mark := range p.marks {
		if on[i] {
			mark.FillColor = hl
		} else {
			mark.FillColor = color.Transparent
		}
		mark.Refresh()
	}
}

// statsPanel shows the running counters of the trace.
type statsPanel struct {
	container   *fyne.Container
	steps       *widget.Label
	comparisons *widget.Label
	cuts        *widget.Label
	maxProfit   *widget.Label
}

func newStatsPanel() *statsPanel {
	s := &statsPanel{
		steps:       widget.NewLabel(""),
		comparisons: widget.NewLabel(""),
		cuts:        widget.NewLabel(""),
		maxProfit:   widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	}
	s.container = container.NewGridWithColumns(2,
		widget.NewLabel("Steps"), s.steps,
		widget.NewLabel("Comparisons"), s.comparisons,
		widget.NewLabel("Pieces"), s.cuts,
		widget.NewLabel("Max Profit"), s.maxProfit,
	)
	s.clear()
	return s
}

func (s *statsPanel) clear() {
	for _, l := range []*widget.Label{s.steps, s.comparisons, s.cuts, s.maxProfit} {
		l.SetText("—")
	}
}

func (s *statsPanel) show(ev playback.Event) {
	step := ev.Step
	s.steps.SetText(fmt.Sprintf("%d", ev.Total))
	s.comparisons.SetText(fmt.Sprintf("%d", step.Comparisons))
	if step.Pieces != nil {
		s.cuts.SetText(fmt.Sprintf("%d", len(step.Pieces)))
	} else {
		s.cuts.SetText("—")
	}
	if step.Phase == model.PhaseComplete {
		s.maxProfit.SetText(fmt.Sprintf("$%d", step.MaxProfit))
	} else {
		s.maxProfit.SetText("—")
	}
}
