package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RodCut/internal/model"
)

// Segment is one coloured stretch of the rod diagram, in rod units.
type Segment struct {
	Start  int
	Length int
	Color  model.RGB
	Label  string
	// Dim segments lie outside the sub-rod the current step is working on.
	Dim bool
}

// remainderColor marks the part of a sub-rod whose value comes from the table.
var remainderColor = model.RGB{R: 148, G: 163, B: 184}

// RodSegments lays out the rod of length n for step. A zero-value step
// draws the whole rod uncut.
func RodSegments(n int, step model.Step) []Segment {
	if n <= 0 {
		return nil
	}
	var segs []Segment
	whole := func(start int, label string, dim bool) {
		if start < n {
			segs = append(segs, Segment{Start: start, Length: n - start, Color: model.UncutColor, Label: label, Dim: dim})
		}
	}

	switch step.Phase {
	case model.PhaseComparing:
		i, j := step.ActiveRow, step.ComparingJ
		segs = append(segs, Segment{Start: 0, Length: j, Color: model.PieceColor(j), Label: fmt.Sprintf("%d", j)})
		if i > j {
			segs = append(segs, Segment{Start: j, Length: i - j, Color: remainderColor, Label: fmt.Sprintf("dp[%d]", i-j)})
		}
		whole(i, "", true)

	case model.PhaseFilled:
		i, best := step.ActiveRow, step.BestCut
		segs = append(segs, Segment{Start: 0, Length: best, Color: model.PieceColor(best), Label: fmt.Sprintf("%d", best)})
		if i > best {
			segs = append(segs, Segment{Start: best, Length: i - best, Color: remainderColor, Label: fmt.Sprintf("dp[%d]", i-best)})
		}
		whole(i, "", true)

	case model.PhaseTraceback, model.PhaseComplete:
		x := 0
		for _, piece := range step.Pieces {
			segs = append(segs, Segment{Start: x, Length: piece, Color: model.PieceColor(piece), Label: fmt.Sprintf("%d", piece)})
			x += piece
		}
		if x < n {
			whole(x, fmt.Sprintf("%d left", n-x), false)
		}

	default:
		whole(0, model.Units(n), false)
	}
	return segs
}

// RodCanvas draws the rod for the current step, one tick per unit.
type RodCanvas struct {
	widget.BaseWidget
	rodLength int
	step      model.Step
	maxWidth  float32
	height    float32
}

func NewRodCanvas(maxW, height float32) *RodCanvas {
	rc := &RodCanvas{maxWidth: maxW, height: height}
	rc.ExtendBaseWidget(rc)
	return rc
}

// SetRod changes the rod length and clears the step.
func (rc *RodCanvas) SetRod(n int) {
	rc.rodLength = n
	rc.step = model.Step{}
	rc.Refresh()
}

// SetStep redraws the rod for s.
func (rc *RodCanvas) SetStep(s model.Step) {
	rc.step = s
	rc.Refresh()
}

func (rc *RodCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newRodCanvasRenderer(rc)
}

type rodCanvasRenderer struct {
	rc      *RodCanvas
	objects []fyne.CanvasObject
}

func newRodCanvasRenderer(rc *RodCanvas) *rodCanvasRenderer {
	r := &rodCanvasRenderer{rc: rc}
	r.rebuild()
	return r
}

func nrgba(c model.RGB, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func (r *rodCanvasRenderer) rebuild() {
	r.objects = nil

	n := r.rc.rodLength
	if n <= 0 {
		return
	}
	unit := r.rc.maxWidth / float32(n)
	rodH := r.rc.height - 18

	for _, seg := range RodSegments(n, r.rc.step) {
		alpha := uint8(230)
		if seg.Dim {
			alpha = 90
		}
		x := float32(seg.Start) * unit
		w := float32(seg.Length) * unit

		rect := canvas.NewRectangle(nrgba(seg.Color, alpha))
		rect.Resize(fyne.NewSize(w, rodH))
		rect.Move(fyne.NewPos(x, 0))
		r.objects = append(r.objects, rect)

		border := canvas.NewRectangle(color.Transparent)
		border.StrokeColor = color.NRGBA{R: 30, G: 41, B: 59, A: 255}
		border.StrokeWidth = 1.5
		border.Resize(fyne.NewSize(w, rodH))
		border.Move(fyne.NewPos(x, 0))
		r.objects = append(r.objects, border)

		if seg.Label != "" && w > 18 {
			label := canvas.NewText(seg.Label, color.NRGBA{R: 15, G: 23, B: 42, A: 255})
			label.TextSize = 12
			label.TextStyle = fyne.TextStyle{Bold: true}
			size := label.MinSize()
			label.Move(fyne.NewPos(x+(w-size.Width)/2, (rodH-size.Height)/2))
			r.objects = append(r.objects, label)
		}
	}

	// Unit ticks and scale below the rod
	for k := 0; k <= n; k++ {
		x := float32(k) * unit
		tick := canvas.NewLine(color.NRGBA{R: 100, G: 116, B: 139, A: 255})
		tick.StrokeWidth = 1
		tick.Position1 = fyne.NewPos(x, rodH)
		tick.Position2 = fyne.NewPos(x, rodH+4)
		r.objects = append(r.objects, tick)

		if unit >= 14 || k == 0 || k == n {
			num := canvas.NewText(fmt.Sprintf("%d", k), color.NRGBA{R: 100, G: 116, B: 139, A: 255})
			num.TextSize = 9
			num.Move(fyne.NewPos(x-num.MinSize().Width/2, rodH+4))
			r.objects = append(r.objects, num)
		}
	}
}

func (r *rodCanvasRenderer) Layout(size fyne.Size) {}

func (r *rodCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.rc.maxWidth, r.rc.height)
}

func (r *rodCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.rc)
}

func (r *rodCanvasRenderer) Destroy() {}

func (r *rodCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}
