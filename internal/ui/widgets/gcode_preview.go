package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RodCut/internal/gcode"
	"github.com/piwi3910/RodCut/internal/model"
)

// Toolpath colors for different move types.
var (
	colorRapid   = color.NRGBA{R: 255, G: 60, B: 60, A: 200}   // Red for rapid moves
	colorFeed    = color.NRGBA{R: 30, G: 120, B: 255, A: 230}  // Blue for cutting moves
	colorPlunge  = color.NRGBA{R: 50, G: 200, B: 50, A: 220}   // Green for plunge
	colorRetract = color.NRGBA{R: 180, G: 180, B: 0, A: 180}   // Yellow for retract
	colorStock   = color.NRGBA{R: 230, G: 210, B: 175, A: 255} // Light wood for stock
)

// GCodePreview renders the XY projection of a cut program over the rod
// stock, with each piece tinted in its palette colour.
type GCodePreview struct {
	widget.BaseWidget
	moves     []gcode.Move
	pieces    []int
	settings  model.CutSettings
	maxWidth  float32
	maxHeight float32
}

// NewGCodePreview creates a new GCode preview widget.
func NewGCodePreview(moves []gcode.Move, pieces []int, settings model.CutSettings, maxW, maxH float32) *GCodePreview {
	gp := &GCodePreview{
		moves:     moves,
		pieces:    append([]int(nil), pieces...),
		settings:  settings,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	gp.ExtendBaseWidget(gp)
	return gp
}

// CreateRenderer implements fyne.Widget.
func (gp *GCodePreview) CreateRenderer() fyne.WidgetRenderer {
	return newGCodePreviewRenderer(gp)
}

// stockSize is the rod stock in mm including one kerf per cut.
func (gp *GCodePreview) stockSize() (float64, float64) {
	total := 0
	for _, p := range gp.pieces {
		total += p
	}
	cuts := len(gp.pieces) - 1
	if cuts < 0 {
		cuts = 0
	}
	return gcode.StockRequired(total, cuts, gp.settings.UnitLength, gp.settings.KerfWidth), gp.settings.RodWidth
}

// scale fits the stock, plus a margin for the tool's run-out, into the max bounds.
func (gp *GCodePreview) scale() (scale, margin float32) {
	stockW, stockH := gp.stockSize()
	margin = float32(gp.settings.KerfWidth) + 10
	scaleX := (gp.maxWidth - margin*2) / float32(stockW)
	scaleY := (gp.maxHeight - margin*2) / float32(stockH)
	scale = scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale <= 0 || math.IsInf(float64(scale), 0) {
		scale = 1
	}
	return scale, margin
}

type gcodePreviewRenderer struct {
	gp      *GCodePreview
	objects []fyne.CanvasObject
}

func newGCodePreviewRenderer(gp *GCodePreview) *gcodePreviewRenderer {
	r := &gcodePreviewRenderer{gp: gp}
	r.rebuild()
	return r
}

func (r *gcodePreviewRenderer) rebuild() {
	r.objects = nil

	gp := r.gp
	stockW, stockH := gp.stockSize()
	if stockW <= 0 || stockH <= 0 {
		return
	}
	scale, margin := gp.scale()
	// GCode Y grows away from the operator; flip it so the rod sits upright.
	toScreen := func(x, y float64) fyne.Position {
		return fyne.NewPos(float32(x)*scale+margin, float32(stockH-y)*scale+margin)
	}

	canvasW := float32(stockW) * scale
	canvasH := float32(stockH) * scale

	bg := canvas.NewRectangle(colorStock)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(margin, margin))
	r.objects = append(r.objects, bg)

	// Piece tints between cut lines
	xs := gcode.CutPositions(gp.pieces, gp.settings.UnitLength, gp.settings.KerfWidth)
	start := 0.0
	for i, piece := range gp.pieces {
		end := stockW
		if i < len(xs) {
			end = xs[i] - gp.settings.KerfWidth/2
		}
		tint := canvas.NewRectangle(nrgba(model.PieceColor(piece), 110))
		tint.Resize(fyne.NewSize(float32(end-start)*scale, canvasH))
		tint.Move(fyne.NewPos(float32(start)*scale+margin, margin))
		r.objects = append(r.objects, tint)

		if i < len(xs) {
			start = xs[i] + gp.settings.KerfWidth/2
		}
	}

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(margin, margin))
	r.objects = append(r.objects, border)

	for _, m := range gp.moves {
		from := toScreen(m.FromX, m.FromY)
		to := toScreen(m.ToX, m.ToY)
		xyDist := math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)

		switch m.Type {
		case gcode.MoveRapid:
			if xyDist < 0.01 {
				continue
			}
			r.line(from, to, colorRapid, 1)
			r.drawDashedOverlay(from, to)

		case gcode.MoveFeed:
			if xyDist < 0.01 {
				continue
			}
			r.line(from, to, colorFeed, 2)

		case gcode.MovePlunge:
			r.marker(from, colorPlunge, 4)

		case gcode.MoveRetract:
			if xyDist < 0.01 {
				r.marker(from, colorRetract, 3)
			} else {
				r.line(from, to, colorRetract, 1)
			}
		}
	}
}

func (r *gcodePreviewRenderer) line(from, to fyne.Position, col color.NRGBA, width float32) {
	l := canvas.NewLine(col)
	l.StrokeWidth = width
	l.Position1 = from
	l.Position2 = to
	r.objects = append(r.objects, l)
}

func (r *gcodePreviewRenderer) marker(at fyne.Position, col color.NRGBA, size float32) {
	c := canvas.NewCircle(col)
	c.Resize(fyne.NewSize(size, size))
	c.Move(fyne.NewPos(at.X-size/2, at.Y-size/2))
	r.objects = append(r.objects, c)
}

// drawDashedOverlay adds alternating gaps along a rapid move line for dashed appearance.
func (r *gcodePreviewRenderer) drawDashedOverlay(from, to fyne.Position) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 8 {
		return
	}

	dashLen := float32(6)
	gapLen := float32(4)
	nx := dx / length
	ny := dy / length

	for cursor := dashLen; cursor+gapLen < length; cursor += dashLen + gapLen {
		r.line(
			fyne.NewPos(from.X+nx*cursor, from.Y+ny*cursor),
			fyne.NewPos(from.X+nx*(cursor+gapLen), from.Y+ny*(cursor+gapLen)),
			colorStock, 2.5,
		)
	}
}

func (r *gcodePreviewRenderer) Layout(size fyne.Size)        {}
func (r *gcodePreviewRenderer) Refresh()                     { r.rebuild() }
func (r *gcodePreviewRenderer) Destroy()                     {}
func (r *gcodePreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *gcodePreviewRenderer) MinSize() fyne.Size {
	stockW, stockH := r.gp.stockSize()
	if stockW <= 0 || stockH <= 0 {
		return fyne.NewSize(100, 100)
	}
	scale, margin := r.gp.scale()
	return fyne.NewSize(float32(stockW)*scale+margin*2, float32(stockH)*scale+margin*2)
}

// RenderGCodePreview parses a generated program and returns its preview for
// the given optimal pieces.
func RenderGCodePreview(pieces []int, settings model.CutSettings, code string) fyne.CanvasObject {
	return NewGCodePreview(gcode.ParseMoves(code), pieces, settings, 760, 260)
}
