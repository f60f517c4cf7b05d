package export

import (
	"fmt"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	LayerRod    = "ROD"
	LayerCuts   = "CUTS"
	LayerLabels = "LABELS"
)

// ExportDXF writes a 2D cut diagram of the optimal pieces: the rod outline,
// one vertical cut line per piece boundary and a label per piece. Lengths
// are in mm, using settings.UnitLength per rod unit.
func ExportDXF(path string, trace *model.Trace, settings model.CutSettings) error {
	if trace == nil || trace.Len() == 0 {
		return fmt.Errorf("no trace to export")
	}
	if settings.UnitLength <= 0 {
		return fmt.Errorf("unit length must be positive, got %.2f", settings.UnitLength)
	}

	problem := trace.Problem()
	pieces := trace.Pieces()
	unit := settings.UnitLength
	width := settings.RodWidth
	if width <= 0 {
		width = unit / 2
	}
	total := float64(problem.RodLength) * unit

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerRod, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerRod, err)
	}
	outline := [][4]float64{
		{0, 0, total, 0},
		{0, width, total, width},
		{0, 0, 0, width},
		{total, 0, total, width},
	}
	for _, l := range outline {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			return fmt.Errorf("failed to draw rod outline: %w", err)
		}
	}

	if _, err := d.AddLayer(LayerCuts, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerCuts, err)
	}
	x := 0.0
	for i, piece := range pieces {
		x += float64(piece) * unit
		if i == len(pieces)-1 {
			break
		}
		if _, err := d.Line(x, 0, 0, x, width, 0); err != nil {
			return fmt.Errorf("failed to draw cut line: %w", err)
		}
	}

	if _, err := d.AddLayer(LayerLabels, color.Blue, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerLabels, err)
	}
	textHeight := width / 4
	x = 0
	for _, piece := range pieces {
		label := fmt.Sprintf("%d ($%d)", piece, problem.PriceOf(piece))
		if _, err := d.Text(label, x+textHeight/2, width/2-textHeight/2, 0, textHeight); err != nil {
			return fmt.Errorf("failed to draw label: %w", err)
		}
		x += float64(piece) * unit
	}

	return d.SaveAs(path)
}
