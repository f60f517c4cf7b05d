package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// PieceResult holds the piece lengths recovered from a cut diagram.
type PieceResult struct {
	Pieces   []int
	Errors   []string
	Warnings []string
}

// ImportCutDiagram reads a DXF cut diagram and recovers the piece lengths,
// in rod units, from the x positions of its vertical lines (rod ends and
// cut marks). unitLength is the drawing size of one rod unit.
func ImportCutDiagram(path string, unitLength float64) PieceResult {
	result := PieceResult{}

	if unitLength <= 0 {
		result.Errors = append(result.Errors, "Unit length must be positive")
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var xs []float64
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			if math.Abs(e.Start[0]-e.End[0]) < 0.01 && math.Abs(e.Start[1]-e.End[1]) > 0.01 {
				xs = append(xs, e.Start[0])
			}
		default:
			// Labels and other entities carry no geometry we need
		}
	}

	xs = uniqueSorted(xs, 0.01)
	if len(xs) < 2 {
		result.Errors = append(result.Errors, "No rod outline found in DXF file")
		return result
	}

	for i := 1; i < len(xs); i++ {
		units := (xs[i] - xs[i-1]) / unitLength
		rounded := math.Round(units)
		if rounded < 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped sliver of %.2f units at x=%.2f", units, xs[i-1]))
			continue
		}
		if math.Abs(units-rounded) > 0.05 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Piece at x=%.2f is %.2f units, rounded to %d", xs[i-1], units, int(rounded)))
		}
		result.Pieces = append(result.Pieces, int(rounded))
	}

	if len(result.Pieces) == 0 {
		result.Errors = append(result.Errors, "No pieces found in DXF file")
	}
	return result
}

// uniqueSorted sorts xs and merges values closer than tol.
func uniqueSorted(xs []float64, tol float64) []float64 {
	sort.Float64s(xs)
	var out []float64
	for _, x := range xs {
		if len(out) == 0 || x-out[len(out)-1] > tol {
			out = append(out, x)
		}
	}
	return out
}
