package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
)

func writeDiagram(t *testing.T, boundaries []float64, height float64) string {
	t.Helper()
	d := dxf.NewDrawing()
	for _, x := range boundaries {
		_, err := d.Line(x, 0, 0, x, height, 0)
		require.NoError(t, err)
	}
	last := boundaries[len(boundaries)-1]
	_, err := d.Line(0, 0, 0, last, 0, 0)
	require.NoError(t, err)
	_, err = d.Line(0, height, 0, last, height, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cuts.dxf")
	require.NoError(t, d.SaveAs(path))
	return path
}

func TestImportCutDiagram(t *testing.T) {
	path := writeDiagram(t, []float64{0, 200, 800}, 40)

	result := ImportCutDiagram(path, 100)
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{2, 6}, result.Pieces)
	assert.Empty(t, result.Warnings)
}

func TestImportCutDiagram_RoundsOffGridPieces(t *testing.T) {
	path := writeDiagram(t, []float64{0, 110, 200}, 40)

	result := ImportCutDiagram(path, 100)
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{1, 1}, result.Pieces)
	assert.NotEmpty(t, result.Warnings)
}

func TestImportCutDiagram_Errors(t *testing.T) {
	assert.NotEmpty(t, ImportCutDiagram("/nonexistent/cuts.dxf", 100).Errors)
	assert.NotEmpty(t, ImportCutDiagram("whatever.dxf", 0).Errors)

	d := dxf.NewDrawing()
	_, err := d.Line(0, 0, 0, 100, 0, 0)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "flat.dxf")
	require.NoError(t, d.SaveAs(path))

	result := ImportCutDiagram(path, 100)
	assert.Contains(t, result.Errors, "No rod outline found in DXF file")
}
