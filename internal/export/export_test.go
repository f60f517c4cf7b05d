package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/RodCut/internal/engine"
	"github.com/piwi3910/RodCut/internal/importer"
	"github.com/piwi3910/RodCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildTestTrace solves the classic textbook instance.
func buildTestTrace(t *testing.T) *model.Trace {
	t.Helper()
	trace, err := engine.Solve(model.NewProblem(8, []int{1, 5, 8, 9, 10, 17, 17, 20}))
	require.NoError(t, err)
	return trace
}

func assertNonEmptyFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

// ─── PDF ───────────────────────────────────────────────────

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := ExportPDF(path, buildTestTrace(t), model.DefaultCutSettings())
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path, 1000)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "missing PDF header")
}

func TestExportPDF_LongestRod(t *testing.T) {
	prices := make([]int, model.MaxRodLength)
	for i := range prices {
		prices[i] = (i + 1) * 3
	}
	trace, err := engine.Solve(model.NewProblem(model.MaxRodLength, prices))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "long.pdf")
	require.NoError(t, ExportPDF(path, trace, model.DefaultCutSettings()))
	assertNonEmptyFile(t, path, 1000)
}

func TestExportPDF_NilTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportPDF(path, nil, model.DefaultCutSettings()); err == nil {
		t.Error("expected error for nil trace")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for a nil trace")
	}
}

func TestPDFReplacer(t *testing.T) {
	got := pdfReplacer.Replace("✓ New best! total → $5 … ← Best")
	assert.Equal(t, "New best! total -> $5 ... <- Best", got)
}

// ─── Share card ─────────────────────────────────────────────

func TestExportShareCard_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "share.pdf")
	require.NoError(t, ExportShareCard(path, buildTestTrace(t), "classic"))
	assertNonEmptyFile(t, path, 1000)
}

func TestExportShareCard_NilTrace(t *testing.T) {
	assert.Error(t, ExportShareCard(filepath.Join(t.TempDir(), "x.pdf"), nil, ""))
}

func TestShareInfo_RoundTrip(t *testing.T) {
	info := CollectShareInfo(buildTestTrace(t), "classic")
	assert.Equal(t, 8, info.RodLength)
	assert.Equal(t, 22, info.MaxProfit)
	assert.Equal(t, []int{2, 6}, info.Pieces)

	data, err := json.Marshal(info)
	require.NoError(t, err)

	decoded, problem, err := DecodeShareInfo(data)
	require.NoError(t, err)
	assert.Equal(t, info, decoded)
	assert.Equal(t, []int{1, 5, 8, 9, 10, 17, 17, 20}, problem.Prices)
}

func TestDecodeShareInfo_Invalid(t *testing.T) {
	_, _, err := DecodeShareInfo([]byte("not json"))
	assert.Error(t, err)

	_, _, err = DecodeShareInfo([]byte(`{"n":3,"prices":[1,2]}`))
	assert.ErrorIs(t, err, model.ErrPriceCountMismatch)
}

// ─── XLSX ───────────────────────────────────────────────────

func TestExportXLSX_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.xlsx")
	trace := buildTestTrace(t)
	require.NoError(t, ExportXLSX(path, trace))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetPrices, SheetSummary, SheetDP, SheetSteps}, f.GetSheetList())

	profit, err := f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "22", profit)

	dp8, err := f.GetCellValue(SheetDP, "B10")
	require.NoError(t, err)
	assert.Equal(t, "22", dp8)

	steps, err := f.GetRows(SheetSteps)
	require.NoError(t, err)
	assert.Len(t, steps, trace.Len()+1)
	assert.Equal(t, "complete", steps[len(steps)-1][1])
}

func TestExportXLSX_ReimportsAsPriceTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.xlsx")
	require.NoError(t, ExportXLSX(path, buildTestTrace(t)))

	result := importer.ImportExcel(path)
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{1, 5, 8, 9, 10, 17, 17, 20}, result.Prices)
}

func TestExportXLSX_NilTrace(t *testing.T) {
	assert.Error(t, ExportXLSX(filepath.Join(t.TempDir(), "x.xlsx"), nil))
}

// ─── DXF ────────────────────────────────────────────────────

func TestExportDXF_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cuts.dxf")
	settings := model.DefaultCutSettings()
	require.NoError(t, ExportDXF(path, buildTestTrace(t), settings))
	assertNonEmptyFile(t, path, 200)

	result := importer.ImportCutDiagram(path, settings.UnitLength)
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{2, 6}, result.Pieces)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, layer := range []string{LayerRod, LayerCuts, LayerLabels} {
		assert.Contains(t, string(data), layer)
	}
}

func TestExportDXF_Errors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, ExportDXF(filepath.Join(dir, "a.dxf"), nil, model.DefaultCutSettings()))

	settings := model.DefaultCutSettings()
	settings.UnitLength = 0
	assert.Error(t, ExportDXF(filepath.Join(dir, "b.dxf"), buildTestTrace(t), settings))
}

// ─── JSON ───────────────────────────────────────────────────

func TestExportJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	trace := buildTestTrace(t)
	require.NoError(t, ExportJSON(path, trace))

	doc, err := ReadTraceDocument(path)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, trace.Summary(), doc.Summary)
	assert.Equal(t, trace.DP(), doc.DP)
	assert.Equal(t, trace.Pieces(), doc.Pieces)
	require.Len(t, doc.Steps, trace.Len())
	assert.Equal(t, trace.Last().Explanation, doc.Steps[len(doc.Steps)-1].Explanation)
}

func TestWriteJSON_WithoutSteps(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, buildTestTrace(t), false))
	assert.NotContains(t, buf.String(), `"steps"`)
	assert.True(t, strings.Contains(buf.String(), `"max_profit": 22`))

	assert.Error(t, WriteJSON(&buf, nil, false))
}
