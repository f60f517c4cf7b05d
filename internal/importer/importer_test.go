package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := map[string]rune{
		"Length,Price\n1,1\n2,5\n":   ',',
		"Length;Price\n1;1\n2;5\n":   ';',
		"Length\tPrice\n1\t1\n2\t5\n": '\t',
		"Length|Price\n1|1\n2|5\n":   '|',
	}
	for data, want := range tests {
		if got := DetectCSVDelimiter([]byte(data)); got != want {
			t.Errorf("DetectCSVDelimiter(%q) = %q, want %q", data, got, want)
		}
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_Headers(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Price", "Size"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Length != 1 || mapping.Price != 0 {
		t.Errorf("unexpected mapping %+v", mapping)
	}

	mapping, isHeader = DetectColumns([]string{"LEN", "Profit"})
	if !isHeader || mapping.Length != 0 || mapping.Price != 1 {
		t.Errorf("aliases not recognised: %+v %v", mapping, isHeader)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"1", "5"})
	if isHeader {
		t.Error("numeric row must not be a header")
	}
	if mapping.Length != 0 || mapping.Price != 1 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Reader Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Length,Price\n1,1\n2,5\n3,8\n4,9\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Empty(t, result.Errors)
	assert.Equal(t, []int{1, 5, 8, 9}, result.Prices)

	p, err := result.Problem()
	require.NoError(t, err)
	assert.Equal(t, 4, p.RodLength)
}

func TestImportCSVFromReader_UnorderedRows(t *testing.T) {
	data := "price;size\n9;4\n1;1\n8;3\n5;2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	require.Empty(t, result.Errors)
	assert.Equal(t, []int{1, 5, 8, 9}, result.Prices)
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("1,2\n2,5\n"), ',')
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{2, 5}, result.Prices)
}

func TestImportCSVFromReader_SingleColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("1\n5\n8\n\n9\n"), ',')
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{1, 5, 8, 9}, result.Prices)
}

func TestImportCSVFromReader_PriceOnlyHeader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Price\n3\n4\n"), ',')
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{3, 4}, result.Prices)
}

func TestImportCSVFromReader_EmptyPriceIsZero(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Length,Price\n1,\n2,5\n"), ',')
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{0, 5}, result.Prices)
}

func TestImportCSVFromReader_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "", "File is empty"},
		{"bad price", "Length,Price\n1,abc\n", "Invalid price 'abc'"},
		{"negative", "Length,Price\n1,-3\n", "Invalid price '-3'"},
		{"bad length", "Length,Price\nx,3\n", "Invalid length 'x'"},
		{"duplicate", "Length,Price\n1,3\n1,4\n", "Duplicate price for length 1"},
		{"gap", "Length,Price\n1,3\n3,4\n", "Missing prices for lengths: 2"},
		{"too long", "Length,Price\n16,3\n", "exceeds the maximum"},
		{"no price column", "Length,Name\n1,a\n", "Required column not found"},
		{"header only", "Length,Price\n", "No data rows found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ImportCSVFromReader(strings.NewReader(tt.data), ',')
			require.NotEmpty(t, result.Errors)
			assert.Contains(t, strings.Join(result.Errors, "\n"), tt.want)
			assert.Nil(t, result.Prices)

			_, err := result.Problem()
			assert.Error(t, err)
		})
	}
}

func TestImportCSVFromReader_HighPriceWarning(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Length,Price\n1,1000\n"), ',')
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{1000}, result.Prices)
	assert.Contains(t, strings.Join(result.Warnings, "\n"), "Price for length 1 is very high ($1000)")
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte("Length;Price\n1;1\n2;5\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Prices) != 2 {
		t.Errorf("expected 2 prices, got %v", result.Prices)
	}
	if !strings.Contains(strings.Join(result.Warnings, "\n"), "semicolon") {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/prices.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if result := ImportCSV(path); len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Length", "Price"},
		{1, 1}, {2, 5}, {3, 8}, {4, 9}, {5, 10}, {6, 17}, {7, 17}, {8, 20},
	})

	result := ImportExcel(path)
	require.Empty(t, result.Errors)
	assert.Equal(t, []int{1, 5, 8, 9, 10, 17, 17, 20}, result.Prices)
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/prices.xlsx")
	assert.NotEmpty(t, result.Errors)
}

// ─── Price Text Tests ──────────────────────────────────────

func TestParsePrices(t *testing.T) {
	prices, warnings, err := ParsePrices([]string{"1", " 5 ", "", "1200"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 0, 1200}, prices)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Price for length 4 is very high ($1200). Are you sure?", warnings[0])
}

func TestParsePrices_ReportsEveryBadField(t *testing.T) {
	prices, _, err := ParsePrices([]string{"1", "2.5", "-4", "x"})
	require.Error(t, err)
	assert.Nil(t, prices)
	assert.True(t, errors.Is(err, model.ErrInvalidPrice))

	msg := err.Error()
	assert.Contains(t, msg, "price for length 2 is not a whole number")
	assert.Contains(t, msg, "price for length 3 cannot be negative")
	assert.Contains(t, msg, "price for length 4 is not a whole number")

	var ipe *InvalidPriceError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, 2, ipe.Length)
	assert.Equal(t, "2.5", ipe.Raw)
}

func TestParsePriceList(t *testing.T) {
	prices, _, err := ParsePriceList("1, 5,8 9")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 8, 9}, prices)

	_, _, err = ParsePriceList("  ")
	assert.ErrorIs(t, err, model.ErrPriceCountMismatch)
}

func TestParseProblem(t *testing.T) {
	p, _, err := ParseProblem(0, "1,5,8,9")
	require.NoError(t, err)
	assert.Equal(t, 4, p.RodLength)

	_, _, err = ParseProblem(3, "1,5,8,9")
	assert.ErrorIs(t, err, model.ErrPriceCountMismatch)

	_, _, err = ParseProblem(0, "1,x")
	assert.ErrorIs(t, err, model.ErrInvalidPrice)
}

func TestResizePrices(t *testing.T) {
	src := []int{1, 5, 8}
	assert.Equal(t, []int{1, 5, 8, 0, 0}, ResizePrices(src, 5))
	assert.Equal(t, []int{1, 5}, ResizePrices(src, 2))
	assert.Equal(t, []int{}, ResizePrices(src, -1))

	out := ResizePrices(src, 3)
	out[0] = 42
	assert.Equal(t, 1, src[0], "resize must copy")
}
