// Package importer reads price tables from text, CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Prices is only
// set when Errors is empty.
type ImportResult struct {
	Prices   []int
	Errors   []string
	Warnings []string
}

// Problem returns the imported table as a problem whose rod length equals
// the longest priced piece.
func (r ImportResult) Problem() (model.Problem, error) {
	if len(r.Errors) > 0 {
		return model.Problem{}, fmt.Errorf("import failed: %s", strings.Join(r.Errors, "; "))
	}
	p := model.NewProblem(len(r.Prices), r.Prices)
	return p, p.Validate()
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Length int
	Price  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"length": {"length", "len", "size", "piece", "piece length", "n", "i"},
	"price":  {"price", "value", "profit", "revenue", "p", "price[i]"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (length, price) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Length: -1, Price: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "price":
					if mapping.Price == -1 {
						mapping.Price = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Length: 0, Price: 1}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a price table from a CSV file.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports a price table from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a price table from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Rows may be given in any order but must cover lengths 1..max exactly once.
// A table with a single column is read as prices for lengths 1, 2, 3...
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Price == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Price")
			return result
		}
	} else if _, err := strconv.Atoi(getCell(rows[0], 0)); err != nil {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	priceCol := mapping.Price
	keyed := mapping.Length != -1
	if !hasHeader && allSingleColumn(rows[startRow:]) {
		keyed = false
		priceCol = 0
	}

	byLength := map[int]int{}
	next := 1

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		length := next
		next++
		if keyed {
			lengthStr := getCell(row, mapping.Length)
			l, err := strconv.Atoi(lengthStr)
			if err != nil || l < model.MinRodLength {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr))
				continue
			}
			length = l
		}

		if length > model.MaxRodLength {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Length %d exceeds the maximum of %d", rowLabel, length, model.MaxRodLength))
			continue
		}
		if _, dup := byLength[length]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate price for length %d", rowLabel, length))
			continue
		}

		priceStr := getCell(row, priceCol)
		price, err := strconv.Atoi(priceStr)
		if priceStr != "" && (err != nil || price < 0) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Invalid price '%s'", rowLabel, priceStr))
			continue
		}
		if price > model.HighPriceWarning {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Price for length %d is very high ($%d)", rowLabel, length, price))
		}
		byLength[length] = price
	}

	if len(result.Errors) > 0 {
		return result
	}
	if len(byLength) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	lengths := make([]int, 0, len(byLength))
	for l := range byLength {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)

	maxLen := lengths[len(lengths)-1]
	var missing []string
	prices := make([]int, maxLen)
	for l := 1; l <= maxLen; l++ {
		v, ok := byLength[l]
		if !ok {
			missing = append(missing, strconv.Itoa(l))
			continue
		}
		prices[l-1] = v
	}
	if len(missing) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Missing prices for lengths: %s", strings.Join(missing, ", ")))
		return result
	}

	result.Prices = prices
	return result
}

func allSingleColumn(rows [][]string) bool {
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		nonEmpty := 0
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				nonEmpty++
			}
		}
		if nonEmpty > 1 {
			return false
		}
	}
	return true
}
