// Package importer provides CSV and Excel import of cargo tables. It
// supports automatic delimiter detection, flexible column mapping and
// case-insensitive header recognition, including the legacy seven-column
// spreadsheet layout (No, Name, Qty, Length, Width, Height, Weight).
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Cargo    []model.CargoSpec
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Number int
	Name   int
	Qty    int
	Length int
	Width  int
	Height int
	Weight int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase, unit suffixes stripped).
var headerAliases = map[string][]string{
	"number": {"no", "no.", "nr", "#", "№", "id"},
	"name":   {"name", "label", "cargo", "description", "desc", "item", "название", "наименование"},
	"qty":    {"qty", "quantity", "count", "pcs", "pieces", "amount", "количество", "кол-во"},
	"length": {"length", "len", "l", "длина"},
	"width":  {"width", "w", "ширина"},
	"height": {"height", "h", "высота"},
	"weight": {"weight", "wt", "mass", "kg", "вес"},
}

// unitSuffix matches a trailing unit annotation such as " (mm)" or "[kg]".
var unitSuffix = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]\s*$`)

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

// normalizeHeader lowercases a header cell and strips unit annotations.
func normalizeHeader(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))
	return strings.TrimSpace(unitSuffix.ReplaceAllString(s, ""))
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a positional
// mapping and false if no header was found. A header needs cells for at
// least two distinct roles. Rows with seven or more cells
// map positionally to the legacy layout with a leading number column.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Number: -1, Name: -1, Qty: -1, Length: -1, Width: -1, Height: -1, Weight: -1}
	slots := map[string]*int{
		"number": &mapping.Number,
		"name":   &mapping.Name,
		"qty":    &mapping.Qty,
		"length": &mapping.Length,
		"width":  &mapping.Width,
		"height": &mapping.Height,
		"weight": &mapping.Weight,
	}

	matched := make(map[string]bool)
	for i, cell := range row {
		normalized := normalizeHeader(cell)
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					matched[role] = true
					if slot := slots[role]; *slot == -1 {
						*slot = i
					}
				}
			}
		}
	}

	// A single match is more likely a data cell such as a cargo named "L".
	if len(matched) >= 2 {
		return mapping, true
	}
	return positionalMapping(len(row)), false
}

func positionalMapping(cols int) ColumnMapping {
	if cols >= 7 {
		return ColumnMapping{Number: 0, Name: 1, Qty: 2, Length: 3, Width: 4, Height: 5, Weight: 6}
	}
	return ColumnMapping{Number: -1, Name: 0, Qty: 1, Length: 2, Width: 3, Height: 4, Weight: 5}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber parses a positive whole-millimetre or whole-kilogram value.
// Decimal commas are accepted. Fractions are rounded with a warning.
func parseNumber(s, field, rowLabel string) (float64, string, string) {
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field), ""
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s), ""
	}
	var warning string
	if r := math.Round(v); r != v {
		warning = fmt.Sprintf("%s: %s %s rounded to %.0f", rowLabel, field, s, r)
		v = r
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, field), ""
	}
	return v, "", warning
}

// parseRow extracts a cargo record from a row using the given column mapping.
// Returns the record, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.CargoSpec, string, []string) {
	name, err := model.ValidateName(getCell(row, mapping.Name))
	if err != nil {
		return model.CargoSpec{}, fmt.Sprintf("%s: Invalid name: %v", rowLabel, err), nil
	}

	qtyStr := getCell(row, mapping.Qty)
	if qtyStr == "" {
		return model.CargoSpec{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), nil
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.CargoSpec{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
	}
	if qty <= 0 {
		return model.CargoSpec{}, fmt.Sprintf("%s: quantity must be positive", rowLabel), nil
	}

	spec := model.CargoSpec{Name: name, Qty: qty}
	var warnings []string
	fields := []struct {
		name string
		idx  int
		dst  *float64
	}{
		{"length", mapping.Length, &spec.Length},
		{"width", mapping.Width, &spec.Width},
		{"height", mapping.Height, &spec.Height},
		{"weight", mapping.Weight, &spec.Weight},
	}
	for _, f := range fields {
		v, errMsg, warning := parseNumber(getCell(row, f.idx), f.name, rowLabel)
		if errMsg != "" {
			return model.CargoSpec{}, errMsg, nil
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
		*f.dst = v
	}
	return spec, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports cargo from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
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

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports cargo from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

// ImportExcel imports cargo from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
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

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xlsm"):
		return ImportExcel(path)
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"), strings.HasSuffix(lower, ".txt"):
		return ImportCSV(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type: %s", path)}}
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into cargo records.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		required := []struct {
			name string
			idx  int
		}{
			{"Name", mapping.Name},
			{"Quantity", mapping.Qty},
			{"Length", mapping.Length},
			{"Width", mapping.Width},
			{"Height", mapping.Height},
			{"Weight", mapping.Weight},
		}
		for _, r := range required {
			if r.idx == -1 {
				missing = append(missing, r.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := strconv.Atoi(getCell(rows[0], mapping.Qty)); err != nil {
		// The quantity cell is not numeric: an unrecognized header row.
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if len(rows) > 1 {
			mapping = positionalMapping(len(rows[1]))
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		spec, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Cargo = append(result.Cargo, spec)
	}

	return result
}
