package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Qty,Length,Width,Height,Weight\nCrate,2,1000,1000,500,80\nDrum,4,600,600,900,200\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Qty;Length;Width;Height;Weight\nCrate;2;1000;1000;500;80\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tQty\tLength\tWidth\tHeight\tWeight\nCrate\t2\t1000\t1000\t500\t80\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Name|Qty|Length|Width|Height|Weight\nCrate|2|1000|1000|500|80\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Name", "Qty", "Length", "Width", "Height", "Weight"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Number != -1 {
		t.Errorf("expected no Number column, got %d", mapping.Number)
	}
	if mapping.Name != 0 || mapping.Qty != 1 || mapping.Length != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.Width != 3 || mapping.Height != 4 || mapping.Weight != 5 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_UnitSuffixes(t *testing.T) {
	row := []string{"Name", "Quantity", "Length (mm)", "Width (mm)", "Height [mm]", "Weight (kg)"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Length != 2 || mapping.Width != 3 || mapping.Height != 4 || mapping.Weight != 5 {
		t.Errorf("unit suffixes not stripped: %+v", mapping)
	}
}

func TestDetectColumns_LegacyRussianHeader(t *testing.T) {
	row := []string{"№", "Название", "Количество", "Длина (мм)", "Ширина (мм)", "Высота (мм)", "Вес (кг)"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Number: 0, Name: 1, Qty: 2, Length: 3, Width: 4, Height: 5, Weight: 6}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"weight", "HEIGHT", "Width", "Length", "Count", "Item"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Number: -1, Name: 5, Qty: 4, Length: 3, Width: 2, Height: 1, Weight: 0}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Crate", "2", "1000", "1000", "500", "80"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Name != 0 || mapping.Weight != 5 {
		t.Errorf("expected six-column positional mapping, got %+v", mapping)
	}

	mapping, _ = DetectColumns([]string{"1", "Crate", "2", "1000", "1000", "500", "80"})
	if mapping.Number != 0 || mapping.Name != 1 || mapping.Weight != 6 {
		t.Errorf("expected seven-column positional mapping, got %+v", mapping)
	}
}

func TestDetectColumns_SingleLetterNameIsData(t *testing.T) {
	for _, name := range []string{"L", "W", "H"} {
		mapping, isHeader := DetectColumns([]string{name, "2", "1000", "1000", "500", "80"})
		if isHeader {
			t.Errorf("row named %q should not be a header", name)
		}
		if mapping.Name != 0 || mapping.Qty != 1 {
			t.Errorf("expected positional mapping for %q, got %+v", name, mapping)
		}
	}

	if _, isHeader := DetectColumns([]string{"Name", "Qty", "L", "W", "H", "Weight"}); !isHeader {
		t.Error("short aliases in a full header should still be detected")
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	input := "Name,Qty,Length,Width,Height,Weight\nCrate,2,1000,1000,500,80\nDrum,4,600,600,900,200\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Cargo))
	}
	want := model.CargoSpec{Name: "Crate", Qty: 2, Length: 1000, Width: 1000, Height: 500, Weight: 80}
	if result.Cargo[0] != want {
		t.Errorf("expected %+v, got %+v", want, result.Cargo[0])
	}
	if result.Cargo[1].Name != "Drum" || result.Cargo[1].Qty != 4 {
		t.Errorf("unexpected second record %+v", result.Cargo[1])
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	input := "Crate,2,1000,1000,500,80\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 1 || result.Cargo[0].Height != 500 {
		t.Errorf("unexpected result %+v", result.Cargo)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	input := "Pos,Cargo name,How many,Long,Wide,Tall,Heavy\n1,Crate,2,1000,1000,500,80\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 1 || result.Cargo[0].Name != "Crate" {
		t.Errorf("unexpected result %+v", result.Cargo)
	}
}

func TestImportCSVFromReader_SingleLetterFirstRowKept(t *testing.T) {
	input := "L,2,1000,1000,500,80\nCrate,1,600,600,900,200\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 2 || result.Cargo[0].Name != "L" {
		t.Errorf("expected both rows imported, got %+v", result.Cargo)
	}
}

func TestImportCSVFromReader_NonNumericFirstRowSkipped(t *testing.T) {
	input := "Foo,Bar,Baz,Qux,Quux,Corge\nCrate,2,1000,1000,500,80\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result.Cargo))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "header") {
			found = true
		}
	}
	if !found {
		t.Error("expected a header warning")
	}
}

func TestImportCSVFromReader_SemicolonDecimalComma(t *testing.T) {
	input := "Name;Qty;Length;Width;Height;Weight\nCrate;2;1000,4;1000;500;80\n"
	result := ImportCSVFromReader(strings.NewReader(input), ';')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Cargo[0].Length != 1000 {
		t.Errorf("expected length rounded to 1000, got %v", result.Cargo[0].Length)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "rounded") {
			found = true
		}
	}
	if !found {
		t.Error("expected a rounding warning")
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_InvalidLength(t *testing.T) {
	input := "Name,Qty,Length,Width,Height,Weight\nCrate,2,abc,1000,500,80\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Line 2") {
		t.Errorf("expected error to name the line, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_InvalidQuantity(t *testing.T) {
	input := "Name,Qty,Length,Width,Height,Weight\nCrate,two,1000,1000,500,80\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')
	if len(result.Errors) != 1 || len(result.Cargo) != 0 {
		t.Errorf("expected 1 error and no cargo, got %v / %v", result.Errors, result.Cargo)
	}
}

func TestImportCSVFromReader_NonPositiveValues(t *testing.T) {
	input := "Name,Qty,Length,Width,Height,Weight\nA,0,100,100,100,1\nB,1,-5,100,100,1\nC,1,100,100,100,0\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_InvalidName(t *testing.T) {
	input := "Name,Qty,Length,Width,Height,Weight\nBad*Name,1,100,100,100,1\n,1,100,100,100,1\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	input := "Name,Qty,Length,Width,Height,Weight\nCrate,2,1000,1000,500,80\nBroken,x,1,1,1,1\nDrum,1,600,600,900,200\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Cargo) != 2 {
		t.Errorf("expected 2 valid records, got %d", len(result.Cargo))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	input := "Name,Qty,Length,Width,Height,Weight\n\nCrate,2,1000,1000,500,80\n,,,,,\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')
	if len(result.Errors) > 0 || len(result.Cargo) != 1 {
		t.Errorf("expected 1 record and no errors, got %v / %v", result.Cargo, result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	input := "Name,Qty,Length,Width,Height\nCrate,2,1000,1000,500\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Weight") {
		t.Errorf("expected missing Weight column, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Qty,Length,Width,Height,Weight\n"), ',')
	if len(result.Errors) > 0 || len(result.Cargo) != 0 {
		t.Errorf("expected nothing imported, got %v / %v", result.Cargo, result.Errors)
	}
}

func TestImportCSVFromReader_WhitespaceInValues(t *testing.T) {
	input := "Name,Qty,Length,Width,Height,Weight\n  Crate , 2 , 1000 ,1000, 500 , 80 \n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Cargo[0].Name != "Crate" || result.Cargo[0].Length != 1000 {
		t.Errorf("whitespace not trimmed: %+v", result.Cargo[0])
	}
}

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cargo.csv")
	content := "Name;Qty;Length;Width;Height;Weight\nCrate;2;1000;1000;500;80\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result.Cargo))
	}
	if !strings.Contains(strings.Join(result.Warnings, "\n"), "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cargo.xlsx")

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

func TestImportExcel_LegacyLayout(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"№", "Название", "Количество", "Длина (мм)", "Ширина (мм)", "Высота (мм)", "Вес (кг)"},
		{1, "Crate", 2, 1000, 1000, 500, 80},
		{2, "Drum", 4, 600, 600, 900, 200},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Cargo))
	}
	want := model.CargoSpec{Name: "Drum", Qty: 4, Length: 600, Width: 600, Height: 900, Weight: 200}
	if result.Cargo[1] != want {
		t.Errorf("expected %+v, got %+v", want, result.Cargo[1])
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Crate", 2, 1000, 1000, 500, 80},
	})

	result := ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 1 || result.Cargo[0].Weight != 80 {
		t.Errorf("unexpected result %+v", result.Cargo)
	}
}

func TestImportExcel_ErrorsNameRows(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Qty", "Length", "Width", "Height", "Weight"},
		{"Crate", "many", 1000, 1000, 500, 80},
	})

	result := ImportExcel(path)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Row 2") {
		t.Errorf("expected row label, got %q", result.Errors[0])
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

// ─── ImportFile Tests ──────────────────────────────────────

func TestImportFile_Dispatch(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Crate", 1, 1000, 1000, 500, 80},
	})
	if result := ImportFile(path); len(result.Cargo) != 1 {
		t.Errorf("expected xlsx dispatch, got %+v", result)
	}

	result := ImportFile("cargo.json")
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Unsupported") {
		t.Errorf("expected unsupported type error, got %v", result.Errors)
	}
}
