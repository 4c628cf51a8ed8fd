package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// CargoSheet is the name of the cargo table sheet. The title and header
// follow the legacy spreadsheet layout so existing files stay interchangeable.
const CargoSheet = "Грузы"

// PlacementSheet lists every placed box with its position.
const PlacementSheet = "Placement"

// CargoHeader is the seven-column header row of the cargo sheet.
var CargoHeader = []string{"№", "Название", "Количество", "Длина (мм)", "Ширина (мм)", "Высота (мм)", "Вес (кг)"}

var placementHeader = []string{"ID", "Name", "X (mm)", "Y (mm)", "Z (mm)", "Length (mm)", "Width (mm)", "Height (mm)", "Weight (kg)"}

// ExportXLSX writes the cargo table of a plan to an Excel workbook. The first
// sheet holds one row per cargo type in the legacy layout and can be read
// back with the importer; a second sheet lists the placed boxes.
func ExportXLSX(path string, plan model.Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), CargoSheet); err != nil {
		return fmt.Errorf("failed to name cargo sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(plan.Types)+1)
	rows = append(rows, stringsToRow(CargoHeader))
	for i, t := range plan.Types {
		rows = append(rows, []interface{}{i + 1, t.Name, t.Qty, int(t.Length), int(t.Width), int(t.Height), int(t.Weight)})
	}
	if err := writeRows(f, CargoSheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(PlacementSheet); err != nil {
		return fmt.Errorf("failed to add placement sheet: %w", err)
	}
	rows = rows[:0]
	rows = append(rows, stringsToRow(placementHeader))
	for _, inst := range plan.Instances {
		rows = append(rows, []interface{}{
			uint64(inst.ID), inst.Name, inst.X, inst.Y, inst.Z,
			inst.Length, inst.Width, inst.Height, inst.Weight,
		})
	}
	if err := writeRows(f, PlacementSheet, rows); err != nil {
		return err
	}

	if err := formatSheets(f); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func stringsToRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// writeRows writes rows starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// formatSheets bolds the header rows and widens the cargo columns.
func formatSheets(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	for _, sheet := range []string{CargoSheet, PlacementSheet} {
		if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
			return fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
	}
	if err := f.SetColWidth(CargoSheet, "B", "B", 30); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(CargoSheet, "C", "G", 14); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}
