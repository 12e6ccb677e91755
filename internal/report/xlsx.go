package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the rename log in spreadsheet copies.
const SheetName = "Rename Log"

// SpreadsheetPath maps a CSV log path to its spreadsheet sibling.
func SpreadsheetPath(csvPath string) string {
	return strings.TrimSuffix(csvPath, ".csv") + ".xlsx"
}

// WriteXLSX writes the header and rows to a single worksheet workbook at path.
func WriteXLSX(path string, rows []Row) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	write := func(col, row int, v string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(SheetName, cell, v)
	}

	for i, h := range Header {
		if err := write(i+1, 1, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for r, row := range rows {
		for c, v := range row.values() {
			if err := write(c+1, r+2, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", r+1, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "B", 48)
	_ = f.SetColWidth(SheetName, "C", "C", 60)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}
