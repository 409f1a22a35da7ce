package report

import (
	"fmt"
	"io"

	"fjacquet/budget-tracker/internal/models"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName names the worksheet when none is configured.
const DefaultSheetName = "Transactions"

// WriteExcel writes records to a single-sheet workbook.
func WriteExcel(w io.Writer, records []models.Record, sheetName string) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{r.ID, r.Operation, r.Card, r.Merchant, r.Amount, r.Balance, r.Timestamp, r.Category}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
