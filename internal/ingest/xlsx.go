// =============================================================================
// PO3 Payment Batch Generator - XLSX Source
// =============================================================================
//
// Reads a source sheet from an XLSX workbook and writes the paid flag back
// via excelize. When no sheet name is configured the first sheet of the
// workbook is used.
//
// =============================================================================

package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses one sheet of an XLSX workbook into rows. The first sheet
// row is the header; empty rows are skipped. An empty sheetName selects the
// first sheet.
func ReadXLSX(path, sheetName string) ([]Row, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	if sheetName == "" {
		sheetName = workbook.GetSheetName(0)
	}

	cells, err := workbook.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet %q in %s is empty", sheetName, path)
	}

	return rowsFromCells(cells), nil
}

// =============================================================================
// PAID-FLAG WRITE-BACK
// =============================================================================

// XLSXSink writes the paid flag back to an XLSX workbook in place.
type XLSXSink struct {
	// Path is the workbook to update.
	Path string

	// Sheet is the sheet name; empty selects the first sheet.
	Sheet string

	// PaidColumn is the header of the paid-flag column.
	PaidColumn string
}

// MarkPaid sets the paid column to TRUE for the given spreadsheet rows and
// saves the workbook.
func (s *XLSXSink) MarkPaid(rowNumbers []int) error {
	workbook, err := excelize.OpenFile(s.Path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheetName := s.Sheet
	if sheetName == "" {
		sheetName = workbook.GetSheetName(0)
	}

	cells, err := workbook.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(cells) == 0 {
		return fmt.Errorf("sheet %q in %s is empty", sheetName, s.Path)
	}

	paidCol := headerIndex(cells[0], s.PaidColumn)
	if paidCol < 0 {
		return fmt.Errorf("column %q not found in sheet %q", s.PaidColumn, sheetName)
	}

	for _, rowNumber := range rowNumbers {
		cell, err := excelize.CoordinatesToCellName(paidCol+1, rowNumber)
		if err != nil {
			return err
		}
		if err := workbook.SetCellValue(sheetName, cell, "TRUE"); err != nil {
			return fmt.Errorf("failed to update row %d: %w", rowNumber, err)
		}
	}

	return workbook.Save()
}
