// =============================================================================
// PO3 Payment Batch Generator - Row Source Types
// =============================================================================
//
// This package reads the two source sheets (expenses and invoices) into raw
// rows and writes the paid flag back to the source after a batch file has
// been emitted. Supported sources:
//   - CSV files (encoding/csv)
//   - XLSX workbooks (excelize)
//
// Rows stay untyped here: a row is a mapping of column header to the raw
// cell text. Typing and eligibility checks happen in the validate package.
//
// =============================================================================

package ingest

import "strings"

// Row is a single data row of a source sheet.
type Row struct {
	// Number is the spreadsheet row position, 1-indexed with the header
	// on row 1. The first data row is therefore row 2. The paid-flag
	// write-back is keyed by this number.
	Number int

	// Fields maps column header to the raw cell value.
	Fields map[string]string
}

// Get returns the raw value of the named column, or "" if the column does
// not exist in this row.
func (r Row) Get(name string) string {
	return r.Fields[name]
}

// PaidSink marks source rows as paid after successful file emission.
// Implementations are best-effort: a failure must not invalidate the
// already-written batch file.
type PaidSink interface {
	// MarkPaid sets the paid column to TRUE for the given row numbers
	// (spreadsheet positions, header on row 1).
	MarkPaid(rowNumbers []int) error
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// rowsFromCells converts raw sheet cells into Rows, pairing each cell with
// its header. The first cell row is the header; data rows keep their
// original sheet position even when empty rows in between are skipped.
func rowsFromCells(cells [][]string) []Row {
	if len(cells) == 0 {
		return nil
	}

	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for i := 1; i < len(cells); i++ {
		if isRowEmpty(cells[i]) {
			continue
		}

		fields := make(map[string]string, len(headers))
		for col, header := range headers {
			if header == "" {
				continue
			}
			if col < len(cells[i]) {
				fields[header] = strings.TrimSpace(cells[i][col])
			} else {
				// Column is missing in this row.
				fields[header] = ""
			}
		}

		rows = append(rows, Row{Number: i + 1, Fields: fields})
	}

	return rows
}

// headerIndex returns the 0-based position of the named column in the
// header cells, or -1 if it is not present.
func headerIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
