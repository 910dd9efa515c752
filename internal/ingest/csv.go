// =============================================================================
// PO3 Payment Batch Generator - CSV Source
// =============================================================================
//
// Reads a source sheet exported as CSV and writes the paid flag back by
// rewriting the file in place. The sheets are small (one club, one batch
// per run), so the whole file is read at once.
//
// =============================================================================

package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
)

// ReadCSV parses a CSV sheet into rows. The first line is the header; empty
// lines are skipped. Cell values are trimmed.
func ReadCSV(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader)

	cells, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty", path)
	}

	return rowsFromCells(cells), nil
}

// configureReader relaxes the CSV reader for spreadsheet exports: rows may
// have uneven column counts and quoting is not always strict.
func configureReader(reader *csv.Reader) {
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// =============================================================================
// PAID-FLAG WRITE-BACK
// =============================================================================

// CSVSink writes the paid flag back to a CSV sheet by rewriting the file.
type CSVSink struct {
	// Path is the CSV file to update.
	Path string

	// PaidColumn is the header of the paid-flag column.
	PaidColumn string
}

// MarkPaid sets the paid column to TRUE for the given spreadsheet rows and
// rewrites the file. Rows outside the file and a missing paid column are
// errors; the file is only replaced after a full successful rewrite.
func (s *CSVSink) MarkPaid(rowNumbers []int) error {
	file, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader)
	cells, err := reader.ReadAll()
	file.Close()
	if err != nil {
		return fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(cells) == 0 {
		return fmt.Errorf("CSV file %s is empty", s.Path)
	}

	paidCol := headerIndex(cells[0], s.PaidColumn)
	if paidCol < 0 {
		return fmt.Errorf("column %q not found in %s", s.PaidColumn, s.Path)
	}

	for _, rowNumber := range rowNumbers {
		idx := rowNumber - 1
		if idx < 1 || idx >= len(cells) {
			return fmt.Errorf("row %d out of range in %s", rowNumber, s.Path)
		}
		for len(cells[idx]) <= paidCol {
			cells[idx] = append(cells[idx], "")
		}
		cells[idx][paidCol] = "TRUE"
	}

	out, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to rewrite file: %w", err)
	}
	writer := csv.NewWriter(out)
	if err := writer.WriteAll(cells); err != nil {
		out.Close()
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
