package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klubbkassan/po3gen/internal/model"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const expenseCSV = "Godkänt,Utbetalt,Belopp,Verksamhet,Ditt namn,Kort beskrivning av köp,Clearingnummer,Kontonummer\n" +
	"TRUE,FALSE,150.00,Resa,Anna Andersson,Tåg,3300,1234567\n" +
	",,,,,,,\n" +
	"TRUE,FALSE,99.50,Fika,Björn Berg,Kanelbullar,8327,7654321\n"

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(writeCSV(t, expenseCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Anna Andersson", rows[0].Get(model.ColName))
	assert.Equal(t, "150.00", rows[0].Get(model.ColAmount))
	assert.Equal(t, "Kanelbullar", rows[1].Get(model.ColDescription))

	// Absent columns read as empty, never panic.
	assert.Equal(t, "", rows[0].Get("Nonexistent"))
}

func TestReadCSVRowNumbersKeepSheetPosition(t *testing.T) {
	rows, err := ReadCSV(writeCSV(t, expenseCSV))
	require.NoError(t, err)

	// Header is row 1; the blank row 3 is skipped but row 4 keeps its
	// position for the write-back.
	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, 4, rows[1].Number)
}

func TestReadCSVTrimsCells(t *testing.T) {
	rows, err := ReadCSV(writeCSV(t,
		"Godkänt,Belopp\n  TRUE  , 150.00 \n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "TRUE", rows[0].Get(model.ColApproved))
	assert.Equal(t, "150.00", rows[0].Get(model.ColAmount))
}

func TestReadCSVUnevenColumns(t *testing.T) {
	rows, err := ReadCSV(writeCSV(t,
		"Godkänt,Belopp,Verksamhet\nTRUE,150.00\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "", rows[0].Get(model.ColActivity))
}

func TestReadCSVEmptyFile(t *testing.T) {
	_, err := ReadCSV(writeCSV(t, ""))
	assert.Error(t, err)
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestCSVSinkMarkPaid(t *testing.T) {
	path := writeCSV(t, expenseCSV)
	sink := &CSVSink{Path: path, PaidColumn: model.ColPaid}

	require.NoError(t, sink.MarkPaid([]int{2}))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "TRUE", rows[0].Get(model.ColPaid))
	assert.Equal(t, "FALSE", rows[1].Get(model.ColPaid))

	// The rest of the row survives the rewrite.
	assert.Equal(t, "Anna Andersson", rows[0].Get(model.ColName))
}

func TestCSVSinkMarkPaidRowOutOfRange(t *testing.T) {
	sink := &CSVSink{Path: writeCSV(t, expenseCSV), PaidColumn: model.ColPaid}
	assert.Error(t, sink.MarkPaid([]int{99}))
	assert.Error(t, sink.MarkPaid([]int{1})) // header row is never a target
}

func TestCSVSinkMarkPaidMissingColumn(t *testing.T) {
	sink := &CSVSink{Path: writeCSV(t, expenseCSV), PaidColumn: "Betald"}
	assert.Error(t, sink.MarkPaid([]int{2}))
}
