// =============================================================================
// PO3 Payment Batch Generator - Batch Writer
// =============================================================================
//
// Serializes a finalized batch to disk. Lines are joined with a single
// newline, with no trailing newline after the last line, and written as
// UTF-8. No line is altered on the way out: an encoder mistake propagates
// verbatim rather than being papered over here.
//
// =============================================================================

package po3

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Filename pattern expected by the receiving bank process. The embedded
// date is the processing date.
const (
	fileNamePrefix = "utlägg_"
	fileNameSuffix = "_po3.txt"
)

// FileName returns the batch file name for the given processing date,
// e.g. "utlägg_20240315_po3.txt".
func FileName(date time.Time) string {
	return fileNamePrefix + date.Format("20060102") + fileNameSuffix
}

// Render joins the batch lines into the file content.
func Render(batch *Batch) string {
	texts := make([]string, len(batch.Lines))
	for i, line := range batch.Lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

// Write serializes the batch to the given path. Writing an empty batch is
// a programming error upstream, so it is refused here rather than emitting
// a header/trailer-only file.
func Write(path string, batch *Batch) error {
	if batch.Empty() {
		return fmt.Errorf("refusing to write empty batch to %s", path)
	}
	if err := os.WriteFile(path, []byte(Render(batch)), 0o644); err != nil {
		return fmt.Errorf("failed to write batch file: %w", err)
	}
	return nil
}
