// =============================================================================
// PO3 Payment Batch Generator - Field Formatter
// =============================================================================
//
// Pure formatting primitives for the fixed-width PO3 record layout: padding,
// truncation and the SEK-to-öre amount conversion. Widths are counted in
// characters, not bytes; the source sheets carry Swedish text.
//
// Two families of fields exist and must not be mixed up:
//   - Free-text fields (messages, notes, names, references) are padded AND
//     truncated to their column width.
//   - Identifier fields (clearing/account numbers) are padded but never
//     truncated; the validator rejects values that would not fit.
//
// =============================================================================

package po3

import (
	"math"
	"strconv"
	"strings"
)

// Wire constants of the PO3 format.
const (
	// LineLength is the exact width of every record line.
	LineLength = 80

	// Currency is the only currency the format carries.
	Currency = "SEK"

	// Record type codes, first four columns of every line.
	RecordTypeHeader      = "MH00"
	RecordTypePayment     = "PI00"
	RecordTypeNote        = "BA00"
	RecordTypeBeneficiary = "BE01"
	RecordTypeTrailer     = "MT00"

	// Payment sub-codes, columns 5-6 of a PI00 line.
	ExpenseCode  = "09"
	PlusgiroCode = "00"
	BankgiroCode = "05"
)

// MinorUnits converts a SEK amount to öre, rounding half to even. Each
// payment line is converted independently; the trailer total is the sum of
// the already-rounded per-line values, never a rounding of the summed
// SEK total.
func MinorUnits(amount float64) int64 {
	return int64(math.RoundToEven(amount * 100))
}

// formatAmount renders an öre amount zero-padded to the given width.
func formatAmount(minor int64, width int) string {
	return zeroPad(minor, width)
}

// zeroPad renders n as a decimal string left-padded with zeros.
func zeroPad(n int64, width int) string {
	s := strconv.FormatInt(n, 10)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// padRight left-justifies s in a field of the given character width. The
// value is never truncated; callers must guarantee it fits.
func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// clipRight left-justifies s in a field of the given character width,
// truncating when the text is too long. Used only for free-text fields.
func clipRight(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// spaces returns n space characters.
func spaces(n int) string {
	return strings.Repeat(" ", n)
}

// composeMessage builds the payment-line message text: activity and
// description joined by a single space.
func composeMessage(activity, description string) string {
	return activity + " " + description
}

// composeNote builds the note-line text: activity, description and payer
// name joined by single spaces. The same composed string feeds both BA00
// note fields, each independently truncated to its own width.
func composeNote(activity, description, name string) string {
	return composeMessage(activity, description) + " " + name
}
