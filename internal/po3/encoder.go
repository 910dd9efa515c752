// =============================================================================
// PO3 Payment Batch Generator - Record Encoder
// =============================================================================
//
// Deterministic mapping from a typed payment record to fixed-width record
// lines of exactly 80 characters, space-padded. This is the wire contract
// with the receiving bank process and must be reproduced bit-exactly.
//
// RECORD LAYOUT (1-indexed, inclusive column ranges):
//
//   MH00 header     : code 1-4, 8 spaces, organization number (10),
//                     12 spaces, account number left-justified (10),
//                     "SEK", 6 spaces, "SEK", 24 spaces.
//   PI00 expense    : code 1-4, sub-code "09", clearing left-justified (5),
//                     account left-justified (11), 2 spaces, date YYYYMMDD,
//                     amount in öre zero-padded (13), message (12),
//                     23 spaces.
//   PI00 giro       : code 1-4, sub-code "00"/"05", 5 spaces, account
//                     left-justified (11), 2 spaces, date YYYYMMDD, amount
//                     in öre zero-padded (13), OCR/reference (25),
//                     10 spaces.
//   BA00 note       : code 1-4, note (18), 9 spaces, note again (35),
//                     14 spaces. Both fields carry the same composed note,
//                     independently truncated.
//   BE01 beneficiary: code 1-4, 18 spaces, display name left-justified (58).
//   MT00 trailer    : code 1-4, 25 spaces, row count zero-padded (7), total
//                     in öre zero-padded (15), 29 spaces.
//
// Every payment line stamps the processing date, not anything from the
// record itself. The clock is injected so tests can assert exact output.
//
// =============================================================================

package po3

import (
	"strconv"
	"time"

	"github.com/klubbkassan/po3gen/internal/model"
)

// Line is one encoded 80-character record line, tagged by its record type
// code. Lines are immutable once produced.
type Line struct {
	// Code is the 4-character record type code (also the first four
	// characters of Text).
	Code string

	// Text is the full 80-character line.
	Text string
}

// Encoder produces PO3 record lines for one configured sender.
type Encoder struct {
	// OrgNumber is the sender's organization number, embedded unpadded
	// in the header. Must be 10 characters for the header to come out at
	// 80 columns; the configuration layer enforces this.
	OrgNumber string

	// AccountNumber is the settlement account, left-justified in a
	// 10-wide header field.
	AccountNumber string

	// Now supplies the processing date stamped into payment lines.
	Now func() time.Time
}

// NewEncoder returns an Encoder using the wall clock.
func NewEncoder(orgNumber, accountNumber string) *Encoder {
	return &Encoder{
		OrgNumber:     orgNumber,
		AccountNumber: accountNumber,
		Now:           time.Now,
	}
}

// date renders the processing date as an 8-digit YYYYMMDD stamp.
func (e *Encoder) date() string {
	return e.Now().Format("20060102")
}

// =============================================================================
// BATCH FRAMING
// =============================================================================

// Header encodes the MH00 batch header.
func (e *Encoder) Header() Line {
	text := RecordTypeHeader +
		spaces(8) +
		e.OrgNumber +
		spaces(12) +
		padRight(e.AccountNumber, 10) +
		Currency +
		spaces(6) +
		Currency +
		spaces(24)
	return Line{Code: RecordTypeHeader, Text: text}
}

// Trailer encodes the MT00 batch trailer. rowCount is the number of payment
// lines; totalMinor is the sum of the per-line öre amounts.
func (e *Encoder) Trailer(rowCount int, totalMinor int64) Line {
	text := RecordTypeTrailer +
		spaces(25) +
		zeroPad(int64(rowCount), 7) +
		formatAmount(totalMinor, 15) +
		spaces(29)
	return Line{Code: RecordTypeTrailer, Text: text}
}

// =============================================================================
// PAYMENT RECORDS
// =============================================================================

// ExpenseLines encodes an expense record as its full three-line sequence:
// payment, note, beneficiary, always in that order.
func (e *Encoder) ExpenseLines(rec *model.ExpenseRecord) []Line {
	return []Line{
		e.expensePayment(rec),
		e.note(composeNote(rec.Activity, rec.Description, rec.PayerName)),
		e.beneficiary(rec.PayerName),
	}
}

// InvoiceLines encodes an invoice record as its full three-line sequence:
// payment, note, beneficiary, always in that order.
func (e *Encoder) InvoiceLines(rec *model.InvoiceRecord) []Line {
	return []Line{
		e.giroPayment(rec),
		e.note(composeNote(rec.Activity, rec.Description, rec.PayerName)),
		e.beneficiary(rec.RecipientName),
	}
}

// expensePayment encodes a PI00 line for a bank account payment.
func (e *Encoder) expensePayment(rec *model.ExpenseRecord) Line {
	text := RecordTypePayment +
		ExpenseCode +
		padRight(formatInt(rec.ClearingNumber), 5) +
		padRight(formatInt(rec.AccountNumber), 11) +
		spaces(2) +
		e.date() +
		formatAmount(MinorUnits(rec.Amount), 13) +
		clipRight(composeMessage(rec.Activity, rec.Description), 12) +
		spaces(23)
	return Line{Code: RecordTypePayment, Text: text}
}

// giroPayment encodes a PI00 line for a Plusgiro or Bankgiro payment.
func (e *Encoder) giroPayment(rec *model.InvoiceRecord) Line {
	text := RecordTypePayment +
		giroCode(rec.AccountType) +
		spaces(5) +
		padRight(formatInt(rec.AccountNumber), 11) +
		spaces(2) +
		e.date() +
		formatAmount(MinorUnits(rec.Amount), 13) +
		clipRight(rec.Reference, 25) +
		spaces(10)
	return Line{Code: RecordTypePayment, Text: text}
}

// note encodes a BA00 line carrying the composed note in both its fields.
func (e *Encoder) note(note string) Line {
	text := RecordTypeNote +
		clipRight(note, 18) +
		spaces(9) +
		clipRight(note, 35) +
		spaces(14)
	return Line{Code: RecordTypeNote, Text: text}
}

// beneficiary encodes a BE01 line with the recipient display name.
func (e *Encoder) beneficiary(name string) Line {
	text := RecordTypeBeneficiary +
		spaces(18) +
		clipRight(name, 58)
	return Line{Code: RecordTypeBeneficiary, Text: text}
}

// giroCode maps the recipient account type to its payment sub-code.
func giroCode(t model.AccountType) string {
	if t == model.Plusgiro {
		return PlusgiroCode
	}
	return BankgiroCode
}

// formatInt renders an identifier as unpadded decimal digits.
func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
