// =============================================================================
// PO3 Payment Batch Generator - Batch Assembler
// =============================================================================
//
// The assembler runs the eligible rows of both sources through the encoder
// and wraps the result with the batch header and trailer. Assembly is a
// single sequential pass with no side effects: the paid-flag write-back and
// the attachment uploads are driven by the caller afterwards, from the
// accepted-row list the batch carries.
//
// PROCESSING ORDER:
//   All expense rows first (in sheet order), then all invoice rows (in
//   sheet order). The receiving bank process may assume this order.
//
// ROUNDING:
//   Each payment line's öre amount is rounded independently; the trailer
//   total is the running sum of those per-line integers. Summing first and
//   rounding once can drift by an öre and would desynchronize the trailer
//   from the lines.
//
// =============================================================================

package po3

import (
	"github.com/klubbkassan/po3gen/internal/ingest"
	"github.com/klubbkassan/po3gen/internal/validate"
)

// Source names the sheet a row came from.
type Source string

const (
	SourceExpense Source = "expense"
	SourceInvoice Source = "invoice"
)

// Rejection is a skipped row and the reason it was skipped. Rejections are
// diagnostics, not failures: the batch is built from the remaining rows.
type Rejection struct {
	Source    Source
	RowNumber int
	Reason    error
}

// Accepted identifies a row that contributed a payment to the batch. The
// caller uses these for the paid-flag write-back and the attachment upload
// phase.
type Accepted struct {
	Source    Source
	RowNumber int

	// Name is the display name used in logs: the payer for expenses, the
	// recipient for invoices.
	Name string

	// Description is "activity - description", the document description
	// sent along with an uploaded attachment.
	Description string

	// AttachmentURL is the optional supporting-document link.
	AttachmentURL string
}

// Batch is the assembled, finalized line sequence plus its aggregates.
type Batch struct {
	// Lines is the full ordered sequence: header first, trailer last.
	// Empty when no row was accepted.
	Lines []Line

	// RowCount is the number of payment lines (one per accepted record;
	// note and beneficiary lines do not count).
	RowCount int

	// TotalAmount is the accepted amount sum in SEK, for the run summary.
	TotalAmount float64

	// TotalMinor is the öre total carried by the trailer: the sum of the
	// per-line rounded öre amounts.
	TotalMinor int64

	// Accepted lists the contributing source rows in batch order.
	Accepted []Accepted
}

// Empty reports whether no record was accepted. An empty batch is a normal
// "nothing to do" outcome; no file is ever written for it.
func (b *Batch) Empty() bool {
	return b.RowCount == 0
}

// RowNumbers returns the accepted spreadsheet rows of one source, for the
// paid-flag write-back.
func (b *Batch) RowNumbers(source Source) []int {
	var rows []int
	for _, a := range b.Accepted {
		if a.Source == source {
			rows = append(rows, a.RowNumber)
		}
	}
	return rows
}

// =============================================================================
// ASSEMBLER
// =============================================================================

// Assembler builds a batch from raw sheet rows.
type Assembler struct {
	Encoder *Encoder
}

// NewAssembler returns an Assembler around the given encoder.
func NewAssembler(encoder *Encoder) *Assembler {
	return &Assembler{Encoder: encoder}
}

// Assemble validates and encodes every row, accumulating the batch and the
// rejection diagnostics. Rows whose paid flag is already set are skipped
// silently; the caller is expected to pre-filter them, this is a guard
// against a stale sheet. When at least one record was accepted the line
// sequence is framed with the header and trailer.
func (a *Assembler) Assemble(expenses, invoices []ingest.Row) (*Batch, []Rejection) {
	batch := &Batch{}
	var rejections []Rejection

	for _, row := range expenses {
		rec, err := validate.Expense(row)
		if err != nil {
			rejections = append(rejections, Rejection{
				Source:    SourceExpense,
				RowNumber: row.Number,
				Reason:    err,
			})
			continue
		}
		if rec.Paid {
			continue
		}
		a.accept(batch, a.Encoder.ExpenseLines(rec), Accepted{
			Source:        SourceExpense,
			RowNumber:     rec.RowNumber,
			Name:          rec.PayerName,
			Description:   rec.Activity + " - " + rec.Description,
			AttachmentURL: rec.AttachmentURL,
		}, rec.Amount)
	}

	for _, row := range invoices {
		rec, err := validate.Invoice(row)
		if err != nil {
			rejections = append(rejections, Rejection{
				Source:    SourceInvoice,
				RowNumber: row.Number,
				Reason:    err,
			})
			continue
		}
		if rec.Paid {
			continue
		}
		a.accept(batch, a.Encoder.InvoiceLines(rec), Accepted{
			Source:        SourceInvoice,
			RowNumber:     rec.RowNumber,
			Name:          rec.RecipientName,
			Description:   rec.Activity + " - " + rec.Description,
			AttachmentURL: rec.AttachmentURL,
		}, rec.Amount)
	}

	if batch.Empty() {
		return batch, rejections
	}

	// Frame the payment lines with the header and trailer.
	framed := make([]Line, 0, len(batch.Lines)+2)
	framed = append(framed, a.Encoder.Header())
	framed = append(framed, batch.Lines...)
	framed = append(framed, a.Encoder.Trailer(batch.RowCount, batch.TotalMinor))
	batch.Lines = framed

	return batch, rejections
}

// accept appends one record's line sequence and updates the aggregates.
func (a *Assembler) accept(batch *Batch, lines []Line, accepted Accepted, amount float64) {
	batch.Lines = append(batch.Lines, lines...)
	batch.RowCount++
	batch.TotalAmount += amount
	batch.TotalMinor += MinorUnits(amount)
	batch.Accepted = append(batch.Accepted, accepted)
}

// DocumentType returns the bookkeeping document type for an accepted row's
// attachment.
func (a Accepted) DocumentType() string {
	if a.Source == SourceInvoice {
		return "Invoice"
	}
	return "Receipt"
}
