// =============================================================================
// PO3 Payment Batch Generator - Shared Types
// =============================================================================
//
// This package contains the typed payment records produced by the validator
// and consumed by the encoder, plus the source column names. Types defined
// here are used by:
//   - validate
//   - po3
//   - attach
//
// =============================================================================

package model

// =============================================================================
// SOURCE COLUMN NAMES
// =============================================================================
// The exact column headers of the source spreadsheets, including non-ASCII
// characters. The validator looks rows up by these names.

const (
	// Columns shared by both sheets.
	ColApproved    = "Godkänt"
	ColPaid        = "Utbetalt"
	ColAmount      = "Belopp"
	ColActivity    = "Verksamhet"
	ColName        = "Ditt namn"
	ColDescription = "Kort beskrivning av köp"

	// Expense sheet columns.
	ColClearingNumber    = "Clearingnummer"
	ColBankAccount       = "Kontonummer"
	ColExpenseAttachment = "Ladda upp bild på kvitto"

	// Invoice sheet columns.
	ColAccountType       = "Mottagarkontotyp"
	ColGiroAccount       = "Mottagarkontonummer"
	ColReference         = "OCR/meddelande"
	ColRecipientName     = "Mottagare (namn)"
	ColInvoiceAttachment = "Ladda upp fakturan"
)

// =============================================================================
// ACCOUNT TYPES
// =============================================================================

// AccountType identifies the giro addressing scheme of an invoice recipient.
// Only the two listed values are valid; anything else is a validation
// failure, never a silent default.
type AccountType string

const (
	Plusgiro AccountType = "Plusgiro"
	Bankgiro AccountType = "Bankgiro"
)

// =============================================================================
// PAYMENT RECORDS
// =============================================================================

// ExpenseRecord is a validated expense row: a reimbursement paid to a
// member's own bank account.
type ExpenseRecord struct {
	// Approved reports whether the row has been signed off for payment.
	Approved bool

	// Paid reports whether the row has already been paid out.
	Paid bool

	// Amount is the payment amount in SEK (major units).
	Amount float64

	// Activity is the club activity the expense belongs to.
	Activity string

	// ClearingNumber is the bank clearing number of the payee account.
	ClearingNumber int64

	// AccountNumber is the bank account number of the payee.
	AccountNumber int64

	// PayerName is the member who made the purchase.
	PayerName string

	// Description is a short free-text description of the purchase.
	Description string

	// AttachmentURL is an optional link to the receipt image.
	AttachmentURL string

	// RowNumber is the spreadsheet row the record came from (the header
	// is row 1, the first data row is row 2). Used for diagnostics and
	// the paid-flag write-back.
	RowNumber int
}

// InvoiceRecord is a validated invoice row: a giro payment to an external
// recipient.
type InvoiceRecord struct {
	Approved bool
	Paid     bool
	Amount   float64
	Activity string

	// AccountType selects the giro scheme (Plusgiro or Bankgiro).
	AccountType AccountType

	// AccountNumber is the recipient's giro account number.
	AccountNumber int64

	// Reference is the OCR number or free-text payment reference. It is
	// numeric-looking but kept as text to preserve leading structure.
	Reference string

	PayerName     string
	Description   string
	RecipientName string
	AttachmentURL string
	RowNumber     int
}
