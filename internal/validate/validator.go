// =============================================================================
// PO3 Payment Batch Generator - Record Validator
// =============================================================================
//
// This module turns a raw sheet row into a fully-typed payment record, or
// rejects it. A row is eligible for encoding iff its approval flag is true
// and every field required by its variant is present after normalization.
//
// NORMALIZATION RULES:
//   - Booleans: true iff the trimmed value equals "true" case-insensitively.
//     Everything else (blank, "false", "1", "yes") is false. Deliberately
//     strict; no locale-aware or numeric truthiness.
//   - Amounts: thousands commas are stripped, then parsed as a decimal.
//     The decimal separator is always a point, never a comma.
//   - Integer identifiers: commas and surrounding whitespace are stripped,
//     then parsed as an integer.
//   - Free text: trimmed; empty after trimming counts as missing.
//
// ERROR HANDLING:
//   Every rejection is a typed error naming the offending field. Rejections
//   are local to one row: the caller reports and skips, it never aborts the
//   batch.
//
// =============================================================================

package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/klubbkassan/po3gen/internal/ingest"
	"github.com/klubbkassan/po3gen/internal/model"
)

// Identifier column widths in the payment line. A value wider than its
// column would shift every following field, so over-width identifiers are
// rejected rather than truncated.
const (
	clearingNumberWidth = 5
	accountNumberWidth  = 11
)

// =============================================================================
// REJECTION ERRORS
// =============================================================================

// NotApprovedError rejects a row whose approval flag is not set.
type NotApprovedError struct{}

func (*NotApprovedError) Error() string { return "not approved" }

// MissingFieldError rejects a row with a required field that is absent or
// blank after trimming.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// MalformedFieldError rejects a row with a value that cannot be parsed into
// the field's type.
type MalformedFieldError struct {
	Field string
	Value string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed value %q in field %q", e.Value, e.Field)
}

// InvalidEnumError rejects a row whose recipient account type is neither
// Plusgiro nor Bankgiro.
type InvalidEnumError struct {
	Field string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q", e.Value, e.Field)
}

// FieldOverflowError rejects a row whose identifier is wider than its fixed
// column in the payment line.
type FieldOverflowError struct {
	Field string
	Value int64
	Width int
}

func (e *FieldOverflowError) Error() string {
	return fmt.Sprintf("value %d in field %q exceeds column width %d", e.Value, e.Field, e.Width)
}

// =============================================================================
// ROW VALIDATION
// =============================================================================

// Expense validates and types an expense row.
func Expense(row ingest.Row) (*model.ExpenseRecord, error) {
	rec := &model.ExpenseRecord{
		Approved:      parseBool(row.Get(model.ColApproved)),
		Paid:          parseBool(row.Get(model.ColPaid)),
		AttachmentURL: strings.TrimSpace(row.Get(model.ColExpenseAttachment)),
		RowNumber:     row.Number,
	}

	if !rec.Approved {
		return nil, &NotApprovedError{}
	}

	var err error
	if rec.Amount, err = parseAmount(model.ColAmount, row.Get(model.ColAmount)); err != nil {
		return nil, err
	}
	if rec.Activity, err = requireText(model.ColActivity, row.Get(model.ColActivity)); err != nil {
		return nil, err
	}
	if rec.ClearingNumber, err = parseIdentifier(model.ColClearingNumber, row.Get(model.ColClearingNumber), clearingNumberWidth); err != nil {
		return nil, err
	}
	if rec.AccountNumber, err = parseIdentifier(model.ColBankAccount, row.Get(model.ColBankAccount), accountNumberWidth); err != nil {
		return nil, err
	}
	if rec.PayerName, err = requireText(model.ColName, row.Get(model.ColName)); err != nil {
		return nil, err
	}
	if rec.Description, err = requireText(model.ColDescription, row.Get(model.ColDescription)); err != nil {
		return nil, err
	}

	return rec, nil
}

// Invoice validates and types an invoice row.
func Invoice(row ingest.Row) (*model.InvoiceRecord, error) {
	rec := &model.InvoiceRecord{
		Approved:      parseBool(row.Get(model.ColApproved)),
		Paid:          parseBool(row.Get(model.ColPaid)),
		AttachmentURL: strings.TrimSpace(row.Get(model.ColInvoiceAttachment)),
		RowNumber:     row.Number,
	}

	if !rec.Approved {
		return nil, &NotApprovedError{}
	}

	var err error
	if rec.Amount, err = parseAmount(model.ColAmount, row.Get(model.ColAmount)); err != nil {
		return nil, err
	}
	if rec.Activity, err = requireText(model.ColActivity, row.Get(model.ColActivity)); err != nil {
		return nil, err
	}
	if rec.AccountType, err = parseAccountType(row.Get(model.ColAccountType)); err != nil {
		return nil, err
	}
	if rec.AccountNumber, err = parseIdentifier(model.ColGiroAccount, row.Get(model.ColGiroAccount), accountNumberWidth); err != nil {
		return nil, err
	}
	if rec.Reference, err = requireText(model.ColReference, row.Get(model.ColReference)); err != nil {
		return nil, err
	}
	if rec.PayerName, err = requireText(model.ColName, row.Get(model.ColName)); err != nil {
		return nil, err
	}
	if rec.Description, err = requireText(model.ColDescription, row.Get(model.ColDescription)); err != nil {
		return nil, err
	}
	if rec.RecipientName, err = requireText(model.ColRecipientName, row.Get(model.ColRecipientName)); err != nil {
		return nil, err
	}

	return rec, nil
}

// =============================================================================
// NORMALIZATION HELPERS
// =============================================================================

// parseBool is true iff the trimmed value equals "true" case-insensitively.
func parseBool(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

// parseAmount parses a decimal SEK amount. Thousands commas are stripped;
// the decimal separator is a point. Negative amounts are malformed: the
// batch format carries no sign column.
func parseAmount(field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &MissingFieldError{Field: field}
	}

	cleaned := strings.ReplaceAll(trimmed, ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &MalformedFieldError{Field: field, Value: raw}
	}
	if amount < 0 {
		return 0, &MalformedFieldError{Field: field, Value: raw}
	}

	return amount, nil
}

// parseIdentifier parses a clearing or account number and checks it fits
// its payment-line column.
func parseIdentifier(field, raw string, width int) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &MissingFieldError{Field: field}
	}

	cleaned := strings.ReplaceAll(trimmed, ",", "")
	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || value < 0 {
		return 0, &MalformedFieldError{Field: field, Value: raw}
	}
	if len(strconv.FormatInt(value, 10)) > width {
		return 0, &FieldOverflowError{Field: field, Value: value, Width: width}
	}

	return value, nil
}

// parseAccountType parses the recipient account type enum.
func parseAccountType(raw string) (model.AccountType, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &MissingFieldError{Field: model.ColAccountType}
	}

	switch model.AccountType(trimmed) {
	case model.Plusgiro:
		return model.Plusgiro, nil
	case model.Bankgiro:
		return model.Bankgiro, nil
	}
	return "", &InvalidEnumError{Field: model.ColAccountType, Value: trimmed}
}

// requireText trims a free-text field and rejects blank values.
func requireText(field, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &MissingFieldError{Field: field}
	}
	return trimmed, nil
}
