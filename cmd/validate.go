// =============================================================================
// PO3 Payment Batch Generator - Validate Command
// =============================================================================
//
// The 'validate' command runs eligibility checks over both sheets and
// reports what a generate run would accept, without writing anything or
// touching the sources.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klubbkassan/po3gen/internal/config"
	"github.com/klubbkassan/po3gen/internal/validate"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check row eligibility without generating a file",
	Long: `The validate command loads the configured sheets and reports, per row,
whether it would be included in a batch and why not otherwise. Nothing is
written and no source row is modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate reports eligibility for every row of both sheets.
func runValidate() error {
	cfg, err := config.Load(cfgFile, envFile)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	expenses, invoices, err := readSheets(cfg)
	if err != nil {
		return err
	}

	eligible, skipped := 0, 0

	fmt.Printf("Expenses (%s):\n", cfg.ExpensePath)
	for _, row := range expenses {
		if rec, err := validate.Expense(row); err != nil {
			fmt.Printf("  ✗ row %d: %v\n", row.Number, err)
			skipped++
		} else if rec.Paid {
			fmt.Printf("  - row %d: already paid\n", row.Number)
			skipped++
		} else {
			fmt.Printf("  ✓ row %d: %s, %.2f SEK\n", row.Number, rec.PayerName, rec.Amount)
			eligible++
		}
	}

	fmt.Printf("Invoices (%s):\n", cfg.InvoicePath)
	for _, row := range invoices {
		if rec, err := validate.Invoice(row); err != nil {
			fmt.Printf("  ✗ row %d: %v\n", row.Number, err)
			skipped++
		} else if rec.Paid {
			fmt.Printf("  - row %d: already paid\n", row.Number)
			skipped++
		} else {
			fmt.Printf("  ✓ row %d: %s, %.2f SEK\n", row.Number, rec.RecipientName, rec.Amount)
			eligible++
		}
	}

	fmt.Printf("\n%d eligible, %d skipped\n", eligible, skipped)
	return nil
}
