// =============================================================================
// PO3 Payment Batch Generator - Generate Command
// =============================================================================
//
// The 'generate' command runs the full pipeline:
//
//   1. Load configuration (fatal if the sender identity is missing)
//   2. Read the expense and invoice sheets
//   3. Validate rows and assemble the batch (rejected rows are reported
//      and skipped, never fatal)
//   4. Write the batch file, unless the batch is empty or --dry-run is set
//   5. Archive the emitted file (optional)
//   6. Mark accepted source rows as paid (optional, best-effort)
//   7. Upload attached documents to the bookkeeping service (optional,
//      best-effort, never blocks or unwinds the emitted file)
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/klubbkassan/po3gen/internal/attach"
	"github.com/klubbkassan/po3gen/internal/config"
	"github.com/klubbkassan/po3gen/internal/ingest"
	"github.com/klubbkassan/po3gen/internal/model"
	"github.com/klubbkassan/po3gen/internal/po3"
	"github.com/klubbkassan/po3gen/internal/validate"
	"github.com/klubbkassan/po3gen/pkg/utils"
)

// dryRun assembles and reports but writes nothing and performs no
// side effects.
var dryRun bool

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the PO3 batch file from the configured sheets",
	Long: `The generate command reads the expense and invoice sheets, validates each
row, and writes the eligible payments as one PO3 batch file. Ineligible rows
are reported and skipped; they never abort the run.

When no row is eligible, no file is written at all - the format does not
allow a batch with only a header and trailer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Assemble and report without writing the batch file",
	)
}

// runGenerate orchestrates the pipeline.
func runGenerate() error {
	logger := newLogger()

	cfg, err := config.Load(cfgFile, envFile)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	expenses, invoices, err := readSheets(cfg)
	if err != nil {
		return err
	}
	logger.Debug("sheets loaded", "expenses", len(expenses), "invoices", len(invoices))

	encoder := po3.NewEncoder(cfg.Env.OrgNumber, cfg.Env.AccountNumber)
	assembler := po3.NewAssembler(encoder)
	batch, rejections := assembler.Assemble(expenses, invoices)

	// One diagnostic line per skipped row. Rows that simply are not
	// approved yet are routine and only shown under --verbose.
	var notApproved *validate.NotApprovedError
	for _, r := range rejections {
		if errors.As(r.Reason, &notApproved) {
			logger.Debug("row not approved", "source", string(r.Source), "row", r.RowNumber)
			continue
		}
		fmt.Printf("  ✗ skipped %s row %d: %v\n", r.Source, r.RowNumber, r.Reason)
	}

	if batch.Empty() {
		fmt.Println("No payments to process.")
		return nil
	}

	fileName := po3.FileName(encoder.Now())
	outPath := filepath.Join(cfg.OutputDir, fileName)

	if dryRun {
		fmt.Printf("Dry run: would write %d payment(s) to %s\n", batch.RowCount, outPath)
		fmt.Printf("Total amount: %.2f %s\n", batch.TotalAmount, po3.Currency)
		return nil
	}

	fm := utils.NewFileManager(cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureOutputDir(); err != nil {
		return err
	}
	if err := po3.Write(outPath, batch); err != nil {
		return err
	}

	if cfg.ArchiveOutput {
		if archived, err := fm.ArchiveBatchFile(outPath); err != nil {
			logger.Warn("archival failed", "error", err)
		} else {
			logger.Debug("batch file archived", "path", archived)
		}
	}

	// Side effects run strictly after the file exists on disk; their
	// failures are reported but leave the emitted file valid.
	if cfg.MarkPaid {
		markPaid(cfg, batch, logger)
	}
	if cfg.UploadAttachments {
		uploadAttachments(cfg, batch, logger)
	}

	fmt.Printf("✓ %d payments written to: %s\n", batch.RowCount, outPath)
	fmt.Printf("✓ Total amount: %.2f %s\n", batch.TotalAmount, po3.Currency)
	return nil
}

// readSheets loads both source sheets in the configured format.
func readSheets(cfg *config.Config) (expenses, invoices []ingest.Row, err error) {
	if cfg.InputFormat == "xlsx" {
		expenses, err = ingest.ReadXLSX(cfg.ExpensePath, cfg.SheetName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load expenses: %w", err)
		}
		invoices, err = ingest.ReadXLSX(cfg.InvoicePath, cfg.SheetName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load invoices: %w", err)
		}
		return expenses, invoices, nil
	}

	expenses, err = ingest.ReadCSV(cfg.ExpensePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	invoices, err = ingest.ReadCSV(cfg.InvoicePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return expenses, invoices, nil
}

// markPaid writes the paid flag back to both source sheets.
func markPaid(cfg *config.Config, batch *po3.Batch, logger *slog.Logger) {
	sinks := map[po3.Source]ingest.PaidSink{
		po3.SourceExpense: paidSink(cfg, cfg.ExpensePath),
		po3.SourceInvoice: paidSink(cfg, cfg.InvoicePath),
	}

	for source, sink := range sinks {
		rows := batch.RowNumbers(source)
		if len(rows) == 0 {
			continue
		}
		if err := sink.MarkPaid(rows); err != nil {
			logger.Warn("paid write-back failed", "source", string(source), "error", err)
			continue
		}
		logger.Debug("rows marked as paid", "source", string(source), "count", len(rows))
	}
}

// paidSink builds the write-back sink matching the input format.
func paidSink(cfg *config.Config, path string) ingest.PaidSink {
	if cfg.InputFormat == "xlsx" {
		return &ingest.XLSXSink{Path: path, Sheet: cfg.SheetName, PaidColumn: model.ColPaid}
	}
	return &ingest.CSVSink{Path: path, PaidColumn: model.ColPaid}
}

// uploadAttachments runs the attachment pipeline for the accepted rows.
func uploadAttachments(cfg *config.Config, batch *po3.Batch, logger *slog.Logger) {
	pipeline := &attach.Pipeline{
		Client: &attach.Client{
			BaseURL: cfg.Env.BookkeepingURL,
			Token:   cfg.Env.BookkeepingToken,
		},
		Fetcher: &attach.DriveFetcher{},
		Logger:  logger,
	}
	uploaded := pipeline.Run(context.Background(), batch.Accepted)
	fmt.Printf("✓ %d attachment(s) uploaded\n", uploaded)
}
