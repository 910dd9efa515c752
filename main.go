// =============================================================================
// PO3 Payment Batch Generator - Main Entry Point
// =============================================================================
//
// po3gen converts rows of expense and invoice records (sourced from CSV or
// XLSX spreadsheets) into a fixed-width payment batch file in the PO3 format
// accepted by Bankgirot, optionally marks the source rows as paid, and
// uploads supporting documents to the bookkeeping service.
//
// USAGE:
//   po3gen generate      - Build the PO3 batch file from the configured sources
//   po3gen validate      - Check row eligibility without writing a file
//   po3gen version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/klubbkassan/po3gen/cmd"
)

func main() {
	cmd.Execute()
}
