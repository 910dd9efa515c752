// =============================================================================
// PO3 Payment Batch Generator - Root Command
// =============================================================================
//
// The root command sets up the global flags and logging. Subcommands:
//
//   po3gen
//   ├── generate   (build the PO3 batch file)
//   ├── validate   (eligibility dry-run, no file written)
//   └── version    (build information)
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile is the path to the YAML configuration file (--config).
var cfgFile string

// envFile is the path to the .env file (--env-file); empty means the
// default ".env" lookup.
var envFile string

// verbose enables debug logging (--verbose).
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "po3gen",
	Short: "Generate PO3 payment batch files from expense and invoice sheets",
	Long: `po3gen reads approved, unpaid expense and invoice rows from CSV or XLSX
sheets and assembles them into a fixed-width PO3 payment batch file for
Bankgirot. After a successful run it can mark the source rows as paid and
upload the attached receipts and invoices to the bookkeeping service.

Example Usage:
  po3gen generate                      # Build the batch file
  po3gen generate --dry-run            # Show what would be generated
  po3gen validate                      # Check row eligibility only`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns the logger for a command run, honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the YAML configuration file",
	)
	rootCmd.PersistentFlags().StringVar(
		&envFile,
		"env-file",
		"",
		"Path to a .env file (default is .env in the working directory)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
