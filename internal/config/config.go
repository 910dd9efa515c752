// =============================================================================
// PO3 Payment Batch Generator - Configuration Module
// =============================================================================
//
// Configuration comes in two layers:
//
//   1. config.yaml       - directories, input format and behavior toggles.
//   2. Environment       - sender identity and credentials: ORG_NUMBER and
//                          ACCOUNT_NUMBER (required), bookkeeping API
//                          settings, optional source path overrides. A
//                          .env file is loaded first when present.
//
// The sender identity is validated here, before any row is processed:
// a missing or ill-sized organization or account number is a fatal
// configuration error, never a per-row diagnostic.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// The header embeds the organization number unpadded and the account number
// left-justified in a 10-wide field; these bounds keep the header line at
// exactly 80 columns.
const (
	orgNumberLength    = 10
	accountNumberWidth = 10
)

// =============================================================================
// FILE CONFIGURATION (config.yaml)
// =============================================================================

// FileConfig holds the settings read from the YAML configuration file.
type FileConfig struct {
	// InputFormat selects the source reader: "csv" or "xlsx".
	// Default: "csv"
	InputFormat string `yaml:"input_format"`

	// ExpensePath is the expense sheet (CSV file or XLSX workbook).
	ExpensePath string `yaml:"expense_path"`

	// InvoicePath is the invoice sheet (CSV file or XLSX workbook).
	InvoicePath string `yaml:"invoice_path"`

	// SheetName is the worksheet to read in XLSX mode. Empty selects the
	// first sheet of each workbook.
	SheetName string `yaml:"sheet_name"`

	// OutputDir is where the batch file is written.
	// Default: "."
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir receives a copy of each emitted batch file when
	// ArchiveOutput is set.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveOutput enables archival of emitted batch files.
	ArchiveOutput bool `yaml:"archive_output"`

	// MarkPaid enables the paid-flag write-back to the source sheets
	// after the batch file has been written.
	MarkPaid bool `yaml:"mark_paid"`

	// UploadAttachments enables the post-emission attachment upload to
	// the bookkeeping service.
	UploadAttachments bool `yaml:"upload_attachments"`
}

// =============================================================================
// ENVIRONMENT CONFIGURATION
// =============================================================================

// EnvConfig holds the settings read from environment variables.
type EnvConfig struct {
	// OrgNumber is the sender's organization number, embedded verbatim
	// in the batch header.
	OrgNumber string `envconfig:"ORG_NUMBER" required:"true"`

	// AccountNumber is the settlement account number.
	AccountNumber string `envconfig:"ACCOUNT_NUMBER" required:"true"`

	// ExpensePath / InvoicePath override the YAML source paths when set.
	ExpensePath string `envconfig:"EXPENSE_PATH"`
	InvoicePath string `envconfig:"INVOICE_PATH"`

	// Bookkeeping service endpoint for attachment uploads.
	BookkeepingURL   string `envconfig:"BOOKKEEPING_API_URL"`
	BookkeepingToken string `envconfig:"BOOKKEEPING_API_TOKEN"`
}

// Config is the merged runtime configuration.
type Config struct {
	FileConfig
	Env EnvConfig
}

// =============================================================================
// LOADING
// =============================================================================

// Load builds the runtime configuration: the YAML file (missing file means
// defaults), then a best-effort .env load, then the environment. The merged
// result is validated before anything else runs.
func Load(configPath, envFile string) (*Config, error) {
	var cfg Config

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg.FileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}
	applyDefaults(&cfg.FileConfig)

	// A .env file is a convenience for local runs; absence is fine.
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	if err := envconfig.Process("", &cfg.Env); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}

	if cfg.Env.ExpensePath != "" {
		cfg.ExpensePath = cfg.Env.ExpensePath
	}
	if cfg.Env.InvoicePath != "" {
		cfg.InvoicePath = cfg.Env.InvoicePath
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset file configuration.
func applyDefaults(cfg *FileConfig) {
	if cfg.InputFormat == "" {
		cfg.InputFormat = "csv"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./archive"
	}
}

// validate checks the merged configuration.
func validate(cfg *Config) error {
	if cfg.InputFormat != "csv" && cfg.InputFormat != "xlsx" {
		return fmt.Errorf("input_format must be \"csv\" or \"xlsx\", got %q", cfg.InputFormat)
	}
	if cfg.ExpensePath == "" {
		return fmt.Errorf("expense sheet path not configured (expense_path or EXPENSE_PATH)")
	}
	if cfg.InvoicePath == "" {
		return fmt.Errorf("invoice sheet path not configured (invoice_path or INVOICE_PATH)")
	}
	if len(cfg.Env.OrgNumber) != orgNumberLength {
		return fmt.Errorf("ORG_NUMBER must be exactly %d characters, got %d", orgNumberLength, len(cfg.Env.OrgNumber))
	}
	if len(cfg.Env.AccountNumber) > accountNumberWidth {
		return fmt.Errorf("ACCOUNT_NUMBER must be at most %d characters, got %d", accountNumberWidth, len(cfg.Env.AccountNumber))
	}
	if cfg.UploadAttachments && cfg.Env.BookkeepingURL == "" {
		return fmt.Errorf("upload_attachments is enabled but BOOKKEEPING_API_URL is not set")
	}
	return nil
}
