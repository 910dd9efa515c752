// =============================================================================
// PO3 Payment Batch Generator - File Manager Utility
// =============================================================================
//
// Directory management and archival for emitted batch files. Repeated runs
// on the same day produce the same batch file name, so archive copies get
// a short unique suffix to never collide.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileManager handles output and archive directories for batch files.
type FileManager struct {
	// OutputDir is where batch files are written.
	OutputDir string

	// ArchiveDir receives copies of emitted batch files.
	ArchiveDir string
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{OutputDir: outputDir, ArchiveDir: archiveDir}
}

// EnsureOutputDir creates the output directory if it does not exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// ArchiveBatchFile copies an emitted batch file into the archive directory
// under a collision-free name and returns the archive path. The batch file
// name already carries the processing date.
//
// Example: utlägg_20240315_po3.txt -> archive/utlägg_20240315_po3_1a2b3c4d.txt
func (fm *FileManager) ArchiveBatchFile(path string) (string, error) {
	if err := os.MkdirAll(fm.ArchiveDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", fm.ArchiveDir, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	short := uuid.New().String()[:8]
	archived := filepath.Join(fm.ArchiveDir, fmt.Sprintf("%s_%s%s", stem, short, ext))

	if err := copyFile(path, archived); err != nil {
		return "", err
	}
	return archived, nil
}

// copyFile copies src to dst, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy to %s: %w", dst, err)
	}
	return out.Close()
}
