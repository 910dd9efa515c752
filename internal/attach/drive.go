// =============================================================================
// PO3 Payment Batch Generator - Attachment Fetching
// =============================================================================
//
// Receipts and invoices are attached to the source sheets as drive
// shared-link URLs. This file extracts the file ID from the link shapes
// that occur in practice and downloads the document content.
//
// =============================================================================

package attach

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"
)

// The observed shared-link shapes:
//   https://drive.google.com/file/d/FILE_ID/view
//   https://drive.google.com/open?id=FILE_ID
//   https://docs.google.com/spreadsheets/d/FILE_ID/edit
// plus a bare file ID with no URL around it.
var (
	pathIDPattern  = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	queryIDPattern = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
	bareIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// FileIDFromURL extracts the drive file ID from a shared-link URL. The
// second return value is false when no ID can be found.
func FileIDFromURL(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	if m := pathIDPattern.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if m := queryIDPattern.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if bareIDPattern.MatchString(url) {
		return url, true
	}
	return "", false
}

// Fetcher downloads an attachment referenced by a shared-link URL.
type Fetcher interface {
	// Fetch returns the document content and a file name for it.
	Fetch(ctx context.Context, url string) (content []byte, name string, err error)
}

// DriveFetcher downloads documents through the drive direct-download
// endpoint, which works for link-shared files without authentication.
type DriveFetcher struct {
	// BaseURL is the direct-download endpoint. Empty means the public
	// drive endpoint; tests point it at a local server.
	BaseURL string

	// HTTPClient is the client used for downloads. Nil means
	// http.DefaultClient.
	HTTPClient *http.Client
}

const defaultDriveBaseURL = "https://drive.google.com/uc?export=download"

// Fetch downloads the document behind a shared-link URL.
func (f *DriveFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	fileID, ok := FileIDFromURL(url)
	if !ok {
		return nil, "", fmt.Errorf("no file ID in attachment URL %q", url)
	}

	base := f.BaseURL
	if base == "" {
		base = defaultDriveBaseURL
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+sep+"id="+fileID, nil)
	if err != nil {
		return nil, "", err
	}

	client := f.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("attachment download returned status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read attachment: %w", err)
	}

	return content, fileName(resp, fileID), nil
}

// fileName derives a file name from the Content-Disposition header,
// falling back to the file ID.
func fileName(resp *http.Response, fileID string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return name
			}
		}
	}
	return fileID
}
