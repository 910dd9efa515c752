// =============================================================================
// PO3 Payment Batch Generator - Attachment Upload Pipeline
// =============================================================================
//
// After the batch file has been written, the supporting documents of the
// accepted rows are uploaded to the bookkeeping service. The whole pipeline
// is best-effort: it runs only after successful file emission, each failure
// is logged per record and swallowed, and nothing here can unwind the
// already-emitted file.
//
// =============================================================================

package attach

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/klubbkassan/po3gen/internal/po3"
)

// Client uploads documents to the bookkeeping service.
type Client struct {
	// BaseURL is the service root; documents go to BaseURL/attachments.
	BaseURL string

	// Token is the bearer token for the service.
	Token string

	// HTTPClient is the client used for uploads. Nil means
	// http.DefaultClient.
	HTTPClient *http.Client
}

// Document is one supporting document to upload.
type Document struct {
	// Type is the bookkeeping document type: "Receipt" or "Invoice".
	Type string

	// Description accompanies the document, "activity - description".
	Description string

	// FileName is the original file name of the document.
	FileName string

	// Content is the document body.
	Content []byte
}

// Upload posts one document to the bookkeeping service as a multipart
// request.
func (c *Client) Upload(ctx context.Context, doc Document) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("document_type", doc.Type); err != nil {
		return err
	}
	if err := writer.WriteField("description", doc.Description); err != nil {
		return err
	}
	part, err := writer.CreateFormFile("file", doc.FileName)
	if err != nil {
		return err
	}
	if _, err := part.Write(doc.Content); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/attachments", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused; the body itself is not needed.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload returned status %d", resp.StatusCode)
	}
	return nil
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline fetches and uploads the attachments of accepted batch rows.
type Pipeline struct {
	Client  *Client
	Fetcher Fetcher
	Logger  *slog.Logger
}

// Run processes the accepted rows and returns the number of documents
// uploaded. Rows without an attachment URL are skipped; every failure is
// logged and processing continues with the next row.
func (p *Pipeline) Run(ctx context.Context, accepted []po3.Accepted) int {
	uploaded := 0
	for _, a := range accepted {
		if a.AttachmentURL == "" {
			p.Logger.Debug("no attachment", "source", string(a.Source), "row", a.RowNumber)
			continue
		}

		content, name, err := p.Fetcher.Fetch(ctx, a.AttachmentURL)
		if err != nil {
			p.Logger.Warn("attachment download failed",
				"source", string(a.Source), "row", a.RowNumber, "name", a.Name, "error", err)
			continue
		}

		doc := Document{
			Type:        a.DocumentType(),
			Description: a.Description,
			FileName:    name,
			Content:     content,
		}
		if err := p.Client.Upload(ctx, doc); err != nil {
			p.Logger.Warn("attachment upload failed",
				"source", string(a.Source), "row", a.RowNumber, "name", a.Name, "error", err)
			continue
		}

		p.Logger.Info("attachment uploaded",
			"source", string(a.Source), "row", a.RowNumber, "name", a.Name, "file", name)
		uploaded++
	}
	return uploaded
}
