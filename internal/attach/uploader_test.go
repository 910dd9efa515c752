package attach

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klubbkassan/po3gen/internal/po3"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientUpload(t *testing.T) {
	var (
		gotAuth     string
		gotType     string
		gotDesc     string
		gotFileName string
		gotContent  []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/attachments", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotType = r.FormValue("document_type")
		gotDesc = r.FormValue("description")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFileName = header.Filename
		gotContent, err = io.ReadAll(file)
		require.NoError(t, err)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, Token: "secret-token"}
	err := client.Upload(context.Background(), Document{
		Type:        "Receipt",
		Description: "Resa - Tåg",
		FileName:    "kvitto.pdf",
		Content:     []byte("%PDF-fake"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "Receipt", gotType)
	assert.Equal(t, "Resa - Tåg", gotDesc)
	assert.Equal(t, "kvitto.pdf", gotFileName)
	assert.Equal(t, []byte("%PDF-fake"), gotContent)
}

func TestClientUploadRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL}
	err := client.Upload(context.Background(), Document{Type: "Receipt"})
	assert.Error(t, err)
}

func TestPipelineRun(t *testing.T) {
	drive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "broken" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Write([]byte("content"))
	}))
	defer drive.Close()

	uploads := 0
	service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploads++
		w.WriteHeader(http.StatusOK)
	}))
	defer service.Close()

	pipeline := &Pipeline{
		Client:  &Client{BaseURL: service.URL},
		Fetcher: &DriveFetcher{BaseURL: drive.URL},
		Logger:  discardLogger(),
	}

	accepted := []po3.Accepted{
		{Source: po3.SourceExpense, RowNumber: 2, Name: "Anna Andersson",
			Description: "Resa - Tåg", AttachmentURL: "https://drive.google.com/file/d/ok1/view"},
		{Source: po3.SourceExpense, RowNumber: 3, Name: "Björn Berg"}, // no attachment
		{Source: po3.SourceInvoice, RowNumber: 2, Name: "Stugvärden AB",
			Description: "Läger - Hyra", AttachmentURL: "https://drive.google.com/open?id=broken"},
		{Source: po3.SourceInvoice, RowNumber: 4, Name: "Stugvärden AB",
			Description: "Läger - Hyra", AttachmentURL: "ok2"},
	}

	uploaded := pipeline.Run(context.Background(), accepted)

	// One skipped, one failed download, two uploaded; failures never stop
	// the remaining rows.
	assert.Equal(t, 2, uploaded)
	assert.Equal(t, 2, uploads)
}

func TestPipelineSurvivesUploadFailure(t *testing.T) {
	drive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("content"))
	}))
	defer drive.Close()

	service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer service.Close()

	pipeline := &Pipeline{
		Client:  &Client{BaseURL: service.URL},
		Fetcher: &DriveFetcher{BaseURL: drive.URL},
		Logger:  discardLogger(),
	}

	uploaded := pipeline.Run(context.Background(), []po3.Accepted{
		{Source: po3.SourceExpense, RowNumber: 2, AttachmentURL: "ok1"},
	})

	assert.Equal(t, 0, uploaded)
}
