package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

// memFile is an in-memory domain.FileHandle.
type memFile string

func (m memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(m))), nil
}

// brokenFile fails to open.
type brokenFile struct{}

func (brokenFile) Open() (io.ReadCloser, error) {
	return nil, errors.New("permission denied")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})

	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
	assert.Equal(t, DefaultUserAgent, c.userAgent)
	assert.Nil(t, c.limiter)
}

func TestNewClient_TrimsSlashAndThrottles(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://h:9000/", Timeout: time.Second, RequestsPerSecond: 2})

	assert.Equal(t, "http://h:9000", c.baseURL)
	assert.NotNil(t, c.limiter)
}

func TestClient_VisualizationEndpoint(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://h:9000"})
	assert.Equal(t, "http://h:9000/api/graph/visualize", c.VisualizationEndpoint())
}

func TestClient_SubmitQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/search/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hypertension treatment?", body["query"])
		assert.InDelta(t, 5, body["top_k"], 0)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":["ACE inhibitors...","Lifestyle changes..."]}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	answer, err := c.SubmitQuery(context.Background(), "Hypertension treatment?", 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"ACE inhibitors...", "Lifestyle changes..."}, answer.Results)
}

func TestClient_SubmitQuery_MissingResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	answer, err := NewClient(Config{BaseURL: server.URL}).SubmitQuery(context.Background(), "q", 5)

	require.NoError(t, err)
	assert.Empty(t, answer.Results)
	assert.NotNil(t, answer.Results)
}

func TestClient_SubmitQuery_ErrorDetail(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"string detail", 500, `{"detail":"Neo4j unavailable"}`, "Neo4j unavailable"},
		{"no body", 503, ``, "Search failed (503)"},
		{"html body", 502, `<html>bad gateway</html>`, "Search failed (502)"},
		{"structured detail", 422, `{"detail":[{"loc":["body","query"]}]}`, "Search failed (422)"},
		{"empty detail", 400, `{"detail":""}`, "Search failed (400)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(Config{BaseURL: server.URL}).SubmitQuery(context.Background(), "q", 5)

			var reqErr *domain.RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.status, reqErr.Status)
			assert.Equal(t, tt.wantDetail, reqErr.Detail)
		})
	}
}

func TestClient_SubmitQuery_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": not json`))
	}))
	defer server.Close()

	_, err := NewClient(Config{BaseURL: server.URL}).SubmitQuery(context.Background(), "q", 5)

	var fault *domain.TransportFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "search", fault.Op)
}

func TestClient_SubmitQuery_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(Config{BaseURL: url}).SubmitQuery(context.Background(), "q", 5)

	var fault *domain.TransportFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "Search failed: backend unreachable", domain.UserMessage(err))
}

func TestClient_SubmitQuery_OneCallPerOperation(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(Config{BaseURL: server.URL}).SubmitQuery(context.Background(), "q", 5)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_SubmitUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guideline.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 disk"), 0o600))
	fromDisk, err := domain.StagedFileFromPath(path)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ingest/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		parts := r.MultipartForm.File["files"]
		require.Len(t, parts, 2)
		assert.Equal(t, "guideline.pdf", parts[0].Filename)
		assert.Equal(t, "notes.pdf", parts[1].Filename)
		assert.Equal(t, "application/pdf", parts[1].Header.Get("Content-Type"))

		f, err := parts[1].Open()
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "%PDF-1.4 mem", string(data))

		_, _ = w.Write([]byte(`{"message":"Ingested 2 files","files":["guideline.pdf","notes.pdf"]}`))
	}))
	defer server.Close()

	files := []domain.StagedFile{
		fromDisk,
		{Name: "notes.pdf", SizeBytes: 12, Handle: memFile("%PDF-1.4 mem")},
	}
	receipt, err := NewClient(Config{BaseURL: server.URL}).SubmitUpload(context.Background(), files)

	require.NoError(t, err)
	assert.Equal(t, "Ingested 2 files", receipt.Message)
	assert.Equal(t, []string{"guideline.pdf", "notes.pdf"}, receipt.Files)
	assert.Len(t, files, 2)
}

func TestClient_SubmitUpload_RequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	}))
	defer server.Close()

	files := []domain.StagedFile{{Name: "a.pdf", Handle: memFile("x")}}
	_, err := NewClient(Config{BaseURL: server.URL}).SubmitUpload(context.Background(), files)

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Upload failed (413)", reqErr.Detail)
}

func TestClient_SubmitUpload_UnreadableFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	files := []domain.StagedFile{{Name: "a.pdf", Handle: brokenFile{}}}
	_, err := NewClient(Config{BaseURL: server.URL}).SubmitUpload(context.Background(), files)

	var fault *domain.TransportFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "upload", fault.Op)
}

func TestClient_ThrottleHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, RequestsPerSecond: 0.001})
	_, err := c.SubmitQuery(context.Background(), "first", 5)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.SubmitQuery(ctx, "second", 5)

	var fault *domain.TransportFault
	require.ErrorAs(t, err, &fault)
}
