// Package httpapi provides the backend adapter for the ViMed REST API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driven"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = domain.DefaultBaseURL
	DefaultTimeout   = domain.DefaultTimeoutSeconds * time.Second
	DefaultUserAgent = "vimed-cli"
)

// API paths.
const (
	searchPath    = "/api/search/"
	ingestPath    = "/api/ingest/"
	visualizePath = "/api/graph/visualize"
)

// Operation names used in transport faults.
const (
	opSearch = "search"
	opUpload = "upload"
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend URL without the /api prefix (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds each request (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64

	// UserAgent is sent with every request (default: vimed-cli).
	UserAgent string
}

// Client talks to the ViMed backend. Each operation makes exactly one
// request and never retries.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

// searchRequest is the /api/search/ request body.
type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// errorResponse is the error body returned by the backend.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// NewClient creates a new backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	c := &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// SubmitQuery asks the backend a question.
func (c *Client) SubmitQuery(ctx context.Context, text string, topK int) (*domain.QueryAnswer, error) {
	jsonBody, err := json.Marshal(searchRequest{Query: text, TopK: topK})
	if err != nil {
		return nil, &domain.TransportFault{Op: opSearch, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &domain.TransportFault{Op: opSearch, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	var answer domain.QueryAnswer
	if err := c.do(req, opSearch, "Search failed", &answer); err != nil {
		return nil, err
	}
	if answer.Results == nil {
		answer.Results = []string{}
	}
	return &answer, nil
}

// SubmitUpload sends the files as one multipart request. The body is
// streamed, so files are read while the request is in flight.
func (c *Client) SubmitUpload(ctx context.Context, files []domain.StagedFile) (*domain.UploadReceipt, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeParts(mw, files))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ingestPath, pr)
	if err != nil {
		pr.Close()
		return nil, &domain.TransportFault{Op: opUpload, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var receipt domain.UploadReceipt
	if err := c.do(req, opUpload, "Upload failed", &receipt); err != nil {
		pr.Close()
		return nil, err
	}
	return &receipt, nil
}

// VisualizationEndpoint returns the URL of the graph document.
func (c *Client) VisualizationEndpoint() string {
	return c.baseURL + visualizePath
}

// writeParts writes one "files" part per staged file and closes mw.
func writeParts(mw *multipart.Writer, files []domain.StagedFile) error {
	for _, f := range files {
		if err := writePart(mw, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writePart(mw *multipart.Writer, f domain.StagedFile) error {
	if f.Handle == nil {
		return fmt.Errorf("%s: no file handle", f.Name)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
	h.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", f.Name, err)
	}

	src, err := f.Handle.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer src.Close()

	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("read %s: %w", f.Name, err)
	}
	return nil
}

// do sends req and decodes a 200 response into out. Non-200 responses
// become *domain.RequestError; everything else is a *domain.TransportFault.
func (c *Client) do(req *http.Request, op, failPrefix string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return &domain.TransportFault{Op: op, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debug("backend request failed",
			zap.String("op", op), zap.String("request_id", requestID), zap.Error(err))
		return &domain.TransportFault{Op: op, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	logger.Debug("backend response",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportFault{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return &domain.RequestError{
			Status: resp.StatusCode,
			Detail: errorDetail(body, fmt.Sprintf("%s (%d)", failPrefix, resp.StatusCode)),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &domain.TransportFault{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorDetail extracts a string "detail" field from an error body.
func errorDetail(body []byte, fallback string) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Detail) == 0 {
		return fallback
	}
	var detail string
	if err := json.Unmarshal(resp.Detail, &detail); err != nil || detail == "" {
		return fallback
	}
	return detail
}

