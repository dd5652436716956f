// Package artifact fetches the graph visualization document into a local cache.
package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driven"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.ArtifactLoader = (*Loader)(nil)

// DefaultTimeout bounds a single artifact fetch.
const DefaultTimeout = 60 * time.Second

const (
	attemptParam = "_attempt"
	filePrefix   = "graph-"
	fileSuffix   = ".html"
)

// Loader downloads the visualization document for an attempt. Every load
// bypasses HTTP caches so a refresh always reaches the origin.
type Loader struct {
	client   *http.Client
	cacheDir string
	now      func() time.Time
}

// NewLoader creates a loader writing into cacheDir. A zero timeout uses
// DefaultTimeout.
func NewLoader(cacheDir string, timeout time.Duration) *Loader {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		client:   &http.Client{Timeout: timeout},
		cacheDir: cacheDir,
		now:      time.Now,
	}
}

// DefaultCacheDir returns the per-user cache directory for artifacts.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("user cache dir: %w", err)
	}
	return filepath.Join(base, "vimed", "graph"), nil
}

// Load fetches rawURL for attempt and stores it as graph-<attempt>.html.
// Copies from earlier attempts are removed.
func (l *Loader) Load(ctx context.Context, rawURL string, attempt int) (*domain.Artifact, error) {
	target, err := withAttempt(rawURL, attempt)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "text/html")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &domain.TransportFault{Op: "visualization", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.RequestError{
			Status: resp.StatusCode,
			Detail: fmt.Sprintf("Visualization failed (%d)", resp.StatusCode),
		}
	}

	if err := os.MkdirAll(l.cacheDir, 0o700); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	path := filepath.Join(l.cacheDir, filePrefix+strconv.Itoa(attempt)+fileSuffix)
	size, err := writeFile(path, resp.Body)
	if err != nil {
		return nil, err
	}
	l.prune(path)

	logger.Debug("visualization artifact stored",
		zap.Int("attempt", attempt), zap.String("path", path), zap.Int64("bytes", size))

	return &domain.Artifact{
		URL:       rawURL,
		Path:      path,
		SizeBytes: size,
		Attempt:   attempt,
		FetchedAt: l.now(),
	}, nil
}

// withAttempt adds the attempt number as a query parameter so each attempt
// has a distinct URL.
func withAttempt(rawURL string, attempt int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	q.Set(attemptParam, strconv.Itoa(attempt))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// writeFile writes r to path via a temp file so a failed download never
// leaves a truncated artifact behind.
func writeFile(path string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, &domain.TransportFault{Op: "visualization", Err: fmt.Errorf("read body: %w", err)}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("store artifact: %w", err)
	}
	return n, nil
}

// prune removes cached artifacts other than keep.
func (l *Loader) prune(keep string) {
	matches, err := filepath.Glob(filepath.Join(l.cacheDir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return
	}
	for _, m := range matches {
		if m == keep || !strings.HasPrefix(filepath.Base(m), filePrefix) {
			continue
		}
		if err := os.Remove(m); err != nil {
			logger.Debug("prune artifact", zap.String("path", m), zap.Error(err))
		}
	}
}
