package services

import (
	"context"
	"sync"
	"time"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockBackend implements driven.Backend for testing.
type mockBackend struct {
	mu          sync.Mutex
	queryCalls  int
	uploadCalls int
	lastTopK    int
	lastFiles   []domain.StagedFile

	queryFunc  func(ctx context.Context, text string, topK int) (*domain.QueryAnswer, error)
	uploadFunc func(ctx context.Context, files []domain.StagedFile) (*domain.UploadReceipt, error)
	endpoint   string
}

var _ driven.Backend = (*mockBackend)(nil)

func (m *mockBackend) SubmitQuery(ctx context.Context, text string, topK int) (*domain.QueryAnswer, error) {
	m.mu.Lock()
	m.queryCalls++
	m.lastTopK = topK
	m.mu.Unlock()
	if m.queryFunc != nil {
		return m.queryFunc(ctx, text, topK)
	}
	return &domain.QueryAnswer{}, nil
}

func (m *mockBackend) SubmitUpload(ctx context.Context, files []domain.StagedFile) (*domain.UploadReceipt, error) {
	m.mu.Lock()
	m.uploadCalls++
	m.lastFiles = files
	m.mu.Unlock()
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, files)
	}
	return &domain.UploadReceipt{}, nil
}

func (m *mockBackend) VisualizationEndpoint() string {
	if m.endpoint == "" {
		return "http://localhost:8000/api/graph/visualize"
	}
	return m.endpoint
}

// mockLoader implements driven.ArtifactLoader for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, url string, attempt int) (*domain.Artifact, error)
}

var _ driven.ArtifactLoader = (*mockLoader)(nil)

func (m *mockLoader) Load(ctx context.Context, url string, attempt int) (*domain.Artifact, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, url, attempt)
	}
	return &domain.Artifact{URL: url, Attempt: attempt}, nil
}

// fakeTimer is a Timer whose callback is fired by the test.
type fakeTimer struct {
	fn      func()
	d       time.Duration
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (t *fakeTimer) fire() {
	t.fn()
}

// fakeClock records timers and serves a settable time.
type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 5, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{fn: fn, d: d}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) last() *fakeTimer {
	if len(c.timers) == 0 {
		return nil
	}
	return c.timers[len(c.timers)-1]
}

func newTestNotifier(c *fakeClock) *Notifier {
	return NewNotifier().WithClock(c.Now, c.AfterFunc)
}

func staged(names ...string) []domain.StagedFile {
	files := make([]domain.StagedFile, len(names))
	for i, n := range names {
		files[i] = domain.StagedFile{Name: n, SizeBytes: int64(1000 * (i + 1))}
	}
	return files
}

// mockOpener implements driven.Opener for testing.
type mockOpener struct {
	opened  []string
	openErr error
}

var _ driven.Opener = (*mockOpener)(nil)

func (m *mockOpener) Open(target string) error {
	m.opened = append(m.opened, target)
	return m.openErr
}
