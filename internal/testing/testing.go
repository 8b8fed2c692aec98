// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/services"
)

// MockService is a scriptable test double for [services.Service]. Zero value
// succeeds on every call; set the Err fields to force failures.
type MockService struct {
	mu sync.Mutex

	UploadErr   error
	DiscardErr  error
	SaveErr     error
	ListErr     error
	CreateErr   error
	FetchErr    error
	HealthErr   error
	UploadedVid *models.Video
	Categories  []models.Category
	Snapshots   []models.Snapshot

	DiscardCalls []string
	SaveCalls    [][2]string // videoID, categoryID
	FetchCalls   int
}

func (m *MockService) UploadVideo(ctx context.Context, path string, progress services.ProgressFunc) (*models.Video, error) {
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	if m.UploadedVid != nil {
		v := *m.UploadedVid
		return &v, nil
	}
	return &models.Video{ID: models.NewPendingID(), Title: path, SourceURL: path, State: models.StateUploaded}, nil
}

func (m *MockService) DiscardVideo(ctx context.Context, videoID string) error {
	m.mu.Lock()
	m.DiscardCalls = append(m.DiscardCalls, videoID)
	m.mu.Unlock()
	return m.DiscardErr
}

func (m *MockService) SaveVideo(ctx context.Context, videoID, categoryID string) error {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, [2]string{videoID, categoryID})
	m.mu.Unlock()
	return m.SaveErr
}

func (m *MockService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Categories, nil
}

func (m *MockService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	c := models.Category{ID: name, Name: name, Description: description}
	m.mu.Lock()
	m.Categories = append(m.Categories, c)
	m.mu.Unlock()
	return &c, nil
}

func (m *MockService) FetchSnapshots(ctx context.Context) ([]models.Snapshot, error) {
	m.mu.Lock()
	m.FetchCalls++
	m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	return m.Snapshots, nil
}

func (m *MockService) Health(ctx context.Context) error { return m.HealthErr }

func (m *MockService) Name() string { return "mock" }

// Discards returns a copy of the recorded discard calls.
func (m *MockService) Discards() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(m.DiscardCalls))
	copy(cp, m.DiscardCalls)
	return cp
}

// MockRecorder is a test double for the dispatcher's decision log.
type MockRecorder struct {
	mu        sync.Mutex
	Err       error
	Decisions [][5]string
}

func (m *MockRecorder) RecordDecision(videoID, title, decision, categoryID, publishedURL string) error {
	m.mu.Lock()
	m.Decisions = append(m.Decisions, [5]string{videoID, title, decision, categoryID, publishedURL})
	m.mu.Unlock()
	return m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

// NewLimitedWriter creates a LimitedWriter that fails once maxWrites writes
// have gone through to target.
func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}
