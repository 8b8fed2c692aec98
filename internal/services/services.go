// package services defines interface Service for the video pipeline backend
package services

import (
	"context"

	"github.com/duskthistle/swipereel/internal/models"
)

// ProgressFunc reports upload transfer progress. Consumed only by the
// presentation layer; the state machine ignores it.
type ProgressFunc func(sent, total int64)

// Service defines the operations the review client needs from the video
// pipeline backend.
type Service interface {
	// UploadVideo transfers a local media file and returns the created
	// video record. The record carries the server id and initial state.
	UploadVideo(ctx context.Context, path string, progress ProgressFunc) (*models.Video, error)

	// DiscardVideo tells the backend a video was rejected. Best effort from
	// the client's perspective; callers log failures and move on.
	DiscardVideo(ctx context.Context, videoID string) error

	// SaveVideo files a video under a category and starts the publish step.
	// Failure must be distinguishable from success so the dispatcher can
	// roll the optimistic transition back.
	SaveVideo(ctx context.Context, videoID, categoryID string) error

	// ListCategories retrieves the current category set.
	ListCategories(ctx context.Context) ([]models.Category, error)

	// CreateCategory creates a category from a trimmed non-empty name.
	CreateCategory(ctx context.Context, name, description string) (*models.Category, error)

	// FetchSnapshots returns the backend's current view of all known videos.
	FetchSnapshots(ctx context.Context) ([]models.Snapshot, error)

	// Health probes backend liveness.
	Health(ctx context.Context) error

	// Name returns the service name for logs and output.
	Name() string
}
