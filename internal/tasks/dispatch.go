package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/queue"
	"github.com/duskthistle/swipereel/internal/services"
	"github.com/duskthistle/swipereel/internal/shared"
)

// DecisionRecorder persists finalized review decisions. Recording failures
// are logged and swallowed so persistence problems never stall review.
type DecisionRecorder interface {
	RecordDecision(videoID, title, decision, categoryID, publishedURL string) error
}

// Dispatcher translates review gestures into queue mutations and backend
// requests.
type Dispatcher struct {
	queue    *queue.ReviewQueue
	service  services.Service
	recorder DecisionRecorder
	upload   shared.UploadConfig
	logger   *log.Logger
}

// DispatcherOpts contains the dependencies for a Dispatcher.
type DispatcherOpts struct {
	Queue    *queue.ReviewQueue
	Service  services.Service
	Recorder DecisionRecorder // optional
	Upload   shared.UploadConfig
	Logger   *log.Logger
}

// NewDispatcher creates a dispatcher from the given dependencies.
func NewDispatcher(opts DispatcherOpts) *Dispatcher {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Dispatcher{
		queue:    opts.Queue,
		service:  opts.Service,
		recorder: opts.Recorder,
		upload:   opts.Upload,
		logger:   opts.Logger,
	}
}

// SwipeLeft discards the current video. The local transition and cursor
// advance happen immediately; the backend notification runs in the
// background and a failure only produces a log line for later retry.
func (d *Dispatcher) SwipeLeft(ctx context.Context) error {
	current, ok := d.queue.Current()
	if !ok {
		return fmt.Errorf("%w: no video under review", shared.ErrInvalidArgument)
	}
	if !current.State.CanTransition(models.StateDiscarded) {
		return fmt.Errorf("%w: cannot discard from %s", shared.ErrInvalidTransition, current.State)
	}

	state := models.StateDiscarded
	d.queue.UpdateByID(current.ID, queue.Patch{State: &state})
	d.queue.Advance()
	d.record(current, "discarded")

	go func() {
		if current.ID.Pending() {
			d.logger.Warn("discarded video has no server id, skipping notification", "id", current.ID)
			return
		}
		if err := d.service.DiscardVideo(ctx, current.ID.Server); err != nil {
			d.logger.Error("discard notification failed, needs retry",
				"id", current.ID, "error", err)
		}
	}()

	return nil
}

// SwipeRight keeps the current video and opens category selection. No
// request is issued until the reviewer confirms a category.
func (d *Dispatcher) SwipeRight() error {
	current, ok := d.queue.Current()
	if !ok {
		return fmt.Errorf("%w: no video under review", shared.ErrInvalidArgument)
	}
	if !current.State.CanTransition(models.StateAwaitingCategory) {
		return fmt.Errorf("%w: cannot keep from %s", shared.ErrInvalidTransition, current.State)
	}

	state := models.StateAwaitingCategory
	d.queue.UpdateByID(current.ID, queue.Patch{State: &state})
	return nil
}

// CancelPicker returns the current video to the review card without a
// decision.
func (d *Dispatcher) CancelPicker() {
	current, ok := d.queue.Current()
	if !ok || current.State != models.StateAwaitingCategory {
		return
	}
	state := models.StateProcessed
	d.queue.UpdateByID(current.ID, queue.Patch{State: &state})
}

// ConfirmCategory files the current video under a category and submits the
// save request. The transition to uploading is applied optimistically; on
// request failure it is rolled back so the picker reopens, and the cursor
// does not advance.
func (d *Dispatcher) ConfirmCategory(ctx context.Context, categoryID string) error {
	current, ok := d.queue.Current()
	if !ok {
		return fmt.Errorf("%w: no video under review", shared.ErrInvalidArgument)
	}
	if current.State != models.StateAwaitingCategory {
		return fmt.Errorf("%w: cannot save from %s", shared.ErrInvalidTransition, current.State)
	}
	if categoryID == "" {
		return fmt.Errorf("%w: category id is empty", shared.ErrInvalidInput)
	}

	uploading := models.StateUploading
	d.queue.UpdateByID(current.ID, queue.Patch{State: &uploading, CategoryID: &categoryID})

	if err := d.service.SaveVideo(ctx, current.ID.Server, categoryID); err != nil {
		awaiting := models.StateAwaitingCategory
		empty := ""
		d.queue.UpdateByID(current.ID, queue.Patch{State: &awaiting, CategoryID: &empty})
		return fmt.Errorf("save failed, pick a category again: %w", err)
	}

	d.queue.Advance()
	kept := current
	kept.CategoryID = categoryID
	d.record(kept, "kept")
	return nil
}

// Upload validates a local media file, transfers it, and appends the created
// record to the queue. Validation failures are rejected before any bytes
// move.
func (d *Dispatcher) Upload(ctx context.Context, path string, progress services.ProgressFunc) (*models.Video, error) {
	if err := d.validateUpload(path); err != nil {
		return nil, err
	}

	video, err := d.service.UploadVideo(ctx, path, progress)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	d.queue.Enqueue(*video)
	d.logger.Info("video queued for review", "id", video.ID, "title", video.Title)
	return video, nil
}

func (d *Dispatcher) validateUpload(path string) error {
	if !d.upload.AllowsExtension(path) {
		return fmt.Errorf("%w: %s", shared.ErrUnsupportedFile, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if maxBytes := d.upload.MaxSizeMB * 1024 * 1024; maxBytes > 0 && info.Size() > maxBytes {
		return fmt.Errorf("%w: %d bytes over %d MB limit", shared.ErrFileTooLarge, info.Size(), d.upload.MaxSizeMB)
	}
	return nil
}

func (d *Dispatcher) record(v models.Video, decision string) {
	if d.recorder == nil {
		return
	}
	if err := d.recorder.RecordDecision(v.ID.String(), v.Title, decision, v.CategoryID, v.PublishedURL); err != nil {
		d.logger.Warn("failed to record review decision", "id", v.ID, "error", err)
	}
}
