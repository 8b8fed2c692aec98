package tasks

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/queue"
	"github.com/duskthistle/swipereel/internal/shared"
	mocks "github.com/duskthistle/swipereel/internal/testing"
)

func newDispatcher(q *queue.ReviewQueue, svc *mocks.MockService, rec *mocks.MockRecorder) *Dispatcher {
	opts := DispatcherOpts{
		Queue:   q,
		Service: svc,
		Upload:  shared.UploadConfig{AllowedExtensions: []string{".mp4", ".mov", ".avi"}, MaxSizeMB: 1},
		Logger:  shared.NewLogger(io.Discard),
	}
	// Assign only when non-nil so a nil *MockRecorder stays a nil interface.
	if rec != nil {
		opts.Recorder = rec
	}
	return NewDispatcher(opts)
}

// eventually polls until cond holds or the deadline passes. Used for the
// background discard notification.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestSwipeLeft(t *testing.T) {
	t.Run("Discards And Advances Immediately", func(t *testing.T) {
		q := queue.New()
		q.Enqueue(models.Video{ID: models.ConfirmedID("1"), State: models.StateProcessed, Title: "clip"})
		svc := &mocks.MockService{}
		rec := &mocks.MockRecorder{}
		d := newDispatcher(q, svc, rec)

		if err := d.SwipeLeft(context.Background()); err != nil {
			t.Fatalf("swipe left failed: %v", err)
		}

		if q.Cursor() != 1 {
			t.Errorf("cursor should advance, got %d", q.Cursor())
		}
		if q.Items()[0].State != models.StateDiscarded {
			t.Errorf("expected discarded, got %s", q.Items()[0].State)
		}
		eventually(t, func() bool { return len(svc.Discards()) == 1 }, "discard request never issued")
		if len(rec.Decisions) != 1 || rec.Decisions[0][2] != "discarded" {
			t.Errorf("decision not recorded: %v", rec.Decisions)
		}
	})

	t.Run("Backend Failure Does Not Block", func(t *testing.T) {
		q := queue.New()
		q.Enqueue(models.Video{ID: models.ConfirmedID("1"), State: models.StateProcessed})
		svc := &mocks.MockService{DiscardErr: errors.New("backend down")}
		d := newDispatcher(q, svc, nil)

		if err := d.SwipeLeft(context.Background()); err != nil {
			t.Fatalf("swipe left must succeed despite backend failure: %v", err)
		}
		if q.Cursor() != 1 {
			t.Error("cursor must advance despite backend failure")
		}
	})

	t.Run("Rejects Non-Reviewable States", func(t *testing.T) {
		q := queue.New()
		q.Enqueue(models.Video{ID: models.ConfirmedID("1"), State: models.StateProcessing})
		d := newDispatcher(q, &mocks.MockService{}, nil)

		if err := d.SwipeLeft(context.Background()); !errors.Is(err, shared.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
		if q.Cursor() != 0 {
			t.Error("invalid gesture must not advance")
		}
	})

	t.Run("Empty Queue", func(t *testing.T) {
		d := newDispatcher(queue.New(), &mocks.MockService{}, nil)
		if err := d.SwipeLeft(context.Background()); err == nil {
			t.Error("expected error on empty queue")
		}
	})
}

func TestSwipeRight(t *testing.T) {
	t.Run("Local Transition Only", func(t *testing.T) {
		q := queue.New()
		q.Enqueue(models.Video{ID: models.ConfirmedID("1"), State: models.StateProcessed})
		svc := &mocks.MockService{}
		d := newDispatcher(q, svc, nil)

		if err := d.SwipeRight(); err != nil {
			t.Fatalf("swipe right failed: %v", err)
		}

		if q.Items()[0].State != models.StateAwaitingCategory {
			t.Errorf("expected awaiting_category, got %s", q.Items()[0].State)
		}
		if q.Cursor() != 0 {
			t.Error("cursor must not advance before a category is confirmed")
		}
		if len(svc.SaveCalls) != 0 {
			t.Error("swipe right must not call the backend")
		}
	})

	t.Run("CancelPicker Reverts", func(t *testing.T) {
		q := queue.New()
		q.Enqueue(models.Video{ID: models.ConfirmedID("1"), State: models.StateProcessed})
		d := newDispatcher(q, &mocks.MockService{}, nil)

		d.SwipeRight()
		d.CancelPicker()

		if q.Items()[0].State != models.StateProcessed {
			t.Errorf("expected processed after cancel, got %s", q.Items()[0].State)
		}
	})
}

func TestConfirmCategory(t *testing.T) {
	setup := func(svc *mocks.MockService, rec *mocks.MockRecorder) (*Dispatcher, *queue.ReviewQueue) {
		q := queue.New()
		q.Enqueue(models.Video{ID: models.ConfirmedID("1"), State: models.StateProcessed, Title: "clip"})
		d := newDispatcher(q, svc, rec)
		if err := d.SwipeRight(); err != nil {
			t.Fatalf("swipe right failed: %v", err)
		}
		return d, q
	}

	t.Run("Success Advances Cursor", func(t *testing.T) {
		svc := &mocks.MockService{}
		rec := &mocks.MockRecorder{}
		d, q := setup(svc, rec)

		if err := d.ConfirmCategory(context.Background(), "Cooking"); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}

		got := q.Items()[0]
		if got.State != models.StateUploading || got.CategoryID != "Cooking" {
			t.Errorf("expected uploading/Cooking, got %+v", got)
		}
		if q.Cursor() != 1 {
			t.Errorf("cursor should be 1, got %d", q.Cursor())
		}
		if len(svc.SaveCalls) != 1 || svc.SaveCalls[0] != [2]string{"1", "Cooking"} {
			t.Errorf("unexpected save calls: %v", svc.SaveCalls)
		}
		if len(rec.Decisions) != 1 || rec.Decisions[0][2] != "kept" || rec.Decisions[0][3] != "Cooking" {
			t.Errorf("decision not recorded: %v", rec.Decisions)
		}
	})

	t.Run("Failure Rolls Back And Holds Cursor", func(t *testing.T) {
		svc := &mocks.MockService{SaveErr: errors.New("save rejected")}
		d, q := setup(svc, nil)

		err := d.ConfirmCategory(context.Background(), "Cooking")
		if err == nil {
			t.Fatal("expected save failure to surface")
		}

		got := q.Items()[0]
		if got.State != models.StateAwaitingCategory {
			t.Errorf("expected rollback to awaiting_category, got %s", got.State)
		}
		if got.CategoryID != "" {
			t.Errorf("category must be cleared on rollback, got %q", got.CategoryID)
		}
		if q.Cursor() != 0 {
			t.Errorf("cursor must not advance on failure, got %d", q.Cursor())
		}
	})

	t.Run("Empty Category Rejected Before Request", func(t *testing.T) {
		svc := &mocks.MockService{}
		d, _ := setup(svc, nil)

		if err := d.ConfirmCategory(context.Background(), ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if len(svc.SaveCalls) != 0 {
			t.Error("validation failure must not issue a request")
		}
	})

	t.Run("Requires Awaiting Category", func(t *testing.T) {
		q := queue.New()
		q.Enqueue(models.Video{ID: models.ConfirmedID("1"), State: models.StateProcessed})
		d := newDispatcher(q, &mocks.MockService{}, nil)

		if err := d.ConfirmCategory(context.Background(), "Cooking"); !errors.Is(err, shared.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestUpload(t *testing.T) {
	writeFile := func(t *testing.T, name string, size int) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		return path
	}

	t.Run("Enqueues Created Record", func(t *testing.T) {
		q := queue.New()
		svc := &mocks.MockService{UploadedVid: &models.Video{
			ID:    models.ConfirmedID("srv-1"),
			State: models.StateUploaded,
			Title: "clip.mp4",
		}}
		d := newDispatcher(q, svc, nil)

		video, err := d.Upload(context.Background(), writeFile(t, "clip.mp4", 128), nil)
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}
		if q.Len() != 1 || q.Items()[0].ID.Server != video.ID.Server {
			t.Errorf("uploaded video not enqueued: %v", q.Items())
		}
	})

	t.Run("Rejects Unsupported Extension", func(t *testing.T) {
		d := newDispatcher(queue.New(), &mocks.MockService{}, nil)

		_, err := d.Upload(context.Background(), writeFile(t, "notes.txt", 10), nil)
		if !errors.Is(err, shared.ErrUnsupportedFile) {
			t.Errorf("expected ErrUnsupportedFile, got %v", err)
		}
	})

	t.Run("Rejects Oversized File", func(t *testing.T) {
		q := queue.New()
		d := newDispatcher(q, &mocks.MockService{}, nil)

		_, err := d.Upload(context.Background(), writeFile(t, "big.mp4", 2*1024*1024), nil)
		if !errors.Is(err, shared.ErrFileTooLarge) {
			t.Errorf("expected ErrFileTooLarge, got %v", err)
		}
		if q.Len() != 0 {
			t.Error("rejected upload must not enqueue")
		}
	})

	t.Run("Transport Failure Leaves Queue Untouched", func(t *testing.T) {
		q := queue.New()
		svc := &mocks.MockService{UploadErr: errors.New("connection reset")}
		d := newDispatcher(q, svc, nil)

		if _, err := d.Upload(context.Background(), writeFile(t, "clip.mp4", 10), nil); err == nil {
			t.Fatal("expected upload error")
		}
		if q.Len() != 0 {
			t.Error("failed upload must not enqueue")
		}
	})
}
