package queue

import (
	"fmt"
	"sync"
	"testing"

	"github.com/duskthistle/swipereel/internal/models"
)

func video(serverID string, state models.State) models.Video {
	return models.Video{ID: models.ConfirmedID(serverID), State: state, Title: serverID}
}

func TestReviewQueue(t *testing.T) {
	t.Run("Enqueue Preserves Order", func(t *testing.T) {
		q := New()
		for i := 0; i < 5; i++ {
			q.Enqueue(video(fmt.Sprintf("v%d", i), models.StateProcessed))
		}

		items := q.Items()
		if len(items) != 5 {
			t.Fatalf("expected 5 items, got %d", len(items))
		}
		for i, v := range items {
			if v.ID.Server != fmt.Sprintf("v%d", i) {
				t.Errorf("position %d holds %s, order not preserved", i, v.ID)
			}
		}
	})

	t.Run("Advance Clamps And Stays Idempotent", func(t *testing.T) {
		q := New()
		q.Enqueue(video("v0", models.StateProcessed))
		q.Enqueue(video("v1", models.StateProcessed))

		for i := 0; i < 10; i++ {
			q.Advance()
		}
		if q.Cursor() != q.Len() {
			t.Errorf("cursor should clamp to %d, got %d", q.Len(), q.Cursor())
		}
	})

	t.Run("Current", func(t *testing.T) {
		q := New()
		if _, ok := q.Current(); ok {
			t.Error("empty queue should have no current video")
		}

		q.Enqueue(video("v0", models.StateProcessed))
		current, ok := q.Current()
		if !ok || current.ID.Server != "v0" {
			t.Errorf("expected v0, got %v (ok=%v)", current.ID, ok)
		}

		q.Advance()
		if _, ok := q.Current(); ok {
			t.Error("exhausted queue should have no current video")
		}
	})

	t.Run("UpdateByID Patches One Entry", func(t *testing.T) {
		q := New()
		q.Enqueue(video("v0", models.StateProcessing))
		q.Enqueue(video("v1", models.StateProcessing))

		state := models.StateProcessed
		title := "A better title"
		if !q.UpdateByID(models.ConfirmedID("v1"), Patch{State: &state, Title: &title}) {
			t.Fatal("expected update to land")
		}

		items := q.Items()
		if items[0].State != models.StateProcessing {
			t.Error("untouched entry mutated")
		}
		if items[1].State != models.StateProcessed || items[1].Title != "A better title" {
			t.Errorf("patch not applied: %+v", items[1])
		}
		if items[1].ID.Server != "v1" {
			t.Error("patch must not disturb identity")
		}
	})

	t.Run("UpdateByID Unknown ID Is A NoOp", func(t *testing.T) {
		q := New()
		q.Enqueue(video("v0", models.StateProcessing))

		state := models.StateProcessed
		if q.UpdateByID(models.ConfirmedID("ghost"), Patch{State: &state}) {
			t.Error("unknown id should not report an update")
		}
		if q.Items()[0].State != models.StateProcessing {
			t.Error("unknown id update must leave the queue untouched")
		}
	})

	t.Run("Partial Patch Leaves Other Fields", func(t *testing.T) {
		q := New()
		v := video("v0", models.StateUploading)
		v.CategoryID = "cooking"
		q.Enqueue(v)

		state := models.StateCompleted
		url := "https://youtube.com/shorts/abc"
		q.UpdateByID(models.ConfirmedID("v0"), Patch{State: &state, PublishedURL: &url})

		got := q.Items()[0]
		if got.CategoryID != "cooking" {
			t.Error("field absent from patch was overwritten")
		}
		if got.State != models.StateCompleted || got.PublishedURL != url {
			t.Errorf("patched fields missing: %+v", got)
		}
	})

	t.Run("ConfirmID", func(t *testing.T) {
		q := New()
		pending := models.Video{ID: models.NewPendingID(), State: models.StateUploaded}
		q.Enqueue(video("v0", models.StateProcessed))
		q.Enqueue(pending)

		if !q.ConfirmID(pending.ID.Local, "srv-9") {
			t.Fatal("expected pending entry to confirm")
		}

		items := q.Items()
		if items[1].ID.Server != "srv-9" || items[1].ID.Pending() {
			t.Errorf("id not confirmed: %v", items[1].ID)
		}
		if items[0].ID.Server != "v0" {
			t.Error("confirming must not touch other entries")
		}
		if q.Cursor() != 0 {
			t.Error("confirming must not move the cursor")
		}

		if q.ConfirmID("nope", "srv-10") {
			t.Error("unknown placeholder should be a no-op")
		}
	})

	t.Run("Advance And Update Compose", func(t *testing.T) {
		state := models.StateProcessed

		build := func() *ReviewQueue {
			q := New()
			q.Enqueue(video("v0", models.StateProcessing))
			q.Enqueue(video("v1", models.StateProcessing))
			return q
		}

		a := build()
		a.Advance()
		a.UpdateByID(models.ConfirmedID("v1"), Patch{State: &state})

		b := build()
		b.UpdateByID(models.ConfirmedID("v1"), Patch{State: &state})
		b.Advance()

		if a.Cursor() != b.Cursor() {
			t.Errorf("cursors diverged: %d vs %d", a.Cursor(), b.Cursor())
		}
		for i := range a.Items() {
			if a.Items()[i] != b.Items()[i] {
				t.Errorf("items diverged at %d: %+v vs %+v", i, a.Items()[i], b.Items()[i])
			}
		}
	})

	t.Run("Concurrent Mutation", func(t *testing.T) {
		q := New()
		for i := 0; i < 20; i++ {
			q.Enqueue(video(fmt.Sprintf("v%d", i), models.StateProcessing))
		}

		var wg sync.WaitGroup
		state := models.StateProcessed
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				q.UpdateByID(models.ConfirmedID(fmt.Sprintf("v%d", i)), Patch{State: &state})
			}(i)
			wg.Add(1)
			go func() {
				defer wg.Done()
				q.Advance()
			}()
		}
		wg.Wait()

		if q.Cursor() != 20 {
			t.Errorf("expected cursor 20, got %d", q.Cursor())
		}
		for i, v := range q.Items() {
			if v.State != models.StateProcessed {
				t.Errorf("item %d missed its update", i)
			}
			if v.ID.Server != fmt.Sprintf("v%d", i) {
				t.Errorf("order disturbed at %d", i)
			}
		}
	})

	t.Run("Pending Slice", func(t *testing.T) {
		q := New()
		q.Enqueue(video("v0", models.StateDiscarded))
		q.Enqueue(video("v1", models.StateProcessed))
		q.Advance()

		pending := q.Pending()
		if len(pending) != 1 || pending[0].ID.Server != "v1" {
			t.Errorf("expected only v1 pending, got %v", pending)
		}

		q.Advance()
		if q.Pending() != nil {
			t.Error("exhausted queue should have no pending videos")
		}
	})
}

func TestSelect(t *testing.T) {
	t.Run("Empty Queue Shows Uploader", func(t *testing.T) {
		if intent := Select(New(), false); intent.Kind != ShowUploader {
			t.Errorf("expected uploader, got %s", intent.Kind)
		}
	})

	t.Run("Exhausted Queue", func(t *testing.T) {
		q := New()
		q.Enqueue(video("v0", models.StateDiscarded))
		q.Advance()

		if intent := Select(q, false); intent.Kind != ShowExhausted {
			t.Errorf("expected exhausted, got %s", intent.Kind)
		}
	})

	t.Run("Current Card", func(t *testing.T) {
		q := New()
		q.Enqueue(video("v0", models.StateProcessed))

		intent := Select(q, false)
		if intent.Kind != ShowReviewCard {
			t.Fatalf("expected review card, got %s", intent.Kind)
		}
		if intent.Video.ID.Server != "v0" {
			t.Errorf("intent carries wrong video: %v", intent.Video.ID)
		}
	})

	t.Run("Category Picker", func(t *testing.T) {
		q := New()
		q.Enqueue(video("v0", models.StateAwaitingCategory))

		if intent := Select(q, true); intent.Kind != ShowCategoryPicker {
			t.Errorf("expected picker, got %s", intent.Kind)
		}

		// picker flag without an awaiting video falls back to the card
		q2 := New()
		q2.Enqueue(video("v1", models.StateProcessed))
		if intent := Select(q2, true); intent.Kind != ShowReviewCard {
			t.Errorf("expected review card, got %s", intent.Kind)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		q := New()
		q.Enqueue(video("v0", models.StateProcessed))

		first := Select(q, false)
		second := Select(q, false)
		if first != second {
			t.Error("same state should yield the same intent")
		}
	})
}
