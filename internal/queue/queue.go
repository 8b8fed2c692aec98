package queue

import (
	"sync"

	"github.com/duskthistle/swipereel/internal/models"
)

// Patch is a partial update applied to a single queue entry. Nil fields are
// left untouched.
type Patch struct {
	State        *models.State
	Title        *string
	SourceURL    *string
	CategoryID   *string
	PublishedURL *string
	HasSubtitles *bool
	Subtitles    *string
}

// ReviewQueue owns the canonical ordered list of videos under review and the
// cursor into it. All mutation goes through its methods.
type ReviewQueue struct {
	mu     sync.Mutex
	items  []models.Video
	cursor int
}

// New creates an empty review queue.
func New() *ReviewQueue {
	return &ReviewQueue{}
}

// Enqueue appends a video to the end of the queue. Existing entries and the
// cursor are not touched.
func (q *ReviewQueue) Enqueue(v models.Video) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, v)
}

// Advance moves the cursor to the next entry, clamped to the queue length.
// Calling it past the end is a no-op.
func (q *ReviewQueue) Advance() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cursor < len(q.items) {
		q.cursor++
	}
}

// Current returns the video at the cursor. The second return value is false
// when the queue is exhausted or empty.
func (q *ReviewQueue) Current() (models.Video, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cursor >= len(q.items) {
		return models.Video{}, false
	}
	return q.items[q.cursor], true
}

// UpdateByID applies a patch to the entry matching id. Unknown ids are a
// no-op, not an error: a snapshot may reference a video this client never
// created or already pruned. Returns whether an entry was updated.
func (q *ReviewQueue) UpdateByID(id models.VideoID, p Patch) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if !q.items[i].ID.Matches(id) {
			continue
		}
		applyPatch(&q.items[i], p)
		return true
	}
	return false
}

// UpdateIf applies a patch only when cond holds for the entry's current
// value, checked under the queue lock. The reconciler uses this to enforce
// lifecycle guards without racing a concurrent gesture. Returns whether the
// id was found and whether the patch was applied.
func (q *ReviewQueue) UpdateIf(id models.VideoID, p Patch, cond func(models.Video) bool) (found, applied bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if !q.items[i].ID.Matches(id) {
			continue
		}
		if !cond(q.items[i]) {
			return true, false
		}
		applyPatch(&q.items[i], p)
		return true, true
	}
	return false, false
}

// ConfirmID replaces a placeholder identifier with the backend-assigned one.
// Ordering and cursor position are untouched. Returns whether a pending
// entry with the given placeholder existed.
func (q *ReviewQueue) ConfirmID(localID, serverID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if q.items[i].ID.Pending() && q.items[i].ID.Local == localID {
			q.items[i].ID = q.items[i].ID.Confirm(serverID)
			return true
		}
	}
	return false
}

// Items returns a copy of the queue contents in review order.
func (q *ReviewQueue) Items() []models.Video {
	q.mu.Lock()
	defer q.mu.Unlock()
	cp := make([]models.Video, len(q.items))
	copy(cp, q.items)
	return cp
}

// Cursor returns the current review position.
func (q *ReviewQueue) Cursor() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.cursor
}

// Len returns the number of queued videos.
func (q *ReviewQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pending returns the videos the reviewer has not finalized yet, in order.
func (q *ReviewQueue) Pending() []models.Video {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cursor >= len(q.items) {
		return nil
	}
	cp := make([]models.Video, len(q.items)-q.cursor)
	copy(cp, q.items[q.cursor:])
	return cp
}

func applyPatch(v *models.Video, p Patch) {
	if p.State != nil {
		v.State = *p.State
	}
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.SourceURL != nil {
		v.SourceURL = *p.SourceURL
	}
	if p.CategoryID != nil {
		v.CategoryID = *p.CategoryID
	}
	if p.PublishedURL != nil {
		v.PublishedURL = *p.PublishedURL
	}
	if p.HasSubtitles != nil {
		v.HasSubtitles = *p.HasSubtitles
	}
	if p.Subtitles != nil {
		v.Subtitles = *p.Subtitles
	}
}
