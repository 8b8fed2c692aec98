package tasks

import (
	"github.com/charmbracelet/log"
	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/queue"
)

// ReconcileReport summarizes one reconciliation pass for logging and UI
// refresh decisions.
type ReconcileReport struct {
	Applied   int // snapshots merged into the queue
	Dropped   int // anomalies: invalid transitions, unparseable states
	Confirmed int // pending ids resolved to server ids
	Unknown   int // snapshots referencing videos this client does not hold
}

// Changed reports whether the pass mutated the queue.
func (r ReconcileReport) Changed() bool {
	return r.Applied > 0 || r.Confirmed > 0
}

// Reconciler merges server snapshots into the review queue without
// clobbering locally pending transitions.
type Reconciler struct {
	logger *log.Logger
}

// NewReconciler creates a reconciler logging anomalies to the given logger.
func NewReconciler(logger *log.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Apply merges a batch of snapshots into the queue. Each snapshot is matched
// by server id, falling back to source URL for entries still waiting on
// their first acknowledgement. Merging is field-by-field; absent fields are
// left untouched, and a state change lands only when it is a valid forward
// lifecycle step from the entry's current state.
func (r *Reconciler) Apply(q *queue.ReviewQueue, snapshots []models.Snapshot) ReconcileReport {
	var report ReconcileReport

	for _, snap := range snapshots {
		next, ok := models.ParseState(string(snap.State))
		if !ok {
			r.logger.Warn("dropping snapshot with unknown state", "id", snap.ID, "state", snap.State)
			report.Dropped++
			continue
		}

		id := models.ConfirmedID(snap.ID)
		if r.confirmPending(q, snap) {
			report.Confirmed++
		}

		patch := buildPatch(snap, next)
		found, applied := q.UpdateIf(id, patch, func(local models.Video) bool {
			if local.State == next {
				return true
			}
			if local.State.LocallyAuthoritative() {
				return false
			}
			return local.State.CanTransition(next)
		})

		switch {
		case !found:
			// The backend may report videos finalized long ago or created
			// by another client; nothing to do.
			report.Unknown++
		case !applied:
			r.logger.Warn("dropping stale snapshot",
				"id", snap.ID, "reported_state", next)
			report.Dropped++
		default:
			report.Applied++
		}
	}

	return report
}

// confirmPending resolves a placeholder id when the snapshot's source URL
// identifies a video uploaded by this client that has not been acknowledged
// yet. Ordering and cursor stay untouched.
func (r *Reconciler) confirmPending(q *queue.ReviewQueue, snap models.Snapshot) bool {
	if snap.SourceURL == nil {
		return false
	}
	for _, v := range q.Items() {
		if v.ID.Pending() && v.SourceURL == *snap.SourceURL {
			if q.ConfirmID(v.ID.Local, snap.ID) {
				r.logger.Debug("confirmed pending video id",
					"local", v.ID.Local, "server", snap.ID)
				return true
			}
		}
	}
	return false
}

// buildPatch lifts the snapshot's present fields into a queue patch. The
// state pointer always refers to the parsed value so the guard and the patch
// cannot disagree.
func buildPatch(snap models.Snapshot, next models.State) queue.Patch {
	return queue.Patch{
		State:        &next,
		Title:        snap.Title,
		SourceURL:    snap.SourceURL,
		PublishedURL: snap.PublishedURL,
		HasSubtitles: snap.HasSubtitles,
		Subtitles:    snap.Subtitles,
	}
}
