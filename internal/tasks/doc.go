// Package tasks drives the review state machine: it turns user gestures and
// polled server snapshots into queue mutations.
//
// # Dispatcher
//
// [Dispatcher] translates gestures into outbound requests plus optimistic
// local transitions:
//
//  1. [Dispatcher.SwipeLeft] : discard. The queue advances immediately; the
//     discard request runs in the background and a failure is logged, never
//     surfaced as a blocker. Forward review progress beats strict backend
//     consistency on this path.
//  2. [Dispatcher.SwipeRight] : keep. Purely local; no request is issued
//     until the reviewer confirms a category.
//  3. [Dispatcher.ConfirmCategory] : optimistic transition to uploading,
//     then the save request. Success advances the cursor; failure rolls the
//     video back to awaiting_category so the picker reopens.
//  4. [Dispatcher.Upload] : validates the file locally, transfers it, and
//     enqueues the created record under a pending id.
//
// # Reconciler and Poller
//
// [Reconciler.Apply] merges a batch of snapshots into the queue field by
// field. A snapshot's state lands only when it is a valid forward step from
// the local state; stale or backwards reports and attempts to overwrite a
// locally authoritative state (discarded, awaiting_category) are counted,
// logged, and dropped. Applying the same batch twice is a no-op.
//
// [Poller] owns the recurring fetch: a ticker at the configured interval
// (5s by default), one [services.Service.FetchSnapshots] call per tick, and
// a [ReconcileReport] pushed onto a channel for the UI. Run returns when its
// context is cancelled; a fetch resolving after cancellation is ignored
// rather than applied.
package tasks
