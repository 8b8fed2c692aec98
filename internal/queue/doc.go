// Package queue implements the ordered review queue and the presentation
// selector.
//
// # Review Queue
//
// [ReviewQueue] holds videos in arrival order plus a cursor marking the
// current review position. Videos before the cursor are finalized and never
// re-shown; videos at or after it may still be updated by reconciliation.
//
// Operations never reorder items. [ReviewQueue.Advance] touches only the
// cursor and [ReviewQueue.UpdateByID] touches only one item's fields, so a
// swipe and a concurrent poll compose in either order. An internal mutex
// makes each operation atomic; callers need no external locking.
//
// # Presentation Selector
//
// [Select] is a pure function from queue state to a [ViewIntent]: uploader
// when empty, exhausted when the cursor ran off the end, otherwise the
// current card or the category picker. The view layer renders intents and
// holds no state of its own.
package queue
