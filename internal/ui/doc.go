// Package ui implements the interactive review interface using bubbletea's Elm architecture.
//
// The TUI renders one of four screens depending on queue state:
//  1. Uploader : prompt for a local media file when there is nothing to review
//  2. Review card : the current video with its pipeline state and swipe gestures
//  3. Category picker : choose or create a category for a kept video
//  4. Exhausted : every queued video has been decided
//
// Which screen shows is derived from the queue via [queue.Select] rather than
// stored, so the interface can never disagree with the underlying state.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Reconciliation reports from the background poller and upload progress both
// arrive as messages read off channels, keeping Update non-blocking.
//
// Keyboard navigation uses vim-style bindings (h/l to swipe, j/k to move,
// enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
