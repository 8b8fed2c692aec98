// Package repositories implements SQLite persistence for the review client's
// local cache.
//
// Two stores back the client:
//   - [CategoryRepository] : an offline copy of the backend's category set so
//     the picker works before the first listing round-trip and dedups on name.
//   - [HistoryRepository] : an append-only log of finalized review decisions
//     (kept or discarded, with category and publish URL when known), feeding
//     the status command.
//
// Both are caches, not sources of truth; the backend wins on conflict and
// write failures never stall review.
package repositories
