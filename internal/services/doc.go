// Package services defines the [Service] interface for the video pipeline
// backend and implements it over HTTP.
//
// # Service Interface
//
// The core state machine only ever sees this interface; transport details
// stay behind it, which keeps the dispatcher and reconciler testable with
// the doubles in internal/testing.
//
// # Backend Implementation
//
// [BackendService] talks to the pipeline API:
//   - POST /api/videos/upload : multipart upload, returns the created record
//   - POST /api/videos/{id}/discard : best-effort discard
//   - POST /api/videos/{id}/save : file under a category, start publishing
//   - GET/POST /api/categories : category listing and creation
//   - GET /api/videos/status : state snapshots consumed by polling
//   - GET /api/health : liveness probe
//
// All calls take a context and are rate limited with a shared
// [golang.org/x/time/rate.Limiter] so the 5-second poller plus a burst of
// review gestures cannot flood the backend.
//
// # Error Handling
//
// Responses are classified against the shared sentinels:
//   - [shared.ErrInvalidInput] : the backend rejected the payload (4xx)
//   - [shared.ErrVideoNotFound] / [shared.ErrCategoryNotFound] : unknown ids
//   - [shared.ErrCategoryExists] : duplicate category name
//   - [shared.ErrAPIRequest] : transport failures and 5xx responses
//
// Callers distinguish rollback-worthy failures from best-effort ones with
// errors.Is; see the dispatcher's save and discard paths.
package services
