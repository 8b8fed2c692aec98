// Package models defines domain entities for the swipereel review client.
//
// The package contains three categories of types:
//
// 1. Lifecycle types: the video state machine
//   - [State] : enumeration of pipeline states (uploaded → ... → completed/failed)
//   - [State.CanTransition] : the forward-only transition table
//
// 2. Domain entities:
//   - [Video] : a clip moving through review and the publish pipeline
//   - [VideoID] : tagged identifier, pending (local) until the backend confirms
//   - [Category] : a user-defined collection kept videos are filed under
//
// 3. Wire types:
//   - [Snapshot] : a partial, server-reported view of one video, consumed by polling
//
// Entities carry Validate methods enforcing their invariants; the queue and
// reconciler rely on those rather than re-checking field combinations.
package models
