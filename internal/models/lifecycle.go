package models

import "strings"

// State represents the lifecycle of a video in the review and publish pipeline.
type State string

const (
	StateUploaded         State = "uploaded"          // raw transfer complete, backend has not started work
	StateProcessing       State = "processing"        // backend is preparing the clip for review
	StateProcessed        State = "processed"         // ready to be shown to the reviewer
	StateAwaitingCategory State = "awaiting_category" // kept by the reviewer, category not yet chosen
	StateUploading        State = "uploading"         // save accepted, publish in progress
	StateCompleted        State = "completed"         // published, URL available
	StateFailed           State = "failed"            // pipeline failure, requires re-upload
	StateDiscarded        State = "discarded"         // rejected by the reviewer
)

var allStates = []State{
	StateUploaded,
	StateProcessing,
	StateProcessed,
	StateAwaitingCategory,
	StateUploading,
	StateCompleted,
	StateFailed,
	StateDiscarded,
}

// transitions is the forward transition table. Self transitions are handled
// in CanTransition so reconciliation stays idempotent.
var transitions = map[State][]State{
	StateUploaded:         {StateProcessing},
	StateProcessing:       {StateProcessed},
	StateProcessed:        {StateAwaitingCategory, StateDiscarded},
	StateAwaitingCategory: {StateUploading, StateProcessed},
	StateUploading:        {StateCompleted, StateFailed},
}

// localStates are declared by user gestures and are never overwritten by a
// polled snapshot, regardless of what the table above allows.
var localStates = map[State]struct{}{
	StateDiscarded:        {},
	StateAwaitingCategory: {},
}

// AllStates returns the ordered list of known states.
func AllStates() []State {
	cp := make([]State, len(allStates))
	copy(cp, allStates)
	return cp
}

// ParseState converts a string into a known State.
func ParseState(value string) (State, bool) {
	normalized := State(strings.ToLower(strings.TrimSpace(value)))
	for _, s := range allStates {
		if s == normalized {
			return s, true
		}
	}
	return "", false
}

// Terminal reports whether the state ends the video's lifecycle.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateDiscarded
}

// LocallyAuthoritative reports whether the state was declared by a user
// gesture and must win over server snapshots.
func (s State) LocallyAuthoritative() bool {
	_, ok := localStates[s]
	return ok
}

// CanTransition reports whether moving from s to next is a valid lifecycle
// step. Identical states are always allowed so repeated snapshots are no-ops.
func (s State) CanTransition(next State) bool {
	if s == next {
		return true
	}
	for _, candidate := range transitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

func (s State) String() string {
	return string(s)
}
