package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VideoID identifies a video across its lifetime. A video created locally at
// upload time carries only a placeholder until the backend acknowledges it,
// after which the server identifier is authoritative. Keeping the two in
// separate fields avoids string-matching heuristics when a placeholder and a
// real id could collide.
type VideoID struct {
	Local  string // client-generated placeholder, set at creation
	Server string // backend-assigned id, empty until confirmed
}

// NewPendingID generates a placeholder identifier for a locally created video.
func NewPendingID() VideoID {
	return VideoID{Local: uuid.New().String()}
}

// ConfirmedID wraps a backend-assigned identifier.
func ConfirmedID(serverID string) VideoID {
	return VideoID{Server: serverID}
}

// Pending reports whether the backend has not yet assigned an id.
func (id VideoID) Pending() bool {
	return id.Server == ""
}

// Confirm returns a copy of the id carrying the backend-assigned value.
func (id VideoID) Confirm(serverID string) VideoID {
	id.Server = serverID
	return id
}

// Matches reports whether other refers to the same video. Server ids compare
// against server ids only; a pending id matches on its local placeholder.
func (id VideoID) Matches(other VideoID) bool {
	if id.Server != "" && other.Server != "" {
		return id.Server == other.Server
	}
	return id.Local != "" && id.Local == other.Local
}

func (id VideoID) String() string {
	if id.Server != "" {
		return id.Server
	}
	return fmt.Sprintf("pending:%s", id.Local)
}

// Video represents one clip under review and its position in the publish
// pipeline.
type Video struct {
	ID           VideoID
	SourceURL    string // playable media location, local or remote
	Title        string // may be a placeholder until processing supplies one
	State        State
	CategoryID   string // set once the reviewer files the video
	PublishedURL string // set once publishing completes
	HasSubtitles bool
	Subtitles    string // extracted subtitle text, when detected
	CreatedAt    time.Time
}

// Validate checks the cross-field invariants of a video record.
func (v Video) Validate() error {
	if v.ID.Local == "" && v.ID.Server == "" {
		return fmt.Errorf("video has no identifier")
	}
	if _, ok := ParseState(string(v.State)); !ok {
		return fmt.Errorf("unknown state %q", v.State)
	}
	if (v.PublishedURL != "") != (v.State == StateCompleted) {
		return fmt.Errorf("published URL present iff state is completed, got state %q", v.State)
	}
	if v.CategoryID != "" {
		switch v.State {
		case StateUploading, StateCompleted, StateFailed:
		default:
			return fmt.Errorf("category set before review decision, state %q", v.State)
		}
	}
	return nil
}

// Snapshot is a server-reported partial view of one video. Nil fields were
// absent from the payload and must leave the local value untouched.
type Snapshot struct {
	ID           string  `json:"id"`
	State        State   `json:"status"`
	Title        *string `json:"title,omitempty"`
	PublishedURL *string `json:"published_url,omitempty"`
	SourceURL    *string `json:"source_url,omitempty"`
	HasSubtitles *bool   `json:"has_subtitles,omitempty"`
	Subtitles    *string `json:"subtitles_text,omitempty"`
}
