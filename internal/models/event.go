package models

import (
	"time"
)

// EventKind is the kind of a session event
type EventKind string

const (
	// EventKindJoined records a player starting to play
	EventKindJoined EventKind = "joined"

	// EventKindLeave records a player stopping
	EventKindLeave EventKind = "leave"
)

// IsValid reports whether the kind is one of the recognized values
func (k EventKind) IsValid() bool {
	return k == EventKindJoined || k == EventKindLeave
}

// SessionEvent is an immutable join or leave fact. The ordered log of these
// is the only input to duration accounting.
type SessionEvent struct {
	ID        string
	SessionID string
	PlayerID  string
	Kind      EventKind
	Timestamp time.Time
}
