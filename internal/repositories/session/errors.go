package session

import "errors"

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrCurrentSessionExists is returned when a game already has an open session
	ErrCurrentSessionExists = errors.New("current session already exists")
)
