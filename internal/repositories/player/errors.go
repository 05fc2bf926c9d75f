package player

import "errors"

var (
	// ErrPlayerNotFound is returned when a player is not found
	ErrPlayerNotFound = errors.New("player not found")

	// ErrPlayerAlreadyExists is returned when a player with the same handle exists
	ErrPlayerAlreadyExists = errors.New("player already exists")
)
