package game

import "errors"

var (
	// ErrGameNotFound is returned when a game is not found
	ErrGameNotFound = errors.New("game not found")

	// ErrGameAlreadyExists is returned when a game with the same title exists
	ErrGameAlreadyExists = errors.New("game already exists")
)
