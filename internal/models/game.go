package models

import (
	"time"
)

// Game is a title that sessions are played in
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// Title is the natural key events refer to
	Title string

	// CoverURL points at the game's cover art, if any
	CoverURL string

	// CreatedAt is when the game was first referenced
	CreatedAt time.Time
}
