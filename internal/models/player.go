package models

import (
	"time"
)

// Player is a person whose play time is tracked
type Player struct {
	// ID is the unique identifier for the player
	ID string

	// Handle is the external chat handle (Discord user ID) events refer to
	Handle string

	// Name is the display name of the player
	Name string

	// AvatarURL points at the player's avatar image, if any
	AvatarURL string

	// CreatedAt is when the player was first seen
	CreatedAt time.Time
}
