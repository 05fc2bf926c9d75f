package models

import (
	"time"
)

// Season is a tracking window for one game spanning many sessions
type Season struct {
	// ID is the unique identifier for the season
	ID string

	// GameID is the game the season tracks
	GameID string

	// Name is the display name of the season
	Name string

	// Description is free-form text
	Description string

	// IsActive is true until the season is finished
	IsActive bool

	// StartedAt is the start of the season window
	StartedAt time.Time

	// EndedAt is the end of the window, nil for open-ended seasons
	EndedAt *time.Time
}

// Contains reports whether t falls inside the season window
func (s *Season) Contains(t time.Time) bool {
	if t.Before(s.StartedAt) {
		return false
	}
	return s.EndedAt == nil || !t.After(*s.EndedAt)
}
