package season

import (
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// CreateSeasonInput contains parameters for creating a season
type CreateSeasonInput struct {
	Season *models.Season
}

// GetSeasonInput contains parameters for retrieving a season
type GetSeasonInput struct {
	SeasonID string
}

// FindActiveSeasonInput contains parameters for finding the active season
type FindActiveSeasonInput struct {
	GameID string
	At     time.Time
}

// ListSeasonsByGameInput contains parameters for listing a game's seasons
type ListSeasonsByGameInput struct {
	GameID string
}

// ListSeasonsByGameOutput contains the seasons of a game
type ListSeasonsByGameOutput struct {
	Seasons []*models.Season
}

// FinishSeasonInput contains parameters for finishing a season
type FinishSeasonInput struct {
	SeasonID string
	EndedAt  time.Time
}
