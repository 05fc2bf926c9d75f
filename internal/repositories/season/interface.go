package season

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Draft-Lab/panela-tracker/internal/repositories/season Repository

import (
	"context"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// Repository defines the interface for season persistence
type Repository interface {
	// CreateSeason persists a new season
	CreateSeason(ctx context.Context, input *CreateSeasonInput) error

	// GetSeason retrieves a season by ID
	GetSeason(ctx context.Context, input *GetSeasonInput) (*models.Season, error)

	// FindActiveSeason returns the active season of a game whose window
	// contains the given time. The latest started one wins when several match.
	FindActiveSeason(ctx context.Context, input *FindActiveSeasonInput) (*models.Season, error)

	// ListSeasonsByGame returns every season of a game, oldest first
	ListSeasonsByGame(ctx context.Context, input *ListSeasonsByGameInput) (*ListSeasonsByGameOutput, error)

	// FinishSeason deactivates an active season and closes its window
	FinishSeason(ctx context.Context, input *FinishSeasonInput) (*models.Season, error)
}
