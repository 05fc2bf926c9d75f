package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Draft-Lab/panela-tracker/internal/repositories/game Repository

import (
	"context"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// Repository defines the interface for game data persistence
type Repository interface {
	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// GetGameByTitle retrieves a game by its title
	GetGameByTitle(ctx context.Context, input *GetGameByTitleInput) (*models.Game, error)

	// CreateGame persists a new game. Returns ErrGameAlreadyExists when the
	// title is already taken.
	CreateGame(ctx context.Context, input *CreateGameInput) error
}
