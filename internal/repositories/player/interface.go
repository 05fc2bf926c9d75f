package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Draft-Lab/panela-tracker/internal/repositories/player Repository

import (
	"context"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// Repository defines the interface for player data persistence
type Repository interface {
	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// GetPlayerByHandle retrieves a player by the chat handle events refer to
	GetPlayerByHandle(ctx context.Context, input *GetPlayerByHandleInput) (*models.Player, error)

	// CreatePlayer persists a new player. Returns ErrPlayerAlreadyExists when
	// the handle is already taken.
	CreatePlayer(ctx context.Context, input *CreatePlayerInput) error
}
