package player

import "github.com/Draft-Lab/panela-tracker/internal/models"

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	PlayerID string
}

// GetPlayerByHandleInput contains parameters for retrieving a player by handle
type GetPlayerByHandleInput struct {
	Handle string
}

// CreatePlayerInput contains parameters for creating a player
type CreatePlayerInput struct {
	Player *models.Player
}
